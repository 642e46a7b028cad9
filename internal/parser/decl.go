package parser

import (
	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/lexer"
	"rsl/internal/token"
)

// parseVariables разбирает список "var a = 1, b: integer;"
func (up *unitParser) parseVariables(c *lexer.Cursor, scope entity.Scope, private, isConst, inClass bool, doc string) {
	for up.parseSingleVariable(c, scope, private, isConst, inClass, doc) {
		// комментарий над объявлением относится только к первому имени
		doc = ""
	}
}

// parseSingleVariable reads one name with its optional annotation and
// initializer and reports whether a ',' announced another name.
func (up *unitParser) parseSingleVariable(c *lexer.Cursor, scope entity.Scope, private, isConst, inClass bool, doc string) bool {
	nameTok := c.NextToken(true)
	if !isName(nameTok) {
		return false
	}
	kind := entity.KindVariable
	switch {
	case inClass:
		kind = entity.KindProperty
	case isConst:
		kind = entity.KindConstant
	}
	v := entity.NewVariable(nameTok.Text, kind, private, nameTok.Span)
	defer scope.AddChild(v)

	var (
		lastEnd  uint32
		operand  bool // последний токен закрывает выражение
		complete bool // тип или значение уже прочитаны
		hasValue bool
	)
	for {
		// без ';' объявление обрывается на следующем операторе
		next := c.PeekToken()
		if next.IsEOF() || startsStatement(next.Kind) {
			v.SetDoc(doc)
			return false
		}
		// или вместе со строкой, если выражение уже закончено
		if complete && operand && !next.Is(',') && !next.Is(';') && c.Line(next.Span.Start) > c.Line(lastEnd) {
			v.SetDoc(doc)
			return false
		}
		tok := c.NextToken(true)
		lastEnd, operand = tok.Span.End, endsOperand(tok)
		switch {
		case tok.Is('('):
			// размерность массива: var a(10);
			if !c.SkipTo(')') {
				return false
			}
			lastEnd, operand = c.Off, true
		case tok.Is('=') || tok.Is(':'):
			val := c.PeekToken()
			if val.IsEOF() || val.Is(';') || val.Is(',') || startsStatement(val.Kind) {
				continue
			}
			c.NextToken(true)
			lastEnd, operand, complete = val.Span.End, endsOperand(val), true
			if tok.Is(':') {
				if isTypeName(val) {
					v.SetType(up.annotationType(val.Text))
				}
			} else if !hasValue {
				hasValue = true
				v.SetValue(val.Text)
				if !v.Type().Known() {
					v.SetType(up.inferType(val.Text))
				}
			}
		case tok.Is(',') || tok.Is(';'):
			if trailing := up.trailingComment(c, tok); trailing != "" {
				doc = trailing
			}
			v.SetDoc(doc)
			return tok.Is(',')
		}
	}
}

func endsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Number, token.String:
		return true
	}
	return tok.Is(')') || tok.IsKeyword()
}

// startsStatement reports whether k begins a new statement.
func startsStatement(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwConst, token.KwMacro, token.KwClass,
		token.KwImport, token.KwLocal, token.KwPrivate, token.KwEnd, token.KwFor,
		token.KwIf, token.KwElif, token.KwElse, token.KwWhile, token.KwReturn, token.KwOnError:
		return true
	}
	return false
}

// trailingComment reads a comment that starts on the line of after and
// returns its text; the cursor moves past it only when one is found.
func (up *unitParser) trailingComment(c *lexer.Cursor, after token.Token) string {
	c.Save()
	tok := c.NextToken(false)
	if tok.Kind.IsComment() && c.Line(tok.Span.Start) == c.Line(after.Span.End) {
		c.Discard()
		if tok.Kind == token.LineComment {
			return c.ReadLineComment()
		}
		return c.ReadBlockComment()
	}
	c.Restore()
	return ""
}

// parseRecord: "record Name(file) ...;" Records are kept as variables of
// type record; the construct itself is deprecated.
func (up *unitParser) parseRecord(c *lexer.Cursor, scope entity.Scope, kw token.Token, private bool) {
	nameTok := c.NextToken(true)
	if !isName(nameTok) {
		return
	}
	v := entity.NewVariable(nameTok.Text, entity.KindVariable, private, nameTok.Span)
	v.SetType(entity.Inferred("record"))
	scope.AddChild(v)
	diag.ReportHint(up.rep, diag.SynDeprecatedRecord, kw.Span,
		"record is deprecated, use TRecHandler").
		WithTag(diag.TagDeprecated).
		Emit()
	c.SkipTo(';')
}

// parseMacro: "macro Name[(args)][: Type] ... end"
func (up *unitParser) parseMacro(c *lexer.Cursor, scope entity.Scope, private, inClass bool, doc string) {
	nameTok := c.NextToken(true)
	if !isName(nameTok) {
		return
	}
	m := entity.NewMacro(nameTok.Text, inClass, private, nameTok.Span)
	if openArgs(c) {
		for _, arg := range up.parseArgs(c) {
			m.AddArg(arg)
		}
	}
	if c.PeekToken().Is(':') {
		c.NextToken(true) // съедаем ':'
		if rt := c.PeekToken(); isTypeName(rt) {
			c.NextToken(true)
			m.SetType(up.annotationType(rt.Text))
		}
	}
	m.SetDoc(doc)
	body := c.BodyExtent()
	m.SetBody(body)
	up.parseScope(m, c.View.Sub(body.Start, body.End), false)
	scope.AddChild(m)
}

// parseClass: "class [(Parent)] Name[(args)] ... end"
func (up *unitParser) parseClass(c *lexer.Cursor, scope entity.Scope, private bool, doc string) {
	tok := c.NextToken(true)
	parent := ""
	if tok.Is('(') {
		p := c.NextToken(true)
		if isName(p) {
			parent = p.Text
			p = c.NextToken(true)
		}
		if !p.Is(')') && !c.SkipTo(')') {
			return
		}
		tok = c.NextToken(true)
	}
	if !isName(tok) {
		return
	}
	cls := entity.NewClass(tok.Text, parent, private, tok.Span)
	if openArgs(c) {
		for _, arg := range up.parseArgs(c) {
			cls.AddArg(arg)
		}
	}
	cls.SetDoc(doc)
	body := c.BodyExtent()
	cls.SetBody(body)
	up.parseScope(cls, c.View.Sub(body.Start, body.End), true)
	scope.AddChild(cls)
}

// openArgs съедает '(' списка аргументов, если он идёт сразу за именем
func openArgs(c *lexer.Cursor) bool {
	c.SkipWhitespace()
	if c.Peek() != '(' {
		return false
	}
	c.Next()
	return true
}

// parseArgs reads "name [: Type] [= default], ..." up to the closing ')'.
// The cursor must stand right after the opening '('.
func (up *unitParser) parseArgs(c *lexer.Cursor) []*entity.Variable {
	if c.Prev() != '(' {
		up.p.logger.Warn().Uint32("offset", c.Off).Msg("argument list entered without '('")
		return nil
	}
	var args []*entity.Variable
	tok := c.NextToken(true)
	for !tok.IsEOF() && !tok.Is(')') {
		if !isName(tok) {
			tok = c.NextToken(true)
			continue
		}
		arg := entity.NewVariable(tok.Text, entity.KindVariable, true, tok.Span)
		args = append(args, arg)
		tok = c.NextToken(true)
		if tok.Is(':') {
			tok = c.NextToken(true)
			if isTypeName(tok) {
				arg.SetType(up.annotationType(tok.Text))
				tok = c.NextToken(true)
			}
		}
		if tok.Is('=') {
			tok = up.skipDefault(c, arg)
		}
	}
	return args
}

// skipDefault consumes a default value up to the ',' or ')' that ends it and
// returns that terminator.
func (up *unitParser) skipDefault(c *lexer.Cursor, arg *entity.Variable) token.Token {
	depth := 0
	first := true
	for {
		tok := c.NextToken(true)
		switch {
		case tok.IsEOF():
			return tok
		case tok.Is('('):
			depth++
		case tok.Is(')'):
			if depth == 0 {
				return tok
			}
			depth--
		case tok.Is(',') && depth == 0:
			return tok
		}
		if first {
			first = false
			arg.SetValue(tok.Text)
			if !arg.Type().Known() {
				arg.SetType(up.inferType(tok.Text))
			}
		}
	}
}

// parseFor: "for (var i[: Type], ...)" declares the loop variable.
func (up *unitParser) parseFor(c *lexer.Cursor, scope entity.Scope) {
	if !c.PeekToken().Is('(') {
		return
	}
	c.NextToken(true) // съедаем '('
	tok := c.NextToken(true)
	if tok.Kind == token.KwVar {
		nameTok := c.NextToken(true)
		if !isName(nameTok) {
			return
		}
		v := entity.NewVariable(nameTok.Text, entity.KindVariable, false, nameTok.Span)
		scope.AddChild(v)
		tok = c.NextToken(true)
		if tok.Is(':') {
			if t := c.NextToken(true); isTypeName(t) {
				v.SetType(up.annotationType(t.Text))
			}
			tok = c.NextToken(true)
		}
	}
	for depth := 0; !tok.IsEOF(); tok = c.NextToken(true) {
		switch {
		case tok.Is('('):
			depth++
		case tok.Is(')'):
			if depth == 0 {
				return
			}
			depth--
		}
	}
}
