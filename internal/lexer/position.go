package lexer

import (
	"rsl/internal/source"
	"rsl/internal/token"
)

// TokenAt returns the word under or immediately left of off.
// When off points at a stop char, the char to its left is examined; a '.'
// there is stepped over so "obj.|" yields "obj". Whitespace yields no token.
func TokenAt(f *source.File, off uint32) (token.Token, bool) {
	v := NewView(f)
	if off > v.Limit {
		off = v.Limit
	}
	p := off
	if p >= v.Limit || token.IsStop(v.at(p)) {
		if p == 0 {
			return token.Token{}, false
		}
		p--
	}
	b := v.at(p)
	if token.IsWhitespace(b) {
		return token.Token{}, false
	}
	if b == '.' {
		if p == 0 {
			return token.Token{}, false
		}
		p--
		if token.IsStop(v.at(p)) {
			return token.Token{}, false
		}
	}
	for p > 0 && !token.IsStop(v.at(p-1)) {
		p--
	}
	tok, _ := ScanForward(v, p, false)
	switch tok.Kind {
	case token.EOF, token.Punct, token.LineComment, token.BlockComment, token.BlockCommentEnd:
		return token.Token{}, false
	}
	return tok, true
}

// MemberTarget reports the object token of a member access being typed at
// off: for "obj.na|" and "obj.|" it returns "obj".
func MemberTarget(f *source.File, off uint32) (token.Token, bool) {
	v := NewView(f)
	if off > v.Limit {
		off = v.Limit
	}
	p := off
	for p > 0 && !token.IsStop(v.at(p-1)) {
		p--
	}
	if p == 0 || v.at(p-1) != '.' {
		return token.Token{}, false
	}
	return TokenAt(f, p-1)
}

// InCommentOrString reports whether off lies inside a comment or a string
// literal. A cursor right after a closing quote is outside; a cursor at the
// end of a line comment is inside.
func InCommentOrString(f *source.File, off uint32) bool {
	v := NewView(f)
	pos := v.Start
	for pos < off {
		tok, next := ScanForward(v, pos, false)
		if tok.IsEOF() || tok.Span.Start >= off {
			return false
		}
		switch tok.Kind {
		case token.LineComment:
			end := lineEnd(v, next)
			if off <= end {
				return true
			}
			next = end
		case token.BlockComment:
			end := blockEnd(v, next)
			if off < end {
				return true
			}
			next = end
		case token.String:
			if off < tok.Span.End || (off == tok.Span.End && !closed(v, tok)) {
				return true
			}
		}
		pos = next
	}
	return false
}

// closed reports whether a string token ends with its opening quote.
func closed(v View, tok token.Token) bool {
	return tok.Span.Len() >= 2 && v.at(tok.Span.End-1) == v.at(tok.Span.Start)
}
