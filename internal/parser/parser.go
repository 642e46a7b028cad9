// Package parser builds entity trees from RSL source.
//
// The parser is structural: it recognizes declarations (var, const, record,
// macro, class, import, the loop variable of for) and body extents, and skips
// everything else. It never rejects input; problems become diagnostics.
package parser

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"

	"rsl/internal/catalog"
	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/lexer"
	"rsl/internal/registry"
	"rsl/internal/source"
	"rsl/internal/token"
)

// Builtins is the part of the builtin catalog the parser needs for type
// inference.
type Builtins interface {
	FindByName(name string) (catalog.Entry, bool)
}

// Locator finds the file an import names; search.Policy implements it.
type Locator interface {
	Find(currentDir, name string) string
}

type Options struct {
	Files    *source.FileSet
	Registry *registry.Registry
	Builtins Builtins // nil: без встроенного каталога
	Locator  Locator  // nil: импорты не ищутся
	// Encoding decodes imported files read from disk; nil keeps bytes as is.
	Encoding encoding.Encoding
	// FollowImports off records import names without loading anything.
	FollowImports bool
	// MaxDiagnostics caps the per-unit bag; 0 is unlimited.
	MaxDiagnostics int
	// Identity maps an absolute path to a registry identity.
	// nil selects source.PathToURI.
	Identity func(path string) string
	Logger   *zerolog.Logger
}

// Parser is the parsing session of one engine.
// It is not safe for concurrent use, same as the registry it writes to.
type Parser struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a parser session.
func New(opts Options) *Parser {
	if opts.Files == nil {
		opts.Files = source.NewFileSet()
	}
	if opts.Registry == nil {
		opts.Registry = registry.New(0)
	}
	if opts.Identity == nil {
		opts.Identity = source.PathToURI
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Parser{opts: opts, logger: logger.With().Str("component", "parser").Logger()}
}

// Registry returns the registry the session writes to.
func (p *Parser) Registry() *registry.Registry { return p.opts.Registry }

// Files returns the file set imported files are loaded into.
func (p *Parser) Files() *source.FileSet { return p.opts.Files }

// Load registers id as in progress, parses file and stores the result.
// The only error is registry.ErrDepthExceeded.
func (p *Parser) Load(id string, file *source.File) (*registry.Entry, error) {
	entry, err := p.opts.Registry.Begin(id)
	if err != nil {
		return nil, err
	}
	unit, diags := p.parse(id, file)
	p.opts.Registry.Finish(id, unit, diags)
	p.logger.Debug().
		Str("unit", id).
		Int("children", len(unit.Children())).
		Int("diagnostics", len(diags)).
		Uint32("version", file.Version).
		Msg("unit parsed")
	return entry, nil
}

// Reparse rebuilds the children of scope from its body. unit is the tree
// scope belongs to; it provides the file and the inference context.
func (p *Parser) Reparse(unit *entity.Unit, scope entity.Scope) []diag.Diagnostic {
	up := p.newUnitParser(unit.ID(), unit)
	if scope != entity.Scope(unit) {
		up.stack = append(up.stack, unit)
	}
	scope.ResetChildren()
	body := scope.Body()
	_, inClass := scope.(*entity.Class)
	up.parseScope(scope, lexer.NewView(unit.File()).Sub(body.Start, body.End), inClass)
	return up.bag.Items()
}

func (p *Parser) parse(id string, file *source.File) (*entity.Unit, []diag.Diagnostic) {
	unit := entity.NewUnit(id, file)
	up := p.newUnitParser(id, unit)
	up.parseScope(unit, lexer.NewView(file), false)
	return unit, up.bag.Items()
}

// unitParser: состояние разбора одного файла
type unitParser struct {
	p    *Parser
	unit *entity.Unit
	dir  string // каталог файла, от него ищутся импорты
	bag  *diag.Bag
	rep  diag.Reporter

	doc     string // последний комментарий-кандидат в документацию
	docLine uint32 // строка, на которой он закончился

	stack []entity.Scope // открытые области, внешняя первой
}

func (p *Parser) newUnitParser(id string, unit *entity.Unit) *unitParser {
	bag := diag.NewBag(p.opts.MaxDiagnostics)
	dir := ""
	if path := source.URIToPath(id); path != "" {
		dir = filepath.Dir(path)
	} else if unit.File().Flags&source.FileVirtual == 0 {
		dir = filepath.Dir(filepath.FromSlash(unit.File().Path))
	}
	return &unitParser{
		p:    p,
		unit: unit,
		dir:  dir,
		bag:  bag,
		rep:  diag.BagReporter{Bag: bag},
	}
}

// parseScope walks the tokens of v and attaches declarations to scope.
// Nested macro and class bodies are consumed whole and parsed by their own
// parseScope call, so their content never leaks into scope.
func (up *unitParser) parseScope(scope entity.Scope, v lexer.View, inClass bool) {
	c := lexer.NewCursorIn(v)
	up.doc, up.docLine = "", 0
	up.stack = append(up.stack, scope)
	defer func() { up.stack = up.stack[:len(up.stack)-1] }()
	for {
		tok := c.NextToken(false)
		if tok.IsEOF() {
			return
		}
		switch tok.Kind {
		case token.LineComment:
			line := c.Line(tok.Span.Start)
			text := c.ReadLineComment()
			if !startsLine(tok.Span.Start, c.View) {
				// хвостовой комментарий чужой строки
				up.doc = ""
				continue
			}
			if up.doc != "" && up.docLine+1 == line {
				up.doc += "\n" + text
			} else {
				up.doc = text
			}
			up.docLine = line
			continue
		case token.BlockComment:
			up.doc = c.ReadBlockComment()
			up.docLine = c.Line(c.Off)
			continue
		case token.KwLocal, token.KwPrivate:
			kw := c.NextToken(true)
			up.parseDecl(c, scope, kw, true, inClass, up.takeDoc(c, tok))
		case token.KwConst, token.KwVar, token.KwRecord, token.KwMacro, token.KwClass:
			up.parseDecl(c, scope, tok, false, inClass, up.takeDoc(c, tok))
		case token.KwImport:
			up.parseImport(c, scope)
		case token.KwFor:
			up.parseFor(c, scope)
		}
		up.doc = ""
	}
}

// takeDoc returns the pending comment when it ends on the line right above
// the declaration keyword (or on the same line).
func (up *unitParser) takeDoc(c *lexer.Cursor, kw token.Token) string {
	doc := up.doc
	up.doc = ""
	if doc == "" {
		return ""
	}
	if line := c.Line(kw.Span.Start); up.docLine+1 < line {
		return ""
	}
	return doc
}

func (up *unitParser) parseDecl(c *lexer.Cursor, scope entity.Scope, kw token.Token, private, inClass bool, doc string) {
	switch kw.Kind {
	case token.KwConst:
		up.parseVariables(c, scope, private, true, inClass, doc)
	case token.KwVar:
		up.parseVariables(c, scope, private, false, inClass, doc)
	case token.KwRecord:
		up.parseRecord(c, scope, kw, private)
	case token.KwMacro:
		up.parseMacro(c, scope, private, inClass, doc)
	case token.KwClass:
		up.parseClass(c, scope, private, doc)
	}
}

// startsLine reports whether only blanks precede off on its line.
func startsLine(off uint32, v lexer.View) bool {
	content := v.File.Content
	for off > v.Start {
		off--
		switch content[off] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func isName(tok token.Token) bool {
	return tok.Kind == token.Ident
}

// isTypeName допускает и ключевые слова: "array", "file", "record"
func isTypeName(tok token.Token) bool {
	return tok.Kind == token.Ident || tok.Kind.IsKeyword()
}

// SetFollowImports toggles import loading for subsequent parses.
func (p *Parser) SetFollowImports(on bool) { p.opts.FollowImports = on }

// FollowImports reports whether imports are loaded.
func (p *Parser) FollowImports() bool { return p.opts.FollowImports }
