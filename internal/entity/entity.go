package entity

import (
	"rsl/internal/source"
)

// Entity is a named program element: a file unit, a variable, a macro,
// a class or an import reference.
type Entity interface {
	Name() string
	Kind() Kind
	Private() bool
	// Span covers the whole declaration, body included.
	Span() source.Span
	// NameSpan covers the declaring identifier.
	NameSpan() source.Span
	Type() Type
	Detail() string
	Documentation() string
	InsertText() string
}

// Scope is an entity with children: Unit, Macro and Class.
type Scope interface {
	Entity
	Children() []Entity
	AddChild(e Entity)
	// Body is the span the parser runs over to derive the children.
	Body() source.Span
	// ResetChildren drops everything derived from the body.
	ResetChildren()
	// IsActual reports whether off lies strictly inside the declaration.
	IsActual(off uint32) bool
}

type base struct {
	name     string
	kind     Kind
	private  bool
	span     source.Span
	nameSpan source.Span
	typ      Type
	doc      string
}

func (b *base) Name() string           { return b.name }
func (b *base) Kind() Kind             { return b.kind }
func (b *base) Private() bool          { return b.private }
func (b *base) Span() source.Span      { return b.span }
func (b *base) NameSpan() source.Span  { return b.nameSpan }
func (b *base) Type() Type             { return b.typ }
func (b *base) SetType(t Type)         { b.typ = t }
func (b *base) SetSpan(sp source.Span) { b.span = sp }
func (b *base) SetPrivate(p bool)      { b.private = p }

// Doc returns the raw documentation comment.
func (b *base) Doc() string { return b.doc }

// SetDoc attaches a documentation comment.
func (b *base) SetDoc(doc string) { b.doc = doc }

type scope struct {
	base
	children []Entity
	body     source.Span
}

func (s *scope) Children() []Entity { return s.children }

func (s *scope) AddChild(e Entity) {
	if e != nil {
		s.children = append(s.children, e)
	}
}

func (s *scope) Body() source.Span { return s.body }

// SetBody sets the span the children are derived from and stretches the
// declaration span to cover it.
func (s *scope) SetBody(body source.Span) {
	s.body = body
	s.span = s.span.Cover(body)
}

func (s *scope) ResetChildren() { s.children = nil }

func (s *scope) IsActual(off uint32) bool {
	return s.span.ContainsStrict(off)
}
