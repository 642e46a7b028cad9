package entity

import (
	"strings"

	"rsl/internal/source"
)

// Macro is a procedure; a Method when declared inside a class.
type Macro struct {
	scope
	args []*Variable
}

// NewMacro creates a macro whose span starts at its name.
func NewMacro(name string, method, private bool, nameSpan source.Span) *Macro {
	kind := KindFunction
	if method {
		kind = KindMethod
	}
	m := &Macro{}
	m.base = base{name: name, kind: kind, private: private, span: nameSpan, nameSpan: nameSpan}
	return m
}

// Args returns the declared arguments in order.
func (m *Macro) Args() []*Variable { return m.args }

// AddArg registers an argument; it is also a child of the macro scope.
func (m *Macro) AddArg(v *Variable) {
	m.args = append(m.args, v)
	m.AddChild(v)
}

// ReturnType is the declared return type; Unknown when absent.
func (m *Macro) ReturnType() Type { return m.typ }

// ResetChildren keeps the arguments: they come from the header, not the body.
func (m *Macro) ResetChildren() {
	m.children = m.children[:0]
	for _, a := range m.args {
		m.children = append(m.children, a)
	}
}

func (m *Macro) Detail() string {
	var sb strings.Builder
	sb.WriteString("macro ")
	sb.WriteString(m.name)
	writeArgs(&sb, m.args)
	if m.typ.Known() {
		sb.WriteString(": ")
		sb.WriteString(m.typ.String())
	}
	return sb.String()
}

func (m *Macro) Documentation() string {
	return codeBlock(m.Detail(), m.doc)
}

func (m *Macro) InsertText() string { return m.name + "()" }

func writeArgs(sb *strings.Builder, args []*Variable) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.name)
		if a.typ.Known() {
			sb.WriteString(": ")
			sb.WriteString(a.typ.String())
		}
	}
	sb.WriteByte(')')
}

func codeBlock(signature, doc string) string {
	var sb strings.Builder
	sb.WriteString("```rsl\n")
	sb.WriteString(signature)
	sb.WriteString("\n```")
	if doc != "" {
		sb.WriteString("\n\n")
		sb.WriteString(doc)
	}
	return sb.String()
}
