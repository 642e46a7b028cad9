package entity

import (
	"strings"

	"rsl/internal/source"
)

// Variable is a var, const, property, macro argument or loop variable.
type Variable struct {
	base
	value string
}

// NewVariable creates a variable whose span is its name.
func NewVariable(name string, kind Kind, private bool, nameSpan source.Span) *Variable {
	return &Variable{base: base{
		name:     name,
		kind:     kind,
		private:  private,
		span:     nameSpan,
		nameSpan: nameSpan,
	}}
}

// Value is the first token of the initializer, if any.
func (v *Variable) Value() string { return v.value }

func (v *Variable) SetValue(value string) { v.value = value }

func (v *Variable) Detail() string {
	var sb strings.Builder
	switch v.kind {
	case KindConstant:
		sb.WriteString("const ")
	case KindProperty:
		sb.WriteString("property ")
	default:
		sb.WriteString("var ")
	}
	sb.WriteString(v.name)
	sb.WriteString(": ")
	sb.WriteString(v.typ.String())
	if v.value != "" {
		sb.WriteString(" = ")
		sb.WriteString(v.value)
	}
	return sb.String()
}

func (v *Variable) Documentation() string { return v.doc }

func (v *Variable) InsertText() string { return v.name }
