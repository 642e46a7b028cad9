package entity

import (
	"strings"

	"rsl/internal/source"
)

// Class is a user-defined type. The parent is only a name; the link to the
// parent class is resolved at query time.
type Class struct {
	scope
	parent string
	args   []*Variable
}

// NewClass creates a class; its type is its own name.
func NewClass(name, parent string, private bool, nameSpan source.Span) *Class {
	c := &Class{parent: parent}
	c.base = base{
		name:     name,
		kind:     KindClass,
		private:  private,
		span:     nameSpan,
		nameSpan: nameSpan,
		typ:      Inferred(name),
	}
	return c
}

// Parent returns the declared parent class name, "" when none.
func (c *Class) Parent() string { return c.parent }

// Args returns the constructor arguments.
func (c *Class) Args() []*Variable { return c.args }

// AddArg registers a constructor argument.
func (c *Class) AddArg(v *Variable) {
	c.args = append(c.args, v)
	c.AddChild(v)
}

// ResetChildren keeps the constructor arguments.
func (c *Class) ResetChildren() {
	c.children = c.children[:0]
	for _, a := range c.args {
		c.children = append(c.children, a)
	}
}

func (c *Class) Detail() string {
	var sb strings.Builder
	sb.WriteString("class ")
	if c.parent != "" {
		sb.WriteByte('(')
		sb.WriteString(c.parent)
		sb.WriteString(") ")
	}
	sb.WriteString(c.name)
	if len(c.args) > 0 {
		writeArgs(&sb, c.args)
	}
	return sb.String()
}

func (c *Class) Documentation() string {
	return codeBlock(c.Detail(), c.doc)
}

func (c *Class) InsertText() string { return c.name }
