package diag

import (
	"slices"

	"rsl/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Tags     []Tag
	Notes    []Note
}

// HasTag reports whether t is attached.
func (d Diagnostic) HasTag(t Tag) bool {
	return slices.Contains(d.Tags, t)
}
