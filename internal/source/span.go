package source

import (
	"fmt"
)

// Span is a half-open byte interval inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies in [Start, End).
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// ContainsStrict reports whether off lies strictly inside (Start, End).
func (s Span) ContainsStrict(off uint32) bool {
	return s.Start < off && off < s.End
}

// WithEnd returns a copy of s ending at end.
func (s Span) WithEnd(end uint32) Span {
	if end < s.Start {
		end = s.Start
	}
	s.End = end
	return s
}
