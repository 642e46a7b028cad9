package lexer

import (
	"rsl/internal/source"
	"rsl/internal/token"
)

// BodyExtent consumes a construct body from the current offset, counting
// openers (class, macro, if, for, while) against "end" until the initial
// opener is closed. The returned span starts at the offset BodyExtent was
// called at and ends right after the closing "end". Unbalanced input runs to
// the end of the view.
//
// All five openers share one counter, so "end" closes whichever is innermost;
// the language has no construct-specific closers to tell them apart.
func (c *Cursor) BodyExtent() source.Span {
	start := c.Off
	depth := 1
	for depth > 0 {
		tok := c.NextToken(true)
		switch {
		case tok.IsEOF():
			return c.View.span(start, c.View.Limit)
		case tok.Kind == token.KwEnd:
			depth--
		case token.IsBlockOpener(tok.Kind):
			depth++
		}
	}
	return c.View.span(start, c.Off)
}
