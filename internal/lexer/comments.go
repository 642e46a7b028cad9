package lexer

import "strings"

// ReadLineComment reads the rest of the current line after a "//" opener.
// The cursor stops at the newline.
func (c *Cursor) ReadLineComment() string {
	start := c.Off
	c.Off = lineEnd(c.View, c.Off)
	return strings.TrimSpace(c.View.text(start, c.Off))
}

// ReadBlockComment reads up to and including "*/" after a "/*" opener and
// returns the inner text.
func (c *Cursor) ReadBlockComment() string {
	start := c.Off
	c.Off = blockEnd(c.View, c.Off)
	end := c.Off
	if end >= start+2 && c.View.at(end-2) == '*' && c.View.at(end-1) == '/' {
		end -= 2
	}
	return strings.TrimSpace(c.View.text(start, end))
}
