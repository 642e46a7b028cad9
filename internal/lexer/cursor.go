package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"rsl/internal/source"
	"rsl/internal/token"
)

// View is an immutable window [Start, Limit) over a file's content.
// Scanning functions take a View and an offset and never mutate either.
type View struct {
	File  *source.File
	Start uint32
	Limit uint32
}

// NewView covers the whole file.
func NewView(f *source.File) View {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return View{File: f, Start: 0, Limit: limit}
}

// Sub narrows the view; bounds are clamped to the parent window.
func (v View) Sub(start, end uint32) View {
	if start < v.Start {
		start = v.Start
	}
	if end > v.Limit {
		end = v.Limit
	}
	if start > end {
		start = end
	}
	return View{File: v.File, Start: start, Limit: end}
}

// at возвращает байт по смещению или 0 за пределами окна
func (v View) at(off uint32) byte {
	if off < v.Start || off >= v.Limit {
		return 0
	}
	return v.File.Content[off]
}

func (v View) text(start, end uint32) string {
	return string(v.File.Content[start:end])
}

func (v View) span(start, end uint32) source.Span {
	return source.Span{File: v.File.ID, Start: start, End: end}
}

// Cursor представляет собой позицию в окне файла со стеком сохранённых позиций
type Cursor struct {
	View  View
	Off   uint32
	saved []uint32
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) *Cursor {
	v := NewView(f)
	return &Cursor{View: v, Off: v.Start}
}

// NewCursorIn creates a cursor positioned at the start of v.
func NewCursorIn(v View) *Cursor {
	return &Cursor{View: v, Off: v.Start}
}

// EOF проверяет, достигнут ли конец окна
func (c *Cursor) EOF() bool {
	return c.Off >= c.View.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.View.at(c.Off)
}

// Next перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Next() byte {
	if c.EOF() {
		return 0
	}
	b := c.View.at(c.Off)
	c.Off++
	return b
}

// Prev возвращает байт перед курсором, или 0 в начале окна
func (c *Cursor) Prev() byte {
	if c.Off <= c.View.Start {
		return 0
	}
	return c.View.at(c.Off - 1)
}

// SkipWhitespace пропускает пробельные символы
func (c *Cursor) SkipWhitespace() {
	c.Off = skipWhitespace(c.View, c.Off)
}

// AtStopChar reports whether the current byte ends an identifier.
func (c *Cursor) AtStopChar() bool {
	return token.IsStop(c.Peek())
}

// NextToken reads the next token and moves past it.
func (c *Cursor) NextToken(skipComments bool) token.Token {
	tok, next := ScanForward(c.View, c.Off, skipComments)
	c.Off = next
	return tok
}

// PeekToken reads the next token without moving.
func (c *Cursor) PeekToken() token.Token {
	tok, _ := ScanForward(c.View, c.Off, true)
	return tok
}

// PrevToken reads the token ending before the cursor and moves to its start.
func (c *Cursor) PrevToken() token.Token {
	tok, prev := ScanBackward(c.View, c.Off)
	c.Off = prev
	return tok
}

// Save pushes the current offset.
func (c *Cursor) Save() {
	c.saved = append(c.saved, c.Off)
}

// Restore pops the last saved offset and moves there.
func (c *Cursor) Restore() bool {
	n := len(c.saved)
	if n == 0 {
		return false
	}
	c.Off = c.saved[n-1]
	c.saved = c.saved[:n-1]
	return true
}

// Discard pops the last saved offset without moving.
func (c *Cursor) Discard() {
	if n := len(c.saved); n > 0 {
		c.saved = c.saved[:n-1]
	}
}

// SkipTo moves past the first occurrence of the punctuation char ch.
// Strings and comments on the way are skipped as whole tokens.
func (c *Cursor) SkipTo(ch byte) bool {
	for {
		tok := c.NextToken(true)
		if tok.IsEOF() {
			return false
		}
		if tok.Is(ch) {
			return true
		}
	}
}

// Line returns the 1-based line of off.
func (c *Cursor) Line(off uint32) uint32 {
	return c.View.File.LineCol(off).Line
}

// Span builds a span in the cursor's file.
func (c *Cursor) Span(start, end uint32) source.Span {
	return c.View.span(start, end)
}
