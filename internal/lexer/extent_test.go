package lexer

import (
	"testing"
)

func TestBodyExtentBalanced(t *testing.T) {
	text := "macro f()\n if a\n end;\nend;\nvar x;"
	c := NewCursor(createFile(text))
	for range 4 { // macro f ( )
		c.NextToken(true)
	}
	span := c.BodyExtent()
	if span.Start != 9 || span.End != 25 {
		t.Fatalf("extent = %v, want 9-25", span)
	}
	if tok := c.NextToken(true); tok.Text != ";" {
		t.Fatalf("cursor after extent sees %q", tok.Text)
	}
}

func TestBodyExtentIgnoresCommentsAndStrings(t *testing.T) {
	text := "x // if\n s = \"while\";\n/* for */ end tail"
	c := NewCursor(createFile(text))
	span := c.BodyExtent()
	want := uint32(len(text) - len(" tail"))
	if span.End != want {
		t.Fatalf("extent end = %d, want %d", span.End, want)
	}
}

func TestBodyExtentMissingEnd(t *testing.T) {
	text := "macro f()\n if a\n"
	c := NewCursor(createFile(text))
	c.NextToken(true)
	span := c.BodyExtent()
	if span.End != uint32(len(text)) {
		t.Fatalf("unbalanced extent end = %d, want %d", span.End, len(text))
	}
	if !c.EOF() {
		t.Fatal("cursor must be at EOF")
	}
}

func TestBodyExtentCaseInsensitive(t *testing.T) {
	text := "body\n WHILE x\n END;\nEnd;"
	c := NewCursor(createFile(text))
	span := c.BodyExtent()
	if span.End != uint32(len(text)-1) {
		t.Fatalf("extent end = %d, want %d", span.End, len(text)-1)
	}
}
