package token

import (
	"rsl/internal/source"
)

// Token is a lexeme with its location. Text is the exact source slice.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsEOF reports whether the scan ran out of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// Is reports whether the token is the single punctuation char c.
func (t Token) Is(c byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == c
}

// Classify determines the kind of an accumulated lexeme.
func Classify(text string) Kind {
	switch {
	case text == "":
		return EOF
	case text == "//":
		return LineComment
	case text == "/*":
		return BlockComment
	case text == "*/":
		return BlockCommentEnd
	case IsQuote(text[0]):
		return String
	case len(text) == 1 && IsStop(text[0]):
		return Punct
	case IsDigit(text[0]):
		return Number
	}
	if k, ok := LookupKeyword(text); ok {
		return k
	}
	return Ident
}
