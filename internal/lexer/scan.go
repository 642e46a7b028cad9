package lexer

import (
	"rsl/internal/source"
	"rsl/internal/token"
)

func skipWhitespace(v View, off uint32) uint32 {
	for off < v.Limit && token.IsWhitespace(v.at(off)) {
		off++
	}
	return off
}

// lineEnd returns the offset of the '\n' ending the line of off (or Limit).
func lineEnd(v View, off uint32) uint32 {
	for off < v.Limit && v.at(off) != '\n' {
		off++
	}
	return off
}

// blockEnd returns the offset right after the "*/" closing a block comment
// whose body starts at off.
func blockEnd(v View, off uint32) uint32 {
	for off+1 < v.Limit {
		if v.at(off) == '*' && v.at(off+1) == '/' {
			return off + 2
		}
		off++
	}
	return v.Limit
}

// stringEnd returns the offset right after the literal opened at off.
// A backslash escapes the next byte; an unterminated literal runs to Limit.
func stringEnd(v View, off uint32) uint32 {
	quote := v.at(off)
	off++
	for off < v.Limit {
		switch v.at(off) {
		case '\\':
			off += 2
			continue
		case quote:
			return off + 1
		}
		off++
	}
	return v.Limit
}

// ScanForward reads one token starting at off and returns it with the
// offset right after it. With skipComments the comment bodies are consumed
// and the scan continues to the next real token.
func ScanForward(v View, off uint32, skipComments bool) (token.Token, uint32) {
	if off < v.Start {
		off = v.Start
	}
	for {
		off = skipWhitespace(v, off)
		if off >= v.Limit {
			return token.Token{Kind: token.EOF, Span: v.span(v.Limit, v.Limit)}, v.Limit
		}
		start := off
		b, next := v.at(off), v.at(off+1)
		var end uint32
		switch {
		case token.IsQuote(b):
			end = stringEnd(v, off)
		case b == '/' && next == '/':
			if skipComments {
				off = lineEnd(v, off+2)
				continue
			}
			end = off + 2
		case b == '/' && next == '*':
			if skipComments {
				off = blockEnd(v, off+2)
				continue
			}
			end = off + 2
		case b == '*' && next == '/':
			end = off + 2
		case token.IsStop(b):
			end = off + 1
		default:
			end = off
			for end < v.Limit && !token.IsStop(v.at(end)) {
				end++
			}
		}
		return makeToken(v, start, end), end
	}
}

// ScanBackward reads the token that ends at or before off and returns it
// with its start offset. Comments are not recognized going backwards.
func ScanBackward(v View, off uint32) (token.Token, uint32) {
	if off > v.Limit {
		off = v.Limit
	}
	end := off
	for end > v.Start && token.IsWhitespace(v.at(end-1)) {
		end--
	}
	if end <= v.Start {
		return token.Token{Kind: token.EOF, Span: v.span(v.Start, v.Start)}, v.Start
	}
	b := v.at(end - 1)
	start := end - 1
	switch {
	case token.IsQuote(b):
		for start > v.Start {
			start--
			if v.at(start) == b && (start == v.Start || v.at(start-1) != '\\') {
				break
			}
		}
	case token.IsStop(b):
		// одиночный символ
	default:
		for start > v.Start && !token.IsStop(v.at(start-1)) {
			start--
		}
	}
	return makeToken(v, start, end), start
}

func makeToken(v View, start, end uint32) token.Token {
	text := v.text(start, end)
	return token.Token{Kind: token.Classify(text), Span: v.span(start, end), Text: text}
}

// Tokens scans the whole view. Comments are returned as opener tokens followed
// by nothing: their bodies are skipped.
func Tokens(v View) []token.Token {
	var out []token.Token
	off := v.Start
	for {
		tok, next := ScanForward(v, off, false)
		if tok.IsEOF() {
			return out
		}
		switch tok.Kind {
		case token.LineComment:
			next = lineEnd(v, next)
			tok.Span = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: next}
			tok.Text = v.text(tok.Span.Start, next)
		case token.BlockComment:
			next = blockEnd(v, next)
			tok.Span = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: next}
			tok.Text = v.text(tok.Span.Start, next)
		}
		out = append(out, tok)
		off = next
	}
}
