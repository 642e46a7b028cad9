package fuzztests

import (
	"testing"

	"rsl/internal/lexer"
	"rsl/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.mac", input))

		var prevEnd uint32
		for _, tok := range lexer.Tokens(lexer.NewView(file)) {
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || tok.Span.End > file.Len() {
				t.Fatalf("token %v out of order: span %v after %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
		}
	})
}
