package driver

import (
	"golang.org/x/text/encoding"

	"rsl/internal/lexer"
	"rsl/internal/source"
	"rsl/internal/token"
)

// TokenizeResult is a file and its token stream, comments included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize reads path (decoding it with enc, nil for UTF-8) and scans it.
func Tokenize(path string, enc encoding.Encoding) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.LoadEncoded(path, enc)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.Tokens(lexer.NewView(file)),
	}, nil
}
