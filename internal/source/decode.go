package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding is the code page legacy macro files are stored in.
const DefaultEncoding = "cp866"

// LookupEncoding maps a configuration name to a decoder.
// "utf-8" (and the empty string) return nil: content is taken as is.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "cp866", "ibm866", "866", "dos":
		return charmap.CodePage866, nil
	case "windows-1251", "cp1251", "1251", "win":
		return charmap.Windows1251, nil
	case "koi8-r", "koi8r":
		return charmap.KOI8R, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// Decode converts legacy single-byte content to UTF-8.
// Content that is already valid UTF-8 with non-ASCII runes is kept:
// a file saved by a modern editor must not be decoded twice.
func Decode(content []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil || isASCII(content) {
		return content, nil
	}
	if utf8.Valid(content) {
		return content, nil
	}
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isASCII(content []byte) bool {
	for _, b := range content {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
