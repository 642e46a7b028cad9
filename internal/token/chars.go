package token

// IsWhitespace reports whether b separates tokens without being one.
func IsWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// IsStop reports whether b ends an accumulating token.
// The end-of-view marker (0) is a stop char too.
func IsStop(b byte) bool {
	if IsWhitespace(b) {
		return true
	}
	switch b {
	case 0, '(', ')', '[', ']', '{', '}', ',', ';', ':', '=', '+', '-', '*', '/',
		'<', '>', '!', '&', '|', '^', '%', '?', '.':
		return true
	default:
		return false
	}
}

// IsQuote reports whether b opens a string literal.
func IsQuote(b byte) bool {
	return b == '"' || b == '\''
}

// IsDigit is an ASCII digit check.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
