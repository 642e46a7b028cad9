package token

import "strings"

var keywords = map[string]Kind{
	"array":    KwArray,
	"end":      KwEnd,
	"or":       KwOr,
	"and":      KwAnd,
	"break":    KwBreak,
	"file":     KwFile,
	"private":  KwPrivate,
	"class":    KwClass,
	"for":      KwFor,
	"record":   KwRecord,
	"const":    KwConst,
	"if":       KwIf,
	"return":   KwReturn,
	"continue": KwContinue,
	"import":   KwImport,
	"var":      KwVar,
	"cpdos":    KwCpDos,
	"local":    KwLocal,
	"while":    KwWhile,
	"cpwin":    KwCpWin,
	"macro":    KwMacro,
	"with":     KwWith,
	"elif":     KwElif,
	"not":      KwNot,
	"else":     KwElse,
	"onerror":  KwOnError,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистронезависимые: MACRO, Macro и macro одно и то же.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}

// Keywords returns the reserved words in lower case, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sortStrings(out)
	return out
}

// IsBlockOpener reports whether k starts a construct closed by "end".
func IsBlockOpener(k Kind) bool {
	switch k {
	case KwClass, KwMacro, KwIf, KwFor, KwWhile:
		return true
	default:
		return false
	}
}
