package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the scanned view.
	EOF

	// Ident is any accumulated run of non-stop characters that is not a keyword.
	Ident
	// String is a quoted literal including its quotes.
	String
	// Number is an identifier-like run starting with a digit.
	Number
	// Punct is a single stop character (parens, operators, separators).
	Punct

	// LineComment is the "//" opener, returned only when comments are not skipped.
	LineComment
	// BlockComment is the "/*" opener.
	BlockComment
	// BlockCommentEnd is a stray "*/".
	BlockCommentEnd

	kwBegin
	KwArray    // array
	KwEnd      // end
	KwOr       // or
	KwAnd      // and
	KwBreak    // break
	KwFile     // file
	KwPrivate  // private
	KwClass    // class
	KwFor      // for
	KwRecord   // record
	KwConst    // const
	KwIf       // if
	KwReturn   // return
	KwContinue // continue
	KwImport   // import
	KwVar      // var
	KwCpDos    // cpdos
	KwLocal    // local
	KwWhile    // while
	KwCpWin    // cpwin
	KwMacro    // macro
	KwWith     // with
	KwElif     // elif
	KwNot      // not
	KwElse     // else
	KwOnError  // onerror
	KwTrue     // true
	KwFalse    // false
	kwEnd
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	String:          "String",
	Number:          "Number",
	Punct:           "Punct",
	LineComment:     "LineComment",
	BlockComment:    "BlockComment",
	BlockCommentEnd: "BlockCommentEnd",
	KwArray:         "KwArray",
	KwEnd:           "KwEnd",
	KwOr:            "KwOr",
	KwAnd:           "KwAnd",
	KwBreak:         "KwBreak",
	KwFile:          "KwFile",
	KwPrivate:       "KwPrivate",
	KwClass:         "KwClass",
	KwFor:           "KwFor",
	KwRecord:        "KwRecord",
	KwConst:         "KwConst",
	KwIf:            "KwIf",
	KwReturn:        "KwReturn",
	KwContinue:      "KwContinue",
	KwImport:        "KwImport",
	KwVar:           "KwVar",
	KwCpDos:         "KwCpDos",
	KwLocal:         "KwLocal",
	KwWhile:         "KwWhile",
	KwCpWin:         "KwCpWin",
	KwMacro:         "KwMacro",
	KwWith:          "KwWith",
	KwElif:          "KwElif",
	KwNot:           "KwNot",
	KwElse:          "KwElse",
	KwOnError:       "KwOnError",
	KwTrue:          "KwTrue",
	KwFalse:         "KwFalse",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k > kwBegin && k < kwEnd
}

// IsComment reports whether k opens a comment.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}
