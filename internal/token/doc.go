// Package token defines lexical token kinds of the RSL macro language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Keywords are case-insensitive; Kind carries the classification,
//     Text keeps the original spelling.
//   - Builtin type names (integer, string, ...) are identifiers; they are
//     recognized by type inference, not by the lexer.
//   - Comment openers are tokens only when the scanner is asked to keep them.
package token
