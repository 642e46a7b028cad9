// Package diag defines the diagnostic model shared by the parser, the import
// resolver and the lint pass.
//
// Diagnostic is the central record:
//
//   - Severity – Hint, Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Primary – the source.Span the editor underlines.
//   - Tags – rendering hints such as Deprecated.
//   - Notes – secondary spans, e.g. the real location of a problem found in an
//     imported file.
//
// Producers emit through a Reporter, usually via ReportBuilder
// (ReportError/ReportWarning/ReportInfo/ReportHint ... Emit). BagReporter
// collects into a Bag, which supports sorting, deduplication and filtering.
//
// Package diag does no formatting and no IO: rendering lives in
// internal/diagfmt and in the language server.
package diag
