package driver

import (
	"rsl/internal/diag"
	"rsl/internal/engine"
	"rsl/internal/entity"
	"rsl/internal/source"
)

// FileSummary is what indexing keeps of one file: its outline, its
// diagnostics and its imports, with positions resolved to lines.
type FileSummary struct {
	Schema      uint16
	Path        string
	URI         string
	Hash        Digest
	Symbols     []SymbolSummary
	Diagnostics []DiagnosticSummary
	Imports     []string
	Error       string `msgpack:",omitempty"`
}

// SymbolSummary is one outline entry.
type SymbolSummary struct {
	Name      string
	Kind      entity.Kind
	Container string `msgpack:",omitempty"`
	Line      uint32
	Col       uint32
}

// DiagnosticSummary is one diagnostic with a resolved start position.
type DiagnosticSummary struct {
	Severity uint8
	Code     string
	Message  string
	Line     uint32
	Col      uint32
}

// Errors counts error-level diagnostics.
func (s *FileSummary) Errors() int {
	n := 0
	for _, d := range s.Diagnostics {
		if d.Severity >= uint8(diag.SevError) {
			n++
		}
	}
	return n
}

func summarize(eng *engine.Engine, path, uri string) (FileSummary, bool) {
	unit, ok := eng.Unit(uri)
	if !ok {
		return FileSummary{}, false
	}
	file := unit.File()
	sum := FileSummary{Path: path, URI: uri}
	for _, sym := range eng.Outline(uri) {
		lc := file.LineCol(sym.Span.Start)
		sum.Symbols = append(sum.Symbols, SymbolSummary{
			Name:      sym.Name,
			Kind:      sym.Kind,
			Container: sym.Container,
			Line:      lc.Line,
			Col:       lc.Col,
		})
	}
	for _, d := range eng.Diagnostics(uri) {
		lc := lineColIn(file, d.Primary)
		sum.Diagnostics = append(sum.Diagnostics, DiagnosticSummary{
			Severity: uint8(d.Severity),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Line:     lc.Line,
			Col:      lc.Col,
		})
	}
	for _, child := range unit.Children() {
		if ref, ok := child.(*entity.ImportRef); ok {
			sum.Imports = append(sum.Imports, ref.Name())
		}
	}
	return sum, true
}

func lineColIn(file *source.File, span source.Span) source.LineCol {
	if span.File != file.ID {
		return source.LineCol{}
	}
	return file.LineCol(span.Start)
}
