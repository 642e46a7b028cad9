package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"rsl/internal/driver"
	"rsl/internal/engine"
	"rsl/internal/source"
)

// SymbolJSON is one outline entry with a resolved position.
type SymbolJSON struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Container string `json:"container,omitempty"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
}

// FileOutlineJSON is the outline of one file.
type FileOutlineJSON struct {
	File    string       `json:"file"`
	Symbols []SymbolJSON `json:"symbols"`
}

func outlineOf(f *source.File, syms []engine.Symbol) []SymbolJSON {
	out := make([]SymbolJSON, 0, len(syms))
	for _, s := range syms {
		var lc source.LineCol
		if f != nil && s.Span.File == f.ID {
			lc = f.LineCol(s.Span.Start)
		}
		out = append(out, SymbolJSON{
			Name:      s.Name,
			Kind:      s.Kind.String(),
			Container: s.Container,
			Line:      lc.Line,
			Col:       lc.Col,
		})
	}
	return out
}

// FormatOutlinePretty печатает дерево деклараций: вложенность по Container.
func FormatOutlinePretty(w io.Writer, files []driver.LoadedFile, mode PathMode, base string) error {
	for i, lf := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", formatPath(lf.File, mode, base)); err != nil {
			return err
		}
		for _, s := range outlineOf(lf.File, lf.Symbols) {
			indent := "  "
			if s.Container != "" {
				indent = "    "
			}
			if _, err := fmt.Fprintf(w, "%s%-8s %s  %d:%d\n", indent, s.Kind, s.Name, s.Line, s.Col); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatOutlineJSON выводит outline всех файлов в JSON.
func FormatOutlineJSON(w io.Writer, files []driver.LoadedFile, mode PathMode, base string) error {
	out := make([]FileOutlineJSON, 0, len(files))
	for _, lf := range files {
		out = append(out, FileOutlineJSON{
			File:    formatPath(lf.File, mode, base),
			Symbols: outlineOf(lf.File, lf.Symbols),
		})
	}
	return encodeIndented(w, out)
}

// FormatIndexPretty печатает сводку индексации: по строке на файл.
func FormatIndexPretty(w io.Writer, res *driver.IndexResult) error {
	var errs, symbols int
	for _, f := range res.Files {
		path := f.Path
		if rel, err := source.RelativePath(f.Path, res.Root); err == nil {
			path = rel
		}
		status := fmt.Sprintf("%d symbols, %d diagnostics", len(f.Symbols), len(f.Diagnostics))
		if f.Error != "" {
			status = "error: " + f.Error
		}
		if len(f.Imports) > 0 {
			status += " (imports " + strings.Join(f.Imports, ", ") + ")"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", path, status); err != nil {
			return err
		}
		errs += f.Errors()
		symbols += len(f.Symbols)
	}
	_, err := fmt.Fprintf(w, "%d files, %d symbols, %d errors, %d cached\n",
		len(res.Files), symbols, errs, res.CacheHits)
	return err
}

// FormatIndexJSON выводит сводки файлов как есть.
func FormatIndexJSON(w io.Writer, res *driver.IndexResult) error {
	return encodeIndented(w, struct {
		Root      string               `json:"root"`
		CacheHits int                  `json:"cache_hits"`
		Files     []driver.FileSummary `json:"files"`
	}{res.Root, res.CacheHits, res.Files})
}
