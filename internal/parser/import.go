package parser

import (
	"errors"
	"fmt"
	"strings"

	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/lexer"
	"rsl/internal/registry"
	"rsl/internal/search"
	"rsl/internal/source"
	"rsl/internal/token"
)

// parseImport: "import a, "b.mac", c;"
func (up *unitParser) parseImport(c *lexer.Cursor, scope entity.Scope) {
	for {
		nameTok := c.NextToken(true)
		if nameTok.IsEOF() || nameTok.Is(';') {
			return
		}
		if nameTok.Kind == token.Punct {
			continue
		}
		up.importOne(scope, nameTok)

		c.Save()
		delim := c.NextToken(true)
		switch {
		case delim.Is(','):
			c.Discard()
		case delim.Is(';'):
			c.Discard()
			return
		default:
			// нет ';': дальше уже не импорт
			c.Restore()
			return
		}
	}
}

func unquote(text string) string {
	if len(text) >= 2 && token.IsQuote(text[0]) && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return strings.Trim(text, `"'`)
}

// importOne resolves one imported name and records an ImportRef.
//
// A file already registered and ready is reused as is. A file still on the
// loading stack closes a cycle and is reported in the importing unit only.
// A new file is registered, parsed recursively and its warnings and errors
// are re-reported at the import name.
func (up *unitParser) importOne(scope entity.Scope, nameTok token.Token) {
	name := unquote(nameTok.Text)
	span := nameTok.Span
	if name == "" {
		return
	}
	opts := up.p.opts
	if !opts.FollowImports || opts.Locator == nil {
		scope.AddChild(entity.NewImportRef(name, "", name, span))
		return
	}

	full := opts.Locator.Find(up.dir, name)
	if full == "" {
		diag.ReportError(up.rep, diag.ImpNotFound, span, fmt.Sprintf("Cannot find file %q", name)).Emit()
		return
	}
	display, _ := source.RelativePath(full, up.dir)
	if search.IsBinary(full) {
		diag.ReportHint(up.rep, diag.ImpBinaryNoSource, span,
			fmt.Sprintf("%q is a compiled module, its declarations are not available", display)).Emit()
		scope.AddChild(entity.NewImportRef(name, "", display, span))
		return
	}

	id := opts.Identity(full)
	if entry, ok := opts.Registry.Lookup(id); ok {
		if entry.State == registry.StateLoading {
			diag.ReportError(up.rep, diag.ImpCycle, span, fmt.Sprintf("Cycle import in %q", display)).Emit()
		} else {
			up.mergeNested(entry, span)
		}
		scope.AddChild(entity.NewImportRef(name, id, display, span))
		return
	}

	fileID, err := opts.Files.LoadEncoded(full, opts.Encoding)
	if err != nil {
		up.p.logger.Warn().Err(err).Str("path", full).Msg("import unreadable")
		diag.ReportError(up.rep, diag.ImpUnreadable, span, fmt.Sprintf("Cannot read file %q: %v", display, err)).Emit()
		return
	}
	entry, err := up.p.Load(id, opts.Files.Get(fileID))
	if errors.Is(err, registry.ErrDepthExceeded) {
		diag.ReportWarning(up.rep, diag.ImpDepthExceeded, span,
			fmt.Sprintf("Import chain deeper than %d, %q is not loaded", opts.Registry.MaxDepth(), display)).Emit()
		scope.AddChild(entity.NewImportRef(name, "", display, span))
		return
	}
	up.mergeNested(entry, span)
	scope.AddChild(entity.NewImportRef(name, id, display, span))
}

// mergeNested re-reports the problems of an imported unit at the import
// name; hints and infos stay with the imported file.
func (up *unitParser) mergeNested(entry *registry.Entry, at source.Span) {
	for _, d := range entry.Diagnostics {
		if d.Severity < diag.SevWarning {
			continue
		}
		up.rep.Report(d.Relocated(diag.ImpNestedProblem, at, "in "+entry.ID))
	}
}
