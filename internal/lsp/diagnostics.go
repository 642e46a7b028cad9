package lsp

import (
	"path/filepath"

	"rsl/internal/diag"
	"rsl/internal/source"
)

// lspSeverity: в протоколе 1: ошибка, 4: подсказка.
func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	case diag.SevInfo:
		return 3
	default:
		return 4
	}
}

func lspTags(tags []diag.Tag) []int {
	var out []int
	for _, t := range tags {
		switch t {
		case diag.TagUnnecessary:
			out = append(out, 1)
		case diag.TagDeprecated:
			out = append(out, 2)
		}
	}
	return out
}

// convertDiagnostics renders the diagnostics of uri, at most maxDiagnostics
// of them. Caller holds s.mu.
func (s *Server) convertDiagnostics(uri string, diags []diag.Diagnostic) []lspDiagnostic {
	file, ok := s.engine.File(uri)
	if !ok {
		return nil
	}
	out := make([]lspDiagnostic, 0, min(len(diags), s.maxDiagnostics))
	for _, d := range diags {
		if len(out) >= s.maxDiagnostics {
			break
		}
		if d.Primary.File != file.ID {
			continue
		}
		out = append(out, lspDiagnostic{
			Range:              rangeForSpan(file, d.Primary),
			Severity:           lspSeverity(d.Severity),
			Code:               d.Code.ID(),
			Source:             "rsl",
			Message:            d.Message,
			Tags:               lspTags(d.Tags),
			RelatedInformation: s.relatedInformation(d.Notes),
		})
	}
	return out
}

// relatedInformation maps notes to locations; notes pointing into files
// the engine no longer holds are dropped.
func (s *Server) relatedInformation(notes []diag.Note) []diagnosticRelatedInformation {
	var out []diagnosticRelatedInformation
	for _, n := range notes {
		uri, file := s.noteTarget(n.Span.File)
		if file == nil {
			continue
		}
		out = append(out, diagnosticRelatedInformation{
			Location: location{URI: uri, Range: rangeForSpan(file, n.Span)},
			Message:  n.Msg,
		})
	}
	return out
}

func (s *Server) noteTarget(id source.FileID) (string, *source.File) {
	if unit, ok := s.engine.UnitForFile(id); ok {
		return unit.ID(), unit.File()
	}
	file := s.engine.Files().Get(id)
	if file == nil || !filepath.IsAbs(filepath.FromSlash(file.Path)) {
		return "", nil
	}
	return source.PathToURI(file.Path), file
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for uri := range prev {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logger.Warn().Err(err).Str("uri", uri).Msg("failed to clear diagnostics")
		}
	}
}
