package lsp

import (
	"encoding/json"

	"rsl/internal/engine"
	"rsl/internal/entity"
)

const (
	symbolKindFile     = 1
	symbolKindModule   = 2
	symbolKindClass    = 5
	symbolKindMethod   = 6
	symbolKindProperty = 7
	symbolKindFunction = 12
	symbolKindVariable = 13
	symbolKindConstant = 14
)

func symbolKind(k entity.Kind) int {
	switch k {
	case entity.KindUnit:
		return symbolKindFile
	case entity.KindImport:
		return symbolKindModule
	case entity.KindClass:
		return symbolKindClass
	case entity.KindMethod:
		return symbolKindMethod
	case entity.KindProperty:
		return symbolKindProperty
	case entity.KindFunction:
		return symbolKindFunction
	case entity.KindConstant:
		return symbolKindConstant
	default:
		return symbolKindVariable
	}
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	result := s.symbolInformation(s.engine.Outline(uri))
	s.mu.Unlock()
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleWorkspaceSymbol(msg *rpcMessage) error {
	var params workspaceSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	s.mu.Lock()
	result := s.symbolInformation(s.engine.WorkspaceSymbols(params.Query))
	s.mu.Unlock()
	return s.sendResponse(msg.ID, result)
}

// symbolInformation renders outline entries; the file of each entry is
// looked up by its unit, since workspace results span many documents.
func (s *Server) symbolInformation(symbols []engine.Symbol) []symbolInformation {
	out := make([]symbolInformation, 0, len(symbols))
	for _, sym := range symbols {
		file, ok := s.engine.File(sym.URI)
		if !ok {
			continue
		}
		out = append(out, symbolInformation{
			Name:          sym.Name,
			Kind:          symbolKind(sym.Kind),
			Location:      location{URI: sym.URI, Range: rangeForSpan(file, sym.Span)},
			ContainerName: sym.Container,
		})
	}
	return out
}

// handleGetMacros answers the custom "getMacros" request with the
// identities of every parsed unit.
func (s *Server) handleGetMacros(msg *rpcMessage) error {
	s.mu.Lock()
	units := s.engine.Units()
	s.mu.Unlock()
	if units == nil {
		units = []string{}
	}
	return s.sendResponse(msg.ID, units)
}
