package lsp

import (
	"encoding/json"

	"rsl/internal/entity"
)

const (
	completionItemKindText     = 1
	completionItemKindMethod   = 2
	completionItemKindFunction = 3
	completionItemKindVariable = 6
	completionItemKindClass    = 7
	completionItemKindModule   = 9
	completionItemKindProperty = 10
	completionItemKindConstant = 21
)

func completionKind(k entity.Kind) int {
	switch k {
	case entity.KindMethod:
		return completionItemKindMethod
	case entity.KindFunction:
		return completionItemKindFunction
	case entity.KindVariable:
		return completionItemKindVariable
	case entity.KindClass:
		return completionItemKindClass
	case entity.KindUnit, entity.KindImport:
		return completionItemKindModule
	case entity.KindProperty:
		return completionItemKindProperty
	case entity.KindConstant:
		return completionItemKindConstant
	default:
		return completionItemKindText
	}
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	items := s.buildCompletion(uri, params.Position)
	s.mu.Unlock()
	return s.sendResponse(msg.ID, completionList{IsIncomplete: false, Items: items})
}

func (s *Server) buildCompletion(uri string, pos position) []completionItem {
	file, ok := s.engine.File(uri)
	if !ok {
		return []completionItem{}
	}
	found := s.engine.CompletionsAt(uri, offsetForPositionInFile(file, pos))
	items := make([]completionItem, 0, len(found))
	for _, it := range found {
		item := completionItem{
			Label:      it.Label,
			Kind:       completionKind(it.Kind),
			Detail:     it.Detail,
			InsertText: it.InsertText,
		}
		if it.Documentation != "" {
			item.Documentation = &markupContent{Kind: "markdown", Value: it.Documentation}
		}
		items = append(items, item)
	}
	return items
}

// handleCompletionResolve returns the item unchanged: everything is filled
// in by the completion request already.
func (s *Server) handleCompletionResolve(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, msg.Params)
}
