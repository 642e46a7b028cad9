package lsp

import "encoding/json"

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params definitionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	result := s.buildDefinition(uri, params.Position)
	s.mu.Unlock()
	if result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) buildDefinition(uri string, pos position) *location {
	file, ok := s.engine.File(uri)
	if !ok {
		return nil
	}
	loc, ok := s.engine.DefinitionAt(uri, offsetForPositionInFile(file, pos))
	if !ok {
		return nil
	}
	return &location{URI: loc.URI, Range: rangeForSpan(loc.File, loc.Span)}
}
