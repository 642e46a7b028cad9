package lsp

import "encoding/json"

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	result := s.buildHover(uri, params.Position)
	s.mu.Unlock()
	return s.sendResponse(msg.ID, result)
}

func (s *Server) buildHover(uri string, pos position) *hover {
	file, ok := s.engine.File(uri)
	if !ok {
		return nil
	}
	h, ok := s.engine.HoverAt(uri, offsetForPositionInFile(file, pos))
	if !ok {
		return nil
	}
	r := rangeForSpan(file, h.Span)
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: h.Contents},
		Range:    &r,
	}
}
