package lsp

import "encoding/json"

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn().Err(err).Msg("bad didChangeConfiguration payload")
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

// applySettings понимает секцию "RSLanguageServer" клиента VS Code.
// Незнакомые ключи молча пропускаются.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	if settings.RSL.Import != nil {
		s.mu.Lock()
		s.engine.SetFollowImports(*settings.RSL.Import)
		s.mu.Unlock()
		s.logger.Info().Bool("import", *settings.RSL.Import).Msg("settings applied")
	}
}
