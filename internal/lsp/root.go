package lsp

import (
	"os"
	"path/filepath"

	"rsl/internal/source"
)

// workspaceRoot picks the folder the client opened: rootUri, then the
// deprecated rootPath, then the first workspace folder.
func workspaceRoot(params initializeParams) string {
	root := ""
	if params.RootURI != "" {
		root = source.URIToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = source.URIToPath(params.WorkspaceFolders[0].URI)
	}
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	return root
}

// preloadWorkspace parses every RSL file under the root so cross-file
// lookups work before the files are opened.
func (s *Server) preloadWorkspace(root string) {
	if root == "" || s.discover == nil {
		return
	}
	paths, err := s.discover(root)
	if err != nil {
		s.logger.Warn().Err(err).Str("root", root).Msg("workspace discovery failed")
		return
	}
	s.mu.Lock()
	n, err := s.engine.Preload(paths)
	s.mu.Unlock()
	ev := s.logger.Info()
	if err != nil {
		ev = s.logger.Warn().Err(err)
	}
	ev.Str("root", root).Int("files", n).Msg("workspace preloaded")
}
