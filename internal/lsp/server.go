package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rsl/internal/engine"
	"rsl/internal/source"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// DiscoverFunc lists the RSL files of a workspace for preloading.
type DiscoverFunc func(root string) ([]string, error)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Engine         engine.Options
	MaxDiagnostics int
	// UppercaseURIs upper-cases Windows drive letters in document URIs.
	UppercaseURIs bool
	// Preload parses the whole workspace on "initialized" via Discover.
	Preload  bool
	Discover DiscoverFunc
	Version  string
	Logger   *zerolog.Logger
}

// Server handles stdio JSON-RPC for the RSL language server. Messages are
// processed one at a time; every edit is parsed before the next message
// is read.
type Server struct {
	in        *bufio.Reader
	out       *bufio.Writer
	sendMu    sync.Mutex
	mu        sync.Mutex
	engine    *engine.Engine
	docs      map[string]*document
	published map[string]struct{}

	workspaceRoot     string
	shutdownRequested bool
	maxDiagnostics    int
	upperDrive        bool
	preload           bool
	discover          DiscoverFunc
	version           string
	logger            zerolog.Logger
}

// NewServer constructs a new LSP server with a fresh engine.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) (*Server, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("component", "lsp").Logger()
	engOpts := opts.Engine
	if engOpts.Logger == nil {
		engOpts.Logger = &logger
	}
	eng, err := engine.New(engOpts)
	if err != nil {
		return nil, fmt.Errorf("lsp: %w", err)
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		engine:         eng,
		docs:           make(map[string]*document),
		published:      make(map[string]struct{}),
		maxDiagnostics: maxDiagnostics,
		upperDrive:     opts.UppercaseURIs,
		preload:        opts.Preload,
		discover:       opts.Discover,
		version:        opts.Version,
		logger:         logger,
	}, nil
}

// Run serves LSP requests until exit or end of input.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn().Err(err).Msg("failed to parse message")
			continue
		}
		if msg.Method == "" {
			// ответы клиента на наши запросы нам не нужны
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	s.logger.Debug().Str("method", msg.Method).Msg("request")
	if msg.Method == "exit" {
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	}
	if s.shutdownRequested {
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized()
	case "shutdown":
		return s.handleShutdown(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "completionItem/resolve":
		return s.handleCompletionResolve(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "workspace/symbol":
		return s.handleWorkspaceSymbol(msg)
	case "getMacros":
		return s.handleGetMacros(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := workspaceRoot(params)
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()
	s.applySettings(params.InitializationOptions)
	s.logger.Info().Str("root", root).Msg("initialize")

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
				Save: saveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{"."},
				ResolveProvider:   true,
			},
			HoverProvider:           true,
			DefinitionProvider:      true,
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: true,
		},
		ServerInfo: &serverInfo{Name: "rsl", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleInitialized() error {
	s.mu.Lock()
	root := s.workspaceRoot
	s.mu.Unlock()
	if root == "" {
		// клиент открыл отдельный файл: сообщаем, что искать импорты негде
		return s.sendNotification("noRootFolder", nil)
	}
	if s.preload {
		s.preloadWorkspace(root)
	}
	return nil
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.shutdownRequested = true
	s.clearPublishedDiagnostics()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) canonicalURI(uri string) string {
	return source.CanonicalURI(uri, s.upperDrive)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.badNotification(msg, err)
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	doc := &document{text: params.TextDocument.Text, version: params.TextDocument.Version}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return s.reparse(uri, doc)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.badNotification(msg, err)
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.apply(params.TextDocument.Version, params.ContentChanges)
	s.mu.Unlock()
	return s.reparse(uri, doc)
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.badNotification(msg, err)
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.reparse(uri, doc)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.badNotification(msg, err)
	}
	uri := s.canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, uri)
	if err := s.engine.Close(uri); err != nil {
		s.logger.Warn().Err(err).Str("uri", uri).Msg("close")
	}
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		return s.sendPublish(uri, nil, nil)
	}
	return nil
}

// reparse replaces the unit of uri with the document text and publishes
// the resulting diagnostics.
func (s *Server) reparse(uri string, doc *document) error {
	s.mu.Lock()
	diags := s.engine.ParseOrReplace(uri, doc.text)
	list := s.convertDiagnostics(uri, diags)
	s.published[uri] = struct{}{}
	version := doc.version
	s.mu.Unlock()
	s.logger.Debug().Str("uri", uri).Int("version", version).Int("diagnostics", len(list)).Msg("parsed")
	return s.sendPublish(uri, &version, list)
}

func (s *Server) badNotification(msg *rpcMessage, err error) error {
	s.logger.Warn().Err(err).Str("method", msg.Method).Msg("invalid params")
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
