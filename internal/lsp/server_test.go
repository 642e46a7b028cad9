package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"rsl/internal/engine"
	"rsl/internal/source"
)

func newTestServer(t *testing.T, in io.Reader, out io.Writer) *Server {
	t.Helper()
	nop := zerolog.Nop()
	server, err := NewServer(in, out, ServerOptions{
		Engine: engine.DefaultOptions(),
		Logger: &nop,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func request(id int, method string, params any) map[string]any {
	msg := notification(method, params)
	msg["id"] = id
	return msg
}

func notification(method string, params any) map[string]any {
	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if params != nil {
		msg["params"] = params
	}
	return msg
}

func frame(t *testing.T, msgs ...map[string]any) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := writeMessage(&buf, payload); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	return &buf
}

func readAll(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func response(t *testing.T, msgs []rpcMessage, id string, into any) {
	t.Helper()
	for _, m := range msgs {
		if string(m.ID) != id || m.Method != "" {
			continue
		}
		if m.Error != nil {
			t.Fatalf("response %s: error %+v", id, m.Error)
		}
		if err := json.Unmarshal(m.Result, into); err != nil {
			t.Fatalf("decode response %s: %v", id, err)
		}
		return
	}
	t.Fatalf("no response with id %s", id)
}

func publications(t *testing.T, msgs []rpcMessage) []publishDiagnosticsParams {
	t.Helper()
	var out []publishDiagnosticsParams
	for _, m := range msgs {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p publishDiagnosticsParams
		if err := json.Unmarshal(m.Params, &p); err != nil {
			t.Fatalf("decode publish: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func docPosition(uri string, line, char int) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: line, Character: char},
	}
}

func TestServerSession(t *testing.T) {
	uri := source.PathToURI(filepath.Join(t.TempDir(), "main.mac"))
	text := "var alpha = 1;\nrecord r;\n"
	in := frame(t,
		request(1, "initialize", map[string]any{}),
		notification("initialized", map[string]any{}),
		notification("textDocument/didOpen", didOpenTextDocumentParams{
			TextDocument: textDocumentItem{URI: uri, LanguageID: "rsl", Version: 1, Text: text},
		}),
		request(2, "textDocument/hover", docPosition(uri, 0, 5)),
		request(3, "textDocument/completion", docPosition(uri, 2, 0)),
		request(4, "textDocument/definition", docPosition(uri, 1, 7)),
		request(5, "textDocument/documentSymbol", documentSymbolParams{TextDocument: textDocumentIdentifier{URI: uri}}),
		request(6, "getMacros", nil),
		request(7, "shutdown", nil),
		notification("exit", nil),
	)
	var out bytes.Buffer
	server := newTestServer(t, in, &out)
	if err := server.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("run: %v", err)
	}
	msgs := readAll(t, &out)

	var init initializeResult
	response(t, msgs, "1", &init)
	caps := init.Capabilities
	if caps.CompletionProvider == nil || !slices.Equal(caps.CompletionProvider.TriggerCharacters, []string{"."}) {
		t.Errorf("completion capability = %+v", caps.CompletionProvider)
	}
	if !caps.HoverProvider || !caps.DefinitionProvider || !caps.DocumentSymbolProvider || !caps.WorkspaceSymbolProvider {
		t.Errorf("capabilities = %+v", caps)
	}

	if !slices.ContainsFunc(msgs, func(m rpcMessage) bool { return m.Method == "noRootFolder" }) {
		t.Errorf("noRootFolder not sent")
	}

	pubs := publications(t, msgs)
	if len(pubs) != 2 {
		t.Fatalf("publications = %d, want open and shutdown", len(pubs))
	}
	if pubs[0].URI != uri {
		t.Errorf("publish uri = %q", pubs[0].URI)
	}
	lintIdx := slices.IndexFunc(pubs[0].Diagnostics, func(d lspDiagnostic) bool { return d.Code == "LNT5001" })
	if lintIdx < 0 {
		t.Fatalf("lint diagnostic missing: %+v", pubs[0].Diagnostics)
	}
	lint := pubs[0].Diagnostics[lintIdx]
	if lint.Severity != 3 || !slices.Equal(lint.Tags, []int{2}) {
		t.Errorf("lint severity/tags = %d %v", lint.Severity, lint.Tags)
	}
	if lint.Range.Start != (position{Line: 1, Character: 0}) || lint.Range.End != (position{Line: 1, Character: 6}) {
		t.Errorf("lint range = %+v", lint.Range)
	}
	if len(pubs[1].Diagnostics) != 0 {
		t.Errorf("shutdown must clear diagnostics")
	}

	var h hover
	response(t, msgs, "2", &h)
	if h.Contents.Value != "```rsl\nvar alpha: integer = 1\n```" {
		t.Errorf("hover = %q", h.Contents.Value)
	}
	if h.Range == nil || h.Range.Start.Character != 4 || h.Range.End.Character != 9 {
		t.Errorf("hover range = %+v", h.Range)
	}

	var list completionList
	response(t, msgs, "3", &list)
	alpha := slices.IndexFunc(list.Items, func(it completionItem) bool { return it.Label == "alpha" })
	if alpha < 0 || list.Items[alpha].Kind != completionItemKindVariable {
		t.Errorf("alpha not offered as variable")
	}

	var loc location
	response(t, msgs, "4", &loc)
	if loc.URI != uri || loc.Range.Start != (position{Line: 1, Character: 7}) {
		t.Errorf("definition = %+v", loc)
	}

	var syms []symbolInformation
	response(t, msgs, "5", &syms)
	if len(syms) != 2 || syms[0].Name != "alpha: integer" || syms[0].Kind != symbolKindVariable {
		t.Errorf("symbols = %+v", syms)
	}

	var units []string
	response(t, msgs, "6", &units)
	if !slices.Equal(units, []string{uri}) {
		t.Errorf("getMacros = %v", units)
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	in := frame(t,
		request(1, "textDocument/unknown", nil),
		notification("exit", nil),
	)
	var out bytes.Buffer
	server := newTestServer(t, in, &out)
	if err := server.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("run: %v", err)
	}
	msgs := readAll(t, &out)
	if len(msgs) != 1 || msgs[0].Error == nil || msgs[0].Error.Code != codeMethodNotFound {
		t.Fatalf("unknown method answer = %+v", msgs)
	}
}

func TestRequestAfterShutdownRejected(t *testing.T) {
	in := frame(t,
		request(1, "shutdown", nil),
		request(2, "textDocument/hover", docPosition("file:///x.mac", 0, 0)),
	)
	var out bytes.Buffer
	server := newTestServer(t, in, &out)
	if err := server.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	msgs := readAll(t, &out)
	if len(msgs) != 2 || msgs[1].Error == nil || msgs[1].Error.Code != codeInvalidRequest {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestDidChangeAppliesIncrementalEdits(t *testing.T) {
	uri := source.PathToURI(filepath.Join(t.TempDir(), "edit.mac"))
	var out bytes.Buffer
	server := newTestServer(t, bytes.NewReader(nil), &out)

	openPayload, _ := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "var alpha;\n"},
	})
	if err := server.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: openPayload}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	changePayload, _ := json.Marshal(didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{
				Start: position{Line: 0, Character: 4},
				End:   position{Line: 0, Character: 9},
			},
			Text: "beta",
		}},
	})
	if err := server.handleDidChange(&rpcMessage{Method: "textDocument/didChange", Params: changePayload}); err != nil {
		t.Fatalf("didChange: %v", err)
	}

	if got := server.docs[uri].text; got != "var beta;\n" {
		t.Fatalf("document text = %q", got)
	}
	var names []string
	for _, it := range server.buildCompletion(uri, position{Line: 1, Character: 0}) {
		names = append(names, it.Label)
	}
	if !slices.Contains(names, "beta") || slices.Contains(names, "alpha") {
		t.Errorf("completion after edit = %v", names)
	}
	pubs := publications(t, readAll(t, &out))
	if len(pubs) != 2 || pubs[1].Version == nil || *pubs[1].Version != 2 {
		t.Errorf("publications = %+v", pubs)
	}
}

func TestImportSettingToggle(t *testing.T) {
	uri := source.PathToURI(filepath.Join(t.TempDir(), "imp.mac"))
	text := "import missing;\n"
	in := frame(t,
		notification("textDocument/didOpen", didOpenTextDocumentParams{
			TextDocument: textDocumentItem{URI: uri, Version: 1, Text: text},
		}),
		notification("workspace/didChangeConfiguration", map[string]any{
			"settings": map[string]any{"RSLanguageServer": map[string]any{"import": false}},
		}),
		notification("textDocument/didSave", didSaveTextDocumentParams{
			TextDocument: textDocumentIdentifier{URI: uri},
		}),
	)
	var out bytes.Buffer
	server := newTestServer(t, in, &out)
	if err := server.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	pubs := publications(t, readAll(t, &out))
	if len(pubs) != 2 {
		t.Fatalf("publications = %d", len(pubs))
	}
	if len(pubs[0].Diagnostics) != 1 || pubs[0].Diagnostics[0].Code != "IMP4001" || pubs[0].Diagnostics[0].Severity != 1 {
		t.Errorf("followed import = %+v", pubs[0].Diagnostics)
	}
	if len(pubs[1].Diagnostics) != 0 {
		t.Errorf("import must not be resolved when disabled: %+v", pubs[1].Diagnostics)
	}
}
