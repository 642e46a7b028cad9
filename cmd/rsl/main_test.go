package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"rsl/internal/version"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("invalid mode accepted")
	}
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mac", "sub/b.mac", "note.txt"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("var x;\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "note.txt")

	files, err := expandArgs(context.Background(), []string{single, dir}, []string{".mac"})
	if err != nil {
		t.Fatalf("expandArgs: %v", err)
	}
	want := []string{single, filepath.Join(dir, "a.mac"), filepath.Join(dir, "sub", "b.mac")}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}

	if _, err := expandArgs(context.Background(), []string{t.TempDir()}, nil); err == nil {
		t.Errorf("empty directory must be an error")
	}
	if _, err := expandArgs(context.Background(), []string{filepath.Join(dir, "missing.mac")}, nil); err == nil {
		t.Errorf("missing file must be an error")
	}
}

func TestRenderVersionJSON(t *testing.T) {
	orig := version.GitCommit
	defer func() { version.GitCommit = orig }()
	version.GitCommit = "abc123"

	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "rsl" || payload.GitCommit != "abc123" || payload.BuildDate != "" {
		t.Errorf("payload = %+v", payload)
	}
}
