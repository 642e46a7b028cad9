package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.mac")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.mac")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.mac"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 4, End: 10}
	if !s.Contains(4) || s.Contains(10) {
		t.Error("Contains must be half-open")
	}
	if s.ContainsStrict(4) || !s.ContainsStrict(5) {
		t.Error("ContainsStrict must exclude the start")
	}
	if got := s.Cover(Span{Start: 1, End: 6}); got.Start != 1 || got.End != 10 {
		t.Errorf("Cover = %v", got)
	}
	if got := s.WithEnd(2); got.End != 4 {
		t.Errorf("WithEnd below start must clamp, got %v", got)
	}
}

func TestURIRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a b", "x.mac")

	uri := PathToURI(path)
	if got := URIToPath(uri); got != path {
		t.Fatalf("URIToPath(PathToURI(p)) = %q, want %q", got, path)
	}
	if URIToPath("untitled:Untitled-1") != "" {
		t.Error("non-file scheme must map to empty path")
	}
	if CanonicalURI(uri, false) != uri {
		t.Errorf("canonical form changed %q", uri)
	}
}

func TestLookupEncoding(t *testing.T) {
	enc, err := LookupEncoding("CP866")
	if err != nil || enc == nil {
		t.Fatalf("cp866: %v %v", enc, err)
	}
	enc, err = LookupEncoding("utf-8")
	if err != nil || enc != nil {
		t.Fatalf("utf-8 must be a nil decoder: %v %v", enc, err)
	}
	if _, err := LookupEncoding("ebcdic"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestDecodeKeepsUTF8(t *testing.T) {
	enc, _ := LookupEncoding("cp866")
	in := []byte("строка")
	out, err := Decode(in, enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "строка" {
		t.Fatalf("valid UTF-8 must be kept, got %q", out)
	}
}
