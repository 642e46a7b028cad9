package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rsl/internal/catalog"
	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/registry"
	"rsl/internal/search"
	"rsl/internal/source"
)

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(Options{
		Files:         source.NewFileSet(),
		Registry:      registry.New(0),
		Builtins:      cat,
		Locator:       search.Default(),
		FollowImports: true,
	})
}

// parseString: разбор виртуального файла под идентичностью "mem://name"
func parseString(t *testing.T, p *Parser, name, input string) *registry.Entry {
	t.Helper()
	id := p.Files().AddVirtual(name, []byte(input))
	entry, err := p.Load("mem://"+name, p.Files().Get(id))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return entry
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadPath(t *testing.T, p *Parser, path string) *registry.Entry {
	t.Helper()
	fileID, err := p.Files().Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	entry, err := p.Load(source.PathToURI(path), p.Files().Get(fileID))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return entry
}

func childNames(s entity.Scope) []string {
	out := make([]string, 0, len(s.Children()))
	for _, c := range s.Children() {
		out = append(out, c.Name())
	}
	return out
}

func child(t *testing.T, s entity.Scope, name string) entity.Entity {
	t.Helper()
	for _, c := range s.Children() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("%s has no child %q (children: %v)", s.Name(), name, childNames(s))
	return nil
}

func countCode(diags []diag.Diagnostic, code diag.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}
