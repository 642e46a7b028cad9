package parser

import (
	"path/filepath"
	"testing"

	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/registry"
	"rsl/internal/search"
	"rsl/internal/source"
)

func TestImportCycleReportedOnce(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.mac", "import b;\nvar x = 1;\n")
	pathB := writeFile(t, dir, "b.mac", "import a;\nvar y = 2;\n")

	p := newTestParser(t)
	entryA := loadPath(t, p, pathA)

	entryB, ok := p.Registry().Lookup(source.PathToURI(pathB))
	if !ok {
		t.Fatalf("b.mac was not registered")
	}
	if entryB.State != registry.StateReady {
		t.Fatalf("b.mac state = %v", entryB.State)
	}
	if n := countCode(entryB.Diagnostics, diag.ImpCycle); n != 1 {
		t.Fatalf("cycle diagnostics in b = %d: %s", n, diagnosticsSummary(entryB.Diagnostics))
	}
	if n := countCode(entryA.Diagnostics, diag.ImpCycle); n != 0 {
		t.Fatalf("cycle diagnostics in a = %d", n)
	}
	if n := countCode(entryA.Diagnostics, diag.ImpNestedProblem); n != 1 {
		t.Fatalf("nested diagnostics in a = %d: %s", n, diagnosticsSummary(entryA.Diagnostics))
	}
	nested := entryA.Diagnostics[0]
	if nested.Primary.File != entryA.Root.File().ID {
		t.Errorf("nested problem must point into a.mac")
	}
	if len(nested.Notes) != 1 || nested.Notes[0].Span.File != entryB.Root.File().ID {
		t.Errorf("original location lost: %+v", nested.Notes)
	}

	ref, ok := child(t, entryA.Root, "b").(*entity.ImportRef)
	if !ok {
		t.Fatalf("b is not an import reference")
	}
	if ref.TargetID != source.PathToURI(pathB) || ref.Path != "b.mac" {
		t.Errorf("import ref = %+v", ref)
	}
	if p.Registry().Depth() != 0 {
		t.Errorf("loading stack not empty: %d", p.Registry().Depth())
	}
}

func TestReadyImportIsReused(t *testing.T) {
	dir := t.TempDir()
	pathLib := writeFile(t, dir, "lib.mac", "var shared = 1;\n")
	pathA := writeFile(t, dir, "a.mac", "import lib;\n")
	pathC := writeFile(t, dir, "c.mac", "import lib;\n")

	p := newTestParser(t)
	loadPath(t, p, pathA)
	lib, _ := p.Registry().Lookup(source.PathToURI(pathLib))
	root := lib.Root

	entryC := loadPath(t, p, pathC)
	if len(entryC.Diagnostics) != 0 {
		t.Fatalf("reuse must be silent: %s", diagnosticsSummary(entryC.Diagnostics))
	}
	if lib.Root != root {
		t.Errorf("ready import was parsed again")
	}
	if p.Registry().Len() != 3 {
		t.Errorf("registry size = %d", p.Registry().Len())
	}
}

func TestImportNotFound(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.mac", "import nothere;\nvar x;\n")

	p := newTestParser(t)
	entry := loadPath(t, p, pathA)
	if len(entry.Diagnostics) != 1 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(entry.Diagnostics))
	}
	d := entry.Diagnostics[0]
	if d.Code != diag.ImpNotFound || d.Severity != diag.SevError {
		t.Errorf("unexpected %+v", d)
	}
	if d.Message != `Cannot find file "nothere"` {
		t.Errorf("message = %q", d.Message)
	}
	if got := childNames(entry.Root); len(got) != 1 || got[0] != "x" {
		t.Errorf("children = %v", got)
	}
}

func TestBinaryImportIsNotParsed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "native.d32", "\x00\x01")
	pathA := writeFile(t, dir, "a.mac", `import "native";`)

	p := newTestParser(t)
	entry := loadPath(t, p, pathA)
	ref, ok := child(t, entry.Root, "native").(*entity.ImportRef)
	if !ok {
		t.Fatalf("native is not an import reference")
	}
	if ref.TargetID != "" || ref.Path != "native.d32" {
		t.Errorf("ref = %+v", ref)
	}
	if p.Registry().Len() != 1 {
		t.Errorf("binary module registered")
	}
	if n := countCode(entry.Diagnostics, diag.ImpBinaryNoSource); n != 1 {
		t.Errorf("binary hints = %d, want 1", n)
	}
}

func TestImportDepthCap(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.mac", "import b;\n")
	writeFile(t, dir, "b.mac", "var y;\n")

	p := New(Options{
		Files:         source.NewFileSet(),
		Registry:      registry.New(1),
		Locator:       search.Default(),
		FollowImports: true,
	})
	entry := loadPath(t, p, pathA)
	if n := countCode(entry.Diagnostics, diag.ImpDepthExceeded); n != 1 {
		t.Fatalf("depth diagnostics = %d: %s", n, diagnosticsSummary(entry.Diagnostics))
	}
	if _, ok := p.Registry().Lookup(source.PathToURI(filepath.Join(dir, "b.mac"))); ok {
		t.Errorf("b.mac registered past the depth cap")
	}
}

func TestImportsNotFollowed(t *testing.T) {
	p := New(Options{Locator: search.Default()})
	entry := parseString(t, p, "nofollow.mac", "import a, b;\nvar z;\n")
	if len(entry.Diagnostics) != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(entry.Diagnostics))
	}
	want := []string{"a", "b", "z"}
	got := childNames(entry.Root)
	if len(got) != len(want) {
		t.Fatalf("children = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v", got)
		}
	}
}
