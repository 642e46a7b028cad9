package engine

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/source"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func labels(items []entity.CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func at(t *testing.T, text, needle string) uint32 {
	t.Helper()
	i := strings.Index(text, needle)
	if i < 0 {
		t.Fatalf("%q not in text", needle)
	}
	return uint32(i)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseOrReplaceAddsLint(t *testing.T) {
	e := newTestEngine(t)
	diags := e.ParseOrReplace("mem://rec.mac", "record R;\n")
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want parser hint and lint info", len(diags))
	}
	codes := []diag.Code{diags[0].Code, diags[1].Code}
	if !slices.Contains(codes, diag.SynDeprecatedRecord) || !slices.Contains(codes, diag.LntDeprecated) {
		t.Errorf("codes = %v", codes)
	}

	// повторный разбор заменяет дерево
	diags = e.ParseOrReplace("mem://rec.mac", "var r;\n")
	if len(diags) != 0 {
		t.Errorf("stale diagnostics: %v", diags)
	}
	unit, _ := e.Unit("mem://rec.mac")
	if len(unit.Children()) != 1 || unit.Children()[0].Name() != "r" {
		t.Errorf("tree not replaced")
	}
	if len(e.Units()) != 1 {
		t.Errorf("units = %v", e.Units())
	}
}

func TestGeneralCompletion(t *testing.T) {
	e := newTestEngine(t)
	e.ParseOrReplace("mem://other.mac", "var exported;\nlocal var hidden;\n")
	text := "var alpha;\n\nvar beta;\n"
	e.ParseOrReplace("mem://main.mac", text)

	got := labels(e.CompletionsAt("mem://main.mac", at(t, text, "\nvar beta")))
	if !slices.Contains(got, "alpha") || slices.Contains(got, "beta") {
		t.Errorf("declaration order ignored: %v", got)
	}
	if !slices.Contains(got, "exported") || slices.Contains(got, "hidden") {
		t.Errorf("other unit visibility wrong: %v", got)
	}
	if !slices.Contains(got, "StrLen") {
		t.Errorf("catalog missing")
	}
}

func TestMemberCompletion(t *testing.T) {
	e := newTestEngine(t)
	text := "class Point\n  var x;\n  local var secret;\n  macro Move() end\nend\nvar pt = Point;\nvar arr = TArray;\npt."
	e.ParseOrReplace("mem://m.mac", text)

	got := labels(e.CompletionsAt("mem://m.mac", uint32(len(text))))
	if !slices.Equal(got, []string{"x", "Move"}) {
		t.Errorf("user class members = %v", got)
	}

	text2 := strings.TrimSuffix(text, "pt.") + "arr.Si"
	e.ParseOrReplace("mem://m.mac", text2)
	got = labels(e.CompletionsAt("mem://m.mac", uint32(len(text2))))
	if !slices.Contains(got, "Size") || !slices.Contains(got, "MarkAsTable") {
		t.Errorf("builtin members = %v", got)
	}
}

func TestNoCompletionInComments(t *testing.T) {
	e := newTestEngine(t)
	text := "// note var\nvar a;\n"
	e.ParseOrReplace("mem://c.mac", text)
	if got := e.CompletionsAt("mem://c.mac", 5); got != nil {
		t.Errorf("completion inside comment: %v", labels(got))
	}
	h, ok := e.HoverAt("mem://c.mac", 5)
	if !ok || h.Contents != CommentHover {
		t.Errorf("hover = %+v", h)
	}
}

func TestHover(t *testing.T) {
	e := newTestEngine(t)
	text := "// adds\nmacro Add(a: integer): integer\nend\nvar n = 1;\nAdd(n);\nStrLen(n);\nfoo;\n"
	e.ParseOrReplace("mem://h.mac", text)

	h, ok := e.HoverAt("mem://h.mac", at(t, text, "Add(n)")+1)
	if !ok {
		t.Fatalf("no hover on Add")
	}
	if want := "```rsl\nmacro Add(a: integer): integer\n```\n\nadds"; h.Contents != want {
		t.Errorf("macro hover = %q", h.Contents)
	}

	h, _ = e.HoverAt("mem://h.mac", at(t, text, "n);")+0)
	if h.Contents != "```rsl\nvar n: integer = 1\n```" {
		t.Errorf("variable hover = %q", h.Contents)
	}

	h, _ = e.HoverAt("mem://h.mac", at(t, text, "StrLen")+2)
	if !strings.Contains(h.Contents, "StrLen(str: string): integer") {
		t.Errorf("catalog hover = %q", h.Contents)
	}

	h, _ = e.HoverAt("mem://h.mac", at(t, text, "foo")+1)
	if h.Contents != "Token 'foo' not found" {
		t.Errorf("miss hover = %q", h.Contents)
	}
}

func TestDefinitionAcrossImports(t *testing.T) {
	dir := t.TempDir()
	libPath := writeFile(t, dir, "lib.mac", "var shared = 1;\n")
	mainText := "import lib;\nshared;\n"
	mainPath := writeFile(t, dir, "main.mac", mainText)
	mainURI := source.PathToURI(mainPath)

	e := newTestEngine(t)
	if diags := e.ParseOrReplace(mainURI, mainText); len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	loc, ok := e.DefinitionAt(mainURI, at(t, mainText, "shared")+1)
	if !ok {
		t.Fatalf("definition not found")
	}
	if loc.URI != source.PathToURI(libPath) || loc.Span.Start != 4 || loc.Span.End != 10 {
		t.Errorf("location = %+v", loc)
	}

	loc, ok = e.DefinitionAt(mainURI, at(t, mainText, "lib")+1)
	if !ok || loc.URI != source.PathToURI(libPath) || loc.Span.Start != 0 {
		t.Errorf("import definition = %+v, %v", loc, ok)
	}

	libFile, ok := e.File(source.PathToURI(libPath))
	if !ok {
		t.Fatalf("imported file not registered")
	}
	if unit, ok := e.UnitForFile(libFile.ID); !ok || unit.ID() != source.PathToURI(libPath) {
		t.Errorf("UnitForFile(lib) = %v, %v", unit, ok)
	}
	if _, ok := e.UnitForFile(libFile.ID + 100); ok {
		t.Errorf("unknown file id resolved")
	}
}

func TestCyclicImportsThroughEngine(t *testing.T) {
	dir := t.TempDir()
	aText := "import b;\nvar fromA;\n"
	aPath := writeFile(t, dir, "a.mac", aText)
	bPath := writeFile(t, dir, "b.mac", "import a;\nvar fromB;\n")

	e := newTestEngine(t)
	e.ParseOrReplace(source.PathToURI(aPath), aText)

	cycles := 0
	for _, d := range e.Diagnostics(source.PathToURI(bPath)) {
		if d.Code == diag.ImpCycle {
			cycles++
		}
	}
	if cycles != 1 {
		t.Fatalf("cycle diagnostics in b = %d", cycles)
	}
	for _, path := range []string{aPath, bPath} {
		if _, ok := e.Unit(source.PathToURI(path)); !ok {
			t.Errorf("%s incomplete", filepath.Base(path))
		}
	}
}

func TestLazyInheritance(t *testing.T) {
	e := newTestEngine(t)
	text := "class (Base) Derived\n  var own;\nend\nvar d = Derived;\nd."
	e.ParseOrReplace("mem://derived.mac", text)
	off := uint32(len(text))

	if got := labels(e.CompletionsAt("mem://derived.mac", off)); !slices.Equal(got, []string{"own"}) {
		t.Fatalf("before Base = %v", got)
	}
	e.ParseOrReplace("mem://base.mac", "class Base\n  var inherited;\nend\n")
	if got := labels(e.CompletionsAt("mem://derived.mac", off)); !slices.Equal(got, []string{"own", "inherited"}) {
		t.Fatalf("after Base = %v", got)
	}
	e.ParseOrReplace("mem://base.mac", "class Base\n  var renamed;\nend\n")
	if got := labels(e.CompletionsAt("mem://derived.mac", off)); !slices.Equal(got, []string{"own", "renamed"}) {
		t.Fatalf("after Base edit = %v", got)
	}
}

func TestOutline(t *testing.T) {
	e := newTestEngine(t)
	e.SetFollowImports(false) // ссылка на импорт остаётся в дереве
	e.ParseOrReplace("mem://o.mac", "import lib;\nvar g = 1;\nclass C\n  var p;\n  macro M()\n    var local;\n  end\nend\nmacro F(x)\nend\n")
	syms := e.Outline("mem://o.mac")
	var got []string
	for _, s := range syms {
		got = append(got, s.Container+"/"+s.Name)
	}
	want := []string{"/g: integer", "/C", "C/p: variant", "C/M: variant", "/F: variant"}
	if !slices.Equal(got, want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
}

func TestWorkspaceSymbols(t *testing.T) {
	e := newTestEngine(t)
	e.ParseOrReplace("mem://w1.mac", "macro MoveAll()\nend\nvar total;\n")
	e.ParseOrReplace("mem://w2.mac", "class Mover\nend\n")

	got := e.WorkspaceSymbols("mov")
	if len(got) != 2 {
		t.Fatalf("symbols = %+v", got)
	}
	if got[0].Name != "Mover" {
		t.Errorf("closest match first: %+v", got)
	}
	if all := e.WorkspaceSymbols(""); len(all) != 3 {
		t.Errorf("all symbols = %d", len(all))
	}
}

func TestPreloadAndClose(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "one.mac", "var one;\n")
	p2 := writeFile(t, dir, "two.mac", "var two;\n")

	e := newTestEngine(t)
	n, err := e.Preload([]string{p1, p2, filepath.Join(dir, "missing.mac")})
	if n != 2 || err == nil {
		t.Fatalf("preload = %d, %v", n, err)
	}

	uri := source.PathToURI(p1)
	e.ParseOrReplace(uri, "var edited;\n")
	if err := e.Close(uri); err != nil {
		t.Fatalf("close: %v", err)
	}
	unit, ok := e.Unit(uri)
	if !ok || unit.Children()[0].Name() != "one" {
		t.Errorf("close must restore the saved content")
	}

	e.ParseOrReplace("mem://scratch.mac", "var s;\n")
	if err := e.Close("mem://scratch.mac"); err != nil {
		t.Fatalf("close scratch: %v", err)
	}
	if _, ok := e.Unit("mem://scratch.mac"); ok {
		t.Errorf("scratch unit kept")
	}
}
