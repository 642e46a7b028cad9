package lsp

import (
	"strings"
	"testing"

	"rsl/internal/source"
)

func TestUTF16SpanMapping(t *testing.T) {
	src := strings.Join([]string{
		"var имя = \"🙂\";",
		"macro Тест()",
		"end",
		"",
	}, "\n")
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("utf16.mac", []byte(src)))

	cases := []struct {
		needle string
		pos    position
	}{
		{"имя", position{Line: 0, Character: 4}},
		{"\";", position{Line: 0, Character: 13}}, // эмодзи занимает две единицы UTF-16
		{"Тест", position{Line: 1, Character: 6}},
		{"end", position{Line: 2, Character: 0}},
	}
	for _, tc := range cases {
		off := uint32(strings.Index(src, tc.needle))
		if got := positionForOffsetInFile(file, off); got != tc.pos {
			t.Errorf("%q: position = %+v, want %+v", tc.needle, got, tc.pos)
		}
		if got := offsetForPositionInFile(file, tc.pos); got != off {
			t.Errorf("%q: offset = %d, want %d", tc.needle, got, off)
		}
	}

	// позиция за концом строки прижимается к её концу
	if got := offsetForPositionInFile(file, position{Line: 2, Character: 99}); got != uint32(strings.Index(src, "end")+3) {
		t.Errorf("clamped offset = %d", got)
	}
	if got := offsetForPositionInFile(file, position{Line: 40}); got != uint32(len(src)) {
		t.Errorf("offset past last line = %d", got)
	}
}

func TestApplyChanges(t *testing.T) {
	text := "var a;\nvar 🙂b;\n"
	text = applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{Line: 1, Character: 7}, End: position{Line: 1, Character: 7}}, Text: "c"},
		{Range: &lspRange{Start: position{Line: 0, Character: 4}, End: position{Line: 0, Character: 5}}, Text: "x"},
	})
	if text != "var x;\nvar 🙂bc;\n" {
		t.Fatalf("incremental = %q", text)
	}
	text = applyChanges(text, []textDocumentContentChangeEvent{{Text: "var z;"}})
	if text != "var z;" {
		t.Fatalf("full replace = %q", text)
	}
}
