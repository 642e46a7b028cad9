package lsp

import "unicode/utf8"

// document is the editor's copy of an open file.
type document struct {
	text    string
	version int
}

// apply folds incremental changes into the text. A change without a range
// replaces the whole document.
func (d *document) apply(version int, changes []textDocumentContentChangeEvent) {
	d.text = applyChanges(d.text, changes)
	d.version = version
}

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		start = min(max(start, 0), len(text))
		end = min(max(end, start), len(text))
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition maps an LSP position (UTF-16 code units) to a byte
// offset in text. Positions past the end of a line clamp to the line end.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	units := 0
	for i < len(text) && units < pos.Character {
		if text[i] == '\n' || text[i] == '\r' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}
