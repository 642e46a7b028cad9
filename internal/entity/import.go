package entity

import (
	"rsl/internal/source"
)

// ImportRef records one imported name. TargetID is the registry identity of
// the imported unit; it is empty for binary modules and unresolved imports.
// The reference never holds the imported tree itself.
type ImportRef struct {
	base
	TargetID string
	Path     string // путь для показа, относительно импортирующего файла
}

// NewImportRef creates an import reference; imports are local to their unit.
func NewImportRef(name, targetID, displayPath string, nameSpan source.Span) *ImportRef {
	return &ImportRef{
		base: base{
			name:     name,
			kind:     KindImport,
			private:  true,
			span:     nameSpan,
			nameSpan: nameSpan,
		},
		TargetID: targetID,
		Path:     displayPath,
	}
}

func (r *ImportRef) Detail() string { return "import " + r.name }

func (r *ImportRef) Documentation() string { return r.Path }

func (r *ImportRef) InsertText() string { return r.name }
