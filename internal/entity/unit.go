package entity

import (
	"path"

	"rsl/internal/source"
)

// Unit is the root of one file's entity tree.
type Unit struct {
	scope
	id   string
	file *source.File
}

// NewUnit creates a unit spanning the whole file.
func NewUnit(id string, file *source.File) *Unit {
	u := &Unit{id: id, file: file}
	whole := source.Span{File: file.ID, Start: 0, End: file.Len()}
	u.base = base{
		name:     path.Base(file.Path),
		kind:     KindUnit,
		span:     whole,
		nameSpan: source.Span{File: file.ID},
	}
	u.body = whole
	return u
}

// ID is the identity the unit is registered under (a document URI).
func (u *Unit) ID() string { return u.id }

// File is the text the unit was parsed from.
func (u *Unit) File() *source.File { return u.file }

func (u *Unit) Detail() string { return u.file.Path }

func (u *Unit) Documentation() string { return "" }

func (u *Unit) InsertText() string { return u.name }

// IsActual is true for any offset inside the file, edges included.
func (u *Unit) IsActual(off uint32) bool {
	return off <= u.span.End
}
