package driver

import (
	"errors"
	"fmt"

	"rsl/internal/diag"
	"rsl/internal/engine"
	"rsl/internal/source"
)

// LoadedFile is one file given on the command line after parsing.
type LoadedFile struct {
	Path        string
	URI         string
	File        *source.File
	Diagnostics []diag.Diagnostic
	Symbols     []engine.Symbol
}

// Session is the result of Load: one engine that saw every file.
type Session struct {
	Engine *engine.Engine
	Files  []LoadedFile
}

// Load parses paths into a single engine, in order. Files that cannot be
// read are skipped and reported together; the session holds the rest.
func Load(paths []string, opts engine.Options) (*Session, error) {
	eng, err := engine.New(opts)
	if err != nil {
		return nil, err
	}
	sess := &Session{Engine: eng}
	var errs []error
	for _, path := range paths {
		id, err := eng.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		file, _ := eng.File(id)
		sess.Files = append(sess.Files, LoadedFile{
			Path:        path,
			URI:         id,
			File:        file,
			Diagnostics: eng.Diagnostics(id),
			Symbols:     eng.Outline(id),
		})
	}
	if len(sess.Files) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("nothing loaded: %w", errors.Join(errs...))
	}
	return sess, errors.Join(errs...)
}

// Bag collects the diagnostics of every loaded file, sorted.
func (s *Session) Bag(limit int) *diag.Bag {
	bag := diag.NewBag(limit)
	for _, f := range s.Files {
		for _, d := range f.Diagnostics {
			bag.Add(d)
		}
	}
	bag.Sort()
	return bag
}
