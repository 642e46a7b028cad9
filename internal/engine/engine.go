// Package engine is the query surface of the language service: it owns one
// registry of parsed units and answers completion, hover, definition and
// outline requests against it.
package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"

	"rsl/internal/catalog"
	"rsl/internal/config"
	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/lint"
	"rsl/internal/parser"
	"rsl/internal/registry"
	"rsl/internal/search"
	"rsl/internal/source"
)

// Options configure an engine.
type Options struct {
	FollowImports  bool
	Encoding       encoding.Encoding // nil: файлы уже в UTF-8
	Search         search.Policy
	MaxDepth       int
	MaxDiagnostics int
	Deprecations   bool
	Catalog        *catalog.Catalog // nil: каталог по умолчанию
	Logger         *zerolog.Logger
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		// значения по умолчанию всегда валидны
		panic(err)
	}
	return opts
}

// OptionsFromConfig translates the file configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	enc, err := source.LookupEncoding(cfg.Imports.Encoding)
	if err != nil {
		return Options{}, fmt.Errorf("imports.encoding: %w", err)
	}
	policy := search.Default()
	if len(cfg.Imports.Extensions) > 0 {
		policy.Extensions = cfg.Imports.Extensions
	}
	policy.Dirs = cfg.Imports.SearchDirs
	return Options{
		FollowImports:  cfg.Imports.Follow,
		Encoding:       enc,
		Search:         policy,
		MaxDepth:       cfg.Imports.MaxDepth,
		MaxDiagnostics: cfg.Diagnostics.Max,
		Deprecations:   cfg.Diagnostics.Deprecations,
	}, nil
}

// Engine is one editing session. It is not safe for concurrent use; the
// language server serializes access.
type Engine struct {
	files  *source.FileSet
	reg    *registry.Registry
	parser *parser.Parser
	cat    *catalog.Catalog
	opts   Options
	logger zerolog.Logger
}

// New creates an engine with an empty registry.
func New(opts Options) (*Engine, error) {
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return nil, fmt.Errorf("builtin catalog: %w", err)
		}
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	files := source.NewFileSet()
	reg := registry.New(opts.MaxDepth)
	p := parser.New(parser.Options{
		Files:          files,
		Registry:       reg,
		Builtins:       cat,
		Locator:        opts.Search,
		Encoding:       opts.Encoding,
		FollowImports:  opts.FollowImports,
		MaxDiagnostics: opts.MaxDiagnostics,
		Logger:         &logger,
	})
	return &Engine{
		files:  files,
		reg:    reg,
		parser: p,
		cat:    cat,
		opts:   opts,
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Catalog returns the builtin catalog in use.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// SetFollowImports toggles import loading for the next parses.
func (e *Engine) SetFollowImports(on bool) {
	e.opts.FollowImports = on
	e.parser.SetFollowImports(on)
}

// ParseOrReplace parses text as the new content of the unit id and returns
// its diagnostics. Any previous tree for id is dropped.
func (e *Engine) ParseOrReplace(id, text string) []diag.Diagnostic {
	file := e.files.Get(e.files.AddVirtual(documentPath(id), []byte(text)))
	entry, err := e.parser.Load(id, file)
	if err != nil {
		e.logger.Error().Err(err).Str("uri", id).Msg("parse refused")
		return nil
	}
	e.lint(entry, file)
	return entry.Diagnostics
}

func (e *Engine) lint(entry *registry.Entry, file *source.File) {
	if !e.opts.Deprecations {
		return
	}
	bag := diag.NewBag(0)
	for _, d := range entry.Diagnostics {
		bag.Add(d)
	}
	lint.Deprecations(file, diag.BagReporter{Bag: bag})
	bag.Sort()
	entry.Diagnostics = bag.Items()
}

// documentPath is the FileSet key of a document: its path for file URIs,
// the URI itself otherwise.
func documentPath(id string) string {
	if path := source.URIToPath(id); path != "" {
		return path
	}
	return id
}

// Diagnostics returns the stored diagnostics of id.
func (e *Engine) Diagnostics(id string) []diag.Diagnostic {
	if entry, ok := e.reg.Lookup(id); ok {
		return entry.Diagnostics
	}
	return nil
}

// Unit returns the current tree of id.
func (e *Engine) Unit(id string) (*entity.Unit, bool) {
	entry, ok := e.reg.Lookup(id)
	if !ok || entry.Root == nil {
		return nil, false
	}
	return entry.Root, true
}

// File returns the text the current tree of id was built from.
func (e *Engine) File(id string) (*source.File, bool) {
	unit, ok := e.Unit(id)
	if !ok {
		return nil, false
	}
	return unit.File(), true
}

// Files exposes the file set for span resolution.
func (e *Engine) Files() *source.FileSet { return e.files }

// UnitForFile finds the unit whose current tree was built from file id.
// Spans of diagnostic notes point into imported files; this maps them back
// to a document identity.
func (e *Engine) UnitForFile(id source.FileID) (*entity.Unit, bool) {
	entry, ok := e.reg.ByFile(id)
	if !ok {
		return nil, false
	}
	return entry.Root, true
}

// Units lists the identities of every registered unit in registration order.
func (e *Engine) Units() []string { return e.reg.IDs() }

// Close forgets the editor state of id. A file that still exists on disk
// is re-read so cross-file lookups see the saved content; otherwise the
// unit is removed.
func (e *Engine) Close(id string) error {
	path := source.URIToPath(id)
	if path == "" {
		e.reg.Remove(id)
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.reg.Remove(id)
			return nil
		}
		return fmt.Errorf("close %s: %w", id, err)
	}
	return e.loadFile(id, path)
}

// Preload parses files that are not registered yet. Unreadable files are
// skipped and reported together.
func (e *Engine) Preload(paths []string) (int, error) {
	var errs []error
	n := 0
	for _, path := range paths {
		id := source.PathToURI(path)
		if _, ok := e.reg.Lookup(id); ok {
			continue
		}
		if err := e.loadFile(id, path); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	e.logger.Debug().Int("loaded", n).Int("failed", len(errs)).Msg("preload done")
	return n, errors.Join(errs...)
}

// LoadFile parses the file at path from disk, replacing a tree that an
// earlier import may have built, and returns its identity.
func (e *Engine) LoadFile(path string) (string, error) {
	id := source.PathToURI(path)
	return id, e.loadFile(id, path)
}

func (e *Engine) loadFile(id, path string) error {
	fileID, err := e.files.LoadEncoded(path, e.opts.Encoding)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	file := e.files.Get(fileID)
	entry, err := e.parser.Load(id, file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	e.lint(entry, file)
	return nil
}
