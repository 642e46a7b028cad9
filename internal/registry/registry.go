// Package registry keeps every parsed unit of an editing session, keyed by
// identity (document URI). An entry is inserted before its content is
// parsed, so an import chain that comes back to it sees it as in progress.
package registry

import (
	"errors"
	"slices"

	"rsl/internal/diag"
	"rsl/internal/entity"
	"rsl/internal/source"
)

// DefaultMaxDepth bounds nested import loading.
const DefaultMaxDepth = 64

// ErrDepthExceeded is returned by Begin when the loading chain is too deep.
var ErrDepthExceeded = errors.New("import chain too deep")

// State of an entry.
type State uint8

const (
	// StateLoading: запись вставлена, разбор ещё идёт
	StateLoading State = iota + 1
	// StateReady: дерево построено
	StateReady
)

// Entry is one registered unit.
type Entry struct {
	ID          string
	Root        *entity.Unit // nil пока идёт разбор
	Diagnostics []diag.Diagnostic
	State       State
}

// Registry is owned by one engine; it is not safe for concurrent use.
type Registry struct {
	entries  map[string]*Entry
	order    []string
	loading  []string
	maxDepth int
}

// New creates an empty registry; maxDepth <= 0 selects DefaultMaxDepth.
func New(maxDepth int) *Registry {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Registry{
		entries:  make(map[string]*Entry),
		maxDepth: maxDepth,
	}
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Begin inserts (or resets) the entry for id in the loading state and pushes
// it on the loading stack. The previous tree, if any, is dropped.
func (r *Registry) Begin(id string) (*Entry, error) {
	if len(r.loading) >= r.maxDepth {
		return nil, ErrDepthExceeded
	}
	e, ok := r.entries[id]
	if !ok {
		e = &Entry{ID: id}
		r.entries[id] = e
		r.order = append(r.order, id)
	}
	e.Root = nil
	e.Diagnostics = nil
	e.State = StateLoading
	r.loading = append(r.loading, id)
	return e, nil
}

// Finish stores the built tree and pops id from the loading stack.
func (r *Registry) Finish(id string, root *entity.Unit, diags []diag.Diagnostic) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	e.Root = root
	e.Diagnostics = diags
	e.State = StateReady
	if i := slices.Index(r.loading, id); i >= 0 {
		r.loading = slices.Delete(r.loading, i, i+1)
	}
}

// InProgress reports whether id is on the loading stack.
func (r *Registry) InProgress(id string) bool {
	return slices.Contains(r.loading, id)
}

// Depth is the length of the loading stack.
func (r *Registry) Depth() int {
	return len(r.loading)
}

// MaxDepth is the configured loading bound.
func (r *Registry) MaxDepth() int {
	return r.maxDepth
}

// Remove drops the entry. Entries on the loading stack stay.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.entries[id]; !ok || r.InProgress(id) {
		return false
	}
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return true
}

// Units returns the built roots in registration order.
func (r *Registry) Units() []*entity.Unit {
	out := make([]*entity.Unit, 0, len(r.order))
	for _, id := range r.order {
		if e := r.entries[id]; e.Root != nil {
			out = append(out, e.Root)
		}
	}
	return out
}

// IDs returns every registered identity in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Len is the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}

// ByFile finds the entry whose tree was built from the file id.
func (r *Registry) ByFile(id source.FileID) (*Entry, bool) {
	for _, key := range r.order {
		e := r.entries[key]
		if e.Root != nil && e.Root.File().ID == id {
			return e, true
		}
	}
	return nil, false
}
