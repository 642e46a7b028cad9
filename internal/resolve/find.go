// Package resolve answers name questions over built entity trees: lookup by
// name, visibility at an offset, completion lists and the symbol under the
// cursor.
package resolve

import (
	"strings"

	"rsl/internal/entity"
	"rsl/internal/registry"
)

// RecursiveFind returns the first descendant of scope named name (case
// insensitive), depth-first in declaration order.
func RecursiveFind(scope entity.Scope, name string) entity.Entity {
	if scope == nil || name == "" {
		return nil
	}
	for _, child := range scope.Children() {
		if strings.EqualFold(child.Name(), name) {
			return child
		}
		if s, ok := child.(entity.Scope); ok {
			if found := RecursiveFind(s, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindInRegistry runs RecursiveFind over every ready unit in registration
// order and reports the unit the match came from.
func FindInRegistry(reg *registry.Registry, name string) (entity.Entity, *entity.Unit) {
	if reg == nil {
		return nil, nil
	}
	for _, u := range reg.Units() {
		if found := RecursiveFind(u, name); found != nil {
			return found, u
		}
	}
	return nil, nil
}

// FindClass looks a class up by name: first inside prefer, then in every
// registered unit. Entities of other kinds with the same name are skipped.
func FindClass(reg *registry.Registry, prefer entity.Scope, name string) *entity.Class {
	if name == "" {
		return nil
	}
	if cls := findClassIn(prefer, name); cls != nil {
		return cls
	}
	if reg == nil {
		return nil
	}
	for _, u := range reg.Units() {
		if cls := findClassIn(u, name); cls != nil {
			return cls
		}
	}
	return nil
}

func findClassIn(scope entity.Scope, name string) *entity.Class {
	if scope == nil {
		return nil
	}
	var out *entity.Class
	entity.Walk(scope, func(e entity.Entity, _ entity.Scope) bool {
		if out != nil {
			return false
		}
		if cls, ok := e.(*entity.Class); ok && strings.EqualFold(cls.Name(), name) {
			out = cls
			return false
		}
		return true
	})
	return out
}

// Ancestors follows the parent names of cls transitively. A parent that is
// not a known class ends the chain; a repeated class ends it as well.
func Ancestors(reg *registry.Registry, prefer entity.Scope, cls *entity.Class) []*entity.Class {
	if cls == nil {
		return nil
	}
	visited := map[*entity.Class]struct{}{cls: {}}
	var out []*entity.Class
	for cur := cls; cur.Parent() != ""; {
		parent := FindClass(reg, prefer, cur.Parent())
		if parent == nil {
			break
		}
		if _, seen := visited[parent]; seen {
			break
		}
		visited[parent] = struct{}{}
		out = append(out, parent)
		cur = parent
	}
	return out
}
