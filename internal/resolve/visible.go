package resolve

import (
	"strings"

	"rsl/internal/entity"
	"rsl/internal/registry"
)

// VisibleChildrenAt lists what is visible at offset inside scope.
//
// Offset 0 means "from outside": only non-private children are returned.
// Otherwise the children declared at or before offset are returned. The same
// cutoff applies inside every scope whose declaration strictly contains
// offset, descending through nested scopes (a method inside a class).
func VisibleChildrenAt(scope entity.Scope, offset uint32) []entity.Entity {
	if scope == nil {
		return nil
	}
	children := scope.Children()
	if offset == 0 {
		out := make([]entity.Entity, 0, len(children))
		for _, child := range children {
			if !child.Private() {
				out = append(out, child)
			}
		}
		return out
	}
	return appendActual(make([]entity.Entity, 0, len(children)), scope, offset)
}

// appendActual: параметры макроса лежат до тела и проходят отсечку
func appendActual(out []entity.Entity, s entity.Scope, offset uint32) []entity.Entity {
	for _, child := range s.Children() {
		if child.Span().Start <= offset {
			out = append(out, child)
		}
		if inner, ok := child.(entity.Scope); ok && inner.IsActual(offset) {
			out = appendActual(out, inner, offset)
		}
	}
	return out
}

// CompletionItems builds the completion list of scope.
//
// With checkActual the entities come from VisibleChildrenAt(scope, offset),
// otherwise all children are taken. checkPrivate drops private entities.
// For a class the non-private members of its ancestors are appended; a
// member redefined lower in the chain hides the inherited one.
func CompletionItems(reg *registry.Registry, scope entity.Scope, checkPrivate bool, offset uint32, checkActual bool) []entity.CompletionItem {
	if scope == nil {
		return nil
	}
	var ents []entity.Entity
	if checkActual {
		ents = VisibleChildrenAt(scope, offset)
	} else {
		ents = scope.Children()
	}
	items := make([]entity.CompletionItem, 0, len(ents))
	seen := make(map[string]struct{}, len(ents))
	for _, e := range ents {
		if checkPrivate && e.Private() {
			continue
		}
		seen[strings.ToLower(e.Name())] = struct{}{}
		items = append(items, entity.Completion(e))
	}
	cls, ok := scope.(*entity.Class)
	if !ok {
		return items
	}
	// родительские члены достраиваются при каждом запросе
	for _, anc := range Ancestors(reg, nil, cls) {
		for _, member := range anc.Children() {
			if member.Private() {
				continue
			}
			key := strings.ToLower(member.Name())
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, entity.Completion(member))
		}
	}
	return items
}

// ResolveTypeScope finds the class typeName denotes: among the entities
// visible at offset in unit first, then among the exported top-level
// entities of the other units, and finally anywhere in the registry.
func ResolveTypeScope(reg *registry.Registry, unit *entity.Unit, offset uint32, typeName string) *entity.Class {
	if typeName == "" {
		return nil
	}
	if cls := classAmong(VisibleChildrenAt(unit, offset), typeName); cls != nil {
		return cls
	}
	if reg != nil {
		for _, u := range reg.Units() {
			if u == unit {
				continue
			}
			if cls := classAmong(VisibleChildrenAt(u, 0), typeName); cls != nil {
				return cls
			}
		}
	}
	return FindClass(reg, unit, typeName)
}

func classAmong(ents []entity.Entity, name string) *entity.Class {
	for _, e := range ents {
		if cls, ok := e.(*entity.Class); ok && strings.EqualFold(cls.Name(), name) {
			return cls
		}
	}
	return nil
}
