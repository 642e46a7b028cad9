package engine

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"rsl/internal/entity"
	"rsl/internal/source"
)

// Symbol is one outline entry.
type Symbol struct {
	Name      string // "name: type" для всего, кроме классов и импортов
	Kind      entity.Kind
	URI       string
	Span      source.Span
	Container string
}

// Outline lists the declarations of unit id: every macro and class at any
// depth, and the variables declared directly in the unit or in a class.
// Locals and arguments of macros are left out.
func (e *Engine) Outline(id string) []Symbol {
	unit, ok := e.Unit(id)
	if !ok {
		return nil
	}
	return outline(unit)
}

func outline(unit *entity.Unit) []Symbol {
	var out []Symbol
	entity.Walk(unit, func(ent entity.Entity, parent entity.Scope) bool {
		if parent == nil {
			return true // сам юнит не показываем
		}
		if ent.Kind() == entity.KindImport {
			return false
		}
		_, structural := ent.(entity.Scope)
		parentKind := parent.Kind()
		if structural || parentKind == entity.KindClass || parentKind == entity.KindUnit {
			container := parent.Name()
			if parentKind == entity.KindUnit {
				container = ""
			}
			out = append(out, Symbol{
				Name:      symbolName(ent),
				Kind:      ent.Kind(),
				URI:       unit.ID(),
				Span:      ent.Span(),
				Container: container,
			})
		}
		return structural
	})
	return out
}

func symbolName(e entity.Entity) string {
	switch e.Kind() {
	case entity.KindClass:
		return e.Name()
	}
	return e.Name() + ": " + e.Type().String()
}

// WorkspaceSymbols searches the outlines of every registered unit. Names are
// matched fuzzily, case-insensitively, and ranked by edit distance; an empty
// query returns everything in registration order.
func (e *Engine) WorkspaceSymbols(query string) []Symbol {
	var all []Symbol
	for _, u := range e.reg.Units() {
		all = append(all, outline(u)...)
	}
	if query == "" {
		return all
	}
	names := make([]string, len(all))
	for i, sym := range all {
		names[i] = bareName(sym)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	out := make([]Symbol, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, all[r.OriginalIndex])
	}
	return out
}

// bareName отрезает ": type"
func bareName(sym Symbol) string {
	name, _, _ := strings.Cut(sym.Name, ": ")
	return name
}
