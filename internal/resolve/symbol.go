package resolve

import (
	"strings"

	"rsl/internal/entity"
	"rsl/internal/lexer"
	"rsl/internal/registry"
	"rsl/internal/token"
)

// Match is the entity a token resolved to.
type Match struct {
	Entity entity.Entity
	Unit   *entity.Unit // юнит, где объявлена сущность
	Token  token.Token
}

// FindSymbolAt resolves the word under offset in unit.
//
// Candidates are the visible entities whose name equals the word (case
// insensitive) and the direct children of visible scopes whose name matches
// exactly. The declaration itself wins when the cursor is on it; otherwise
// the candidate ending closest before the word wins, and failing that the
// one closest after it. When nothing in unit matches, the exported
// top-level entities of the other registered units are searched in
// registration order.
func FindSymbolAt(reg *registry.Registry, unit *entity.Unit, offset uint32) (Match, bool) {
	if unit == nil {
		return Match{}, false
	}
	tok, ok := lexer.TokenAt(unit.File(), offset)
	if !ok {
		return Match{}, false
	}
	if found := pick(candidates(unit, offset, tok.Text), tok); found != nil {
		return Match{Entity: found, Unit: unit, Token: tok}, true
	}
	if reg == nil {
		return Match{}, false
	}
	for _, u := range reg.Units() {
		if u == unit || u.ID() == unit.ID() {
			continue
		}
		for _, e := range VisibleChildrenAt(u, 0) {
			if strings.EqualFold(e.Name(), tok.Text) {
				return Match{Entity: e, Unit: u, Token: tok}, true
			}
		}
	}
	return Match{}, false
}

func candidates(unit *entity.Unit, offset uint32, word string) []entity.Entity {
	var out []entity.Entity
	seen := make(map[entity.Entity]struct{})
	add := func(e entity.Entity) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	for _, e := range VisibleChildrenAt(unit, offset) {
		if s, ok := e.(entity.Scope); ok {
			for _, child := range s.Children() {
				if child.Name() == word {
					add(child)
				}
			}
		}
		if strings.EqualFold(e.Name(), word) {
			add(e)
		}
	}
	return out
}

func pick(cands []entity.Entity, tok token.Token) entity.Entity {
	for _, c := range cands {
		if c.NameSpan() == tok.Span {
			return c
		}
	}
	var (
		best     entity.Entity
		bestDist int64
	)
	for _, c := range cands {
		d := int64(tok.Span.Start) - int64(c.Span().End)
		if d < 0 {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best != nil {
		return best
	}
	for _, c := range cands {
		d := int64(c.Span().End) - int64(tok.Span.Start)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
