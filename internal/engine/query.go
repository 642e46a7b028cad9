package engine

import (
	"fmt"
	"strings"

	"rsl/internal/entity"
	"rsl/internal/lexer"
	"rsl/internal/resolve"
	"rsl/internal/source"
	"rsl/internal/token"
)

// CommentHover is the hover text inside comments and string literals.
const CommentHover = "This is comment"

// Hover is the answer to a hover request.
type Hover struct {
	Contents string // markdown
	Span     source.Span
}

// Location is a definition target.
type Location struct {
	URI  string
	File *source.File
	Span source.Span
}

// CompletionsAt lists completion candidates at offset in unit id.
//
// After "obj." the members of obj's type are offered: a user class with its
// inherited members, or a builtin type from the catalog. Otherwise every
// registered unit contributes what is visible (the current unit at offset,
// the others from outside), followed by the catalog. Inside comments and
// strings the list is empty.
func (e *Engine) CompletionsAt(id string, offset uint32) []entity.CompletionItem {
	unit, ok := e.Unit(id)
	if !ok {
		return nil
	}
	f := unit.File()
	if lexer.InCommentOrString(f, offset) {
		return nil
	}
	if target, ok := lexer.MemberTarget(f, offset); ok {
		return e.memberCompletions(unit, target, offset)
	}
	var items []entity.CompletionItem
	for _, u := range e.reg.Units() {
		if u == unit {
			items = append(items, resolve.CompletionItems(e.reg, u, false, offset, true)...)
			continue
		}
		items = append(items, resolve.CompletionItems(e.reg, u, true, 0, true)...)
	}
	return append(items, e.cat.Completions()...)
}

func (e *Engine) memberCompletions(unit *entity.Unit, target token.Token, offset uint32) []entity.CompletionItem {
	typeName := ""
	if m, ok := resolve.FindSymbolAt(e.reg, unit, target.Span.Start); ok {
		typeName, _ = m.Entity.Type().Name()
	} else if b, ok := e.cat.FindByName(target.Text); ok {
		typeName = b.ReturnType
	}
	if typeName == "" {
		return nil
	}
	if cls := resolve.ResolveTypeScope(e.reg, unit, offset, typeName); cls != nil {
		return resolve.CompletionItems(e.reg, cls, true, 0, false)
	}
	members, _ := e.cat.Members(typeName)
	return members
}

// HoverAt describes the symbol under offset. ok is false when there is no
// word under the cursor at all.
func (e *Engine) HoverAt(id string, offset uint32) (Hover, bool) {
	unit, ok := e.Unit(id)
	if !ok {
		return Hover{}, false
	}
	f := unit.File()
	here := source.Span{File: f.ID, Start: offset, End: offset}
	if lexer.InCommentOrString(f, offset) {
		return Hover{Contents: CommentHover, Span: here}, true
	}
	if m, ok := resolve.FindSymbolAt(e.reg, unit, offset); ok {
		span := m.Token.Span
		return Hover{Contents: hoverText(m.Entity), Span: span}, true
	}
	tok, ok := lexer.TokenAt(f, offset)
	if !ok {
		return Hover{}, false
	}
	if b, ok := e.cat.FindByName(tok.Text); ok {
		return Hover{Contents: codeBlock(b.Detail(), b.Doc), Span: tok.Span}, true
	}
	return Hover{Contents: fmt.Sprintf("Token '%s' not found", tok.Text), Span: here}, true
}

func hoverText(e entity.Entity) string {
	switch e.Kind() {
	case entity.KindFunction, entity.KindMethod, entity.KindClass:
		// у макросов и классов сигнатура уже в документации
		return e.Documentation()
	}
	return codeBlock(e.Detail(), e.Documentation())
}

func codeBlock(signature, doc string) string {
	var sb strings.Builder
	sb.WriteString("```rsl\n")
	sb.WriteString(signature)
	sb.WriteString("\n```")
	if doc != "" {
		sb.WriteString("\n\n")
		sb.WriteString(doc)
	}
	return sb.String()
}

// DefinitionAt returns the declaring identifier of the symbol under offset.
// An import name leads to the start of the imported file.
func (e *Engine) DefinitionAt(id string, offset uint32) (Location, bool) {
	unit, ok := e.Unit(id)
	if !ok {
		return Location{}, false
	}
	if lexer.InCommentOrString(unit.File(), offset) {
		return Location{}, false
	}
	m, ok := resolve.FindSymbolAt(e.reg, unit, offset)
	if !ok {
		return Location{}, false
	}
	if ref, isRef := m.Entity.(*entity.ImportRef); isRef && ref.TargetID != "" {
		if target, ok := e.Unit(ref.TargetID); ok {
			f := target.File()
			return Location{URI: target.ID(), File: f, Span: source.Span{File: f.ID}}, true
		}
	}
	return Location{URI: m.Unit.ID(), File: m.Unit.File(), Span: m.Entity.NameSpan()}, true
}
