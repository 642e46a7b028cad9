package entity

// CompletionItem is the presentation record of an entity.
type CompletionItem struct {
	Label         string
	Kind          Kind
	Detail        string
	Documentation string
	InsertText    string
}

// Completion builds the presentation record, recomputed on every call.
func Completion(e Entity) CompletionItem {
	return CompletionItem{
		Label:         e.Name(),
		Kind:          e.Kind(),
		Detail:        e.Detail(),
		Documentation: e.Documentation(),
		InsertText:    e.InsertText(),
	}
}

// Walk visits e and its descendants depth-first. fn returning false skips
// the children of the visited entity.
func Walk(e Entity, fn func(e Entity, parent Scope) bool) {
	walk(e, nil, fn)
}

func walk(e Entity, parent Scope, fn func(Entity, Scope) bool) {
	if !fn(e, parent) {
		return
	}
	if s, ok := e.(Scope); ok {
		for _, child := range s.Children() {
			walk(child, s, fn)
		}
	}
}
