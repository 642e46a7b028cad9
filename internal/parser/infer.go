package parser

import (
	"strings"

	"rsl/internal/entity"
	"rsl/internal/resolve"
	"rsl/internal/token"
)

// inferType derives a type from the first token of an initializer.
//
// Order: builtin type name, literal shape, declarations of the enclosing
// scopes (innermost first) and the unit being parsed, declarations of other registered units, the builtin catalog.
// A declaration found by name settles the question even when its own type is
// unknown.
func (up *unitParser) inferType(text string) entity.Type {
	t, _ := up.lookupType(text)
	return t
}

func (up *unitParser) lookupType(text string) (entity.Type, bool) {
	name := strings.TrimPrefix(text, "@")
	if name == "" {
		return entity.Unknown(), false
	}
	if builtin, ok := token.LookupBuiltinType(name); ok {
		if builtin == entity.VariantName {
			return entity.Unknown(), true
		}
		return entity.Inferred(builtin), true
	}
	switch {
	case token.IsQuote(name[0]):
		return entity.Inferred("string"), true
	case token.IsDigit(name[0]):
		return entity.Inferred("integer"), true
	case strings.EqualFold(name, "true"), strings.EqualFold(name, "false"):
		return entity.Inferred("bool"), true
	}
	// сначала объемлющие области: аргументы макроса видны в его теле
	for i := len(up.stack) - 1; i >= 0; i-- {
		if found := resolve.RecursiveFind(up.stack[i], name); found != nil {
			return found.Type(), true
		}
	}
	for _, u := range up.p.opts.Registry.Units() {
		if u == up.unit {
			continue
		}
		if found := resolve.RecursiveFind(u, name); found != nil {
			return found.Type(), true
		}
	}
	if up.p.opts.Builtins != nil {
		if e, ok := up.p.opts.Builtins.FindByName(name); ok && e.ReturnType != "" {
			return entity.Inferred(e.ReturnType), true
		}
	}
	return entity.Unknown(), false
}

// annotationType resolves an explicit ": Type". Builtin names are
// normalized to lower case; anything else is kept verbatim.
func (up *unitParser) annotationType(text string) entity.Type {
	name := strings.TrimPrefix(text, "@")
	if builtin, ok := token.LookupBuiltinType(name); ok {
		if builtin == entity.VariantName {
			return entity.Unknown()
		}
		return entity.Inferred(builtin)
	}
	return entity.Inferred(name)
}
