package token

import (
	"slices"
	"strings"
)

// builtinTypes are the primitive type names of the language, lower case.
var builtinTypes = []string{
	"variant",
	"integer",
	"double",
	"doublel",
	"string",
	"bool",
	"date",
	"time",
	"datetime",
	"memaddr",
	"procref",
	"methodref",
	"decimal",
	"numeric",
	"money",
	"moneyl",
	"specval",
}

// LookupBuiltinType returns the canonical (lower case) builtin type name.
func LookupBuiltinType(name string) (string, bool) {
	lower := strings.ToLower(name)
	if slices.Contains(builtinTypes, lower) {
		return lower, true
	}
	return "", false
}

// BuiltinTypes returns a copy of the builtin type list.
func BuiltinTypes() []string {
	return slices.Clone(builtinTypes)
}

func sortStrings(s []string) {
	slices.Sort(s)
}
