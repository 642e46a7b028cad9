package entity

import "strings"

// VariantName is how an unknown type is shown to the user.
const VariantName = "variant"

// Type is the inferred type of an entity: either a name or unknown.
// The zero value is unknown.
type Type struct {
	name string
}

// Inferred returns a known type. An empty name yields Unknown.
func Inferred(name string) Type {
	return Type{name: name}
}

// Unknown returns the unknown type.
func Unknown() Type {
	return Type{}
}

// Name returns the type name and whether it is known.
func (t Type) Name() (string, bool) {
	return t.name, t.name != ""
}

// Known reports whether inference produced a name.
func (t Type) Known() bool {
	return t.name != ""
}

// Is compares the type name case-insensitively.
func (t Type) Is(name string) bool {
	return t.name != "" && strings.EqualFold(t.name, name)
}

// String renders the type for presentation; unknown renders as "variant".
func (t Type) String() string {
	if t.name == "" {
		return VariantName
	}
	return t.name
}
