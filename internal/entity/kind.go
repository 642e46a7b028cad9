package entity

// Kind classifies an entity.
type Kind uint8

const (
	KindUnit Kind = iota + 1
	KindVariable
	KindConstant
	KindProperty
	KindFunction
	KindMethod
	KindClass
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindVariable:
		return "Variable"
	case KindConstant:
		return "Constant"
	case KindProperty:
		return "Property"
	case KindFunction:
		return "Function"
	case KindMethod:
		return "Method"
	case KindClass:
		return "Class"
	case KindImport:
		return "Import"
	}
	return "Unknown"
}

// IsCallable reports whether the entity is a macro.
func (k Kind) IsCallable() bool {
	return k == KindFunction || k == KindMethod
}

// IsValue reports whether the entity holds a value.
func (k Kind) IsValue() bool {
	return k == KindVariable || k == KindConstant || k == KindProperty
}
