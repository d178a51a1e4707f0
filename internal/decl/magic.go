package decl

// magicNames lists the dunder methods that are not treated as private even
// though their names start with an underscore.
var magicNames = map[string]bool{
	"__abs__":          true,
	"__add__":          true,
	"__and__":          true,
	"__bool__":         true,
	"__ceil__":         true,
	"__class__":        true,
	"__delattr__":      true,
	"__dir__":          true,
	"__divmod__":       true,
	"__doc__":          true,
	"__eq__":           true,
	"__float__":        true,
	"__floor__":        true,
	"__floordiv__":     true,
	"__format__":       true,
	"__ge__":           true,
	"__getattribute__": true,
	"__getnewargs__":   true,
	"__gt__":           true,
	"__hash__":         true,
	"__index__":        true,
	"__init__":         true,
	"__init_subclass__": true,
	"__int__":          true,
	"__invert__":       true,
	"__le__":           true,
	"__lshift__":       true,
	"__lt__":           true,
	"__mod__":          true,
	"__mul__":          true,
	"__ne__":           true,
	"__neg__":          true,
	"__new__":          true,
	"__or__":           true,
	"__pos__":          true,
	"__pow__":          true,
	"__radd__":         true,
	"__rand__":         true,
	"__rdivmod__":      true,
	"__reduce__":       true,
	"__reduce_ex__":    true,
	"__repr__":         true,
	"__rfloordiv__":    true,
	"__rlshift__":      true,
	"__rmod__":         true,
	"__rmul__":         true,
	"__ror__":          true,
	"__round__":        true,
	"__rpow__":         true,
	"__rrshift__":      true,
	"__rshift__":       true,
	"__rsub__":         true,
	"__rtruediv__":     true,
	"__rxor__":         true,
	"__setattr__":      true,
	"__sizeof__":       true,
	"__str__":          true,
	"__sub__":          true,
	"__subclasshook__": true,
	"__truediv__":      true,
	"__trunc__":        true,
	"__xor__":          true,
}
