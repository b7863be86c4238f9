package registry

import (
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// TypeKind identifies which category of type an entry describes.
type TypeKind uint8

const (
	// KindPrimitive is a built-in value type (void, bool, numerics).
	KindPrimitive TypeKind = iota
	// KindClass is a script or host class, including generic instances.
	KindClass
	// KindEnum is an enumeration backed by a 32-bit integer.
	KindEnum
	// KindInterface is a pure method contract.
	KindInterface
	// KindFuncdef is a named function pointer type.
	KindFuncdef
	// KindTemplateParam is a placeholder type inside a generic declaration.
	KindTemplateParam
)

// String returns the lowercase name of the kind.
func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindInterface:
		return "interface"
	case KindFuncdef:
		return "funcdef"
	case KindTemplateParam:
		return "template parameter"
	default:
		return "unknown"
	}
}

// TypeEntry is the common view over every registered type.
type TypeEntry interface {
	TypeHash() types.Hash
	TypeName() string
	Kind() TypeKind
}

// PrimitiveEntry describes a built-in value type.
type PrimitiveEntry struct {
	Name string
	Hash types.Hash
	Size int // width in bytes, 0 for void
}

func (e *PrimitiveEntry) TypeHash() types.Hash { return e.Hash }
func (e *PrimitiveEntry) TypeName() string     { return e.Name }
func (e *PrimitiveEntry) Kind() TypeKind       { return KindPrimitive }

// Field is a named data member of a class.
type Field struct {
	Name       string
	Type       types.DataType
	Visibility Visibility
}

// TemplateParam is a placeholder declared by a generic type, e.g. the T
// in array<T>. Hash is the scoped placeholder hash substituted away at
// instantiation time.
type TemplateParam struct {
	Name string
	Hash types.Hash
}

// ClassEntry describes a class: its inheritance links, members,
// behaviors, and, for generics, the declared placeholders. Instances
// produced from a generic record the generic they came from and the
// bound arguments.
type ClassEntry struct {
	Name       string
	Hash       types.Hash
	Base       types.Hash // zero when the class has no base class
	Interfaces []types.Hash
	Methods    []types.Hash // function hashes in declaration order
	Fields     []Field
	Behaviors  TypeBehaviors

	IsTemplate     bool
	TemplateParams []TemplateParam
	ChildFuncdefs  []types.Hash

	Generic  types.Hash // for instances: the generic this was built from
	TypeArgs []types.DataType
}

func (e *ClassEntry) TypeHash() types.Hash { return e.Hash }
func (e *ClassEntry) TypeName() string     { return e.Name }
func (e *ClassEntry) Kind() TypeKind       { return KindClass }

// IsInstance reports whether this class was produced by instantiating a
// generic.
func (e *ClassEntry) IsInstance() bool { return e.Generic != 0 }

// HasBase reports whether the class declares a base class.
func (e *ClassEntry) HasBase() bool { return e.Base != 0 }

// EnumValue is a single named constant of an enum.
type EnumValue struct {
	Name  string
	Value int32
}

// EnumEntry describes an enumeration. All enums are int32-backed.
type EnumEntry struct {
	Name   string
	Hash   types.Hash
	Values []EnumValue
}

func (e *EnumEntry) TypeHash() types.Hash { return e.Hash }
func (e *EnumEntry) TypeName() string     { return e.Name }
func (e *EnumEntry) Kind() TypeKind       { return KindEnum }

// Value looks up a named constant.
func (e *EnumEntry) Value(name string) (int32, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// InterfaceEntry describes a method contract. Methods are kept in
// declaration order; interface tables preserve that order.
type InterfaceEntry struct {
	Name    string
	Hash    types.Hash
	Methods []types.MethodSignature
}

func (e *InterfaceEntry) TypeHash() types.Hash { return e.Hash }
func (e *InterfaceEntry) TypeName() string     { return e.Name }
func (e *InterfaceEntry) Kind() TypeKind       { return KindInterface }

// FuncdefEntry describes a named function pointer type. Owner is set
// for child funcdefs declared inside a generic, e.g. array<int>::Callback.
type FuncdefEntry struct {
	Name   string
	Hash   types.Hash
	Params []types.DataType
	Return types.DataType
	Owner  types.Hash
}

func (e *FuncdefEntry) TypeHash() types.Hash { return e.Hash }
func (e *FuncdefEntry) TypeName() string     { return e.Name }
func (e *FuncdefEntry) Kind() TypeKind       { return KindFuncdef }

// TemplateParamEntry registers a generic's placeholder so lookups on
// the unsubstituted declaration still resolve. Owner is the generic
// that declared it.
type TemplateParamEntry struct {
	Name  string
	Hash  types.Hash
	Owner types.Hash
}

func (e *TemplateParamEntry) TypeHash() types.Hash { return e.Hash }
func (e *TemplateParamEntry) TypeName() string     { return e.Name }
func (e *TemplateParamEntry) Kind() TypeKind       { return KindTemplateParam }
