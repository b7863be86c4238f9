// Package conversion decides whether one data type can become another
// and at what cost. The engine walks a fixed ladder of conversion
// families from cheapest to most expensive and returns the first rung
// that matches, so overload ranking can compare candidates by summed
// cost alone.
package conversion

import (
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Conversion costs. The gap between families is deliberate so whole
// argument lists can be summed without a cheap family ever outweighing
// an expensive one. Costs at or above CostExplicitOnly never apply
// implicitly.
const (
	CostExact             = 0
	CostConstAddition     = 1
	CostEnumSameSize      = 2
	CostEnumDiffSize      = 3
	CostWidening          = 4
	CostNarrowing         = 5
	CostSignedToUnsigned  = 6
	CostUnsignedToSigned  = 7
	CostIntToFloat        = 8
	CostFloatToInt        = 9
	CostReferenceCast     = 10
	CostObjectToPrimitive = 11
	CostToObject          = 12
	CostVarArg            = 13
	CostExplicitOnly      = 100
)

// Kind names the conversion family a step belongs to.
type Kind uint8

const (
	Identity Kind = iota
	Primitive
	EnumToInt
	IntToEnum
	NullToHandle
	HandleToConst
	ValueToHandle
	DerivedToBase
	ClassToInterface
	ReferenceCast
	Construct
	ImplicitConv
	ExplicitConv
	ImplicitCast
	ExplicitCast
	VarArg
)

// String returns a short human-readable name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Primitive:
		return "primitive"
	case EnumToInt:
		return "enum to int"
	case IntToEnum:
		return "int to enum"
	case NullToHandle:
		return "null to handle"
	case HandleToConst:
		return "handle to const"
	case ValueToHandle:
		return "value to handle"
	case DerivedToBase:
		return "derived to base"
	case ClassToInterface:
		return "class to interface"
	case ReferenceCast:
		return "reference cast"
	case Construct:
		return "constructor"
	case ImplicitConv:
		return "implicit conv"
	case ExplicitConv:
		return "explicit conv"
	case ImplicitCast:
		return "implicit cast"
	case ExplicitCast:
		return "explicit cast"
	case VarArg:
		return "vararg"
	default:
		return "unknown"
	}
}

// Conversion describes one step from a source type to a target type.
// Method is set when the step calls a user function (conversion
// operators, constructor conversions); Target is set when the step
// lands on a named type (base class, interface, enum, cast target).
type Conversion struct {
	Kind   Kind
	Cost   int
	Method types.Hash
	Target types.Hash
}

// IsImplicit reports whether the step may be applied without an
// explicit cast.
func (c Conversion) IsImplicit() bool { return c.Cost < CostExplicitOnly }

// Options tune a conversion search to its expression context.
type Options struct {
	// AllowExplicit admits conversions that require a cast expression.
	AllowExplicit bool
	// BoolCondition marks the test expression of if/while/for. Handles
	// there are null checks, so a handle's opImplConv to bool is not
	// considered.
	BoolCondition bool
}

// Implicit is the default search: implicit conversions only.
func Implicit() Options { return Options{} }

// Explicit admits cast-only conversions as well.
func Explicit() Options { return Options{AllowExplicit: true} }

// Engine finds conversions against a fully built symbol registry.
type Engine struct {
	reg *registry.SymbolRegistry
}

// NewEngine creates an engine over reg.
func NewEngine(reg *registry.SymbolRegistry) *Engine {
	return &Engine{reg: reg}
}

// Find locates the cheapest conversion from src to dst under opts. The
// boolean result is false when no conversion exists in that context.
func (e *Engine) Find(src, dst types.DataType, opts Options) (Conversion, bool) {
	// Reference modifiers describe how a value is passed, not what it
	// is; they never participate in convertibility.
	src = src.WithoutRef()
	dst = dst.WithoutRef()

	if src == dst {
		return Conversion{Kind: Identity, Cost: CostExact}, true
	}
	if src.Hash == dst.Hash && !src.IsHandle && !dst.IsHandle && !src.IsConst && dst.IsConst {
		return Conversion{Kind: Identity, Cost: CostConstAddition}, true
	}
	if conv, ok := e.findEnum(src, dst); ok {
		return conv, true
	}
	if conv, ok := findPrimitive(src, dst); ok {
		return conv, true
	}
	if conv, ok := e.findHandle(src, dst, opts); ok {
		return conv, true
	}
	if conv, ok := e.findHierarchy(src, dst); ok {
		return conv, true
	}
	if conv, ok := e.findUserDefined(src, dst, opts); ok {
		return conv, true
	}
	if dst.Hash == types.AnyParam {
		return Conversion{Kind: VarArg, Cost: CostVarArg}, true
	}
	return Conversion{}, false
}

// findEnum bridges enums and the numeric primitives in both
// directions. Enums are int32-backed, so landing on int keeps the
// width and costs less than changing it.
func (e *Engine) findEnum(src, dst types.DataType) (Conversion, bool) {
	if src.IsHandle || dst.IsHandle {
		return Conversion{}, false
	}
	if _, ok := e.reg.Enum(src.Hash); ok && isNumeric(dst.Hash) {
		cost := CostEnumDiffSize
		if dst.Hash == types.Int32 {
			cost = CostEnumSameSize
		}
		return Conversion{Kind: EnumToInt, Cost: cost, Target: dst.Hash}, true
	}
	if _, ok := e.reg.Enum(dst.Hash); ok && isNumeric(src.Hash) {
		cost := CostEnumDiffSize
		if src.Hash == types.Int32 {
			cost = CostEnumSameSize
		}
		return Conversion{Kind: IntToEnum, Cost: cost, Target: dst.Hash}, true
	}
	return Conversion{}, false
}

// findHierarchy resolves upcasts: derived class to one of its bases,
// or class to an interface it implements. The cast target must
// actually be an interface for the interface arm to apply.
func (e *Engine) findHierarchy(src, dst types.DataType) (Conversion, bool) {
	if _, ok := e.reg.Class(src.Hash); !ok {
		return Conversion{}, false
	}

	for _, base := range e.reg.BaseChain(src.Hash) {
		if base != dst.Hash {
			continue
		}
		kind := DerivedToBase
		if src.IsHandle && dst.IsHandle {
			kind = ReferenceCast
		}
		return Conversion{Kind: kind, Cost: CostReferenceCast, Target: dst.Hash}, true
	}

	if _, ok := e.reg.Interface(dst.Hash); ok && e.reg.Implements(src.Hash, dst.Hash) {
		kind := ClassToInterface
		if src.IsHandle && dst.IsHandle {
			kind = ReferenceCast
		}
		return Conversion{Kind: kind, Cost: CostReferenceCast, Target: dst.Hash}, true
	}
	return Conversion{}, false
}
