package conversion

import (
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// findUserDefined consults the conversions a class author wrote:
// opImplConv and opImplCast on the source class, implicit constructor
// conversions on the target class, and, when a cast expression allows
// them, opConv and opCast. Operator lookups are keyed by target type,
// and a const source only ever binds to const operator methods.
func (e *Engine) findUserDefined(src, dst types.DataType, opts Options) (Conversion, bool) {
	ce, srcIsClass := e.reg.Class(src.Hash)

	if srcIsClass {
		// In a condition a handle is a null check, not a value to
		// convert.
		convAllowed := !(opts.BoolCondition && dst.Hash == types.Bool && src.IsHandle)

		if convAllowed {
			if fn := e.constCorrectMethod(src, ce.Behaviors.Operator(registry.ConvKey(registry.OpImplConv, dst.Hash))); fn != nil {
				cost := CostToObject
				if isNumeric(dst.Hash) || dst.Hash == types.Bool {
					cost = CostObjectToPrimitive
				}
				return Conversion{Kind: ImplicitConv, Cost: cost, Method: fn.Hash, Target: dst.Hash}, true
			}
		}

		if fn := e.constCorrectMethod(src, ce.Behaviors.Operator(registry.ConvKey(registry.OpImplCast, dst.Hash))); fn != nil {
			return Conversion{Kind: ImplicitCast, Cost: CostReferenceCast, Method: fn.Hash, Target: dst.Hash}, true
		}
	}

	// Constructor conversions live on the target class, so the source
	// may be anything, primitives included.
	if conv, ok := e.findConstructorConversion(src, dst); ok {
		return conv, true
	}

	if srcIsClass && opts.AllowExplicit {
		if fn := e.constCorrectMethod(src, ce.Behaviors.Operator(registry.ConvKey(registry.OpConv, dst.Hash))); fn != nil {
			return Conversion{Kind: ExplicitConv, Cost: CostExplicitOnly, Method: fn.Hash, Target: dst.Hash}, true
		}
		if fn := e.constCorrectMethod(src, ce.Behaviors.Operator(registry.ConvKey(registry.OpCast, dst.Hash))); fn != nil {
			return Conversion{Kind: ExplicitCast, Cost: CostExplicitOnly, Method: fn.Hash, Target: dst.Hash}, true
		}
	}
	return Conversion{}, false
}

// findConstructorConversion looks for a single-argument, non-explicit
// constructor on the target class that takes the source type.
func (e *Engine) findConstructorConversion(src, dst types.DataType) (Conversion, bool) {
	tce, ok := e.reg.Class(dst.Hash)
	if !ok {
		return Conversion{}, false
	}
	for _, h := range tce.Behaviors.Constructors {
		ctor, ok := e.reg.Function(h)
		if !ok || ctor.Traits.IsExplicit || len(ctor.Params) != 1 {
			continue
		}
		param := ctor.Params[0].Type
		if param.Hash != src.Hash {
			continue
		}
		if src.EffectivelyConst() && !param.EffectivelyConst() {
			continue
		}
		return Conversion{Kind: Construct, Cost: CostToObject, Method: h, Target: dst.Hash}, true
	}
	return Conversion{}, false
}

// constCorrectMethod picks the first candidate callable on the source:
// a const source requires a const method, a mutable source takes any.
func (e *Engine) constCorrectMethod(src types.DataType, candidates []types.Hash) *registry.FunctionEntry {
	srcConst := src.EffectivelyConst()
	for _, h := range candidates {
		fn, ok := e.reg.Function(h)
		if !ok {
			continue
		}
		if srcConst && !fn.Traits.IsConst {
			continue
		}
		return fn
	}
	return nil
}
