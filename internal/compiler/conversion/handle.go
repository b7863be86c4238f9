package conversion

import (
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// findHandle covers the handle adjustments that stay on one base type:
// the null literal binding to any handle, a handle gaining constness
// on its pointee, and taking a handle to a value. All three are cheap
// and implicit; only dropping pointee constness is refused.
func (e *Engine) findHandle(src, dst types.DataType, _ Options) (Conversion, bool) {
	if src.IsNull() && dst.IsHandle {
		return Conversion{Kind: NullToHandle, Cost: CostConstAddition}, true
	}
	if src.Hash != dst.Hash {
		return Conversion{}, false
	}
	if src.IsHandle && dst.IsHandle && !src.IsHandleToConst && dst.IsHandleToConst {
		return Conversion{Kind: HandleToConst, Cost: CostConstAddition}, true
	}
	if !src.IsHandle && dst.IsHandle {
		// A const value only ever yields a handle to const.
		if src.IsConst && !dst.IsHandleToConst {
			return Conversion{}, false
		}
		return Conversion{Kind: ValueToHandle, Cost: CostConstAddition}, true
	}
	return Conversion{}, false
}
