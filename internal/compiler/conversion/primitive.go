package conversion

import (
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

type numClass uint8

const (
	signedInt numClass = iota
	unsignedInt
	floating
)

type numInfo struct {
	class numClass
	width int // bytes
}

// The ten numeric primitives. bool is deliberately absent: truth
// values do not convert to or from numbers without a cast expression,
// and no cast family exists for them here.
var numerics = map[types.Hash]numInfo{
	types.Int8:   {signedInt, 1},
	types.Int16:  {signedInt, 2},
	types.Int32:  {signedInt, 4},
	types.Int64:  {signedInt, 8},
	types.UInt8:  {unsignedInt, 1},
	types.UInt16: {unsignedInt, 2},
	types.UInt32: {unsignedInt, 4},
	types.UInt64: {unsignedInt, 8},
	types.Float:  {floating, 4},
	types.Double: {floating, 8},
}

func isNumeric(h types.Hash) bool {
	_, ok := numerics[h]
	return ok
}

// findPrimitive ranks conversions between the numeric primitives.
// Widening within a class is cheapest, then narrowing, then same-width
// sign changes, then crossing between the integer and floating worlds.
func findPrimitive(src, dst types.DataType) (Conversion, bool) {
	if src.IsHandle || dst.IsHandle {
		return Conversion{}, false
	}
	from, ok := numerics[src.Hash]
	if !ok {
		return Conversion{}, false
	}
	to, ok := numerics[dst.Hash]
	if !ok {
		return Conversion{}, false
	}
	return Conversion{Kind: Primitive, Cost: primitiveCost(from, to), Target: dst.Hash}, true
}

func primitiveCost(from, to numInfo) int {
	switch {
	case from.class == floating && to.class == floating:
		if to.width > from.width {
			return CostWidening
		}
		return CostNarrowing
	case from.class == floating:
		return CostFloatToInt
	case to.class == floating:
		return CostIntToFloat
	case from.class == to.class:
		if to.width > from.width {
			return CostWidening
		}
		return CostNarrowing
	case from.class == unsignedInt && to.class == signedInt:
		// A wider signed integer holds every unsigned value of the
		// smaller width, so that direction still widens.
		switch {
		case to.width > from.width:
			return CostWidening
		case to.width == from.width:
			return CostUnsignedToSigned
		default:
			return CostNarrowing
		}
	case from.class == signedInt && to.class == unsignedInt:
		if to.width == from.width {
			return CostSignedToUnsigned
		}
		return CostNarrowing
	default:
		return CostNarrowing
	}
}
