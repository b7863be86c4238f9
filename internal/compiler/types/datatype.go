package types

import (
	"strings"
)

// RefModifier is the reference passing mode of a parameter.
type RefModifier uint8

const (
	// RefNone passes by value.
	RefNone RefModifier = iota
	// RefIn is a read-only reference; accepts any value, may bind a temporary.
	RefIn
	// RefOut is a write-only reference; requires a mutable lvalue.
	RefOut
	// RefInOut is a read-write reference; requires an initialized mutable lvalue.
	RefInOut
)

func (m RefModifier) String() string {
	switch m {
	case RefIn:
		return "&in"
	case RefOut:
		return "&out"
	case RefInOut:
		return "&inout"
	default:
		return ""
	}
}

// DataType is a complete type descriptor: the base type identity plus every
// modifier that matters for conversion and overload decisions. It is a
// small comparable value; equality over all fields is the "identical type"
// check, while SameBase ignores modifiers.
//
//	int              {Hash: Int32}
//	const int        {Hash: Int32, IsConst: true}
//	Player@          {Hash: player, IsHandle: true}
//	const Player@    {Hash: player, IsConst: true, IsHandle: true}
//	Player@ const    {Hash: player, IsHandle: true, IsHandleToConst: true}
//	int &out         {Hash: Int32, Ref: RefOut}
type DataType struct {
	Hash            Hash
	IsConst         bool
	IsHandle        bool
	IsHandleToConst bool
	Ref             RefModifier
}

// NewSimple returns an unmodified by-value type.
func NewSimple(h Hash) DataType {
	return DataType{Hash: h}
}

// NewConst returns a const by-value type.
func NewConst(h Hash) DataType {
	return DataType{Hash: h, IsConst: true}
}

// NewHandle returns a handle type, optionally a handle to a const object.
func NewHandle(h Hash, toConst bool) DataType {
	return DataType{Hash: h, IsHandle: true, IsHandleToConst: toConst}
}

// NewConstHandle returns a read-only handle (the handle itself cannot be
// reseated), optionally also a handle to a const object.
func NewConstHandle(h Hash, toConst bool) DataType {
	return DataType{Hash: h, IsConst: true, IsHandle: true, IsHandleToConst: toConst}
}

// Null returns the type of the null literal.
func Null() DataType {
	return DataType{Hash: NullLiteral}
}

// VoidType returns the void type.
func VoidType() DataType {
	return DataType{Hash: Void}
}

// AsConst returns a copy with the const qualifier set.
func (t DataType) AsConst() DataType {
	t.IsConst = true
	return t
}

// WithoutConst returns a copy with the const qualifier cleared.
func (t DataType) WithoutConst() DataType {
	t.IsConst = false
	return t
}

// AsHandle returns a copy that is a handle to the same base type.
func (t DataType) AsHandle() DataType {
	t.IsHandle = true
	return t
}

// AsHandleToConst returns a copy that is a handle to a const object.
func (t DataType) AsHandleToConst() DataType {
	t.IsHandle = true
	t.IsHandleToConst = true
	return t
}

// WithRef returns a copy with the given reference modifier.
func (t DataType) WithRef(m RefModifier) DataType {
	t.Ref = m
	return t
}

// WithoutRef returns a copy with the reference modifier cleared.
func (t DataType) WithoutRef() DataType {
	t.Ref = RefNone
	return t
}

// IsVoid reports whether this is the void type.
func (t DataType) IsVoid() bool {
	return t.Hash == Void
}

// IsNull reports whether this is the type of the null literal.
func (t DataType) IsNull() bool {
	return t.Hash == NullLiteral
}

// IsReference reports whether the type carries any reference modifier.
func (t DataType) IsReference() bool {
	return t.Ref != RefNone
}

// SameBase reports whether both descriptors name the same base type,
// ignoring every modifier.
func (t DataType) SameBase(other DataType) bool {
	return t.Hash == other.Hash
}

// EffectivelyConst reports whether the referenced object cannot be
// mutated: either the value itself is const or it is a handle to a const
// object. Non-const methods cannot be invoked on an effectively const
// receiver.
func (t DataType) EffectivelyConst() bool {
	return t.IsConst || t.IsHandleToConst
}

// SignatureHash folds the modifiers into the base identity. Two parameters
// that differ only in a modifier (int vs. int &in, T@ vs. T@ const) must
// count as different dispatch signatures.
func (t DataType) SignatureHash() uint64 {
	bits := uint64(0)
	if t.IsConst {
		bits |= 1
	}
	if t.IsHandle {
		bits |= 1 << 1
	}
	if t.IsHandleToConst {
		bits |= 1 << 2
	}
	bits |= uint64(t.Ref) << 3
	return uint64(t.Hash) ^ (bits * 0x9e3779b97f4a7c15)
}

// String renders the descriptor with the base type shown as its hash.
// Callers that can resolve names should prefer SymbolRegistry.RenderType.
func (t DataType) String() string {
	return t.Render(t.Hash.String())
}

// Render formats the descriptor around a resolved base type name, in
// declaration order: [const] name[@ [const]] [&ref].
func (t DataType) Render(base string) string {
	var b strings.Builder
	if t.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(base)
	if t.IsHandle {
		b.WriteString("@")
		if t.IsHandleToConst {
			b.WriteString(" const")
		}
	}
	if t.Ref != RefNone {
		b.WriteString(" ")
		b.WriteString(t.Ref.String())
	}
	return b.String()
}
