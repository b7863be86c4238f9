// Package types provides the identity and descriptor model for the Vesper
// type system. Every named entity (type, function, method, constructor,
// operator, template instance) is identified by a deterministic 64-bit
// content hash, so entities can reference each other before registration
// and independent compilations of the same source agree on every identity.
package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash is a deterministic 64-bit identity for a type, function, or method.
// It is computed from the qualified name (and signature, where one exists),
// never from registration order. The zero value is reserved as "no entity".
type Hash uint64

// Domain-mixing constants. Each entity category XORs its own constant into
// the name hash so that a type, a function, and a method sharing a spelled
// name can never collide.
const (
	hashSep           uint64 = 0x4bc94d6bd06053ad
	domainType        uint64 = 0x2fac10b63a6cc57c
	domainFunction    uint64 = 0x5ea77ffbcdf5f302
	domainMethod      uint64 = 0x7d3c8b4a92e15f6d
	domainOperator    uint64 = 0x3e9f5d2a8c7b1403
	domainConstructor uint64 = 0x9a7f3d5e2b8c4601
	domainIdent       uint64 = 0x1a095090689d4647
)

// positionMarkers gives each parameter position a distinct mixing constant
// so that swapping two parameters changes the resulting hash.
var positionMarkers = [32]uint64{
	0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9, 0x94d049bb133111eb, 0xd6e8feb86659fd93,
	0xe7037ed1a0b428db, 0xc6a4a7935bd1e995, 0x8648dbbc94d49b8d, 0xa2b48b2c69e0d657,
	0x7c3e9f2a5b8d1403, 0x5d8c7b4a3e9f2106, 0x3f1e9d8c7b5a4203, 0x1a2b3c4d5e6f7089,
	0x9f8e7d6c5b4a3210, 0x2468ace013579bdf, 0xfdb97531eca86420, 0x123456789abcdef0,
	0xfedcba9876543210, 0x0f1e2d3c4b5a6978, 0x89abcdef01234567, 0x76543210fedcba98,
	0xabcdef0123456789, 0x3210fedcba987654, 0xcdef0123456789ab, 0x6789abcdef012345,
	0x456789abcdef0123, 0xef0123456789abcd, 0x23456789abcdef01, 0xba9876543210fedc,
	0xdcba9876543210fe, 0x10fedcba98765432, 0x5432dcba98761fed, 0x98761fedcba54320,
}

func positionMarker(i int) uint64 {
	if i < len(positionMarkers) {
		return positionMarkers[i]
	}
	return positionMarkers[0] + uint64(i)
}

// foldParams mixes each parameter into the hash with a position-specific
// marker. Multiply-then-add is deliberately non-commutative: (int, float)
// and (float, int) must produce different results.
func foldParams(h uint64, params []Hash) uint64 {
	for i, p := range params {
		h = h*hashSep + (positionMarker(i) ^ uint64(p))
	}
	return h
}

// HashName computes the identity of a type from its qualified name.
func HashName(name string) Hash {
	return Hash(domainType ^ xxhash.Sum64String(name))
}

// HashFunction computes the identity of a global function from its name and
// ordered parameter type hashes. Different parameter orders produce
// different identities, which is what distinguishes overloads.
func HashFunction(name string, params []Hash) Hash {
	h := domainFunction ^ xxhash.Sum64String(name)
	return Hash(foldParams(h, params))
}

// HashMethod computes the identity of an instance method. The owner type
// and both const qualifiers are folded in, so `f()` and `f() const` differ
// and two owners' same-named methods never collide.
func HashMethod(owner Hash, name string, params []Hash, isConst, returnIsConst bool) Hash {
	h := domainMethod ^ uint64(owner) ^ xxhash.Sum64String(name) ^ constBits(isConst, returnIsConst)
	return Hash(foldParams(h, params))
}

// HashConstructor computes the identity of a constructor. Constructors have
// no name of their own; owner plus parameters identify them.
func HashConstructor(owner Hash, params []Hash) Hash {
	h := domainConstructor ^ uint64(owner)
	return Hash(foldParams(h, params))
}

// HashOperator computes the identity of an operator method. Operators use
// their own domain constant so that `opAdd` the operator and a regular
// method spelled "opAdd" stay distinct.
func HashOperator(owner Hash, name string, params []Hash, isConst, returnIsConst bool) Hash {
	h := domainOperator ^ uint64(owner) ^ xxhash.Sum64String(name) ^ constBits(isConst, returnIsConst)
	return Hash(foldParams(h, params))
}

// HashTemplateInstance computes the identity of a generic instantiated with
// concrete type arguments, starting from the generic's own identity. Used
// uniformly for generic types, generic functions, and generic-scoped
// declarations.
func HashTemplateInstance(generic Hash, args []Hash) Hash {
	return Hash(foldParams(uint64(generic), args))
}

// HashIdent computes the identity of a bare identifier (named constant,
// enum member, global property).
func HashIdent(name string) Hash {
	return Hash(domainIdent ^ xxhash.Sum64String(name))
}

// HashSignature computes a dispatch-signature identity from a method name,
// its parameter signature hashes, and the method's const qualifier. The
// owner and return type are deliberately excluded so that an override in a
// derived class produces the same signature as the base method it replaces.
func HashSignature(name string, paramSigs []uint64, isConst bool) Hash {
	h := domainMethod ^ xxhash.Sum64String(name)
	if isConst {
		h ^= 0x1
	}
	for i, p := range paramSigs {
		h = h*hashSep + (positionMarker(i) ^ p)
	}
	return Hash(h)
}

func constBits(isConst, returnIsConst bool) uint64 {
	var bits uint64
	if isConst {
		bits |= 0x1
	}
	if returnIsConst {
		bits |= 0x2
	}
	return bits
}

// IsZero reports whether the hash is the reserved "no entity" value.
func (h Hash) IsZero() bool {
	return h == 0
}

func (h Hash) String() string {
	return fmt.Sprintf("%#016x", uint64(h))
}

// Well-known identities. The primitive hashes are ordinary HashName results
// over the language's spelled names; Self and AnyParam are fixed sentinels
// that no name can produce.
var (
	Void   = HashName("void")
	Bool   = HashName("bool")
	Int8   = HashName("int8")
	Int16  = HashName("int16")
	Int32  = HashName("int")
	Int64  = HashName("int64")
	UInt8  = HashName("uint8")
	UInt16 = HashName("uint16")
	UInt32 = HashName("uint")
	UInt64 = HashName("uint64")
	Float  = HashName("float")
	Double = HashName("double")

	// String is a registered object type rather than a true primitive, but
	// its identity is needed in the same places.
	String = HashName("string")

	// NullLiteral is the type of the `null` expression.
	NullLiteral = HashName("null")
)

const (
	// Self stands for the enclosing type inside its own declaration.
	Self Hash = 0xfffffffffffffffe

	// AnyParam is the declared type of a `?` parameter, which accepts an
	// argument of any type.
	AnyParam Hash = 0x3f3f3f3f3f3f3f3f
)
