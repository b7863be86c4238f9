package registry

import (
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Operator method names with resolution-relevant semantics. Conversion
// operators are keyed by their target type so lookup is a single probe
// instead of a scan.
const (
	OpImplConv = "opImplConv" // implicit value conversion
	OpConv     = "opConv"     // explicit value conversion
	OpImplCast = "opImplCast" // implicit reference cast
	OpCast     = "opCast"     // explicit reference cast
)

// OperatorKey addresses an operator overload set on a type. Target is
// the conversion target for conversion and cast operators, zero for
// everything else.
type OperatorKey struct {
	Name   string
	Target types.Hash
}

// ConvKey builds the lookup key for a conversion or cast operator
// returning target.
func ConvKey(name string, target types.Hash) OperatorKey {
	return OperatorKey{Name: name, Target: target}
}

// TypeBehaviors collects the special member functions of a class:
// constructors, factories for reference types, and operator overloads.
type TypeBehaviors struct {
	Constructors []types.Hash
	Factories    []types.Hash

	operators map[OperatorKey][]types.Hash
}

// AddConstructor records a constructor function hash.
func (b *TypeBehaviors) AddConstructor(fn types.Hash) {
	b.Constructors = append(b.Constructors, fn)
}

// AddFactory records a factory function hash.
func (b *TypeBehaviors) AddFactory(fn types.Hash) {
	b.Factories = append(b.Factories, fn)
}

// AddOperator records an operator overload under its key.
func (b *TypeBehaviors) AddOperator(key OperatorKey, fn types.Hash) {
	if b.operators == nil {
		b.operators = make(map[OperatorKey][]types.Hash)
	}
	b.operators[key] = append(b.operators[key], fn)
}

// Operator returns the overloads registered under key, nil when none.
func (b *TypeBehaviors) Operator(key OperatorKey) []types.Hash {
	return b.operators[key]
}

// OperatorKeys returns every key with at least one registered overload.
// Order is unspecified.
func (b *TypeBehaviors) OperatorKeys() []OperatorKey {
	if len(b.operators) == 0 {
		return nil
	}
	keys := make([]OperatorKey, 0, len(b.operators))
	for k := range b.operators {
		keys = append(keys, k)
	}
	return keys
}
