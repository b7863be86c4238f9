package types

// MethodSignature is the dispatch-relevant shape of a method: name,
// parameter types, return type, and const qualifier. Interfaces declare
// their methods as signatures, and vtable override matching keys on the
// signature hash.
type MethodSignature struct {
	Name    string
	Params  []DataType
	Return  DataType
	IsConst bool
}

// NewMethodSignature returns a non-const method signature.
func NewMethodSignature(name string, params []DataType, ret DataType) MethodSignature {
	return MethodSignature{Name: name, Params: params, Return: ret}
}

// NewConstMethodSignature returns a const method signature.
func NewConstMethodSignature(name string, params []DataType, ret DataType) MethodSignature {
	return MethodSignature{Name: name, Params: params, Return: ret, IsConst: true}
}

// SignatureHash computes the identity used for vtable and itable slot
// matching. It covers the name, the parameter types with their modifiers,
// and the const qualifier, but not the owner or the return type, so an
// override in a derived class hashes the same as the base method it
// replaces.
func (s MethodSignature) SignatureHash() Hash {
	sigs := make([]uint64, len(s.Params))
	for i, p := range s.Params {
		sigs[i] = p.SignatureHash()
	}
	return HashSignature(s.Name, sigs, s.IsConst)
}
