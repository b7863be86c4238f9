package registry

import (
	"strings"

	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Visibility controls member access and inheritance.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Inheritable reports whether a member with this visibility is carried
// into derived classes.
func (v Visibility) Inheritable() bool { return v != Private }

// Param is a declared function parameter. HasDefault marks parameters
// a call site may omit.
type Param struct {
	Name       string
	Type       types.DataType
	HasDefault bool
}

// FunctionTraits carries the declaration modifiers that change how a
// function participates in resolution.
type FunctionTraits struct {
	IsConst    bool // const method, callable on const objects
	IsExplicit bool // constructor or conversion excluded from implicit use
	IsVariadic bool // extra arguments allowed past the declared list
}

// FunctionEntry describes a registered free function, method,
// constructor, or operator. Owner is zero for free functions.
//
// A non-empty TemplateParams marks a generic function awaiting
// instantiation. IsNative distinguishes host-provided implementations,
// which every instance shares, from script functions, whose SourceRef
// points at the uncompiled body each instance is compiled from.
// Instances carry the hash of the generic they were substituted from
// in Generic, so a later compilation pass can find that body.
type FunctionEntry struct {
	Name       string
	Hash       types.Hash
	Owner      types.Hash
	Params     []Param
	Return     types.DataType
	Traits     FunctionTraits
	Visibility Visibility

	TemplateParams []TemplateParam
	Generic        types.Hash
	IsNative       bool
	SourceRef      string
}

// IsTemplate reports whether the function is a generic awaiting
// instantiation.
func (f *FunctionEntry) IsTemplate() bool { return len(f.TemplateParams) > 0 }

// NewFunction builds a free function entry. The hash is derived from
// the name and parameter base types.
func NewFunction(name string, params []Param, ret types.DataType) *FunctionEntry {
	return &FunctionEntry{
		Name:   name,
		Hash:   types.HashFunction(name, paramHashes(params)),
		Params: params,
		Return: ret,
	}
}

// NewMethod builds a method entry owned by a class or interface.
func NewMethod(owner types.Hash, name string, params []Param, ret types.DataType, isConst bool) *FunctionEntry {
	return &FunctionEntry{
		Name:       name,
		Hash:       types.HashMethod(owner, name, paramHashes(params), isConst, ret.IsConst),
		Owner:      owner,
		Params:     params,
		Return:     ret,
		Traits:     FunctionTraits{IsConst: isConst},
		Visibility: Public,
	}
}

// NewConstructor builds a constructor entry. Constructors have no name
// component in their hash and return the owner by value.
func NewConstructor(owner types.Hash, params []Param) *FunctionEntry {
	return &FunctionEntry{
		Name:       "$ctor",
		Hash:       types.HashConstructor(owner, paramHashes(params)),
		Owner:      owner,
		Params:     params,
		Return:     types.NewSimple(owner),
		Visibility: Public,
	}
}

// NewOperator builds an operator method entry, hashed in the operator
// domain so operators never collide with plain methods.
func NewOperator(owner types.Hash, name string, params []Param, ret types.DataType, isConst bool) *FunctionEntry {
	return &FunctionEntry{
		Name:       name,
		Hash:       types.HashOperator(owner, name, paramHashes(params), isConst, ret.IsConst),
		Owner:      owner,
		Params:     params,
		Return:     ret,
		Traits:     FunctionTraits{IsConst: isConst},
		Visibility: Public,
	}
}

func paramHashes(params []Param) []types.Hash {
	if len(params) == 0 {
		return nil
	}
	hashes := make([]types.Hash, len(params))
	for i, p := range params {
		hashes[i] = p.Type.Hash
	}
	return hashes
}

// IsMethod reports whether the function belongs to a type.
func (f *FunctionEntry) IsMethod() bool { return f.Owner != 0 }

// IsConstructor reports whether the entry is a constructor.
func (f *FunctionEntry) IsConstructor() bool { return f.Name == "$ctor" }

// RequiredParams counts the parameters a call site must supply: the
// leading run without defaults.
func (f *FunctionEntry) RequiredParams() int {
	for i, p := range f.Params {
		if p.HasDefault {
			return i
		}
	}
	return len(f.Params)
}

// DeclaredParams returns the declared parameter count.
func (f *FunctionEntry) DeclaredParams() int { return len(f.Params) }

// Signature builds the owner-independent signature used for vtable
// slot matching.
func (f *FunctionEntry) Signature() types.MethodSignature {
	paramTypes := make([]types.DataType, len(f.Params))
	for i, p := range f.Params {
		paramTypes[i] = p.Type
	}
	return types.MethodSignature{
		Name:    f.Name,
		Params:  paramTypes,
		Return:  f.Return,
		IsConst: f.Traits.IsConst,
	}
}

// ParamTypes returns the declared parameter types in order.
func (f *FunctionEntry) ParamTypes() []types.DataType {
	out := make([]types.DataType, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// render formats the function as a declaration, resolving type names
// through the supplied renderer. Constructors render as the owner name
// applied to the parameter list.
func (f *FunctionEntry) render(typeName func(types.DataType) string) string {
	var b strings.Builder
	if f.IsConstructor() {
		b.WriteString(typeName(types.NewSimple(f.Owner)))
	} else {
		b.WriteString(typeName(f.Return))
		b.WriteByte(' ')
		if f.Owner != 0 {
			b.WriteString(typeName(types.NewSimple(f.Owner)))
			b.WriteString("::")
		}
		b.WriteString(f.Name)
	}
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeName(p.Type))
	}
	if f.Traits.IsVariadic {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte(')')
	if f.Traits.IsConst {
		b.WriteString(" const")
	}
	return b.String()
}
