// Package registry holds the symbol tables the resolution passes read:
// every declared type keyed by its content hash, every function, and
// free-function overload sets grouped by name. Registration is
// hash-addressed, so identical declarations collide loudly instead of
// shadowing each other.
package registry

import (
	"sort"

	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// InstanceValidator vets the argument list of a generic instantiation
// before any members are built. A nil return accepts the instance.
type InstanceValidator func(args []types.DataType) error

// SymbolRegistry is the central symbol store. It is not safe for
// concurrent mutation; resolution passes share a fully built registry
// read-only.
type SymbolRegistry struct {
	typeEntries map[types.Hash]TypeEntry
	typesByName map[string]types.Hash
	typeOrder   []types.Hash

	functions map[types.Hash]*FunctionEntry
	overloads map[string][]types.Hash

	validators map[types.Hash]InstanceValidator
}

// New creates an empty registry. Callers that need the built-in value
// types registered by name should follow up with RegisterPrimitives.
func New() *SymbolRegistry {
	return &SymbolRegistry{
		typeEntries: make(map[types.Hash]TypeEntry),
		typesByName: make(map[string]types.Hash),
		functions:   make(map[types.Hash]*FunctionEntry),
		overloads:   make(map[string][]types.Hash),
		validators:  make(map[types.Hash]InstanceValidator),
	}
}

var primitiveSizes = []struct {
	name string
	size int
}{
	{"void", 0},
	{"bool", 1},
	{"int8", 1},
	{"int16", 2},
	{"int", 4},
	{"int64", 8},
	{"uint8", 1},
	{"uint16", 2},
	{"uint", 4},
	{"uint64", 8},
	{"float", 4},
	{"double", 8},
}

// RegisterPrimitives registers the built-in value types. It is
// idempotent so engine setup and tests can both call it.
func (r *SymbolRegistry) RegisterPrimitives() {
	for _, p := range primitiveSizes {
		if _, exists := r.typesByName[p.name]; exists {
			continue
		}
		entry := &PrimitiveEntry{Name: p.name, Hash: types.HashName(p.name), Size: p.size}
		r.typeEntries[entry.Hash] = entry
		r.typesByName[entry.Name] = entry.Hash
		r.typeOrder = append(r.typeOrder, entry.Hash)
	}
}

// RegisterType adds a type entry. Both the hash and the name must be
// unused.
func (r *SymbolRegistry) RegisterType(entry TypeEntry) error {
	if _, exists := r.typeEntries[entry.TypeHash()]; exists {
		return NewDuplicateSymbol(entry.Kind().String(), entry.TypeName())
	}
	if _, exists := r.typesByName[entry.TypeName()]; exists {
		return NewDuplicateSymbol(entry.Kind().String(), entry.TypeName())
	}
	r.typeEntries[entry.TypeHash()] = entry
	r.typesByName[entry.TypeName()] = entry.TypeHash()
	r.typeOrder = append(r.typeOrder, entry.TypeHash())
	return nil
}

// Type looks up a type entry by hash.
func (r *SymbolRegistry) Type(hash types.Hash) (TypeEntry, bool) {
	e, ok := r.typeEntries[hash]
	return e, ok
}

// TypeByName looks up a type entry by its fully qualified name.
func (r *SymbolRegistry) TypeByName(name string) (TypeEntry, bool) {
	hash, ok := r.typesByName[name]
	if !ok {
		return nil, false
	}
	return r.typeEntries[hash], true
}

// HasType reports whether a hash is registered.
func (r *SymbolRegistry) HasType(hash types.Hash) bool {
	_, ok := r.typeEntries[hash]
	return ok
}

// Class returns the entry when hash names a class.
func (r *SymbolRegistry) Class(hash types.Hash) (*ClassEntry, bool) {
	e, ok := r.typeEntries[hash].(*ClassEntry)
	return e, ok
}

// Enum returns the entry when hash names an enum.
func (r *SymbolRegistry) Enum(hash types.Hash) (*EnumEntry, bool) {
	e, ok := r.typeEntries[hash].(*EnumEntry)
	return e, ok
}

// Interface returns the entry when hash names an interface.
func (r *SymbolRegistry) Interface(hash types.Hash) (*InterfaceEntry, bool) {
	e, ok := r.typeEntries[hash].(*InterfaceEntry)
	return e, ok
}

// Funcdef returns the entry when hash names a funcdef.
func (r *SymbolRegistry) Funcdef(hash types.Hash) (*FuncdefEntry, bool) {
	e, ok := r.typeEntries[hash].(*FuncdefEntry)
	return e, ok
}

// Types returns every registered entry in registration order.
func (r *SymbolRegistry) Types() []TypeEntry {
	out := make([]TypeEntry, 0, len(r.typeOrder))
	for _, h := range r.typeOrder {
		out = append(out, r.typeEntries[h])
	}
	return out
}

// Classes returns every registered class in registration order.
func (r *SymbolRegistry) Classes() []*ClassEntry {
	var out []*ClassEntry
	for _, h := range r.typeOrder {
		if ce, ok := r.typeEntries[h].(*ClassEntry); ok {
			out = append(out, ce)
		}
	}
	return out
}

// RegisterFunction adds a free function or detached method entry and,
// for free functions, extends the overload set for its name.
func (r *SymbolRegistry) RegisterFunction(fn *FunctionEntry) error {
	if _, exists := r.functions[fn.Hash]; exists {
		return NewDuplicateSymbol("function", fn.Name)
	}
	r.functions[fn.Hash] = fn
	if !fn.IsMethod() {
		r.overloads[fn.Name] = append(r.overloads[fn.Name], fn.Hash)
	}
	return nil
}

// RegisterMethod adds a method to an existing class.
func (r *SymbolRegistry) RegisterMethod(owner types.Hash, fn *FunctionEntry) error {
	ce, ok := r.Class(owner)
	if !ok {
		return NewUnknownSymbol("class", r.TypeName(owner))
	}
	if err := r.RegisterFunction(fn); err != nil {
		return err
	}
	ce.Methods = append(ce.Methods, fn.Hash)
	return nil
}

// RegisterConstructor adds a constructor to an existing class's
// behaviors. Constructors do not join the method list.
func (r *SymbolRegistry) RegisterConstructor(owner types.Hash, fn *FunctionEntry) error {
	ce, ok := r.Class(owner)
	if !ok {
		return NewUnknownSymbol("class", r.TypeName(owner))
	}
	if err := r.RegisterFunction(fn); err != nil {
		return err
	}
	ce.Behaviors.AddConstructor(fn.Hash)
	return nil
}

// RegisterFactory adds a factory to an existing class's behaviors.
// Reference types construct through factories rather than constructors.
func (r *SymbolRegistry) RegisterFactory(owner types.Hash, fn *FunctionEntry) error {
	ce, ok := r.Class(owner)
	if !ok {
		return NewUnknownSymbol("class", r.TypeName(owner))
	}
	if err := r.RegisterFunction(fn); err != nil {
		return err
	}
	ce.Behaviors.AddFactory(fn.Hash)
	return nil
}

// RegisterOperator adds an operator method to an existing class, keyed
// into its behaviors. Conversion and cast operators are keyed by their
// return type so conversion lookup is a direct probe.
func (r *SymbolRegistry) RegisterOperator(owner types.Hash, fn *FunctionEntry) error {
	ce, ok := r.Class(owner)
	if !ok {
		return NewUnknownSymbol("class", r.TypeName(owner))
	}
	if err := r.RegisterFunction(fn); err != nil {
		return err
	}
	ce.Methods = append(ce.Methods, fn.Hash)
	ce.Behaviors.AddOperator(operatorKeyFor(fn), fn.Hash)
	return nil
}

func operatorKeyFor(fn *FunctionEntry) OperatorKey {
	switch fn.Name {
	case OpImplConv, OpConv, OpImplCast, OpCast:
		return OperatorKey{Name: fn.Name, Target: fn.Return.Hash}
	default:
		return OperatorKey{Name: fn.Name}
	}
}

// Function looks up a function entry by hash.
func (r *SymbolRegistry) Function(hash types.Hash) (*FunctionEntry, bool) {
	fn, ok := r.functions[hash]
	return fn, ok
}

// Overloads returns the free functions registered under name, in
// registration order.
func (r *SymbolRegistry) Overloads(name string) []*FunctionEntry {
	hashes := r.overloads[name]
	if len(hashes) == 0 {
		return nil
	}
	out := make([]*FunctionEntry, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, r.functions[h])
	}
	return out
}

// FunctionNames returns every name with at least one free function
// registered, sorted.
func (r *SymbolRegistry) FunctionNames() []string {
	out := make([]string, 0, len(r.overloads))
	for name := range r.overloads {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MethodsOf returns a class's own methods in declaration order.
func (r *SymbolRegistry) MethodsOf(class types.Hash) []*FunctionEntry {
	ce, ok := r.Class(class)
	if !ok {
		return nil
	}
	out := make([]*FunctionEntry, 0, len(ce.Methods))
	for _, h := range ce.Methods {
		if fn, ok := r.functions[h]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// AllMethods returns a class's methods including inherited ones.
// Derived classes come first, private members stay behind, and a base
// method whose signature is overridden further down is dropped.
func (r *SymbolRegistry) AllMethods(class types.Hash) []*FunctionEntry {
	var out []*FunctionEntry
	seen := make(map[types.Hash]bool)
	visited := make(map[types.Hash]bool)

	cur, depth := class, 0
	for cur != 0 && !visited[cur] {
		visited[cur] = true
		ce, ok := r.Class(cur)
		if !ok {
			break
		}
		for _, h := range ce.Methods {
			fn, ok := r.functions[h]
			if !ok {
				continue
			}
			if depth > 0 && !fn.Visibility.Inheritable() {
				continue
			}
			sig := fn.Signature().SignatureHash()
			if seen[sig] {
				continue
			}
			seen[sig] = true
			out = append(out, fn)
		}
		cur = ce.Base
		depth++
	}
	return out
}

// MethodsNamed returns the visible overload set for a method name,
// inherited methods included.
func (r *SymbolRegistry) MethodsNamed(class types.Hash, name string) []*FunctionEntry {
	var out []*FunctionEntry
	for _, fn := range r.AllMethods(class) {
		if fn.Name == name {
			out = append(out, fn)
		}
	}
	return out
}

// Constructors returns the constructor entries of a class.
func (r *SymbolRegistry) Constructors(class types.Hash) []*FunctionEntry {
	ce, ok := r.Class(class)
	if !ok {
		return nil
	}
	out := make([]*FunctionEntry, 0, len(ce.Behaviors.Constructors))
	for _, h := range ce.Behaviors.Constructors {
		if fn, ok := r.functions[h]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// BaseChain returns the ancestors of a class, nearest base first. The
// class itself is excluded. Walks stop on the first repeated link, so
// a malformed cyclic hierarchy cannot hang the caller.
func (r *SymbolRegistry) BaseChain(class types.Hash) []types.Hash {
	var chain []types.Hash
	visited := map[types.Hash]bool{class: true}

	ce, ok := r.Class(class)
	for ok && ce.Base != 0 && !visited[ce.Base] {
		visited[ce.Base] = true
		chain = append(chain, ce.Base)
		ce, ok = r.Class(ce.Base)
	}
	return chain
}

// IsDerivedFrom reports whether base is a proper ancestor of class.
func (r *SymbolRegistry) IsDerivedFrom(class, base types.Hash) bool {
	for _, h := range r.BaseChain(class) {
		if h == base {
			return true
		}
	}
	return false
}

// Implements reports whether class, or any of its ancestors, declares
// iface.
func (r *SymbolRegistry) Implements(class, iface types.Hash) bool {
	check := func(h types.Hash) bool {
		ce, ok := r.Class(h)
		if !ok {
			return false
		}
		for _, i := range ce.Interfaces {
			if i == iface {
				return true
			}
		}
		return false
	}
	if check(class) {
		return true
	}
	for _, h := range r.BaseChain(class) {
		if check(h) {
			return true
		}
	}
	return false
}

// RegisterValidator installs the instantiation validator for a generic
// type. A later registration replaces the earlier one.
func (r *SymbolRegistry) RegisterValidator(generic types.Hash, v InstanceValidator) {
	r.validators[generic] = v
}

// HasValidator reports whether a generic has a validator installed.
func (r *SymbolRegistry) HasValidator(generic types.Hash) bool {
	_, ok := r.validators[generic]
	return ok
}

// ValidateInstance runs the generic's validator against an argument
// list. Generics without a validator accept every argument list.
func (r *SymbolRegistry) ValidateInstance(generic types.Hash, args []types.DataType) error {
	v, ok := r.validators[generic]
	if !ok {
		return nil
	}
	return v(args)
}

// TypeName resolves a hash to its registered name, falling back to the
// hex form for unregistered hashes.
func (r *SymbolRegistry) TypeName(hash types.Hash) string {
	switch hash {
	case types.NullLiteral:
		return "null"
	case types.AnyParam:
		return "?"
	case types.Self:
		return "self"
	}
	if e, ok := r.typeEntries[hash]; ok {
		return e.TypeName()
	}
	return hash.String()
}

// RenderType formats a full type descriptor with resolved names, e.g.
// "const array<int>@ &in".
func (r *SymbolRegistry) RenderType(dt types.DataType) string {
	return dt.Render(r.TypeName(dt.Hash))
}

// RenderFunction formats a function as a declaration with resolved
// type names, for diagnostics and candidate listings.
func (r *SymbolRegistry) RenderFunction(fn *FunctionEntry) string {
	return fn.render(r.RenderType)
}
