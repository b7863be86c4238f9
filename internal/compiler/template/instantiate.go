// Package template turns generic declarations into concrete registered
// types and functions. Instantiation is memoized by instance identity,
// and an instance is registered before its members are built, so
// self-referential generics terminate instead of recursing.
package template

import (
	"strings"

	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Instantiator builds generic instances against a shared registry. It
// keeps separate memo caches for type and function instances; both map
// instance identity to "already built", with the registry itself as
// the second-level check for instances built elsewhere.
type Instantiator struct {
	reg       *registry.SymbolRegistry
	typeCache map[types.Hash]bool
	funcCache map[types.Hash]bool
}

// NewInstantiator creates an instantiator over reg.
func NewInstantiator(reg *registry.SymbolRegistry) *Instantiator {
	return &Instantiator{
		reg:       reg,
		typeCache: make(map[types.Hash]bool),
		funcCache: make(map[types.Hash]bool),
	}
}

// argTuple folds the full written form of each argument, so array<Player>
// and array<Player@> get distinct instance identities.
func argTuple(args []types.DataType) []types.Hash {
	out := make([]types.Hash, len(args))
	for i, a := range args {
		out[i] = types.Hash(a.SignatureHash())
	}
	return out
}

func (it *Instantiator) instanceName(generic string, args []types.DataType) string {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = it.reg.RenderType(a)
	}
	return generic + "<" + strings.Join(rendered, ", ") + ">"
}

// InstantiateType builds, or returns, the concrete type for
// generic<args...>. Repeat calls with the same arguments return the
// same identity and leave the registry untouched.
func (it *Instantiator) InstantiateType(generic types.Hash, args []types.DataType) (types.Hash, error) {
	instance := types.HashTemplateInstance(generic, argTuple(args))
	if it.typeCache[instance] {
		return instance, nil
	}
	if it.reg.HasType(instance) {
		it.typeCache[instance] = true
		return instance, nil
	}

	entry, ok := it.reg.Type(generic)
	if !ok {
		return 0, NewUnknownType(it.reg.TypeName(generic))
	}
	ce, isClass := entry.(*registry.ClassEntry)
	if !isClass || !ce.IsTemplate || len(ce.TemplateParams) == 0 {
		return 0, NewNotATemplate(entry.TypeName())
	}
	if err := it.reg.ValidateInstance(generic, args); err != nil {
		return 0, NewValidationFailed(ce.Name, err.Error())
	}
	if len(args) != len(ce.TemplateParams) {
		return 0, NewArityMismatch(ce.Name, len(ce.TemplateParams), len(args))
	}

	subs := newSubstitution(ce.TemplateParams, args, generic, instance)

	inst := &registry.ClassEntry{
		Name:          it.instanceName(ce.Name, args),
		Hash:          instance,
		Base:          subs.applyHash(ce.Base),
		Fields:        subs.applyFields(ce.Fields),
		ChildFuncdefs: append([]types.Hash(nil), ce.ChildFuncdefs...),
		Generic:       generic,
		TypeArgs:      append([]types.DataType(nil), args...),
	}
	if len(ce.Interfaces) > 0 {
		inst.Interfaces = make([]types.Hash, len(ce.Interfaces))
		for i, h := range ce.Interfaces {
			inst.Interfaces[i] = subs.applyHash(h)
		}
	}

	// Register the shell first. Member types referring back to the
	// generic resolve to the instance identity, which already exists.
	if err := it.reg.RegisterType(inst); err != nil {
		return 0, err
	}
	it.typeCache[instance] = true

	if err := it.instantiateMembers(ce, inst, subs); err != nil {
		return 0, err
	}
	return instance, nil
}

func (it *Instantiator) instantiateMembers(generic, inst *registry.ClassEntry, subs *substitution) error {
	for _, h := range generic.Behaviors.Constructors {
		if err := it.instantiateConstructor(h, inst, subs, false); err != nil {
			return err
		}
	}
	for _, h := range generic.Behaviors.Factories {
		if err := it.instantiateConstructor(h, inst, subs, true); err != nil {
			return err
		}
	}

	operators := make(map[types.Hash]bool)
	for _, key := range generic.Behaviors.OperatorKeys() {
		for _, h := range generic.Behaviors.Operator(key) {
			operators[h] = true
		}
	}
	for _, h := range generic.Methods {
		fn, ok := it.reg.Function(h)
		if !ok {
			continue
		}
		if err := it.instantiateMethod(fn, inst, subs, operators[h]); err != nil {
			return err
		}
	}
	return nil
}

func (it *Instantiator) instantiateConstructor(h types.Hash, inst *registry.ClassEntry, subs *substitution, factory bool) error {
	fn, ok := it.reg.Function(h)
	if !ok {
		return nil
	}
	ctor := registry.NewConstructor(inst.Hash, subs.applyParams(fn.Params))
	if factory {
		ctor.Return = types.NewHandle(inst.Hash, false)
	}
	ctor.Traits = fn.Traits
	ctor.Visibility = fn.Visibility
	ctor.Generic = fn.Hash
	ctor.IsNative = fn.IsNative
	ctor.SourceRef = fn.SourceRef
	if _, exists := it.reg.Function(ctor.Hash); exists {
		return nil
	}
	if factory {
		return it.reg.RegisterFactory(inst.Hash, ctor)
	}
	return it.reg.RegisterConstructor(inst.Hash, ctor)
}

func (it *Instantiator) instantiateMethod(fn *registry.FunctionEntry, inst *registry.ClassEntry, subs *substitution, isOperator bool) error {
	params := subs.applyParams(fn.Params)
	ret := subs.apply(fn.Return)

	var method *registry.FunctionEntry
	if isOperator {
		method = registry.NewOperator(inst.Hash, fn.Name, params, ret, fn.Traits.IsConst)
	} else {
		method = registry.NewMethod(inst.Hash, fn.Name, params, ret, fn.Traits.IsConst)
	}
	method.Traits = fn.Traits
	method.Visibility = fn.Visibility
	method.Generic = fn.Hash
	method.IsNative = fn.IsNative
	method.SourceRef = fn.SourceRef

	// Two declared methods can collapse onto one signature once the
	// placeholders are bound. The first registration wins.
	if _, exists := it.reg.Function(method.Hash); exists {
		return nil
	}
	if isOperator {
		return it.reg.RegisterOperator(inst.Hash, method)
	}
	return it.reg.RegisterMethod(inst.Hash, method)
}

// InstantiateFunction builds, or returns, the concrete function for
// generic<args...>. A native implementation is shared by every
// instance; a script implementation keeps the source reference its
// body is compiled from.
func (it *Instantiator) InstantiateFunction(generic types.Hash, args []types.DataType) (types.Hash, error) {
	instance := types.HashTemplateInstance(generic, argTuple(args))
	if it.funcCache[instance] {
		return instance, nil
	}
	if _, ok := it.reg.Function(instance); ok {
		it.funcCache[instance] = true
		return instance, nil
	}

	fn, ok := it.reg.Function(generic)
	if !ok {
		return 0, NewUnknownFunction(generic.String())
	}
	if !fn.IsTemplate() {
		return 0, NewNotATemplate(fn.Name)
	}
	if len(args) != len(fn.TemplateParams) {
		return 0, NewArityMismatch(fn.Name, len(fn.TemplateParams), len(args))
	}

	subs := newSubstitution(fn.TemplateParams, args, generic, instance)
	inst := &registry.FunctionEntry{
		Name:       it.instanceName(fn.Name, args),
		Hash:       instance,
		Owner:      fn.Owner,
		Params:     subs.applyParams(fn.Params),
		Return:     subs.apply(fn.Return),
		Traits:     fn.Traits,
		Visibility: fn.Visibility,
		Generic:    generic,
		IsNative:   fn.IsNative,
		SourceRef:  fn.SourceRef,
	}
	if err := it.reg.RegisterFunction(inst); err != nil {
		return 0, err
	}
	it.funcCache[instance] = true
	return instance, nil
}

// InstantiateChild builds the concrete form of a declaration nested in
// a generic, e.g. the Callback funcdef of array<T>. The parent instance
// must already exist for the same arguments; a child never instantiates
// its parent implicitly.
func (it *Instantiator) InstantiateChild(child types.Hash, parentArgs []types.DataType) (types.Hash, error) {
	instance := types.HashTemplateInstance(child, argTuple(parentArgs))
	if it.typeCache[instance] {
		return instance, nil
	}
	if it.reg.HasType(instance) {
		it.typeCache[instance] = true
		return instance, nil
	}

	fd, ok := it.reg.Funcdef(child)
	if !ok {
		return 0, NewUnknownType(it.reg.TypeName(child))
	}
	if fd.Owner == 0 {
		return 0, NewNotATemplate(fd.Name)
	}
	parent, ok := it.reg.Class(fd.Owner)
	if !ok || !parent.IsTemplate || len(parent.TemplateParams) == 0 {
		return 0, NewNotATemplate(it.reg.TypeName(fd.Owner))
	}
	if len(parentArgs) != len(parent.TemplateParams) {
		return 0, NewArityMismatch(parent.Name, len(parent.TemplateParams), len(parentArgs))
	}

	parentInstance := types.HashTemplateInstance(parent.Hash, argTuple(parentArgs))
	pce, ok := it.reg.Class(parentInstance)
	if !ok {
		return 0, NewParentNotInstantiated(fd.Name, parent.Name)
	}

	subs := newSubstitution(parent.TemplateParams, parentArgs, parent.Hash, parentInstance)
	params := make([]types.DataType, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = subs.apply(p)
	}

	inst := &registry.FuncdefEntry{
		Name:   pce.Name + "::" + baseName(fd.Name),
		Hash:   instance,
		Params: params,
		Return: subs.apply(fd.Return),
		Owner:  parentInstance,
	}
	if err := it.reg.RegisterType(inst); err != nil {
		return 0, err
	}
	it.typeCache[instance] = true
	return instance, nil
}

// baseName strips the declaring scope from a nested declaration's name.
func baseName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}
