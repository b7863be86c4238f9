package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

func value(h types.Hash) types.DataType  { return types.NewSimple(h) }
func handle(h types.Hash) types.DataType { return types.NewHandle(h, false) }

func newTestEngine(t *testing.T) (*Engine, *registry.SymbolRegistry) {
	t.Helper()
	reg := registry.New()
	reg.RegisterPrimitives()
	return NewEngine(reg), reg
}

func mustClass(t *testing.T, reg *registry.SymbolRegistry, name string, base types.Hash, ifaces ...types.Hash) *registry.ClassEntry {
	t.Helper()
	ce := &registry.ClassEntry{
		Name:       name,
		Hash:       types.HashName(name),
		Base:       base,
		Interfaces: ifaces,
	}
	require.NoError(t, reg.RegisterType(ce))
	return ce
}

func TestIdentityAndConstAddition(t *testing.T) {
	e, _ := newTestEngine(t)

	conv, ok := e.Find(value(types.Int32), value(types.Int32), Implicit())
	require.True(t, ok)
	assert.Equal(t, Identity, conv.Kind)
	assert.Equal(t, CostExact, conv.Cost)

	// Reference modifiers are pass-by semantics, not type identity.
	conv, ok = e.Find(value(types.Int32), value(types.Int32).WithRef(types.RefIn), Implicit())
	require.True(t, ok)
	assert.Equal(t, CostExact, conv.Cost)

	conv, ok = e.Find(value(types.Int32), types.NewConst(types.Int32), Implicit())
	require.True(t, ok)
	assert.Equal(t, Identity, conv.Kind)
	assert.Equal(t, CostConstAddition, conv.Cost)
}

func TestPrimitiveLadder(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name string
		src  types.Hash
		dst  types.Hash
		cost int
	}{
		{"int8 to int16 widens", types.Int8, types.Int16, CostWidening},
		{"int16 to int64 widens", types.Int16, types.Int64, CostWidening},
		{"uint8 to uint32 widens", types.UInt8, types.UInt32, CostWidening},
		{"uint8 to int16 widens across sign", types.UInt8, types.Int16, CostWidening},
		{"int32 to int16 narrows", types.Int32, types.Int16, CostNarrowing},
		{"uint64 to uint8 narrows", types.UInt64, types.UInt8, CostNarrowing},
		{"int32 to uint32 same width", types.Int32, types.UInt32, CostSignedToUnsigned},
		{"uint32 to int32 same width", types.UInt32, types.Int32, CostUnsignedToSigned},
		{"int16 to uint64 loses sign", types.Int16, types.UInt64, CostNarrowing},
		{"int32 to float", types.Int32, types.Float, CostIntToFloat},
		{"uint64 to double", types.UInt64, types.Double, CostIntToFloat},
		{"float to int32", types.Float, types.Int32, CostFloatToInt},
		{"double to uint8", types.Double, types.UInt8, CostFloatToInt},
		{"float to double widens", types.Float, types.Double, CostWidening},
		{"double to float narrows", types.Double, types.Float, CostNarrowing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, ok := e.Find(value(tt.src), value(tt.dst), Implicit())
			require.True(t, ok)
			assert.Equal(t, Primitive, conv.Kind)
			assert.Equal(t, tt.cost, conv.Cost)
			assert.Equal(t, tt.dst, conv.Target)
		})
	}
}

func TestBoolIsNotNumeric(t *testing.T) {
	e, _ := newTestEngine(t)

	_, ok := e.Find(value(types.Int32), value(types.Bool), Implicit())
	assert.False(t, ok)
	_, ok = e.Find(value(types.Bool), value(types.Int32), Implicit())
	assert.False(t, ok)
}

func TestEnumConversions(t *testing.T) {
	e, reg := newTestEngine(t)
	color := &registry.EnumEntry{
		Name: "Color",
		Hash: types.HashName("Color"),
		Values: []registry.EnumValue{
			{Name: "Red", Value: 0},
			{Name: "Green", Value: 1},
		},
	}
	require.NoError(t, reg.RegisterType(color))

	conv, ok := e.Find(value(color.Hash), value(types.Int32), Implicit())
	require.True(t, ok)
	assert.Equal(t, EnumToInt, conv.Kind)
	assert.Equal(t, CostEnumSameSize, conv.Cost)

	conv, ok = e.Find(value(color.Hash), value(types.Int64), Implicit())
	require.True(t, ok)
	assert.Equal(t, CostEnumDiffSize, conv.Cost)

	conv, ok = e.Find(value(types.Int32), value(color.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, IntToEnum, conv.Kind)
	assert.Equal(t, CostEnumSameSize, conv.Cost)
	assert.Equal(t, color.Hash, conv.Target)

	conv, ok = e.Find(value(types.UInt8), value(color.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, CostEnumDiffSize, conv.Cost)

	// Distinct enums do not bridge through their shared backing type.
	mood := &registry.EnumEntry{Name: "Mood", Hash: types.HashName("Mood")}
	require.NoError(t, reg.RegisterType(mood))
	_, ok = e.Find(value(color.Hash), value(mood.Hash), Implicit())
	assert.False(t, ok)
}

func TestHandleConversions(t *testing.T) {
	e, reg := newTestEngine(t)
	player := mustClass(t, reg, "Player", 0)

	conv, ok := e.Find(types.Null(), handle(player.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, NullToHandle, conv.Kind)
	assert.Equal(t, CostConstAddition, conv.Cost)

	conv, ok = e.Find(handle(player.Hash), types.NewHandle(player.Hash, true), Implicit())
	require.True(t, ok)
	assert.Equal(t, HandleToConst, conv.Kind)
	assert.Equal(t, CostConstAddition, conv.Cost)

	// Dropping pointee constness never converts.
	_, ok = e.Find(types.NewHandle(player.Hash, true), handle(player.Hash), Implicit())
	assert.False(t, ok)

	// Taking a handle to a value is cheap and implicit.
	conv, ok = e.Find(value(player.Hash), handle(player.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, ValueToHandle, conv.Kind)
	assert.Equal(t, CostConstAddition, conv.Cost)
	assert.True(t, conv.IsImplicit())

	// A const value never leaks through a mutable handle.
	_, ok = e.Find(types.NewConst(player.Hash), handle(player.Hash), Implicit())
	assert.False(t, ok)
	conv, ok = e.Find(types.NewConst(player.Hash), types.NewHandle(player.Hash, true), Implicit())
	require.True(t, ok)
	assert.Equal(t, ValueToHandle, conv.Kind)
}

func TestHierarchyConversions(t *testing.T) {
	e, reg := newTestEngine(t)

	drawable := &registry.InterfaceEntry{Name: "IDrawable", Hash: types.HashName("IDrawable")}
	require.NoError(t, reg.RegisterType(drawable))

	entity := mustClass(t, reg, "Entity", 0, drawable.Hash)
	actor := mustClass(t, reg, "Actor", entity.Hash)
	player := mustClass(t, reg, "Player", actor.Hash)

	// Value upcast along the chain, including distant ancestors.
	conv, ok := e.Find(value(player.Hash), value(entity.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, DerivedToBase, conv.Kind)
	assert.Equal(t, CostReferenceCast, conv.Cost)
	assert.Equal(t, entity.Hash, conv.Target)

	// Handle upcasts are reference casts.
	conv, ok = e.Find(handle(player.Hash), handle(actor.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, ReferenceCast, conv.Kind)

	// Interface declared on an ancestor is still reachable.
	conv, ok = e.Find(handle(player.Hash), handle(drawable.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, ReferenceCast, conv.Kind)
	conv, ok = e.Find(value(player.Hash), value(drawable.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, ClassToInterface, conv.Kind)

	// Downcasts and unrelated classes have no implicit path.
	_, ok = e.Find(value(entity.Hash), value(player.Hash), Implicit())
	assert.False(t, ok)
	other := mustClass(t, reg, "Camera", 0)
	_, ok = e.Find(value(player.Hash), value(other.Hash), Implicit())
	assert.False(t, ok)

	// A class target that merely shares method shapes is not an
	// interface; the interface arm demands a real interface entry.
	serializable := mustClass(t, reg, "Serializable", 0)
	_, ok = e.Find(value(player.Hash), value(serializable.Hash), Implicit())
	assert.False(t, ok)
}

func registerImplConv(t *testing.T, reg *registry.SymbolRegistry, owner types.Hash, target types.DataType, isConst bool) *registry.FunctionEntry {
	t.Helper()
	fn := registry.NewOperator(owner, registry.OpImplConv, nil, target, isConst)
	require.NoError(t, reg.RegisterOperator(owner, fn))
	return fn
}

func TestUserDefinedConversionOperators(t *testing.T) {
	e, reg := newTestEngine(t)
	temp := mustClass(t, reg, "Temperature", 0)
	celsius := mustClass(t, reg, "Celsius", 0)

	toFloat := registerImplConv(t, reg, temp.Hash, value(types.Float), true)
	toCelsius := registerImplConv(t, reg, temp.Hash, value(celsius.Hash), true)

	conv, ok := e.Find(value(temp.Hash), value(types.Float), Implicit())
	require.True(t, ok)
	assert.Equal(t, ImplicitConv, conv.Kind)
	assert.Equal(t, CostObjectToPrimitive, conv.Cost)
	assert.Equal(t, toFloat.Hash, conv.Method)

	conv, ok = e.Find(value(temp.Hash), value(celsius.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, CostToObject, conv.Cost, "landing on an object costs more than landing on a primitive")
	assert.Equal(t, toCelsius.Hash, conv.Method)

	// No operator for the target type means no conversion.
	_, ok = e.Find(value(temp.Hash), value(types.Int32), Implicit())
	assert.False(t, ok)
}

func TestConstSourceRequiresConstOperator(t *testing.T) {
	e, reg := newTestEngine(t)
	box := mustClass(t, reg, "Box", 0)
	registerImplConv(t, reg, box.Hash, value(types.Float), false)

	_, ok := e.Find(types.NewConst(box.Hash), value(types.Float), Implicit())
	assert.False(t, ok, "mutable opImplConv is not callable on a const source")

	_, ok = e.Find(value(box.Hash), value(types.Float), Implicit())
	assert.True(t, ok)

	// A handle to const is as good as const.
	crate := mustClass(t, reg, "Crate", 0)
	registerImplConv(t, reg, crate.Hash, value(types.Float), true)
	_, ok = e.Find(types.NewHandle(crate.Hash, true), value(types.Float), Implicit())
	assert.True(t, ok)
}

func TestImplicitCastOperator(t *testing.T) {
	e, reg := newTestEngine(t)
	proxy := mustClass(t, reg, "Proxy", 0)
	real := mustClass(t, reg, "Real", 0)

	cast := registry.NewOperator(proxy.Hash, registry.OpImplCast, nil, handle(real.Hash), true)
	require.NoError(t, reg.RegisterOperator(proxy.Hash, cast))

	conv, ok := e.Find(handle(proxy.Hash), handle(real.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, ImplicitCast, conv.Kind)
	assert.Equal(t, CostReferenceCast, conv.Cost)
	assert.Equal(t, cast.Hash, conv.Method)
}

func TestConstructorConversion(t *testing.T) {
	e, reg := newTestEngine(t)
	str := mustClass(t, reg, "string", 0)
	regex := mustClass(t, reg, "Regex", 0)

	ctor := registry.NewConstructor(regex.Hash, []registry.Param{
		{Name: "pattern", Type: types.NewConst(str.Hash)},
	})
	require.NoError(t, reg.RegisterConstructor(regex.Hash, ctor))

	conv, ok := e.Find(value(str.Hash), value(regex.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, Construct, conv.Kind)
	assert.Equal(t, CostToObject, conv.Cost)
	assert.Equal(t, ctor.Hash, conv.Method)

	// The const parameter accepts a const source too.
	conv, ok = e.Find(types.NewConst(str.Hash), value(regex.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, Construct, conv.Kind)
}

func TestConstructorConversionFromPrimitive(t *testing.T) {
	e, reg := newTestEngine(t)
	seconds := mustClass(t, reg, "Seconds", 0)

	ctor := registry.NewConstructor(seconds.Hash, []registry.Param{
		{Name: "value", Type: value(types.Double)},
	})
	require.NoError(t, reg.RegisterConstructor(seconds.Hash, ctor))

	conv, ok := e.Find(value(types.Double), value(seconds.Hash), Implicit())
	require.True(t, ok)
	assert.Equal(t, Construct, conv.Kind)
	assert.Equal(t, ctor.Hash, conv.Method)
}

func TestExplicitConstructorDoesNotConvert(t *testing.T) {
	e, reg := newTestEngine(t)
	str := mustClass(t, reg, "string", 0)
	path := mustClass(t, reg, "Path", 0)

	ctor := registry.NewConstructor(path.Hash, []registry.Param{
		{Name: "raw", Type: types.NewConst(str.Hash)},
	})
	ctor.Traits.IsExplicit = true
	require.NoError(t, reg.RegisterConstructor(path.Hash, ctor))

	_, ok := e.Find(value(str.Hash), value(path.Hash), Implicit())
	assert.False(t, ok)
	_, ok = e.Find(value(str.Hash), value(path.Hash), Explicit())
	assert.False(t, ok, "explicit constructors are direct calls, not conversions")
}

func TestExplicitOperatorsNeedCastContext(t *testing.T) {
	e, reg := newTestEngine(t)
	handleCls := mustClass(t, reg, "FileHandle", 0)

	opConv := registry.NewOperator(handleCls.Hash, registry.OpConv, nil, value(types.Int32), true)
	require.NoError(t, reg.RegisterOperator(handleCls.Hash, opConv))

	_, ok := e.Find(value(handleCls.Hash), value(types.Int32), Implicit())
	assert.False(t, ok)

	conv, ok := e.Find(value(handleCls.Hash), value(types.Int32), Explicit())
	require.True(t, ok)
	assert.Equal(t, ExplicitConv, conv.Kind)
	assert.Equal(t, CostExplicitOnly, conv.Cost)
	assert.False(t, conv.IsImplicit())

	target := mustClass(t, reg, "Socket", 0)
	opCast := registry.NewOperator(handleCls.Hash, registry.OpCast, nil, handle(target.Hash), false)
	require.NoError(t, reg.RegisterOperator(handleCls.Hash, opCast))

	conv, ok = e.Find(handle(handleCls.Hash), handle(target.Hash), Explicit())
	require.True(t, ok)
	assert.Equal(t, ExplicitCast, conv.Kind)
}

func TestBoolConditionSkipsHandleImplConv(t *testing.T) {
	e, reg := newTestEngine(t)
	res := mustClass(t, reg, "Resource", 0)
	registerImplConv(t, reg, res.Hash, value(types.Bool), true)

	// In an ordinary expression the conversion applies.
	conv, ok := e.Find(handle(res.Hash), value(types.Bool), Implicit())
	require.True(t, ok)
	assert.Equal(t, ImplicitConv, conv.Kind)

	// In a condition the handle itself is the truth value.
	_, ok = e.Find(handle(res.Hash), value(types.Bool), Options{BoolCondition: true})
	assert.False(t, ok)

	// Values are unaffected by the condition context.
	conv, ok = e.Find(value(res.Hash), value(types.Bool), Options{BoolCondition: true})
	require.True(t, ok)
	assert.Equal(t, CostObjectToPrimitive, conv.Cost)
}

func TestAnyParamAcceptsEverything(t *testing.T) {
	e, reg := newTestEngine(t)
	player := mustClass(t, reg, "Player", 0)

	for _, src := range []types.DataType{
		value(types.Int32),
		value(types.Double),
		handle(player.Hash),
		types.Null(),
	} {
		conv, ok := e.Find(src, value(types.AnyParam), Implicit())
		require.True(t, ok, "any-type parameter must accept %v", src)
		assert.Equal(t, VarArg, conv.Kind)
		assert.Equal(t, CostVarArg, conv.Cost)
	}
}

func TestNoConversionBetweenUnrelatedTypes(t *testing.T) {
	e, reg := newTestEngine(t)
	a := mustClass(t, reg, "Alpha", 0)
	b := mustClass(t, reg, "Beta", 0)

	_, ok := e.Find(value(a.Hash), value(b.Hash), Explicit())
	assert.False(t, ok)
	_, ok = e.Find(value(types.Int32), value(a.Hash), Explicit())
	assert.False(t, ok)
	_, ok = e.Find(handle(b.Hash), value(types.Int32), Explicit())
	assert.False(t, ok)
}
