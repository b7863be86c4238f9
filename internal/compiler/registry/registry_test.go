package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesper-lang/vesper/internal/compiler/types"
)

func newTestRegistry(t *testing.T) *SymbolRegistry {
	t.Helper()
	r := New()
	r.RegisterPrimitives()
	return r
}

func registerClass(t *testing.T, r *SymbolRegistry, name string, base types.Hash, ifaces ...types.Hash) *ClassEntry {
	t.Helper()
	ce := &ClassEntry{
		Name:       name,
		Hash:       types.HashName(name),
		Base:       base,
		Interfaces: ifaces,
	}
	require.NoError(t, r.RegisterType(ce))
	return ce
}

func TestRegisterPrimitives(t *testing.T) {
	r := newTestRegistry(t)

	e, ok := r.TypeByName("int")
	require.True(t, ok)
	assert.Equal(t, types.Int32, e.TypeHash())
	assert.Equal(t, KindPrimitive, e.Kind())

	// Idempotent: a second call must not error or duplicate.
	before := len(r.Types())
	r.RegisterPrimitives()
	assert.Equal(t, before, len(r.Types()))
}

func TestRegisterTypeDuplicate(t *testing.T) {
	r := newTestRegistry(t)
	registerClass(t, r, "Player", 0)

	err := r.RegisterType(&ClassEntry{Name: "Player", Hash: types.HashName("Player")})
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, ErrDuplicateSymbol, regErr.Code)
	assert.Equal(t, "Player", regErr.Symbol)
}

func TestRegisterMethodUnknownClass(t *testing.T) {
	r := newTestRegistry(t)

	fn := NewMethod(types.HashName("Ghost"), "update", nil, types.VoidType(), false)
	err := r.RegisterMethod(types.HashName("Ghost"), fn)
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, ErrUnknownSymbol, regErr.Code)
}

func TestOverloadsKeepRegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)

	intParam := []Param{{Name: "value", Type: types.NewSimple(types.Int32)}}
	floatParam := []Param{{Name: "value", Type: types.NewSimple(types.Float)}}

	require.NoError(t, r.RegisterFunction(NewFunction("print", intParam, types.VoidType())))
	require.NoError(t, r.RegisterFunction(NewFunction("print", floatParam, types.VoidType())))

	set := r.Overloads("print")
	require.Len(t, set, 2)
	assert.Equal(t, types.Int32, set[0].Params[0].Type.Hash)
	assert.Equal(t, types.Float, set[1].Params[0].Type.Hash)

	assert.Nil(t, r.Overloads("missing"))
}

func TestAllMethodsInheritanceAndOverrides(t *testing.T) {
	r := newTestRegistry(t)

	base := registerClass(t, r, "Entity", 0)
	derived := registerClass(t, r, "Player", base.Hash)

	update := func(owner types.Hash) *FunctionEntry {
		return NewMethod(owner, "update", []Param{{Name: "dt", Type: types.NewSimple(types.Float)}}, types.VoidType(), false)
	}

	baseUpdate := update(base.Hash)
	baseSecret := NewMethod(base.Hash, "secret", nil, types.VoidType(), false)
	baseSecret.Visibility = Private
	baseSpawn := NewMethod(base.Hash, "spawn", nil, types.VoidType(), false)

	require.NoError(t, r.RegisterMethod(base.Hash, baseUpdate))
	require.NoError(t, r.RegisterMethod(base.Hash, baseSecret))
	require.NoError(t, r.RegisterMethod(base.Hash, baseSpawn))

	derivedUpdate := update(derived.Hash)
	require.NoError(t, r.RegisterMethod(derived.Hash, derivedUpdate))

	all := r.AllMethods(derived.Hash)
	require.Len(t, all, 2)

	// The override wins; the base declaration with the same signature
	// is dropped, and private members never cross the boundary.
	assert.Same(t, derivedUpdate, all[0])
	assert.Same(t, baseSpawn, all[1])

	named := r.MethodsNamed(derived.Hash, "update")
	require.Len(t, named, 1)
	assert.Same(t, derivedUpdate, named[0])
}

func TestBaseChainAndHierarchyQueries(t *testing.T) {
	r := newTestRegistry(t)

	drawable := &InterfaceEntry{Name: "IDrawable", Hash: types.HashName("IDrawable")}
	require.NoError(t, r.RegisterType(drawable))

	entity := registerClass(t, r, "Entity", 0, drawable.Hash)
	actor := registerClass(t, r, "Actor", entity.Hash)
	player := registerClass(t, r, "Player", actor.Hash)

	chain := r.BaseChain(player.Hash)
	require.Equal(t, []types.Hash{actor.Hash, entity.Hash}, chain)

	assert.True(t, r.IsDerivedFrom(player.Hash, entity.Hash))
	assert.True(t, r.IsDerivedFrom(player.Hash, actor.Hash))
	assert.False(t, r.IsDerivedFrom(entity.Hash, player.Hash))
	assert.False(t, r.IsDerivedFrom(player.Hash, player.Hash))

	// Interface declared on a distant ancestor still counts.
	assert.True(t, r.Implements(player.Hash, drawable.Hash))
	assert.False(t, r.Implements(player.Hash, types.HashName("ISerializable")))
}

func TestBaseChainSurvivesCycles(t *testing.T) {
	r := newTestRegistry(t)

	a := registerClass(t, r, "A", types.HashName("B"))
	registerClass(t, r, "B", a.Hash)

	chain := r.BaseChain(a.Hash)
	assert.Equal(t, []types.Hash{types.HashName("B")}, chain)
}

func TestConstructorsAndOperators(t *testing.T) {
	r := newTestRegistry(t)
	vec := registerClass(t, r, "Vector2", 0)

	ctor := NewConstructor(vec.Hash, []Param{
		{Name: "x", Type: types.NewSimple(types.Float)},
		{Name: "y", Type: types.NewSimple(types.Float)},
	})
	require.NoError(t, r.RegisterConstructor(vec.Hash, ctor))

	got := r.Constructors(vec.Hash)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsConstructor())
	assert.Empty(t, r.MethodsOf(vec.Hash), "constructors stay out of the method list")

	toFloat := NewOperator(vec.Hash, OpImplConv, nil, types.NewSimple(types.Float), true)
	require.NoError(t, r.RegisterOperator(vec.Hash, toFloat))

	// Conversion operators are probed by target type.
	hits := vec.Behaviors.Operator(ConvKey(OpImplConv, types.Float))
	require.Len(t, hits, 1)
	assert.Equal(t, toFloat.Hash, hits[0])
	assert.Nil(t, vec.Behaviors.Operator(ConvKey(OpImplConv, types.Int32)))

	// Operator methods are still ordinary callable methods.
	require.Len(t, r.MethodsOf(vec.Hash), 1)
}

func TestValidators(t *testing.T) {
	r := newTestRegistry(t)
	array := types.HashName("array")

	assert.False(t, r.HasValidator(array))
	assert.NoError(t, r.ValidateInstance(array, nil), "no validator accepts everything")

	r.RegisterValidator(array, func(args []types.DataType) error {
		if len(args) == 1 && args[0].IsVoid() {
			return fmt.Errorf("array of void is not a thing")
		}
		return nil
	})
	assert.True(t, r.HasValidator(array))
	assert.NoError(t, r.ValidateInstance(array, []types.DataType{types.NewSimple(types.Int32)}))
	assert.Error(t, r.ValidateInstance(array, []types.DataType{types.VoidType()}))
}

func TestRendering(t *testing.T) {
	r := newTestRegistry(t)
	registerClass(t, r, "Player", 0)
	registerClass(t, r, "string", 0)

	assert.Equal(t, "const int &in", r.RenderType(types.NewConst(types.Int32).WithRef(types.RefIn)))
	assert.Equal(t, "Player@", r.RenderType(types.NewHandle(types.HashName("Player"), false)))
	assert.Equal(t, "null", r.RenderType(types.Null()))

	// Unregistered hashes fall back to hex so diagnostics never panic.
	ghost := types.NewSimple(types.HashName("Ghost"))
	assert.Contains(t, r.RenderType(ghost), "0x")

	fn := NewMethod(types.HashName("Player"), "damage", []Param{
		{Name: "amount", Type: types.NewSimple(types.Int32)},
		{Name: "source", Type: types.NewConst(types.HashName("Player")).AsHandle()},
	}, types.NewSimple(types.Bool), true)
	assert.Equal(t, "bool Player::damage(int, const Player@) const", r.RenderFunction(fn))

	ctor := NewConstructor(types.HashName("Player"), []Param{{Name: "health", Type: types.NewSimple(types.Int32)}})
	assert.Equal(t, "Player(int)", r.RenderFunction(ctor))

	variadic := NewFunction("printf", []Param{{Name: "fmt", Type: types.NewConst(types.String)}}, types.VoidType())
	variadic.Traits.IsVariadic = true
	assert.Equal(t, "void printf(const string, ...)", r.RenderFunction(variadic))
}
