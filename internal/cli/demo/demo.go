// Package demo assembles the small fixed world the inspection commands
// resolve type spellings against, and parses spellings into full type
// descriptors.
package demo

import (
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// BuildRegistry assembles the demo world: the primitives, a string
// class, two enums, a class hierarchy behind an interface, two classes
// carrying user-defined conversions, and a handful of overloaded free
// functions.
//
//	enum Color { red, green, blue }
//	enum Status { idle, busy }
//	interface IDrawable { void draw(); }
//	class Entity : IDrawable { void draw(); }
//	class Player : Entity {}
//	class Seconds { Seconds(double value); }
//	class Temperature { double opImplConv() const; int opConv() const; }
//
// plus a family of free functions for overload resolution:
//
//	void print(const string &in);
//	void print(int);
//	void print(double);
//	double lerp(int a, double b);
//	double lerp(double a, int b);
//	int clamp(int value, int lo = 0, int hi = 100);
//	void log(const string &in format, ?...);
func BuildRegistry() *registry.SymbolRegistry {
	reg := registry.New()
	reg.RegisterPrimitives()

	must(reg.RegisterType(&registry.ClassEntry{Name: "string", Hash: types.String}))

	must(reg.RegisterType(&registry.EnumEntry{
		Name: "Color",
		Hash: types.HashName("Color"),
		Values: []registry.EnumValue{
			{Name: "red", Value: 0},
			{Name: "green", Value: 1},
			{Name: "blue", Value: 2},
		},
	}))
	must(reg.RegisterType(&registry.EnumEntry{
		Name: "Status",
		Hash: types.HashName("Status"),
		Values: []registry.EnumValue{
			{Name: "idle", Value: 0},
			{Name: "busy", Value: 1},
		},
	}))

	drawable := types.HashName("IDrawable")
	must(reg.RegisterType(&registry.InterfaceEntry{
		Name: "IDrawable",
		Hash: drawable,
		Methods: []types.MethodSignature{
			types.NewMethodSignature("draw", nil, types.VoidType()),
		},
	}))

	entity := types.HashName("Entity")
	must(reg.RegisterType(&registry.ClassEntry{Name: "Entity", Hash: entity, Interfaces: []types.Hash{drawable}}))
	must(reg.RegisterMethod(entity, registry.NewMethod(entity, "draw", nil, types.VoidType(), false)))

	player := types.HashName("Player")
	must(reg.RegisterType(&registry.ClassEntry{Name: "Player", Hash: player, Base: entity}))

	seconds := types.HashName("Seconds")
	must(reg.RegisterType(&registry.ClassEntry{Name: "Seconds", Hash: seconds}))
	must(reg.RegisterConstructor(seconds, registry.NewConstructor(seconds,
		[]registry.Param{{Name: "value", Type: types.NewSimple(types.Double)}})))

	temperature := types.HashName("Temperature")
	must(reg.RegisterType(&registry.ClassEntry{Name: "Temperature", Hash: temperature}))
	must(reg.RegisterOperator(temperature, registry.NewOperator(temperature, registry.OpImplConv,
		nil, types.NewSimple(types.Double), true)))
	must(reg.RegisterOperator(temperature, registry.NewOperator(temperature, registry.OpConv,
		nil, types.NewSimple(types.Int32), true)))

	intT := types.NewSimple(types.Int32)
	doubleT := types.NewSimple(types.Double)
	stringIn := types.NewConst(types.String).WithRef(types.RefIn)

	must(reg.RegisterFunction(registry.NewFunction("print",
		[]registry.Param{{Name: "text", Type: stringIn}}, types.VoidType())))
	must(reg.RegisterFunction(registry.NewFunction("print",
		[]registry.Param{{Name: "value", Type: intT}}, types.VoidType())))
	must(reg.RegisterFunction(registry.NewFunction("print",
		[]registry.Param{{Name: "value", Type: doubleT}}, types.VoidType())))

	must(reg.RegisterFunction(registry.NewFunction("lerp",
		[]registry.Param{{Name: "a", Type: intT}, {Name: "b", Type: doubleT}}, doubleT)))
	must(reg.RegisterFunction(registry.NewFunction("lerp",
		[]registry.Param{{Name: "a", Type: doubleT}, {Name: "b", Type: intT}}, doubleT)))

	must(reg.RegisterFunction(registry.NewFunction("clamp", []registry.Param{
		{Name: "value", Type: intT},
		{Name: "lo", Type: intT, HasDefault: true},
		{Name: "hi", Type: intT, HasDefault: true},
	}, intT)))

	logFn := registry.NewFunction("log", []registry.Param{
		{Name: "format", Type: stringIn},
		{Name: "args", Type: types.NewSimple(types.AnyParam)},
	}, types.VoidType())
	logFn.Traits.IsVariadic = true
	must(reg.RegisterFunction(logFn))

	return reg
}

// The demo world is static; a registration failure is a programming
// error, not an input condition.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// TypeNames returns every registered type name in registration order.
func TypeNames(reg *registry.SymbolRegistry) []string {
	entries := reg.Types()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.TypeName())
	}
	return out
}
