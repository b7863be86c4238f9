// Package overload ranks call candidates by conversion cost and picks
// the unique cheapest one. Candidates are filtered by argument count
// first, each remaining candidate is priced by summing per-argument
// conversion costs, and the lowest total wins. A tie at the minimum is
// a real ambiguity and is reported, never guessed away.
package overload

import (
	"fmt"
	"strings"

	"github.com/vesper-lang/vesper/internal/compiler/conversion"
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Match is a selected overload. ArgConversions holds one entry per
// parameter slot: the conversion applied to the supplied argument, or
// nil where the declared default fills the slot. Variadic calls append
// one entry per extra argument.
type Match struct {
	Function       *registry.FunctionEntry
	ArgConversions []*conversion.Conversion
	TotalCost      int
}

// Resolver picks overloads against a symbol registry, using its
// conversion engine to price arguments.
type Resolver struct {
	reg  *registry.SymbolRegistry
	conv *conversion.Engine
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *registry.SymbolRegistry, conv *conversion.Engine) *Resolver {
	return &Resolver{reg: reg, conv: conv}
}

// Resolve picks the best candidate for a free function or constructor
// call. name is only used in diagnostics.
func (r *Resolver) Resolve(name string, candidates []*registry.FunctionEntry, args []types.DataType) (*Match, error) {
	if len(candidates) == 0 {
		return nil, NewInternal(fmt.Sprintf("overload resolution for %s invoked with no candidates", name))
	}
	return r.pick(name, candidates, args)
}

// ResolveMethod picks the best candidate for a method call. A const
// receiver keeps only const-qualified candidates and losing all of
// them is a const violation, not a missing overload. A mutable
// receiver prefers non-const candidates but falls back to the full set
// when the method only exists in const form.
func (r *Resolver) ResolveMethod(name string, receiver types.DataType, candidates []*registry.FunctionEntry, args []types.DataType) (*Match, error) {
	if len(candidates) == 0 {
		return nil, NewInternal(fmt.Sprintf("overload resolution for %s invoked with no candidates", name))
	}
	if receiver.EffectivelyConst() {
		callable := filterByConst(candidates, true)
		if len(callable) == 0 {
			return nil, NewConstViolation(
				r.renderCall(name, args),
				r.reg.RenderType(receiver.WithoutRef()),
				r.renderAll(candidates),
			)
		}
		candidates = callable
	} else if preferred := filterByConst(candidates, false); len(preferred) > 0 {
		candidates = preferred
	}
	return r.pick(name, candidates, args)
}

func filterByConst(candidates []*registry.FunctionEntry, wantConst bool) []*registry.FunctionEntry {
	var out []*registry.FunctionEntry
	for _, fn := range candidates {
		if fn.Traits.IsConst == wantConst {
			out = append(out, fn)
		}
	}
	return out
}

func (r *Resolver) pick(name string, candidates []*registry.FunctionEntry, args []types.DataType) (*Match, error) {
	var matches []*Match
	for _, fn := range candidates {
		if m, ok := r.tryMatch(fn, args); ok {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return nil, NewNoMatch(r.renderCall(name, args), r.renderAll(candidates))
	}

	best := matches[0].TotalCost
	for _, m := range matches[1:] {
		if m.TotalCost < best {
			best = m.TotalCost
		}
	}
	var winners []*Match
	for _, m := range matches {
		if m.TotalCost == best {
			winners = append(winners, m)
		}
	}
	if len(winners) == 1 {
		return winners[0], nil
	}

	tied := make([]*registry.FunctionEntry, len(winners))
	for i, m := range winners {
		tied[i] = m.Function
	}
	return nil, NewAmbiguous(r.renderCall(name, args), r.renderAll(tied))
}

// tryMatch prices one candidate against the argument list. It fails
// fast on argument count, then requires an implicit conversion for
// every supplied argument. Parameters left to defaults cost nothing.
// Extra arguments past a variadic candidate's declared list are priced
// against the last declared parameter's type, except that the
// accept-anything marker takes them for free.
func (r *Resolver) tryMatch(fn *registry.FunctionEntry, args []types.DataType) (*Match, bool) {
	declared := fn.DeclaredParams()
	required := fn.RequiredParams()
	if fn.Traits.IsVariadic && required == declared && required > 0 {
		// The trailing variadic slot itself may be left empty.
		required--
	}
	if len(args) < required {
		return nil, false
	}
	if len(args) > declared && !fn.Traits.IsVariadic {
		return nil, false
	}

	slots := declared
	if len(args) > slots {
		slots = len(args)
	}
	convs := make([]*conversion.Conversion, slots)
	total := 0
	for i, arg := range args {
		if i >= declared {
			repeating := types.NewSimple(types.AnyParam)
			if declared > 0 {
				repeating = fn.Params[declared-1].Type
			}
			if repeating.Hash == types.AnyParam {
				convs[i] = &conversion.Conversion{Kind: conversion.VarArg, Cost: conversion.CostExact}
				continue
			}
			c, ok := r.conv.Find(arg, repeating, conversion.Implicit())
			if !ok {
				return nil, false
			}
			convs[i] = &c
			total += c.Cost
			continue
		}
		c, ok := r.conv.Find(arg, fn.Params[i].Type, conversion.Implicit())
		if !ok {
			return nil, false
		}
		convs[i] = &c
		total += c.Cost
	}
	return &Match{Function: fn, ArgConversions: convs, TotalCost: total}, true
}

func (r *Resolver) renderCall(name string, args []types.DataType) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.reg.RenderType(a))
	}
	b.WriteByte(')')
	return b.String()
}

func (r *Resolver) renderAll(fns []*registry.FunctionEntry) []string {
	out := make([]string, len(fns))
	for i, fn := range fns {
		out[i] = r.reg.RenderFunction(fn)
	}
	return out
}
