package template

import (
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// substitution rewrites declared types of a generic definition into the
// concrete types of one instance. Placeholder hashes map to the supplied
// arguments; the generic's own hash and the self sentinel map to the
// instance identity.
type substitution struct {
	byHash   map[types.Hash]types.DataType
	generic  types.Hash
	instance types.Hash
}

func newSubstitution(params []registry.TemplateParam, args []types.DataType, generic, instance types.Hash) *substitution {
	byHash := make(map[types.Hash]types.DataType, len(params))
	for i, p := range params {
		byHash[p.Hash] = args[i]
	}
	return &substitution{byHash: byHash, generic: generic, instance: instance}
}

// apply rewrites one declared type. Modifier bits of the declaration and
// the argument are merged, except the reference mode, which always comes
// from the declaration. A const placeholder filled with a handle pushes
// the constness onto the pointee.
func (s *substitution) apply(decl types.DataType) types.DataType {
	if decl.Hash == s.generic || decl.Hash == types.Self {
		decl.Hash = s.instance
		return decl
	}
	arg, ok := s.byHash[decl.Hash]
	if !ok {
		return decl
	}
	merged := arg
	merged.IsConst = merged.IsConst || decl.IsConst
	merged.IsHandle = merged.IsHandle || decl.IsHandle
	merged.IsHandleToConst = merged.IsHandleToConst || decl.IsHandleToConst
	if merged.IsHandle && decl.IsConst && !decl.IsHandle {
		merged.IsHandleToConst = true
		merged.IsConst = arg.IsConst
	}
	merged.Ref = decl.Ref
	return merged
}

// applyHash rewrites a bare type identity, used for base classes and
// interface lists where no modifiers exist.
func (s *substitution) applyHash(h types.Hash) types.Hash {
	if h == s.generic || h == types.Self {
		return s.instance
	}
	if arg, ok := s.byHash[h]; ok {
		return arg.Hash
	}
	return h
}

// applyParams rewrites a parameter list, keeping names and default
// markers.
func (s *substitution) applyParams(params []registry.Param) []registry.Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]registry.Param, len(params))
	for i, p := range params {
		out[i] = registry.Param{Name: p.Name, Type: s.apply(p.Type), HasDefault: p.HasDefault}
	}
	return out
}

// applyFields rewrites a field list.
func (s *substitution) applyFields(fields []registry.Field) []registry.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]registry.Field, len(fields))
	for i, f := range fields {
		out[i] = registry.Field{Name: f.Name, Type: s.apply(f.Type), Visibility: f.Visibility}
	}
	return out
}
