package demo

import (
	"fmt"
	"strings"

	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// UnknownTypeError reports a spelling whose base name is not
// registered. It carries the known names so callers can suggest a
// close one.
type UnknownTypeError struct {
	Name  string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// ParseType parses a declaration-order type spelling against reg:
//
//	[const] name[@[ const]] [&in|&out|&inout]
//
// "null" and "?" resolve to their sentinel identities.
func ParseType(reg *registry.SymbolRegistry, spelling string) (types.DataType, error) {
	s := strings.Join(strings.Fields(spelling), " ")
	var dt types.DataType

	switch {
	case strings.HasSuffix(s, " &inout"):
		dt.Ref = types.RefInOut
		s = strings.TrimSuffix(s, " &inout")
	case strings.HasSuffix(s, " &out"):
		dt.Ref = types.RefOut
		s = strings.TrimSuffix(s, " &out")
	case strings.HasSuffix(s, " &in"):
		dt.Ref = types.RefIn
		s = strings.TrimSuffix(s, " &in")
	}

	if strings.HasPrefix(s, "const ") {
		dt.IsConst = true
		s = strings.TrimPrefix(s, "const ")
	}

	switch {
	case strings.HasSuffix(s, "@ const"):
		dt.IsHandle = true
		dt.IsHandleToConst = true
		s = strings.TrimSuffix(s, "@ const")
	case strings.HasSuffix(s, "@"):
		dt.IsHandle = true
		s = strings.TrimSuffix(s, "@")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return types.DataType{}, fmt.Errorf("empty type spelling")
	}

	switch s {
	case "null":
		dt.Hash = types.NullLiteral
		return dt, nil
	case "?":
		dt.Hash = types.AnyParam
		return dt, nil
	}

	entry, ok := reg.TypeByName(s)
	if !ok {
		return types.DataType{}, &UnknownTypeError{Name: s, Known: TypeNames(reg)}
	}
	dt.Hash = entry.TypeHash()
	return dt, nil
}

// ParseTypeList parses a comma-separated list of type spellings. An
// empty list yields nil.
func ParseTypeList(reg *registry.SymbolRegistry, list string) ([]types.DataType, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	out := make([]types.DataType, 0, len(parts))
	for _, part := range parts {
		dt, err := ParseType(reg, part)
		if err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, nil
}
