package vtable

import (
	"github.com/vesper-lang/vesper/internal/compiler/registry"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Builder derives dispatch tables for the classes of a registry.
type Builder struct {
	reg *registry.SymbolRegistry
}

// NewBuilder creates a builder over reg.
func NewBuilder(reg *registry.SymbolRegistry) *Builder {
	return &Builder{reg: reg}
}

// BuildAll builds tables for every concrete class, bases before derived
// classes. Generic declarations are skipped; their instances are
// concrete classes and get tables like any other.
func (b *Builder) BuildAll() (map[types.Hash]*ClassTables, error) {
	out := make(map[types.Hash]*ClassTables)
	for _, ce := range b.reg.Classes() {
		if ce.IsTemplate {
			continue
		}
		if _, err := b.buildClass(ce, out, make(map[types.Hash]bool)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *Builder) buildClass(ce *registry.ClassEntry, out map[types.Hash]*ClassTables, building map[types.Hash]bool) (*ClassTables, error) {
	if t, ok := out[ce.Hash]; ok {
		return t, nil
	}
	if building[ce.Hash] {
		return nil, NewCircularInheritance(ce.Name)
	}
	building[ce.Hash] = true

	vt := NewVTable()
	if ce.Base != 0 {
		base, ok := b.reg.Class(ce.Base)
		if !ok {
			return nil, NewUnknownBase(ce.Name, b.reg.TypeName(ce.Base))
		}
		baseTables, err := b.buildClass(base, out, building)
		if err != nil {
			return nil, err
		}
		// Seed the inherited slots first so every base index survives
		// into the derived table.
		for _, s := range baseTables.VTable.Slots() {
			vt.AddMethod(s.Name, s.Signature, s.Method)
		}
	}
	for _, fn := range b.reg.MethodsOf(ce.Hash) {
		vt.AddMethod(fn.Name, fn.Signature().SignatureHash(), fn.Hash)
	}

	tables := &ClassTables{Class: ce.Hash, VTable: vt}
	for _, iface := range b.implementedInterfaces(ce) {
		it, err := b.buildITable(ce, iface, vt)
		if err != nil {
			return nil, err
		}
		tables.ITables = append(tables.ITables, it)
	}
	out[ce.Hash] = tables
	return tables, nil
}

// implementedInterfaces returns the class's declared interfaces plus
// those of its ancestors, nearest declaration first, deduplicated.
func (b *Builder) implementedInterfaces(ce *registry.ClassEntry) []types.Hash {
	var ifaces []types.Hash
	seen := make(map[types.Hash]bool)
	add := func(hs []types.Hash) {
		for _, h := range hs {
			if !seen[h] {
				seen[h] = true
				ifaces = append(ifaces, h)
			}
		}
	}
	add(ce.Interfaces)
	for _, base := range b.reg.BaseChain(ce.Hash) {
		if bce, ok := b.reg.Class(base); ok {
			add(bce.Interfaces)
		}
	}
	return ifaces
}

func (b *Builder) buildITable(ce *registry.ClassEntry, iface types.Hash, vt *VTable) (ITable, error) {
	entry, ok := b.reg.Interface(iface)
	if !ok {
		return ITable{}, NewUnknownInterface(ce.Name, b.reg.TypeName(iface))
	}
	it := ITable{Interface: iface, Slots: make([]int, len(entry.Methods))}
	for i, sig := range entry.Methods {
		slot, ok := vt.SlotOf(sig.SignatureHash())
		if !ok {
			slot = -1
		}
		it.Slots[i] = slot
	}
	return it, nil
}
