// Package vtable derives virtual dispatch tables. Every class gets a
// vtable whose slot indices are stable across inheritance: a derived
// override lands in the slot its base method claimed, so code compiled
// against the base dispatches correctly through a derived instance.
package vtable

import (
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Slot is one dispatch entry: the method name, its owner-independent
// dispatch signature, and the function currently bound to it.
type Slot struct {
	Name      string
	Signature types.Hash
	Method    types.Hash
}

// VTable is the virtual dispatch table of one class. Indices assigned
// once never move; rebinding a known signature replaces the slot's
// method in place.
type VTable struct {
	slots       []Slot
	bySignature map[types.Hash]int
	byName      map[string][]int
}

// NewVTable creates an empty table.
func NewVTable() *VTable {
	return &VTable{
		bySignature: make(map[types.Hash]int),
		byName:      make(map[string][]int),
	}
}

// AddMethod binds a method and returns its slot index. A signature seen
// before keeps its index and gets the new method; a new signature is
// appended.
func (v *VTable) AddMethod(name string, signature, method types.Hash) int {
	if idx, ok := v.bySignature[signature]; ok {
		v.slots[idx].Method = method
		return idx
	}
	idx := len(v.slots)
	v.slots = append(v.slots, Slot{Name: name, Signature: signature, Method: method})
	v.bySignature[signature] = idx
	v.byName[name] = append(v.byName[name], idx)
	return idx
}

// Len returns the number of slots.
func (v *VTable) Len() int { return len(v.slots) }

// MethodAt returns the method bound to a slot.
func (v *VTable) MethodAt(idx int) (types.Hash, bool) {
	if idx < 0 || idx >= len(v.slots) {
		return 0, false
	}
	return v.slots[idx].Method, true
}

// SlotOf returns the slot index claimed by a dispatch signature.
func (v *VTable) SlotOf(signature types.Hash) (int, bool) {
	idx, ok := v.bySignature[signature]
	return idx, ok
}

// SlotsNamed returns the slot indices of every overload of a name, in
// slot order.
func (v *VTable) SlotsNamed(name string) []int {
	return v.byName[name]
}

// Slots returns a copy of the table in slot order.
func (v *VTable) Slots() []Slot {
	out := make([]Slot, len(v.slots))
	copy(out, v.slots)
	return out
}

// ITable maps one interface's methods, in declaration order, to the
// implementing class's vtable slots. A slot of -1 marks an interface
// method the class never implemented; conformance checking reports
// those, dispatch never reads them.
type ITable struct {
	Interface types.Hash
	Slots     []int
}

// ClassTables bundles the dispatch tables of one class.
type ClassTables struct {
	Class   types.Hash
	VTable  *VTable
	ITables []ITable
}

// ITableFor returns the table for one implemented interface.
func (c *ClassTables) ITableFor(iface types.Hash) (*ITable, bool) {
	for i := range c.ITables {
		if c.ITables[i].Interface == iface {
			return &c.ITables[i], true
		}
	}
	return nil, false
}
