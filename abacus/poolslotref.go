// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// PoolSlotRef is a weak reference to a pool slot: it stores the slot
// together with the slot's version at acquisition time. Dereferencing
// yields the item only while the versions still agree. A valid reference
// counts against the item's reference counter and must be released when the
// holder drops it.
type PoolSlotRef[B ConVarMember, C ConVarMember] struct {
	slot    *PoolSlot[B, C]
	version uint64
}

// NewPoolSlotRef acquires a reference to slot. If the slot holds an item
// its reference counter is incremented.
func NewPoolSlotRef[B ConVarMember, C ConVarMember](slot *PoolSlot[B, C]) *PoolSlotRef[B, C] {
	r := &PoolSlotRef[B, C]{slot: slot, version: slot.version}
	if slot.hasItem {
		slot.item.convar().addReference()
	}
	return r
}

// Clone acquires an independent reference following the same counting rule:
// the new reference counts only if it is valid.
func (r *PoolSlotRef[B, C]) Clone() *PoolSlotRef[B, C] {
	c := &PoolSlotRef[B, C]{slot: r.slot, version: r.version}
	if c.valid() {
		c.slot.item.convar().addReference()
	}
	return c
}

func (r *PoolSlotRef[B, C]) valid() bool {
	return r.slot != nil && r.slot.hasItem && r.version == r.slot.version
}

// ConVar returns the referenced item, or the zero value if the item was
// garbage collected from the pool in the meantime.
func (r *PoolSlotRef[B, C]) ConVar() B {
	var zero B
	if !r.valid() {
		return zero
	}
	return r.slot.item
}

// Slot returns the referenced slot.
func (r *PoolSlotRef[B, C]) Slot() *PoolSlot[B, C] { return r.slot }

// Version returns the version memorized at acquisition time.
func (r *PoolSlotRef[B, C]) Version() uint64 { return r.version }

// SetSlot rebinds the reference to a new slot, releasing the old reference
// if it was valid and acquiring a new one.
func (r *PoolSlotRef[B, C]) SetSlot(s *PoolSlot[B, C]) {
	r.release()
	r.slot = s
	r.version = s.version
	if s.hasItem {
		s.item.convar().addReference()
	}
}

// release drops the reference, decrementing the item's reference counter if
// the reference is still valid. The reference is void afterwards.
func (r *PoolSlotRef[B, C]) release() {
	if r.valid() {
		r.slot.item.convar().removeReference()
	}
	r.slot = nil
	r.version = 0
}
