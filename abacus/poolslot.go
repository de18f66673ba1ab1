// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// PoolSlot is the versioned container of one pooled constraint or variable.
// Subproblems never point at items directly: they hold PoolSlotRefs, which
// memorize the slot version at acquisition time. When an item is garbage
// collected from the pool and the slot reused, the version moves on and all
// old references dereference to nothing instead of to a stale item.
//
// A slot must outlive every reference into it; slots are only returned to
// the pool's free list, never released, before the optimization ends.
type PoolSlot[B ConVarMember, C ConVarMember] struct {
	master  *Master
	pool    Pool[B, C]
	item    B
	hasItem bool
	version uint64
}

func newPoolSlot[B ConVarMember, C ConVarMember](master *Master, pool Pool[B, C]) *PoolSlot[B, C] {
	return &PoolSlot[B, C]{master: master, pool: pool}
}

// ConVar returns the stored item, or the zero value if the slot is empty.
func (s *PoolSlot[B, C]) ConVar() B { return s.item }

// Occupied reports whether the slot currently holds an item.
func (s *PoolSlot[B, C]) Occupied() bool { return s.hasItem }

// Version returns the current version of the slot.
func (s *PoolSlot[B, C]) Version() uint64 { return s.version }

// Master returns the owning master.
func (s *PoolSlot[B, C]) Master() *Master { return s.master }

// insert stores an item and advances the version. Inserting into an
// occupied slot is an invariant violation.
func (s *PoolSlot[B, C]) insert(item B) {
	if s.hasItem {
		panic("abacus: poolslot: insertion into occupied slot")
	}
	s.item = item
	s.hasItem = true
	s.version++
}

// softDelete removes the item if it is deletable and returns the slot to
// the pool's free list.
func (s *PoolSlot[B, C]) softDelete() bool {
	if !s.hasItem {
		return true
	}
	if !s.item.convar().Deletable() {
		return false
	}
	s.hardDelete()
	return true
}

// hardDelete unconditionally drops the item and recycles the slot. Callers
// must be able to prove that no valid reference remains.
func (s *PoolSlot[B, C]) hardDelete() {
	var zero B
	s.item = zero
	s.hasItem = false
	s.pool.putSlot(s)
}

// RemoveConVarFromPool removes the stored item through its pool, recycling
// the slot.
func (s *PoolSlot[B, C]) RemoveConVarFromPool() {
	s.pool.removeConVar(s)
}
