// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// NonDuplPool is a StandardPool that additionally indexes its slots by the
// items' hash keys and rejects duplicate insertions. Items stored here must
// implement HashKey and Equal.
type NonDuplPool[B ConVarMember, C ConVarMember] struct {
	*StandardPool[B, C]
	index map[uint32][]*PoolSlot[B, C]
}

// NewNonDuplConPool returns a duplicate-rejecting constraint pool.
func NewNonDuplConPool(master *Master, size int, autoRealloc bool) *NonDuplPool[Constraint, Variable] {
	p := &NonDuplPool[Constraint, Variable]{
		StandardPool: NewStandardConPool(master, size, autoRealloc),
		index:        make(map[uint32][]*PoolSlot[Constraint, Variable]),
	}
	p.rebindSlots(p)
	return p
}

// NewNonDuplVarPool returns a duplicate-rejecting variable pool.
func NewNonDuplVarPool(master *Master, size int, autoRealloc bool) *NonDuplPool[Variable, Constraint] {
	p := &NonDuplPool[Variable, Constraint]{
		StandardPool: NewStandardVarPool(master, size, autoRealloc),
		index:        make(map[uint32][]*PoolSlot[Variable, Constraint]),
	}
	p.rebindSlots(p)
	return p
}

// Insert places cv in a free slot unless an equal item is already present.
// In the duplicate case the existing slot is returned together with
// duplicate == true and cv is not stored.
func (p *NonDuplPool[B, C]) Insert(cv B) (*PoolSlot[B, C], bool) {
	if slot := p.Present(cv); slot != nil {
		return slot, true
	}
	key := cv.HashKey()
	slot, _ := p.StandardPool.Insert(cv)
	if slot == nil {
		return nil, false
	}
	p.index[key] = append(p.index[key], slot)
	return slot, false
}

// Present returns the slot holding an item equal to cv, or nil.
func (p *NonDuplPool[B, C]) Present(cv B) *PoolSlot[B, C] {
	for _, slot := range p.index[cv.HashKey()] {
		if slot.hasItem && slot.item.Equal(cv) {
			return slot
		}
	}
	return nil
}

func (p *NonDuplPool[B, C]) removeConVar(slot *PoolSlot[B, C]) {
	p.unindex(slot)
	p.StandardPool.removeConVar(slot)
}

func (p *NonDuplPool[B, C]) softDelete(slot *PoolSlot[B, C]) bool {
	if slot.hasItem && !slot.item.convar().Deletable() {
		return false
	}
	p.unindex(slot)
	return p.StandardPool.softDelete(slot)
}

func (p *NonDuplPool[B, C]) unindex(slot *PoolSlot[B, C]) {
	if !slot.hasItem {
		return
	}
	key := slot.item.HashKey()
	bucket := p.index[key]
	for i, s := range bucket {
		if s == slot {
			bucket[i] = bucket[len(bucket)-1]
			p.index[key] = bucket[:len(bucket)-1]
			break
		}
	}
	if len(p.index[key]) == 0 {
		delete(p.index, key)
	}
}
