// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// RankingMode controls how the rank of an item found in a pool separation
// is determined.
type RankingMode int

const (
	NoRanking          RankingMode = iota
	RankByViolation                // the signed violation (slack or reduced cost)
	RankByAbsViolation             // the absolute violation
	RankByUserRank                 // the item's Rank hook
)

// Pool is a set of versioned slots holding constraints or variables of role
// B; C is the counterpart role consulted during separation.
type Pool[B ConVarMember, C ConVarMember] interface {
	// Insert places cv in a free slot. It returns a nil slot if the pool
	// is full, or, for duplicate-rejecting pools, the existing slot
	// together with duplicate == true.
	Insert(cv B) (slot *PoolSlot[B, C], duplicate bool)

	// Separate scans the stored items, evaluates their violation against z
	// (an LP primal vector for constraint pools, a dual vector for
	// variable pools) and buffers the violated ones. It returns the
	// number of buffered items. The scan iterates over a snapshot of the
	// slots existing at entry, so separation may itself add items.
	Separate(z []float64, active *Active[C, B], sub *Sub, buf *CutBuffer[B, C], minAbsViolation float64, ranking RankingMode) int

	// Number returns the number of stored items.
	Number() int

	// Size returns the number of slots.
	Size() int

	removeConVar(slot *PoolSlot[B, C])
	softDelete(slot *PoolSlot[B, C]) bool
	putSlot(slot *PoolSlot[B, C])
}

// violationFunc evaluates the signed violation of an item against a vector
// and the counterpart active set.
type violationFunc[B ConVarMember, C ConVarMember] func(item B, z []float64, co *Active[C, B]) (violation float64, violated bool)

// StandardPool is the typical pool realization: bounded capacity with a
// free list of recycled slots.
type StandardPool[B ConVarMember, C ConVarMember] struct {
	master      *Master
	owner       Pool[B, C] // the outermost pool; differs for wrapping pools
	slots       []*PoolSlot[B, C]
	free        []*PoolSlot[B, C]
	number      int
	autoRealloc bool
	violation   violationFunc[B, C]
}

// NewStandardConPool returns a constraint pool with size slots. If
// autoRealloc is set the pool grows by ten percent instead of rejecting an
// insertion when it is full.
func NewStandardConPool(master *Master, size int, autoRealloc bool) *StandardPool[Constraint, Variable] {
	return newStandardPool[Constraint, Variable](master, size, autoRealloc, conPoolViolation)
}

// NewStandardVarPool returns a variable pool with size slots.
func NewStandardVarPool(master *Master, size int, autoRealloc bool) *StandardPool[Variable, Constraint] {
	return newStandardPool[Variable, Constraint](master, size, autoRealloc, varPoolViolation)
}

func conPoolViolation(c Constraint, x []float64, actVar *ActiveVars) (float64, bool) {
	slack := ConSlack(c, actVar, x)
	return slack, ConViolated(c, slack)
}

func varPoolViolation(v Variable, y []float64, actCon *ActiveCons) (float64, bool) {
	rc := RedCost(v, actCon, y)
	return rc, VarViolated(v, rc)
}

func newStandardPool[B ConVarMember, C ConVarMember](master *Master, size int, autoRealloc bool, violation violationFunc[B, C]) *StandardPool[B, C] {
	p := &StandardPool[B, C]{
		master:      master,
		autoRealloc: autoRealloc,
		violation:   violation,
	}
	p.owner = p
	p.slots = make([]*PoolSlot[B, C], size)
	p.free = make([]*PoolSlot[B, C], 0, size)
	for i := range p.slots {
		p.slots[i] = newPoolSlot[B, C](master, p.owner)
	}
	// getSlot pops from the back; hand out low slots first
	for i := size - 1; i >= 0; i-- {
		p.free = append(p.free, p.slots[i])
	}
	return p
}

func (p *StandardPool[B, C]) Number() int { return p.number }
func (p *StandardPool[B, C]) Size() int   { return len(p.slots) }

// Slot returns the i-th slot.
func (p *StandardPool[B, C]) Slot(i int) *PoolSlot[B, C] { return p.slots[i] }

func (p *StandardPool[B, C]) Insert(cv B) (*PoolSlot[B, C], bool) {
	slot := p.getSlot()
	if slot == nil {
		return nil, false
	}
	slot.insert(cv)
	p.number++
	return slot, false
}

func (p *StandardPool[B, C]) getSlot() *PoolSlot[B, C] {
	if len(p.free) == 0 {
		if !p.cleanup() && !p.grow() {
			return nil
		}
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return slot
}

// cleanup soft-deletes inactive deletable items to regain free slots.
func (p *StandardPool[B, C]) cleanup() bool {
	regained := 0
	for _, s := range p.slots {
		if !s.hasItem {
			continue
		}
		core := s.item.convar()
		if core.Active() || !core.Deletable() || !core.Dynamic() {
			continue
		}
		if p.owner.softDelete(s) {
			regained++
		}
	}
	if regained > 0 {
		p.master.log.Debug("pool cleanup regained slots", "n", regained)
		return true
	}
	return false
}

func (p *StandardPool[B, C]) grow() bool {
	if !p.autoRealloc {
		return false
	}
	oldSize := len(p.slots)
	newSize := oldSize + oldSize/10 + 1
	for i := oldSize; i < newSize; i++ {
		s := newPoolSlot[B, C](p.master, p.owner)
		p.slots = append(p.slots, s)
		p.free = append(p.free, s)
	}
	p.master.log.Debug("pool grown", "from", oldSize, "to", newSize)
	return true
}

// rebindSlots hands slot ownership to a wrapping pool so that deletions
// initiated from a slot reach the wrapper first.
func (p *StandardPool[B, C]) rebindSlots(owner Pool[B, C]) {
	p.owner = owner
	for _, s := range p.slots {
		s.pool = owner
	}
}

func (p *StandardPool[B, C]) putSlot(slot *PoolSlot[B, C]) {
	if slot.hasItem {
		panic("abacus: pool: returning an occupied slot")
	}
	p.free = append(p.free, slot)
}

func (p *StandardPool[B, C]) removeConVar(slot *PoolSlot[B, C]) {
	if slot.hasItem {
		slot.hardDelete()
		p.number--
	}
}

func (p *StandardPool[B, C]) softDelete(slot *PoolSlot[B, C]) bool {
	if !slot.hasItem {
		return true
	}
	if slot.softDelete() {
		p.number--
		return true
	}
	return false
}

func (p *StandardPool[B, C]) Separate(z []float64, active *Active[C, B], sub *Sub, buf *CutBuffer[B, C], minAbsViolation float64, ranking RankingMode) int {
	found := 0
	// snapshot: items inserted by the separation itself are not rescanned
	n := len(p.slots)
	for i := 0; i < n; i++ {
		slot := p.slots[i]
		if !slot.hasItem {
			continue
		}
		item := slot.item
		core := item.convar()
		if core.Active() || !validInSub(item, sub) {
			continue
		}
		v, violated := p.violation(item, z, active)
		if !violated {
			continue
		}
		abs := v
		if abs < 0 {
			abs = -abs
		}
		if abs < minAbsViolation {
			continue
		}
		var ok bool
		switch ranking {
		case RankByViolation:
			ok = buf.InsertRanked(slot, true, v)
		case RankByAbsViolation:
			ok = buf.InsertRanked(slot, true, abs)
		case RankByUserRank:
			ok = buf.InsertRanked(slot, true, item.Rank())
		default:
			ok = buf.Insert(slot, true)
		}
		if !ok {
			break // buffer full
		}
		found++
	}
	return found
}
