// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// Active is the ordered set of constraints or variables a subproblem
// currently presents to the LP. The position of an item in the set is its
// row or column number. Entries reference pool slots, so an item may turn
// void when the pool garbage collects it; void entries keep their position
// until the subproblem removes them.
//
// A parallel counter tracks for how many consecutive iterations each item
// has been redundant, feeding the aging-based elimination.
type Active[B ConVarMember, C ConVarMember] struct {
	master       *Master
	refs         []*PoolSlotRef[B, C]
	redundantAge []int
}

// NewActive returns an empty active set with capacity max.
func NewActive[B ConVarMember, C ConVarMember](master *Master, max int) *Active[B, C] {
	return &Active[B, C]{
		master:       master,
		refs:         make([]*PoolSlotRef[B, C], 0, max),
		redundantAge: make([]int, 0, max),
	}
}

// NewActiveFrom copies at most max entries from a father's active set. The
// copies are fresh references; items that turned void are copied as void
// and do not count references.
func NewActiveFrom[B ConVarMember, C ConVarMember](master *Master, a *Active[B, C], max int) *Active[B, C] {
	n := len(a.refs)
	if n > max {
		n = max
	}
	res := NewActive[B, C](master, max)
	for i := 0; i < n; i++ {
		res.refs = append(res.refs, a.refs[i].Clone())
		res.redundantAge = append(res.redundantAge, 0)
	}
	return res
}

// Number returns the current number of active items, void entries included.
func (a *Active[B, C]) Number() int { return len(a.refs) }

// Max returns the capacity.
func (a *Active[B, C]) Max() int { return cap(a.refs) }

// ConVar returns the i-th item, or the zero value if the entry is void.
func (a *Active[B, C]) ConVar(i int) B { return a.refs[i].ConVar() }

// PoolSlotRef returns the i-th slot reference.
func (a *Active[B, C]) PoolSlotRef(i int) *PoolSlotRef[B, C] { return a.refs[i] }

// Insert appends one slot and activates its item.
func (a *Active[B, C]) Insert(slot *PoolSlot[B, C]) {
	if len(a.refs) == cap(a.refs) {
		panic("abacus: active: set is full")
	}
	ref := NewPoolSlotRef(slot)
	if cv := ref.ConVar(); any(cv) != nil {
		cv.convar().activate()
	}
	a.refs = append(a.refs, ref)
	a.redundantAge = append(a.redundantAge, 0)
}

// InsertSlots appends several slots, tolerating void ones without
// reordering.
func (a *Active[B, C]) InsertSlots(slots []*PoolSlot[B, C]) {
	for _, s := range slots {
		a.Insert(s)
	}
}

// Remove removes the entries at the given indices, which must be strictly
// increasing, deactivates their items and left-shifts the rest exactly
// once.
func (a *Active[B, C]) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			panic("abacus: active: removal indices not strictly increasing")
		}
	}
	if indices[len(indices)-1] >= len(a.refs) {
		panic("abacus: active: removal index out of range")
	}
	next := 0
	keep := 0
	for i := range a.refs {
		if next < len(indices) && indices[next] == i {
			next++
			ref := a.refs[i]
			if cv := ref.ConVar(); any(cv) != nil {
				cv.convar().deactivate()
			}
			ref.release()
			continue
		}
		a.refs[keep] = a.refs[i]
		a.redundantAge[keep] = a.redundantAge[i]
		keep++
	}
	a.refs = a.refs[:keep]
	a.redundantAge = a.redundantAge[:keep]
}

// Realloc grows the capacity to newMax. Shrinking below the current number
// of entries is refused loudly.
func (a *Active[B, C]) Realloc(newMax int) {
	if newMax < len(a.refs) {
		panic("abacus: active: realloc would drop active items")
	}
	if newMax <= cap(a.refs) {
		return
	}
	refs := make([]*PoolSlotRef[B, C], len(a.refs), newMax)
	copy(refs, a.refs)
	a.refs = refs
	age := make([]int, len(a.redundantAge), newMax)
	copy(age, a.redundantAge)
	a.redundantAge = age
}

// RedundantAge returns the number of consecutive iterations item i has been
// redundant.
func (a *Active[B, C]) RedundantAge(i int) int { return a.redundantAge[i] }

// IncrementRedundantAge bumps the redundancy counter of item i.
func (a *Active[B, C]) IncrementRedundantAge(i int) { a.redundantAge[i]++ }

// ResetRedundantAge clears the redundancy counter of item i.
func (a *Active[B, C]) ResetRedundantAge(i int) { a.redundantAge[i] = 0 }

// release deactivates nothing but drops all slot references, e.g. when a
// fathomed subproblem frees its sets after deactivating the items itself.
func (a *Active[B, C]) release() {
	for _, r := range a.refs {
		r.release()
	}
	a.refs = a.refs[:0]
	a.redundantAge = a.redundantAge[:0]
}
