// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "sort"

// CutBuffer stages constraints or variables generated during separation or
// pricing. Items are not added to the subproblem immediately: the active
// sets must not change under the generating scan, and ranking allows adding
// only the best of a larger harvest at the start of the next iteration.
//
// Buffered items are locked against pool eviction; extract releases the
// locks again.
type CutBuffer[B ConVarMember, C ConVarMember] struct {
	master     *Master
	size       int
	refs       []*PoolSlotRef[B, C]
	keepInPool []bool
	rank       []float64
	ranking    bool
}

// NewCutBuffer returns a buffer for at most size items.
func NewCutBuffer[B ConVarMember, C ConVarMember](master *Master, size int) *CutBuffer[B, C] {
	return &CutBuffer[B, C]{
		master:     master,
		size:       size,
		refs:       make([]*PoolSlotRef[B, C], 0, size),
		keepInPool: make([]bool, 0, size),
		rank:       make([]float64, 0, size),
		ranking:    true,
	}
}

// Size returns the maximal number of buffered items.
func (b *CutBuffer[B, C]) Size() int { return b.size }

// Number returns the number of buffered items.
func (b *CutBuffer[B, C]) Number() int { return len(b.refs) }

// Space returns how many items can still be inserted.
func (b *CutBuffer[B, C]) Space() int { return b.size - len(b.refs) }

// Slot returns the slot of the i-th buffered item.
func (b *CutBuffer[B, C]) Slot(i int) *PoolSlot[B, C] { return b.refs[i].Slot() }

// Insert buffers a slot without a rank; the buffer becomes unrankable for
// this cycle. If keepInPool is false the item is removed from its pool when
// it is discarded during extraction. It reports whether there was room.
func (b *CutBuffer[B, C]) Insert(slot *PoolSlot[B, C], keepInPool bool) bool {
	if len(b.refs) >= b.size {
		return false
	}
	b.ranking = false
	b.push(slot, keepInPool, 0)
	return true
}

// InsertRanked buffers a slot with a rank. The buffer stays rankable only
// while every insertion of the cycle supplied a rank.
func (b *CutBuffer[B, C]) InsertRanked(slot *PoolSlot[B, C], keepInPool bool, rank float64) bool {
	if len(b.refs) >= b.size {
		return false
	}
	b.push(slot, keepInPool, rank)
	return true
}

func (b *CutBuffer[B, C]) push(slot *PoolSlot[B, C], keepInPool bool, rank float64) {
	ref := NewPoolSlotRef(slot)
	if cv := ref.ConVar(); any(cv) != nil {
		cv.convar().lock()
	}
	b.refs = append(b.refs, ref)
	b.keepInPool = append(b.keepInPool, keepInPool)
	b.rank = append(b.rank, rank)
}

// Remove drops the buffered items at the given positions, unlocking them.
func (b *CutBuffer[B, C]) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	marked := make(map[int]bool, len(indices))
	for _, i := range indices {
		marked[i] = true
	}
	keep := 0
	for i := range b.refs {
		if marked[i] {
			b.drop(i)
			continue
		}
		b.refs[keep] = b.refs[i]
		b.keepInPool[keep] = b.keepInPool[i]
		b.rank[keep] = b.rank[i]
		keep++
	}
	b.refs = b.refs[:keep]
	b.keepInPool = b.keepInPool[:keep]
	b.rank = b.rank[:keep]
}

// Extract moves up to max items out of the buffer and returns their slots.
// If the buffer is rankable and holds more than max items, a stable sort
// keeps the largest ranks. Discarded items are unlocked and, unless marked
// keepInPool, removed from their pool when deletable. The buffer is empty
// and rankable again afterwards.
func (b *CutBuffer[B, C]) Extract(max int) []*PoolSlot[B, C] {
	if b.ranking && len(b.refs) > max {
		b.sortByRank()
	}
	n := len(b.refs)
	if n > max {
		n = max
	}
	out := make([]*PoolSlot[B, C], 0, n)
	for i := 0; i < n; i++ {
		ref := b.refs[i]
		if cv := ref.ConVar(); any(cv) != nil {
			cv.convar().unlock()
		}
		out = append(out, ref.Slot())
		ref.release()
	}
	for i := n; i < len(b.refs); i++ {
		b.drop(i)
	}
	b.refs = b.refs[:0]
	b.keepInPool = b.keepInPool[:0]
	b.rank = b.rank[:0]
	b.ranking = true
	return out
}

// drop unlocks the i-th item and evicts it from its pool if it is not
// pool-kept and deletable.
func (b *CutBuffer[B, C]) drop(i int) {
	ref := b.refs[i]
	if cv := ref.ConVar(); any(cv) != nil {
		cv.convar().unlock()
		slot := ref.Slot()
		ref.release()
		if !b.keepInPool[i] && cv.convar().Deletable() {
			slot.RemoveConVarFromPool()
		}
		return
	}
	ref.release()
}

// Sort ranks the buffered items best-first if more than threshold items are
// buffered; it is a no-op for an unrankable buffer.
func (b *CutBuffer[B, C]) Sort(threshold int) {
	if !b.ranking || len(b.refs) <= threshold {
		return
	}
	b.sortByRank()
}

func (b *CutBuffer[B, C]) sortByRank() {
	idx := make([]int, len(b.refs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return b.rank[idx[i]] > b.rank[idx[j]] })

	refs := make([]*PoolSlotRef[B, C], len(b.refs))
	keep := make([]bool, len(b.keepInPool))
	rank := make([]float64, len(b.rank))
	for to, from := range idx {
		refs[to] = b.refs[from]
		keep[to] = b.keepInPool[from]
		rank[to] = b.rank[from]
	}
	b.refs, b.keepInPool, b.rank = refs, keep, rank
}

// clear unlocks and drops everything still buffered, e.g. when a
// subproblem is deactivated with a non-empty buffer after tailing off.
func (b *CutBuffer[B, C]) clear() {
	for i := range b.refs {
		b.drop(i)
	}
	b.refs = b.refs[:0]
	b.keepInPool = b.keepInPool[:0]
	b.rank = b.rank[:0]
	b.ranking = true
}
