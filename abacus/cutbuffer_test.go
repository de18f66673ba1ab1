// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutBufferInsertLocksAndBounds(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 4, false)
	buf := NewCutBuffer[Constraint, Variable](m, 2)

	var slots []*ConSlot
	for i := 0; i < 3; i++ {
		c := testRowCon(m, []int{i}, []float64{1}, Less, float64(i))
		s, _ := pool.Insert(c)
		slots = append(slots, s)
	}

	require.True(t, buf.Insert(slots[0], true))
	require.True(t, buf.Insert(slots[1], true))
	assert.False(t, buf.Insert(slots[2], true), "full buffer rejects")
	assert.Equal(t, 2, buf.Number())
	assert.Equal(t, 0, buf.Space())

	// buffered items are locked against pool eviction
	assert.False(t, slots[0].ConVar().convar().Deletable())
	assert.False(t, pool.softDelete(slots[0]))

	out := buf.Extract(10)
	require.Len(t, out, 2)
	assert.Equal(t, 0, buf.Number(), "buffer empty after extract")
	assert.True(t, slots[0].ConVar().convar().Deletable(), "locks released")
}

func TestCutBufferRankedExtract(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 8, false)
	buf := NewCutBuffer[Constraint, Variable](m, 8)

	ranks := []float64{0.3, 2.5, 1.1, 0.7}
	cons := make([]*RowCon, len(ranks))
	for i, r := range ranks {
		cons[i] = testRowCon(m, []int{i}, []float64{1}, Less, 0)
		s, _ := pool.Insert(cons[i])
		require.True(t, buf.InsertRanked(s, true, r))
	}

	out := buf.Extract(2)
	require.Len(t, out, 2)
	assert.Same(t, cons[1], out[0].ConVar(), "largest rank first")
	assert.Same(t, cons[2], out[1].ConVar())
	assert.Equal(t, 4, pool.Number(), "keepInPool items survive the drop")
}

func TestCutBufferRanklessInsertDisablesRanking(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 8, false)
	buf := NewCutBuffer[Constraint, Variable](m, 8)

	first := testRowCon(m, []int{0}, []float64{1}, Less, 0)
	s0, _ := pool.Insert(first)
	require.True(t, buf.InsertRanked(s0, true, 0.1))

	second := testRowCon(m, []int{1}, []float64{1}, Less, 0)
	s1, _ := pool.Insert(second)
	require.True(t, buf.Insert(s1, true))

	out := buf.Extract(1)
	require.Len(t, out, 1)
	assert.Same(t, first, out[0].ConVar(), "insertion order without ranking")
}

func TestCutBufferDropEvictsFromPool(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 8, false)
	buf := NewCutBuffer[Constraint, Variable](m, 8)

	keep := testRowCon(m, []int{0}, []float64{1}, Less, 0)
	toss := testRowCon(m, []int{1}, []float64{1}, Less, 0)
	sKeep, _ := pool.Insert(keep)
	sToss, _ := pool.Insert(toss)
	require.True(t, buf.InsertRanked(sKeep, true, 2))
	require.True(t, buf.InsertRanked(sToss, false, 1))

	out := buf.Extract(1)
	require.Len(t, out, 1)
	assert.Same(t, keep, out[0].ConVar())
	assert.Equal(t, 1, pool.Number(), "dropped keepInPool=false item evicted")
	assert.False(t, sToss.Occupied())
}

func TestCutBufferClearUnlocksAll(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 4, false)
	buf := NewCutBuffer[Constraint, Variable](m, 4)

	c := testRowCon(m, []int{0}, []float64{1}, Less, 0)
	s, _ := pool.Insert(c)
	require.True(t, buf.Insert(s, true))
	require.False(t, c.convar().Deletable())

	buf.clear()
	assert.True(t, c.convar().Deletable())
	assert.Equal(t, 0, buf.Number())
}
