// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaster(t *testing.T, sense OptSense) *Master {
	t.Helper()
	return NewMaster("test", sense, DefaultParameters())
}

func testRowCon(m *Master, support []int, coeff []float64, sense CSense, rhs float64) *RowCon {
	return NewRowCon(m, nil, sense, true, false, support, coeff, rhs)
}

func testNumVar(m *Master, number int, obj, lb, ub float64, vt VarType) *NumVar {
	return NewNumVar(m, nil, number, true, false, obj, lb, ub, vt)
}

func TestPoolSlotVersioning(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 4, false)

	c := testRowCon(m, []int{0, 1}, []float64{1, 1}, Less, 1.0)
	slot, dup := pool.Insert(c)
	require.NotNil(t, slot)
	require.False(t, dup)
	require.EqualValues(t, 1, slot.Version())

	ref := NewPoolSlotRef(slot)
	require.NotNil(t, ref.ConVar())
	require.EqualValues(t, 1, c.convar().NReferences())

	// a live reference forbids the soft delete
	require.False(t, pool.softDelete(slot))
	require.Equal(t, 1, pool.Number())

	// the hard delete ignores the reference and recycles the slot
	pool.removeConVar(slot)
	require.Equal(t, 0, pool.Number())
	require.Nil(t, ref.ConVar(), "reference must turn void")

	c2 := testRowCon(m, []int{0}, []float64{1}, Less, 2.0)
	slot2, _ := pool.Insert(c2)
	require.Same(t, slot, slot2, "freed slot must be reused")
	require.EqualValues(t, 2, slot2.Version())

	// the stale reference does not resolve to the new item and must not
	// touch its reference counter
	assert.Nil(t, ref.ConVar())
	assert.EqualValues(t, 0, c2.convar().NReferences())

	ref.release()
	assert.EqualValues(t, 1, c.convar().NReferences(), "stale release must not decrement")
}

func TestPoolSlotDoubleInsertPanics(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardConPool(m, 1, false)
	c := testRowCon(m, []int{0}, []float64{1}, Less, 1.0)
	slot, _ := pool.Insert(c)
	require.NotNil(t, slot)
	assert.Panics(t, func() { slot.insert(c) })
}

func TestStandardPoolFull(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 2, false)

	v1 := testNumVar(m, 0, 1, 0, 1, Binary)
	v2 := testNumVar(m, 1, 1, 0, 1, Binary)
	v3 := testNumVar(m, 2, 1, 0, 1, Binary)

	s1, _ := pool.Insert(v1)
	s2, _ := pool.Insert(v2)
	require.NotNil(t, s1)
	require.NotNil(t, s2)

	// full, nothing deletable: the cleanup only removes inactive deletable
	// dynamic items, and the references taken below keep v1 and v2 from
	// qualifying
	r1 := NewPoolSlotRef(s1)
	r2 := NewPoolSlotRef(s2)
	s3, _ := pool.Insert(v3)
	assert.Nil(t, s3)
	r1.release()
	r2.release()
}

func TestStandardPoolGrows(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 1, true)

	s1, _ := pool.Insert(testNumVar(m, 0, 1, 0, 1, Binary))
	r1 := NewPoolSlotRef(s1)
	defer r1.release()
	s2, _ := pool.Insert(testNumVar(m, 1, 1, 0, 1, Binary))
	require.NotNil(t, s2, "autoRealloc pool must grow")
	assert.Equal(t, 2, pool.Number())
}

func TestNonDuplPoolRejectsDuplicates(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewNonDuplConPool(m, 4, false)

	c1 := testRowCon(m, []int{0, 2}, []float64{1, -1}, Equal, 0)
	c2 := testRowCon(m, []int{0, 2}, []float64{1, -1}, Equal, 0)
	c3 := testRowCon(m, []int{0, 2}, []float64{1, -1}, Equal, 1)

	s1, dup := pool.Insert(c1)
	require.NotNil(t, s1)
	require.False(t, dup)

	s2, dup := pool.Insert(c2)
	assert.Same(t, s1, s2, "duplicate insert must return the existing slot")
	assert.True(t, dup)
	assert.Equal(t, 1, pool.Number())

	s3, dup := pool.Insert(c3)
	assert.False(t, dup)
	assert.NotSame(t, s1, s3)

	// removal clears the index so the item can be inserted again
	pool.removeConVar(s1)
	s4, dup := pool.Insert(c2)
	require.NotNil(t, s4)
	assert.False(t, dup)
}

func TestPoolSeparate(t *testing.T) {
	m := newTestMaster(t, OptMax)
	m.InitializePools(nil, nil, 4, 4, false)
	pool := NewStandardConPool(m, 4, false)

	// x0 + x1 <= 1 is violated at (1, 0.5); x0 <= 2 is not
	violated := testRowCon(m, []int{0, 1}, []float64{1, 1}, Less, 1)
	slack := testRowCon(m, []int{0}, []float64{1}, Less, 2)
	pool.Insert(violated)
	pool.Insert(slack)

	actVar := NewActive[Variable, Constraint](m, 4)
	vp := NewStandardVarPool(m, 4, false)
	for i := 0; i < 2; i++ {
		s, _ := vp.Insert(testNumVar(m, i, 1, 0, 1, Binary))
		actVar.Insert(s)
	}

	buf := NewCutBuffer[Constraint, Variable](m, 8)
	x := []float64{1, 0.5}
	n := pool.Separate(x, actVar, nil, buf, 0.0001, RankByAbsViolation)
	require.Equal(t, 1, n)
	require.Equal(t, 1, buf.Number())
	assert.Same(t, violated, buf.Slot(0).ConVar())

	// items already active in a subproblem are skipped
	violated.convar().activate()
	buf2 := NewCutBuffer[Constraint, Variable](m, 8)
	assert.Equal(t, 0, pool.Separate(x, actVar, nil, buf2, 0.0001, NoRanking))
	violated.convar().deactivate()
	buf.clear()
}
