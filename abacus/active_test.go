// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveInsertAndRemove(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 8, false)
	act := NewActive[Variable, Constraint](m, 8)

	vars := make([]*NumVar, 4)
	for i := range vars {
		vars[i] = testNumVar(m, i, 1, 0, 1, Binary)
		s, _ := pool.Insert(vars[i])
		act.Insert(s)
	}
	require.Equal(t, 4, act.Number())
	for i, v := range vars {
		assert.Same(t, v, act.ConVar(i))
		assert.True(t, v.convar().Active(), "insert must activate")
	}

	act.Remove([]int{1, 3})
	require.Equal(t, 2, act.Number())
	assert.Same(t, vars[0], act.ConVar(0))
	assert.Same(t, vars[2], act.ConVar(1))
	assert.False(t, vars[1].convar().Active(), "remove must deactivate")
	assert.False(t, vars[3].convar().Active())
}

func TestActiveRemoveRequiresStrictlyIncreasing(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 4, false)
	act := NewActive[Variable, Constraint](m, 4)
	for i := 0; i < 3; i++ {
		s, _ := pool.Insert(testNumVar(m, i, 1, 0, 1, Binary))
		act.Insert(s)
	}
	assert.Panics(t, func() { act.Remove([]int{2, 1}) })
	assert.Panics(t, func() { act.Remove([]int{1, 1}) })
}

func TestActiveToleratesVoidSlots(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 4, false)
	act := NewActive[Variable, Constraint](m, 4)

	v := testNumVar(m, 0, 1, 0, 1, Binary)
	s, _ := pool.Insert(v)
	act.Insert(s)
	v.convar().deactivate() // release before eviction
	pool.removeConVar(s)

	require.Equal(t, 1, act.Number(), "void entry keeps its position")
	assert.Nil(t, act.ConVar(0))
	act.Remove([]int{0})
	assert.Equal(t, 0, act.Number())
}

func TestActiveCopyDoesNotActivate(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 4, false)
	act := NewActive[Variable, Constraint](m, 4)

	v := testNumVar(m, 0, 1, 0, 1, Binary)
	s, _ := pool.Insert(v)
	act.Insert(s)
	require.EqualValues(t, 1, v.convar().nActive)

	cp := NewActiveFrom(m, act, 4)
	assert.Equal(t, 1, cp.Number())
	assert.EqualValues(t, 1, v.convar().nActive, "copying must not activate")
	assert.EqualValues(t, 2, v.convar().NReferences(), "copying acquires a reference")
}

func TestActiveRedundantAge(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 4, false)
	act := NewActive[Variable, Constraint](m, 4)
	s, _ := pool.Insert(testNumVar(m, 0, 1, 0, 1, Binary))
	act.Insert(s)

	assert.Equal(t, 0, act.RedundantAge(0))
	act.IncrementRedundantAge(0)
	act.IncrementRedundantAge(0)
	assert.Equal(t, 2, act.RedundantAge(0))
	act.ResetRedundantAge(0)
	assert.Equal(t, 0, act.RedundantAge(0))
}

func TestActiveReallocRefusesShrink(t *testing.T) {
	m := newTestMaster(t, OptMax)
	pool := NewStandardVarPool(m, 4, false)
	act := NewActive[Variable, Constraint](m, 4)
	for i := 0; i < 3; i++ {
		s, _ := pool.Insert(testNumVar(m, i, 1, 0, 1, Binary))
		act.Insert(s)
	}
	assert.Panics(t, func() { act.Realloc(2) })
	act.Realloc(16)
	assert.GreaterOrEqual(t, act.Max(), 16)
}
