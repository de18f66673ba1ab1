// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixCandFixture stores one candidate snapshot: v non-basic at its lower
// bound with a snapshot price of 94 for a minimization problem.
func fixCandFixture(t *testing.T, lower float64) (*Master, *NumVar, *VarSlot) {
	t.Helper()
	m := NewMaster("fixcand", OptMin, DefaultParameters())
	pool := NewStandardVarPool(m, 4, false)
	v := testNumVar(m, 0, 1, lower, 5, Integer)
	slot, _ := pool.Insert(v)

	f := m.FixCand()
	f.candidates = append(f.candidates, NewPoolSlotRef(slot))
	f.fsVarStat = append(f.fsVarStat, NewFSVarStat(FixedToLowerBound))
	f.lhs = append(f.lhs, 94.0)
	return m, v, slot
}

func TestFixCandNoFixWhileBoundHolds(t *testing.T) {
	m, v, _ := fixCandFixture(t, 0)
	m.setPrimalBound(95)

	buf := NewCutBuffer[Variable, Constraint](m, 4)
	m.FixCand().FixByRedCost(buf)

	assert.False(t, v.FsVarStat().Fixed())
	assert.Equal(t, 1, m.FixCand().Number())
	assert.Equal(t, 0, buf.Number())
}

func TestFixCandFixesOnPrimalImprovement(t *testing.T) {
	m, v, _ := fixCandFixture(t, 0)
	m.setPrimalBound(95)
	m.setPrimalBound(93)

	buf := NewCutBuffer[Variable, Constraint](m, 4)
	m.FixCand().FixByRedCost(buf)

	// 94 > 93: the mirror bound violates the incumbent
	require.True(t, v.FsVarStat().Fixed())
	assert.Equal(t, FixedToLowerBound, v.FsVarStat().Status())
	assert.Equal(t, 0, m.FixCand().Number(), "fixed candidate is dropped")
	assert.Equal(t, 1, m.NFixed())
	// inactive variable fixed to zero needs no activation
	assert.Equal(t, 0, buf.Number())
}

func TestFixCandQueuesInactiveNonZeroFixing(t *testing.T) {
	m, v, slot := fixCandFixture(t, 2)
	m.setPrimalBound(93)

	buf := NewCutBuffer[Variable, Constraint](m, 4)
	m.FixCand().FixByRedCost(buf)

	require.True(t, v.FsVarStat().Fixed())
	require.Equal(t, 1, buf.Number(), "inactive variable with nonzero bound queued for activation")
	assert.Same(t, slot, buf.Slot(0))
	buf.clear()
}
