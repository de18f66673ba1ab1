// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchFixture(t *testing.T) *Sub {
	t.Helper()
	m := NewMaster("branch", OptMax, DefaultParameters())
	vars := []Variable{
		testNumVar(m, 0, 1, 0, 1, Binary),
		testNumVar(m, 1, 1, 0, 4, Integer),
	}
	cons := []Constraint{
		testRowCon(m, []int{0, 1}, []float64{1, 1}, Less, 4),
	}
	m.InitializePools(cons, vars, 8, 8, false)
	s := NewRootSub(m, DefaultSubHooks{})
	require.NoError(t, s.initializeRoot(8, 8))
	return s
}

func TestSetBranchRuleExtract(t *testing.T) {
	s := branchFixture(t)

	rule := NewSetBranchRule(0, SetToUpperBound)
	require.NoError(t, rule.Extract(s))
	assert.Equal(t, SetToUpperBound, s.FsVarStat(0).Status())
	assert.True(t, rule.BranchOnSetVar())
	assert.True(t, rule.SetToUpperBound())

	// the opposite setting now contradicts
	lower := NewSetBranchRule(0, SetToLowerBound)
	assert.ErrorIs(t, lower.Extract(s), ErrContradiction)
}

func TestBoundBranchRuleExtract(t *testing.T) {
	s := branchFixture(t)

	rule := NewBoundBranchRule(1, 2, 4)
	require.NoError(t, rule.Extract(s))
	assert.Equal(t, 2.0, s.LBound(1))
	assert.Equal(t, 4.0, s.UBound(1))
	assert.False(t, rule.BranchOnSetVar())
}

func TestBoundBranchRuleContradictsSetVariable(t *testing.T) {
	s := branchFixture(t)
	_, err := s.SetValue(1, SetTo, 0)
	require.NoError(t, err)

	rule := NewBoundBranchRule(1, 2, 4)
	assert.ErrorIs(t, rule.Extract(s), ErrContradiction)
}

func TestValBranchRuleExtract(t *testing.T) {
	s := branchFixture(t)

	rule := NewValBranchRule(1, 3)
	require.NoError(t, rule.Extract(s))
	assert.Equal(t, SetTo, s.FsVarStat(1).Status())
	assert.Equal(t, 3.0, s.FsVarStat(1).Value())
}

func TestConBranchRuleCarriesSlotRef(t *testing.T) {
	s := branchFixture(t)
	m := s.master

	cut := testRowCon(m, []int{0}, []float64{1}, Less, 0)
	slot, _ := m.cutPool.Insert(cut)
	rule := NewConBranchRule(slot)
	require.Same(t, cut, rule.Constraint())
	assert.EqualValues(t, 1, cut.convar().NReferences())

	s.addConBuffer = NewCutBuffer[Constraint, Variable](m, 4)
	require.NoError(t, rule.Extract(s))
	assert.Equal(t, 1, s.addConBuffer.Number())
	s.addConBuffer.clear()
}
