// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSubFixture(t *testing.T, strategy EnumerationStrategy, sense OptSense) (*Master, *OpenSub) {
	t.Helper()
	params := DefaultParameters()
	params.EnumerationStrategy = strategy
	m := NewMaster("open", sense, params)
	return m, m.OpenSub()
}

func fakeSub(m *Master, level int, dualBound float64) *Sub {
	s := NewRootSub(m, DefaultSubHooks{})
	s.level = level
	s.dualBound = dualBound
	return s
}

func TestOpenSubBestFirst(t *testing.T) {
	m, open := openSubFixture(t, BestFirst, OptMin)

	a := fakeSub(m, 2, 10) // best dual bound for minimization
	b := fakeSub(m, 3, 12)
	c := fakeSub(m, 1, 11)
	open.Insert(b)
	open.Insert(a)
	open.Insert(c)

	require.Equal(t, 3, open.Number())
	assert.InDelta(t, 10.0, open.DualBound(), 1e-12, "aggregate is the best-possible bound")

	assert.Same(t, a, open.Select())
	assert.InDelta(t, 11.0, open.DualBound(), 1e-12)
	assert.Same(t, c, open.Select())
	assert.Same(t, b, open.Select())
	assert.True(t, open.Empty())
}

func TestOpenSubDepthAndBreadthFirst(t *testing.T) {
	m, open := openSubFixture(t, DepthFirst, OptMax)
	shallow := fakeSub(m, 2, 5)
	deep := fakeSub(m, 7, 5)
	open.Insert(shallow)
	open.Insert(deep)
	assert.Same(t, deep, open.Select())
	open.Prune()

	m.parameters.EnumerationStrategy = BreadthFirst
	first := fakeSub(m, 3, 5)
	second := fakeSub(m, 3, 5)
	deeper := fakeSub(m, 6, 5)
	open.Insert(deeper)
	open.Insert(second)
	open.Insert(first)
	got := open.Select()
	require.Equal(t, 3, got.Level())
	assert.Same(t, first, got, "ties break by the smaller id")
}

func TestOpenSubDiveAndBestSwitches(t *testing.T) {
	m, open := openSubFixture(t, DiveAndBest, OptMin)
	shallowGood := fakeSub(m, 1, 1)
	deepBad := fakeSub(m, 9, 100)
	open.Insert(shallowGood)
	open.Insert(deepBad)

	// no incumbent yet: dive
	assert.Same(t, deepBad, open.Select())
	open.Insert(deepBad)

	m.setPrimalBound(50)
	// incumbent known: best first
	assert.Same(t, shallowGood, open.Select())
}

func TestOpenSubDoubleInsertPanics(t *testing.T) {
	m, open := openSubFixture(t, BestFirst, OptMin)
	s := fakeSub(m, 1, 0)
	open.Insert(s)
	assert.Panics(t, func() { open.Insert(s) })
}

func TestOpenSubRemove(t *testing.T) {
	m, open := openSubFixture(t, BestFirst, OptMax)
	a := fakeSub(m, 1, 5)
	b := fakeSub(m, 1, 7)
	open.Insert(a)
	open.Insert(b)
	assert.InDelta(t, 7.0, open.DualBound(), 1e-12)

	open.Remove(b)
	assert.Equal(t, 1, open.Number())
	assert.InDelta(t, 5.0, open.DualBound(), 1e-12)

	open.Remove(b) // already gone, must be a no-op
	assert.Equal(t, 1, open.Number())
}

func TestOpenSubDormantSkipped(t *testing.T) {
	m, open := openSubFixture(t, BestFirst, OptMin)
	m.parameters.MinDormantRounds = 2

	awake := fakeSub(m, 1, 10)
	dormant := fakeSub(m, 1, 1) // better bound but dormant
	dormant.status = StatusDormant
	open.Insert(awake)
	open.Insert(dormant)

	assert.Same(t, awake, open.Select(), "dormant node must wait")
	// the dormant node collected a round and is selectable now
	assert.Same(t, dormant, open.Select())
}
