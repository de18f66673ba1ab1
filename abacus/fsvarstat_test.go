// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSVarStatClasses(t *testing.T) {
	free := NewFSVarStat(Free)
	assert.False(t, free.Fixed())
	assert.False(t, free.Set())
	assert.False(t, free.FixedOrSet())

	set := NewFSVarStat(SetToUpperBound)
	assert.True(t, set.Set())
	assert.False(t, set.Fixed())
	assert.True(t, set.FixedOrSet())

	fixed := NewFSVarStatValue(FixedTo, 2.5)
	assert.True(t, fixed.Fixed())
	assert.False(t, fixed.Set())
	assert.Equal(t, 2.5, fixed.Value())
}

func TestFSVarStatValueConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { NewFSVarStat(FixedTo) })
	assert.Panics(t, func() { NewFSVarStatValue(FixedToLowerBound, 1) })
}

func TestFSVarStatContradiction(t *testing.T) {
	const eps = 1e-6
	tests := []struct {
		name   string
		a, b   *FSVarStat
		contra bool
	}{
		{"free never contradicts", NewFSVarStat(Free), NewFSVarStat(FixedToUpperBound), false},
		{"same bound set vs fixed", NewFSVarStat(SetToLowerBound), NewFSVarStat(FixedToLowerBound), false},
		{"opposite bounds", NewFSVarStat(SetToLowerBound), NewFSVarStat(FixedToUpperBound), true},
		{"opposite bounds fixed", NewFSVarStat(FixedToUpperBound), NewFSVarStat(SetToLowerBound), true},
		{"equal values agree", NewFSVarStatValue(FixedTo, 3.0), NewFSVarStatValue(SetTo, 3.0), false},
		{"different values contradict", NewFSVarStatValue(FixedTo, 3.0), NewFSVarStatValue(FixedTo, 4.0), true},
		{"bound vs value", NewFSVarStat(FixedToLowerBound), NewFSVarStatValue(FixedTo, 0.0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.contra, tc.a.Contradiction(tc.b, eps))
		})
	}
}

func TestFSVarStatAssignCopies(t *testing.T) {
	a := NewFSVarStatValue(SetTo, 1.5)
	b := NewFSVarStat(Free)
	b.Assign(a)
	require.Equal(t, SetTo, b.Status())
	require.Equal(t, 1.5, b.Value())

	a.SetStatusValue(FixedTo, 9)
	assert.Equal(t, SetTo, b.Status(), "assignment must copy, not alias")
}
