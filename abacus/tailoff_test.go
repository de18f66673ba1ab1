// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailOffDetection(t *testing.T) {
	params := DefaultParameters()
	params.TailOffNLp = 3
	params.TailOffPercent = 1.0
	m := NewMaster("test", OptMax, params)

	to := NewTailOff(m)
	values := []float64{100.00, 99.50, 99.10, 99.00, 98.95}
	expect := []bool{false, false, false, false, true}
	for i, v := range values {
		to.Update(v)
		assert.Equal(t, expect[i], to.TailOff(), "after value %g", v)
	}

	diff, ok := to.Diff()
	assert.True(t, ok)
	// 99.50 -> 98.95 over the window of three LPs
	assert.InDelta(t, 0.5528, diff, 0.001)

	to.Reset()
	assert.False(t, to.TailOff())
}

func TestTailOffDisabled(t *testing.T) {
	params := DefaultParameters()
	params.TailOffNLp = 0
	m := NewMaster("test", OptMin, params)

	to := NewTailOff(m)
	for i := 0; i < 10; i++ {
		to.Update(1.0)
	}
	assert.False(t, to.TailOff())
}

func TestTailOffNeedsFullWindow(t *testing.T) {
	params := DefaultParameters()
	params.TailOffNLp = 2
	params.TailOffPercent = 50.0
	m := NewMaster("test", OptMin, params)

	to := NewTailOff(m)
	to.Update(100)
	to.Update(100)
	assert.False(t, to.TailOff(), "window not yet full")
	to.Update(100)
	assert.True(t, to.TailOff())
}
