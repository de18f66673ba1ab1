// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "math"

// TailOff observes the LP values of successive iterations of a subproblem.
// Tailing off is detected when the relative change between the current
// value and the value nLp solved LPs ago drops below the configured
// percentage.
type TailOff struct {
	master *Master
	vals   []float64 // ring of the last nLp+1 values
	n      int
	head   int
}

// NewTailOff returns a tail-off control remembering the last nLp LP values
// plus the value they are compared against. A window of zero disables the
// control.
func NewTailOff(master *Master) *TailOff {
	n := master.parameters.TailOffNLp
	if n < 1 {
		return &TailOff{master: master}
	}
	return &TailOff{master: master, vals: make([]float64, n+1)}
}

// Update records the objective value of a solved LP.
func (t *TailOff) Update(value float64) {
	if len(t.vals) == 0 {
		return
	}
	t.vals[t.head] = value
	t.head = (t.head + 1) % len(t.vals)
	if t.n < len(t.vals) {
		t.n++
	}
}

// Reset forgets the recorded values, e.g. after a primal improvement showed
// the subproblem to be promising again.
func (t *TailOff) Reset() {
	t.n = 0
	t.head = 0
}

// TailOff reports whether the window is full and the relative improvement
// over it stayed below TailOffPercent percent.
func (t *TailOff) TailOff() bool {
	if len(t.vals) == 0 || t.n < len(t.vals) {
		return false
	}
	oldest := t.vals[t.head] // head points at the slot holding the oldest value
	newest := t.vals[(t.head+len(t.vals)-1)%len(t.vals)]
	if math.Abs(oldest) < t.master.MachineEps() {
		return false
	}
	change := math.Abs((newest - oldest) / oldest * 100.0)
	return change < t.master.parameters.TailOffPercent
}

// Diff returns the relative change in percent over the full window, for
// diagnostics. The second result is false while the window is not full.
func (t *TailOff) Diff() (float64, bool) {
	if len(t.vals) == 0 || t.n < len(t.vals) {
		return 0, false
	}
	oldest := t.vals[t.head]
	newest := t.vals[(t.head+len(t.vals)-1)%len(t.vals)]
	if math.Abs(oldest) < t.master.MachineEps() {
		return 0, false
	}
	return math.Abs((newest - oldest) / oldest * 100.0), true
}
