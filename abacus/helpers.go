// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "math"

// fracPart returns the fractional part of x in [0, 1).
func fracPart(x float64) float64 {
	f := x - math.Floor(x)
	if f < 0 {
		f += 1.0
	}
	return f
}

// leftShift removes the entries at the given strictly increasing indices.
func leftShift[T any](s []T, indices []int) []T {
	if len(indices) == 0 {
		return s
	}
	next := 0
	keep := 0
	for i := range s {
		if next < len(indices) && indices[next] == i {
			next++
			continue
		}
		s[keep] = s[i]
		keep++
	}
	return s[:keep]
}

// leftShiftPtr is leftShift for pointer slices; kept separate so dropped
// entries are nilled for the garbage collector.
func leftShiftPtr[T any](s []*T, indices []int) []*T {
	out := leftShift(s, indices)
	for i := len(out); i < len(s); i++ {
		s[i] = nil
	}
	return out
}

// sortedUnique sorts the indices, drops duplicates, and checks the range
// [0, n). Removal sites require strictly increasing sequences; separation
// and elimination can produce their input in arbitrary order.
func sortedUnique(indices []int, n int) []int {
	marked := make([]bool, n)
	for _, i := range indices {
		marked[i] = true
	}
	out := make([]int, 0, len(indices))
	for i := 0; i < n; i++ {
		if marked[i] {
			out = append(out, i)
		}
	}
	return out
}
