// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package gonumlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coin-or/abacus-go/abacus"
)

func row(support []int, coeff []float64, sense abacus.CSense, rhs float64) *abacus.Row {
	return abacus.NewRow(support, coeff, sense, rhs)
}

func TestSolveMaximization(t *testing.T) {
	s := New()
	// max x0 + x1  s.t.  x0 + x1 <= 1.5,  x in [0,1]^2
	err := s.Initialize(abacus.OptMax,
		[]float64{1, 1}, []float64{0, 0}, []float64{1, 1},
		[]*abacus.Row{row([]int{0, 1}, []float64{1, 1}, abacus.Less, 1.5)},
		nil, nil)
	require.NoError(t, err)

	status, err := s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 1.5, s.Value(), 1e-9)
	assert.InDelta(t, 1.5, s.XVal(0)+s.XVal(1), 1e-9)
	assert.False(t, s.Infeasible())

	// exactly one structural variable is basic in this corner
	basics := 0
	for j := 0; j < 2; j++ {
		if s.LpVarStat(j) == abacus.Basic {
			basics++
		}
	}
	assert.Equal(t, 1, basics)
}

func TestSolveMinimizationWithDuals(t *testing.T) {
	s := New()
	// min 2x0 + 3x1  s.t.  x0 + x1 >= 2,  x in [0,5]^2
	err := s.Initialize(abacus.OptMin,
		[]float64{2, 3}, []float64{0, 0}, []float64{5, 5},
		[]*abacus.Row{row([]int{0, 1}, []float64{1, 1}, abacus.Greater, 2)},
		nil, nil)
	require.NoError(t, err)

	status, err := s.Optimize(abacus.MethodDual)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 4.0, s.Value(), 1e-9)
	assert.InDelta(t, 2.0, s.XVal(0), 1e-9)
	assert.InDelta(t, 0.0, s.XVal(1), 1e-9)

	// the dual of the covering row equals the cost of the cheapest
	// covering variable; the reduced cost of x1 is 3 - 2 = 1
	assert.InDelta(t, 2.0, s.YVal(0), 1e-9)
	assert.InDelta(t, 1.0, s.Reco(1), 1e-9)
	assert.InDelta(t, 0.0, s.Slack(0), 1e-9)
}

func TestInfeasibleDetection(t *testing.T) {
	s := New()
	// x0 + x1 >= 3 cannot hold inside the unit box
	err := s.Initialize(abacus.OptMax,
		[]float64{1, 1}, []float64{0, 0}, []float64{1, 1},
		[]*abacus.Row{row([]int{0, 1}, []float64{1, 1}, abacus.Greater, 3)},
		nil, nil)
	require.NoError(t, err)

	status, err := s.Optimize(abacus.MethodDual)
	require.NoError(t, err)
	require.Equal(t, abacus.LPInfeasible, status)
	require.True(t, s.Infeasible())

	infeasRow, infeasCol, bInvRow, err := s.GetInfeas()
	require.NoError(t, err)
	assert.Equal(t, 0, infeasRow, "the slack of the covering row is infeasible")
	assert.Equal(t, -1, infeasCol)
	require.Len(t, bInvRow, 1)
}

func TestBasisRoundTrip(t *testing.T) {
	s := New()
	err := s.Initialize(abacus.OptMax,
		[]float64{3, 2}, []float64{0, 0}, []float64{4, 4},
		[]*abacus.Row{
			row([]int{0, 1}, []float64{1, 1}, abacus.Less, 5),
			row([]int{0}, []float64{1}, abacus.Less, 3),
		},
		nil, nil)
	require.NoError(t, err)

	status, err := s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	want := s.Value()

	varStat := []abacus.LPVarStat{s.LpVarStat(0), s.LpVarStat(1)}
	slackStat := []abacus.SlackStat{s.SlackStat(0), s.SlackStat(1)}
	require.NoError(t, s.LoadBasis(varStat, slackStat))
	require.NoError(t, s.SetSimplexIterationLimit(0))

	status, err = s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status, "the loaded basis is already optimal")
	assert.InDelta(t, want, s.Value(), 1e-9)
}

func TestIterationLimit(t *testing.T) {
	s := New()
	err := s.Initialize(abacus.OptMax,
		[]float64{1, 2, 3}, []float64{0, 0, 0}, []float64{9, 9, 9},
		[]*abacus.Row{
			row([]int{0, 1, 2}, []float64{1, 1, 1}, abacus.Less, 10),
			row([]int{1, 2}, []float64{1, 2}, abacus.Less, 8),
		},
		nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetSimplexIterationLimit(0))
	status, err := s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	assert.Equal(t, abacus.LPLimitReached, status)

	require.NoError(t, s.SetSimplexIterationLimit(-1))
	status, err = s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	assert.Equal(t, abacus.LPOptimal, status)
	limit, err := s.SimplexIterationLimit()
	require.NoError(t, err)
	assert.Equal(t, -1, limit)
}

func TestEditOperations(t *testing.T) {
	s := New()
	err := s.Initialize(abacus.OptMax,
		[]float64{1, 1}, []float64{0, 0}, []float64{2, 2},
		[]*abacus.Row{row([]int{0, 1}, []float64{1, 1}, abacus.Less, 3)},
		nil, nil)
	require.NoError(t, err)

	status, err := s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 3.0, s.Value(), 1e-9)

	// a cut tightens the problem; the dual warm start picks it up
	require.NoError(t, s.AddRows([]*abacus.Row{row([]int{0}, []float64{1}, abacus.Less, 1)}))
	require.Equal(t, 2, s.NRow())
	status, err = s.Optimize(abacus.MethodDual)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 3.0, s.Value(), 1e-9) // x0 = 1, x1 = 2

	require.NoError(t, s.ChangeUBound(1, 1))
	status, err = s.Optimize(abacus.MethodDual)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 2.0, s.Value(), 1e-9)

	require.NoError(t, s.RemoveRows([]int{1}))
	require.Equal(t, 1, s.NRow())
	status, err = s.Optimize(abacus.MethodPrimal)
	require.NoError(t, err)
	require.Equal(t, abacus.LPOptimal, status)
	assert.InDelta(t, 3.0, s.Value(), 1e-9) // without the cut x0 returns to two
}
