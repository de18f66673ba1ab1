// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/coin-or/abacus-go/abacus"
	"github.com/coin-or/abacus-go/solver/gonumlp"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type e2eHooks struct {
	abacus.DefaultSubHooks
}

func binaryMaster(t *testing.T, name string, sense abacus.OptSense, obj []float64, rows [][]float64, rowSense []abacus.CSense, rhs []float64, params abacus.Parameters) *abacus.Master {
	t.Helper()
	m := abacus.NewMaster(name, sense, params,
		abacus.WithSolverFactory(gonumlp.NewFactory()))

	vars := make([]abacus.Variable, len(obj))
	for i, c := range obj {
		vars[i] = abacus.NewNumVar(m, nil, i, false, false, c, 0, 1, abacus.Binary)
	}
	cons := make([]abacus.Constraint, len(rows))
	for i, row := range rows {
		var support []int
		var coeff []float64
		for j, a := range row {
			if a != 0 {
				support = append(support, j)
				coeff = append(coeff, a)
			}
		}
		cons[i] = abacus.NewRowCon(m, nil, rowSense[i], false, false, support, coeff, rhs[i])
	}
	m.InitializePools(cons, vars, 32, 32, false)
	return m
}

// Two binary variables cannot sum to three: the root LP is infeasible and
// the optimization ends without a feasible solution.
func TestInfeasibleRoot(t *testing.T) {
	m := binaryMaster(t, "infeasible", abacus.OptMax,
		[]float64{1, 1},
		[][]float64{{1, 1}},
		[]abacus.CSense{abacus.Greater},
		[]float64{3},
		abacus.DefaultParameters())

	status, err := m.Optimize(e2eHooks{})
	require.NoError(t, err)

	assert.Equal(t, abacus.StatusOptimal, status)
	assert.False(t, m.FeasibleFound())
	assert.InDelta(t, -m.Infinity(), m.DualBound(), 1)
	assert.InDelta(t, -m.Infinity(), m.PrimalBound(), 1)
	assert.Equal(t, 0, m.ExitCode())
}

// max x1 + x2 subject to x1 + x2 <= 1.5 over binaries: the root relaxation
// is fractional at 1.5, branching on the half-valued variable proves the
// optimum one.
func TestBinaryKnapsack(t *testing.T) {
	m := binaryMaster(t, "knapsack", abacus.OptMax,
		[]float64{1, 1},
		[][]float64{{1, 1}},
		[]abacus.CSense{abacus.Less},
		[]float64{1.5},
		abacus.DefaultParameters())

	status, err := m.Optimize(e2eHooks{})
	require.NoError(t, err)

	assert.Equal(t, abacus.StatusOptimal, status)
	require.True(t, m.FeasibleFound())
	assert.InDelta(t, 1.0, m.PrimalBound(), 1e-6)
	assert.InDelta(t, 1.0, m.DualBound(), 1e-6)
	assert.Equal(t, 0, m.ExitCode())
	assert.GreaterOrEqual(t, m.NSub(), 3, "the root must have branched")
}

// A larger 0/1 knapsack with a known optimum exercises deeper branching.
func TestKnapsackDeeper(t *testing.T) {
	// max 5a + 4b + 3c  s.t.  2a + 3b + c <= 5
	m := binaryMaster(t, "knapsack5", abacus.OptMax,
		[]float64{5, 4, 3},
		[][]float64{{2, 3, 1}},
		[]abacus.CSense{abacus.Less},
		[]float64{5},
		abacus.DefaultParameters())

	status, err := m.Optimize(e2eHooks{})
	require.NoError(t, err)

	assert.Equal(t, abacus.StatusOptimal, status)
	require.True(t, m.FeasibleFound())
	// a + b fills the capacity exactly for 9; a + c only reaches 8
	assert.InDelta(t, 9.0, m.PrimalBound(), 1e-6)
}

// Minimization: min x1 + x2 with x1 + x2 >= 1.5 over binaries forces two
// variables to one.
func TestMinimizationCover(t *testing.T) {
	m := binaryMaster(t, "cover", abacus.OptMin,
		[]float64{1, 1},
		[][]float64{{1, 1}},
		[]abacus.CSense{abacus.Greater},
		[]float64{1.5},
		abacus.DefaultParameters())

	status, err := m.Optimize(e2eHooks{})
	require.NoError(t, err)

	assert.Equal(t, abacus.StatusOptimal, status)
	require.True(t, m.FeasibleFound())
	assert.InDelta(t, 2.0, m.PrimalBound(), 1e-6)
}

// With elimination enabled, set variables leave the backend LP and the
// reported objective still contains their contribution.
func TestEliminateFixedSetEndToEnd(t *testing.T) {
	params := abacus.DefaultParameters()
	params.EliminateFixedSet = true
	m := binaryMaster(t, "elim-e2e", abacus.OptMax,
		[]float64{1, 1},
		[][]float64{{1, 1}},
		[]abacus.CSense{abacus.Less},
		[]float64{1.5},
		params)

	status, err := m.Optimize(e2eHooks{})
	require.NoError(t, err)
	assert.Equal(t, abacus.StatusOptimal, status)
	assert.InDelta(t, 1.0, m.PrimalBound(), 1e-6)
}
