// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSolver records the LP the view hands to the backend.
type mockSolver struct {
	sense     OptSense
	obj       []float64
	lb, ub    []float64
	rows      []*Row
	rhs       []float64
	value     float64
	xVal      []float64
	varStat   []LPVarStat
	slackStat []SlackStat
}

var _ LPSolver = (*mockSolver)(nil)

func (s *mockSolver) Initialize(sense OptSense, obj, lb, ub []float64, rows []*Row, varStat []LPVarStat, slackStat []SlackStat) error {
	s.sense = sense
	s.obj = append([]float64(nil), obj...)
	s.lb = append([]float64(nil), lb...)
	s.ub = append([]float64(nil), ub...)
	s.rows = rows
	s.rhs = s.rhs[:0]
	for _, r := range rows {
		s.rhs = append(s.rhs, r.Rhs())
	}
	s.varStat = varStat
	s.slackStat = slackStat
	s.xVal = make([]float64, len(obj))
	return nil
}

func (s *mockSolver) AddRows(rows []*Row) error {
	for _, r := range rows {
		s.rows = append(s.rows, r)
		s.rhs = append(s.rhs, r.Rhs())
	}
	return nil
}

func (s *mockSolver) RemoveRows(indices []int) error {
	s.rows = leftShift(s.rows, indices)
	s.rhs = leftShift(s.rhs, indices)
	return nil
}

func (s *mockSolver) AddCols(cols []*Column) error {
	for _, c := range cols {
		s.obj = append(s.obj, c.Obj())
		s.lb = append(s.lb, c.LBound())
		s.ub = append(s.ub, c.UBound())
		s.xVal = append(s.xVal, 0)
	}
	return nil
}

func (s *mockSolver) RemoveCols(indices []int) error {
	s.obj = leftShift(s.obj, indices)
	s.lb = leftShift(s.lb, indices)
	s.ub = leftShift(s.ub, indices)
	s.xVal = leftShift(s.xVal, indices)
	return nil
}

func (s *mockSolver) ChangeLBound(col int, lb float64) error { s.lb[col] = lb; return nil }
func (s *mockSolver) ChangeUBound(col int, ub float64) error { s.ub[col] = ub; return nil }
func (s *mockSolver) LBound(col int) float64                 { return s.lb[col] }
func (s *mockSolver) UBound(col int) float64                 { return s.ub[col] }
func (s *mockSolver) ChangeRhs(rhs []float64) error          { copy(s.rhs, rhs); return nil }
func (s *mockSolver) Rhs(row int) float64                    { return s.rhs[row] }

func (s *mockSolver) LoadBasis([]LPVarStat, []SlackStat) error { return nil }
func (s *mockSolver) Optimize(LPMethod) (OptStat, error)       { return LPOptimal, nil }

func (s *mockSolver) Value() float64          { return s.value }
func (s *mockSolver) XVal(col int) float64    { return s.xVal[col] }
func (s *mockSolver) BarXVal(col int) float64 { return s.xVal[col] }
func (s *mockSolver) Reco(col int) float64    { return 0 }
func (s *mockSolver) YVal(row int) float64    { return 0 }
func (s *mockSolver) Slack(row int) float64   { return 0 }

func (s *mockSolver) LpVarStat(col int) LPVarStat { return AtLowerBound }
func (s *mockSolver) SlackStat(row int) SlackStat { return SlackBasic }
func (s *mockSolver) BasisAvailable() bool        { return true }
func (s *mockSolver) Infeasible() bool            { return false }

func (s *mockSolver) GetInfeas() (int, int, []float64, error) { return -1, -1, nil, nil }

func (s *mockSolver) NRow() int { return len(s.rows) }
func (s *mockSolver) NCol() int { return len(s.obj) }
func (s *mockSolver) NNZ() int  { return 0 }

func (s *mockSolver) SetSimplexIterationLimit(int) error { return nil }
func (s *mockSolver) SimplexIterationLimit() (int, error) { return -1, nil }
func (s *mockSolver) PivotSlackVariableIn([]int) error    { return nil }

// elimFixture builds a two-variable subproblem with x1 fixed to its upper
// bound three and non-basic, under a single row x0 + 2 x1 <= 10.
func elimFixture(t *testing.T, eliminate bool) (*Master, *Sub, *mockSolver) {
	t.Helper()
	params := DefaultParameters()
	params.EliminateFixedSet = eliminate
	m := NewMaster("elim", OptMax, params)

	vars := []Variable{
		testNumVar(m, 0, 1, 0, 10, Integer),
		testNumVar(m, 1, 2, 0, 3, Integer),
	}
	cons := []Constraint{
		testRowCon(m, []int{0, 1}, []float64{1, 2}, Less, 10),
	}
	m.InitializePools(cons, vars, 8, 8, false)

	s := NewRootSub(m, DefaultSubHooks{})
	require.NoError(t, s.initializeRoot(8, 8))

	s.fsVarStat[1].SetStatus(FixedToUpperBound)
	s.Variable(1).FsVarStat().SetStatus(FixedToUpperBound)
	s.lpVarStat[1] = AtUpperBound

	return m, s, &mockSolver{value: 4}
}

func TestLPSubEliminatesFixedVariable(t *testing.T) {
	m, s, solver := elimFixture(t, true)
	_ = m

	lp, err := NewLPSub(s.master, s, solver)
	require.NoError(t, err)

	// the backend sees one column and the adjusted right-hand side
	require.Equal(t, 1, solver.NCol())
	assert.Equal(t, []float64{1}, solver.obj)
	require.Len(t, solver.rows, 1)
	assert.InDelta(t, 10-2*3, solver.rows[0].Rhs(), 1e-12)

	// the view synthesizes the eliminated variable
	assert.True(t, lp.Eliminated(1))
	assert.False(t, lp.Eliminated(0))
	assert.InDelta(t, 3.0, lp.XVal(1), 1e-12)
	assert.Equal(t, Eliminated, lp.LpVarStat(1))
	assert.Equal(t, 0.0, lp.Reco(1))
	assert.InDelta(t, 3.0, lp.LBound(1), 1e-12)
	assert.InDelta(t, 3.0, lp.UBound(1), 1e-12)

	// the objective contribution of the fixed variable is added back
	assert.InDelta(t, solver.Value()+2*3, lp.Value(), 1e-12)

	// bound edits on the eliminated column are refused loudly
	assert.Panics(t, func() { lp.ChangeLBound(1, 0) })
}

func TestLPSubKeepsFixedVariableWhenDisabled(t *testing.T) {
	_, s, solver := elimFixture(t, false)

	lp, err := NewLPSub(s.master, s, solver)
	require.NoError(t, err)

	require.Equal(t, 2, solver.NCol())
	assert.False(t, lp.Eliminated(1))
	// the column stays, pinned to the fixed value
	assert.InDelta(t, 3.0, solver.lb[1], 1e-12)
	assert.InDelta(t, 3.0, solver.ub[1], 1e-12)
	assert.InDelta(t, 10.0, solver.rows[0].Rhs(), 1e-12)
}

func TestLPSubVoidLhsInfeasible(t *testing.T) {
	params := DefaultParameters()
	params.EliminateFixedSet = true
	m := NewMaster("void", OptMax, params)

	vars := []Variable{
		testNumVar(m, 0, 1, 0, 1, Binary),
		testNumVar(m, 1, 1, 0, 1, Binary),
		testNumVar(m, 2, 1, 0, 1, Binary), // keeps the LP non-empty
	}
	cons := []Constraint{
		testRowCon(m, []int{0, 1}, []float64{1, 1}, Greater, 3),
	}
	m.InitializePools(cons, vars, 8, 8, false)

	s := NewRootSub(m, DefaultSubHooks{})
	require.NoError(t, s.initializeRoot(8, 8))
	for i := 0; i < 2; i++ {
		s.fsVarStat[i].SetStatus(FixedToLowerBound)
		s.lpVarStat[i] = AtLowerBound
	}

	lp, err := NewLPSub(m, s, &mockSolver{})
	require.NoError(t, err)

	// both row variables are eliminated at zero: the left-hand side is
	// void and x0 + x1 >= 3 cannot be satisfied
	require.Len(t, lp.InfeasCons(), 1)
	assert.Equal(t, TooSmall, lp.InfeasCons()[0].Infeas())
	assert.True(t, lp.Infeasible())
}
