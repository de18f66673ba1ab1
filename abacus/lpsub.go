// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"fmt"
	"math"
)

// LPSub bridges a subproblem's active sets to the LP backend. Fixed and set
// variables whose last basis status is non-basic are eliminated from the
// backend LP: their objective contribution accumulates in valueAdd and the
// right-hand sides of the rows they appear in are adjusted. All indices the
// subproblem sees are original active-variable indices; orig2lp and lp2orig
// translate to and from backend columns.
type LPSub struct {
	master *Master
	sub    *Sub
	solver LPSolver

	orig2lp    []int // -1 for eliminated variables
	lp2orig    []int
	infeasCons []*InfeasCon
	valueAdd   float64
	nOrigVar   int
}

// NewLPSub builds the LP of sub on top of solver and loads it, including
// the basis inherited from the father where available. Constraints whose
// left-hand side became void and infeasible are collected in InfeasCons.
func NewLPSub(master *Master, sub *Sub, solver LPSolver) (*LPSub, error) {
	lp := &LPSub{master: master, sub: sub, solver: solver}
	if err := lp.initialize(); err != nil {
		return nil, err
	}
	return lp, nil
}

func (lp *LPSub) initialize() error {
	sub := lp.sub
	nCon := sub.NCon()
	nVar := sub.NVar()

	// generate the row format of the active constraints
	rows := make([]*Row, 0, nCon)
	slackStat := make([]SlackStat, 0, nCon)
	for c := 0; c < nCon; c++ {
		var row Row
		GenRow(sub.Constraint(c), sub.actVar, &row)
		rows = append(rows, row.Copy())
		slackStat = append(slackStat, sub.slackStat[c])
	}

	// mark eliminable variables, build objective and bounds
	//
	// If every variable could be eliminated the last one is kept anyway:
	// backends cannot load a problem with zero columns, and emulating one
	// would complicate every later edit.
	marked := make([]bool, nVar)
	lp.nOrigVar = nVar
	lp.valueAdd = 0
	lp.orig2lp = make([]int, nVar)
	lp.lp2orig = lp.lp2orig[:0]

	obj := make([]float64, 0, nVar)
	lBound := make([]float64, 0, nVar)
	uBound := make([]float64, 0, nVar)
	varStat := make([]LPVarStat, 0, nVar)

	nCol := 0
	for i := 0; i < nVar; i++ {
		v := sub.Variable(i)
		switch {
		case sub.fsVarStat[i].FixedOrSet() && lp.Eliminable(i) && (nCol > 0 || i != nVar-1):
			marked[i] = true
			lp.valueAdd += v.Obj() * lp.elimVal(i)
			lp.orig2lp[i] = -1
		case sub.fsVarStat[i].FixedOrSet():
			// not eliminated, pin both bounds to the fixed value
			lp.orig2lp[i] = nCol
			lp.lp2orig = append(lp.lp2orig, i)
			obj = append(obj, v.Obj())
			val := lp.elimVal(i)
			lBound = append(lBound, val)
			uBound = append(uBound, val)
			varStat = append(varStat, sub.lpVarStat[i])
			nCol++
		default:
			lp.orig2lp[i] = nCol
			lp.lp2orig = append(lp.lp2orig, i)
			obj = append(obj, v.Obj())
			lBound = append(lBound, sub.lBound[i])
			uBound = append(uBound, sub.uBound[i])
			varStat = append(varStat, sub.lpVarStat[i])
			nCol++
		}
	}

	// strip eliminated variables from the rows, adjust right-hand sides,
	// collect constraints turned infeasible
	lp.infeasCons = lp.infeasCons[:0]
	for c := 0; c < nCon; c++ {
		row := rows[c]
		lp.stripEliminated(row, marked)
		if row.NNZ() == 0 {
			if infeas := sub.Constraint(c).VoidLhsViolated(row.Rhs()); infeas != Feasible {
				lp.infeasCons = append(lp.infeasCons, NewInfeasCon(sub.Constraint(c), infeas))
			}
		}
		row.Rename(lp.orig2lp)
	}

	return lp.solver.Initialize(lp.master.OptSense(), obj, lBound, uBound, rows, varStat, slackStat)
}

// stripEliminated removes the marked variables from row and reduces its
// right-hand side by their contribution.
func (lp *LPSub) stripEliminated(row *Row, marked []bool) {
	var del []int
	rhsDelta := 0.0
	nnz := row.NNZ()
	for i := 0; i < nnz; i++ {
		if marked[row.Support(i)] {
			del = append(del, i)
			rhsDelta += row.Coeff(i) * lp.elimVal(row.Support(i))
		}
	}
	row.DelInd(del, rhsDelta)
}

// Eliminable is the single elimination predicate: elimination must be
// enabled, the variable must be fixed or set, and it must have left the
// basis, so dropping its column cannot disturb a warm start.
func (lp *LPSub) Eliminable(i int) bool {
	if !lp.master.parameters.EliminateFixedSet {
		return false
	}
	if !lp.sub.fsVarStat[i].FixedOrSet() {
		return false
	}
	return !lp.sub.lpVarStat[i].IsBasic()
}

// Eliminated reports whether active variable i is absent from the backend.
func (lp *LPSub) Eliminated(i int) bool { return lp.orig2lp[i] == -1 }

// elimVal returns the value a fixed or set variable contributes.
func (lp *LPSub) elimVal(i int) float64 {
	sub := lp.sub
	switch sub.fsVarStat[i].Status() {
	case SetToLowerBound:
		return sub.lBound[i]
	case FixedToLowerBound:
		return sub.Variable(i).LBound()
	case SetToUpperBound:
		return sub.uBound[i]
	case FixedToUpperBound:
		return sub.Variable(i).UBound()
	case SetTo:
		return sub.fsVarStat[i].Value()
	case FixedTo:
		return sub.Variable(i).FsVarStat().Value()
	default:
		panic("abacus: lpsub: elimVal of a free variable")
	}
}

func elimValStat(stat *FSVarStat, lb, ub float64) float64 {
	switch stat.Status() {
	case SetToLowerBound, FixedToLowerBound:
		return lb
	case SetToUpperBound, FixedToUpperBound:
		return ub
	case SetTo, FixedTo:
		return stat.Value()
	default:
		panic("abacus: lpsub: elimVal of a free variable")
	}
}

// Optimize solves the LP. An infeasible result from a non-dual method is
// re-solved dual so that a dual feasible basis is available for pricing
// based feasibility restoration.
func (lp *LPSub) Optimize(method LPMethod) (OptStat, error) {
	if len(lp.infeasCons) > 0 {
		return LPError, fmt.Errorf("abacus: lpsub: optimize with infeasible constraints")
	}
	status, err := lp.solver.Optimize(method)
	if err != nil {
		return status, err
	}
	if status == LPInfeasible && method != MethodDual {
		return lp.Optimize(MethodDual)
	}
	return status, nil
}

// Value returns the LP value plus the contribution of the eliminated
// variables.
func (lp *LPSub) Value() float64 { return lp.solver.Value() + lp.valueAdd }

// XVal returns the primal value of active variable i, synthesizing the
// fixed value for eliminated variables.
func (lp *LPSub) XVal(i int) float64 {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.XVal(c)
	}
	return lp.elimVal(i)
}

// BarXVal is XVal for the barrier solution.
func (lp *LPSub) BarXVal(i int) float64 {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.BarXVal(c)
	}
	return lp.elimVal(i)
}

// Reco returns the reduced cost of active variable i; eliminated variables
// report zero.
func (lp *LPSub) Reco(i int) float64 {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.Reco(c)
	}
	return 0.0
}

// LpVarStat returns the basis status of active variable i.
func (lp *LPSub) LpVarStat(i int) LPVarStat {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.LpVarStat(c)
	}
	return Eliminated
}

// LBound returns the lower bound of active variable i in the LP.
func (lp *LPSub) LBound(i int) float64 {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.LBound(c)
	}
	return lp.elimVal(i)
}

// UBound returns the upper bound of active variable i in the LP.
func (lp *LPSub) UBound(i int) float64 {
	if c := lp.orig2lp[i]; c != -1 {
		return lp.solver.UBound(c)
	}
	return lp.elimVal(i)
}

func (lp *LPSub) YVal(row int) float64       { return lp.solver.YVal(row) }
func (lp *LPSub) Slack(row int) float64      { return lp.solver.Slack(row) }
func (lp *LPSub) SlackStat(row int) SlackStat { return lp.solver.SlackStat(row) }
func (lp *LPSub) BasisAvailable() bool       { return lp.solver.BasisAvailable() }

// Infeasible reports whether the backend LP is infeasible or a constraint
// with a void left-hand side violates its right-hand side.
func (lp *LPSub) Infeasible() bool {
	return lp.solver.Infeasible() || len(lp.infeasCons) > 0
}

// InfeasCons returns the constraints turned infeasible by elimination.
func (lp *LPSub) InfeasCons() []*InfeasCon { return lp.infeasCons }

// GetInfeas resolves the infeasible basic variable of the backend,
// translating a structural column back to its original index.
func (lp *LPSub) GetInfeas() (infeasRow, infeasCol int, bInvRow []float64, err error) {
	infeasRow, infeasCol, bInvRow, err = lp.solver.GetInfeas()
	if err != nil {
		return
	}
	if infeasCol >= 0 {
		infeasCol = lp.lp2orig[infeasCol]
	}
	return
}

// TrueNCol returns the number of backend columns, i.e. the non-eliminated
// active variables.
func (lp *LPSub) TrueNCol() int { return lp.solver.NCol() }

// TrueNNZ returns the number of backend nonzeros.
func (lp *LPSub) TrueNNZ() int { return lp.solver.NNZ() }

// NRow returns the number of backend rows.
func (lp *LPSub) NRow() int { return lp.solver.NRow() }

// AddCons generates the rows of the new constraints, eliminates variables
// from them, renames their support to backend columns and appends them. A
// new row whose left-hand side is void and infeasible cannot be repaired
// mid-loop and is an invariant violation.
func (lp *LPSub) AddCons(newCons []Constraint) error {
	sub := lp.sub
	rows := make([]*Row, 0, len(newCons))
	for _, c := range newCons {
		var row Row
		GenRow(c, sub.actVar, &row)

		var del []int
		rhsDelta := 0.0
		for i := 0; i < row.NNZ(); i++ {
			if lp.Eliminated(row.Support(i)) {
				del = append(del, i)
				rhsDelta += row.Coeff(i) * lp.elimVal(row.Support(i))
			}
		}
		row.DelInd(del, rhsDelta)
		row.Rename(lp.orig2lp)

		if row.NNZ() == 0 {
			if infeas := c.VoidLhsViolated(row.Rhs()); infeas != Feasible {
				lp.infeasCons = append(lp.infeasCons, NewInfeasCon(c, infeas))
				panic("abacus: lpsub: infeasible constraint added, all nonzero variables eliminated")
			}
		}
		rows = append(rows, row.Copy())
	}
	return lp.solver.AddRows(rows)
}

// RemoveCons forwards the removal of the given rows to the backend.
func (lp *LPSub) RemoveCons(indices []int) error {
	return lp.solver.RemoveRows(indices)
}

// AddVars classifies each added variable as eliminable or not: eliminable
// additions fold into valueAdd and the row right-hand sides, the others
// have their column generated against the active constraints and appended.
func (lp *LPSub) AddVars(vars []Variable, fsVarStat []*FSVarStat, lb, ub []float64) error {
	sub := lp.sub
	nCon := sub.NCon()

	rhsDelta := make([]float64, nCon)
	modifyRhs := false
	eps := lp.master.Eps()

	type colAdd struct {
		v      Variable
		lb, ub float64
	}
	var added []colAdd

	n := lp.solver.NCol()
	for i, v := range vars {
		switch {
		case fsVarStat[i].FixedOrSet() && lp.master.parameters.EliminateFixedSet:
			val := elimValStat(fsVarStat[i], lb[i], ub[i])
			lp.valueAdd += v.Obj() * val
			lp.orig2lp = append(lp.orig2lp, -1)
			lp.nOrigVar++
			for c := 0; c < nCon; c++ {
				coeff := sub.Constraint(c).Coeff(v)
				if math.Abs(coeff) > eps {
					rhsDelta[c] += val * coeff
					modifyRhs = true
				}
			}
		case fsVarStat[i].FixedOrSet():
			val := elimValStat(fsVarStat[i], lb[i], ub[i])
			lp.orig2lp = append(lp.orig2lp, n)
			lp.lp2orig = append(lp.lp2orig, lp.nOrigVar)
			lp.nOrigVar++
			added = append(added, colAdd{v, val, val})
			n++
		default:
			lp.orig2lp = append(lp.orig2lp, n)
			lp.lp2orig = append(lp.lp2orig, lp.nOrigVar)
			lp.nOrigVar++
			added = append(added, colAdd{v, lb[i], ub[i]})
			n++
		}
	}

	cols := make([]*Column, 0, len(added))
	for _, a := range added {
		var col Column
		GenColumn(a.v, sub.actCon, &col)
		c := col.Copy()
		c.SetLBound(a.lb)
		c.SetUBound(a.ub)
		cols = append(cols, c)
	}
	if err := lp.solver.AddCols(cols); err != nil {
		return err
	}

	if modifyRhs {
		newRhs := make([]float64, nCon)
		for c := 0; c < nCon; c++ {
			newRhs[c] = lp.solver.Rhs(c) - rhsDelta[c]
		}
		return lp.solver.ChangeRhs(newRhs)
	}
	return nil
}

// RemoveVars splits the removed variables into eliminated and backend
// columns: removing an eliminated variable reverses its valueAdd and
// right-hand side adjustments, backend columns are removed explicitly. The
// index maps are rebuilt afterwards. The indices must be strictly
// increasing and refer to the active set before the removal.
func (lp *LPSub) RemoveVars(indices []int) error {
	sub := lp.sub
	nCon := sub.NCon()
	eps := lp.master.Eps()

	var lpCols []int
	rhsDelta := make([]float64, nCon)
	modifyRhs := false

	removed := make(map[int]bool, len(indices))
	for _, i := range indices {
		removed[i] = true
		if c := lp.orig2lp[i]; c == -1 {
			v := sub.Variable(i)
			val := lp.elimVal(i)
			lp.valueAdd -= v.Obj() * val
			for c := 0; c < nCon; c++ {
				coeff := sub.Constraint(c).Coeff(v)
				if math.Abs(coeff) > eps {
					rhsDelta[c] += coeff * val
					modifyRhs = true
				}
			}
		} else {
			lpCols = append(lpCols, c)
		}
	}

	if modifyRhs {
		newRhs := make([]float64, nCon)
		for c := 0; c < nCon; c++ {
			newRhs[c] = lp.solver.Rhs(c) + rhsDelta[c]
		}
		if err := lp.solver.ChangeRhs(newRhs); err != nil {
			return err
		}
	}

	if len(lpCols) > 0 {
		if err := lp.solver.RemoveCols(lpCols); err != nil {
			return err
		}
	}

	// rebuild both maps; backend removal preserves the relative column
	// order of the survivors
	old := lp.orig2lp
	lp.orig2lp = lp.orig2lp[:0]
	lp.lp2orig = lp.lp2orig[:0]
	nCol := 0
	for i, c := range old {
		if removed[i] {
			continue
		}
		if c == -1 {
			lp.orig2lp = append(lp.orig2lp, -1)
			continue
		}
		lp.orig2lp = append(lp.orig2lp, nCol)
		lp.lp2orig = append(lp.lp2orig, len(lp.orig2lp)-1)
		nCol++
	}
	lp.nOrigVar = len(lp.orig2lp)
	return nil
}

// ChangeLBound changes the lower bound of active variable i. Changing the
// bound of an eliminated variable is an invariant violation; a set or
// fixed variable at a different bound would have been a contradiction
// earlier.
func (lp *LPSub) ChangeLBound(i int, newLb float64) {
	c := lp.orig2lp[i]
	if c == -1 {
		panic(fmt.Sprintf("abacus: lpsub: changeLBound(%d, %g): variable is eliminated", i, newLb))
	}
	if err := lp.solver.ChangeLBound(c, newLb); err != nil {
		panic(err)
	}
}

// ChangeUBound changes the upper bound of active variable i.
func (lp *LPSub) ChangeUBound(i int, newUb float64) {
	c := lp.orig2lp[i]
	if c == -1 {
		panic(fmt.Sprintf("abacus: lpsub: changeUBound(%d, %g): variable is eliminated", i, newUb))
	}
	if err := lp.solver.ChangeUBound(c, newUb); err != nil {
		panic(err)
	}
}

// LoadBasis installs a basis given over original indices, filtering out
// the eliminated variables.
func (lp *LPSub) LoadBasis(varStat []LPVarStat, slackStat []SlackStat) error {
	colStat := make([]LPVarStat, 0, lp.solver.NCol())
	for i, s := range varStat {
		if !lp.Eliminated(i) {
			colStat = append(colStat, s)
		}
	}
	return lp.solver.LoadBasis(colStat, slackStat)
}

// Solver exposes the backend, e.g. for iteration limits during strong
// branching.
func (lp *LPSub) Solver() LPSolver { return lp.solver }
