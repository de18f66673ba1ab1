// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gonumlp is a reference LP backend for the branch-and-cut
// framework, built on gonum's dense linear algebra. It implements a
// bounded-variable revised simplex with a primal and a dual phase, exact
// basis bookkeeping, duals and reduced costs, and the basis-inverse row
// required for pricing based feasibility restoration.
//
// The backend favors clarity over speed: the basis is refactorized with a
// fresh LU decomposition every iteration. It is intended for tests,
// examples and small instances; production runs should bring an external
// simplex implementation behind the same interface.
package gonumlp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/coin-or/abacus-go/abacus"
)

const pivotTol = 1e-9

// Solver implements abacus.LPSolver.
type Solver struct {
	sense abacus.OptSense

	// row-major constraint matrix over structural columns
	a      [][]float64
	rhs    []float64
	senses []abacus.CSense

	obj []float64
	lb  []float64
	ub  []float64

	// total variable order: structural columns 0..n-1, slack of row i at
	// n+i; slack bounds encode the row sense
	basic      []int // basis position -> variable
	inBasisPos []int // variable -> basis position or -1
	atUpper    []bool

	x    []float64 // values of all variables incl. slacks
	y    []float64 // duals in the original sense
	d    []float64 // reduced costs in the original sense
	tol  float64

	value      float64
	lastStatus abacus.OptStat
	basisOK    bool

	iterLimit int

	infeasPos  int       // basis position of the infeasible variable
	binvRow    []float64 // row of the basis inverse for that position
}

// New returns an empty solver.
func New() *Solver {
	return &Solver{tol: 1e-7, iterLimit: -1, infeasPos: -1}
}

// NewFactory returns a factory handing out fresh solvers, suitable for
// abacus.WithSolverFactory.
func NewFactory() func() abacus.LPSolver {
	return func() abacus.LPSolver { return New() }
}

var _ abacus.LPSolver = (*Solver)(nil)

func (s *Solver) nStruct() int { return len(s.obj) }
func (s *Solver) nTotal() int  { return len(s.obj) + len(s.rhs) }

// slack bounds follow the row sense: a*x + slack = rhs.
func (s *Solver) slackBounds(row int) (lo, hi float64) {
	switch s.senses[row] {
	case abacus.Less:
		return 0, math.Inf(1)
	case abacus.Greater:
		return math.Inf(-1), 0
	default:
		return 0, 0
	}
}

func (s *Solver) bounds(v int) (lo, hi float64) {
	if v < s.nStruct() {
		return s.lb[v], s.ub[v]
	}
	return s.slackBounds(v - s.nStruct())
}

// column of variable v over the rows.
func (s *Solver) column(v int, out []float64) {
	n := s.nStruct()
	for i := range out {
		if v < n {
			out[i] = s.a[i][v]
		} else if v-n == i {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

func (s *Solver) cost(v int) float64 {
	if v >= s.nStruct() {
		return 0
	}
	if s.sense.Max() {
		return -s.obj[v]
	}
	return s.obj[v]
}

func (s *Solver) Initialize(sense abacus.OptSense, obj, lBound, uBound []float64, rows []*abacus.Row, varStat []abacus.LPVarStat, slackStat []abacus.SlackStat) error {
	if sense == abacus.OptUnknown {
		return errors.New("gonumlp: optimization sense unknown")
	}
	n := len(obj)
	s.sense = sense
	s.obj = append([]float64(nil), obj...)
	s.lb = append([]float64(nil), lBound...)
	s.ub = append([]float64(nil), uBound...)

	s.a = s.a[:0]
	s.rhs = s.rhs[:0]
	s.senses = s.senses[:0]
	for _, row := range rows {
		dense := make([]float64, n)
		for i := 0; i < row.NNZ(); i++ {
			dense[row.Support(i)] = row.Coeff(i)
		}
		s.a = append(s.a, dense)
		s.rhs = append(s.rhs, row.Rhs())
		s.senses = append(s.senses, row.Sense())
	}

	s.basisOK = false
	s.lastStatus = abacus.LPError
	if varStat != nil && slackStat != nil {
		// a loaded basis may be partial (fresh nodes carry Unknown); it
		// is only installed when it is square
		_ = s.LoadBasis(varStat, slackStat)
	}
	return nil
}

func (s *Solver) AddRows(rows []*abacus.Row) error {
	n := s.nStruct()
	for _, row := range rows {
		dense := make([]float64, n)
		for i := 0; i < row.NNZ(); i++ {
			dense[row.Support(i)] = row.Coeff(i)
		}
		s.a = append(s.a, dense)
		s.rhs = append(s.rhs, row.Rhs())
		s.senses = append(s.senses, row.Sense())
	}
	if s.basisOK {
		// keep the warm basis: the new slacks enter basic, which is the
		// textbook dual-simplex warm start after a cut
		for i := len(s.rhs) - len(rows); i < len(s.rhs); i++ {
			s.basic = append(s.basic, n+i)
		}
		s.renumberSlacksAfterEdit(0)
	}
	return nil
}

func (s *Solver) RemoveRows(indices []int) error {
	if err := checkIncreasing(indices, len(s.rhs)); err != nil {
		return err
	}
	s.a = deleteAt(s.a, indices)
	s.rhs = deleteAt(s.rhs, indices)
	s.senses = deleteAt(s.senses, indices)
	s.basisOK = false
	return nil
}

func (s *Solver) AddCols(cols []*abacus.Column) error {
	oldN := s.nStruct()
	for _, col := range cols {
		dense := make([]float64, len(s.rhs))
		for i := 0; i < col.NNZ(); i++ {
			dense[col.Support(i)] = col.Coeff(i)
		}
		for r := range s.a {
			s.a[r] = append(s.a[r], dense[r])
		}
		s.obj = append(s.obj, col.Obj())
		s.lb = append(s.lb, col.LBound())
		s.ub = append(s.ub, col.UBound())
	}
	if s.basisOK {
		s.renumberSlacksAfterEdit(s.nStruct() - oldN)
	}
	return nil
}

func (s *Solver) RemoveCols(indices []int) error {
	if err := checkIncreasing(indices, s.nStruct()); err != nil {
		return err
	}
	for r := range s.a {
		s.a[r] = deleteAt(s.a[r], indices)
	}
	s.obj = deleteAt(s.obj, indices)
	s.lb = deleteAt(s.lb, indices)
	s.ub = deleteAt(s.ub, indices)
	s.basisOK = false
	return nil
}

// renumberSlacksAfterEdit rebuilds the slack numbering of a kept basis
// after the structural column count changed.
func (s *Solver) renumberSlacksAfterEdit(added int) {
	// the basic list stores variable numbers; slack numbers depend on the
	// structural count, so shift them past the added columns and then
	// recompute positions from scratch
	if added > 0 {
		oldN := s.nStruct() - added
		for p, v := range s.basic {
			if v >= oldN {
				s.basic[p] = v + added
			}
		}
		atUpper := make([]bool, s.nTotal())
		copy(atUpper, s.atUpper[:oldN])
		copy(atUpper[oldN+added:], s.atUpper[oldN:])
		s.atUpper = atUpper
	}
	s.rebuildPositions()
}

func (s *Solver) rebuildPositions() {
	total := s.nTotal()
	if cap(s.inBasisPos) < total {
		s.inBasisPos = make([]int, total)
	}
	s.inBasisPos = s.inBasisPos[:total]
	for i := range s.inBasisPos {
		s.inBasisPos[i] = -1
	}
	for p, v := range s.basic {
		if v >= total {
			s.basisOK = false
			return
		}
		s.inBasisPos[v] = p
	}
	if cap(s.atUpper) < total {
		old := s.atUpper
		s.atUpper = make([]bool, total)
		copy(s.atUpper, old)
	}
	s.atUpper = s.atUpper[:total]
}

func (s *Solver) ChangeLBound(col int, lb float64) error {
	if col < 0 || col >= s.nStruct() {
		return fmt.Errorf("gonumlp: column %d out of range", col)
	}
	s.lb[col] = lb
	return nil
}

func (s *Solver) ChangeUBound(col int, ub float64) error {
	if col < 0 || col >= s.nStruct() {
		return fmt.Errorf("gonumlp: column %d out of range", col)
	}
	s.ub[col] = ub
	return nil
}

func (s *Solver) LBound(col int) float64 { return s.lb[col] }
func (s *Solver) UBound(col int) float64 { return s.ub[col] }

func (s *Solver) ChangeRhs(rhs []float64) error {
	if len(rhs) != len(s.rhs) {
		return fmt.Errorf("gonumlp: rhs length %d, have %d rows", len(rhs), len(s.rhs))
	}
	copy(s.rhs, rhs)
	return nil
}

func (s *Solver) Rhs(row int) float64 { return s.rhs[row] }

func (s *Solver) LoadBasis(varStat []abacus.LPVarStat, slackStat []abacus.SlackStat) error {
	if len(varStat) != s.nStruct() || len(slackStat) != len(s.rhs) {
		return fmt.Errorf("gonumlp: basis dimensions do not match the LP")
	}
	n := s.nStruct()
	basic := make([]int, 0, len(s.rhs))
	atUpper := make([]bool, s.nTotal())
	for j, st := range varStat {
		switch st {
		case abacus.Basic:
			basic = append(basic, j)
		case abacus.AtUpperBound:
			atUpper[j] = true
		}
	}
	for i, st := range slackStat {
		if st == abacus.SlackBasic {
			basic = append(basic, n+i)
		} else if s.senses[i] == abacus.Greater {
			// non-basic slack of a >= row rests at its upper bound zero
			atUpper[n+i] = true
		}
	}
	if len(basic) != len(s.rhs) {
		return fmt.Errorf("gonumlp: basis has %d basic variables for %d rows", len(basic), len(s.rhs))
	}
	s.basic = basic
	s.atUpper = atUpper
	s.rebuildPositions()
	s.basisOK = true
	return nil
}

// slackBasis installs the all-slack basis with non-basic columns at their
// cost-preferred bound, which is dual feasible whenever every column with
// a nonzero cost has the corresponding finite bound.
func (s *Solver) slackBasis() {
	m := len(s.rhs)
	n := s.nStruct()
	s.basic = s.basic[:0]
	for i := 0; i < m; i++ {
		s.basic = append(s.basic, n+i)
	}
	s.rebuildPositions()
	for j := 0; j < n; j++ {
		c := s.cost(j)
		switch {
		case c >= 0 && !math.IsInf(s.lb[j], -1):
			s.atUpper[j] = false
		case c < 0 && !math.IsInf(s.ub[j], 1):
			s.atUpper[j] = true
		case !math.IsInf(s.lb[j], -1):
			s.atUpper[j] = false
		default:
			s.atUpper[j] = true
		}
	}
	for i := 0; i < m; i++ {
		// slacks of >= rows rest at their upper bound zero when non-basic
		s.atUpper[n+i] = s.senses[i] == abacus.Greater
	}
	s.basisOK = true
}

// factorize returns an LU of the current basis matrix.
func (s *Solver) factorize() (*mat.LU, error) {
	m := len(s.rhs)
	b := mat.NewDense(m, m, nil)
	col := make([]float64, m)
	for p, v := range s.basic {
		s.column(v, col)
		for i := 0; i < m; i++ {
			b.Set(i, p, col[i])
		}
	}
	var lu mat.LU
	lu.Factorize(b)
	if math.Abs(lu.Det()) < 1e-300 {
		return nil, errors.New("gonumlp: singular basis")
	}
	return &lu, nil
}

// computeX fills s.x: non-basic variables at their bounds, basic variables
// from the solve B xB = rhs - N xN.
func (s *Solver) computeX(lu *mat.LU) error {
	m := len(s.rhs)
	total := s.nTotal()
	if cap(s.x) < total {
		s.x = make([]float64, total)
	}
	s.x = s.x[:total]

	for v := 0; v < total; v++ {
		if s.inBasisPos[v] >= 0 {
			continue
		}
		lo, hi := s.bounds(v)
		switch {
		case s.atUpper[v] && !math.IsInf(hi, 1):
			s.x[v] = hi
		case !math.IsInf(lo, -1):
			s.x[v] = lo
		default:
			s.x[v] = 0
		}
	}

	r := make([]float64, m)
	copy(r, s.rhs)
	col := make([]float64, m)
	for v := 0; v < total; v++ {
		if s.inBasisPos[v] >= 0 || s.x[v] == 0 {
			continue
		}
		s.column(v, col)
		for i := 0; i < m; i++ {
			r[i] -= col[i] * s.x[v]
		}
	}
	var xb mat.VecDense
	if err := lu.SolveVecTo(&xb, false, mat.NewVecDense(m, r)); err != nil {
		return err
	}
	for p, v := range s.basic {
		s.x[v] = xb.AtVec(p)
	}
	return nil
}

// computeDuals fills s.y and s.d (original sense).
func (s *Solver) computeDuals(lu *mat.LU) error {
	m := len(s.rhs)
	cb := make([]float64, m)
	for p, v := range s.basic {
		cb[p] = s.cost(v)
	}
	var yv mat.VecDense
	if err := lu.SolveVecTo(&yv, true, mat.NewVecDense(m, cb)); err != nil {
		return err
	}
	total := s.nTotal()
	if cap(s.y) < m {
		s.y = make([]float64, m)
	}
	s.y = s.y[:m]
	if cap(s.d) < total {
		s.d = make([]float64, total)
	}
	s.d = s.d[:total]

	sign := 1.0
	if s.sense.Max() {
		sign = -1.0
	}
	for i := 0; i < m; i++ {
		s.y[i] = sign * yv.AtVec(i)
	}
	col := make([]float64, m)
	for v := 0; v < total; v++ {
		if s.inBasisPos[v] >= 0 {
			s.d[v] = 0
			continue
		}
		s.column(v, col)
		dv := s.cost(v)
		for i := 0; i < m; i++ {
			dv -= yv.AtVec(i) * col[i]
		}
		s.d[v] = sign * dv
	}
	return nil
}

// internalD returns the reduced cost in the internal minimization sense.
func (s *Solver) internalD(v int) float64 {
	if s.sense.Max() {
		return -s.d[v]
	}
	return s.d[v]
}

func (s *Solver) Optimize(method abacus.LPMethod) (abacus.OptStat, error) {
	if len(s.obj) == 0 {
		return abacus.LPError, errors.New("gonumlp: not initialized")
	}
	if !s.basisOK {
		s.slackBasis()
	}
	_ = method // both phases share the machinery; the state picks the phase

	iters := 0
	s.infeasPos = -1
	s.binvRow = nil

	for {
		lu, err := s.factorize()
		if err != nil {
			// a degenerate loaded basis; restart from the slack basis
			s.slackBasis()
			lu, err = s.factorize()
			if err != nil {
				s.lastStatus = abacus.LPError
				return s.lastStatus, err
			}
		}
		if err := s.computeX(lu); err != nil {
			s.lastStatus = abacus.LPError
			return s.lastStatus, err
		}
		if err := s.computeDuals(lu); err != nil {
			s.lastStatus = abacus.LPError
			return s.lastStatus, err
		}

		infeasPos := s.primalInfeasiblePos()
		if infeasPos == -1 {
			// primal feasible: run a primal pricing step
			entering := s.primalEntering()
			if entering == -1 {
				s.finishValue()
				s.lastStatus = abacus.LPOptimal
				return s.lastStatus, nil
			}
			if s.iterLimit >= 0 && iters >= s.iterLimit {
				s.finishValue()
				s.lastStatus = abacus.LPLimitReached
				return s.lastStatus, nil
			}
			iters++
			status, err := s.primalStep(lu, entering)
			if err != nil || status != abacus.LPOptimal {
				s.lastStatus = status
				return status, err
			}
			continue
		}

		// primal infeasible: dual simplex step
		if !s.dualFeasible() {
			if !s.makeDualFeasible() {
				s.lastStatus = abacus.LPError
				return s.lastStatus, errors.New("gonumlp: cannot reach a dual feasible basis")
			}
			continue
		}
		if s.iterLimit >= 0 && iters >= s.iterLimit {
			s.finishValue()
			s.lastStatus = abacus.LPLimitReached
			return s.lastStatus, nil
		}
		iters++
		status, err := s.dualStep(lu, infeasPos)
		if err != nil || status != abacus.LPOptimal {
			s.lastStatus = status
			return status, err
		}
	}
}

func (s *Solver) finishValue() {
	s.value = 0
	for j := 0; j < s.nStruct(); j++ {
		s.value += s.obj[j] * s.x[j]
	}
}

// primalInfeasiblePos returns the basis position of a basic variable
// violating its bounds, or -1.
func (s *Solver) primalInfeasiblePos() int {
	worst := -1
	worstViol := s.tol
	for p, v := range s.basic {
		lo, hi := s.bounds(v)
		if viol := lo - s.x[v]; viol > worstViol {
			worst, worstViol = p, viol
		}
		if viol := s.x[v] - hi; viol > worstViol {
			worst, worstViol = p, viol
		}
	}
	return worst
}

// primalEntering returns a non-basic variable with a profitable reduced
// cost (Bland's rule), or -1 at optimality.
func (s *Solver) primalEntering() int {
	for v := 0; v < s.nTotal(); v++ {
		if s.inBasisPos[v] >= 0 {
			continue
		}
		d := s.internalD(v)
		lo, hi := s.bounds(v)
		if lo == hi {
			continue
		}
		if !s.atUpper[v] && d < -s.tol {
			return v
		}
		if s.atUpper[v] && d > s.tol {
			return v
		}
	}
	return -1
}

func (s *Solver) dualFeasible() bool {
	for v := 0; v < s.nTotal(); v++ {
		if s.inBasisPos[v] >= 0 {
			continue
		}
		lo, hi := s.bounds(v)
		if lo == hi {
			continue
		}
		d := s.internalD(v)
		if !s.atUpper[v] && d < -s.tol {
			return false
		}
		if s.atUpper[v] && d > s.tol {
			return false
		}
	}
	return true
}

// makeDualFeasible flips non-basic variables to the bound matching the
// sign of their reduced cost. It reports whether every dual infeasibility
// could be repaired by a flip.
func (s *Solver) makeDualFeasible() bool {
	ok := true
	for v := 0; v < s.nTotal(); v++ {
		if s.inBasisPos[v] >= 0 {
			continue
		}
		lo, hi := s.bounds(v)
		if lo == hi {
			continue
		}
		d := s.internalD(v)
		if !s.atUpper[v] && d < -s.tol {
			if math.IsInf(hi, 1) {
				ok = false
				continue
			}
			s.atUpper[v] = true
		} else if s.atUpper[v] && d > s.tol {
			if math.IsInf(lo, -1) {
				ok = false
				continue
			}
			s.atUpper[v] = false
		}
	}
	return ok
}

// primalStep performs one primal ratio test and pivot for the entering
// variable.
func (s *Solver) primalStep(lu *mat.LU, entering int) (abacus.OptStat, error) {
	m := len(s.rhs)
	colE := make([]float64, m)
	s.column(entering, colE)
	var w mat.VecDense
	if err := lu.SolveVecTo(&w, false, mat.NewVecDense(m, colE)); err != nil {
		return abacus.LPError, err
	}

	dir := 1.0 // movement of the entering variable
	if s.atUpper[entering] {
		dir = -1.0
	}

	tMax := math.Inf(1)
	leavingPos := -1
	leavingToUpper := false

	loE, hiE := s.bounds(entering)
	if !math.IsInf(hiE, 1) && !math.IsInf(loE, -1) {
		tMax = hiE - loE // bound flip
	}

	for p, v := range s.basic {
		wp := w.AtVec(p) * dir
		lo, hi := s.bounds(v)
		var t float64
		var toUpper bool
		switch {
		case wp > pivotTol:
			if math.IsInf(lo, -1) {
				continue
			}
			t = (s.x[v] - lo) / wp
			toUpper = false
		case wp < -pivotTol:
			if math.IsInf(hi, 1) {
				continue
			}
			t = (hi - s.x[v]) / -wp
			toUpper = true
		default:
			continue
		}
		if t < tMax-pivotTol {
			tMax = t
			leavingPos = p
			leavingToUpper = toUpper
		}
	}

	if math.IsInf(tMax, 1) {
		s.lastStatus = abacus.LPUnbounded
		return abacus.LPUnbounded, nil
	}
	if leavingPos == -1 {
		// bound flip of the entering variable
		s.atUpper[entering] = !s.atUpper[entering]
		return abacus.LPOptimal, nil
	}

	leaving := s.basic[leavingPos]
	s.basic[leavingPos] = entering
	s.inBasisPos[entering] = leavingPos
	s.inBasisPos[leaving] = -1
	s.atUpper[leaving] = leavingToUpper
	return abacus.LPOptimal, nil
}

// dualStep performs one dual simplex pivot for the infeasible basis
// position, or reports primal infeasibility.
func (s *Solver) dualStep(lu *mat.LU, pos int) (abacus.OptStat, error) {
	m := len(s.rhs)
	leaving := s.basic[pos]
	lo, hi := s.bounds(leaving)
	tooLow := s.x[leaving] < lo-s.tol

	// z is the pos-th row of the basis inverse
	e := make([]float64, m)
	e[pos] = 1
	var z mat.VecDense
	if err := lu.SolveVecTo(&z, true, mat.NewVecDense(m, e)); err != nil {
		return abacus.LPError, err
	}

	entering := -1
	bestRatio := math.Inf(1)
	col := make([]float64, m)
	for v := 0; v < s.nTotal(); v++ {
		if s.inBasisPos[v] >= 0 {
			continue
		}
		vlo, vhi := s.bounds(v)
		if vlo == vhi {
			continue
		}
		s.column(v, col)
		alpha := 0.0
		for i := 0; i < m; i++ {
			alpha += z.AtVec(i) * col[i]
		}
		eligible := false
		if tooLow {
			// the leaving variable must increase
			if !s.atUpper[v] && alpha < -pivotTol {
				eligible = true
			}
			if s.atUpper[v] && alpha > pivotTol {
				eligible = true
			}
		} else {
			if !s.atUpper[v] && alpha > pivotTol {
				eligible = true
			}
			if s.atUpper[v] && alpha < -pivotTol {
				eligible = true
			}
		}
		if !eligible {
			continue
		}
		ratio := math.Abs(s.internalD(v) / alpha)
		if ratio < bestRatio-pivotTol || (ratio < bestRatio+pivotTol && (entering == -1 || v < entering)) {
			bestRatio = ratio
			entering = v
		}
	}

	if entering == -1 {
		// primal infeasible: remember the infeasible basic variable and
		// the basis inverse row for GetInfeas
		s.infeasPos = pos
		s.binvRow = make([]float64, m)
		for i := 0; i < m; i++ {
			s.binvRow[i] = z.AtVec(i)
		}
		s.finishValue()
		s.lastStatus = abacus.LPInfeasible
		return abacus.LPInfeasible, nil
	}

	s.basic[pos] = entering
	s.inBasisPos[entering] = pos
	s.inBasisPos[leaving] = -1
	s.atUpper[leaving] = !tooLow
	return abacus.LPOptimal, nil
}

func (s *Solver) Value() float64 { return s.value }

func (s *Solver) XVal(col int) float64    { return s.x[col] }
func (s *Solver) BarXVal(col int) float64 { return s.x[col] }
func (s *Solver) Reco(col int) float64    { return s.d[col] }
func (s *Solver) YVal(row int) float64    { return s.y[row] }

func (s *Solver) Slack(row int) float64 {
	return s.x[s.nStruct()+row]
}

func (s *Solver) LpVarStat(col int) abacus.LPVarStat {
	if s.inBasisPos[col] >= 0 {
		return abacus.Basic
	}
	lo, hi := s.bounds(col)
	switch {
	case s.atUpper[col] && !math.IsInf(hi, 1):
		return abacus.AtUpperBound
	case !math.IsInf(lo, -1):
		return abacus.AtLowerBound
	default:
		return abacus.NonBasicFree
	}
}

func (s *Solver) SlackStat(row int) abacus.SlackStat {
	v := s.nStruct() + row
	if s.inBasisPos[v] >= 0 {
		return abacus.SlackBasic
	}
	if math.Abs(s.x[v]) <= s.tol {
		return abacus.SlackNonBasicZero
	}
	return abacus.SlackNonBasicNonZero
}

func (s *Solver) BasisAvailable() bool { return s.basisOK && len(s.x) > 0 }

func (s *Solver) Infeasible() bool { return s.lastStatus == abacus.LPInfeasible }

func (s *Solver) GetInfeas() (infeasRow, infeasCol int, bInvRow []float64, err error) {
	if s.infeasPos < 0 {
		return -1, -1, nil, errors.New("gonumlp: no infeasibility recorded")
	}
	v := s.basic[s.infeasPos]
	if v < s.nStruct() {
		return -1, v, s.binvRow, nil
	}
	return v - s.nStruct(), -1, s.binvRow, nil
}

func (s *Solver) NRow() int { return len(s.rhs) }
func (s *Solver) NCol() int { return s.nStruct() }

func (s *Solver) NNZ() int {
	nnz := 0
	for _, row := range s.a {
		for _, c := range row {
			if c != 0 {
				nnz++
			}
		}
	}
	return nnz
}

func (s *Solver) SetSimplexIterationLimit(limit int) error {
	s.iterLimit = limit
	return nil
}

func (s *Solver) SimplexIterationLimit() (int, error) { return s.iterLimit, nil }

func (s *Solver) PivotSlackVariableIn(rows []int) error {
	// a cold restart re-enters the slacks; good enough for a reference
	// backend
	s.basisOK = false
	return nil
}

func checkIncreasing(indices []int, n int) error {
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("gonumlp: index %d out of range", idx)
		}
		if i > 0 && indices[i-1] >= idx {
			return errors.New("gonumlp: removal indices not strictly increasing")
		}
	}
	return nil
}

func deleteAt[T any](s []T, indices []int) []T {
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
