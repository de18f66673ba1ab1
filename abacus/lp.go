// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "errors"

// LPMethod selects the algorithm a backend uses to solve the LP.
type LPMethod int

const (
	MethodPrimal LPMethod = iota
	MethodDual
	MethodBarrierAndCrossover
	MethodApproximate
)

func (m LPMethod) String() string {
	switch m {
	case MethodPrimal:
		return "primal"
	case MethodDual:
		return "dual"
	case MethodBarrierAndCrossover:
		return "barrier"
	case MethodApproximate:
		return "approximate"
	default:
		return "unknown"
	}
}

// OptStat is the outcome of a backend solve.
type OptStat int

const (
	LPOptimal OptStat = iota
	LPFeasible
	LPInfeasible
	LPUnbounded
	LPLimitReached
	LPError
)

func (s OptStat) String() string {
	switch s {
	case LPOptimal:
		return "optimal"
	case LPFeasible:
		return "feasible"
	case LPInfeasible:
		return "infeasible"
	case LPUnbounded:
		return "unbounded"
	case LPLimitReached:
		return "limit"
	default:
		return "error"
	}
}

// ErrNotSupported is returned by backends for optional operations they do
// not implement, e.g. iteration limits or slack pivots.
var ErrNotSupported = errors.New("abacus: operation not supported by LP backend")

// LPSolver is the interface the framework consumes from an external LP
// backend. Row and column numbers follow the order of the edit operations;
// the LPSub view on top translates between subproblem and backend indices.
type LPSolver interface {
	// Initialize loads a fresh LP. All slices are indexed by backend
	// column or row. varStat and slackStat may be nil if no basis is
	// known.
	Initialize(sense OptSense, obj, lBound, uBound []float64, rows []*Row, varStat []LPVarStat, slackStat []SlackStat) error

	// AddRows appends rows; their support is over backend columns.
	AddRows(rows []*Row) error

	// RemoveRows removes the rows at the given strictly increasing
	// indices.
	RemoveRows(indices []int) error

	// AddCols appends columns; their support is over backend rows.
	AddCols(cols []*Column) error

	// RemoveCols removes the columns at the given strictly increasing
	// indices.
	RemoveCols(indices []int) error

	ChangeLBound(col int, lb float64) error
	ChangeUBound(col int, ub float64) error

	LBound(col int) float64
	UBound(col int) float64

	// ChangeRhs replaces every right-hand side.
	ChangeRhs(rhs []float64) error

	// LoadBasis installs a starting basis.
	LoadBasis(varStat []LPVarStat, slackStat []SlackStat) error

	// Optimize solves the LP with the requested method.
	Optimize(method LPMethod) (OptStat, error)

	// Value returns the objective value of the last solve.
	Value() float64

	// XVal returns the primal value of a column, BarXVal the value of the
	// barrier solution before crossover (backends without a barrier
	// return the primal value).
	XVal(col int) float64
	BarXVal(col int) float64

	// Reco returns the reduced cost of a column.
	Reco(col int) float64

	// YVal returns the dual value of a row, Slack its slack.
	YVal(row int) float64
	Slack(row int) float64

	Rhs(row int) float64

	LpVarStat(col int) LPVarStat
	SlackStat(row int) SlackStat

	// BasisAvailable reports whether the last solve left a usable basis.
	BasisAvailable() bool

	// Infeasible reports whether the last solve proved the LP infeasible.
	Infeasible() bool

	// GetInfeas identifies an infeasible basic variable after a dual
	// feasible solve of an infeasible LP: either a structural column
	// (infeasCol >= 0) or a slack (infeasRow >= 0), together with the
	// corresponding row of the basis inverse.
	GetInfeas() (infeasRow, infeasCol int, bInvRow []float64, err error)

	NRow() int
	NCol() int
	NNZ() int

	// SetSimplexIterationLimit bounds the next solves; a negative limit
	// removes the bound.
	SetSimplexIterationLimit(limit int) error
	SimplexIterationLimit() (int, error)

	// PivotSlackVariableIn pivots the slack variables of the given rows
	// into the basis.
	PivotSlackVariableIn(rows []int) error
}
