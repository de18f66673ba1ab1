// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "math"

// Constraint is the role interface of a pooled constraint. Problem-specific
// constraint classes embed BaseConstraint and implement Coeff; everything
// the engine needs beyond the coefficient oracle has a default on the base.
type Constraint interface {
	ConVarMember

	// Sense returns the sense of the constraint.
	Sense() CSense

	// Rhs returns the right-hand side.
	Rhs() float64

	// Coeff returns the coefficient of v in the constraint.
	Coeff(v Variable) float64

	// Liftable reports whether coefficients of variables activated after
	// the constraint was generated can be computed. Non-liftable
	// constraints must leave the active set before pricing.
	Liftable() bool

	// VoidLhsViolated classifies the right-hand side newRhs under an
	// implicit left-hand side of zero, which arises when every active
	// variable of the constraint has been eliminated.
	VoidLhsViolated(newRhs float64) InfeasStat

	// Classify computes the structural classification of the constraint
	// against an active variable set, or returns nil if the problem does
	// not classify its constraints.
	Classify(actVar *ActiveVars) *ConClass
}

// Aliases taming the doubly-parameterized container signatures. The first
// parameter is the stored role, the second the counterpart role consulted
// during separation.
type (
	ActiveVars  = Active[Variable, Constraint]
	ActiveCons  = Active[Constraint, Variable]
	ConSlot     = PoolSlot[Constraint, Variable]
	VarSlot     = PoolSlot[Variable, Constraint]
	ConSlotRef  = PoolSlotRef[Constraint, Variable]
	VarSlotRef  = PoolSlotRef[Variable, Constraint]
	ConPool     = Pool[Constraint, Variable]
	VarPool     = Pool[Variable, Constraint]
	ConBuffer   = CutBuffer[Constraint, Variable]
	VarBuffer   = CutBuffer[Variable, Constraint]
)

// BaseConstraint carries sense, right-hand side, liftability and the
// optional classification cache. It implements all of Constraint except
// Coeff.
type BaseConstraint struct {
	BaseConVar

	sense    CSense
	rhs      float64
	liftable bool
	conClass *ConClass
}

// InitConstraint initializes the embedded base. A locally valid constraint
// must name its creating subproblem.
func (c *BaseConstraint) InitConstraint(master *Master, sub *Sub, sense CSense, rhs float64, dynamic, local, liftable bool) {
	c.cv.init(master, sub, dynamic, local)
	c.sense = sense
	c.rhs = rhs
	c.liftable = liftable
}

func (c *BaseConstraint) Sense() CSense      { return c.sense }
func (c *BaseConstraint) Rhs() float64       { return c.rhs }
func (c *BaseConstraint) SetRhs(rhs float64) { c.rhs = rhs }
func (c *BaseConstraint) Liftable() bool     { return c.liftable }

func (c *BaseConstraint) Classify(*ActiveVars) *ConClass { return nil }

// SetClassification caches a computed classification; Classification
// returns it, or nil while none was computed.
func (c *BaseConstraint) SetClassification(cc *ConClass) { c.conClass = cc }
func (c *BaseConstraint) Classification() *ConClass     { return c.conClass }

func (c *BaseConstraint) VoidLhsViolated(newRhs float64) InfeasStat {
	eps := c.cv.master.Eps()
	switch c.sense {
	case Equal:
		if newRhs > eps {
			return TooSmall
		}
		if newRhs < -eps {
			return TooLarge
		}
		return Feasible
	case Less:
		if newRhs < -eps {
			return TooLarge
		}
		return Feasible
	case Greater:
		if newRhs > eps {
			return TooSmall
		}
		return Feasible
	default:
		panic("abacus: constraint: unknown sense")
	}
}

// GenRow generates the sparse row format of c over the active variable set:
// the constraint is expanded, every active variable with a numerically
// nonzero coefficient contributes an entry, and the row carries sense and
// right-hand side. The number of nonzeros is returned.
func GenRow(c Constraint, actVar *ActiveVars, row *Row) int {
	eps := c.convar().master.MachineEps()

	expandConVar(c)
	n := actVar.Number()
	for e := 0; e < n; e++ {
		v := actVar.ConVar(e)
		if v == nil {
			continue
		}
		co := c.Coeff(v)
		if co > eps || co < -eps {
			row.Insert(e, co)
		}
	}
	row.SetRhs(c.Rhs())
	row.SetSense(c.Sense())
	compressConVar(c)
	return row.NNZ()
}

// ConSlack returns rhs minus the left-hand side of c at the point x, which
// is indexed like actVar.
func ConSlack(c Constraint, actVar *ActiveVars, x []float64) float64 {
	eps := c.convar().master.MachineEps()

	expandConVar(c)
	lhs := 0.0
	n := actVar.Number()
	for i := 0; i < n; i++ {
		xi := x[i]
		if xi > eps || xi < -eps {
			v := actVar.ConVar(i)
			if v == nil {
				continue
			}
			co := c.Coeff(v)
			if co > eps || co < -eps {
				lhs += co * xi
			}
		}
	}
	compressConVar(c)
	return c.Rhs() - lhs
}

// ConViolated applies the sense-aware violation test of the slack.
func ConViolated(c Constraint, slack float64) bool {
	eps := c.convar().master.Eps()
	switch c.Sense() {
	case Equal:
		return math.Abs(slack) > eps
	case Less:
		return slack < -eps
	case Greater:
		return slack > eps
	default:
		panic("abacus: constraint: unknown sense")
	}
}

// ConDistance returns the Euclidean distance of the point x from the
// hyperplane induced by c over the active variable set.
func ConDistance(c Constraint, x []float64, actVar *ActiveVars) float64 {
	var row Row
	nnz := GenRow(c, actVar, &row)

	ax := 0.0
	for i := 0; i < nnz; i++ {
		ax += row.Coeff(i) * x[row.Support(i)]
	}
	return math.Abs((c.Rhs() - ax) / row.Norm())
}
