// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"errors"
	"fmt"
)

// ErrContradiction signals that a branch rule or a fixing contradicts the
// local state of a subproblem; the subproblem is infeasible and fathomed.
var ErrContradiction = errors.New("abacus: contradiction")

// BranchRule describes how a son refines its father: a bound change, a
// setting of a variable, or an added constraint. Rules are also applied
// temporarily to the LP when branching samples are ranked.
type BranchRule interface {
	fmt.Stringer

	// Extract applies the rule to the activated subproblem. It returns
	// ErrContradiction if the rule contradicts already fixed or set
	// variables.
	Extract(sub *Sub) error

	// ExtractLP applies the rule to the LP for strong-branching ranking;
	// UnExtractLP must undo it exactly.
	ExtractLP(lp *LPSub)
	UnExtractLP(lp *LPSub)

	// BranchOnSetVar reports whether the rule sets a variable to one of
	// its bounds; the default son-selection tie-break prefers rules that
	// set to the upper bound.
	BranchOnSetVar() bool
}

// SetBranchRule sets a binary variable to one of its bounds.
type SetBranchRule struct {
	variable   int
	status     FSStatus
	oldLpBound float64
}

// NewSetBranchRule branches by setting active variable i to status, which
// must be SetToLowerBound or SetToUpperBound.
func NewSetBranchRule(variable int, status FSStatus) *SetBranchRule {
	if status != SetToLowerBound && status != SetToUpperBound {
		panic("abacus: setbranchrule: status must set a bound")
	}
	return &SetBranchRule{variable: variable, status: status}
}

func (r *SetBranchRule) String() string {
	return fmt.Sprintf("x%d -> %v", r.variable, r.status)
}

// Variable returns the branching variable's index.
func (r *SetBranchRule) Variable() int { return r.variable }

// SetToUpperBound reports whether the rule sets to the upper bound.
func (r *SetBranchRule) SetToUpperBound() bool { return r.status == SetToUpperBound }

func (r *SetBranchRule) Extract(sub *Sub) error {
	if sub.fsVarStat[r.variable].ContradictionWith(r.status, 0, sub.master.Eps()) {
		return ErrContradiction
	}
	sub.fsVarStat[r.variable].SetStatus(r.status)
	return nil
}

func (r *SetBranchRule) ExtractLP(lp *LPSub) {
	if r.status == SetToLowerBound {
		r.oldLpBound = lp.UBound(r.variable)
		lp.ChangeUBound(r.variable, lp.LBound(r.variable))
	} else {
		r.oldLpBound = lp.LBound(r.variable)
		lp.ChangeLBound(r.variable, lp.UBound(r.variable))
	}
}

func (r *SetBranchRule) UnExtractLP(lp *LPSub) {
	if r.status == SetToLowerBound {
		lp.ChangeUBound(r.variable, r.oldLpBound)
	} else {
		lp.ChangeLBound(r.variable, r.oldLpBound)
	}
}

func (r *SetBranchRule) BranchOnSetVar() bool { return true }

// BoundBranchRule replaces the local bounds of an integer variable, e.g.
// with the two halves of a split interval.
type BoundBranchRule struct {
	variable   int
	lBound     float64
	uBound     float64
	oldLpLB    float64
	oldLpUB    float64
}

// NewBoundBranchRule branches by imposing [lBound, uBound] on active
// variable i.
func NewBoundBranchRule(variable int, lBound, uBound float64) *BoundBranchRule {
	return &BoundBranchRule{variable: variable, lBound: lBound, uBound: uBound}
}

func (r *BoundBranchRule) String() string {
	return fmt.Sprintf("%g <= x%d <= %g", r.lBound, r.variable, r.uBound)
}

// Variable returns the branching variable's index.
func (r *BoundBranchRule) Variable() int { return r.variable }

func (r *BoundBranchRule) Extract(sub *Sub) error {
	stat := sub.fsVarStat[r.variable]
	if stat.FixedOrSet() {
		val := elimValStat(stat, sub.lBound[r.variable], sub.uBound[r.variable])
		if val < r.lBound-sub.master.Eps() || val > r.uBound+sub.master.Eps() {
			return ErrContradiction
		}
	}
	sub.lBound[r.variable] = r.lBound
	sub.uBound[r.variable] = r.uBound
	return nil
}

func (r *BoundBranchRule) ExtractLP(lp *LPSub) {
	r.oldLpLB = lp.LBound(r.variable)
	r.oldLpUB = lp.UBound(r.variable)
	lp.ChangeLBound(r.variable, r.lBound)
	lp.ChangeUBound(r.variable, r.uBound)
}

func (r *BoundBranchRule) UnExtractLP(lp *LPSub) {
	lp.ChangeLBound(r.variable, r.oldLpLB)
	lp.ChangeUBound(r.variable, r.oldLpUB)
}

func (r *BoundBranchRule) BranchOnSetVar() bool { return false }

// ValBranchRule sets a variable to a value, e.g. an integer value of a
// general integer variable.
type ValBranchRule struct {
	variable int
	value    float64
	oldLpLB  float64
	oldLpUB  float64
}

// NewValBranchRule branches by setting active variable i to value.
func NewValBranchRule(variable int, value float64) *ValBranchRule {
	return &ValBranchRule{variable: variable, value: value}
}

func (r *ValBranchRule) String() string {
	return fmt.Sprintf("x%d = %g", r.variable, r.value)
}

// Variable returns the branching variable's index.
func (r *ValBranchRule) Variable() int { return r.variable }

// Value returns the branching value.
func (r *ValBranchRule) Value() float64 { return r.value }

func (r *ValBranchRule) Extract(sub *Sub) error {
	if sub.fsVarStat[r.variable].ContradictionWith(SetTo, r.value, sub.master.Eps()) {
		return ErrContradiction
	}
	sub.fsVarStat[r.variable].SetStatusValue(SetTo, r.value)
	return nil
}

func (r *ValBranchRule) ExtractLP(lp *LPSub) {
	r.oldLpLB = lp.LBound(r.variable)
	r.oldLpUB = lp.UBound(r.variable)
	lp.ChangeLBound(r.variable, r.value)
	lp.ChangeUBound(r.variable, r.value)
}

func (r *ValBranchRule) UnExtractLP(lp *LPSub) {
	lp.ChangeLBound(r.variable, r.oldLpLB)
	lp.ChangeUBound(r.variable, r.oldLpUB)
}

func (r *ValBranchRule) BranchOnSetVar() bool { return false }

// ConBranchRule branches by adding a constraint, carried by a reference to
// its pool slot so the constraint survives in the pool while the son is
// unprocessed.
type ConBranchRule struct {
	ref *ConSlotRef
}

// NewConBranchRule branches on the constraint stored in slot.
func NewConBranchRule(slot *ConSlot) *ConBranchRule {
	return &ConBranchRule{ref: NewPoolSlotRef(slot)}
}

func (r *ConBranchRule) String() string { return "branching constraint" }

// Constraint returns the branching constraint, or nil if it was collected
// from the pool.
func (r *ConBranchRule) Constraint() Constraint { return r.ref.ConVar() }

func (r *ConBranchRule) Extract(sub *Sub) error {
	if r.ref.ConVar() == nil {
		return fmt.Errorf("abacus: conbranchrule: branching constraint vanished from pool")
	}
	if !sub.addConBuffer.Insert(r.ref.Slot(), true) {
		return fmt.Errorf("abacus: conbranchrule: constraint buffer full")
	}
	return nil
}

func (r *ConBranchRule) ExtractLP(lp *LPSub) {
	if con := r.ref.ConVar(); con != nil {
		if err := lp.AddCons([]Constraint{con}); err != nil {
			panic(err)
		}
	}
}

func (r *ConBranchRule) UnExtractLP(lp *LPSub) {
	if r.ref.ConVar() == nil {
		return
	}
	if err := lp.RemoveCons([]int{lp.NRow() - 1}); err != nil {
		panic(err)
	}
}

func (r *ConBranchRule) BranchOnSetVar() bool { return false }
