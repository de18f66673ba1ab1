// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"errors"
	"fmt"
	"math"
)

// SubStatus is the lifecycle status of a subproblem.
type SubStatus int

const (
	StatusUnprocessed SubStatus = iota
	StatusActive
	StatusDormant
	StatusProcessed
	StatusFathomed
)

func (s SubStatus) String() string {
	switch s {
	case StatusUnprocessed:
		return "Unprocessed"
	case StatusActive:
		return "Active"
	case StatusDormant:
		return "Dormant"
	case StatusProcessed:
		return "Processed"
	case StatusFathomed:
		return "Fathomed"
	default:
		return "unknown"
	}
}

type phase int

const (
	phaseDone phase = iota
	phaseCutting
	phaseBranching
	phaseFathoming
)

// SubHooks is the capability set a problem supplies per subproblem. Embed
// DefaultSubHooks and override what the problem needs; every method has a
// workable default.
type SubHooks interface {
	// Feasible decides whether the current LP solution solves the
	// sub-MILP. The default tests integrality of all discrete variables.
	Feasible(s *Sub) (bool, error)

	// Separate generates cutting planes into s.AddConBuffer and returns
	// how many were found.
	Separate(s *Sub) (int, error)

	// Pricing generates improving variables into s.AddVarBuffer and
	// returns how many were found.
	Pricing(s *Sub) (int, error)

	// Improve runs primal heuristics; it returns a solution value and
	// whether one was found.
	Improve(s *Sub) (float64, bool, error)

	// GenerateSon builds the son subproblem for a branch rule.
	GenerateSon(s *Sub, rule BranchRule) *Sub

	// GenerateBranchRules returns the branching rules splitting s. A nil
	// slice requests the built-in single-variable branching.
	GenerateBranchRules(s *Sub) ([]BranchRule, error)

	// SetByLogImp and FixByLogImp return variables that can be set or
	// fixed by logical implications, parallel to their new statuses.
	SetByLogImp(s *Sub) ([]int, []*FSVarStat)
	FixByLogImp(s *Sub) ([]int, []*FSVarStat)

	// InitMakeFeas proposes variables that could make the first LP of the
	// node feasible, given the constraints that turned infeasible during
	// elimination. A nil pool selects the default variable pool.
	InitMakeFeas(s *Sub, infeasCons []*InfeasCon) ([]Variable, VarPool, error)

	// MakeFeasible tries to restore feasibility mid-loop after GetInfeas
	// identified the infeasible basic variable. A nil return means
	// variables were buffered and the LP should be re-solved.
	MakeFeasible(s *Sub) error

	// ExceptionFathom and ExceptionBranch force early fathoming or
	// branching.
	ExceptionFathom(s *Sub) bool
	ExceptionBranch(s *Sub) bool

	// TailingOff decides what to do when tailing off is detected; true
	// enforces a final pricing and branching.
	TailingOff(s *Sub) bool

	// Pausing makes the node dormant instead of branching.
	Pausing(s *Sub) bool

	// SolveApproxNow selects the approximate LP method for the next solve.
	SolveApproxNow(s *Sub) bool

	// Activate and Deactivate wrap problem-specific node setup.
	Activate(s *Sub)
	Deactivate(s *Sub)
}

// DefaultSubHooks provides the default behavior of every hook.
type DefaultSubHooks struct{}

func (DefaultSubHooks) Feasible(s *Sub) (bool, error)      { return s.IntegerFeasible(), nil }
func (DefaultSubHooks) Separate(*Sub) (int, error)         { return 0, nil }
func (DefaultSubHooks) Pricing(*Sub) (int, error)          { return 0, nil }
func (DefaultSubHooks) Improve(*Sub) (float64, bool, error) { return 0, false, nil }

func (DefaultSubHooks) GenerateSon(s *Sub, rule BranchRule) *Sub {
	return NewSon(s, rule, s.hooks)
}

func (DefaultSubHooks) GenerateBranchRules(*Sub) ([]BranchRule, error) { return nil, nil }

func (DefaultSubHooks) SetByLogImp(*Sub) ([]int, []*FSVarStat) { return nil, nil }
func (DefaultSubHooks) FixByLogImp(*Sub) ([]int, []*FSVarStat) { return nil, nil }

func (DefaultSubHooks) InitMakeFeas(*Sub, []*InfeasCon) ([]Variable, VarPool, error) {
	return nil, nil, errors.New("abacus: no initial feasibility restoration implemented")
}

func (DefaultSubHooks) MakeFeasible(*Sub) error {
	return errors.New("abacus: no feasibility restoration implemented")
}

func (DefaultSubHooks) ExceptionFathom(*Sub) bool { return false }
func (DefaultSubHooks) ExceptionBranch(*Sub) bool { return false }
func (DefaultSubHooks) TailingOff(*Sub) bool      { return true }
func (DefaultSubHooks) Pausing(*Sub) bool         { return false }
func (DefaultSubHooks) SolveApproxNow(*Sub) bool  { return false }
func (DefaultSubHooks) Activate(*Sub)             {}
func (DefaultSubHooks) Deactivate(*Sub)           {}

// Sub is one node of the enumeration tree together with the algorithmic
// state needed to process it: the active sets, the local variable statuses
// and bounds, the LP while the node is active, and the buffers of the
// current cutting plane iteration.
type Sub struct {
	master *Master
	hooks  SubHooks

	id     int
	level  int
	father *Sub
	sons   []*Sub
	status SubStatus

	branchRule BranchRule
	dualBound  float64

	actCon    *ActiveCons
	actVar    *ActiveVars
	fsVarStat []*FSVarStat
	lpVarStat []LPVarStat
	lBound    []float64
	uBound    []float64
	slackStat []SlackStat

	lp *LPSub

	addConBuffer    *ConBuffer
	addVarBuffer    *VarBuffer
	removeConBuffer []int
	removeVarBuffer []int

	xVal []float64
	yVal []float64

	// state of a mid-loop infeasibility, valid during MakeFeasible
	bInvRow   []float64
	infeasRow int
	infeasCol int

	tailOff *TailOff

	nIter          int
	lastIterConAdd int
	lastIterVarAdd int
	nOpt           int
	nDormantRounds int
	maxIterations  int

	lpMethod           LPMethod
	lastLP             LPMethod
	forceExactSolver   bool
	ignoreInTailingOff bool
	genNonLiftCons     bool
	activated          bool
}

// NewRootSub creates the root of the enumeration tree. The master's pools
// must be initialized before the root is optimized.
func NewRootSub(master *Master, hooks SubHooks) *Sub {
	s := &Sub{
		master:            master,
		hooks:             hooks,
		id:                master.nextSubID(),
		level:             1,
		status:            StatusUnprocessed,
		maxIterations:     master.parameters.MaxIterations,
		infeasRow:         -1,
		infeasCol:         -1,
	}
	if master.OptSense().Max() {
		s.dualBound = master.Infinity()
	} else {
		s.dualBound = -master.Infinity()
	}
	return s
}

// NewSon creates an unprocessed son of father refined by rule.
func NewSon(father *Sub, rule BranchRule, hooks SubHooks) *Sub {
	master := father.master
	s := &Sub{
		master:            master,
		hooks:             hooks,
		id:                master.nextSubID(),
		level:             father.level + 1,
		father:            father,
		status:            StatusUnprocessed,
		branchRule:        rule,
		dualBound:         father.dualBound,
		maxIterations:     master.parameters.MaxIterations,
		infeasRow:         -1,
		infeasCol:         -1,
	}
	return s
}

// Accessors used by the LP view, pools, branch rules and user hooks.

func (s *Sub) Master() *Master        { return s.master }
func (s *Sub) ID() int                { return s.id }
func (s *Sub) Level() int             { return s.level }
func (s *Sub) Father() *Sub           { return s.father }
func (s *Sub) Sons() []*Sub           { return s.sons }
func (s *Sub) Status() SubStatus      { return s.status }
func (s *Sub) BranchRule() BranchRule { return s.branchRule }
func (s *Sub) DualBound() float64     { return s.dualBound }
func (s *Sub) NIter() int             { return s.nIter }
func (s *Sub) NDormantRounds() int    { return s.nDormantRounds }

// NCon returns the number of active constraints.
func (s *Sub) NCon() int { return s.actCon.Number() }

// NVar returns the number of active variables.
func (s *Sub) NVar() int { return s.actVar.Number() }

// Constraint returns the i-th active constraint.
func (s *Sub) Constraint(i int) Constraint { return s.actCon.ConVar(i) }

// Variable returns the i-th active variable.
func (s *Sub) Variable(i int) Variable { return s.actVar.ConVar(i) }

// ActVar and ActCon expose the active sets.
func (s *Sub) ActVar() *ActiveVars { return s.actVar }
func (s *Sub) ActCon() *ActiveCons { return s.actCon }

// FsVarStat returns the local fixing status of active variable i.
func (s *Sub) FsVarStat(i int) *FSVarStat { return s.fsVarStat[i] }

// LpVarStat returns the basis status of active variable i.
func (s *Sub) LpVarStat(i int) LPVarStat { return s.lpVarStat[i] }

// LBound and UBound return the local bounds of active variable i.
func (s *Sub) LBound(i int) float64 { return s.lBound[i] }
func (s *Sub) UBound(i int) float64 { return s.uBound[i] }

// XVal returns the primal value of active variable i from the last LP.
func (s *Sub) XVal(i int) float64 { return s.xVal[i] }

// YVal returns the dual value of active constraint i from the last LP.
func (s *Sub) YVal(i int) float64 { return s.yVal[i] }

// LP returns the LP view while the subproblem is active, else nil.
func (s *Sub) LP() *LPSub { return s.lp }

// AddConBuffer and AddVarBuffer expose the staging buffers of the node.
func (s *Sub) AddConBuffer() *ConBuffer { return s.addConBuffer }
func (s *Sub) AddVarBuffer() *VarBuffer { return s.addVarBuffer }

// InfeasData returns the infeasible basic slack row or structural column
// and the basis inverse row during MakeFeasible.
func (s *Sub) InfeasData() (infeasRow, infeasCol int, bInvRow []float64) {
	return s.infeasRow, s.infeasCol, s.bInvRow
}

// Ancestor reports whether s is an ancestor of sub (or sub itself).
func (s *Sub) Ancestor(sub *Sub) bool {
	for cur := sub; cur != nil; cur = cur.father {
		if cur == s {
			return true
		}
	}
	return false
}

// RootOfRemainingTree reports whether this subproblem is the root of the
// remaining enumeration tree.
func (s *Sub) RootOfRemainingTree() bool { return s == s.master.RRoot() }

// Infeasible reports whether the subproblem was shown infeasible.
func (s *Sub) Infeasible() bool {
	if s.master.OptSense().Max() {
		return s.dualBound == -s.master.Infinity()
	}
	return s.dualBound == s.master.Infinity()
}

// newDormantRound counts a selection round the node spent dormant.
func (s *Sub) newDormantRound() { s.nDormantRounds++ }

// setDualBound improves the dual bound; a worse bound is ignored with a
// warning since heuristic separation can temporarily worsen son bounds.
func (s *Sub) setDualBound(x float64) {
	if s.master.OptSense().Max() {
		if x > s.dualBound {
			s.master.log.Warn("worse dual bound ignored", "new", x, "kept", s.dualBound)
			return
		}
	} else if x < s.dualBound {
		s.master.log.Warn("worse dual bound ignored", "new", x, "kept", s.dualBound)
		return
	}
	s.dualBound = x

	if s == s.master.Root() && s.master.betterDual(s.dualBound) {
		s.master.setDualBound(s.dualBound)
	}
	if s.status == StatusActive {
		s.master.treeBounds(s)
	}
}

func (s *Sub) betterDual(x float64) bool {
	if s.master.OptSense().Max() {
		return x < s.dualBound
	}
	return x > s.dualBound
}

// boundCrash reports whether the node can be fathomed without processing
// because the incumbent already dominates its dual bound.
func (s *Sub) boundCrash() bool { return s.master.primalViolated(s.dualBound) }

// Optimize drives the node through activation, the cutting plane loop and
// branching or fathoming.
func (s *Sub) Optimize() error {
	// pull the aggregate dual bound of the open subproblems into the
	// master before processing
	newDual := s.dualBound
	open := s.master.openSub.DualBound()
	if s.master.OptSense().Max() {
		if open > newDual {
			newDual = open
		}
	} else if open < newDual {
		newDual = open
	}
	if s.master.betterDual(newDual) {
		s.master.setDualBound(newDual)
	}

	s.master.log.Info("processing subproblem", "id", s.id, "level", s.level,
		"dualBound", s.dualBound, "primalBound", s.master.PrimalBound())

	s.nOpt++

	ph, err := s.activate()
	if err != nil {
		return err
	}
	for ph != phaseDone {
		switch ph {
		case phaseCutting:
			ph, err = s.cutting()
		case phaseBranching:
			ph, err = s.branching()
		case phaseFathoming:
			ph = s.fathoming()
		}
		if err != nil {
			return err
		}
	}
	s.deactivate()

	s.master.log.Debug("subproblem done", "id", s.id, "iters", s.nIter,
		"open", s.master.openSub.Number(), "dualBound", s.master.DualBound())
	return nil
}

// activate builds the node-local state: buffers, active sets (copied from
// the father for non-root nodes), the branch rule application, and the
// first LP.
func (s *Sub) activate() (phase, error) {
	s.master.treePaint(s, vbcActive)

	if s.boundCrash() {
		return phaseFathoming, nil
	}

	initialMaxVar, initialMaxCon := s.initialSizes()

	s.tailOff = NewTailOff(s.master)
	s.addVarBuffer = NewCutBuffer[Variable, Constraint](s.master, s.master.parameters.MaxVarBuffered)
	s.addConBuffer = NewCutBuffer[Constraint, Variable](s.master, s.master.parameters.MaxConBuffered)
	s.removeVarBuffer = s.removeVarBuffer[:0]
	s.removeConBuffer = s.removeConBuffer[:0]
	s.xVal = make([]float64, 0, initialMaxVar)
	s.yVal = make([]float64, 0, initialMaxCon)

	if s.status == StatusUnprocessed && s != s.master.Root() {
		s.initializeVars(initialMaxVar)
		s.initializeCons(initialMaxCon)
		if err := s.branchRule.Extract(s); err != nil {
			s.infeasibleSub()
			return phaseFathoming, nil
		}
	} else if s.status == StatusUnprocessed {
		if err := s.initializeRoot(initialMaxVar, initialMaxCon); err != nil {
			return phaseDone, err
		}
	}

	// all items of the active sets must be backed by a pool slot from now
	// on; entries that turned void are removed, a missing fixed or set
	// variable is a fatal invariant violation
	var removeVars []int
	for i := 0; i < s.NVar(); i++ {
		if s.Variable(i) == nil {
			if s.fsVarStat[i].FixedOrSet() {
				panic("abacus: sub: active fixed or set variable not available in pool")
			}
			removeVars = append(removeVars, i)
		}
	}
	if len(removeVars) > 0 {
		s.master.log.Debug("variables missing at activation", "n", len(removeVars))
		s.actVar.Remove(removeVars)
		s.fsVarStat = leftShiftPtr(s.fsVarStat, removeVars)
		s.lpVarStat = leftShift(s.lpVarStat, removeVars)
		s.lBound = leftShift(s.lBound, removeVars)
		s.uBound = leftShift(s.uBound, removeVars)
	}

	var removeCons []int
	for i := 0; i < s.NCon(); i++ {
		if s.Constraint(i) == nil {
			removeCons = append(removeCons, i)
		}
	}
	if len(removeCons) > 0 {
		s.master.log.Debug("constraints missing at activation", "n", len(removeCons))
		s.actCon.Remove(removeCons)
		s.slackStat = leftShift(s.slackStat, removeCons)
	}

	// Setting the status before anything can fathom the node matters:
	// fathom() only deactivates the items of an active node.
	s.status = StatusActive
	for i := 0; i < s.NVar(); i++ {
		s.Variable(i).convar().activate()
	}
	for i := 0; i < s.NCon(); i++ {
		s.Constraint(i).convar().activate()
	}

	s.hooks.Activate(s)
	s.activated = true

	// reconcile with global fixings performed while the node was waiting
	for i := 0; i < s.NVar(); i++ {
		global := s.Variable(i).FsVarStat()
		local := s.fsVarStat[i]
		if global.Fixed() {
			if global.Contradiction(local, s.master.Eps()) {
				s.infeasibleSub()
				return phaseFathoming, nil
			}
			local.Assign(global)
			newBound := s.fixSetNewBound(i)
			s.lBound[i] = newBound
			s.uBound[i] = newBound
		}
	}

	if _, err := s.setByLogImpHook(); err != nil {
		s.infeasibleSub()
		return phaseFathoming, nil
	}

	if err := s.initializeLp(); err != nil {
		if errors.Is(err, errLpInfeasible) {
			s.infeasibleSub()
			return phaseFathoming, nil
		}
		return phaseDone, err
	}

	return phaseCutting, nil
}

func (s *Sub) initialSizes() (maxVar, maxCon int) {
	p := s.master.parameters
	if s.status == StatusUnprocessed && s != s.master.Root() {
		maxVar = s.father.NVar() + s.father.NVar()*p.VarReservePercent/100 + 1
		maxCon = s.father.NCon() + s.father.NCon()*p.ConReservePercent/100 + 1
		return maxVar, maxCon
	}
	if s.actVar != nil {
		return s.actVar.Max(), s.actCon.Max()
	}
	maxVar = len(s.master.initialVarSlots)
	maxVar += maxVar*p.VarReservePercent/100 + 1
	maxCon = len(s.master.initialConSlots)
	maxCon += maxCon*p.ConReservePercent/100 + 1
	return maxVar, maxCon
}

func (s *Sub) initializeRoot(maxVar, maxCon int) error {
	if len(s.master.initialVarSlots) == 0 {
		return errors.New("abacus: master pools not initialized before root activation")
	}
	s.actVar = NewActive[Variable, Constraint](s.master, maxVar)
	s.actCon = NewActive[Constraint, Variable](s.master, maxCon)

	for _, slot := range s.master.initialVarSlots {
		v := slot.ConVar()
		if v == nil {
			panic("abacus: sub: initial variable vanished from pool")
		}
		s.actVar.refs = append(s.actVar.refs, NewPoolSlotRef(slot))
		s.actVar.redundantAge = append(s.actVar.redundantAge, 0)
		s.fsVarStat = append(s.fsVarStat, v.FsVarStat().Copy())
		s.lpVarStat = append(s.lpVarStat, LPVarUnknown)
		s.lBound = append(s.lBound, v.LBound())
		s.uBound = append(s.uBound, v.UBound())
	}
	for _, slot := range s.master.initialConSlots {
		s.actCon.refs = append(s.actCon.refs, NewPoolSlotRef(slot))
		s.actCon.redundantAge = append(s.actCon.redundantAge, 0)
		s.slackStat = append(s.slackStat, SlackUnknown)
	}
	return nil
}

func (s *Sub) initializeVars(maxVar int) {
	s.actVar = NewActiveFrom(s.master, s.father.actVar, maxVar)
	n := s.NVar()
	s.fsVarStat = make([]*FSVarStat, 0, maxVar)
	s.lpVarStat = make([]LPVarStat, 0, maxVar)
	s.lBound = make([]float64, 0, maxVar)
	s.uBound = make([]float64, 0, maxVar)
	for i := 0; i < n; i++ {
		s.fsVarStat = append(s.fsVarStat, s.father.fsVarStat[i].Copy())
		s.lpVarStat = append(s.lpVarStat, s.father.lpVarStat[i])
		s.lBound = append(s.lBound, s.father.lBound[i])
		s.uBound = append(s.uBound, s.father.uBound[i])
	}
}

func (s *Sub) initializeCons(maxCon int) {
	s.actCon = NewActiveFrom(s.master, s.father.actCon, maxCon)
	n := s.NCon()
	s.slackStat = make([]SlackStat, 0, maxCon)
	for i := 0; i < n; i++ {
		s.slackStat = append(s.slackStat, s.father.slackStat[i])
	}
}

var errLpInfeasible = errors.New("abacus: subproblem LP infeasible")

// initializeLp builds the LP view, retrying with restored variables while
// the initial LP is infeasible due to eliminated variables.
func (s *Sub) initializeLp() error {
	for {
		lp, err := NewLPSub(s.master, s, s.master.newSolver())
		if err != nil {
			return err
		}
		s.lp = lp
		if !lp.Infeasible() {
			return nil
		}
		if err := s.initMakeFeas(); err != nil {
			return errLpInfeasible
		}
		s.lp = nil
	}
}

func (s *Sub) initMakeFeas() error {
	if !s.master.parameters.Pricing {
		return errLpInfeasible
	}
	newVars, pool, err := s.hooks.InitMakeFeas(s, s.lp.InfeasCons())
	if err != nil || len(newVars) == 0 {
		return errLpInfeasible
	}
	if pool == nil {
		pool = s.master.varPool
	}
	slots := make([]*VarSlot, 0, len(newVars))
	for _, v := range newVars {
		slot, _ := pool.Insert(v)
		if slot == nil {
			panic("abacus: sub: pool too small to insert all variables")
		}
		slots = append(slots, slot)
	}
	s.activateVars(slots)
	return nil
}

// cutting is the inner loop of the subproblem optimization: apply buffered
// edits, solve the LP, test fathoming criteria, separate or price.
func (s *Sub) cutting() (phase, error) {
	lastIteration := false

	for {
		// warn about simultaneous add and remove in both dimensions; the
		// basis may lose feasibility and the backend has to refactorize
		if s.addVarBuffer.Number() > 0 && s.addConBuffer.Number() > 0 {
			s.master.log.Warn("adding variables and constraints, basis may become infeasible")
		}
		if len(s.removeVarBuffer) > 0 && len(s.removeConBuffer) > 0 {
			s.master.log.Warn("removing variables and constraints, basis may become infeasible")
		}

		nConRemoved := s.applyRemoveCons()
		nVarRemoved := s.applyRemoveVars()

		nConAdded := 0
		if s.addConBuffer.Number() > 0 {
			nConAdded = s.applyAddCons()
			s.lastIterConAdd = s.nIter
		}
		nVarAdded := 0
		if s.addVarBuffer.Number() > 0 {
			nVarAdded = s.applyAddVars()
			s.lastIterVarAdd = s.nIter
		}

		if s.master.parameters.SolveApprox && s.hooks.SolveApproxNow(s) && !s.forceExactSolver {
			s.lpMethod = MethodApproximate
		} else {
			s.lpMethod = s.chooseLpMethod(nVarRemoved, nConRemoved, nVarAdded, nConAdded)
		}

		// when the loop was re-entered only to flush the edits before
		// branching, the LP is not solved again
		if lastIteration {
			return phaseBranching, nil
		}

		s.nIter++

		st, err := s.solveLp()
		if err != nil {
			return phaseDone, err
		}
		switch st {
		case lpFathom:
			return phaseFathoming, nil
		case lpIterate:
			continue
		}

		// the LP bound may already fathom the node, unless pricing can
		// still activate improving variables
		if s.master.primalViolated(s.master.dualRound(s.lp.Value())) {
			priced, _, err := s.pricingStep(true)
			if errors.Is(err, ErrContradiction) {
				s.infeasibleSub()
				return phaseFathoming, nil
			}
			if err != nil {
				return phaseDone, err
			}
			if priced {
				continue
			}
			if s.lastLP == MethodApproximate {
				s.forceExactSolver = true
				s.lpMethod = MethodDual
				continue
			}
			return phaseFathoming, nil
		}

		feasible, err := s.hooks.Feasible(s)
		if err != nil {
			return phaseDone, err
		}
		if feasible {
			s.master.log.Info("LP solution feasible", "value", s.lp.Value())
			if s.master.betterPrimal(s.lp.Value()) {
				s.master.setPrimalBound(s.lp.Value())
			}
			priced, _, err := s.pricingStep(true)
			if errors.Is(err, ErrContradiction) {
				s.infeasibleSub()
				return phaseFathoming, nil
			}
			if err != nil {
				return phaseDone, err
			}
			if priced {
				continue
			}
			return phaseFathoming, nil
		}

		// primal heuristics
		value, found, err := s.hooks.Improve(s)
		if err != nil {
			return phaseDone, err
		}
		if found && s.master.betterPrimal(value) {
			s.master.setPrimalBound(value)
		}
		if found {
			s.tailOff.Reset()
			if s.master.primalViolated(s.master.dualRound(s.lp.Value())) {
				priced, _, err := s.pricingStep(true)
				if errors.Is(err, ErrContradiction) {
					s.infeasibleSub()
					return phaseFathoming, nil
				}
				if err != nil {
					return phaseDone, err
				}
				if priced {
					continue
				}
				return phaseFathoming, nil
			}
		}
		if s.addVarBuffer.Number() > 0 {
			// the heuristics activated variables
			continue
		}

		// minor termination criteria
		terminate := false
		forceFathom := false

		if s.hooks.ExceptionFathom(s) {
			s.master.log.Info("exceptionFathom fired", "id", s.id)
			s.master.setStatus(StatusExceptionFathom)
			terminate = true
			forceFathom = true
		}
		if s.hooks.ExceptionBranch(s) {
			s.master.log.Info("exceptionBranch fired", "id", s.id)
			terminate = true
		}
		if !terminate && s.master.cpuTimeExceeded() {
			s.master.log.Info("maximal CPU time exceeded")
			s.master.setStatus(StatusMaxCpuTime)
			terminate = true
			forceFathom = true
		}
		if !terminate && s.master.cowTimeExceeded() {
			s.master.log.Info("maximal elapsed time exceeded")
			s.master.setStatus(StatusMaxCowTime)
			terminate = true
			forceFathom = true
		}
		if s.tailOff.TailOff() {
			s.master.log.Info("tailing off detected", "id", s.id)
			terminate = s.hooks.TailingOff(s)
			if !terminate {
				s.tailOff.Reset()
			}
		}
		if !terminate && s.hooks.Pausing(s) {
			s.master.log.Info("pausing subproblem", "id", s.id)
			terminate = true
		}
		if !terminate && s.maxIterations > 0 && s.nIter >= s.maxIterations {
			s.master.log.Info("iteration limit reached, enforcing branching", "id", s.id)
			terminate = true
		}

		if terminate {
			if s.lastLP == MethodApproximate {
				s.forceExactSolver = true
				continue
			}
			priced, newValues, err := s.pricingStep(true)
			if errors.Is(err, ErrContradiction) {
				s.infeasibleSub()
				return phaseFathoming, nil
			}
			if err != nil {
				return phaseDone, err
			}
			if priced {
				continue
			}
			if s.guaranteed() || forceFathom {
				return phaseFathoming, nil
			}
			if newValues {
				continue
			}
			if s.prepareBranching(&lastIteration) {
				continue
			}
			return phaseBranching, nil
		}

		// separation or pricing for this round
		if s.skipSeparation() {
			return phaseBranching, nil
		}

		if s.primalSeparation() {
			if _, err := s.separateHook(); err != nil {
				return phaseDone, err
			}
			if s.addConBuffer.Number() > 0 {
				s.conEliminate()
				continue
			}
			priced, newValues, err := s.pricingStep(true)
			if errors.Is(err, ErrContradiction) {
				s.infeasibleSub()
				return phaseFathoming, nil
			}
			if err != nil {
				return phaseDone, err
			}
			if priced {
				continue
			}
			if newValues {
				continue
			}
			if s.guaranteed() {
				return phaseFathoming, nil
			}
			if s.prepareBranching(&lastIteration) {
				continue
			}
			return phaseBranching, nil
		}

		// dual separation: price first, separate if nothing was found
		priced, newValues, err := s.pricingStep(true)
		if errors.Is(err, ErrContradiction) {
			s.infeasibleSub()
			return phaseFathoming, nil
		}
		if err != nil {
			return phaseDone, err
		}
		if s.addVarBuffer.Number() > 0 {
			s.varEliminate()
			continue
		}
		if priced {
			continue
		}
		if s.guaranteed() {
			return phaseFathoming, nil
		}
		if newValues {
			continue
		}
		n, err := s.separateHook()
		if err != nil {
			return phaseDone, err
		}
		if n > 0 || s.addConBuffer.Number() > 0 {
			continue
		}
		if s.prepareBranching(&lastIteration) {
			continue
		}
		return phaseBranching, nil
	}
}

// skipSeparation implements the cutting/pricing skip schedule.
func (s *Sub) skipSeparation() bool {
	p := s.master.parameters
	if !p.Cutting || !p.Pricing || p.SkipFactor <= 1 {
		return false
	}
	if p.SkippingMode == SkipByNode {
		return (s.master.NSubSelected()-1)%p.SkipFactor != 0
	}
	return (s.level-1)%p.SkipFactor != 0
}

// prepareBranching eliminates redundant constraints as the final
// modification before branching; if anything was eliminated the loop runs
// one flushing iteration without solving the LP.
func (s *Sub) prepareBranching(lastIteration *bool) bool {
	*lastIteration = true
	if s.conEliminate() > 0 {
		s.lpMethod = MethodPrimal
		return true
	}
	return false
}

type lpOutcome int

const (
	lpOK lpOutcome = iota
	lpFathom
	lpIterate
)

// solveLp solves the current LP and stores solution, duals and basis. An
// infeasible LP triggers the pricing based feasibility restoration.
func (s *Sub) solveLp() (lpOutcome, error) {
	m := s.master
	m.log.Debug("solving LP", "iter", s.nIter, "nCon", s.NCon(), "nVar", s.NVar(),
		"backendCols", s.lp.TrueNCol(), "method", s.lpMethod)

	m.countLp()

	status, err := s.lp.Optimize(s.lpMethod)
	if err != nil {
		return lpOK, err
	}
	s.lastLP = s.lpMethod

	switch status {
	case LPOptimal:
		s.xVal = s.xVal[:0]
		for i := 0; i < s.NVar(); i++ {
			s.xVal = append(s.xVal, s.lp.XVal(i))
		}
		s.yVal = s.yVal[:0]
		for i := 0; i < s.NCon(); i++ {
			s.yVal = append(s.yVal, s.lp.YVal(i))
		}
		m.log.Debug("LP solved", "value", s.lp.Value(), "primalBound", m.PrimalBound())
		if s.ignoreInTailingOff {
			s.ignoreInTailingOff = false
		} else {
			s.tailOff.Update(s.lp.Value())
		}
		s.getBase()
		return lpOK, nil

	case LPInfeasible:
		if !m.parameters.Pricing {
			s.infeasibleSub()
			return lpFathom, nil
		}
		if !s.removeNonLiftableCons() {
			return lpIterate, nil
		}
		s.getBase()
		if s.makeFeasible() != nil {
			s.infeasibleSub()
			return lpFathom, nil
		}
		return lpIterate, nil

	default:
		return lpOK, fmt.Errorf("abacus: sub: LP solver returned %v", status)
	}
}

// getBase captures the basis. Fixed or set variables that could not be
// eliminated keep status Unknown unless basic: their reported non-basic
// status refers to the pinned bounds and would corrupt later fixings.
func (s *Sub) getBase() {
	if !s.lp.BasisAvailable() {
		return
	}
	for i := 0; i < s.NVar(); i++ {
		newStat := s.lp.LpVarStat(i)
		if newStat == Eliminated {
			s.lpVarStat[i] = Eliminated
			continue
		}
		if s.fsVarStat[i].FixedOrSet() && newStat != Basic {
			s.lpVarStat[i] = LPVarUnknown
		} else {
			s.lpVarStat[i] = newStat
		}
	}
	for i := 0; i < s.NCon(); i++ {
		s.slackStat[i] = s.lp.SlackStat(i)
	}
}

// makeFeasible restores primal feasibility after a dual feasible solve of
// an infeasible LP, following the emulated dual simplex iteration: price
// first so the basis is globally dual feasible, then hand the infeasible
// basic row to the problem hook.
func (s *Sub) makeFeasible() error {
	if !s.master.parameters.Pricing {
		return errLpInfeasible
	}
	priced, _, err := s.pricingStep(false)
	if err != nil {
		return err
	}
	if priced {
		return nil
	}
	if s.master.primalViolated(s.master.dualRound(s.lp.Value())) {
		return errLpInfeasible
	}

	infeasRow, infeasCol, bInvRow, err := s.lp.GetInfeas()
	if err != nil {
		return err
	}
	s.infeasRow, s.infeasCol, s.bInvRow = infeasRow, infeasCol, bInvRow
	defer func() { s.infeasRow, s.infeasCol, s.bInvRow = -1, -1, nil }()

	return s.hooks.MakeFeasible(s)
}

// GoodCol reports whether activating a column can reduce the current
// infeasibility: the dot product of the column with the basis inverse row
// must push the infeasible basic variable back towards its bound.
func (s *Sub) GoodCol(col *Column, row []float64, x, lb, ub float64) bool {
	p := 0.0
	nnz := col.NNZ()
	for i := 0; i < nnz; i++ {
		p += col.Coeff(i) * row[col.Support(i)]
	}
	switch {
	case x < lb:
		return p < -s.master.Eps()
	case x > ub:
		return p > s.master.Eps()
	default:
		panic("abacus: sub: goodCol called for a feasible variable")
	}
}

// pricingStep prices out inactive variables and, if the basis is dual
// feasible also globally, fixes and sets variables. It reports whether
// variables were added and whether a variable was fixed or set to a value
// different from its LP value.
func (s *Sub) pricingStep(doFixSet bool) (priced bool, newValues bool, err error) {
	nNew := 0
	if s.master.parameters.Pricing {
		if !s.removeNonLiftableCons() {
			// non-liftable constraints are queued for removal first
			return true, false, nil
		}
		s.master.log.Debug("pricing inactive variables", "id", s.id)
		nNew, err = s.hooks.Pricing(s)
		if err != nil {
			return false, false, err
		}
	}

	if nNew > 0 {
		if doFixSet {
			if _, nv, ferr := s.fixing(false); ferr != nil {
				return false, false, ferr
			} else if nv {
				newValues = true
			}
		}
		return true, newValues, nil
	}

	if s.betterDual(s.lp.Value()) {
		s.setDualBound(s.master.dualRound(s.lp.Value()))
	}
	if doFixSet {
		if s.master.primalViolated(s.dualBound) {
			if _, nv, ferr := s.fixing(false); ferr != nil {
				return false, false, ferr
			} else if nv {
				newValues = true
			}
		} else {
			nv, ferr := s.fixAndSet()
			if ferr != nil {
				if errors.Is(ferr, ErrContradiction) {
					return false, false, ferr
				}
				return false, false, ferr
			}
			if nv {
				newValues = true
			}
		}
	}
	return false, newValues, nil
}

// primalSeparation decides whether this round separates constraints (true)
// or prices variables (false).
func (s *Sub) primalSeparation() bool {
	p := s.master.parameters
	if !p.Cutting {
		return false
	}
	if !p.Pricing {
		return true
	}
	if s.addConBuffer.Number() > 0 {
		return true
	}
	if p.PricingFreq > 0 && s.nIter%p.PricingFreq == 0 {
		return false
	}
	return true
}

func (s *Sub) separateHook() (int, error) {
	if !s.master.parameters.Cutting {
		return 0, nil
	}
	s.master.log.Debug("separating cutting planes", "id", s.id)
	return s.hooks.Separate(s)
}

func (s *Sub) setByLogImpHook() (bool, error) {
	vars, stats := s.hooks.SetByLogImp(s)
	newValues := false
	for i, v := range vars {
		nv, err := s.SetByStat(v, stats[i])
		if err != nil {
			return newValues, err
		}
		if nv {
			newValues = true
		}
	}
	if len(vars) > 0 {
		s.master.log.Debug("variables set by logical implications", "n", len(vars))
	}
	return newValues, nil
}

// ConstraintPoolSeparation separates the given pool (default: the cut
// pool) against the LP solution and buffers violated constraints.
func (s *Sub) ConstraintPoolSeparation(ranking RankingMode, pool ConPool, minViolation float64) int {
	if pool == nil {
		pool = s.master.cutPool
	}
	return pool.Separate(s.xVal, s.actVar, s, s.addConBuffer, minViolation, ranking)
}

// VariablePoolSeparation prices the given pool (default: the variable
// pool) against the dual solution and buffers violated variables.
func (s *Sub) VariablePoolSeparation(ranking RankingMode, pool VarPool, minViolation float64) int {
	if pool == nil {
		pool = s.master.varPool
	}
	return pool.Separate(s.yVal, s.actCon, s, s.addVarBuffer, minViolation, ranking)
}

// removeNonLiftableCons queues all non-liftable constraints for removal.
// It returns false if any were queued; the columns of priced variables
// could not be computed correctly while they are present.
func (s *Sub) removeNonLiftableCons() bool {
	if !s.genNonLiftCons {
		return true
	}
	n := 0
	for i := 0; i < s.NCon(); i++ {
		if c := s.Constraint(i); c != nil && !c.Liftable() {
			s.RemoveCon(i)
			n++
		}
	}
	s.genNonLiftCons = false
	if n > 0 {
		s.master.log.Debug("removing non-liftable constraints", "n", n)
		s.lpMethod = MethodPrimal
		return false
	}
	return true
}

func (s *Sub) chooseLpMethod(nVarRemoved, nConRemoved, nVarAdded, nConAdded int) LPMethod {
	method := MethodPrimal
	if s.nIter == 0 {
		if s == s.master.Root() {
			method = MethodPrimal
		} else {
			method = MethodDual
		}
	}
	if nConAdded > 0 {
		method = MethodDual
	} else if nConRemoved > 0 {
		method = MethodPrimal
	}
	if nVarAdded > 0 {
		method = MethodPrimal
	} else if nVarRemoved > 0 {
		method = MethodDual
	}
	if nConAdded > 0 && nVarAdded > 0 {
		method = MethodPrimal
	}
	return method
}

// RemoveCon queues active constraint i for removal at the start of the
// next iteration.
func (s *Sub) RemoveCon(i int) { s.removeConBuffer = append(s.removeConBuffer, i) }

// RemoveCons queues several constraints.
func (s *Sub) RemoveCons(indices []int) {
	s.removeConBuffer = append(s.removeConBuffer, indices...)
}

// RemoveVar queues active variable i for removal at the start of the next
// iteration.
func (s *Sub) RemoveVar(i int) { s.removeVarBuffer = append(s.removeVarBuffer, i) }

// RemoveVars queues several variables.
func (s *Sub) RemoveVars(indices []int) {
	s.removeVarBuffer = append(s.removeVarBuffer, indices...)
}

func (s *Sub) applyRemoveCons() int {
	if len(s.removeConBuffer) == 0 {
		return 0
	}
	sorted := sortedUnique(s.removeConBuffer, s.NCon())
	s.removeConBuffer = s.removeConBuffer[:0]

	if err := s.lp.RemoveCons(sorted); err != nil {
		panic(err)
	}
	s.actCon.Remove(sorted)
	s.slackStat = leftShift(s.slackStat, sorted)
	s.master.removedCons(len(sorted))
	s.master.log.Debug("removed constraints", "n", len(sorted))
	return len(sorted)
}

func (s *Sub) applyRemoveVars() int {
	if len(s.removeVarBuffer) == 0 {
		return 0
	}
	sorted := sortedUnique(s.removeVarBuffer, s.NVar())
	s.removeVarBuffer = s.removeVarBuffer[:0]

	if err := s.lp.RemoveVars(sorted); err != nil {
		panic(err)
	}
	s.actVar.Remove(sorted)
	s.fsVarStat = leftShiftPtr(s.fsVarStat, sorted)
	s.lpVarStat = leftShift(s.lpVarStat, sorted)
	s.lBound = leftShift(s.lBound, sorted)
	s.uBound = leftShift(s.uBound, sorted)
	s.xVal = leftShift(s.xVal, sorted)
	s.master.removedVars(len(sorted))
	s.master.log.Debug("removed variables", "n", len(sorted))
	return len(sorted)
}

// applyAddCons selects the best buffered constraints and adds them to the
// active set and the LP.
func (s *Sub) applyAddCons() int {
	s.addConBuffer.Sort(s.master.parameters.MaxConAdd)
	slots := s.addConBuffer.Extract(s.master.parameters.MaxConAdd)
	if len(slots) == 0 {
		return 0
	}

	if s.NCon()+len(slots) >= s.actCon.Max() {
		newMax := (s.actCon.Max()+len(slots))*11/10 + 1
		s.conRealloc(newMax)
	}

	cons := make([]Constraint, 0, len(slots))
	for _, slot := range slots {
		cons = append(cons, slot.ConVar())
		if !slot.ConVar().Liftable() {
			s.genNonLiftCons = true
		}
	}

	if s.master.parameters.ShowAverageCutDistance {
		avg := 0.0
		for _, c := range cons {
			avg += ConDistance(c, s.xVal, s.actVar)
		}
		avg /= float64(len(cons))
		s.master.log.Info("average distance of cuts", "distance", avg)
	}

	for range slots {
		s.slackStat = append(s.slackStat, SlackUnknown)
	}
	s.actCon.InsertSlots(slots)

	if err := s.lp.AddCons(cons); err != nil {
		panic(err)
	}
	s.master.addedCons(len(cons))
	s.master.log.Debug("added constraints", "n", len(cons))
	return len(cons)
}

// applyAddVars selects the best buffered variables and adds them to the
// active set and the LP.
func (s *Sub) applyAddVars() int {
	s.addVarBuffer.Sort(s.master.parameters.MaxVarAdd)
	slots := s.addVarBuffer.Extract(s.master.parameters.MaxVarAdd)
	if len(slots) == 0 {
		return 0
	}
	s.activateVars(slots)
	s.addVarsToLp(slots)
	s.tailOff.Reset()
	s.master.log.Debug("added variables", "n", len(slots))
	return len(slots)
}

// activateVars appends the new variables to the active set and the
// node-local arrays.
func (s *Sub) activateVars(slots []*VarSlot) {
	if s.NVar()+len(slots) >= s.actVar.Max() {
		newMax := (s.actVar.Max()+len(slots))*11/10 + 1
		s.varRealloc(newMax)
	}
	for _, slot := range slots {
		v := slot.ConVar()
		if v == nil {
			panic("abacus: sub: activating a void variable slot")
		}
		s.fsVarStat = append(s.fsVarStat, v.FsVarStat().Copy())
		s.lpVarStat = append(s.lpVarStat, LPVarUnknown)
		s.lBound = append(s.lBound, v.LBound())
		s.uBound = append(s.uBound, v.UBound())
	}
	s.actVar.InsertSlots(slots)
	s.master.addedVars(len(slots))
}

// addVarsToLp hands the new variables to the LP. Constraints are expanded
// around the column generation when several variables arrive.
func (s *Sub) addVarsToLp(slots []*VarSlot) {
	if s.lp == nil {
		return
	}
	vars := make([]Variable, 0, len(slots))
	stats := make([]*FSVarStat, 0, len(slots))
	lb := make([]float64, 0, len(slots))
	ub := make([]float64, 0, len(slots))
	for _, slot := range slots {
		v := slot.ConVar()
		vars = append(vars, v)
		stats = append(stats, v.FsVarStat())
		lb = append(lb, v.LBound())
		ub = append(ub, v.UBound())
	}

	expand := len(vars) > 1
	if expand {
		for i := 0; i < s.NCon(); i++ {
			expandConVar(s.Constraint(i))
		}
	}
	if err := s.lp.AddVars(vars, stats, lb, ub); err != nil {
		panic(err)
	}
	if expand {
		for i := 0; i < s.NCon(); i++ {
			compressConVar(s.Constraint(i))
		}
	}
}

func (s *Sub) varRealloc(newMax int) {
	s.actVar.Realloc(newMax)
}

func (s *Sub) conRealloc(newMax int) {
	s.actCon.Realloc(newMax)
}

// conEliminate queues redundant dynamic constraints for removal, governed
// by the configured mode and aging.
func (s *Sub) conEliminate() int {
	var remove []int
	switch s.master.parameters.ConElimMode {
	case ConElimNonBinding:
		remove = s.nonBindingConEliminate()
	case ConElimBasic:
		remove = s.basicConEliminate()
	default:
		return 0
	}
	s.RemoveCons(remove)
	if len(remove) > 0 {
		s.master.log.Debug("constraints eliminated", "n", len(remove))
	}
	return len(remove)
}

func (s *Sub) nonBindingConEliminate() []int {
	var remove []int
	age := s.master.parameters.ConElimAge - 1
	for i := 0; i < s.NCon(); i++ {
		c := s.Constraint(i)
		if c == nil || !c.convar().Dynamic() {
			continue
		}
		if math.Abs(s.lp.Slack(i)) > s.master.parameters.ConElimEps {
			if s.actCon.RedundantAge(i) >= age {
				remove = append(remove, i)
			} else {
				s.actCon.IncrementRedundantAge(i)
			}
		} else {
			s.actCon.ResetRedundantAge(i)
		}
	}
	return remove
}

func (s *Sub) basicConEliminate() []int {
	var remove []int
	age := s.master.parameters.ConElimAge - 1
	for i := 0; i < s.NCon(); i++ {
		c := s.Constraint(i)
		if c == nil || !c.convar().Dynamic() {
			continue
		}
		if s.slackStat[i] == SlackBasic {
			if s.actCon.RedundantAge(i) >= age {
				remove = append(remove, i)
			} else {
				s.actCon.IncrementRedundantAge(i)
			}
		} else {
			s.actCon.ResetRedundantAge(i)
		}
	}
	return remove
}

// varEliminate queues redundant dynamic variables for removal.
func (s *Sub) varEliminate() int {
	if s.master.parameters.VarElimMode != VarElimReducedCost {
		return 0
	}
	remove := s.redCostVarEliminate()
	s.RemoveVars(remove)
	if len(remove) > 0 {
		s.master.log.Debug("variables eliminated", "n", len(remove))
	}
	return len(remove)
}

func (s *Sub) redCostVarEliminate() []int {
	var remove []int
	max := s.master.OptSense().Max()
	age := s.master.parameters.VarElimAge - 1
	eps := s.master.MachineEps()

	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || !v.convar().Dynamic() || s.fsVarStat[i].FixedOrSet() {
			continue
		}
		if math.Abs(s.xVal[i]) >= eps {
			s.actVar.ResetRedundantAge(i)
			continue
		}
		bad := false
		if !s.lpVarStat[i].IsBasic() {
			rc := s.lp.Reco(i)
			if max {
				bad = rc < -s.master.parameters.VarElimEps
			} else {
				bad = rc > s.master.parameters.VarElimEps
			}
		}
		if bad {
			if s.actVar.RedundantAge(i) >= age {
				remove = append(remove, i)
			} else {
				s.actVar.IncrementRedundantAge(i)
			}
		} else {
			s.actVar.ResetRedundantAge(i)
		}
	}
	return remove
}

// IntegerFeasible reports whether every discrete active variable takes an
// integral value in the last LP solution.
func (s *Sub) IntegerFeasible() bool {
	eps := s.master.MachineEps()
	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || !v.VarType().Discrete() {
			continue
		}
		frac := fracPart(s.xVal[i])
		if frac > eps && frac < 1.0-eps {
			return false
		}
	}
	return true
}

// IgnoreInTailingOff excludes the next LP value from the tailing off
// analysis, e.g. when a round only added mandatory integrality cuts.
func (s *Sub) IgnoreInTailingOff() {
	s.master.log.Debug("next LP solution ignored in tailing off")
	s.ignoreInTailingOff = true
}

// SetMaxIterations bounds the iterations of the cutting plane loop of this
// node.
func (s *Sub) SetMaxIterations(max int) { s.maxIterations = max }

// guaranteed reports whether the quality guarantee is reached.
func (s *Sub) guaranteed() bool {
	lb := s.lowerBound()
	if math.Abs(lb) < s.master.MachineEps() {
		return math.Abs(s.upperBound()) < s.master.MachineEps()
	}
	if s.Guarantee()+s.master.MachineEps() < s.master.parameters.RequiredGuarantee {
		s.master.log.Info("subproblem guarantee reached", "id", s.id)
		s.master.setStatus(StatusGuaranteed)
		return true
	}
	return false
}

// Guarantee returns the relative gap of the subproblem in percent.
func (s *Sub) Guarantee() float64 {
	lb := s.lowerBound()
	if math.Abs(lb) < s.master.MachineEps() {
		if math.Abs(s.upperBound()) < s.master.MachineEps() {
			return 0.0
		}
		panic("abacus: sub: cannot compute guarantee with lower bound 0")
	}
	return math.Abs((s.upperBound() - lb) / lb * 100.0)
}

func (s *Sub) lowerBound() float64 {
	if s.master.OptSense().Max() {
		return s.master.PrimalBound()
	}
	return s.dualBound
}

func (s *Sub) upperBound() float64 {
	if s.master.OptSense().Min() {
		return s.master.PrimalBound()
	}
	return s.dualBound
}

func (s *Sub) infeasibleSub() {
	s.master.log.Info("infeasible subproblem", "id", s.id)
	if s.master.OptSense().Max() {
		s.dualBound = -s.master.Infinity()
	} else {
		s.dualBound = s.master.Infinity()
	}
	s.master.treeBounds(s)
}

// deactivate frees the heavy node-local resources. They are reallocated on
// the next activation.
func (s *Sub) deactivate() {
	if s.activated {
		s.hooks.Deactivate(s)
		s.activated = false
	}
	s.master.treePaint(s, vbcColorFor(s.status))

	s.tailOff = nil
	s.lp = nil
	if s.addVarBuffer != nil {
		s.addVarBuffer.clear()
		s.addVarBuffer = nil
	}
	if s.addConBuffer != nil {
		s.addConBuffer.clear()
		s.addConBuffer = nil
	}
	s.removeVarBuffer = nil
	s.removeConBuffer = nil
	s.xVal = nil
	s.yVal = nil

	// fathom() already deactivated the items and dropped the sets
	if s.actVar != nil {
		for i := 0; i < s.actVar.Number(); i++ {
			if v := s.actVar.ConVar(i); v != nil {
				v.convar().deactivate()
			}
		}
	}
	if s.actCon != nil {
		for i := 0; i < s.actCon.Number(); i++ {
			if c := s.actCon.ConVar(i); c != nil {
				c.convar().deactivate()
			}
		}
	}

	if s == s.master.Root() {
		s.master.setRootDualBound(s.dualBound)
	}
}
