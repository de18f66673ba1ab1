// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/coin-or/abacus-go/utils"
)

// MasterStatus is the final status of the optimization.
type MasterStatus int

const (
	StatusProcessing MasterStatus = iota
	StatusOptimal
	StatusGuaranteed
	StatusMaxLevel
	StatusMaxCpuTime
	StatusMaxCowTime
	StatusExceptionFathom
	StatusOutOfMemory
	StatusError
)

func (s MasterStatus) String() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusOptimal:
		return "Optimal"
	case StatusGuaranteed:
		return "Guaranteed"
	case StatusMaxLevel:
		return "MaxLevel"
	case StatusMaxCpuTime:
		return "MaxCpuTime"
	case StatusMaxCowTime:
		return "MaxCowTime"
	case StatusExceptionFathom:
		return "ExceptionFathom"
	case StatusOutOfMemory:
		return "OutOfMemory"
	default:
		return "Error"
	}
}

// TreeLogger receives the enumeration tree events for visualization.
type TreeLogger interface {
	NewNode(id, fatherID, color int)
	PaintNode(id, color int)
	NodeBounds(id int, lb, ub float64)
}

// VBC tool color codes of the node states.
const (
	vbcUnprocessed = 3
	vbcActive      = 6
	vbcProcessed   = 1
	vbcDormant     = 5
	vbcFathomed    = 2
)

func vbcColorFor(status SubStatus) int {
	switch status {
	case StatusActive:
		return vbcActive
	case StatusDormant:
		return vbcDormant
	case StatusFathomed:
		return vbcFathomed
	case StatusProcessed:
		return vbcProcessed
	default:
		return vbcUnprocessed
	}
}

// Master is the global coordinator of a branch-and-cut optimization: it
// owns the pools, the open subproblems, the fixing candidates, the global
// bounds and parameters, and drives the main optimization loop.
type Master struct {
	problemName string
	log         log.Logger
	parameters  Parameters
	optSense    OptSense
	clock       utils.Clock

	status MasterStatus

	root  *Sub
	rRoot *Sub

	openSub *OpenSub
	fixCand *FixCand

	conPool ConPool
	cutPool ConPool
	varPool VarPool

	initialConSlots []*ConSlot
	initialVarSlots []*VarSlot

	primalBound   float64
	dualBound     float64
	rootDualBound float64
	feasibleFound bool

	solverFactory func() LPSolver
	treeLog       TreeLogger

	startTime time.Time

	subIDs        int
	nSubSelected  int
	nLp           int
	nFixed        int
	nAddedCons    int
	nRemovedCons  int
	nAddedVars    int
	nRemovedVars  int

	// metrics are registered only when a namespace is configured
	mSubs        metric.Counter
	mLps         metric.Counter
	mOpenSubs    metric.Gauge
	mPrimalBound metric.Gauge
	mDualBound   metric.Gauge
	mCons        metric.Counter
	mVars        metric.Counter
	mFixed       metric.Counter
}

// Option configures a Master.
type Option func(*Master)

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Option { return func(m *Master) { m.log = l } }

// WithSolverFactory sets the LP backend factory; one backend instance is
// created per active subproblem.
func WithSolverFactory(f func() LPSolver) Option {
	return func(m *Master) { m.solverFactory = f }
}

// WithTreeLogger attaches a tree-visualization log.
func WithTreeLogger(t TreeLogger) Option { return func(m *Master) { m.treeLog = t } }

// WithClock replaces the time source, e.g. for budget tests.
func WithClock(c utils.Clock) Option { return func(m *Master) { m.clock = c } }

// WithMetricsNamespace registers throughput and bound metrics under the
// namespace.
func WithMetricsNamespace(ns string) Option {
	return func(m *Master) {
		m.mSubs = metric.NewCounter(metric.CounterOpts{Name: ns + "/subsProcessed", Help: "subproblems processed"})
		m.mLps = metric.NewCounter(metric.CounterOpts{Name: ns + "/lpsSolved", Help: "linear programs solved"})
		m.mOpenSubs = metric.NewGauge(metric.GaugeOpts{Name: ns + "/openSubs", Help: "open subproblems"})
		m.mPrimalBound = metric.NewGauge(metric.GaugeOpts{Name: ns + "/primalBound", Help: "best feasible solution value"})
		m.mDualBound = metric.NewGauge(metric.GaugeOpts{Name: ns + "/dualBound", Help: "global dual bound"})
		m.mCons = metric.NewCounter(metric.CounterOpts{Name: ns + "/consAdded", Help: "constraints added to LPs"})
		m.mVars = metric.NewCounter(metric.CounterOpts{Name: ns + "/varsAdded", Help: "variables added to LPs"})
		m.mFixed = metric.NewCounter(metric.CounterOpts{Name: ns + "/varsFixed", Help: "variables fixed permanently"})
	}
}

// NewMaster creates the coordinator for one optimization.
func NewMaster(problemName string, optSense OptSense, parameters Parameters, opts ...Option) *Master {
	if optSense == OptUnknown {
		panic("abacus: master: optimization sense must be known")
	}
	m := &Master{
		problemName: problemName,
		log:         log.New(),
		parameters:  parameters,
		optSense:    optSense,
		clock:       utils.WallClock{},
		status:      StatusProcessing,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.openSub = NewOpenSub(m)
	m.fixCand = NewFixCand(m)

	if optSense.Max() {
		m.primalBound = -m.Infinity()
		m.dualBound = m.Infinity()
	} else {
		m.primalBound = m.Infinity()
		m.dualBound = -m.Infinity()
	}
	m.rootDualBound = m.dualBound
	return m
}

// InitializePools fills the default constraint and variable pools with the
// problem formulation and creates the cut pool. The initial items define
// the active sets of the root subproblem.
func (m *Master) InitializePools(constraints []Constraint, variables []Variable, varPoolSize, cutPoolSize int, cutPoolNonDupl bool) {
	conPool := NewStandardConPool(m, len(constraints)+1, true)
	varPool := NewStandardVarPool(m, utils.Max(varPoolSize, len(variables)+1), true)

	for _, c := range constraints {
		slot, _ := conPool.Insert(c)
		if slot == nil {
			panic("abacus: master: constraint pool too small")
		}
		m.initialConSlots = append(m.initialConSlots, slot)
	}
	for _, v := range variables {
		slot, _ := varPool.Insert(v)
		if slot == nil {
			panic("abacus: master: variable pool too small")
		}
		m.initialVarSlots = append(m.initialVarSlots, slot)
	}
	m.conPool = conPool
	m.varPool = varPool
	if cutPoolNonDupl {
		m.cutPool = NewNonDuplConPool(m, cutPoolSize, true)
	} else {
		m.cutPool = NewStandardConPool(m, cutPoolSize, true)
	}
}

// Accessors.

func (m *Master) ProblemName() string     { return m.problemName }
func (m *Master) Log() log.Logger         { return m.log }
func (m *Master) Parameters() *Parameters { return &m.parameters }
func (m *Master) OptSense() OptSense      { return m.optSense }
func (m *Master) Status() MasterStatus    { return m.status }
func (m *Master) Root() *Sub              { return m.root }
func (m *Master) RRoot() *Sub             { return m.rRoot }
func (m *Master) OpenSub() *OpenSub       { return m.openSub }
func (m *Master) FixCand() *FixCand       { return m.fixCand }
func (m *Master) ConPool() ConPool        { return m.conPool }
func (m *Master) CutPool() ConPool        { return m.cutPool }
func (m *Master) VarPool() VarPool        { return m.varPool }

// Eps returns the zero tolerance for violation tests.
func (m *Master) Eps() float64 { return m.parameters.Eps }

// MachineEps returns the tolerance for coefficient comparisons.
func (m *Master) MachineEps() float64 { return m.parameters.MachineEps }

// Infinity returns the value treated as infinite.
func (m *Master) Infinity() float64 { return m.parameters.Infinity }

// equal compares within the zero tolerance.
func (m *Master) equal(a, b float64) bool { return math.Abs(a-b) < m.parameters.Eps }

// PrimalBound returns the value of the best known feasible solution.
func (m *Master) PrimalBound() float64 { return m.primalBound }

// DualBound returns the global dual bound.
func (m *Master) DualBound() float64 { return m.dualBound }

// RootDualBound returns the dual bound of the root at its last
// deactivation.
func (m *Master) RootDualBound() float64 { return m.rootDualBound }

// FeasibleFound reports whether any feasible solution is known.
func (m *Master) FeasibleFound() bool { return m.feasibleFound }

// NSub returns the number of subproblems created.
func (m *Master) NSub() int { return m.subIDs }

// NSubSelected returns how many subproblems have been selected for
// processing.
func (m *Master) NSubSelected() int { return m.nSubSelected }

// NLp returns the number of LPs solved.
func (m *Master) NLp() int { return m.nLp }

// NFixed returns the number of permanently fixed variables.
func (m *Master) NFixed() int { return m.nFixed }

// LowerBound returns the global lower bound on the optimum.
func (m *Master) LowerBound() float64 {
	if m.optSense.Max() {
		return m.primalBound
	}
	return m.dualBound
}

// UpperBound returns the global upper bound on the optimum.
func (m *Master) UpperBound() float64 {
	if m.optSense.Max() {
		return m.dualBound
	}
	return m.primalBound
}

func (m *Master) nextSubID() int {
	m.subIDs++
	return m.subIDs
}

func (m *Master) newSolver() LPSolver {
	if m.solverFactory == nil {
		panic("abacus: master: no LP solver factory configured")
	}
	return m.solverFactory()
}

// betterPrimal reports whether x improves the primal bound.
func (m *Master) betterPrimal(x float64) bool {
	if m.optSense.Max() {
		return x > m.primalBound
	}
	return x < m.primalBound
}

// setPrimalBound installs an improved primal bound; worsening it is an
// invariant violation.
func (m *Master) setPrimalBound(x float64) {
	if m.feasibleFound && !m.betterPrimal(x) && x != m.primalBound {
		panic("abacus: master: primal bound must improve monotonically")
	}
	m.primalBound = x
	m.feasibleFound = true
	m.log.Info("primal bound improved", "bound", x)
	if m.mPrimalBound != nil {
		m.mPrimalBound.Set(x)
	}
}

// primalViolated reports whether the dual bound x cannot beat the primal
// bound anymore. With no primal bound known the bound is infinite and
// nothing finite violates it.
func (m *Master) primalViolated(x float64) bool {
	if m.optSense.Max() {
		return x <= m.primalBound+m.parameters.Eps
	}
	return x >= m.primalBound-m.parameters.Eps
}

// betterDual reports whether x improves the global dual bound.
func (m *Master) betterDual(x float64) bool {
	if m.optSense.Max() {
		return x < m.dualBound
	}
	return x > m.dualBound
}

func (m *Master) setDualBound(x float64) {
	if !m.betterDual(x) && x != m.dualBound {
		panic("abacus: master: dual bound must improve monotonically")
	}
	m.dualBound = x
	if m.mDualBound != nil {
		m.mDualBound.Set(x)
	}
}

func (m *Master) setRootDualBound(x float64) { m.rootDualBound = x }

// dualRound rounds a dual bound to the next integral value when all
// feasible solutions are known to have integral objective value. The same
// rounding applies at every bound comparison site.
func (m *Master) dualRound(x float64) float64 {
	if !m.parameters.ObjInteger {
		return x
	}
	if m.optSense.Max() {
		return math.Floor(x + m.parameters.Eps)
	}
	return math.Ceil(x - m.parameters.Eps)
}

// Guarantee returns the relative gap between primal and dual bound in
// percent.
func (m *Master) Guarantee() float64 {
	lb := m.LowerBound()
	if math.Abs(lb) < m.MachineEps() {
		if math.Abs(m.UpperBound()) < m.MachineEps() {
			return 0.0
		}
		return m.Infinity()
	}
	return math.Abs((m.UpperBound() - lb) / lb * 100.0)
}

// guaranteed reports whether the required guarantee is reached globally.
func (m *Master) guaranteed() bool {
	if m.parameters.RequiredGuarantee <= 0 || !m.feasibleFound {
		return false
	}
	return m.Guarantee()+m.MachineEps() <= m.parameters.RequiredGuarantee
}

func (m *Master) setStatus(s MasterStatus) {
	if m.status == StatusProcessing {
		m.status = s
	}
}

// delayedBranching reports whether a node processed nOpt times should stay
// dormant instead of branching.
func (m *Master) delayedBranching(nOpt int) bool {
	return nOpt <= m.parameters.DbThreshold
}

func (m *Master) cpuTimeExceeded() bool {
	return m.clock.Now().Sub(m.startTime) > m.parameters.MaxCpuTime
}

func (m *Master) cowTimeExceeded() bool {
	return m.clock.Now().Sub(m.startTime) > m.parameters.MaxCowTime
}

// enumerationStrategy compares two open subproblems; a positive result
// prefers s1.
func (m *Master) enumerationStrategy(s1, s2 *Sub) int {
	switch m.parameters.EnumerationStrategy {
	case BreadthFirst:
		return m.breadthFirstSearch(s1, s2)
	case DepthFirst:
		return m.depthFirstSearch(s1, s2)
	case DiveAndBest:
		if m.feasibleFound {
			return m.bestFirstSearch(s1, s2)
		}
		return m.depthFirstSearch(s1, s2)
	default:
		return m.bestFirstSearch(s1, s2)
	}
}

func (m *Master) bestFirstSearch(s1, s2 *Sub) int {
	if m.optSense.Max() {
		if s1.dualBound > s2.dualBound {
			return 1
		}
		if s1.dualBound < s2.dualBound {
			return -1
		}
	} else {
		if s1.dualBound < s2.dualBound {
			return 1
		}
		if s1.dualBound > s2.dualBound {
			return -1
		}
	}
	return m.equalSubCompare(s1, s2)
}

func (m *Master) breadthFirstSearch(s1, s2 *Sub) int {
	if s1.level < s2.level {
		return 1
	}
	if s1.level > s2.level {
		return -1
	}
	if s1.id < s2.id {
		return 1
	}
	return -1
}

func (m *Master) depthFirstSearch(s1, s2 *Sub) int {
	if s1.level > s2.level {
		return 1
	}
	if s1.level < s2.level {
		return -1
	}
	return m.equalSubCompare(s1, s2)
}

// equalSubCompare breaks ties: among sons whose branching set a variable,
// the one set to the upper bound is preferred.
func (m *Master) equalSubCompare(s1, s2 *Sub) int {
	r1, ok1 := s1.branchRule.(*SetBranchRule)
	r2, ok2 := s2.branchRule.(*SetBranchRule)
	if !ok1 || !ok2 {
		return 0
	}
	switch {
	case r1.SetToUpperBound() && !r2.SetToUpperBound():
		return 1
	case !r1.SetToUpperBound() && r2.SetToUpperBound():
		return -1
	default:
		return 0
	}
}

// Optimize runs the branch-and-cut main loop with hooks as the capability
// set of every subproblem.
func (m *Master) Optimize(hooks SubHooks) (MasterStatus, error) {
	if m.varPool == nil {
		return StatusError, errors.New("abacus: master: pools not initialized")
	}
	m.startTime = m.clock.Now()
	m.initializePrimalBound()
	m.detectIntegerObjective()

	m.root = NewRootSub(m, hooks)
	m.rRoot = m.root
	m.openSub.Insert(m.root)
	m.treeNewNode(m.root)

	m.log.Info("branch and cut started", "problem", m.problemName,
		"sense", m.optSense, "strategy", m.parameters.EnumerationStrategy)

	for !m.openSub.Empty() {
		if m.guaranteed() {
			m.setStatus(StatusGuaranteed)
			m.openSub.Prune()
			break
		}
		if m.status == StatusMaxCpuTime || m.status == StatusMaxCowTime || m.status == StatusExceptionFathom {
			m.openSub.Prune()
			break
		}
		sub := m.openSub.Select()
		if sub == nil {
			break
		}
		m.nSubSelected++
		if m.mSubs != nil {
			m.mSubs.Add(1)
		}
		if err := sub.Optimize(); err != nil {
			m.status = StatusError
			return m.status, err
		}
	}

	if m.status == StatusProcessing {
		m.status = StatusOptimal
		if m.feasibleFound {
			// the enumeration is exhausted, the incumbent is optimal
			m.setDualBound(m.primalBound)
		} else if m.betterDual(m.rootDualBound) {
			// no feasible solution exists; the root's final dual bound is
			// the sense's negative infinity
			m.setDualBound(m.rootDualBound)
		}
	}

	m.log.Info("branch and cut finished", "status", m.status,
		"subs", m.nSubSelected, "lps", m.nLp,
		"primalBound", m.primalBound, "dualBound", m.dualBound,
		"feasible", m.feasibleFound)
	return m.status, nil
}

// ExitCode maps the final status to a process exit code: zero for Optimal
// and Guaranteed, nonzero otherwise.
func (m *Master) ExitCode() int {
	switch m.status {
	case StatusOptimal, StatusGuaranteed:
		return 0
	case StatusMaxCpuTime:
		return 2
	case StatusMaxCowTime:
		return 3
	case StatusMaxLevel:
		return 4
	case StatusExceptionFathom:
		return 5
	default:
		return 1
	}
}

// initializePrimalBound seeds the primal bound from the optimum file when
// PbMode requests it.
func (m *Master) initializePrimalBound() {
	if m.parameters.PbMode == NoPrimalBound {
		return
	}
	opt, err := m.knownOptimum()
	if err != nil {
		m.log.Warn("no known optimum found", "problem", m.problemName, "err", err)
		return
	}
	if m.parameters.PbMode == OptimumOne {
		if m.optSense.Max() {
			opt--
		} else {
			opt++
		}
	}
	m.primalBound = opt
	m.feasibleFound = m.parameters.PbMode == Optimum
	m.log.Info("primal bound initialized", "bound", opt)
}

// knownOptimum looks the problem name up in the optimum file, a line-based
// table of name/value pairs.
func (m *Master) knownOptimum() (float64, error) {
	f, err := os.Open(m.parameters.OptimumFileName)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != m.problemName {
			continue
		}
		return strconv.ParseFloat(fields[1], 64)
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("problem %q not in optimum file", m.problemName)
}

// detectIntegerObjective turns on integer-objective rounding when every
// initial variable is discrete with an integral objective coefficient.
func (m *Master) detectIntegerObjective() {
	if m.parameters.ObjInteger || len(m.initialVarSlots) == 0 {
		return
	}
	for _, slot := range m.initialVarSlots {
		v := slot.ConVar()
		if v == nil || !v.VarType().Discrete() {
			return
		}
		if frac := fracPart(v.Obj()); frac > m.MachineEps() && frac < 1.0-m.MachineEps() {
			return
		}
	}
	m.parameters.ObjInteger = true
	m.log.Info("objective function values of feasible solutions are integer")
}

// setRRoot installs a new root of the remaining tree.
func (m *Master) setRRoot(sub *Sub, reoptimize bool) {
	m.rRoot = sub
	m.log.Info("new root of remaining tree", "id", sub.id)
	if m.parameters.NewRootReOptimize && reoptimize && sub.status == StatusProcessed {
		if err := sub.reoptimize(); err != nil {
			m.log.Error("reoptimization of new remaining root failed", "err", err)
		}
	}
}

// Statistics updates.

func (m *Master) countLp() {
	m.nLp++
	if m.mLps != nil {
		m.mLps.Add(1)
	}
}

func (m *Master) newFixed(n int) {
	m.nFixed += n
	if m.mFixed != nil {
		m.mFixed.Add(float64(n))
	}
}

func (m *Master) addedCons(n int) {
	m.nAddedCons += n
	if m.mCons != nil {
		m.mCons.Add(float64(n))
	}
}

func (m *Master) removedCons(n int) { m.nRemovedCons += n }

func (m *Master) addedVars(n int) {
	m.nAddedVars += n
	if m.mVars != nil {
		m.mVars.Add(float64(n))
	}
}

func (m *Master) removedVars(n int) { m.nRemovedVars += n }

func (m *Master) observeOpenSubs(n int) {
	if m.mOpenSubs != nil {
		m.mOpenSubs.Set(float64(n))
	}
}

// Tree log forwarding; all methods tolerate a missing tree logger.

func (m *Master) treeNewNode(s *Sub) {
	if m.treeLog == nil {
		return
	}
	father := 0
	if s.father != nil {
		father = s.father.id
	}
	m.treeLog.NewNode(s.id, father, vbcUnprocessed)
}

func (m *Master) treePaint(s *Sub, color int) {
	if m.treeLog == nil {
		return
	}
	m.treeLog.PaintNode(s.id, color)
}

func (m *Master) treeBounds(s *Sub) {
	if m.treeLog == nil {
		return
	}
	if m.optSense.Max() {
		m.treeLog.NodeBounds(s.id, m.primalBound, s.dualBound)
	} else {
		m.treeLog.NodeBounds(s.id, s.dualBound, m.primalBound)
	}
}
