// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	"fmt"
	"math"
	"sort"

	"github.com/luxfi/geth/common/prque"
)

// branching turns the node into an inner node of the tree: it consults the
// branch rule generation, creates the sons and pushes them into the open
// subproblems. Nodes at the maximal level are fathomed instead, and pausing
// or delayed branching puts the node back as dormant.
func (s *Sub) branching() (phase, error) {
	m := s.master

	if s.level == m.parameters.MaxLevel {
		m.log.Info("maximum enumeration level reached", "level", s.level)
		m.setStatus(StatusMaxLevel)
		return phaseFathoming, nil
	}

	if (s.hooks.Pausing(s) || m.delayedBranching(s.nOpt)) && !m.openSub.Empty() {
		m.log.Debug("making node dormant", "id", s.id)
		s.status = StatusDormant
		s.nDormantRounds = 0
		m.openSub.Insert(s)
		return phaseDone, nil
	}

	rules, err := s.hooks.GenerateBranchRules(s)
	if err != nil {
		return phaseDone, err
	}
	if rules == nil {
		rules, err = s.branchingOnVariable()
		if err != nil {
			return phaseDone, err
		}
	}
	if len(rules) == 0 {
		return phaseFathoming, nil
	}

	m.log.Info("branching", "id", s.id, "sons", len(rules))

	s.sons = make([]*Sub, 0, len(rules))
	for _, rule := range rules {
		son := s.hooks.GenerateSon(s, rule)
		m.openSub.Insert(son)
		s.sons = append(s.sons, son)
		m.treeNewNode(son)
	}

	s.status = StatusProcessed
	return phaseDone, nil
}

// branchingOnVariable is the default branching: select a branching
// variable and split on it, binary variables by setting, integer variables
// by bound intervals.
func (s *Sub) branchingOnVariable() ([]BranchRule, error) {
	branchVar, ok := s.selectBranchingVariable()
	if !ok {
		s.master.log.Info("no branching variable found", "id", s.id)
		return nil, nil
	}
	v := s.Variable(branchVar)
	s.master.log.Info("branching variable selected", "variable", branchVar,
		"type", v.VarType(), "value", s.xVal[branchVar], "cost", v.Obj())

	if v.VarType() == Binary {
		return []BranchRule{
			NewSetBranchRule(branchVar, SetToUpperBound),
			NewSetBranchRule(branchVar, SetToLowerBound),
		}, nil
	}

	splitVal := math.Floor(s.xVal[branchVar] + s.master.Eps())
	if splitVal >= s.uBound[branchVar] {
		splitVal--
	}
	return []BranchRule{
		NewBoundBranchRule(branchVar, splitVal+1.0, s.uBound[branchVar]),
		NewBoundBranchRule(branchVar, s.lBound[branchVar], splitVal),
	}, nil
}

// selectBranchingVariable picks the branching variable from the candidates
// of the configured strategy; with several candidates the pair of rules of
// each is ranked by limited LP re-solves.
func (s *Sub) selectBranchingVariable() (int, bool) {
	candidates := s.selectBranchingVariableCandidates()
	if len(candidates) == 0 {
		return 0, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	samples := make([][]BranchRule, len(candidates))
	for i, c := range candidates {
		samples[i] = []BranchRule{
			NewSetBranchRule(c, SetToUpperBound),
			NewSetBranchRule(c, SetToLowerBound),
		}
	}
	best := s.selectBestBranchingSample(samples)
	return candidates[best], true
}

// selectBranchingVariableCandidates collects up to
// NBranchingVariableCandidates candidates, binary variables before integer
// ones, fractional before arbitrary unfixed ones.
func (s *Sub) selectBranchingVariableCandidates() []int {
	n := s.master.parameters.NBranchingVariableCandidates
	var candidates []int
	switch s.master.parameters.BranchingStrategy {
	case CloseHalfExpensive:
		candidates = s.closeHalfExpensive(n, Binary)
		if len(candidates) == 0 {
			candidates = s.closeHalfExpensive(n, Integer)
		}
	default:
		candidates = s.closeHalf(n, Binary)
		if len(candidates) == 0 {
			candidates = s.closeHalf(n, Integer)
		}
	}
	if len(candidates) == 0 {
		candidates = s.findNonFixedSet(n, Binary)
	}
	if len(candidates) == 0 {
		candidates = s.findNonFixedSet(n, Integer)
	}
	return candidates
}

// closeHalf returns up to max variables of the given type whose LP value is
// closest to one half.
func (s *Sub) closeHalf(max int, branchVarType VarType) []int {
	if branchVarType == Continuous {
		panic("abacus: sub: cannot branch on a continuous variable")
	}
	// max-queue keyed by the distance from one half: the worst candidate
	// sits on top and is displaced first
	closest := prque.New[float64, int](nil)

	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || v.VarType() != branchVarType || s.fsVarStat[i].FixedOrSet() || s.lBound[i] == s.uBound[i] {
			continue
		}
		diff := math.Abs(fracPart(s.xVal[i]) - 0.5)
		if diff >= 0.5-s.master.MachineEps() {
			continue
		}
		closest.Push(i, diff)
		if closest.Size() > max {
			closest.Pop()
		}
	}

	out := make([]int, 0, closest.Size())
	for !closest.Empty() {
		i, _ := closest.Pop()
		out = append(out, i)
	}
	// pop order is worst first; the best candidate should lead
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// closeHalfExpensive restricts the close-to-half candidates to a scaled
// fraction interval and prefers large absolute objective coefficients
// within it.
func (s *Sub) closeHalfExpensive(max int, branchVarType VarType) []int {
	if branchVarType == Continuous {
		panic("abacus: sub: cannot branch on a continuous variable")
	}
	eps := s.master.MachineEps()

	lower := eps
	upper := 1.0 - eps
	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || v.VarType() != branchVarType || s.fsVarStat[i].FixedOrSet() || s.lBound[i] == s.uBound[i] {
			continue
		}
		fraction := fracPart(s.xVal[i])
		if fraction <= 0.5 && fraction > lower {
			lower = fraction
		}
		if fraction >= 0.5 && fraction < upper {
			upper = fraction
		}
	}
	if lower == eps && upper == 1.0-eps {
		return nil
	}
	const scale = 0.25
	lower = (1.0 - scale) * lower
	upper = upper + scale*(1.0-upper)

	// max-queue keyed by negated cost: cheapest candidate on top
	candidates := prque.New[float64, int](nil)
	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || v.VarType() != branchVarType || s.fsVarStat[i].FixedOrSet() {
			continue
		}
		fraction := fracPart(s.xVal[i])
		if fraction < lower || fraction > upper {
			continue
		}
		candidates.Push(i, -math.Abs(v.Obj()))
		if candidates.Size() > max {
			candidates.Pop()
		}
	}
	if candidates.Size() == 0 {
		panic("abacus: sub: closeHalfExpensive lost the fractional variable")
	}
	out := make([]int, 0, candidates.Size())
	for !candidates.Empty() {
		i, _ := candidates.Pop()
		out = append(out, i)
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// findNonFixedSet falls back to any variables of the type that are neither
// fixed nor set.
func (s *Sub) findNonFixedSet(max int, branchVarType VarType) []int {
	if branchVarType == Continuous {
		panic("abacus: sub: cannot branch on a continuous variable")
	}
	var out []int
	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || v.VarType() != branchVarType || s.fsVarStat[i].FixedOrSet() || s.lBound[i] == s.uBound[i] {
			continue
		}
		out = append(out, i)
		if len(out) == max {
			break
		}
	}
	return out
}

// selectBestBranchingSample ranks every sample by LP re-solves and returns
// the index of the best one.
func (s *Sub) selectBestBranchingSample(samples [][]BranchRule) int {
	ranks := make([][]float64, len(samples))
	for i, sample := range samples {
		ranks[i] = make([]float64, len(sample))
		for j, rule := range sample {
			ranks[i][j] = s.lpRankBranchingRule(rule, s.master.parameters.NStrongBranchingIterations)
		}
		s.master.log.Debug("branching sample ranked", "sample", i, "ranks", fmt.Sprint(ranks[i]))
	}
	best := 0
	for i := 1; i < len(samples); i++ {
		if s.compareBranchingSampleRanks(ranks[best], ranks[i]) < 0 {
			best = i
		}
	}
	s.master.log.Debug("selected branching sample", "sample", best)
	return best
}

// lpRankBranchingRule ranks a single rule: the rule is applied to the LP,
// the LP is re-solved under an iteration limit from the final basis of the
// node, and the objective value is the rank. The rule is removed again
// afterwards.
func (s *Sub) lpRankBranchingRule(rule BranchRule, iterLimit int) float64 {
	solver := s.lp.Solver()

	oldLimit := -1
	if iterLimit >= 0 {
		if limit, err := solver.SimplexIterationLimit(); err != nil {
			s.master.log.Warn("getting the iteration limit of the LP solver failed", "err", err)
		} else {
			oldLimit = limit
			if err := solver.SetSimplexIterationLimit(iterLimit); err != nil {
				s.master.log.Warn("setting the iteration limit of the LP solver failed", "err", err)
				oldLimit = -1
			}
		}
	}

	if err := s.lp.LoadBasis(s.lpVarStat, s.slackStat); err != nil {
		s.master.log.Warn("loading the node basis failed", "err", err)
	}

	rule.ExtractLP(s.lp)
	_, err := s.lp.Optimize(MethodDual)

	var value float64
	switch {
	case err != nil || s.lp.Infeasible():
		if s.master.OptSense().Max() {
			value = -s.master.Infinity()
		} else {
			value = s.master.Infinity()
		}
	default:
		value = s.lp.Value()
	}

	if oldLimit >= 0 {
		if err := solver.SetSimplexIterationLimit(oldLimit); err != nil {
			panic("abacus: sub: resetting the iteration limit of the LP solver failed")
		}
	}
	rule.UnExtractLP(s.lp)
	return value
}

// compareBranchingSampleRanks prefers the sample whose worst son bound is
// best: ranks are mapped so a larger key means a stronger bound, compared
// from the worst component upwards, and ties resolve by the next
// component. It returns 1 if rank1 is better, -1 if rank2 is better, 0 on
// a complete tie.
func (s *Sub) compareBranchingSampleRanks(rank1, rank2 []float64) int {
	key := func(r []float64) []float64 {
		out := append([]float64(nil), r...)
		if s.master.OptSense().Max() {
			// son LP values bound from above: smaller is stronger
			for i := range out {
				out[i] = -out[i]
			}
		}
		sort.Float64s(out)
		return out
	}
	r1 := key(rank1)
	r2 := key(rank2)

	n := len(r1)
	if len(r2) < n {
		n = len(r2)
	}
	for i := 0; i < n; i++ {
		if !s.master.equal(r1[i], r2[i]) {
			if r1[i] > r2[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// fathoming fathoms the node including the recursive bookkeeping along its
// ancestors.
func (s *Sub) fathoming() phase {
	s.master.log.Debug("fathoming", "id", s.id)
	s.fathom(true)
	return phaseDone
}

// fathom removes the node from the tree: active items are deactivated,
// node-local arrays are freed and the fathoming recurses upward. When the
// remaining-tree root keeps exactly one unfathomed son, that son becomes
// the new remaining-tree root; reoptimize controls whether it
// is re-optimized to obtain better fixing candidates.
func (s *Sub) fathom(reoptimize bool) {
	m := s.master

	if s.status == StatusActive {
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
	}

	s.status = StatusFathomed
	m.treePaint(s, vbcFathomed)

	// tighten the dual bound from the sons; heuristic separation or a
	// reoptimization can leave the sons with better bounds
	if len(s.sons) > 0 {
		newDualBound := s.sons[0].dualBound
		for _, son := range s.sons[1:] {
			if m.OptSense().Max() {
				if son.dualBound > newDualBound {
					newDualBound = son.dualBound
				}
			} else if son.dualBound < newDualBound {
				newDualBound = son.dualBound
			}
		}
		if s.betterDual(newDualBound) {
			s.setDualBound(newDualBound)
		}
	}

	if s.actVar != nil {
		s.actVar.release()
		s.actVar = nil
	}
	if s.actCon != nil {
		s.actCon.release()
		s.actCon = nil
	}
	s.fsVarStat = nil
	s.lpVarStat = nil
	s.lBound = nil
	s.uBound = nil
	s.slackStat = nil
	s.branchRule = nil

	if s == m.Root() {
		m.log.Debug("root node fathomed")
		return
	}

	unfathomed := 0
	survivor := -1
	for i, son := range s.father.sons {
		if son.status != StatusFathomed {
			unfathomed++
			survivor = i
		}
	}
	switch {
	case unfathomed == 0:
		s.father.fathom(reoptimize)
	case unfathomed == 1 && s.father == m.RRoot():
		m.setRRoot(s.father.sons[survivor], reoptimize)
	}
}

// FathomTheSubTree fathoms the complete subtree rooted at s, removing
// unprocessed and dormant descendants from the open subproblems.
func (s *Sub) FathomTheSubTree() {
	if s.status == StatusFathomed {
		return
	}
	s.master.log.Debug("fathoming complete subtree", "id", s.id)
	if s.status == StatusDormant || s.status == StatusUnprocessed {
		s.master.openSub.Remove(s)
	}
	if len(s.sons) > 0 {
		for _, son := range s.sons {
			son.FathomTheSubTree()
		}
		return
	}
	s.fathom(false)
}

// reoptimize re-optimizes an already processed node, e.g. the new root of
// the remaining tree to get better conditions for fixing by reduced costs.
func (s *Sub) reoptimize() error {
	s.master.log.Info("reoptimizing subproblem", "id", s.id, "level", s.level)

	ph, err := s.activate()
	if err != nil {
		return err
	}
	if ph == phaseFathoming {
		s.FathomTheSubTree()
	} else {
		ph, err = s.cutting()
		if err != nil {
			return err
		}
		if ph == phaseFathoming {
			s.FathomTheSubTree()
		}
	}
	s.deactivate()
	s.status = StatusProcessed
	return nil
}
