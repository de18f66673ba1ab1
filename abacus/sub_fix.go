// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// fixAndSet runs both propagation engines: permanent fixing followed by
// subtree-local setting. It reports whether a variable was fixed or set to
// a value different from its LP value; the next LP must then be re-solved
// before further separation.
func (s *Sub) fixAndSet() (newValues bool, err error) {
	_, nv, err := s.fixing(true)
	newValues = newValues || nv
	if err != nil {
		return newValues, err
	}
	nv, err = s.setting()
	newValues = newValues || nv
	return newValues, err
}

// fixing fixes variables by reduced cost and by logical implications.
// saveCand refreshes the candidate snapshot of the remaining-tree root.
func (s *Sub) fixing(saveCand bool) (nFixed int, newValues bool, err error) {
	n, nv, err := s.fixByRedCost(saveCand)
	nFixed += n
	newValues = newValues || nv
	if err != nil {
		return nFixed, newValues, err
	}
	n, nv, err = s.fixByLogImpHook()
	nFixed += n
	newValues = newValues || nv
	return nFixed, newValues, err
}

// setting sets variables by reduced cost and by logical implications.
func (s *Sub) setting() (newValues bool, err error) {
	if err = s.setByRedCost(); err != nil {
		return false, err
	}
	nv, err := s.setByLogImpHook()
	return nv, err
}

// fixByRedCost applies the master's fixing candidates and reconciles the
// local statuses with the new global fixings.
func (s *Sub) fixByRedCost(saveCand bool) (nFixed int, newValues bool, err error) {
	if !s.master.parameters.FixSetByRedCost {
		return 0, false, nil
	}
	if s == s.master.RRoot() && saveCand {
		s.master.fixCand.SaveCandidates(s)
	}
	s.master.fixCand.FixByRedCost(s.addVarBuffer)

	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil {
			continue
		}
		global := v.FsVarStat()
		if global.Fixed() && global.Status() != s.fsVarStat[i].Status() {
			nv, ferr := s.FixByStat(i, global)
			if ferr != nil {
				return nFixed, newValues, ferr
			}
			nFixed++
			newValues = newValues || nv
		}
	}
	return nFixed, newValues, nil
}

func (s *Sub) fixByLogImpHook() (nFixed int, newValues bool, err error) {
	vars, stats := s.hooks.FixByLogImp(s)
	for i, idx := range vars {
		nv, ferr := s.FixByStat(idx, stats[i])
		if ferr != nil {
			err = ferr
		}
		newValues = newValues || nv
		nFixed++
	}
	if len(vars) > 0 {
		s.master.log.Debug("variables fixed by logical implications", "n", len(vars), "contradiction", err != nil)
	}
	return nFixed, newValues, err
}

// setByRedCost sets discrete unfixed variables that are non-basic at a
// bound when the bound implied by their reduced cost already violates the
// primal bound. The analysis mirrors one unit of movement away from the
// bound, so it applies to discrete variables only.
func (s *Sub) setByRedCost() error {
	if !s.master.parameters.FixSetByRedCost {
		return nil
	}
	m := s.master
	nSet := 0
	max := m.OptSense().Max()

	for i := 0; i < s.NVar(); i++ {
		v := s.Variable(i)
		if v == nil || !v.VarType().Discrete() || v.FsVarStat().Fixed() {
			continue
		}
		lpVal := s.lp.Value()
		reco := s.lp.Reco(i)
		switch s.lpVarStat[i] {
		case AtUpperBound:
			violated := false
			if max {
				violated = lpVal-reco+m.Eps() < m.PrimalBound()
			} else {
				violated = lpVal-reco-m.Eps() > m.PrimalBound()
			}
			if violated {
				if _, err := s.Set(i, SetToUpperBound); err != nil {
					return err
				}
				nSet++
			}
		case AtLowerBound:
			violated := false
			if max {
				violated = lpVal+reco+m.Eps() < m.PrimalBound()
			} else {
				violated = lpVal+reco-m.Eps() > m.PrimalBound()
			}
			if violated {
				if _, err := s.Set(i, SetToLowerBound); err != nil {
					return err
				}
				nSet++
			}
		}
	}
	if nSet > 0 {
		m.log.Debug("variables set by reduced costs", "n", nSet)
	}
	return nil
}

// FixByStat permanently fixes active variable i to newStat. It returns
// ErrContradiction if the local status disagrees; the global status is
// updated in any case so the contradiction is also visible globally.
func (s *Sub) FixByStat(i int, newStat *FSVarStat) (newValue bool, err error) {
	v := s.Variable(i)

	if s.fsVarStat[i].Contradiction(newStat, s.master.Eps()) {
		err = ErrContradiction
	} else {
		s.fsVarStat[i].Assign(newStat)
	}

	if !v.FsVarStat().Fixed() {
		s.master.newFixed(1)
	}
	v.FsVarStat().Assign(newStat)

	if len(s.xVal) > i {
		x := s.xVal[i]
		switch newStat.Status() {
		case FixedToLowerBound:
			newValue = x > s.lBound[i]+s.master.Eps()
		case FixedToUpperBound:
			newValue = x < s.uBound[i]-s.master.Eps()
		case FixedTo:
			newValue = !s.master.equal(x, newStat.Value())
		}
	}

	newBound := s.fixSetNewBound(i)
	s.lBound[i] = newBound
	s.uBound[i] = newBound
	v.SetLBound(newBound)
	v.SetUBound(newBound)
	s.updateBoundInLp(i)
	return newValue, err
}

// Set sets active variable i to a bound status valid in the current
// subtree.
func (s *Sub) Set(i int, status FSStatus) (newValue bool, err error) {
	if status == SetTo {
		panic("abacus: sub: Set without value, use SetValue")
	}
	return s.SetValue(i, status, 0.0)
}

// SetValue sets active variable i to the status, carrying a value for
// SetTo.
func (s *Sub) SetValue(i int, status FSStatus, value float64) (newValue bool, err error) {
	v := s.Variable(i)
	if v.FsVarStat().ContradictionWith(status, value, s.master.Eps()) {
		return false, ErrContradiction
	}
	if status == SetTo {
		s.fsVarStat[i].SetStatusValue(status, value)
	} else {
		s.fsVarStat[i].SetStatus(status)
	}

	// a setting before the first LP of the node cannot produce new values
	if s.lp != nil && len(s.xVal) > i {
		x := s.xVal[i]
		switch status {
		case SetToLowerBound:
			newValue = x > s.lBound[i]+s.master.Eps()
		case SetToUpperBound:
			newValue = x < s.uBound[i]-s.master.Eps()
		case SetTo:
			newValue = !s.master.equal(x, value)
		}
	}

	newBound := s.fixSetNewBound(i)
	s.lBound[i] = newBound
	s.uBound[i] = newBound
	s.updateBoundInLp(i)
	return newValue, nil
}

// SetByStat sets active variable i from a status record.
func (s *Sub) SetByStat(i int, stat *FSVarStat) (newValue bool, err error) {
	return s.SetValue(i, stat.Status(), stat.Value())
}

// updateBoundInLp pins both LP bounds of i to the fixed value. An
// eliminated variable set to a different bound would have been detected as
// a contradiction before, so eliminated columns are skipped silently.
func (s *Sub) updateBoundInLp(i int) {
	if s.lp == nil || s.lp.Eliminated(i) {
		return
	}
	newBound := s.lBound[i]
	s.lp.ChangeLBound(i, newBound)
	s.lp.ChangeUBound(i, newBound)
}

// fixSetNewBound returns the bound value implied by the fixing status of
// active variable i.
func (s *Sub) fixSetNewBound(i int) float64 {
	switch s.fsVarStat[i].Status() {
	case SetToLowerBound:
		return s.lBound[i]
	case FixedToLowerBound:
		return s.Variable(i).LBound()
	case SetToUpperBound:
		return s.uBound[i]
	case FixedToUpperBound:
		return s.Variable(i).UBound()
	case SetTo, FixedTo:
		return s.fsVarStat[i].Value()
	default:
		panic("abacus: sub: fixSetNewBound of a free variable")
	}
}
