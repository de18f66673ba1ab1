// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "math"

// FixCand collects the candidates for fixing variables by reduced cost.
// When the root of the remaining tree finishes an LP, every discrete
// variable that is non-basic at a bound is snapshotted together with the
// dual bound that activating its mirror bound would imply. Whenever the
// primal bound improves, candidates whose snapshot bound now violates it
// are fixed permanently.
type FixCand struct {
	master     *Master
	candidates []*VarSlotRef
	fsVarStat  []*FSVarStat
	lhs        []float64
}

// NewFixCand returns an empty candidate collection.
func NewFixCand(master *Master) *FixCand {
	return &FixCand{master: master}
}

// Number returns the number of stored candidates.
func (f *FixCand) Number() int { return len(f.candidates) }

// SaveCandidates snapshots the fixing candidates of sub, replacing any
// previous snapshot.
func (f *FixCand) SaveCandidates(sub *Sub) {
	f.deleteAll()

	lp := sub.LP()
	for i := 0; i < sub.NVar(); i++ {
		v := sub.Variable(i)
		if v == nil || !sub.lpVarStat[i].AtBound() || !v.VarType().Discrete() {
			continue
		}
		f.candidates = append(f.candidates, sub.actVar.PoolSlotRef(i).Clone())
		if sub.lpVarStat[i] == AtLowerBound {
			f.lhs = append(f.lhs, lp.Value()+lp.Reco(i))
			f.fsVarStat = append(f.fsVarStat, NewFSVarStat(FixedToLowerBound))
		} else {
			f.lhs = append(f.lhs, lp.Value()-lp.Reco(i))
			f.fsVarStat = append(f.fsVarStat, NewFSVarStat(FixedToUpperBound))
		}
	}
	f.master.log.Debug("fixing candidates saved", "n", len(f.candidates), "sub", sub.ID())
}

// FixByRedCost fixes every candidate whose snapshot bound violates the
// current primal bound. Fixed inactive variables with a nonzero fixing
// value are queued for activation through addVarBuffer.
func (f *FixCand) FixByRedCost(addVarBuffer *VarBuffer) {
	if len(f.candidates) == 0 {
		return
	}
	m := f.master
	var fixed []int

	for i, ref := range f.candidates {
		price := m.dualRound(f.lhs[i])
		violated := false
		if m.OptSense().Max() {
			violated = price+m.Eps() < m.PrimalBound()
		} else {
			violated = price-m.Eps() > m.PrimalBound()
		}
		if !violated {
			continue
		}
		v := ref.ConVar()
		if v != nil {
			if !v.FsVarStat().Fixed() {
				m.newFixed(1)
			}
			v.FsVarStat().Assign(f.fsVarStat[i])

			// an inactive variable fixed to a nonzero value must enter
			// the formulation
			if !v.convar().Active() {
				activate := false
				switch v.FsVarStat().Status() {
				case FixedToLowerBound:
					activate = math.Abs(v.LBound()) > m.Eps()
				case FixedToUpperBound:
					activate = math.Abs(v.UBound()) > m.Eps()
				case FixedTo:
					activate = math.Abs(v.FsVarStat().Value()) > m.Eps()
				default:
					panic("abacus: fixcand: activated variable not fixed")
				}
				if activate && addVarBuffer != nil {
					addVarBuffer.Insert(ref.Slot(), true)
				}
			}
		}
		fixed = append(fixed, i)
	}

	if len(fixed) == 0 {
		return
	}
	for _, i := range fixed {
		f.candidates[i].release()
	}
	f.candidates = leftShift(f.candidates, fixed)
	f.fsVarStat = leftShift(f.fsVarStat, fixed)
	f.lhs = leftShift(f.lhs, fixed)
	m.log.Info("variables fixed by reduced costs", "n", len(fixed))
}

func (f *FixCand) deleteAll() {
	for _, ref := range f.candidates {
		ref.release()
	}
	f.candidates = f.candidates[:0]
	f.fsVarStat = f.fsVarStat[:0]
	f.lhs = f.lhs[:0]
}
