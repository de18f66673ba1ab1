// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// EnumerationStrategy selects which open subproblem is processed next.
type EnumerationStrategy int

const (
	BestFirst EnumerationStrategy = iota
	BreadthFirst
	DepthFirst
	DiveAndBest
)

func (e EnumerationStrategy) String() string {
	switch e {
	case BestFirst:
		return "BestFirst"
	case BreadthFirst:
		return "BreadthFirst"
	case DepthFirst:
		return "DepthFirst"
	case DiveAndBest:
		return "DiveAndBest"
	default:
		return "unknown"
	}
}

// OpenSub holds the unprocessed and dormant subproblems together with
// their aggregate dual bound, the best-possible bound among all open
// nodes.
//
// Selection scans the list because the preference between two nodes is
// strategy dependent and may change mid-run (DiveAndBest flips at the
// first incumbent), and dormant nodes are skipped conditionally.
type OpenSub struct {
	master    *Master
	list      []*Sub
	present   mapset.Set[*Sub]
	dualBound float64
}

// NewOpenSub returns an empty open-subproblem collection.
func NewOpenSub(master *Master) *OpenSub {
	return &OpenSub{master: master, present: mapset.NewSet[*Sub]()}
}

// Number returns the number of open subproblems.
func (o *OpenSub) Number() int { return len(o.list) }

// Empty reports whether no subproblem is open.
func (o *OpenSub) Empty() bool { return len(o.list) == 0 }

// Insert adds a subproblem and updates the aggregate dual bound. A double
// insertion is an invariant violation.
func (o *OpenSub) Insert(sub *Sub) {
	if !o.present.Add(sub) {
		panic("abacus: opensub: subproblem inserted twice")
	}
	if len(o.list) == 0 {
		o.dualBound = sub.dualBound
	} else if o.master.OptSense().Max() {
		if sub.dualBound > o.dualBound {
			o.dualBound = sub.dualBound
		}
	} else if sub.dualBound < o.dualBound {
		o.dualBound = sub.dualBound
	}
	o.list = append(o.list, sub)
	o.master.observeOpenSubs(len(o.list))
}

// Select removes and returns the next subproblem according to the
// enumeration strategy, or nil if none is selectable. Dormant nodes are
// passed over until they have waited MinDormantRounds selections.
func (o *OpenSub) Select() *Sub {
	minIdx := -1
	for i, s := range o.list {
		if s.status == StatusDormant {
			s.newDormantRound()
			if s.nDormantRounds < o.master.parameters.MinDormantRounds {
				continue
			}
		}
		if minIdx == -1 || o.master.enumerationStrategy(s, o.list[minIdx]) > 0 {
			minIdx = i
		}
	}
	if minIdx == -1 {
		if len(o.list) == 0 {
			return nil
		}
		// every open node is dormant and still waiting; take the oldest
		// rather than spinning
		minIdx = 0
	}
	sub := o.list[minIdx]
	o.list = append(o.list[:minIdx], o.list[minIdx+1:]...)
	o.present.Remove(sub)
	o.updateDualBound()
	o.master.observeOpenSubs(len(o.list))
	return sub
}

// Remove removes a specific subproblem, e.g. when its subtree is fathomed.
func (o *OpenSub) Remove(sub *Sub) {
	if !o.present.Contains(sub) {
		return
	}
	o.present.Remove(sub)
	for i, s := range o.list {
		if s == sub {
			o.list = append(o.list[:i], o.list[i+1:]...)
			break
		}
	}
	o.updateDualBound()
	o.master.observeOpenSubs(len(o.list))
}

// Prune empties the collection.
func (o *OpenSub) Prune() {
	o.list = o.list[:0]
	o.present.Clear()
	o.master.observeOpenSubs(0)
}

// DualBound returns the aggregate dual bound: the worst, i.e.
// best-possible, dual bound among the open subproblems, or the sense's
// infinity if none is open.
func (o *OpenSub) DualBound() float64 {
	if len(o.list) == 0 {
		if o.master.OptSense().Max() {
			return -o.master.Infinity()
		}
		return o.master.Infinity()
	}
	return o.dualBound
}

func (o *OpenSub) updateDualBound() {
	if o.master.OptSense().Max() {
		o.dualBound = -o.master.Infinity()
		for _, s := range o.list {
			if s.dualBound > o.dualBound {
				o.dualBound = s.dualBound
			}
		}
		return
	}
	o.dualBound = o.master.Infinity()
	for _, s := range o.list {
		if s.dualBound < o.dualBound {
			o.dualBound = s.dualBound
		}
	}
}
