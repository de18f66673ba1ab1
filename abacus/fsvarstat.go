// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "fmt"

// FSStatus enumerates the ways a variable can be fixed or set. Fixing is
// permanent and globally valid, setting is valid only in the subtree rooted
// at the subproblem that performed it.
type FSStatus int

const (
	Free FSStatus = iota
	SetToLowerBound
	SetTo // set to the value carried alongside the status
	SetToUpperBound
	FixedToLowerBound
	FixedTo // fixed to the value carried alongside the status
	FixedToUpperBound
)

// FSVarStat is the fixing/setting status of a variable, together with the
// value for the statuses SetTo and FixedTo.
type FSVarStat struct {
	status FSStatus
	value  float64
}

// NewFSVarStat returns a status without an associated value. It panics for
// SetTo and FixedTo, which require a value.
func NewFSVarStat(status FSStatus) *FSVarStat {
	if status == SetTo || status == FixedTo {
		panic("abacus: FSVarStat: value to set/fix missing")
	}
	return &FSVarStat{status: status}
}

// NewFSVarStatValue returns a SetTo or FixedTo status with its value. It
// panics for any other status.
func NewFSVarStatValue(status FSStatus, value float64) *FSVarStat {
	if status != SetTo && status != FixedTo {
		panic("abacus: FSVarStat: wrong status for value constructor")
	}
	return &FSVarStat{status: status, value: value}
}

func (f *FSVarStat) Status() FSStatus { return f.status }
func (f *FSVarStat) Value() float64   { return f.value }

func (f *FSVarStat) SetStatus(status FSStatus)                 { f.status = status }
func (f *FSVarStat) SetStatusValue(status FSStatus, v float64) { f.status, f.value = status, v }

// Assign copies status and value from other.
func (f *FSVarStat) Assign(other *FSVarStat) { *f = *other }

// Copy returns an independent copy.
func (f *FSVarStat) Copy() *FSVarStat {
	c := *f
	return &c
}

// Fixed reports whether the variable is fixed (permanently).
func (f *FSVarStat) Fixed() bool {
	switch f.status {
	case FixedToLowerBound, FixedTo, FixedToUpperBound:
		return true
	default:
		return false
	}
}

// Set reports whether the variable is set (valid in the current subtree).
func (f *FSVarStat) Set() bool {
	switch f.status {
	case SetToLowerBound, SetTo, SetToUpperBound:
		return true
	default:
		return false
	}
}

// FixedOrSet reports whether the status is anything but Free.
func (f *FSVarStat) FixedOrSet() bool { return f.status != Free }

// Contradiction reports whether the two statuses fix or set the variable to
// different bounds or values. A fixing and a setting referring to the same
// bound agree; two value-carrying statuses agree iff their values are equal
// up to eps.
func (f *FSVarStat) Contradiction(other *FSVarStat, eps float64) bool {
	switch other.status {
	case SetTo, FixedTo:
		return f.ContradictionWith(other.status, other.value, eps)
	default:
		return f.ContradictionWith(other.status, 0.0, eps)
	}
}

// ContradictionWith is Contradiction against an explicit (status, value)
// pair.
func (f *FSVarStat) ContradictionWith(status FSStatus, value float64, eps float64) bool {
	switch f.status {
	case SetToLowerBound, FixedToLowerBound:
		switch status {
		case SetToUpperBound, FixedToUpperBound, SetTo, FixedTo:
			return true
		}
		return false
	case SetToUpperBound, FixedToUpperBound:
		switch status {
		case SetToLowerBound, FixedToLowerBound, SetTo, FixedTo:
			return true
		}
		return false
	case SetTo, FixedTo:
		switch status {
		case SetTo, FixedTo:
			d := f.value - value
			return d > eps || d < -eps
		case SetToLowerBound, FixedToLowerBound, SetToUpperBound, FixedToUpperBound:
			return true
		}
		return false
	default:
		return false
	}
}

func (f *FSVarStat) String() string {
	switch f.status {
	case Free:
		return "Free"
	case SetToLowerBound:
		return "SetToLowerBound"
	case SetTo:
		return fmt.Sprintf("Set to %g", f.value)
	case SetToUpperBound:
		return "SetToUpperBound"
	case FixedToLowerBound:
		return "FixedToLowerBound"
	case FixedTo:
		return fmt.Sprintf("Fixed to %g", f.value)
	case FixedToUpperBound:
		return "FixedToUpperBound"
	default:
		return "unknown"
	}
}
