// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// ConClass is an optional classification record for a constraint, computed
// by the problem-specific Classify hook. It is consulted by separation
// heuristics that only apply to certain structural classes.
type ConClass struct {
	discrete  bool // all coefficients belong to discrete variables
	allVarBinary bool
	trivial      bool // trivial bound constraint on a single variable
	bound        bool
	varBound     bool // bound relation between two variables
}

// NewConClass builds a classification record.
func NewConClass(discrete, allVarBinary, trivial, bound, varBound bool) *ConClass {
	return &ConClass{
		discrete:     discrete,
		allVarBinary: allVarBinary,
		trivial:      trivial,
		bound:        bound,
		varBound:     varBound,
	}
}

func (c *ConClass) Discrete() bool     { return c.discrete }
func (c *ConClass) AllVarBinary() bool { return c.allVarBinary }
func (c *ConClass) Trivial() bool      { return c.trivial }
func (c *ConClass) Bound() bool        { return c.bound }
func (c *ConClass) VarBound() bool     { return c.varBound }
