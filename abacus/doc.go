// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

// Package abacus implements a generic branch-and-cut framework for mixed
// integer linear programs. The framework drives the enumeration tree,
// manages per-node active constraint and variable sets, brokers an external
// LP solver through the LPSolver interface, and coordinates the fixing and
// setting of variables by reduced-cost and logical implications.
//
// Problem-specific behavior (separation, pricing, feasibility tests,
// branching heuristics) is supplied through the SubHooks interface.
// Constraints and variables live in pools; subproblems reference
// them through versioned slot handles, so a pooled item may be garbage
// collected while an inactive subproblem still refers to it.
package abacus
