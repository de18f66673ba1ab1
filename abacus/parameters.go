// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "time"

// BranchingStrategyMode selects the branching variable heuristic.
type BranchingStrategyMode int

const (
	CloseHalf BranchingStrategyMode = iota
	CloseHalfExpensive
)

// PrimalBoundMode controls the initialization of the primal bound.
type PrimalBoundMode int

const (
	NoPrimalBound PrimalBoundMode = iota
	// Optimum initializes the primal bound with the known optimum from
	// the optimum file, OptimumOne with the optimum plus or minus one.
	Optimum
	OptimumOne
)

// SkippingMode controls how separation rounds are skipped.
type SkippingMode int

const (
	SkipByNode SkippingMode = iota
	SkipByLevel
)

// ConElimMode selects the constraint elimination rule.
type ConElimMode int

const (
	ConElimNone ConElimMode = iota
	ConElimNonBinding
	ConElimBasic
)

// VarElimMode selects the variable elimination rule.
type VarElimMode int

const (
	VarElimNone VarElimMode = iota
	VarElimReducedCost
)

// VbcMode selects the tree-log sink.
type VbcMode int

const (
	VbcNone VbcMode = iota
	VbcFile
	VbcPipe
)

// Parameters is the recognized option record of the framework.
type Parameters struct {
	EnumerationStrategy EnumerationStrategy

	BranchingStrategy            BranchingStrategyMode
	NBranchingVariableCandidates int
	NStrongBranchingIterations   int

	PbMode          PrimalBoundMode
	OptimumFileName string

	Cutting bool
	Pricing bool

	SkippingMode SkippingMode
	SkipFactor   int
	PricingFreq  int

	ConElimMode ConElimMode
	VarElimMode VarElimMode
	ConElimEps  float64
	VarElimEps  float64
	ConElimAge  int
	VarElimAge  int

	TailOffNLp     int
	TailOffPercent float64

	MaxLevel      int
	MaxCpuTime    time.Duration
	MaxCowTime    time.Duration
	MaxIterations int

	MaxConAdd      int
	MaxConBuffered int
	MaxVarAdd      int
	MaxVarBuffered int

	RequiredGuarantee float64
	ObjInteger        bool

	EliminateFixedSet bool
	NewRootReOptimize bool
	FixSetByRedCost   bool

	DbThreshold      int
	MinDormantRounds int

	SolveApprox bool

	ShowAverageCutDistance bool

	ConReservePercent int
	VarReservePercent int

	Eps        float64
	MachineEps float64
	Infinity   float64

	OutLevel string
	VbcLog   VbcMode
}

// DefaultParameters returns the built-in defaults.
func DefaultParameters() Parameters {
	return Parameters{
		EnumerationStrategy:          BestFirst,
		BranchingStrategy:            CloseHalfExpensive,
		NBranchingVariableCandidates: 1,
		NStrongBranchingIterations:   50,
		PbMode:                       NoPrimalBound,
		Cutting:                      true,
		Pricing:                      false,
		SkippingMode:                 SkipByNode,
		SkipFactor:                   1,
		PricingFreq:                  0,
		ConElimMode:                  ConElimNone,
		VarElimMode:                  VarElimNone,
		ConElimEps:                   0.001,
		VarElimEps:                   0.001,
		ConElimAge:                   1,
		VarElimAge:                   1,
		TailOffNLp:                   0,
		TailOffPercent:               0.0001,
		MaxLevel:                     999999,
		MaxCpuTime:                   999999 * time.Hour,
		MaxCowTime:                   999999 * time.Hour,
		MaxIterations:                -1,
		MaxConAdd:                    100,
		MaxConBuffered:               100,
		MaxVarAdd:                    500,
		MaxVarBuffered:               500,
		RequiredGuarantee:            0.0,
		ObjInteger:                   false,
		EliminateFixedSet:            false,
		NewRootReOptimize:            false,
		FixSetByRedCost:              true,
		DbThreshold:                  0,
		MinDormantRounds:             1,
		SolveApprox:                  false,
		ShowAverageCutDistance:       false,
		ConReservePercent:            10,
		VarReservePercent:            10,
		Eps:                          1e-4,
		MachineEps:                   1e-7,
		Infinity:                     1e32,
		OutLevel:                     "info",
		VbcLog:                       VbcNone,
	}
}
