// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

// Package params loads the framework parameters from command line flags,
// a configuration file and the environment.
package params

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coin-or/abacus-go/abacus"
)

// Configuration keys.
const (
	ConfigFileKey = "config"

	EnumerationStrategyKey          = "enumeration-strategy"
	BranchingStrategyKey            = "branching-strategy"
	NBranchingVariableCandidatesKey = "n-branching-variable-candidates"
	NStrongBranchingIterationsKey   = "n-strong-branching-iterations"
	PbModeKey                       = "primal-bound-mode"
	OptimumFileNameKey              = "optimum-file"
	CuttingKey                      = "cutting"
	PricingKey                      = "pricing"
	SkippingModeKey                 = "skipping-mode"
	SkipFactorKey                   = "skip-factor"
	PricingFreqKey                  = "pricing-frequency"
	ConElimModeKey                  = "constraint-elimination-mode"
	VarElimModeKey                  = "variable-elimination-mode"
	ConElimEpsKey                   = "constraint-elimination-eps"
	VarElimEpsKey                   = "variable-elimination-eps"
	ConElimAgeKey                   = "constraint-elimination-age"
	VarElimAgeKey                   = "variable-elimination-age"
	TailOffNLpKey                   = "tailoff-n-lps"
	TailOffPercentKey               = "tailoff-percent"
	MaxLevelKey                     = "max-level"
	MaxCpuTimeKey                   = "max-cpu-time"
	MaxCowTimeKey                   = "max-cow-time"
	MaxIterationsKey                = "max-iterations"
	MaxConAddKey                    = "max-con-add"
	MaxConBufferedKey               = "max-con-buffered"
	MaxVarAddKey                    = "max-var-add"
	MaxVarBufferedKey               = "max-var-buffered"
	RequiredGuaranteeKey            = "guarantee"
	ObjIntegerKey                   = "objective-integer"
	EliminateFixedSetKey            = "eliminate-fixed-set"
	NewRootReOptimizeKey            = "new-root-reoptimize"
	FixSetByRedCostKey              = "fix-set-by-redcost"
	DbThresholdKey                  = "delayed-branching-threshold"
	MinDormantRoundsKey             = "min-dormant-rounds"
	ShowAverageCutDistanceKey       = "show-average-cut-distance"
	OutLevelKey                     = "log-level"
	VbcLogKey                       = "vbc-log"
)

const envPrefix = "ABACUS"

// BuildFlagSet declares every recognized option with its default.
func BuildFlagSet() *pflag.FlagSet {
	d := abacus.DefaultParameters()
	fs := pflag.NewFlagSet("abacus", pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "path to a parameter file")

	fs.String(EnumerationStrategyKey, d.EnumerationStrategy.String(),
		"enumeration strategy: BestFirst, BreadthFirst, DepthFirst, DiveAndBest")
	fs.String(BranchingStrategyKey, "CloseHalfExpensive",
		"branching variable strategy: CloseHalf, CloseHalfExpensive")
	fs.Int(NBranchingVariableCandidatesKey, d.NBranchingVariableCandidates,
		"number of branching candidates ranked by LP re-solves")
	fs.Int(NStrongBranchingIterationsKey, d.NStrongBranchingIterations,
		"simplex iteration cap while ranking branching candidates")
	fs.String(PbModeKey, "None", "primal bound initialization: None, Optimum, OptimumOne")
	fs.String(OptimumFileNameKey, d.OptimumFileName, "optimum lookup table for the primal bound")
	fs.Bool(CuttingKey, d.Cutting, "generate cutting planes")
	fs.Bool(PricingKey, d.Pricing, "generate variables")
	fs.String(SkippingModeKey, "SkipByNode", "separation skip schedule: SkipByNode, SkipByLevel")
	fs.Int(SkipFactorKey, d.SkipFactor, "period of the separation skip schedule")
	fs.Int(PricingFreqKey, d.PricingFreq, "LPs between forced pricings")
	fs.String(ConElimModeKey, "None", "constraint elimination: None, NonBinding, Basic")
	fs.String(VarElimModeKey, "None", "variable elimination: None, ReducedCost")
	fs.Float64(ConElimEpsKey, d.ConElimEps, "slack tolerance of constraint elimination")
	fs.Float64(VarElimEpsKey, d.VarElimEps, "reduced cost tolerance of variable elimination")
	fs.Int(ConElimAgeKey, d.ConElimAge, "redundant iterations before a constraint is eliminated")
	fs.Int(VarElimAgeKey, d.VarElimAge, "redundant iterations before a variable is eliminated")
	fs.Int(TailOffNLpKey, d.TailOffNLp, "window of LP values observed for tailing off")
	fs.Float64(TailOffPercentKey, d.TailOffPercent, "minimal improvement percentage over the window")
	fs.Int(MaxLevelKey, d.MaxLevel, "maximal enumeration level")
	fs.Duration(MaxCpuTimeKey, d.MaxCpuTime, "CPU time budget")
	fs.Duration(MaxCowTimeKey, d.MaxCowTime, "elapsed time budget")
	fs.Int(MaxIterationsKey, d.MaxIterations, "iteration limit per cutting plane loop")
	fs.Int(MaxConAddKey, d.MaxConAdd, "constraints added per iteration")
	fs.Int(MaxConBufferedKey, d.MaxConBuffered, "constraint buffer capacity")
	fs.Int(MaxVarAddKey, d.MaxVarAdd, "variables added per iteration")
	fs.Int(MaxVarBufferedKey, d.MaxVarBuffered, "variable buffer capacity")
	fs.Float64(RequiredGuaranteeKey, d.RequiredGuarantee, "required guarantee in percent")
	fs.Bool(ObjIntegerKey, d.ObjInteger, "objective values of feasible solutions are integer")
	fs.Bool(EliminateFixedSetKey, d.EliminateFixedSet, "eliminate fixed and set variables from the LP")
	fs.Bool(NewRootReOptimizeKey, d.NewRootReOptimize, "reoptimize a new remaining root")
	fs.Bool(FixSetByRedCostKey, d.FixSetByRedCost, "fix and set variables by reduced costs")
	fs.Int(DbThresholdKey, d.DbThreshold, "processings of a node before branching")
	fs.Int(MinDormantRoundsKey, d.MinDormantRounds, "selection rounds a dormant node is passed over")
	fs.Bool(ShowAverageCutDistanceKey, d.ShowAverageCutDistance, "report the average distance of added cuts")
	fs.String(OutLevelKey, d.OutLevel, "log level")
	fs.String(VbcLogKey, "None", "tree log sink: None, File, Pipe")
	return fs
}

// BuildViper parses args into the flag set and layers a parameter file and
// ABACUS_* environment variables over it.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if file := v.GetString(ConfigFileKey); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read parameter file: %w", err)
		}
	}
	return v, nil
}

// BuildParameters converts the viper state into the parameter record.
func BuildParameters(v *viper.Viper) (abacus.Parameters, error) {
	p := abacus.DefaultParameters()
	var err error

	if p.EnumerationStrategy, err = parseEnumerationStrategy(v.GetString(EnumerationStrategyKey)); err != nil {
		return p, err
	}
	if p.BranchingStrategy, err = parseBranchingStrategy(v.GetString(BranchingStrategyKey)); err != nil {
		return p, err
	}
	p.NBranchingVariableCandidates = cast.ToInt(v.Get(NBranchingVariableCandidatesKey))
	p.NStrongBranchingIterations = cast.ToInt(v.Get(NStrongBranchingIterationsKey))
	if p.PbMode, err = parsePbMode(v.GetString(PbModeKey)); err != nil {
		return p, err
	}
	p.OptimumFileName = v.GetString(OptimumFileNameKey)
	p.Cutting = cast.ToBool(v.Get(CuttingKey))
	p.Pricing = cast.ToBool(v.Get(PricingKey))
	if p.SkippingMode, err = parseSkippingMode(v.GetString(SkippingModeKey)); err != nil {
		return p, err
	}
	p.SkipFactor = cast.ToInt(v.Get(SkipFactorKey))
	p.PricingFreq = cast.ToInt(v.Get(PricingFreqKey))
	if p.ConElimMode, err = parseConElimMode(v.GetString(ConElimModeKey)); err != nil {
		return p, err
	}
	if p.VarElimMode, err = parseVarElimMode(v.GetString(VarElimModeKey)); err != nil {
		return p, err
	}
	p.ConElimEps = cast.ToFloat64(v.Get(ConElimEpsKey))
	p.VarElimEps = cast.ToFloat64(v.Get(VarElimEpsKey))
	p.ConElimAge = cast.ToInt(v.Get(ConElimAgeKey))
	p.VarElimAge = cast.ToInt(v.Get(VarElimAgeKey))
	p.TailOffNLp = cast.ToInt(v.Get(TailOffNLpKey))
	p.TailOffPercent = cast.ToFloat64(v.Get(TailOffPercentKey))
	p.MaxLevel = cast.ToInt(v.Get(MaxLevelKey))
	p.MaxCpuTime = toDuration(v.Get(MaxCpuTimeKey))
	p.MaxCowTime = toDuration(v.Get(MaxCowTimeKey))
	p.MaxIterations = cast.ToInt(v.Get(MaxIterationsKey))
	p.MaxConAdd = cast.ToInt(v.Get(MaxConAddKey))
	p.MaxConBuffered = cast.ToInt(v.Get(MaxConBufferedKey))
	p.MaxVarAdd = cast.ToInt(v.Get(MaxVarAddKey))
	p.MaxVarBuffered = cast.ToInt(v.Get(MaxVarBufferedKey))
	p.RequiredGuarantee = cast.ToFloat64(v.Get(RequiredGuaranteeKey))
	p.ObjInteger = cast.ToBool(v.Get(ObjIntegerKey))
	p.EliminateFixedSet = cast.ToBool(v.Get(EliminateFixedSetKey))
	p.NewRootReOptimize = cast.ToBool(v.Get(NewRootReOptimizeKey))
	p.FixSetByRedCost = cast.ToBool(v.Get(FixSetByRedCostKey))
	p.DbThreshold = cast.ToInt(v.Get(DbThresholdKey))
	p.MinDormantRounds = cast.ToInt(v.Get(MinDormantRoundsKey))
	p.ShowAverageCutDistance = cast.ToBool(v.Get(ShowAverageCutDistanceKey))
	p.OutLevel = v.GetString(OutLevelKey)
	if p.VbcLog, err = parseVbcMode(v.GetString(VbcLogKey)); err != nil {
		return p, err
	}
	return p, nil
}

func toDuration(raw any) time.Duration {
	if d, err := cast.ToDurationE(raw); err == nil {
		return d
	}
	// a bare number in a parameter file means seconds
	return time.Duration(cast.ToFloat64(raw) * float64(time.Second))
}

func parseEnumerationStrategy(s string) (abacus.EnumerationStrategy, error) {
	switch strings.ToLower(s) {
	case "bestfirst", "best":
		return abacus.BestFirst, nil
	case "breadthfirst", "breadth":
		return abacus.BreadthFirst, nil
	case "depthfirst", "depth":
		return abacus.DepthFirst, nil
	case "diveandbest", "dive":
		return abacus.DiveAndBest, nil
	default:
		return abacus.BestFirst, fmt.Errorf("unknown enumeration strategy %q", s)
	}
}

func parseBranchingStrategy(s string) (abacus.BranchingStrategyMode, error) {
	switch strings.ToLower(s) {
	case "closehalf":
		return abacus.CloseHalf, nil
	case "closehalfexpensive":
		return abacus.CloseHalfExpensive, nil
	default:
		return abacus.CloseHalf, fmt.Errorf("unknown branching strategy %q", s)
	}
}

func parsePbMode(s string) (abacus.PrimalBoundMode, error) {
	switch strings.ToLower(s) {
	case "none", "noprimalbound":
		return abacus.NoPrimalBound, nil
	case "optimum":
		return abacus.Optimum, nil
	case "optimumone":
		return abacus.OptimumOne, nil
	default:
		return abacus.NoPrimalBound, fmt.Errorf("unknown primal bound mode %q", s)
	}
}

func parseSkippingMode(s string) (abacus.SkippingMode, error) {
	switch strings.ToLower(s) {
	case "skipbynode", "node":
		return abacus.SkipByNode, nil
	case "skipbylevel", "level":
		return abacus.SkipByLevel, nil
	default:
		return abacus.SkipByNode, fmt.Errorf("unknown skipping mode %q", s)
	}
}

func parseConElimMode(s string) (abacus.ConElimMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return abacus.ConElimNone, nil
	case "nonbinding":
		return abacus.ConElimNonBinding, nil
	case "basic":
		return abacus.ConElimBasic, nil
	default:
		return abacus.ConElimNone, fmt.Errorf("unknown constraint elimination mode %q", s)
	}
}

func parseVarElimMode(s string) (abacus.VarElimMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return abacus.VarElimNone, nil
	case "reducedcost":
		return abacus.VarElimReducedCost, nil
	default:
		return abacus.VarElimNone, fmt.Errorf("unknown variable elimination mode %q", s)
	}
}

func parseVbcMode(s string) (abacus.VbcMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return abacus.VbcNone, nil
	case "file":
		return abacus.VbcFile, nil
	case "pipe":
		return abacus.VbcPipe, nil
	default:
		return abacus.VbcNone, fmt.Errorf("unknown vbc mode %q", s)
	}
}
