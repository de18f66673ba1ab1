// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package params

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coin-or/abacus-go/abacus"
)

func TestDefaults(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, nil)
	require.NoError(t, err)

	p, err := BuildParameters(v)
	require.NoError(t, err)

	d := abacus.DefaultParameters()
	assert.Equal(t, d.EnumerationStrategy, p.EnumerationStrategy)
	assert.Equal(t, d.MaxConAdd, p.MaxConAdd)
	assert.Equal(t, d.TailOffPercent, p.TailOffPercent)
	assert.Equal(t, d.FixSetByRedCost, p.FixSetByRedCost)
	assert.Equal(t, abacus.VbcNone, p.VbcLog)
}

func TestFlagsOverride(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{
		"--enumeration-strategy", "DepthFirst",
		"--branching-strategy", "CloseHalf",
		"--max-cpu-time", "90s",
		"--eliminate-fixed-set",
		"--skip-factor", "3",
		"--vbc-log", "Pipe",
	})
	require.NoError(t, err)

	p, err := BuildParameters(v)
	require.NoError(t, err)
	assert.Equal(t, abacus.DepthFirst, p.EnumerationStrategy)
	assert.Equal(t, abacus.CloseHalf, p.BranchingStrategy)
	assert.Equal(t, 90*time.Second, p.MaxCpuTime)
	assert.True(t, p.EliminateFixedSet)
	assert.Equal(t, 3, p.SkipFactor)
	assert.Equal(t, abacus.VbcPipe, p.VbcLog)
}

func TestParameterFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abacus.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"enumeration-strategy: BreadthFirst\nguarantee: 2.5\ntailoff-n-lps: 4\n"), 0o600))

	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--config", file})
	require.NoError(t, err)

	p, err := BuildParameters(v)
	require.NoError(t, err)
	assert.Equal(t, abacus.BreadthFirst, p.EnumerationStrategy)
	assert.Equal(t, 2.5, p.RequiredGuarantee)
	assert.Equal(t, 4, p.TailOffNLp)
}

func TestUnknownEnumRejected(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--enumeration-strategy", "sideways"})
	require.NoError(t, err)

	_, err = BuildParameters(v)
	assert.Error(t, err)
}
