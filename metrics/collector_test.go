// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coin-or/abacus-go/abacus"
)

func TestCollectorRegistersAndGathers(t *testing.T) {
	m := abacus.NewMaster("metrics", abacus.OptMin, abacus.DefaultParameters())

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("abacus", m)))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["abacus_subs_created"])
	assert.True(t, names["abacus_lps_solved"])
	assert.True(t, names["abacus_open_subs"])
	assert.True(t, names["abacus_dual_bound"])
	// no feasible solution yet: the primal bound is not exported
	assert.False(t, names["abacus_primal_bound"])
}
