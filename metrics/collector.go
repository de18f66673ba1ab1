// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the optimization statistics of a Master as
// Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coin-or/abacus-go/abacus"
)

// Collector reads the counters and bounds of a Master on every scrape.
type Collector struct {
	master *abacus.Master

	subsCreated   *prometheus.Desc
	subsProcessed *prometheus.Desc
	lpsSolved     *prometheus.Desc
	varsFixed     *prometheus.Desc
	openSubs      *prometheus.Desc
	primalBound   *prometheus.Desc
	dualBound     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for master under the given namespace.
func NewCollector(namespace string, master *abacus.Master) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		master:        master,
		subsCreated:   desc("subs_created", "subproblems created"),
		subsProcessed: desc("subs_processed", "subproblems selected for processing"),
		lpsSolved:     desc("lps_solved", "linear programs solved"),
		varsFixed:     desc("vars_fixed", "variables fixed permanently"),
		openSubs:      desc("open_subs", "open subproblems"),
		primalBound:   desc("primal_bound", "value of the best known feasible solution"),
		dualBound:     desc("dual_bound", "global dual bound"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.subsCreated
	ch <- c.subsProcessed
	ch <- c.lpsSolved
	ch <- c.varsFixed
	ch <- c.openSubs
	ch <- c.primalBound
	ch <- c.dualBound
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.master
	ch <- prometheus.MustNewConstMetric(c.subsCreated, prometheus.CounterValue, float64(m.NSub()))
	ch <- prometheus.MustNewConstMetric(c.subsProcessed, prometheus.CounterValue, float64(m.NSubSelected()))
	ch <- prometheus.MustNewConstMetric(c.lpsSolved, prometheus.CounterValue, float64(m.NLp()))
	ch <- prometheus.MustNewConstMetric(c.varsFixed, prometheus.CounterValue, float64(m.NFixed()))
	ch <- prometheus.MustNewConstMetric(c.openSubs, prometheus.GaugeValue, float64(m.OpenSub().Number()))
	if m.FeasibleFound() {
		ch <- prometheus.MustNewConstMetric(c.primalBound, prometheus.GaugeValue, m.PrimalBound())
	}
	ch <- prometheus.MustNewConstMetric(c.dualBound, prometheus.GaugeValue, m.DualBound())
}
