// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors for call-graph builds, mirroring
// pkg/symbolindex's lazy-registration pattern (itself grounded on the
// teacher's pkg/ingestion/metrics.go).
type metrics struct {
	once sync.Once

	declarationsTotal prometheus.Counter
	edgesTotal        prometheus.Counter
	unresolvedTotal   prometheus.Counter
	buildSeconds      prometheus.Histogram
}

var defaultMetrics = &metrics{}

func (m *metrics) init() {
	m.once.Do(func() {
		m.declarationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "callgraph",
			Name:      "declarations_total",
			Help:      "Number of method declarations registered in a call graph build.",
		})
		m.edgesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "callgraph",
			Name:      "edges_total",
			Help:      "Number of call edges added across all graph builds.",
		})
		m.unresolvedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "callgraph",
			Name:      "unresolved_call_sites_total",
			Help:      "Number of call sites whose target could not be resolved and were dropped.",
		})
		m.buildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "codeimpact",
			Subsystem: "callgraph",
			Name:      "build_duration_seconds",
			Help:      "Wall-clock duration of a whole-graph call graph build.",
			Buckets:   prometheus.DefBuckets,
		})
		prometheus.MustRegister(m.declarationsTotal, m.edgesTotal, m.unresolvedTotal, m.buildSeconds)
	})
}
