// Copyright 2026 The CodeImpact Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package symbolindex

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors for symbol-index builds. They are
// registered lazily (once) so packages that never build an index never pay
// for registration, mirroring pkg/ingestion/metrics.go in the teacher.
type metrics struct {
	once sync.Once

	filesIndexed   prometheus.Counter
	filesFailed    prometheus.Counter
	buildSeconds   prometheus.Histogram
	refreshCount   prometheus.Counter
}

var defaultMetrics = &metrics{}

func (m *metrics) init() {
	m.once.Do(func() {
		m.filesIndexed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "symbolindex",
			Name:      "files_indexed_total",
			Help:      "Number of source files successfully scanned into the symbol index.",
		})
		m.filesFailed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "symbolindex",
			Name:      "files_failed_total",
			Help:      "Number of source files that failed to scan (never fatal to the build).",
		})
		m.buildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "codeimpact",
			Subsystem: "symbolindex",
			Name:      "build_duration_seconds",
			Help:      "Wall-clock duration of a symbol index build.",
			Buckets:   prometheus.DefBuckets,
		})
		m.refreshCount = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codeimpact",
			Subsystem: "symbolindex",
			Name:      "refresh_total",
			Help:      "Number of single-file index refreshes performed.",
		})
		prometheus.MustRegister(m.filesIndexed, m.filesFailed, m.buildSeconds, m.refreshCount)
	})
}
