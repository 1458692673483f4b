// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/kelvinreed/codeimpact/internal/output"
	"github.com/kelvinreed/codeimpact/pkg/impact"
)

// impactJSON and coverageJSON mirror spec §6's ImpactResult/CoverageResult
// output schemas as plain JSON-tagged structs, decoupling the wire format
// from pkg/impact/pkg/coverage's in-memory types.
type impactJSON struct {
	AnalyzedAt         string               `json:"analyzed_at"`
	TotalChanges       int                  `json:"total_changes"`
	TotalFiles         int                  `json:"total_files"`
	TotalMethods       int                  `json:"total_methods"`
	TotalImpactedTests int                  `json:"total_impacted_tests"`
	AffectedMethods    []string             `json:"affected_methods"`
	ImpactedTests      []impactedTestJSON   `json:"impacted_tests"`
}

type impactedTestJSON struct {
	ID            string  `json:"id"`
	MethodName    string  `json:"method_name"`
	TypeName      string  `json:"type_name"`
	Namespace     string  `json:"namespace"`
	Confidence    float64 `json:"confidence"`
	ImpactReasons string  `json:"impact_reasons"`
}

// WriteImpactJSON writes r as pretty-printed JSON to w.
func WriteImpactJSON(w io.Writer, r *impact.Result) error {
	doc := impactJSON{
		AnalyzedAt:         r.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"),
		TotalChanges:       r.TotalChanges,
		TotalFiles:         r.TotalFiles,
		TotalMethods:       r.TotalMethods,
		TotalImpactedTests: r.TotalImpactedTests,
	}
	for _, m := range r.AffectedMethods {
		doc.AffectedMethods = append(doc.AffectedMethods, string(m))
	}
	for _, t := range r.ImpactedTests {
		doc.ImpactedTests = append(doc.ImpactedTests, impactedTestJSON{
			ID:            string(t.ID),
			MethodName:    t.MethodName,
			TypeName:      t.TypeName,
			Namespace:     t.Namespace,
			Confidence:    t.Confidence,
			ImpactReasons: t.ImpactReasons,
		})
	}
	return output.JSONTo(w, doc)
}
