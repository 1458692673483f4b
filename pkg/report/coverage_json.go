// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/kelvinreed/codeimpact/internal/output"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

type coverageJSON struct {
	CoveragePercentage      float64                  `json:"coverage_percentage"`
	TotalChangedMethods     int                      `json:"total_changed_methods"`
	CoveredChangedMethods   int                      `json:"covered_changed_methods"`
	UncoveredChangedMethods int                      `json:"uncovered_changed_methods"`
	UncoveredMethods        []string                 `json:"uncovered_methods,omitempty"`
	UncoveredFiles          []string                 `json:"uncovered_files,omitempty"`
	ConfidenceBreakdown     confidenceBreakdownJSON  `json:"confidence_breakdown"`
	CoverageByTestType      map[string]int           `json:"coverage_by_test_type,omitempty"`
	Recommendations         []recommendationJSON     `json:"recommendations,omitempty"`
}

type confidenceBreakdownJSON struct {
	High   int     `json:"high"`
	Medium int     `json:"medium"`
	Low    int     `json:"low"`
	Mean   float64 `json:"mean"`
}

type recommendationJSON struct {
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	AffectedItems []string `json:"affected_items,omitempty"`
	Priority      string   `json:"priority"`
}

// WriteCoverageJSON writes r as pretty-printed JSON to w.
func WriteCoverageJSON(w io.Writer, r *model.CoverageResult) error {
	doc := coverageJSON{
		CoveragePercentage:      r.CoveragePercentage,
		TotalChangedMethods:     r.TotalChangedMethods,
		CoveredChangedMethods:   r.CoveredChangedMethods,
		UncoveredChangedMethods: r.UncoveredChangedMethods,
		UncoveredMethods:        r.UncoveredMethods,
		UncoveredFiles:          r.UncoveredFiles,
		ConfidenceBreakdown: confidenceBreakdownJSON{
			High:   r.ConfidenceBreakdown.High,
			Medium: r.ConfidenceBreakdown.Medium,
			Low:    r.ConfidenceBreakdown.Low,
			Mean:   r.ConfidenceBreakdown.Mean,
		},
	}
	if len(r.CoverageByTestType) > 0 {
		doc.CoverageByTestType = make(map[string]int, len(r.CoverageByTestType))
		for k, v := range r.CoverageByTestType {
			doc.CoverageByTestType[string(k)] = v
		}
	}
	for _, rec := range r.Recommendations {
		doc.Recommendations = append(doc.Recommendations, recommendationJSON{
			Type:          string(rec.Type),
			Description:   rec.Description,
			AffectedItems: rec.AffectedItems,
			Priority:      string(rec.Priority),
		})
	}
	return output.JSONTo(w, doc)
}
