// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"

	"github.com/kelvinreed/codeimpact/pkg/impact"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// WriteImpactText renders r as the human-readable form of spec §6's
// ImpactResult, grounded on the teacher's ui.Header/SubHeader section shape.
func WriteImpactText(w io.Writer, r *impact.Result) {
	fmt.Fprintf(w, "Impact Analysis\n===============\n\n")
	fmt.Fprintf(w, "Changed files:    %d\n", r.TotalFiles)
	fmt.Fprintf(w, "Changed methods:  %d\n", r.TotalMethods)
	fmt.Fprintf(w, "Affected methods: %d\n", len(r.AffectedMethods))
	fmt.Fprintf(w, "Impacted tests:   %d\n\n", r.TotalImpactedTests)

	if len(r.ImpactedTests) == 0 {
		fmt.Fprintln(w, "No impacted tests found.")
		return
	}

	fmt.Fprintln(w, "Impacted tests:")
	for _, t := range r.ImpactedTests {
		fmt.Fprintf(w, "- %s (confidence %.2f)\n", t.ID, t.Confidence)
		if t.ImpactReasons != "" {
			fmt.Fprintf(w, "    %s\n", t.ImpactReasons)
		}
	}
}

// WriteCoverageText renders r as the human-readable form of spec §6's
// CoverageResult.
func WriteCoverageText(w io.Writer, r *model.CoverageResult) {
	fmt.Fprintf(w, "Coverage Report\n===============\n\n")
	fmt.Fprintf(w, "Coverage:          %.1f%%\n", r.CoveragePercentage)
	fmt.Fprintf(w, "Changed methods:   %d\n", r.TotalChangedMethods)
	fmt.Fprintf(w, "Covered methods:   %d\n", r.CoveredChangedMethods)
	fmt.Fprintf(w, "Uncovered methods: %d\n\n", r.UncoveredChangedMethods)

	fmt.Fprintf(w, "Confidence: high=%d medium=%d low=%d mean=%.2f\n\n",
		r.ConfidenceBreakdown.High, r.ConfidenceBreakdown.Medium, r.ConfidenceBreakdown.Low, r.ConfidenceBreakdown.Mean)

	if len(r.UncoveredMethods) > 0 {
		fmt.Fprintln(w, "Uncovered methods:")
		for _, m := range r.UncoveredMethods {
			fmt.Fprintf(w, "- %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "- [%s/%s] %s\n", rec.Priority, rec.Type, rec.Description)
		}
	}
}

// WriteCallGraphReportText renders a CallGraphReport as ranked markdown-style
// lists, grounded on pkg/tools/summary.go's directory-summary format.
func WriteCallGraphReportText(w io.Writer, r *CallGraphReport) {
	fmt.Fprintf(w, "# Call Graph Report\n\n")
	fmt.Fprintf(w, "Declarations: %d, Edges: %d\n\n", r.TotalDeclarations, r.TotalEdges)

	fmt.Fprintln(w, "## Most depended-on methods")
	for _, m := range r.MostDependedOn {
		fmt.Fprintf(w, "- **%s** (%d dependents)\n", m.ID, m.Count)
	}

	fmt.Fprintln(w, "\n## Methods with the most outgoing calls")
	for _, m := range r.MostOutgoingCalls {
		fmt.Fprintf(w, "- **%s** (%d calls)\n", m.ID, m.Count)
	}
}
