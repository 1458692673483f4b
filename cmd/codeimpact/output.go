// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/kelvinreed/codeimpact/pkg/impact"
	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/report"
)

// writeReport renders r (an *impact.Result, *model.CoverageResult, or
// *report.CallGraphReport) as JSON or text per globals.JSON, the two
// serializations spec §6 requires.
func writeReport(globals GlobalFlags, r any) error {
	switch v := r.(type) {
	case *impact.Result:
		if globals.JSON {
			return report.WriteImpactJSON(os.Stdout, v)
		}
		report.WriteImpactText(os.Stdout, v)
	case *model.CoverageResult:
		if globals.JSON {
			return report.WriteCoverageJSON(os.Stdout, v)
		}
		report.WriteCoverageText(os.Stdout, v)
	case *report.CallGraphReport:
		if globals.JSON {
			return report.WriteCallGraphReportJSON(os.Stdout, v)
		}
		report.WriteCallGraphReportText(os.Stdout, v)
	}
	return nil
}
