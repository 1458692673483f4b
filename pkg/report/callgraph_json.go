// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/kelvinreed/codeimpact/internal/output"
)

type rankedMethodJSON struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type callGraphReportJSON struct {
	TotalDeclarations int                `json:"total_declarations"`
	TotalEdges        int                `json:"total_edges"`
	MostDependedOn    []rankedMethodJSON `json:"most_depended_on"`
	MostOutgoingCalls []rankedMethodJSON `json:"most_outgoing_calls"`
}

// WriteCallGraphReportJSON writes r as pretty-printed JSON to w.
func WriteCallGraphReportJSON(w io.Writer, r *CallGraphReport) error {
	doc := callGraphReportJSON{
		TotalDeclarations: r.TotalDeclarations,
		TotalEdges:        r.TotalEdges,
	}
	for _, m := range r.MostDependedOn {
		doc.MostDependedOn = append(doc.MostDependedOn, rankedMethodJSON{ID: string(m.ID), Count: m.Count})
	}
	for _, m := range r.MostOutgoingCalls {
		doc.MostOutgoingCalls = append(doc.MostOutgoingCalls, rankedMethodJSON{ID: string(m.ID), Count: m.Count})
	}
	return output.JSONTo(w, doc)
}
