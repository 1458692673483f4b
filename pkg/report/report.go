// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"sort"

	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// RankedMethod is one entry in a CallGraphReport's ranked lists.
type RankedMethod struct {
	ID    model.MethodID
	Count int
}

// CallGraphReport is the ranked-summary view spec §6 names: the methods
// called by the most other methods (most dependents) and the methods that
// themselves make the most outgoing calls, grounded on the teacher's
// "top callers/callees" directory-summary shape.
type CallGraphReport struct {
	TotalDeclarations int
	TotalEdges        int
	MostDependedOn    []RankedMethod
	MostOutgoingCalls []RankedMethod
}

// DefaultTopN bounds the length of each ranked list when callers don't
// specify one.
const DefaultTopN = 10

// BuildCallGraphReport ranks every declaration in graph by dependent count
// and by outgoing-call count, keeping the top topN of each (DefaultTopN if
// topN <= 0).
func BuildCallGraphReport(graph *callgraph.Graph, topN int) *CallGraphReport {
	if topN <= 0 {
		topN = DefaultTopN
	}

	declarations, edges := graph.Size()
	report := &CallGraphReport{TotalDeclarations: declarations, TotalEdges: edges}

	for _, d := range graph.AllDeclarations() {
		dependents := len(graph.MethodDependents(d.ID))
		if dependents > 0 {
			report.MostDependedOn = append(report.MostDependedOn, RankedMethod{ID: d.ID, Count: dependents})
		}
		calls := len(graph.MethodCalls(d.ID))
		if calls > 0 {
			report.MostOutgoingCalls = append(report.MostOutgoingCalls, RankedMethod{ID: d.ID, Count: calls})
		}
	}

	sortRanked(report.MostDependedOn)
	sortRanked(report.MostOutgoingCalls)
	report.MostDependedOn = truncate(report.MostDependedOn, topN)
	report.MostOutgoingCalls = truncate(report.MostOutgoingCalls, topN)

	return report
}

func sortRanked(ranked []RankedMethod) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})
}

func truncate(ranked []RankedMethod, n int) []RankedMethod {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
