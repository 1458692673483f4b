// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/impact"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

const reportSource = `namespace Acme.Billing
{
    public class Invoice
    {
        public decimal Total()
        {
            return Subtotal() + Tax();
        }

        public decimal Subtotal()
        {
            return 100m;
        }

        public decimal Tax()
        {
            return 8m;
        }
    }

    public class InvoiceTests
    {
        [Fact]
        public void Total_SumsSubtotalAndTax()
        {
            var invoice = new Invoice();
            invoice.Total();
        }
    }
}
`

func buildReportGraph(t *testing.T) (*callgraph.Graph, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Invoice.cs")
	require.NoError(t, os.WriteFile(path, []byte(reportSource), 0o644))

	g, err := callgraph.BuildWhole(context.Background(), callgraph.WholeBuildInput{Files: []string{path}}, nil)
	require.NoError(t, err)
	return g, path
}

func TestBuildCallGraphReport_RanksByDependentAndCallCount(t *testing.T) {
	g, _ := buildReportGraph(t)

	r := BuildCallGraphReport(g, 0)

	require.NotEmpty(t, r.MostDependedOn)
	require.NotEmpty(t, r.MostOutgoingCalls)
	assert.Greater(t, r.TotalDeclarations, 0)
	assert.Greater(t, r.TotalEdges, 0)

	top := r.MostOutgoingCalls[0]
	assert.Contains(t, string(top.ID), "Total")
	assert.GreaterOrEqual(t, top.Count, 2)
}

func TestBuildCallGraphReport_TruncatesToTopN(t *testing.T) {
	g, _ := buildReportGraph(t)

	r := BuildCallGraphReport(g, 1)

	assert.LessOrEqual(t, len(r.MostDependedOn), 1)
	assert.LessOrEqual(t, len(r.MostOutgoingCalls), 1)
}

func TestWriteImpactJSON_RoundTrips(t *testing.T) {
	g, path := buildReportGraph(t)
	changes := &model.CodeChangeSet{Changes: []model.CodeChange{
		{FilePath: path, ChangeType: model.ChangeModified, ChangedMethods: []string{"Subtotal"}},
	}}
	result, err := impact.AnalyzeDiffImpact(context.Background(), changes, g)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteImpactJSON(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, result.TotalImpactedTests, decoded["total_impacted_tests"])
	assert.NotEmpty(t, decoded["analyzed_at"])
}

func TestWriteCoverageJSON_RoundTrips(t *testing.T) {
	result := &model.CoverageResult{
		CoveragePercentage:      75.5,
		TotalChangedMethods:     4,
		CoveredChangedMethods:   3,
		UncoveredChangedMethods: 1,
		UncoveredMethods:        []string{"Acme.Billing.Invoice.Tax()"},
		ConfidenceBreakdown:     model.ConfidenceBreakdown{High: 2, Medium: 1, Low: 0, Mean: 0.9},
		Recommendations: []model.Recommendation{
			{Type: model.RecommendationMissingTests, Description: "add a test for Tax", Priority: model.PriorityHigh},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCoverageJSON(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 75.5, decoded["coverage_percentage"])
	recs, ok := decoded["recommendations"].([]any)
	require.True(t, ok)
	require.Len(t, recs, 1)
}

func TestWriteImpactText_ListsImpactedTests(t *testing.T) {
	g, path := buildReportGraph(t)
	changes := &model.CodeChangeSet{Changes: []model.CodeChange{
		{FilePath: path, ChangeType: model.ChangeModified, ChangedMethods: []string{"Subtotal"}},
	}}
	result, err := impact.AnalyzeDiffImpact(context.Background(), changes, g)
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteImpactText(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Impact Analysis")
	assert.Contains(t, out, "Total_SumsSubtotalAndTax")
}

func TestWriteCoverageText_ListsRecommendations(t *testing.T) {
	result := &model.CoverageResult{
		CoveragePercentage:      50,
		TotalChangedMethods:     2,
		CoveredChangedMethods:   1,
		UncoveredChangedMethods: 1,
		Recommendations: []model.Recommendation{
			{Type: model.RecommendationLowConfidence, Description: "verify Tax coverage", Priority: model.PriorityMedium},
		},
	}

	var buf bytes.Buffer
	WriteCoverageText(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "Coverage Report")
	assert.Contains(t, out, "verify Tax coverage")
}

func TestWriteCallGraphReportJSON_RoundTrips(t *testing.T) {
	g, _ := buildReportGraph(t)
	r := BuildCallGraphReport(g, 0)

	var buf bytes.Buffer
	require.NoError(t, WriteCallGraphReportJSON(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, r.TotalDeclarations, decoded["total_declarations"])
}

func TestWriteCallGraphReportText_ListsRankedMethods(t *testing.T) {
	g, _ := buildReportGraph(t)
	r := BuildCallGraphReport(g, 0)

	var buf bytes.Buffer
	WriteCallGraphReportText(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Call Graph Report")
	assert.Contains(t, out, "Most depended-on methods")
}
