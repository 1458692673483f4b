// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package impact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/internal/testutil"
	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/coverage"
	"github.com/kelvinreed/codeimpact/pkg/diffparser"
	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/project"
)

const greeterSource = `namespace Acme.Widgets
{
    public class Greeter
    {
        public string Greet(string name)
        {
            return "Hello, " + name;
        }
    }
}
`

const greeterTestSource = `namespace Acme.Widgets.Tests
{
    public class GreeterTests
    {
        [Fact]
        public void Greet_ReturnsGreeting()
        {
            var g = new Greeter();
            g.Greet("World");
        }
    }
}
`

// TestEndToEnd_SolutionToCoverage drives the full pipeline spec §2's data
// flow describes — solution parsing (C1), whole-graph build (C5), diff
// parsing (C6), impact analysis (C7), and coverage analysis (C8) — against
// a two-project fixture solution on disk, rather than a single in-memory
// file as the other tests in this package use.
func TestEndToEnd_SolutionToCoverage(t *testing.T) {
	fx := testutil.NewSolutionFixture(t, "Acme")
	fx.AddProject("Acme.Widgets", nil, false)
	greeterPath := fx.AddSource("Acme.Widgets", "Greeter.cs", greeterSource)
	fx.AddProject("Acme.Widgets.Tests", []string{"Acme.Widgets"}, true)
	fx.AddSource("Acme.Widgets.Tests", "GreeterTests.cs", greeterTestSource)
	solPath := fx.Build()

	sol, err := project.ParseSolution(solPath, nil)
	require.NoError(t, err)
	require.Len(t, sol.Projects, 2)

	var files []string
	for _, p := range sol.Projects {
		files = append(files, p.SourceFiles...)
	}

	graph, err := callgraph.BuildWhole(context.Background(), callgraph.WholeBuildInput{Files: files}, nil)
	require.NoError(t, err)

	diffText := testutil.UnifiedDiff(greeterPath, `        public string Greet(string name)
        {
            return "Hi, " + name;
        }`)
	changes, err := diffparser.ParseBytes([]byte(diffText))
	require.NoError(t, err)
	require.NotEmpty(t, changes.Changes)

	impactResult, err := AnalyzeDiffImpact(context.Background(), changes, graph)
	require.NoError(t, err)
	require.NotEmpty(t, impactResult.ImpactedTests)
	assert.Equal(t, "Greet_ReturnsGreeting", impactResult.ImpactedTests[0].MethodName)

	declarations := graph.AllDeclarations()
	changedIDs := ResolveChangedMethods(changes, declarations)
	require.NotEmpty(t, changedIDs)

	var tests []model.TestCoverageInfo
	for _, id := range changedIDs {
		tests = append(tests, graph.TestCoverageFor(id)...)
	}
	coverageResult := coverage.Analyze(changes, tests)
	assert.Equal(t, coverageResult.TotalChangedMethods, coverageResult.CoveredChangedMethods+coverageResult.UncoveredChangedMethods)
	assert.Greater(t, coverageResult.CoveredChangedMethods, 0)
}
