// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package impact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

const impactSource = `namespace Acme.Widgets
{
    public class Calculator
    {
        public int Add(int a, int b)
        {
            return a + b;
        }
    }

    public class CalculatorTests
    {
        [Fact]
        public void Add_ReturnsSum()
        {
            var calc = new Calculator();
            calc.Add(1, 2);
        }
    }
}
`

func buildImpactGraph(t *testing.T) (*callgraph.Graph, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Calculator.cs")
	require.NoError(t, os.WriteFile(path, []byte(impactSource), 0o644))

	g, err := callgraph.BuildWhole(context.Background(), callgraph.WholeBuildInput{Files: []string{path}}, nil)
	require.NoError(t, err)
	return g, path
}

// TestAnalyzeDiffImpact_FindsImpactedTest is scenario-adjacent to spec §8's
// S3: a changed production method reaches a covering test.
func TestAnalyzeDiffImpact_FindsImpactedTest(t *testing.T) {
	g, path := buildImpactGraph(t)

	changes := &model.CodeChangeSet{Changes: []model.CodeChange{
		{FilePath: path, ChangeType: model.ChangeModified, ChangedMethods: []string{"Add"}},
	}}

	result, err := AnalyzeDiffImpact(context.Background(), changes, g)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMethods)
	require.Len(t, result.ImpactedTests, 1)
	assert.Equal(t, "Add_ReturnsSum", result.ImpactedTests[0].MethodName)
	assert.Greater(t, result.ImpactedTests[0].Confidence, 0.0)
	assert.Contains(t, result.ImpactedTests[0].ImpactReasons, "Add")
}

// TestAnalyzeDiffImpact_AffectedMethodsSupersetOfChanged is invariant 3 from
// spec §8: affected_methods(C) superset-or-equal C.
func TestAnalyzeDiffImpact_AffectedMethodsSupersetOfChanged(t *testing.T) {
	g, path := buildImpactGraph(t)
	changes := &model.CodeChangeSet{Changes: []model.CodeChange{
		{FilePath: path, ChangeType: model.ChangeModified, ChangedMethods: []string{"Add"}},
	}}

	result, err := AnalyzeDiffImpact(context.Background(), changes, g)
	require.NoError(t, err)

	addID := model.BuildMethodID("Acme.Widgets.Calculator", "Add", []string{"int", "int"})
	assert.Contains(t, result.AffectedMethods, addID)
}

// TestAnalyzeDiffImpact_FileLevelFallback covers spec §4.7's fallback: a
// CodeChange with no changed method names marks every method declared in
// that file as changed.
func TestAnalyzeDiffImpact_FileLevelFallback(t *testing.T) {
	g, path := buildImpactGraph(t)
	changes := &model.CodeChangeSet{Changes: []model.CodeChange{
		{FilePath: path, ChangeType: model.ChangeModified},
	}}

	result, err := AnalyzeDiffImpact(context.Background(), changes, g)
	require.NoError(t, err)
	assert.Greater(t, result.TotalMethods, 0)
	assert.NotEmpty(t, result.ImpactedTests)
}

func TestAnalyzeDiffImpact_NoChanges(t *testing.T) {
	g, _ := buildImpactGraph(t)
	result, err := AnalyzeDiffImpact(context.Background(), &model.CodeChangeSet{}, g)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalMethods)
	assert.Empty(t, result.ImpactedTests)
}

func TestShouldScopeBuild(t *testing.T) {
	assert.True(t, ShouldScopeBuild(1, 100))
	assert.False(t, ShouldScopeBuild(80, 100))
	assert.False(t, ShouldScopeBuild(5, 0))
}
