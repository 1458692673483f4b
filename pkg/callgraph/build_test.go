// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/symbolindex"
)

const graphSource = `namespace Acme.Widgets
{
    public interface IGreeter
    {
        string Greet(string name);
    }

    public class LoudGreeter : IGreeter
    {
        public virtual string Greet(string name)
        {
            return name.ToUpper();
        }
    }

    public class Service
    {
        private readonly IGreeter _greeter;

        public Service(IGreeter greeter)
        {
            _greeter = greeter;
        }

        public string Run(string name)
        {
            return _greeter.Greet(name);
        }

        public string RunTwice(string name)
        {
            var first = Run(name);
            return Run(first);
        }
    }

    public class ServiceTests
    {
        [Fact]
        public void Run_ReturnsGreeting()
        {
            var svc = new Service(new LoudGreeter());
            svc.RunTwice("ada");
        }
    }
}
`

func writeGraphSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildWhole_DeclaresAndConnects(t *testing.T) {
	dir := t.TempDir()
	path := writeGraphSource(t, dir, "Service.cs", graphSource)

	g, err := BuildWhole(context.Background(), WholeBuildInput{Files: []string{path}}, nil)
	require.NoError(t, err)

	decls, edges := g.Size()
	assert.Greater(t, decls, 0)
	assert.Greater(t, edges, 0)

	runID := model.BuildMethodID("Acme.Widgets.Service", "Run", []string{"string"})
	runTwiceID := model.BuildMethodID("Acme.Widgets.Service", "RunTwice", []string{"string"})

	deps := g.MethodDependents(runID)
	assert.Contains(t, deps, runTwiceID)
}

func TestBuildWhole_PolymorphicBackEdgeReachesTest(t *testing.T) {
	dir := t.TempDir()
	path := writeGraphSource(t, dir, "Service.cs", graphSource)

	g, err := BuildWhole(context.Background(), WholeBuildInput{Files: []string{path}}, nil)
	require.NoError(t, err)

	greetID := model.BuildMethodID("Acme.Widgets.IGreeter", "Greet", []string{"string"})
	tests := g.TestMethodsExercising(greetID)
	assert.NotEmpty(t, tests, "expected the interface method to transitively reach a test via its implementation's back-edge")
}

func TestBuildWhole_TestCoverageForAssignsConfidence(t *testing.T) {
	dir := t.TempDir()
	path := writeGraphSource(t, dir, "Service.cs", graphSource)

	g, err := BuildWhole(context.Background(), WholeBuildInput{Files: []string{path}}, nil)
	require.NoError(t, err)

	runID := model.BuildMethodID("Acme.Widgets.Service", "Run", []string{"string"})
	coverage := g.TestCoverageFor(runID)
	require.NotEmpty(t, coverage)
	for _, c := range coverage {
		assert.Greater(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
		assert.NotEmpty(t, c.CallPath)
	}
}

func TestBuildIncremental_FindsSeedAndExtends(t *testing.T) {
	dir := t.TempDir()
	path := writeGraphSource(t, dir, "Service.cs", graphSource)

	idx := symbolindex.New(nil)
	proj := &model.ProjectInfo{Name: "Acme.Widgets", Path: path}
	require.NoError(t, idx.Build(context.Background(), symbolindex.BuildInput{
		Files: map[string]*model.ProjectInfo{path: proj},
	}))

	runID := model.BuildMethodID("Acme.Widgets.Service", "Run", []string{"string"})

	g, err := BuildIncremental(context.Background(), IncrementalBuildInput{
		Target: runID,
		Depth:  3,
		Index:  idx,
		Files:  map[string]*model.ProjectInfo{path: proj},
	}, nil)
	require.NoError(t, err)

	decls, _ := g.Size()
	assert.Greater(t, decls, 0)
	assert.True(t, g.hasDeclaration(runID))
}

func TestBuildIncremental_UnknownTargetReturnsEmptyGraph(t *testing.T) {
	idx := symbolindex.New(nil)
	require.NoError(t, idx.Build(context.Background(), symbolindex.BuildInput{Files: map[string]*model.ProjectInfo{}}))

	g, err := BuildIncremental(context.Background(), IncrementalBuildInput{
		Target: model.MethodID("Nowhere.Thing.Method()"),
		Depth:  2,
		Index:  idx,
	}, nil)
	require.NoError(t, err)
	decls, _ := g.Size()
	assert.Equal(t, 0, decls)
}
