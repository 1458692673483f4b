// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"testing"

	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDependencyGraph_CompilationOrder(t *testing.T) {
	p1 := &model.ProjectInfo{Path: "/p1.csproj"}
	p2 := &model.ProjectInfo{Path: "/p2.csproj", ProjectReferences: []string{"/p1.csproj"}}
	p3 := &model.ProjectInfo{Path: "/p3.csproj", ProjectReferences: []string{"/p2.csproj"}}

	g, err := BuildDependencyGraph([]*model.ProjectInfo{p3, p2, p1})
	require.NoError(t, err)

	order := g.CompilationOrder()
	index := map[string]int{}
	for i, p := range order {
		index[p.Path] = i
	}
	assert.Less(t, index["/p1.csproj"], index["/p2.csproj"])
	assert.Less(t, index["/p2.csproj"], index["/p3.csproj"])
}

func TestBuildDependencyGraph_DetectsCycle(t *testing.T) {
	p1 := &model.ProjectInfo{Path: "/p1.csproj", ProjectReferences: []string{"/p2.csproj"}}
	p2 := &model.ProjectInfo{Path: "/p2.csproj", ProjectReferences: []string{"/p1.csproj"}}

	_, err := BuildDependencyGraph([]*model.ProjectInfo{p1, p2})
	require.Error(t, err)
	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Cycle, "/p1.csproj")
	assert.Contains(t, cycleErr.Cycle, "/p2.csproj")
}

func TestBuildDependencyGraph_IgnoresReferencesOutsideSolution(t *testing.T) {
	p1 := &model.ProjectInfo{Path: "/p1.csproj", ProjectReferences: []string{"/external/Other.csproj"}}

	g, err := BuildDependencyGraph([]*model.ProjectInfo{p1})
	require.NoError(t, err)
	assert.Len(t, g.CompilationOrder(), 1)
}
