// Copyright 2026 The CodeImpact Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"path/filepath"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// DependencyGraph is the project-reference graph restricted to references
// that target another project within the same solution.
type DependencyGraph struct {
	byPath map[string]*model.ProjectInfo
	edges  map[string][]string // project path -> referenced project paths
}

// BuildDependencyGraph builds the reference graph for a set of projects,
// keeping only references whose target is also one of the given projects.
// It fails with a *CircularDependencyError if the graph contains a cycle.
func BuildDependencyGraph(projects []*model.ProjectInfo) (*DependencyGraph, error) {
	g := &DependencyGraph{
		byPath: make(map[string]*model.ProjectInfo, len(projects)),
		edges:  make(map[string][]string, len(projects)),
	}
	for _, p := range projects {
		g.byPath[filepath.Clean(p.Path)] = p
	}
	for _, p := range projects {
		key := filepath.Clean(p.Path)
		for _, ref := range p.ProjectReferences {
			refKey := filepath.Clean(ref)
			if _, ok := g.byPath[refKey]; ok {
				g.edges[key] = append(g.edges[key], refKey)
			}
		}
	}
	if cycle := g.findCycle(); cycle != nil {
		return nil, &CircularDependencyError{Cycle: cycle}
	}
	return g, nil
}

// findCycle runs a DFS with a recursion stack over every project, returning
// the first cycle found as a path of project paths, or nil if acyclic.
func (g *DependencyGraph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.byPath))
	var stack []string

	var visit func(node string) []string
	visit = func(node string) []string {
		color[node] = gray
		stack = append(stack, node)
		for _, next := range g.edges[node] {
			switch color[next] {
			case gray:
				// Found the cycle: slice the stack from next's first
				// occurrence through the current node, then close the loop.
				start := indexOf(stack, next)
				cycle := append([]string{}, stack[start:]...)
				cycle = append(cycle, next)
				return cycle
			case white:
				if c := visit(next); c != nil {
					return c
				}
			}
		}
		color[node] = black
		stack = stack[:len(stack)-1]
		return nil
	}

	for node := range g.byPath {
		if color[node] == white {
			if c := visit(node); c != nil {
				return c
			}
		}
	}
	return nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// CompilationOrder returns projects in reverse-topological order
// (dependencies before dependents). The graph must already be known
// acyclic (BuildDependencyGraph would have failed otherwise).
func (g *DependencyGraph) CompilationOrder() []*model.ProjectInfo {
	visited := make(map[string]bool, len(g.byPath))
	var order []string

	var visit func(node string)
	visit = func(node string) {
		if visited[node] {
			return
		}
		visited[node] = true
		for _, next := range g.edges[node] {
			visit(next)
		}
		order = append(order, node)
	}

	for node := range g.byPath {
		visit(node)
	}

	out := make([]*model.ProjectInfo, 0, len(order))
	for _, path := range order {
		out = append(out, g.byPath[path])
	}
	return out
}
