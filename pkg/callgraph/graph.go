// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"sync"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// Graph is the call graph's query surface: forward and reverse adjacency
// over arena-interned indices, plus the declaration table. BuildWhole and
// BuildIncremental both populate a Graph and share every method below.
type Graph struct {
	arena *arena

	mu      sync.RWMutex
	forward map[int32]map[int32]model.MethodCallKind
	reverse map[int32]map[int32]bool
	info    map[int32]*model.MethodInfo

	ladder Ladder
}

// NewGraph creates an empty graph. ladder selects the confidence function
// TestCoverageFor uses; nil defaults to Stepwise (spec §9's chosen default,
// see DESIGN.md).
func NewGraph(ladder Ladder) *Graph {
	if ladder == nil {
		ladder = Stepwise
	}
	return &Graph{
		arena:   newArena(),
		forward: make(map[int32]map[int32]model.MethodCallKind),
		reverse: make(map[int32]map[int32]bool),
		info:    make(map[int32]*model.MethodInfo),
		ladder:  ladder,
	}
}

func (g *Graph) declare(info *model.MethodInfo) {
	defaultMetrics.init()
	idx := g.arena.Intern(info.ID)
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.info[idx]; !exists {
		g.info[idx] = info
		defaultMetrics.declarationsTotal.Inc()
	}
}

// addEdge records caller->callee once, deduplicated per (caller, callee)
// pair per spec §4.5 ("Kind and LineNumber are carried through construction
// but are not part of edge identity").
func (g *Graph) addEdge(caller, callee model.MethodID, kind model.MethodCallKind) {
	defaultMetrics.init()
	c := g.arena.Intern(caller)
	e := g.arena.Intern(callee)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.forward[c] == nil {
		g.forward[c] = make(map[int32]model.MethodCallKind)
	}
	if _, exists := g.forward[c][e]; !exists {
		g.forward[c][e] = kind
		defaultMetrics.edgesTotal.Inc()
	}
	if g.reverse[e] == nil {
		g.reverse[e] = make(map[int32]bool)
	}
	g.reverse[e][c] = true
}

// addReverseBackEdge inserts a reverse-only traversal shortcut: a reverse
// BFS starting at declaring steps directly to implementation, per spec
// §4.4's polymorphic expansion ("I.M -> C.M reverse path", SPEC_FULL.md
// §4.5). It deliberately does not touch the forward adjacency: it is not a
// real call, only a structural link so changes to an interface/abstract
// member are seen to reach every implementation during reverse traversal.
func (g *Graph) addReverseBackEdge(declaring, implementation model.MethodID) {
	d := g.arena.Intern(declaring)
	i := g.arena.Intern(implementation)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reverse[d] == nil {
		g.reverse[d] = make(map[int32]bool)
	}
	g.reverse[d][i] = true
}

func (g *Graph) hasDeclaration(id model.MethodID) bool {
	idx, ok := g.arena.Lookup(id)
	if !ok {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok = g.info[idx]
	return ok
}

// MethodCalls returns the set of methods id directly calls.
func (g *Graph) MethodCalls(id model.MethodID) []model.MethodID {
	idx, ok := g.arena.Lookup(id)
	if !ok {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.MethodID, 0, len(g.forward[idx]))
	for callee := range g.forward[idx] {
		out = append(out, g.arena.String(callee))
	}
	return out
}

// MethodDependents returns the set of methods that directly call id.
func (g *Graph) MethodDependents(id model.MethodID) []model.MethodID {
	idx, ok := g.arena.Lookup(id)
	if !ok {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.MethodID, 0, len(g.reverse[idx]))
	for caller := range g.reverse[idx] {
		out = append(out, g.arena.String(caller))
	}
	return out
}

// TransitiveDependents performs a BFS over the reverse graph from id,
// excluding id itself from the result, per spec §4.5.3.
func (g *Graph) TransitiveDependents(id model.MethodID) []model.MethodID {
	start, ok := g.arena.Lookup(id)
	if !ok {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[int32]bool{start: true}
	queue := []int32{start}
	var out []model.MethodID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for caller := range g.reverse[cur] {
			if visited[caller] {
				continue
			}
			visited[caller] = true
			out = append(out, g.arena.String(caller))
			queue = append(queue, caller)
		}
	}
	return out
}

// TestMethodsExercising performs a reverse BFS from id that stops
// descending at any node marked is_test_method and collects those nodes,
// per spec §4.5.3.
func (g *Graph) TestMethodsExercising(id model.MethodID) []model.MethodID {
	start, ok := g.arena.Lookup(id)
	if !ok {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[int32]bool{start: true}
	queue := []int32{start}
	var out []model.MethodID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for caller := range g.reverse[cur] {
			if visited[caller] {
				continue
			}
			visited[caller] = true
			if info := g.info[caller]; info != nil && info.IsTestMethod {
				out = append(out, g.arena.String(caller))
				continue
			}
			queue = append(queue, caller)
		}
	}
	return out
}

// TestCoverageFor mirrors TestMethodsExercising but records the call path
// and assigns confidence by path length using the graph's configured
// ladder, per spec §4.5.3.
func (g *Graph) TestCoverageFor(id model.MethodID) []model.TestCoverageInfo {
	start, ok := g.arena.Lookup(id)
	if !ok {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	type frame struct {
		idx  int32
		path []int32
	}
	visited := map[int32]bool{start: true}
	queue := []frame{{idx: start, path: []int32{start}}}
	var out []model.TestCoverageInfo

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for caller := range g.reverse[cur.idx] {
			if visited[caller] {
				continue
			}
			visited[caller] = true
			path := append(append([]int32{}, cur.path...), caller)

			if info := g.info[caller]; info != nil && info.IsTestMethod {
				callPath := make([]model.MethodID, len(path))
				for i, p := range path {
					callPath[i] = g.arena.String(p)
				}
				depth := len(path) - 1
				out = append(out, model.TestCoverageInfo{
					TestMethodID:  g.arena.String(caller),
					TestClass:     info.ContainingType,
					Confidence:    g.ladder(depth),
					CallDepth:     depth,
					CallPath:      callPath,
					TestType:      model.TestTypeUnit,
				})
				continue
			}
			queue = append(queue, frame{idx: caller, path: path})
		}
	}
	return out
}

// AllDeclarations returns every method declaration known to the graph.
func (g *Graph) AllDeclarations() []*model.MethodInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*model.MethodInfo, 0, len(g.info))
	for _, info := range g.info {
		out = append(out, info)
	}
	return out
}

// Size returns (declaration count, edge count), useful for metrics/logging.
func (g *Graph) Size() (declarations, edges int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e := 0
	for _, m := range g.forward {
		e += len(m)
	}
	return len(g.info), e
}
