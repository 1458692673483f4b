// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/kelvinreed/codeimpact/pkg/compiler"
	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/resolver"
	"github.com/kelvinreed/codeimpact/pkg/symbolindex"
)

// WholeBuildInput is the input to BuildWhole: every source file in the
// workspace to enumerate and model.
type WholeBuildInput struct {
	Files  []string
	Ladder Ladder // nil selects Stepwise, spec §9's documented default
}

// BuildWhole implements spec §4.5.1: enumerate every declaration across
// Files, walk each method body for call sites, and build the forward and
// reverse graph in one pass.
func BuildWhole(ctx context.Context, input WholeBuildInput, logger *slog.Logger) (*Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	defaultMetrics.init()
	start := time.Now()
	defer func() { defaultMetrics.buildSeconds.Observe(time.Since(start).Seconds()) }()

	c := compiler.NewWorkspaceCompiler(input.Files, logger)
	if err := c.Build(ctx); err != nil {
		return nil, err
	}
	g := NewGraph(input.Ladder)
	populate(ctx, g, c.Model(), logger)
	return g, nil
}

// populate declares every known method and walks its body for call sites,
// bounded-concurrency per spec §5 (min(2*hw_parallelism, 64)).
func populate(ctx context.Context, g *Graph, sm *compiler.SemanticModel, logger *slog.Logger) {
	types := sm.AllTypes()

	var allSymbols []*compiler.Symbol
	for _, ts := range types {
		for _, sym := range ts.Members {
			g.declare(&model.MethodInfo{
				ID:             sym.MethodID(),
				SimpleName:     sym.Name,
				ContainingType: sym.QualifiedContainingType(),
				FilePath:       sym.File,
				LineNumber:     sym.Line,
				IsTestMethod:   IsTestMethod(sym),
			})
			allSymbols = append(allSymbols, sym)
		}
	}

	workers := 2 * runtime.GOMAXPROCS(0)
	if workers > 64 {
		workers = 64
	}
	if workers < 2 {
		workers = 2
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, sym := range allSymbols {
		if sym.Body == "" {
			continue
		}
		sym := sym
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			walkBody(g, sm, sym, logger)
		}()
	}
	wg.Wait()

	for _, sym := range allSymbols {
		if !sym.IsInterfaceMember && !sym.IsVirtual && !sym.IsAbstract && !sym.IsOverride {
			continue
		}
		for _, edge := range resolver.PolymorphicBackEdges(sym, sm) {
			g.addReverseBackEdge(edge.Declaring, edge.Implementation)
		}
	}
}

func walkBody(g *Graph, sm *compiler.SemanticModel, sym *compiler.Symbol, logger *slog.Logger) {
	caller := sym.MethodID()
	for _, site := range extractCallSites(sym.Body, sym.ContainingType, sym.Namespace) {
		calleeID, kind, ok := resolver.ResolveCall(site, sm)
		if !ok {
			defaultMetrics.unresolvedTotal.Inc()
			logger.Debug("callgraph.unresolved_call_site", "caller", caller, "method_name", site.MethodName)
			continue
		}
		g.addEdge(caller, calleeID, kind)
	}
}

// IncrementalBuildInput targets a focused, depth-bounded build around one
// method, per spec §4.5.2.
type IncrementalBuildInput struct {
	Target model.MethodID
	Depth  int
	Index  *symbolindex.Index
	Files  map[string]*model.ProjectInfo // all known files; BuildIncremental does not read it (files come from Index)
	Ladder Ladder
}

// BuildIncremental implements spec §4.5.2: ask the symbol index for files
// possibly containing Target, build a partial graph over those, then
// bounded-BFS in both directions from Target, extending the compiler's
// known file set on demand when a newly discovered method isn't covered
// yet. Caching the result under (target, depth) is the caller's
// responsibility (pkg/cache.Contract), keeping this builder deterministic
// and side-effect free.
func BuildIncremental(ctx context.Context, input IncrementalBuildInput, logger *slog.Logger) (*Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := NewGraph(input.Ladder)

	seedFiles := input.Index.FindFilesContainingMethod(string(input.Target))
	if len(seedFiles) == 0 {
		return g, nil
	}

	known := make(map[string]bool)
	for _, f := range seedFiles {
		known[f] = true
	}

	c := compiler.NewWorkspaceCompiler(fileList(known), logger)
	if err := c.Build(ctx); err != nil {
		return nil, err
	}
	sm := c.Model()
	populate(ctx, g, sm, logger)

	frontier := map[model.MethodID]int{input.Target: 0}
	visited := map[model.MethodID]bool{input.Target: true}

	for len(frontier) > 0 {
		next := make(map[model.MethodID]int)
		for id, depth := range frontier {
			if depth >= input.Depth {
				continue
			}
			neighbors := append(g.MethodCalls(id), g.MethodDependents(id)...)
			for _, n := range neighbors {
				if visited[n] {
					continue
				}
				visited[n] = true
				if !g.hasDeclaration(n) {
					extendForMethod(ctx, g, c, input.Index, n, logger)
				}
				next[n] = depth + 1
			}
		}
		frontier = next
	}

	return g, nil
}

// extendForMethod pulls in any new files the symbol index associates with
// an unresolved MethodId discovered during BFS, compiles them into the
// same shared compiler/catalog, and re-runs populate over every type in the
// catalog; declarations and edges already in g are deduplicated by g.
func extendForMethod(ctx context.Context, g *Graph, c *compiler.Compiler, index *symbolindex.Index, id model.MethodID, logger *slog.Logger) {
	files := index.FindFilesContainingMethod(string(id))
	for _, f := range files {
		if err := c.AddFile(f); err != nil {
			logger.Debug("callgraph.extend_failed", "file", f, "error", err)
			continue
		}
	}
	if len(files) > 0 {
		populate(ctx, g, c.Model(), logger)
	}
}

func fileList(known map[string]bool) []string {
	out := make([]string, 0, len(known))
	for f := range known {
		out = append(out, f)
	}
	return out
}
