// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

// Compiler is the shared implementation behind both the workspace-backed
// and scoped/standalone flavors described in spec §4.3. The two flavors
// differ only in which files they are constructed over: a workspace
// compiler is handed every source file reachable from a solution's
// dependency-ordered projects, a scoped compiler a fixed, small file set.
// Both share one typeCatalog and one SemanticModel implementation, since
// the contract (resolve_symbol/resolve_type/clear_cache) does not depend on
// how the file set was chosen.
type Compiler struct {
	catalog *typeCatalog
	known   map[string]bool
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewWorkspaceCompiler builds a compiler over every source file in a
// solution's projects. Construction does not scan eagerly; call Build to
// populate the catalog before issuing queries.
func NewWorkspaceCompiler(files []string, logger *slog.Logger) *Compiler {
	return newCompiler(files, logger)
}

// NewScopedCompiler builds a compiler over a fixed, typically small file
// set (spec §4.3's "core runtime libraries" fallback is approximated here
// by simply not attempting cross-project resolution beyond the given
// files).
func NewScopedCompiler(files []string, logger *slog.Logger) *Compiler {
	return newCompiler(files, logger)
}

func newCompiler(files []string, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f] = true
	}
	return &Compiler{catalog: newTypeCatalog(), known: known, logger: logger}
}

// Build scans every known file into the catalog, bounded-concurrency, per
// spec §5's worker-pool convention. Individual file failures are logged
// and skipped; they never abort the build.
func (c *Compiler) Build(ctx context.Context) error {
	workers := 2 * runtime.GOMAXPROCS(0)
	if workers > 64 {
		workers = 64
	}
	if workers < 2 {
		workers = 2
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	c.mu.RLock()
	paths := make([]string, 0, len(c.known))
	for p := range c.known {
		paths = append(paths, p)
	}
	c.mu.RUnlock()

	for _, path := range paths {
		path := path
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := c.catalog.ScanFile(path); err != nil {
				c.logger.Debug("compiler.scan_failed", "path", path, "error", err)
			}
		}()
	}
	wg.Wait()
	return nil
}

// GetSemanticModel returns the shared semantic model if filePath is part of
// this compiler's known file set, matching spec §4.3's
// get_semantic_model(file_path) contract (one model per compiler instance;
// "None" is the !ok case).
func (c *Compiler) GetSemanticModel(filePath string) (*SemanticModel, bool) {
	c.mu.RLock()
	ok := c.known[filePath]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &SemanticModel{owner: c.catalog}, true
}

// Model returns the compiler's shared SemanticModel directly, for callers
// (pkg/callgraph) that already know which files they're working with and
// don't need the per-file existence check GetSemanticModel performs.
func (c *Compiler) Model() *SemanticModel {
	return &SemanticModel{owner: c.catalog}
}

// AddFile registers an additional file as known to the compiler (used by
// the incremental call-graph build when it needs to extend the scanned set
// on demand) and scans it immediately.
func (c *Compiler) AddFile(path string) error {
	c.mu.Lock()
	c.known[path] = true
	c.mu.Unlock()
	_, err := c.catalog.ScanFile(path)
	return err
}

// ClearSemanticModelCache drops every cached per-file scan, per spec
// §4.3's clear_semantic_model_cache.
func (c *Compiler) ClearSemanticModelCache() {
	c.catalog.clear()
}
