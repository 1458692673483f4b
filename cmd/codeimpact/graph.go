// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/cache"
	"github.com/kelvinreed/codeimpact/pkg/report"
)

// runGraph executes `codeimpact graph <solution.sln>`: prints the same
// ranked call-graph summary as `index`, stored through a pkg/cache.DiskCache
// entry. The source-file snapshot DetectChanges compares against is held in
// memory only, so each new run sees "no prior snapshot", clears the cache
// and rebuilds the report; an entry written by an earlier run is not
// reused. A cache miss falls back to a full rebuild rather than failing,
// per spec §4.9's "any entry may be absent without correctness loss"
// contract.
func runGraph(args []string, globals GlobalFlags, configPath string) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	top := fs.Int("top", report.DefaultTopN, "Number of entries per ranked list")
	noCache := fs.Bool("no-cache", false, "Ignore the on-disk cache and rebuild from scratch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError("Missing solution path", "codeimpact graph requires exactly one .sln argument", "Run: codeimpact graph <solution.sln>")
	}
	solutionPath := fs.Arg(0)

	logger := newLogger(globals)
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	sol, err := loadSolution(solutionPath, cfg, logger)
	if err != nil {
		return err
	}
	files := sourceFiles(sol)

	ctx := context.Background()

	diskCache, err := cache.NewDiskCache(cfg.CacheDir)
	if err != nil {
		return errors.NewInternalError("Cannot open cache directory", err.Error(), "Check permissions on "+cfg.CacheDir, err)
	}

	if *noCache {
		diskCache.Clear()
	} else if changes, detectErr := diskCache.DetectChanges(ctx, files); detectErr == nil && changes.HasChanges {
		logger.Info("graph.cache.invalidated", "reason", changes.Reason)
		diskCache.Clear()
	}

	key := "callgraph-report:" + solutionPath
	value, err := diskCache.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		graph, _, buildErr := buildGraphFromSolution(ctx, sol, cfg, globals, logger)
		if buildErr != nil {
			return nil, buildErr
		}
		return report.BuildCallGraphReport(graph, *top), nil
	})
	if err != nil {
		return err
	}

	if err := diskCache.Snapshot(ctx, files); err != nil {
		logger.Warn("graph.cache.snapshot_failed", "error", err.Error())
	}

	r, ok := value.(*report.CallGraphReport)
	if !ok {
		return errors.NewInternalError("Corrupt cache entry", "cached value was not a CallGraphReport", "Re-run with --no-cache", nil)
	}
	return writeReport(globals, r)
}
