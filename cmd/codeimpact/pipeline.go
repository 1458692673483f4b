// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelvinreed/codeimpact/internal/config"
	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/project"
)

// newLogger builds the process-wide slog.Logger, level selected by --debug,
// grounded on cmd/cie/index.go's logging setup.
func newLogger(globals GlobalFlags) *slog.Logger {
	level := slog.LevelInfo
	if globals.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig loads .codeimpact/project.yaml, preferring an explicit
// --config path and otherwise discovering it by walking up from cwd. Per
// SPEC_FULL.md §2, this is the only place in the whole module that imports
// internal/config; every core package downstream takes plain Go values.
func resolveConfig(explicitPath string) (config.Config, error) {
	path := explicitPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Config{}, err
		}
		path = config.Find(cwd)
		if path == "" {
			path = filepath.Join(cwd, config.DefaultFileName)
		}
	}
	return config.Load(path)
}

// loadSolution parses solutionPath, filtering its projects against cfg's
// ProjectFilters when any are configured.
func loadSolution(solutionPath string, cfg config.Config, logger *slog.Logger) (*model.SolutionInfo, error) {
	sol, err := project.ParseSolution(solutionPath, logger)
	if err != nil {
		if nf, ok := err.(*project.NotFoundError); ok {
			return nil, errors.NewNotFoundError(
				"Solution not found",
				nf.Error(),
				"Check the path or pass a .csproj file directly",
			)
		}
		return nil, errors.NewInputError("Cannot parse solution", err.Error(), "Verify the .sln file is well-formed")
	}

	if len(cfg.ProjectFilters) == 0 {
		return sol, nil
	}

	filtered := sol.Projects[:0:0]
	for _, p := range sol.Projects {
		if config.MatchesFilters(p.Name, cfg.ProjectFilters) {
			filtered = append(filtered, p)
		}
	}
	sol.Projects = filtered
	return sol, nil
}

// sourceFiles flattens every project's SourceFiles into one deduplicated
// file list, the input callgraph.BuildWhole expects.
func sourceFiles(sol *model.SolutionInfo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range sol.Projects {
		for _, f := range p.SourceFiles {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// ladderFor maps a config/flag confidence name to a callgraph.Ladder,
// defaulting to Stepwise per spec §4.5.3/§9.
func ladderFor(name string) callgraph.Ladder {
	switch name {
	case "linear":
		return callgraph.Linear
	default:
		return callgraph.Stepwise
	}
}

// buildGraph loads the solution at solutionPath and builds its whole call
// graph, showing an indeterminate spinner while the (potentially slow)
// compile-and-walk pass runs.
func buildGraph(ctx context.Context, solutionPath string, cfg config.Config, globals GlobalFlags, logger *slog.Logger) (*callgraph.Graph, int, error) {
	sol, err := loadSolution(solutionPath, cfg, logger)
	if err != nil {
		return nil, 0, err
	}
	return buildGraphFromSolution(ctx, sol, cfg, globals, logger)
}

// buildGraphFromSolution builds the whole call graph for an already-parsed
// solution, letting callers that need the parsed *model.SolutionInfo for
// something else (e.g. `graph`'s cache-key/file-list bookkeeping) avoid
// parsing it twice.
func buildGraphFromSolution(ctx context.Context, sol *model.SolutionInfo, cfg config.Config, globals GlobalFlags, logger *slog.Logger) (*callgraph.Graph, int, error) {
	files := sourceFiles(sol)
	prog := NewProgressConfig(globals)
	spinner := NewSpinner(prog, fmt.Sprintf("Building call graph (%d files)...", len(files)))
	defer finishSpinner(spinner)

	graph, err := callgraph.BuildWhole(ctx, callgraph.WholeBuildInput{Files: files, Ladder: ladderFor(cfg.Confidence)}, logger)
	if err != nil {
		return nil, 0, errors.NewInternalError("Call graph build failed", err.Error(), "Re-run with --debug for details", err)
	}
	return graph, len(files), nil
}
