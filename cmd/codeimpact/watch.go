// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/cache"
	"github.com/kelvinreed/codeimpact/pkg/callgraph"
	"github.com/kelvinreed/codeimpact/pkg/coverage"
	"github.com/kelvinreed/codeimpact/pkg/diffparser"
	"github.com/kelvinreed/codeimpact/pkg/impact"
)

// runWatch executes `codeimpact watch <solution.sln>`: builds the call
// graph once, then polls the solution's git working tree on an interval,
// re-running impact analysis and coverage reporting against whatever is
// currently uncommitted each time `git diff --name-status <base-ref>`
// reports a change (pkg/cache.GitSnapshotter). Everything here lives inside
// the one `watch` invocation, cancelled on SIGINT/SIGTERM.
//
// Flags are parsed with pflag rather than the stdlib flag package used by
// every other subcommand, since `watch` is the one subcommand with enough
// distinct options (interval, base ref, repo root) to want pflag's
// `--flag=value` and short-flag grouping over flag.FlagSet's plainer syntax.
func runWatch(args []string, globals GlobalFlags, configPath string) error {
	fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	interval := fs.DurationP("interval", "i", 5*time.Second, "Poll interval")
	baseRef := fs.String("base-ref", "HEAD", "Git ref to diff the working tree against")
	repoFlag := fs.String("repo", "", "Git repository root (default: the solution file's directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError("Missing solution path", "codeimpact watch requires exactly one .sln argument", "Run: codeimpact watch <solution.sln>")
	}
	solutionPath := fs.Arg(0)

	logger := newLogger(globals)
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	repoPath := *repoFlag
	if repoPath == "" {
		repoPath = filepath.Dir(solutionPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifyCancelOnSignal(cancel, logger)

	graph, fileCount, err := buildGraph(ctx, solutionPath, cfg, globals, logger)
	if err != nil {
		return err
	}
	logger.Info("watch.start", "files", fileCount, "interval", interval.String(), "repo", repoPath)

	snapshotter := cache.NewGitSnapshotter(repoPath, *baseRef)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	// Run one pass immediately rather than waiting a full interval, so
	// `watch` is useful for a diff that's already sitting in the working
	// tree when it's launched.
	runWatchTick(ctx, snapshotter, repoPath, graph, globals, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch.stop")
			return nil
		case <-ticker.C:
			runWatchTick(ctx, snapshotter, repoPath, graph, globals, logger)
		}
	}
}

// runWatchTick checks for working-tree changes since the snapshotter's last
// ref and, if any are found, re-parses the live diff and re-runs impact and
// coverage analysis against the already-built graph, printing both reports.
// A tick failure is logged, not fatal: a transient `git diff` error should
// not end the watch loop.
func runWatchTick(ctx context.Context, snapshotter *cache.GitSnapshotter, repoPath string, graph *callgraph.Graph, globals GlobalFlags, logger *slog.Logger) {
	changeReport, err := snapshotter.DetectChanges(ctx)
	if err != nil {
		logger.Warn("watch.detect_changes_failed", "error", err.Error())
		return
	}
	if !changeReport.HasChanges {
		return
	}
	logger.Info("watch.change_detected", "reason", changeReport.Reason, "modified", len(changeReport.Modified), "added", len(changeReport.Added), "deleted", len(changeReport.Deleted))

	changes, err := diffparser.ParseVCS(ctx, "git", "-C", repoPath, "diff")
	if err != nil {
		logger.Warn("watch.diff_failed", "error", err.Error())
		return
	}
	for _, w := range changes.Warnings {
		logger.Warn("diffparser.warning", "message", w)
	}

	impactResult, err := impact.AnalyzeDiffImpact(ctx, changes, graph)
	if err != nil {
		logger.Warn("watch.impact_failed", "error", err.Error())
		return
	}
	if err := writeReport(globals, impactResult); err != nil {
		logger.Warn("watch.write_impact_failed", "error", err.Error())
	}

	coverageResult := coverage.Analyze(changes, testsForChanges(changes, graph))
	if err := writeReport(globals, coverageResult); err != nil {
		logger.Warn("watch.write_coverage_failed", "error", err.Error())
	}
}
