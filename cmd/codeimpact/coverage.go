// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/coverage"
	"github.com/kelvinreed/codeimpact/pkg/diffparser"
	"github.com/kelvinreed/codeimpact/pkg/impact"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// runCoverage executes `codeimpact coverage <solution.sln> <diff-file>`:
// builds the whole call graph, resolves the diff's changed methods, gathers
// every test that reaches them via Graph.TestCoverageFor, and runs the
// coverage analyzer (spec §4.8) over that (changes, tests) pair.
func runCoverage(args []string, globals GlobalFlags, configPath string) error {
	fs := flag.NewFlagSet("coverage", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.NewInputError("Missing arguments", "codeimpact coverage requires a solution and a diff file", "Run: codeimpact coverage <solution.sln> <diff-file>")
	}
	solutionPath, diffPath := fs.Arg(0), fs.Arg(1)

	logger := newLogger(globals)
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	graph, _, err := buildGraph(ctx, solutionPath, cfg, globals, logger)
	if err != nil {
		return err
	}

	changes, err := diffparser.ParseFile(diffPath)
	if err != nil {
		return errors.NewInputError("Cannot parse diff", err.Error(), "Pass the output of `git diff` or a unified-diff file")
	}
	for _, w := range changes.Warnings {
		logger.Warn("diffparser.warning", "message", w)
	}

	result := coverage.Analyze(changes, testsForChanges(changes, graph))
	return writeReport(globals, result)
}

// testsForChanges resolves changes' changed methods against graph's known
// declarations and collects every TestCoverageInfo Graph.TestCoverageFor
// reports for each, deduplicated by test method ID (keeping the
// highest-confidence path per spec §8 invariant 6).
func testsForChanges(changes *model.CodeChangeSet, graph graphForCoverage) []model.TestCoverageInfo {
	declarations := graph.AllDeclarations()
	changedIDs := impact.ResolveChangedMethods(changes, declarations)

	best := make(map[model.MethodID]model.TestCoverageInfo)
	for _, id := range changedIDs {
		for _, tc := range graph.TestCoverageFor(id) {
			cur, ok := best[tc.TestMethodID]
			if !ok || tc.Confidence > cur.Confidence {
				best[tc.TestMethodID] = tc
			}
		}
	}

	out := make([]model.TestCoverageInfo, 0, len(best))
	for _, tc := range best {
		out = append(out, tc)
	}
	return out
}

// graphForCoverage is the minimal surface testsForChanges needs from
// *callgraph.Graph, kept narrow so the function is easy to exercise in
// tests with a stub.
type graphForCoverage interface {
	AllDeclarations() []*model.MethodInfo
	TestCoverageFor(id model.MethodID) []model.TestCoverageInfo
}
