// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/diffparser"
	"github.com/kelvinreed/codeimpact/pkg/impact"
)

// runImpact executes `codeimpact impact <solution.sln> <diff-file>`: builds
// the whole call graph and prints every test impacted by the diff, per
// spec §4.7.
func runImpact(args []string, globals GlobalFlags, configPath string) error {
	fs := flag.NewFlagSet("impact", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.NewInputError("Missing arguments", "codeimpact impact requires a solution and a diff file", "Run: codeimpact impact <solution.sln> <diff-file>")
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

	result, err := impact.AnalyzeDiffImpact(ctx, changes, graph)
	if err != nil {
		return errors.NewInternalError("Impact analysis failed", err.Error(), "Re-run with --debug for details", err)
	}

	return writeReport(globals, result)
}
