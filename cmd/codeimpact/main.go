// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package main implements the codeimpact CLI: test impact analysis and
// coverage reporting for a C#-style solution, driven from a unified diff.
//
// Usage:
//
//	codeimpact index <solution.sln>              Build the call graph and print a ranked summary
//	codeimpact impact <solution.sln> <diff-file>  Print tests impacted by a diff
//	codeimpact coverage <solution.sln> <diff-file> Print a coverage report for a diff
//	codeimpact graph <solution.sln>               Print the cached call-graph summary
//	codeimpact watch <solution.sln>               Poll a git working tree and re-run impact+coverage on change
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/internal/ui"
)

// GlobalFlags carries the flags every subcommand accepts, assembled the way
// cmd/cie/main.go gathers --mcp/--config ahead of subcommand dispatch.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Quiet   bool
	Debug   bool
}

func main() {
	var (
		jsonOutput = flag.Bool("json", false, "Output machine-readable JSON instead of text")
		noColor    = flag.Bool("no-color", false, "Disable colored output")
		quiet      = flag.Bool("q", false, "Suppress progress output")
		debug      = flag.Bool("debug", false, "Enable debug logging")
		configPath = flag.String("config", "", "Path to .codeimpact/project.yaml (default: discovered by walking up from cwd)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `codeimpact - Test Impact & Coverage Analyzer

Usage:
  codeimpact <command> [options] <solution.sln> [diff-file]

Commands:
  index     Build the call graph for a solution and print a ranked summary
  impact    Print tests impacted by a diff
  coverage  Print a coverage report for a diff
  graph     Print the call-graph summary via the on-disk cache (rebuilt each run)
  watch     Poll a git working tree and re-run impact+coverage on every change

Global Options:
  --json       Output JSON instead of text
  --no-color   Disable colored output
  -q           Suppress progress output
  --debug      Enable debug logging
  --config     Path to .codeimpact/project.yaml

Examples:
  codeimpact index MySolution.sln
  codeimpact impact MySolution.sln change.diff
  codeimpact --json coverage MySolution.sln change.diff
  codeimpact watch MySolution.sln --interval 5s
`)
	}

	flag.Parse()
	globals := GlobalFlags{JSON: *jsonOutput, NoColor: *noColor, Quiet: *quiet, Debug: *debug}
	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	var err error
	switch command {
	case "index":
		err = runIndex(cmdArgs, globals, *configPath)
	case "impact":
		err = runImpact(cmdArgs, globals, *configPath)
	case "coverage":
		err = runCoverage(cmdArgs, globals, *configPath)
	case "graph":
		err = runGraph(cmdArgs, globals, *configPath)
	case "watch":
		err = runWatch(cmdArgs, globals, *configPath)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
}
