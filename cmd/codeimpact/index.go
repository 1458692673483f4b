// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kelvinreed/codeimpact/internal/errors"
	"github.com/kelvinreed/codeimpact/pkg/report"
)

// runIndex executes `codeimpact index <solution.sln>`: builds the whole call
// graph and prints a ranked summary, mirroring cmd/cie/index.go's shape
// (flagset, optional Prometheus endpoint, signal-cancellable context).
//
// Flags:
//   - --top: how many entries each ranked list in the summary carries (default report.DefaultTopN)
//   - --metrics-addr: HTTP listen address for Prometheus metrics (empty disables it)
func runIndex(args []string, globals GlobalFlags, configPath string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	top := fs.Int("top", report.DefaultTopN, "Number of entries per ranked list")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError("Missing solution path", "codeimpact index requires exactly one .sln argument", "Run: codeimpact index <solution.sln>")
	}
	solutionPath := fs.Arg(0)

	logger := newLogger(globals)
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifyCancelOnSignal(cancel, logger)

	graph, fileCount, err := buildGraph(ctx, solutionPath, cfg, globals, logger)
	if err != nil {
		return err
	}
	logger.Info("index.complete", "files", fileCount)

	r := report.BuildCallGraphReport(graph, *top)
	return writeReport(globals, r)
}

// serveMetrics starts the Prometheus scrape endpoint, mirroring
// cmd/cie/index.go's background metrics server goroutine.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
	}
}

// notifyCancelOnSignal cancels on SIGINT/SIGTERM, mirroring
// cmd/cie/index.go's graceful-shutdown wiring.
func notifyCancelOnSignal(cancel context.CancelFunc, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown.signal", "signal", sig.String())
		cancel()
	}()
}
