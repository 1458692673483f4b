// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads .codeimpact/project.yaml, the ambient-only
// configuration layer spec.md §1 excludes from the core: solution path,
// project-filter globs, cache directory, and confidence ladder selection.
// Core packages (pkg/project, pkg/callgraph, pkg/impact, ...) never import
// this package; they take plain Go structs, and cmd/codeimpact is the only
// consumer that translates a loaded Config into those structs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file name looked for under the
// working directory (or an explicit --config path).
const DefaultFileName = ".codeimpact/project.yaml"

// Config is the on-disk shape of .codeimpact/project.yaml.
type Config struct {
	// Solution is the path to the .sln file, relative to the config file's
	// directory unless absolute.
	Solution string `yaml:"solution"`

	// ProjectFilters are glob patterns (matched against project name)
	// restricting which projects are loaded; empty means "all projects".
	ProjectFilters []string `yaml:"project_filters"`

	// CacheDir is where pkg/cache.DiskCache persists entries. Defaults to
	// ".codeimpact/cache" next to the config file.
	CacheDir string `yaml:"cache_dir"`

	// Confidence selects the confidence ladder: "stepwise" (default) or
	// "linear", per spec §9's open question.
	Confidence string `yaml:"confidence"`
}

// DefaultConfig returns a Config with every field at its documented default,
// for callers that have no project.yaml on disk.
func DefaultConfig() Config {
	return Config{
		Confidence: "stepwise",
		CacheDir:   filepath.Join(".codeimpact", "cache"),
	}
}

// Load reads and parses the YAML config at path. A missing file is not an
// error: DefaultConfig() is returned instead, since .codeimpact/project.yaml
// is optional (spec §1 excludes configuration from the core's required
// inputs).
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.CacheDir = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Confidence == "" {
		cfg.Confidence = "stepwise"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "cache"
	}

	dir := filepath.Dir(path)
	if cfg.Solution != "" && !filepath.IsAbs(cfg.Solution) {
		cfg.Solution = filepath.Join(dir, cfg.Solution)
	}
	if !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(dir, cfg.CacheDir)
	}

	return cfg, nil
}

// Find locates a config file starting at dir and walking up to the
// filesystem root, mirroring how `.git` discovery works — the first
// .codeimpact/project.yaml found wins. Returns "" if none is found.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// MatchesFilters reports whether projectName passes the project filter
// globs. An empty filter list matches everything.
func MatchesFilters(projectName string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, pattern := range filters {
		if ok, err := filepath.Match(pattern, projectName); err == nil && ok {
			return true
		}
	}
	return false
}
