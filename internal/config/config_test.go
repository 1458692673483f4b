// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "stepwise", cfg.Confidence)
}

func TestLoad_ParsesYAMLAndResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".codeimpact")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	path := filepath.Join(cfgDir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solution: App.sln
project_filters:
  - "App*"
confidence: linear
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfgDir, "App.sln"), cfg.Solution)
	assert.Equal(t, "linear", cfg.Confidence)
	assert.Equal(t, []string{"App*"}, cfg.ProjectFilters)
	assert.Equal(t, filepath.Join(cfgDir, "cache"), cfg.CacheDir)
}

func TestFind_WalksUpToRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".codeimpact"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".codeimpact", "project.yaml"), []byte("solution: App.sln\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found := Find(nested)
	assert.Equal(t, filepath.Join(root, ".codeimpact", "project.yaml"), found)
}

func TestFind_NoneFound(t *testing.T) {
	assert.Equal(t, "", Find(t.TempDir()))
}

func TestMatchesFilters(t *testing.T) {
	assert.True(t, MatchesFilters("App", nil))
	assert.True(t, MatchesFilters("App.Tests", []string{"App*"}))
	assert.False(t, MatchesFilters("Other", []string{"App*"}))
}
