// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package symbolindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

const sampleSource = `using System;

namespace Acme.Widgets
{
    public class WidgetService
    {
        public int Compute(int a, int b)
        {
            return a + b;
        }

        private void Log(string message) { }
    }

    public interface IWidgetRepository
    {
        WidgetService Find(int id);
    }
}
`

func writeTempSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndex_BuildAndQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSource(t, dir, "Widget.cs", sampleSource)

	proj := &model.ProjectInfo{Name: "Acme.Widgets", Path: filepath.Join(dir, "Acme.Widgets.csproj")}

	idx := New(nil)
	require.NoError(t, idx.Build(context.Background(), BuildInput{Files: map[string]*model.ProjectInfo{path: proj}}))
	assert.True(t, idx.IsBuilt())

	files := idx.FindFilesContainingType("WidgetService")
	assert.Equal(t, []string{path}, files)

	files = idx.FindFilesContainingMethod("Acme.Widgets.WidgetService.Compute(2 params)")
	assert.Equal(t, []string{path}, files)

	// Fuzzy fallback on simple name when the exact approximate id misses.
	files = idx.FindFilesContainingMethod("Other.Namespace.Thing.Compute(9 params)")
	assert.Equal(t, []string{path}, files)

	assert.Equal(t, proj, idx.ProjectFor(path))
}

func TestIndex_QueryBeforeBuildReturnsEmpty(t *testing.T) {
	idx := New(nil)
	assert.Empty(t, idx.FindFilesContainingMethod("Acme.Widgets.WidgetService.Compute(2 params)"))
	assert.Empty(t, idx.FindFilesContainingType("WidgetService"))
	assert.False(t, idx.IsBuilt())
}

func TestIndex_Refresh(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSource(t, dir, "Widget.cs", sampleSource)
	proj := &model.ProjectInfo{Name: "Acme.Widgets"}

	idx := New(nil)
	require.NoError(t, idx.Build(context.Background(), BuildInput{Files: map[string]*model.ProjectInfo{path: proj}}))
	require.NotEmpty(t, idx.FindFilesContainingType("WidgetService"))

	require.NoError(t, os.WriteFile(path, []byte("namespace Acme.Widgets { public class Renamed { } }"), 0o644))
	idx.Refresh(path, proj)

	assert.Empty(t, idx.FindFilesContainingType("WidgetService"))
	assert.Equal(t, []string{path}, idx.FindFilesContainingType("Renamed"))
}

func TestIndex_ScopedBuildFallsBackToFullBuild(t *testing.T) {
	dir := t.TempDir()
	path := writeTempSource(t, dir, "Widget.cs", sampleSource)
	proj := &model.ProjectInfo{Name: "Acme.Widgets"}
	all := map[string]*model.ProjectInfo{path: proj}

	idx := New(nil)
	require.NoError(t, idx.ScopedBuild(context.Background(), nil, nil, all))
	assert.Equal(t, []string{path}, idx.FindFilesContainingType("WidgetService"))
}

func TestIndex_ScopedBuildLimitsToChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path1 := writeTempSource(t, dir, "Widget.cs", sampleSource)
	path2 := writeTempSource(t, dir, "Other.cs", "namespace Acme.Widgets { public class Unrelated { } }")
	proj := &model.ProjectInfo{Name: "Acme.Widgets"}
	all := map[string]*model.ProjectInfo{path1: proj, path2: proj}

	idx := New(nil)
	require.NoError(t, idx.ScopedBuild(context.Background(), []string{path1}, nil, all))

	assert.Equal(t, []string{path1}, idx.FindFilesContainingType("WidgetService"))
	assert.Empty(t, idx.FindFilesContainingType("Unrelated"))
}
