// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseProject_TargetFrameworkSingle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"net8.0"}, info.TargetFrameworks)
}

func TestParseProject_TargetFrameworksFallsBackToFirst(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.csproj", `<Project>
  <PropertyGroup>
    <TargetFrameworks>net8.0;net472</TargetFrameworks>
  </PropertyGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"net8.0"}, info.TargetFrameworks)
}

func TestParseProject_DefaultTargetFramework(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.csproj", `<Project></Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultTargetFramework}, info.TargetFrameworks)
}

func TestParseProject_ExplicitCompileItemsOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.cs", "class A {}")
	writeFile(t, dir, "B.cs", "class B {}")
	path := writeFile(t, dir, "Foo.csproj", `<Project>
  <ItemGroup>
    <Compile Include="A.cs" />
  </ItemGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	require.Len(t, info.SourceFiles, 1)
	assert.Contains(t, info.SourceFiles[0], "A.cs")
}

func TestParseProject_GlobsWhenNoCompileItems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.cs", "class A {}")
	writeFile(t, dir, "sub/B.cs", "class B {}")
	writeFile(t, dir, "bin/Skip.cs", "class Skip {}")
	writeFile(t, dir, "obj/Skip2.cs", "class Skip2 {}")
	path := writeFile(t, dir, "Foo.csproj", `<Project></Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.Len(t, info.SourceFiles, 2)
}

func TestParseProject_IsTestProjectByPackageReference(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="xunit" Version="2.4.1" />
  </ItemGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.True(t, info.IsTestProject)
}

func TestParseProject_IsTestProjectByProperty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.csproj", `<Project>
  <PropertyGroup>
    <IsTestProject>true</IsTestProject>
  </PropertyGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.True(t, info.IsTestProject)
}

func TestParseProject_IsTestProjectByNameSuffix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Foo.Tests.csproj", `<Project></Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	assert.True(t, info.IsTestProject)
}

func TestParseProject_NotFound(t *testing.T) {
	_, err := ParseProject("/nonexistent/Foo.csproj")
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestParseProject_ProjectReferencesResolvedRelativeToManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app/App.csproj", `<Project>
  <ItemGroup>
    <ProjectReference Include="../lib/Lib.csproj" />
  </ItemGroup>
</Project>`)

	info, err := ParseProject(path)
	require.NoError(t, err)
	require.Len(t, info.ProjectReferences, 1)
	assert.Equal(t, filepath.Join(dir, "lib", "Lib.csproj"), info.ProjectReferences[0])
}
