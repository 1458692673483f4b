// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SolutionFixture builds a multi-project C# solution tree on disk for
// integration-style tests that exercise project parsing, compilation,
// call-graph construction, impact analysis, and coverage together.
type SolutionFixture struct {
	t        *testing.T
	dir      string
	name     string
	projects []fixtureProject
}

type fixtureProject struct {
	name       string
	references []string
	isTest     bool
}

// NewSolutionFixture creates an empty fixture rooted at a fresh t.TempDir().
// name defaults to "App" if empty.
func NewSolutionFixture(t *testing.T, name string) *SolutionFixture {
	t.Helper()
	if name == "" {
		name = "App"
	}
	return &SolutionFixture{t: t, dir: t.TempDir(), name: name}
}

// AddProject registers a project named projName referencing the given other
// project names (by name, resolved to relative .csproj paths at Build time).
// isTest marks the project's .csproj with an xunit PackageReference so
// project.ParseProject classifies it as a test project.
func (f *SolutionFixture) AddProject(projName string, references []string, isTest bool) *SolutionFixture {
	f.t.Helper()
	f.projects = append(f.projects, fixtureProject{name: projName, references: references, isTest: isTest})
	return f
}

// AddSource writes a source file under the given project's directory,
// relative to the project root (e.g. "Widgets/Greeter.cs").
func (f *SolutionFixture) AddSource(projName, relPath, content string) string {
	f.t.Helper()
	return WriteFile(f.t, filepath.Join(f.dir, projName), relPath, content)
}

// Build writes every registered project's .csproj manifest and the top-level
// .sln file, returning the .sln's absolute path.
func (f *SolutionFixture) Build() string {
	f.t.Helper()

	byName := make(map[string]fixtureProject, len(f.projects))
	for _, p := range f.projects {
		byName[p.name] = p
	}

	var sb strings.Builder
	sb.WriteString("Microsoft Visual Studio Solution File, Format Version 12.00\n")
	for i, p := range f.projects {
		guid := fmt.Sprintf("{%08d-0000-0000-0000-000000000000}", i+1)
		csprojRel := filepath.Join(p.name, p.name+".csproj")
		WriteFile(f.t, f.dir, csprojRel, renderCsproj(byName, p))
		sb.WriteString(fmt.Sprintf(
			"Project(\"{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}\") = %q, %q, %q\nEndProject\n",
			p.name, csprojRel, guid))
	}

	return WriteFile(f.t, f.dir, f.name+".sln", sb.String())
}

// Dir returns the fixture's root directory.
func (f *SolutionFixture) Dir() string {
	return f.dir
}

func renderCsproj(byName map[string]fixtureProject, p fixtureProject) string {
	var refs strings.Builder
	for _, r := range p.references {
		other, ok := byName[r]
		if !ok {
			continue
		}
		rel := filepath.Join("..", other.name, other.name+".csproj")
		refs.WriteString(fmt.Sprintf("    <ProjectReference Include=%q />\n", rel))
	}

	var pkgs strings.Builder
	if p.isTest {
		pkgs.WriteString("    <PackageReference Include=\"xunit\" Version=\"2.4.2\" />\n")
		pkgs.WriteString("    <PackageReference Include=\"Microsoft.NET.Test.Sdk\" Version=\"17.0.0\" />\n")
	}

	return fmt.Sprintf(`<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
%s%s  </ItemGroup>
</Project>
`, refs.String(), pkgs.String())
}

// WriteFile writes content to dir/relPath, creating parent directories as
// needed, and returns the absolute path written.
func WriteFile(t *testing.T, dir, relPath, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for fixture file %s: %v", relPath, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture file %s: %v", relPath, err)
	}
	return path
}

// UnifiedDiff renders a minimal single-file unified diff adding the given
// method body text as new lines, for tests exercising diffparser/impact/
// coverage without hand-writing diff syntax.
func UnifiedDiff(path, addedBody string) string {
	lines := strings.Split(strings.TrimRight(addedBody, "\n"), "\n")
	var hunk strings.Builder
	for _, l := range lines {
		hunk.WriteString("+" + l + "\n")
	}
	return fmt.Sprintf(`diff --git a/%[1]s b/%[1]s
index 0000000..1111111 100644
--- a/%[1]s
+++ b/%[1]s
@@ -1,0 +1,%[2]d @@
%[3]s`, path, len(lines), hunk.String())
}
