// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSolution_ParsesProjectEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App/App.csproj", `<Project>
  <PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup>
</Project>`)
	writeFile(t, dir, "App.Tests/App.Tests.csproj", `<Project>
  <ItemGroup><PackageReference Include="xunit" /></ItemGroup>
</Project>`)

	solPath := writeFile(t, dir, "App.sln", `Microsoft Visual Studio Solution File, Format Version 12.00
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App", "App\App.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App.Tests", "App.Tests\App.Tests.csproj", "{22222222-2222-2222-2222-222222222222}"
EndProject
`)

	sol, err := ParseSolution(solPath, nil)
	require.NoError(t, err)
	require.Len(t, sol.Projects, 2)

	names := map[string]bool{}
	for _, p := range sol.Projects {
		names[p.Name] = true
	}
	assert.True(t, names["App"])
	assert.True(t, names["App.Tests"])
}

func TestParseSolution_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App/App.csproj", `<Project></Project>`)
	solPath := writeFile(t, dir, "App.sln", `Project("{bad guid missing quotes}) garbage
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App", "App\App.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
`)

	sol, err := ParseSolution(solPath, nil)
	require.NoError(t, err)
	require.Len(t, sol.Projects, 1)
	assert.Equal(t, "App", sol.Projects[0].Name)
}

func TestParseSolution_NotFound(t *testing.T) {
	_, err := ParseSolution("/nonexistent/App.sln", nil)
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
