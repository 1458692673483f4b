// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/project"
)

func TestSolutionFixture_BuildProducesParsableSolution(t *testing.T) {
	fx := NewSolutionFixture(t, "App")
	fx.AddProject("App", nil, false)
	fx.AddSource("App", "Widgets.cs", "namespace Acme { public class Widget {} }")
	fx.AddProject("App.Tests", []string{"App"}, true)
	fx.AddSource("App.Tests", "WidgetTests.cs", "namespace Acme.Tests { public class WidgetTests {} }")

	solPath := fx.Build()
	sol, err := project.ParseSolution(solPath, nil)
	require.NoError(t, err)
	require.Len(t, sol.Projects, 2)

	isTest := map[string]bool{}
	for _, p := range sol.Projects {
		isTest[p.Name] = p.IsTestProject
	}
	assert.False(t, isTest["App"])
	assert.True(t, isTest["App.Tests"])
}

func TestUnifiedDiff_ProducesParsableHunk(t *testing.T) {
	diff := UnifiedDiff("App/Widgets.cs", "public void NewMethod() {}")
	assert.True(t, strings.Contains(diff, "+++ b/App/Widgets.cs"))
	assert.True(t, strings.Contains(diff, "+public void NewMethod() {}"))
}
