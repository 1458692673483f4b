// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides fixture builders for tests that need a realistic
// multi-project C# solution tree on disk, grounded on the convenience-
// constructor shape the rest of this codebase's test helpers use (a single
// Setup/New call that returns a ready-to-use object, cleaned up automatically
// by t.TempDir()).
//
// # Quick Start
//
//	func TestFullPipeline(t *testing.T) {
//	    fx := testutil.NewSolutionFixture(t, "App")
//	    fx.AddProject("App", nil, false)
//	    fx.AddSource("App", "Widgets.cs", widgetsSource)
//	    fx.AddProject("App.Tests", []string{"App"}, true)
//	    fx.AddSource("App.Tests", "WidgetsTests.cs", testsSource)
//	    solPath := fx.Build()
//
//	    sol, err := project.ParseSolution(solPath, nil)
//	    ...
//	}
package testutil
