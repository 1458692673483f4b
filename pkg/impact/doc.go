// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package impact implements spec §4.7's Impact Engine: given a
// model.CodeChangeSet and a built call graph, it computes the transitive
// reverse closure of the changed methods and selects the test methods
// within that closure, each annotated with a confidence score and a
// human-readable reason.
//
// This package never builds the call graph itself — it is handed one by
// the caller. ShouldScopeBuild reports whether a change set is small enough
// for a scoped build, but cmd/codeimpact does not call it: it always builds
// the whole-solution graph with callgraph.BuildWhole, and no builder in this
// module restricts a graph to the changed files plus one reference layer.
package impact
