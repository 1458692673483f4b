// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package coverage implements spec §4.8's Coverage Analyzer: given a
// model.CodeChangeSet and a caller-supplied list of model.TestCoverageInfo
// (typically produced by pkg/impact or supplied directly by the caller), it
// computes per-changed-method coverage, a confidence distribution, and
// actionable recommendations.
//
// This package performs no graph traversal of its own — it only matches the
// TestCoverageInfo values it is handed against the changed method names in
// the change set, using the three-tier fuzzy matcher spec §4.8 specifies.
package coverage
