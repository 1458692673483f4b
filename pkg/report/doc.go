// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package report assembles CallGraphReport, the ranked-summary view spec §6
// names but no other component builds, plus the two serializations (JSON and
// human-readable text) spec §6 requires for the impact/coverage results
// pkg/impact and pkg/coverage already compute.
package report
