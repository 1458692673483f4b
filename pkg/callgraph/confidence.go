// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

// Ladder computes a confidence score in [0,1] from a call-path hop count
// (1 = the test calls the changed method directly). Two ladders exist in
// spec §9's source material; both are implemented here and selectable, with
// Stepwise as the documented default (see DESIGN.md).
type Ladder func(hops int) float64

// Stepwise is spec §4.5.3's default ladder: depth 1 -> 1.0, depths 2-3 ->
// 0.8, depths 4-6 -> 0.6, deeper -> 0.4.
func Stepwise(hops int) float64 {
	switch {
	case hops <= 1:
		return 1.0
	case hops <= 3:
		return 0.8
	case hops <= 6:
		return 0.6
	default:
		return 0.4
	}
}

// Linear is the alternate ladder mentioned in spec §9:
// max(0.1, 1 - 0.15*hops).
func Linear(hops int) float64 {
	v := 1.0 - 0.15*float64(hops)
	if v < 0.1 {
		return 0.1
	}
	return v
}
