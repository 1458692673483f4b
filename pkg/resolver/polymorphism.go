// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"github.com/kelvinreed/codeimpact/pkg/compiler"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// BackEdge is an implementation/override member that should reverse-reach
// the interface or base member it satisfies, so that a call to
// Interface.M transitively reaches every C.M during reverse traversal
// (spec §4.4 "polymorphic expansion").
type BackEdge struct {
	Declaring      model.MethodID
	Implementation model.MethodID
}

// PolymorphicBackEdges finds, for a symbol with kind interface, abstract,
// virtual, or override, the same-named, same-arity members of every known
// type that lists the symbol's containing type directly in its base-type
// list, and returns the back-edges pkg/callgraph should add as additional
// reverse-graph entries. Types further down the hierarchy are not visited
// here; they are reached through the back-edges of their own
// virtual/override members.
func PolymorphicBackEdges(sym *compiler.Symbol, sm *compiler.SemanticModel) []BackEdge {
	if !sym.IsInterfaceMember && !sym.IsVirtual && !sym.IsAbstract && !sym.IsOverride {
		return nil
	}

	declaringID := sym.MethodID()
	var edges []BackEdge

	for _, ts := range sm.AllTypes() {
		if !implementsOrExtends(ts, sym.ContainingType) {
			continue
		}
		for _, candidate := range ts.MembersNamed(sym.Name) {
			if candidate.ContainingType == sym.ContainingType {
				continue
			}
			if len(candidate.Parameters) != len(sym.Parameters) {
				continue
			}
			if !candidate.IsOverride && !candidate.IsVirtual && ts.Kind != "interface" {
				// Plain re-implementation in a derived class still counts
				// as satisfying the contract even without `override` on
				// interface methods (C# doesn't require the keyword there).
			}
			edges = append(edges, BackEdge{Declaring: declaringID, Implementation: candidate.MethodID()})
		}
	}
	return edges
}

// implementsOrExtends reports whether ts's base-type list names
// containingType, directly.
func implementsOrExtends(ts *compiler.TypeSymbol, containingType string) bool {
	for _, b := range ts.BaseTypes {
		if b == containingType {
			return true
		}
	}
	return false
}
