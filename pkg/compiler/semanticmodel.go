// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

// SemanticModel is the contract both compiler flavors satisfy (spec §4.3).
// It is deliberately smaller than a real compiler's semantic-model API: it
// exposes exactly what pkg/resolver's four-step algorithm needs.
type SemanticModel struct {
	owner *typeCatalog
}

// LookupInScope implements resolution steps 1-2: ask for the symbol bound
// to (enclosingType, name, argCount) the way a compiler would resolve an
// unqualified or same-type call, falling back to the first same-named
// candidate when arity does not disambiguate.
func (sm *SemanticModel) LookupInScope(enclosingType, name string, argCount int) (*Symbol, bool) {
	ts := sm.owner.typeByName(enclosingType)
	if ts == nil {
		return nil, false
	}
	return selectMember(sm.collectWithBases(ts), name, argCount)
}

// ResolveType implements resolution step 3a: find the declared type behind
// an expression, here approximated by treating the expression text as
// either a direct type/variable-of-that-type name or a simple-name lookup
// in the catalog (declared-type bias; spec allows falling back to the
// converted type, which for this analyzer is the same approximation).
func (sm *SemanticModel) ResolveType(name string) (*TypeSymbol, bool) {
	ts := sm.owner.typeByName(name)
	if ts == nil {
		return nil, false
	}
	return ts, true
}

// ResolveMembers implements resolution step 3b: enumerate members of
// typeName called memberName, including inherited members from BaseTypes
// known to the catalog. A base-type member is left out when a member of a
// more derived type with the same name and parameter count was already
// found, since that override or implementation hides it.
func (sm *SemanticModel) ResolveMembers(typeName, memberName string) []*Symbol {
	ts := sm.owner.typeByName(typeName)
	if ts == nil {
		return nil
	}
	var out []*Symbol
	for _, m := range sm.collectWithBases(ts) {
		if m.Name != memberName {
			continue
		}
		hidden := false
		for _, o := range out {
			if o.ContainingType != m.ContainingType && len(o.Parameters) == len(m.Parameters) {
				hidden = true
				break
			}
		}
		if !hidden {
			out = append(out, m)
		}
	}
	return out
}

// AllTypes returns every type known to the underlying catalog, used by
// pkg/callgraph to enumerate declarations for the whole-graph build.
func (sm *SemanticModel) AllTypes() []*TypeSymbol {
	return sm.owner.allTypes()
}

// ClearCache drops all cached per-file scan results; a subsequent query
// recomputes from source. Reparsing syntax trees (the raw scan) is always
// permitted to proceed independently, per spec §4.3.
func (sm *SemanticModel) ClearCache() {
	sm.owner.clear()
}

func (sm *SemanticModel) collectWithBases(ts *TypeSymbol) []*Symbol {
	seen := make(map[*TypeSymbol]bool)
	var members []*Symbol
	var walk func(t *TypeSymbol)
	walk = func(t *TypeSymbol) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		members = append(members, t.Members...)
		for _, base := range t.BaseTypes {
			if bt := sm.owner.typeByName(base); bt != nil {
				walk(bt)
			}
		}
	}
	walk(ts)
	return members
}

// selectMember chooses among same-named candidates using spec §4.4 step
// 3c's priority: exact parameter-count match, then match permitting
// optional/variadic parameters (approximated as "fewer required params
// than supplied"), then the first candidate.
func selectMember(candidates []*Symbol, name string, argCount int) (*Symbol, bool) {
	var named []*Symbol
	for _, c := range candidates {
		if c.Name == name {
			named = append(named, c)
		}
	}
	if len(named) == 0 {
		return nil, false
	}
	for _, c := range named {
		if len(c.Parameters) == argCount {
			return c, true
		}
	}
	for _, c := range named {
		if len(c.Parameters) <= argCount {
			return c, true
		}
	}
	return named[0], true
}
