// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"github.com/kelvinreed/codeimpact/pkg/compiler"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// CallSiteForm distinguishes the syntactic shapes pkg/callgraph's body
// scanner can produce for a single call expression.
type CallSiteForm int

const (
	// FormBareCall is an unqualified call: Name(args) or this.Name(args).
	FormBareCall CallSiteForm = iota
	// FormMemberCall is expr.Name(args).
	FormMemberCall
	// FormObjectCreation is `new TypeName(args)` (explicit or, for arrays
	// and collection expressions, implicit).
	FormObjectCreation
	// FormOperator is a unary/binary operator expression resolved against
	// a user-defined operator overload.
	FormOperator
	// FormPropertyAccess is a read (get) or write (set) of a property.
	FormPropertyAccess
)

// CallSite is the syntactic shape pkg/callgraph extracts from a method
// body; ResolveCall turns it into a fully-qualified MethodId.
type CallSite struct {
	Form CallSiteForm

	EnclosingType      string
	EnclosingNamespace string

	// ReceiverTypeHint is the best-effort static type of the receiver
	// expression for FormMemberCall (e.g. a locally declared variable's
	// type, or the expression text itself when it already looks like a
	// type name). Empty means "same type as the call site" (FormBareCall).
	ReceiverTypeHint string

	MethodName string
	ArgCount   int

	// IsPropertyWrite distinguishes a property set from a get when
	// Form == FormPropertyAccess.
	IsPropertyWrite bool

	// OperatorSymbol holds the operator token (e.g. "+", "==") when
	// Form == FormOperator.
	OperatorSymbol string
}

// ResolveCall implements spec §4.4's four-step algorithm against a
// SemanticModel, returning the resolved MethodId and its call-kind
// classification. The second return value is false when the call cannot
// be resolved (step 4: the edge must be dropped).
func ResolveCall(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	switch site.Form {
	case FormObjectCreation:
		return resolveConstructor(site, sm)
	case FormOperator:
		return resolveOperator(site, sm)
	case FormPropertyAccess:
		return resolveProperty(site, sm)
	case FormMemberCall:
		return resolveMemberCall(site, sm)
	default:
		return resolveBareCall(site, sm)
	}
}

// resolveBareCall implements steps 1-2: ask the model for the symbol bound
// in the enclosing type's scope (and its base types), or the first
// candidate with that name.
func resolveBareCall(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	sym, ok := sm.LookupInScope(site.EnclosingType, site.MethodName, site.ArgCount)
	if !ok {
		return "", "", false
	}
	return sym.MethodID(), classify(sym), true
}

// resolveMemberCall implements step 3: resolve the receiver's type, then
// the named member on it.
func resolveMemberCall(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	if site.ReceiverTypeHint == "" {
		return resolveBareCall(site, sm)
	}

	ts, ok := sm.ResolveType(site.ReceiverTypeHint)
	if !ok {
		return "", "", false
	}
	candidates := sm.ResolveMembers(ts.Name, site.MethodName)
	sym, ok := pickByArity(candidates, site.ArgCount)
	if !ok {
		return "", "", false
	}
	return sym.MethodID(), classify(sym), true
}

func resolveConstructor(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	typeName := site.ReceiverTypeHint
	if typeName == "" {
		typeName = site.MethodName
	}
	ts, ok := sm.ResolveType(typeName)
	if !ok {
		return "", "", false
	}
	candidates := sm.ResolveMembers(ts.Name, ts.Name)
	sym, ok := pickByArity(candidates, site.ArgCount)
	if !ok {
		return "", "", false
	}
	return sym.MethodID(), model.CallKindConstructor, true
}

func resolveOperator(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	ts, ok := sm.ResolveType(site.ReceiverTypeHint)
	if !ok {
		return "", "", false
	}
	candidates := sm.ResolveMembers(ts.Name, "operator"+site.OperatorSymbol)
	if len(candidates) == 0 {
		return "", "", false
	}
	return candidates[0].MethodID(), model.CallKindOperator, true
}

func resolveProperty(site CallSite, sm *compiler.SemanticModel) (model.MethodID, model.MethodCallKind, bool) {
	typeName := site.ReceiverTypeHint
	if typeName == "" {
		typeName = site.EnclosingType
	}
	prefix := "get_"
	kind := model.CallKindPropertyGet
	if site.IsPropertyWrite {
		prefix = "set_"
		kind = model.CallKindPropertySet
	}
	ts, ok := sm.ResolveType(typeName)
	if !ok {
		return "", "", false
	}
	candidates := sm.ResolveMembers(ts.Name, prefix+site.MethodName)
	if len(candidates) == 0 {
		return "", "", false
	}
	return candidates[0].MethodID(), kind, true
}

func pickByArity(candidates []*compiler.Symbol, argCount int) (*compiler.Symbol, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	for _, c := range candidates {
		if len(c.Parameters) == argCount {
			return c, true
		}
	}
	for _, c := range candidates {
		if len(c.Parameters) <= argCount {
			return c, true
		}
	}
	return candidates[0], true
}

// classify implements spec §4.4's call-kind classification for a resolved
// symbol: extension, static, virtual (virtual or override), interface
// (containing type is an interface), otherwise direct. Constructors,
// accessors, and operators are classified by their dedicated resolve*
// functions instead, since the symbol alone doesn't carry that context.
func classify(sym *compiler.Symbol) model.MethodCallKind {
	switch {
	case sym.IsExtension:
		return model.CallKindExtension
	case sym.IsInterfaceMember:
		return model.CallKindInterface
	case sym.IsVirtual || sym.IsOverride || sym.IsAbstract:
		return model.CallKindVirtual
	case sym.IsStatic:
		return model.CallKindStatic
	default:
		return model.CallKindDirect
	}
}
