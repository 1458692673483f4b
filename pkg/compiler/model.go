// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/model"
	"github.com/kelvinreed/codeimpact/pkg/sigparse"
)

// MemberKind distinguishes the synthesized accessor/operator members the
// scanner produces from ordinary methods, mirroring spec §4.4's rule that
// property accessors and operators become their own call-edge targets.
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberConstructor
	MemberPropertyGetter
	MemberPropertySetter
	MemberOperator
)

func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberPropertyGetter:
		return "property-getter"
	case MemberPropertySetter:
		return "property-setter"
	case MemberOperator:
		return "operator"
	default:
		return "method"
	}
}

// Symbol is a declared member of a type: enough information to format a
// MethodId and to drive the resolution heuristics in pkg/resolver.
type Symbol struct {
	Name              string
	ContainingType    string
	Namespace         string
	Kind              MemberKind
	Parameters        []sigparse.Param
	IsPublic          bool
	IsStatic          bool
	IsVirtual         bool
	IsAbstract        bool
	IsOverride        bool
	IsExtension       bool
	IsInterfaceMember bool
	File              string
	Line              int

	// Attributes holds the raw bracketed attribute text immediately
	// preceding a method declaration (e.g. "[Fact]", "[Theory]"), used by
	// pkg/callgraph's test-method detection. Empty when none were present.
	Attributes string

	// Body is the member's raw source text between its braces, used by
	// pkg/callgraph's call-site walk. Empty for members with no body
	// (interface declarations, abstract methods, auto-properties).
	Body string
}

// QualifiedContainingType returns Namespace.ContainingType, or just
// ContainingType when Namespace is empty.
func (s *Symbol) QualifiedContainingType() string {
	if s.Namespace == "" {
		return s.ContainingType
	}
	return s.Namespace + "." + s.ContainingType
}

// MethodID formats the symbol using the fully-qualified name format from
// spec §4.4: ContainingType.DisplayString + "." + MethodName + "(" +
// join(",", ParameterTypes.DisplayString) + ")".
func (s *Symbol) MethodID() model.MethodID {
	return model.BuildMethodID(s.QualifiedContainingType(), s.Name, sigparse.ParamTypes(paramListText(s.Parameters)))
}

func paramListText(params []sigparse.Param) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// TypeSymbol is a declared type and its member table.
type TypeSymbol struct {
	Name       string
	Namespace  string
	Kind       string // class, interface, struct, enum
	BaseTypes  []string
	Members    []*Symbol
	File       string
	Line       int
}

// QualifiedName returns Namespace.Name, or just Name when Namespace is empty.
func (t *TypeSymbol) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// MembersNamed returns every member of t whose name matches.
func (t *TypeSymbol) MembersNamed(name string) []*Symbol {
	var out []*Symbol
	for _, m := range t.Members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}
