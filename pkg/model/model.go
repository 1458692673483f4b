// Copyright 2026 The CodeImpact Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package model defines the core data types shared by every analysis
// component: method identity, call edges, diff-derived changes, and the
// coverage/impact results produced from them.
//
// Nothing in this package performs analysis; it only carries values between
// pkg/project, pkg/symbolindex, pkg/callgraph, pkg/diffparser, pkg/impact,
// and pkg/coverage so those packages can stay decoupled from each other.
package model

import (
	"fmt"
	"strings"
)

// MethodID is the canonical, stable identity of a method:
//
//	Namespace.Type.MethodName(ParamType1,ParamType2,...)
//
// Generic parameters appear as their declared arity placeholders (e.g. "T").
// Equality is ordinal (plain string comparison) — MethodID is never
// normalized for case or whitespace after construction.
type MethodID string

// BuildMethodID assembles the canonical MethodID form from its parts.
// containingType should already include the namespace (e.g. "Foo.Bar").
func BuildMethodID(containingType, methodName string, paramTypes []string) MethodID {
	return MethodID(fmt.Sprintf("%s.%s(%s)", containingType, methodName, strings.Join(paramTypes, ",")))
}

// SimpleName extracts the bare method name from a MethodID, stripping the
// containing type and parameter list. Returns the input unchanged if it
// does not look like a canonical MethodID.
func (m MethodID) SimpleName() string {
	s := string(m)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ContainingType extracts the fully-qualified containing type from a
// MethodID, i.e. everything before the last "." preceding the method name.
func (m MethodID) ContainingType() string {
	s := string(m)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

// MethodInfo is the immutable record created when a method declaration is
// first encountered during call-graph construction.
type MethodInfo struct {
	ID             MethodID
	SimpleName     string
	ContainingType string
	FilePath       string
	LineNumber     int
	IsTestMethod   bool
}

// MethodCallKind classifies how a call edge was produced. It is a tagged
// variant, not an interface hierarchy, per the collapse-polymorphism
// redesign direction: a handful of `match`-style cases cover every call
// shape the resolver can observe.
type MethodCallKind string

const (
	CallKindDirect       MethodCallKind = "direct"
	CallKindPropertyGet  MethodCallKind = "property-get"
	CallKindPropertySet  MethodCallKind = "property-set"
	CallKindConstructor  MethodCallKind = "constructor"
	CallKindExtension    MethodCallKind = "extension"
	CallKindInterface    MethodCallKind = "interface"
	CallKindVirtual      MethodCallKind = "virtual"
	CallKindStatic       MethodCallKind = "static"
	CallKindDelegate     MethodCallKind = "delegate"
	CallKindOperator     MethodCallKind = "operator"
)

// MethodCallEdge is a single caller->callee relationship discovered during
// call-graph construction. Edges are deduplicated per (caller, callee) pair
// once they land in a Graph; Kind and LineNumber are carried through
// construction but are not part of edge identity.
type MethodCallEdge struct {
	Caller     MethodID
	Callee     MethodID
	Kind       MethodCallKind
	LineNumber int
}

// ChangeType classifies how a file was affected by a diff.
type ChangeType string

const (
	ChangeAdded         ChangeType = "Added"
	ChangeModified      ChangeType = "Modified"
	ChangeDeleted       ChangeType = "Deleted"
	ChangeConfiguration ChangeType = "Configuration"
)

// CodeChange records one file's worth of diff-derived change information.
type CodeChange struct {
	FilePath       string
	ChangeType     ChangeType
	ChangedMethods []string
	ChangedTypes   []string
}

// CodeChangeSet is an unordered collection of CodeChange records extracted
// from a single diff.
type CodeChangeSet struct {
	Changes []CodeChange

	// Warnings carries non-fatal diagnostics from parsing, such as an
	// oversized diff input (internal/contract's soft-limit check). Unlike
	// the changes, warnings are advisory and never change analysis results.
	Warnings []string
}

// ChangedMethods returns the deduplicated union of every changed method's
// simple name across all changes in the set.
func (s CodeChangeSet) ChangedMethods() []string {
	return dedupStrings(collect(s.Changes, func(c CodeChange) []string { return c.ChangedMethods }))
}

// ChangedTypes returns the deduplicated union of every changed type's simple
// name across all changes in the set.
func (s CodeChangeSet) ChangedTypes() []string {
	return dedupStrings(collect(s.Changes, func(c CodeChange) []string { return c.ChangedTypes }))
}

// ChangedFiles returns the deduplicated list of file paths touched by the
// change set.
func (s CodeChangeSet) ChangedFiles() []string {
	seen := make(map[string]bool, len(s.Changes))
	var out []string
	for _, c := range s.Changes {
		if !seen[c.FilePath] {
			seen[c.FilePath] = true
			out = append(out, c.FilePath)
		}
	}
	return out
}

func collect(changes []CodeChange, get func(CodeChange) []string) []string {
	var out []string
	for _, c := range changes {
		out = append(out, get(c)...)
	}
	return out
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// TestType classifies a test method by the kind of behavior it exercises.
// callgraph.Graph.TestCoverageFor sets TestTypeUnit on every result it
// returns; no analysis in this module assigns the other values.
type TestType string

const (
	TestTypeUnit        TestType = "Unit"
	TestTypeIntegration TestType = "Integration"
	TestTypeDatabase    TestType = "Database"
	TestTypeAPI         TestType = "API"
	TestTypeUI          TestType = "UI"
)

// TestCoverageInfo describes one test method's relationship to a changed
// production method: how confident we are that the test exercises it, how
// deep the call path runs, and the path itself for explainability.
type TestCoverageInfo struct {
	TestMethodID  MethodID
	TestClass     string
	TestNamespace string
	AssemblyName  string
	Confidence    float64
	CallDepth     int
	CallPath      []MethodID
	TestType      TestType
}

// ConfidenceBreakdown buckets a set of TestCoverageInfo values by confidence
// band: High >= 0.8, Medium in [0.5, 0.8), Low < 0.5.
type ConfidenceBreakdown struct {
	High   int
	Medium int
	Low    int
	Mean   float64
}

// RecommendationType tags the three recommendation kinds the coverage
// analyzer can emit.
type RecommendationType string

const (
	RecommendationMissingTests     RecommendationType = "MissingTests"
	RecommendationLowConfidence    RecommendationType = "LowConfidence"
	RecommendationIndirectCoverage RecommendationType = "IndirectCoverage"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is one actionable coverage-gap observation.
type Recommendation struct {
	Type          RecommendationType
	Description   string
	AffectedItems []string
	Priority      Priority
}

// CoverageResult is the value object returned by pkg/coverage. Invariant:
// CoveredChangedMethods + UncoveredChangedMethods == TotalChangedMethods,
// and CoveragePercentage is 100 when TotalChangedMethods is 0.
type CoverageResult struct {
	CoveragePercentage       float64
	TotalChangedMethods      int
	CoveredChangedMethods    int
	UncoveredChangedMethods  int
	UncoveredMethods         []string
	UncoveredFiles           []string
	ConfidenceBreakdown      ConfidenceBreakdown
	CoverageByTestType       map[TestType]int
	Recommendations          []Recommendation
	MethodCoverage           map[string][]TestCoverageInfo
}

// ProjectInfo describes a single project manifest after parsing.
type ProjectInfo struct {
	Name              string
	Path              string
	Directory         string
	TargetFrameworks  []string
	ProjectReferences []string
	SourceFiles       []string
	IsTestProject     bool
}

// SolutionInfo describes a parsed solution manifest and the projects it
// references.
type SolutionInfo struct {
	Path     string
	Projects []*ProjectInfo
}
