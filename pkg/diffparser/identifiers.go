// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package diffparser

import (
	"regexp"
	"strings"
)

// csKeywords is the set of C# reserved words IsValidMethodName excludes,
// so that e.g. `if (x)` in a changed line never becomes a spurious
// "changed method named if".
var csKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "foreach": true, "while": true,
	"do": true, "switch": true, "case": true, "default": true, "break": true,
	"continue": true, "return": true, "goto": true, "throw": true, "try": true,
	"catch": true, "finally": true, "using": true, "lock": true, "fixed": true,
	"checked": true, "unchecked": true, "new": true, "typeof": true,
	"sizeof": true, "nameof": true, "is": true, "as": true, "in": true,
	"out": true, "ref": true, "params": true, "var": true, "void": true,
	"class": true, "struct": true, "interface": true, "enum": true,
	"namespace": true, "public": true, "private": true, "protected": true,
	"internal": true, "static": true, "readonly": true, "const": true,
	"abstract": true, "virtual": true, "override": true, "sealed": true,
	"partial": true, "async": true, "await": true, "true": true, "false": true,
	"null": true, "this": true, "base": true, "get": true, "set": true,
	"value": true, "where": true, "select": true, "from": true, "when": true,
}

var identStartRe = regexp.MustCompile(`^[A-Za-z]`)
var identCharsRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
var allDigitsRe = regexp.MustCompile(`^[0-9]+$`)

// IsValidMethodName implements spec §4.6's exclusion rules: language
// keywords, all-digit tokens, identifiers shorter than two characters,
// identifiers not starting with a letter, and identifiers containing
// non-identifier characters.
//
// It also preserves, unexplained, the source's `Variable_`-prefix and
// `Regex`-substring guard (spec §9 Open Question: "this appears to be a
// heuristic guard with no stated rationale. Preserve the behavior and flag
// for review" — so it stays, rather than being "fixed").
func IsValidMethodName(name string) bool {
	if len(name) < 2 {
		return false
	}
	if allDigitsRe.MatchString(name) {
		return false
	}
	if !identStartRe.MatchString(name) {
		return false
	}
	if !identCharsRe.MatchString(name) {
		return false
	}
	if csKeywords[name] {
		return false
	}
	if strings.HasPrefix(name, "Variable_") {
		return false
	}
	if strings.Contains(name, "Regex") {
		return false
	}
	return true
}

// methodSignatureRe anchors on an access modifier (or other common
// modifier) followed by a return type and a name immediately before '(' —
// the "signature pattern" spec §4.6 names as the first extraction layer.
var methodSignatureRe = regexp.MustCompile(
	`(?m)\b(?:public|private|protected|internal|static|virtual|override|abstract|async)\b[\w<>\[\]\.,\? ]*?\s([A-Za-z_]\w*)\s*\(`)

// bareCallOrDeclRe is the simpler "Identifier(" pattern spec §4.6 names as
// the second layer, catching method-call edits and declarations without
// leading modifiers (e.g. lines added mid-body, or interface members).
var bareCallOrDeclRe = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)

// typeDeclRe matches a type declaration's simple name, used to extract
// changed type names per spec §4.6's "access-modifier+kind regex".
var typeDeclRe = regexp.MustCompile(
	`(?m)\b(?:public|private|protected|internal)?\s*(?:static\s+|sealed\s+|abstract\s+|partial\s+)*(?:class|interface|struct|enum|record)\s+([A-Za-z_]\w*)`)

// extractMethodNames runs both layered patterns over the accumulated
// changed-line text for one file and returns the deduplicated,
// exclusion-filtered set of candidate method simple names.
func extractMethodNames(text string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !IsValidMethodName(name) || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, m := range methodSignatureRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bareCallOrDeclRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return out
}

// extractTypeNames returns the deduplicated set of type simple names
// declared in the accumulated changed-line text for one file.
func extractTypeNames(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range typeDeclRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
