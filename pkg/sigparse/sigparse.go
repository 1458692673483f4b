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

// Package sigparse parses C#-style method signatures and parameter lists
// with plain string scanning, tolerating generic type arguments and nested
// parentheses without a full parser. It is shared by pkg/compiler (to parse
// declared members' parameters for MethodID construction) and
// pkg/symbolindex (to count parameters for the approximate method ID).
package sigparse

import "strings"

// Param holds a single parsed parameter's name and declared type.
type Param struct {
	Name string
	Type string
}

// ParseParamList splits a parenthesized parameter list, e.g.
// "(int x, string y, Dictionary<string,int> z)", into individual Params.
// Commas nested inside angle brackets or parentheses (generic arguments,
// tuple types) do not split a parameter.
func ParseParamList(signature string) []Param {
	inner := extractParens(signature)
	if inner == "" {
		return nil
	}

	parts := splitTopLevel(inner, ',')
	var params []Param
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		params = append(params, parseOneParam(p))
	}
	return params
}

// ParamTypes is a convenience wrapper returning just the declared types, in
// order, suitable for building a canonical MethodID parameter list.
func ParamTypes(signature string) []string {
	params := ParseParamList(signature)
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// extractParens returns the text between the first top-level '(' and its
// matching ')'. Returns "" if no balanced parens are found.
func extractParens(s string) string {
	start := strings.IndexByte(s, '(')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start+1 : i]
			}
		}
	}
	return ""
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside
// (), <>, [], or {} pairs.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<', '[', '{':
			depth++
		case ')', '>', ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// parseOneParam splits a single "Type name" (optionally with modifiers like
// "ref"/"out"/"params" or a default value) into a Param. When only a type
// (no name) is present — as in an interface/delegate signature — Name is
// left empty.
func parseOneParam(p string) Param {
	// Strip default value.
	if i := strings.IndexByte(p, '='); i >= 0 {
		p = strings.TrimSpace(p[:i])
	}
	fields := splitTopLevel(p, ' ')
	var tokens []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	tokens = dropModifiers(tokens)
	switch len(tokens) {
	case 0:
		return Param{}
	case 1:
		return Param{Type: tokens[0]}
	default:
		return Param{
			Type: strings.Join(tokens[:len(tokens)-1], " "),
			Name: tokens[len(tokens)-1],
		}
	}
}

var paramModifiers = map[string]bool{
	"ref": true, "out": true, "in": true, "params": true, "this": true,
}

func dropModifiers(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !paramModifiers[t] {
			out = append(out, t)
		}
	}
	return out
}
