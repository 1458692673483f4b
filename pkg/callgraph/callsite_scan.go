// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"regexp"
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/resolver"
)

var (
	memberCallRe = regexp.MustCompile(`\b(this|[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)\.([A-Za-z_]\w*)\s*\(`)
	bareCallRe   = regexp.MustCompile(`(?:^|[^.\w])([A-Za-z_]\w*)\s*\(`)
	newExprRe    = regexp.MustCompile(`\bnew\s+([A-Za-z_]\w*)(?:<[^>(){}]*>)?\s*\(([^()]*)\)`)
	propWriteRe  = regexp.MustCompile(`\b(this|[A-Za-z_]\w*)\.([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
	propReadRe   = regexp.MustCompile(`\b(this|[A-Za-z_]\w*)\.([A-Za-z_]\w*)\b`)

	excludedCallNames = map[string]bool{
		"if": true, "for": true, "foreach": true, "while": true, "switch": true,
		"catch": true, "using": true, "lock": true, "fixed": true, "return": true,
		"typeof": true, "sizeof": true, "nameof": true, "when": true, "new": true,
	}
)

// extractCallSites walks a method body's masked text and yields the
// call-site shapes pkg/resolver understands, per spec §4.5.1's "walk the
// method body ... visits invocations, member accesses, object creations,
// and unary/binary operator expressions" (operator-usage sites are not
// extracted here: regex scanning cannot reliably disambiguate an operator
// expression from arithmetic on primitive types, so only operator
// *declarations*, handled in pkg/compiler, are modeled).
func extractCallSites(body, enclosingType, enclosingNamespace string) []resolver.CallSite {
	claimed := make(map[int]bool)
	var sites []resolver.CallSite

	for _, m := range newExprRe.FindAllStringSubmatchIndex(body, -1) {
		claimed[m[0]] = true
		typeName := body[m[2]:m[3]]
		argCount := countArgs(body[m[4]:m[5]])
		sites = append(sites, resolver.CallSite{
			Form:               resolver.FormObjectCreation,
			EnclosingType:      enclosingType,
			EnclosingNamespace: enclosingNamespace,
			ReceiverTypeHint:   typeName,
			MethodName:         typeName,
			ArgCount:           argCount,
		})
	}

	for _, m := range memberCallRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		receiver := body[m[2]:m[3]]
		name := body[m[4]:m[5]]
		if excludedCallNames[name] {
			continue
		}
		claimed[m[0]] = true
		receiverType := receiver
		if i := strings.LastIndexByte(receiver, '.'); i >= 0 {
			receiverType = receiver[i+1:]
		}
		if receiver == "this" {
			receiverType = ""
		}
		sites = append(sites, resolver.CallSite{
			Form:               formFor(receiverType),
			EnclosingType:      enclosingType,
			EnclosingNamespace: enclosingNamespace,
			ReceiverTypeHint:   receiverType,
			MethodName:         name,
			ArgCount:           countArgsAt(body, m[1]),
		})
	}

	for _, m := range bareCallRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		name := body[m[2]:m[3]]
		if excludedCallNames[name] {
			continue
		}
		claimed[m[0]] = true
		sites = append(sites, resolver.CallSite{
			Form:               resolver.FormBareCall,
			EnclosingType:      enclosingType,
			EnclosingNamespace: enclosingNamespace,
			MethodName:         name,
			ArgCount:           countArgsAt(body, m[1]),
		})
	}

	for _, m := range propWriteRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		claimed[m[0]] = true
		sites = append(sites, propertySite(body, m, enclosingType, enclosingNamespace, true))
	}

	for _, m := range propReadRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		claimed[m[0]] = true
		sites = append(sites, propertySite(body, m, enclosingType, enclosingNamespace, false))
	}

	return sites
}

func propertySite(body string, m []int, enclosingType, enclosingNamespace string, isWrite bool) resolver.CallSite {
	receiver := body[m[2]:m[3]]
	name := body[m[4]:m[5]]
	receiverType := receiver
	if receiver == "this" {
		receiverType = enclosingType
	}
	return resolver.CallSite{
		Form:               resolver.FormPropertyAccess,
		EnclosingType:      enclosingType,
		EnclosingNamespace: enclosingNamespace,
		ReceiverTypeHint:   receiverType,
		MethodName:         name,
		IsPropertyWrite:    isWrite,
	}
}

// formFor decides whether a dotted call is effectively a bare (same-type)
// call — "this.Foo(...)" — or a true member call on another receiver.
func formFor(receiverType string) resolver.CallSiteForm {
	if receiverType == "" {
		return resolver.FormBareCall
	}
	return resolver.FormMemberCall
}

// countArgsAt counts the arguments of the parenthesized list whose '(' is
// the byte immediately before parenEnd.
func countArgsAt(text string, parenEnd int) int {
	open := parenEnd - 1
	if open < 0 || open >= len(text) || text[open] != '(' {
		return 0
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return countArgs(text[open+1 : i])
			}
		}
	}
	return 0
}

// countArgs counts top-level, comma-separated argument expressions,
// treating nested (), [], and <> as opaque (generic type arguments, indexer
// expressions, nested calls).
func countArgs(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	depth := 0
	count := 1
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '>', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}
