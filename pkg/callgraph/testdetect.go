// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/compiler"
)

var testAttributeSuffixes = []string{
	"test", "testmethod", "fact", "theory", "testcase", "datatestmethod",
}

var testNamePrefixes = []string{"Test", "Should", "When", "Given"}

// IsTestMethod implements spec §4.5.1's three-way disjunction for
// test-method detection.
func IsTestMethod(sym *compiler.Symbol) bool {
	if hasTestAttribute(sym.Attributes) {
		return true
	}
	if isTestProjectPath(sym.File) && hasTestNamePrefix(sym.Name) && isPubliclyAccessible(sym) {
		return true
	}
	if strings.HasSuffix(sym.Name, "Test") || strings.HasSuffix(sym.Name, "Tests") {
		return true
	}
	if strings.HasSuffix(sym.ContainingType, "Test") || strings.HasSuffix(sym.ContainingType, "Tests") {
		return true
	}
	return false
}

func hasTestAttribute(attrs string) bool {
	if attrs == "" {
		return false
	}
	lower := strings.ToLower(attrs)
	for _, suffix := range testAttributeSuffixes {
		if strings.Contains(lower, suffix) {
			return true
		}
	}
	return false
}

func isTestProjectPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "/test/") || strings.Contains(lower, "/tests/") ||
		strings.Contains(lower, ".test.") || strings.Contains(lower, ".tests.")
}

func hasTestNamePrefix(name string) bool {
	for _, p := range testNamePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isPubliclyAccessible(sym *compiler.Symbol) bool {
	return sym.IsPublic || sym.IsInterfaceMember
}
