// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelvinreed/codeimpact/pkg/compiler"
)

func TestIsTestMethod_AttributeBased(t *testing.T) {
	sym := &compiler.Symbol{Name: "ReturnsGreeting", ContainingType: "ServiceTests", Attributes: "[Fact]", File: "Service.cs"}
	assert.True(t, IsTestMethod(sym))
}

func TestIsTestMethod_NamingConventionInTestPath(t *testing.T) {
	sym := &compiler.Symbol{Name: "ShouldGreetLoudly", ContainingType: "GreeterChecks", File: "/repo/tests/GreeterChecks.cs", IsPublic: true}
	assert.True(t, IsTestMethod(sym))
}

func TestIsTestMethod_NamingConventionOutsideTestPathIsNotEnough(t *testing.T) {
	sym := &compiler.Symbol{Name: "ShouldGreetLoudly", ContainingType: "Helpers", File: "/repo/src/Helpers.cs", IsPublic: true}
	assert.False(t, IsTestMethod(sym))
}

func TestIsTestMethod_ContainingTypeSuffix(t *testing.T) {
	sym := &compiler.Symbol{Name: "Run", ContainingType: "ServiceTests", File: "Service.cs"}
	assert.True(t, IsTestMethod(sym))
}

func TestIsTestMethod_OrdinaryMethodIsNotATest(t *testing.T) {
	sym := &compiler.Symbol{Name: "Greet", ContainingType: "LoudGreeter", File: "Greeter.cs", IsPublic: true}
	assert.False(t, IsTestMethod(sym))
}
