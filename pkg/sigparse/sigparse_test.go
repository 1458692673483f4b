// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package sigparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParamList_Simple(t *testing.T) {
	params := ParseParamList("(int x, string y)")
	assert.Equal(t, []Param{{Name: "x", Type: "int"}, {Name: "y", Type: "string"}}, params)
}

func TestParseParamList_GenericArgumentCommaDoesNotSplit(t *testing.T) {
	params := ParseParamList("(Dictionary<string, int> map, int count)")
	assert.Equal(t, []Param{{Name: "map", Type: "Dictionary<string, int>"}, {Name: "count", Type: "int"}}, params)
}

func TestParseParamList_ModifiersStripped(t *testing.T) {
	params := ParseParamList("(ref int x, out string y, params int[] rest)")
	assert.Equal(t, []Param{{Name: "x", Type: "int"}, {Name: "y", Type: "string"}, {Name: "rest", Type: "int[]"}}, params)
}

func TestParseParamList_DefaultValueIgnored(t *testing.T) {
	params := ParseParamList("(int x = 5)")
	assert.Equal(t, []Param{{Name: "x", Type: "int"}}, params)
}

func TestParseParamList_Empty(t *testing.T) {
	assert.Nil(t, ParseParamList("()"))
	assert.Nil(t, ParseParamList("NoParens"))
}

func TestParamTypes(t *testing.T) {
	types := ParamTypes("(int x, string y)")
	assert.Equal(t, []string{"int", "string"}, types)
}
