// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogSource = `namespace Acme.Widgets
{
    public interface IWidgetRepository
    {
        Widget Find(int id);
    }

    public class WidgetRepository : IWidgetRepository
    {
        public int Count { get; set; }

        public WidgetRepository(int capacity)
        {
            Count = capacity;
        }

        public virtual Widget Find(int id)
        {
            return null;
        }

        public static bool operator ==(WidgetRepository a, WidgetRepository b)
        {
            return true;
        }
    }

    public class Widget { }
}
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompiler_BuildAndResolveType(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "Widget.cs", catalogSource)

	c := NewWorkspaceCompiler([]string{path}, nil)
	require.NoError(t, c.Build(context.Background()))

	sm, ok := c.GetSemanticModel(path)
	require.True(t, ok)

	ts, ok := sm.ResolveType("WidgetRepository")
	require.True(t, ok)
	assert.Equal(t, "Acme.Widgets", ts.Namespace)
	assert.Equal(t, []string{"IWidgetRepository"}, ts.BaseTypes)
}

func TestCompiler_ResolveMembersIncludesAccessorsAndOperator(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "Widget.cs", catalogSource)

	c := NewWorkspaceCompiler([]string{path}, nil)
	require.NoError(t, c.Build(context.Background()))
	sm, _ := c.GetSemanticModel(path)

	getters := sm.ResolveMembers("WidgetRepository", "get_Count")
	require.Len(t, getters, 1)
	assert.Equal(t, MemberPropertyGetter, getters[0].Kind)

	setters := sm.ResolveMembers("WidgetRepository", "set_Count")
	require.Len(t, setters, 1)
	assert.Equal(t, MemberPropertySetter, setters[0].Kind)

	ctor := sm.ResolveMembers("WidgetRepository", "WidgetRepository")
	require.Len(t, ctor, 1)
	assert.Equal(t, MemberConstructor, ctor[0].Kind)

	find := sm.ResolveMembers("WidgetRepository", "Find")
	require.Len(t, find, 1)
	assert.True(t, find[0].IsVirtual)

	op := sm.ResolveMembers("WidgetRepository", "operator==")
	require.Len(t, op, 1)
	assert.Equal(t, MemberOperator, op[0].Kind)
}

func TestCompiler_LookupInScopeSelectsByArity(t *testing.T) {
	dir := t.TempDir()
	src := `namespace N
{
    public class C
    {
        public void M() { }
        public void M(int x) { }
        public void M(int x, int y) { }
    }
}
`
	path := writeSource(t, dir, "C.cs", src)
	c := NewScopedCompiler([]string{path}, nil)
	require.NoError(t, c.Build(context.Background()))
	sm, _ := c.GetSemanticModel(path)

	sym, ok := sm.LookupInScope("C", "M", 1)
	require.True(t, ok)
	assert.Len(t, sym.Parameters, 1)
}

func TestCompiler_GetSemanticModelUnknownFile(t *testing.T) {
	c := NewWorkspaceCompiler(nil, nil)
	_, ok := c.GetSemanticModel("/not/known.cs")
	assert.False(t, ok)
}

func TestCompiler_ClearSemanticModelCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "Widget.cs", catalogSource)
	c := NewWorkspaceCompiler([]string{path}, nil)
	require.NoError(t, c.Build(context.Background()))

	c.ClearSemanticModelCache()
	sm, _ := c.GetSemanticModel(path)
	_, ok := sm.ResolveType("WidgetRepository")
	assert.False(t, ok)
}
