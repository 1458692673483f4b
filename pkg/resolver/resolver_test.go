// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/compiler"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

const resolverSource = `namespace Acme.Widgets
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

        public Widget Find(int id)
        {
            return null;
        }

        public void Refresh()
        {
            Find(1);
        }
    }

    public class Widget { }
}
`

func buildModel(t *testing.T) *compiler.SemanticModel {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Widget.cs")
	require.NoError(t, os.WriteFile(path, []byte(resolverSource), 0o644))

	c := compiler.NewWorkspaceCompiler([]string{path}, nil)
	require.NoError(t, c.Build(context.Background()))
	sm, ok := c.GetSemanticModel(path)
	require.True(t, ok)
	return sm
}

func TestResolveCall_BareCallSameType(t *testing.T) {
	sm := buildModel(t)
	site := CallSite{
		Form:               FormBareCall,
		EnclosingType:      "WidgetRepository",
		EnclosingNamespace: "Acme.Widgets",
		MethodName:         "Find",
		ArgCount:           1,
	}
	id, kind, ok := ResolveCall(site, sm)
	require.True(t, ok)
	assert.Equal(t, model.CallKindDirect, kind)
	assert.Contains(t, string(id), "WidgetRepository.Find")
}

func TestResolveCall_MemberCall(t *testing.T) {
	sm := buildModel(t)
	site := CallSite{
		Form:             FormMemberCall,
		ReceiverTypeHint: "WidgetRepository",
		MethodName:       "Find",
		ArgCount:         1,
	}
	id, _, ok := ResolveCall(site, sm)
	require.True(t, ok)
	assert.Contains(t, string(id), "WidgetRepository.Find")
}

func TestResolveCall_Constructor(t *testing.T) {
	sm := buildModel(t)
	site := CallSite{
		Form:             FormObjectCreation,
		ReceiverTypeHint: "WidgetRepository",
		ArgCount:         1,
	}
	id, kind, ok := ResolveCall(site, sm)
	require.True(t, ok)
	assert.Equal(t, model.CallKindConstructor, kind)
	assert.Contains(t, string(id), "WidgetRepository.WidgetRepository")
}

func TestResolveCall_PropertyAccess(t *testing.T) {
	sm := buildModel(t)
	site := CallSite{
		Form:             FormPropertyAccess,
		ReceiverTypeHint: "WidgetRepository",
		MethodName:       "Count",
	}
	id, kind, ok := ResolveCall(site, sm)
	require.True(t, ok)
	assert.Equal(t, model.CallKindPropertyGet, kind)
	assert.Contains(t, string(id), "get_Count")

	site.IsPropertyWrite = true
	id, kind, ok = ResolveCall(site, sm)
	require.True(t, ok)
	assert.Equal(t, model.CallKindPropertySet, kind)
	assert.Contains(t, string(id), "set_Count")
}

func TestResolveCall_Unresolved(t *testing.T) {
	sm := buildModel(t)
	site := CallSite{
		Form:             FormMemberCall,
		ReceiverTypeHint: "DoesNotExist",
		MethodName:       "Whatever",
	}
	_, _, ok := ResolveCall(site, sm)
	assert.False(t, ok)
}

func TestPolymorphicBackEdges(t *testing.T) {
	sm := buildModel(t)
	ifaceSym, ok := sm.LookupInScope("IWidgetRepository", "Find", 1)
	require.True(t, ok)

	edges := PolymorphicBackEdges(ifaceSym, sm)
	require.Len(t, edges, 1)
	assert.Contains(t, string(edges[0].Implementation), "WidgetRepository.Find")
}
