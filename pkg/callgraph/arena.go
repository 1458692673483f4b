// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package callgraph

import (
	"sync"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// arena interns MethodId strings into a compact int32 index space. Every
// internal adjacency structure in Graph is keyed by these indices; the
// string form is materialized only when a query needs to hand a result
// back to a caller.
type arena struct {
	mu      sync.RWMutex
	byID    map[model.MethodID]int32
	byIndex []model.MethodID
}

func newArena() *arena {
	return &arena{byID: make(map[model.MethodID]int32)}
}

// Intern returns the index for id, assigning a new one if this is the
// first time id has been seen. Safe for concurrent use.
func (a *arena) Intern(id model.MethodID) int32 {
	a.mu.RLock()
	if idx, ok := a.byID[id]; ok {
		a.mu.RUnlock()
		return idx
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if idx, ok := a.byID[id]; ok {
		return idx
	}
	idx := int32(len(a.byIndex))
	a.byIndex = append(a.byIndex, id)
	a.byID[id] = idx
	return idx
}

// Lookup returns the index for id without interning it, if already present.
func (a *arena) Lookup(id model.MethodID) (int32, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	idx, ok := a.byID[id]
	return idx, ok
}

// String returns the MethodId for idx.
func (a *arena) String(idx int32) model.MethodID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.byIndex[idx]
}

func (a *arena) len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.byIndex)
}
