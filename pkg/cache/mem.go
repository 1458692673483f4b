// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"sync"
)

// MemCache is the process-lifetime, in-memory Contract implementation: the
// default for a single analysis request and for every test in this module.
// Compute-or-get is not double-compute-guarded (spec §5 permits benign
// lost-update races); the common case of a cache hit never calls factory.
type MemCache struct {
	mu       sync.RWMutex
	entries  map[string]any
	snapshot *snapshotState
}

// NewMemCache creates an empty MemCache.
func NewMemCache() *MemCache {
	return &MemCache{
		entries:  make(map[string]any),
		snapshot: newSnapshotState(),
	}
}

func (c *MemCache) Snapshot(ctx context.Context, files []string) error {
	return c.snapshot.snapshot(ctx, files)
}

func (c *MemCache) DetectChanges(ctx context.Context, files []string) (ChangeReport, error) {
	return c.snapshot.detectChanges(ctx, files)
}

func (c *MemCache) GetOrCompute(ctx context.Context, key string, factory Factory) (any, error) {
	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *MemCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]any)
	c.mu.Unlock()
	c.snapshot.clear()
}

var _ Contract = (*MemCache)(nil)
