// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import "context"

// Factory computes the value for a cache miss. It must be idempotent:
// spec §5 explicitly permits benign compute-twice races under concurrent
// callers, so Factory must not have side effects that break if it runs more
// than once for the same key.
type Factory func(ctx context.Context) (any, error)

// ChangeReport is the result of DetectChanges: which tracked files were
// added, modified, or deleted since the last saved Snapshot.
type ChangeReport struct {
	HasChanges bool
	Reason     string
	Added      []string
	Modified   []string
	Deleted    []string
}

// Contract is the only boundary the core crosses into persistence, per spec
// §4.9. Every method must be safe to call against a backend that keeps
// nothing: a no-op Contract (GetOrCompute always misses, DetectChanges
// always reports no changes, Clear is a no-op) is a valid implementation
// and every core algorithm must remain correct against it.
type Contract interface {
	// Snapshot captures an opaque fingerprint of the given tracked files'
	// current state (path + mtime + size, or content hash) for later
	// DetectChanges comparison.
	Snapshot(ctx context.Context, files []string) error

	// DetectChanges compares the tracked files' current state against the
	// last Snapshot. Calling it before any Snapshot reports HasChanges=true
	// with Reason "no prior snapshot".
	DetectChanges(ctx context.Context, files []string) (ChangeReport, error)

	// GetOrCompute returns the cached value for key, calling factory and
	// storing its result on a miss. key should already encode whatever
	// identifies the value (e.g. file path + mtime + size, or a content
	// hash) — GetOrCompute does no fingerprinting of its own.
	GetOrCompute(ctx context.Context, key string, factory Factory) (any, error)

	// Clear drops every cached entry and snapshot. It never returns an
	// error: clearing a cache that holds nothing is always a success.
	Clear()
}
