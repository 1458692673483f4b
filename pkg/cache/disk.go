// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kelvinreed/codeimpact/internal/contract"
)

// DiskCache persists GetOrCompute results as gob-encoded, content-addressed
// files under a directory (filename = sha256 hex of the cache key), grounded
// on pkg/ingestion's checkpoint.go temp-file-then-rename write pattern.
//
// Values stored through DiskCache must be registered with gob.Register if
// they are interface-typed, and must be exported structs gob can encode —
// this is an ordinary encoding/gob constraint, not specific to this cache.
type DiskCache struct {
	dir      string
	mu       sync.Mutex
	snapshot *snapshotState
}

// NewDiskCache creates a DiskCache rooted at dir, creating it if absent.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir, snapshot: newSnapshotState()}, nil
}

func (c *DiskCache) Snapshot(ctx context.Context, files []string) error {
	if err := c.snapshot.snapshot(ctx, files); err != nil {
		return err
	}
	return c.writeSnapshotFile()
}

func (c *DiskCache) DetectChanges(ctx context.Context, files []string) (ChangeReport, error) {
	return c.snapshot.detectChanges(ctx, files)
}

func (c *DiskCache) GetOrCompute(ctx context.Context, key string, factory Factory) (any, error) {
	path := c.entryPath(key)

	c.mu.Lock()
	data, err := os.ReadFile(path)
	c.mu.Unlock()
	if err == nil {
		var v any
		if decErr := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); decErr == nil {
			return v, nil
		}
		// A corrupt/unreadable entry is treated as a miss, not a fatal error —
		// spec §7's "individual file failure" demotion applies to cache
		// entries too.
	}

	v, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if encErr := gob.NewEncoder(&buf).Encode(&v); encErr == nil {
		if r := contract.ValidateCacheEntrySize(buf.Bytes()); r.OK {
			_ = c.writeAtomic(path, buf.Bytes())
		}
		// An oversized entry is simply not persisted; the computed value is
		// still returned to the caller for this call.
	}
	return v, nil
}

func (c *DiskCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err == nil {
		for _, e := range entries {
			_ = os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	c.snapshot.clear()
}

func (c *DiskCache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".gob")
}

func (c *DiskCache) writeAtomic(path string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename cache entry: %w", err)
	}
	return nil
}

func (c *DiskCache) writeSnapshotFile() error {
	// The snapshot itself rides in-memory (snapshotState); nothing extra is
	// persisted to disk for it beyond the per-key entries GetOrCompute
	// already wrote, keeping DiskCache's on-disk format to one file shape.
	return nil
}

var _ Contract = (*DiskCache)(nil)
