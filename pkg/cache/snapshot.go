// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"os"
	"sort"
	"sync"
)

// fileFingerprint is the (mtime, size) pair spec §4.9 names as the
// assembly-metadata cache key material; it also doubles as the per-file
// unit DetectChanges compares snapshot-to-snapshot.
type fileFingerprint struct {
	modUnixNano int64
	size        int64
}

func statFingerprint(path string) (fileFingerprint, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileFingerprint{}, false
	}
	return fileFingerprint{modUnixNano: info.ModTime().UnixNano(), size: info.Size()}, true
}

// snapshotState is the mtime/size-based Snapshot/DetectChanges
// implementation shared by MemCache and DiskCache. It is not itself a
// Contract — it is composed into both so neither has to reimplement file
// fingerprinting.
type snapshotState struct {
	mu       sync.Mutex
	taken    bool
	byFile   map[string]fileFingerprint
}

func newSnapshotState() *snapshotState {
	return &snapshotState{byFile: make(map[string]fileFingerprint)}
}

func (s *snapshotState) snapshot(_ context.Context, files []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byFile = make(map[string]fileFingerprint, len(files))
	for _, f := range files {
		if fp, ok := statFingerprint(f); ok {
			s.byFile[f] = fp
		}
	}
	s.taken = true
	return nil
}

func (s *snapshotState) detectChanges(_ context.Context, files []string) (ChangeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.taken {
		return ChangeReport{HasChanges: true, Reason: "no prior snapshot"}, nil
	}

	var report ChangeReport
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f] = true
		fp, exists := statFingerprint(f)
		prior, wasTracked := s.byFile[f]
		switch {
		case !exists && wasTracked:
			report.Deleted = append(report.Deleted, f)
		case exists && !wasTracked:
			report.Added = append(report.Added, f)
		case exists && wasTracked && fp != prior:
			report.Modified = append(report.Modified, f)
		}
	}
	for f := range s.byFile {
		if !seen[f] {
			report.Deleted = append(report.Deleted, f)
		}
	}

	sort.Strings(report.Added)
	sort.Strings(report.Modified)
	sort.Strings(report.Deleted)
	report.HasChanges = len(report.Added) > 0 || len(report.Modified) > 0 || len(report.Deleted) > 0
	if report.HasChanges {
		report.Reason = "tracked files changed since last snapshot"
	}
	return report, nil
}

func (s *snapshotState) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taken = false
	s.byFile = make(map[string]fileFingerprint)
}
