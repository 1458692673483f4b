// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// GitSnapshotter implements DetectChanges for a working tree without a
// stored snapshot file, by shelling out to `git diff --name-status`,
// grounded on pkg/ingestion/delta.go's DeltaDetector. It supplements spec
// §4.9's abstract change-detection contract with a concrete CLI consumer
// for `codeimpact watch` (SPEC_FULL.md §5).
type GitSnapshotter struct {
	repoPath string
	lastRef  string
}

// NewGitSnapshotter creates a snapshotter rooted at repoPath, diffing
// against baseRef (e.g. "HEAD") each time DetectChanges is called.
func NewGitSnapshotter(repoPath, baseRef string) *GitSnapshotter {
	if baseRef == "" {
		baseRef = "HEAD"
	}
	return &GitSnapshotter{repoPath: repoPath, lastRef: baseRef}
}

// DetectChanges runs `git diff --name-status <ref>` and classifies each
// reported path. It never consults a stored snapshot file — the "snapshot"
// is the named git ref itself — so it has no separate Snapshot step.
func (g *GitSnapshotter) DetectChanges(ctx context.Context) (ChangeReport, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", g.repoPath, "diff", "--name-status", g.lastRef)
	out, err := cmd.Output()
	if err != nil {
		return ChangeReport{}, fmt.Errorf("git diff --name-status: %w", err)
	}

	var report ChangeReport
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		status, path := fields[0], fields[len(fields)-1]
		path = filepath.ToSlash(path)
		switch status[0] {
		case 'A':
			report.Added = append(report.Added, path)
		case 'M':
			report.Modified = append(report.Modified, path)
		case 'D':
			report.Deleted = append(report.Deleted, path)
		case 'R':
			// git reports renames as "R100 old new"; the new path is what
			// fields[len-1] already captured above.
			report.Added = append(report.Added, path)
		}
	}

	sort.Strings(report.Added)
	sort.Strings(report.Modified)
	sort.Strings(report.Deleted)
	report.HasChanges = len(report.Added) > 0 || len(report.Modified) > 0 || len(report.Deleted) > 0
	if report.HasChanges {
		report.Reason = fmt.Sprintf("working tree differs from %s", g.lastRef)
	}
	return report, nil
}

// Advance moves the comparison ref forward, e.g. after a polling iteration
// has consumed the current diff and wants the next call to diff from "now".
func (g *GitSnapshotter) Advance(ref string) {
	g.lastRef = ref
}
