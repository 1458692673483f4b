// Copyright 2026 The CodeImpact Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package symbolindex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// Index answers containment queries over a scanned file set. All tables are
// multi-maps guarded by a single RWMutex; queries issued before Build never
// block, they just return empty results (with a logged warning).
type Index struct {
	mu sync.RWMutex

	methodSimpleName    map[string]map[string]bool // name -> set<file>
	approximateMethodID map[string]map[string]bool // ns.type.name(N) -> set<file>
	typeSimpleName      map[string]map[string]bool
	namespace           map[string]map[string]bool
	fileProject         map[string]*model.ProjectInfo

	logger  *slog.Logger
	isBuilt bool
}

// New creates an empty, queryable Index. logger may be nil.
func New(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		methodSimpleName:    make(map[string]map[string]bool),
		approximateMethodID: make(map[string]map[string]bool),
		typeSimpleName:      make(map[string]map[string]bool),
		namespace:           make(map[string]map[string]bool),
		fileProject:         make(map[string]*model.ProjectInfo),
		logger:              logger,
	}
}

// BuildInput enumerates the files to index and the project each belongs to.
type BuildInput struct {
	// Files maps each source file path to its owning project (nil if the
	// project is unknown, e.g. a directory scan with no manifest).
	Files map[string]*model.ProjectInfo
}

// Build indexes every file in input, in parallel with bounded concurrency
// (2x GOMAXPROCS, capped at 64, per spec §4.2 step 2). Individual file failures are
// logged and skipped; they never abort the build.
func (idx *Index) Build(ctx context.Context, input BuildInput) error {
	defaultMetrics.init()
	start := time.Now()
	defer func() { defaultMetrics.buildSeconds.Observe(time.Since(start).Seconds()) }()

	workers := 2 * runtime.GOMAXPROCS(0)
	if workers > 64 {
		workers = 64
	}
	if workers < 2 {
		workers = 2
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	paths := make([]string, 0, len(input.Files))
	for path := range input.Files {
		paths = append(paths, path)
	}

	for _, path := range paths {
		path := path
		proj := input.Files[path]
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			idx.indexFile(path, proj)
		}()
	}
	wg.Wait()

	idx.mu.Lock()
	idx.isBuilt = true
	idx.mu.Unlock()
	return nil
}

// ScopedBuild indexes only the files implied by changedFiles and
// relevantProjects. If both are empty it falls back to a full build of
// allFiles, per spec §4.2's scoped-build semantics.
func (idx *Index) ScopedBuild(ctx context.Context, changedFiles []string, relevantProjects []*model.ProjectInfo, allFiles map[string]*model.ProjectInfo) error {
	if len(changedFiles) == 0 && len(relevantProjects) == 0 {
		return idx.Build(ctx, BuildInput{Files: allFiles})
	}

	scoped := make(map[string]*model.ProjectInfo)
	for _, f := range changedFiles {
		scoped[f] = allFiles[f]
	}
	for _, p := range relevantProjects {
		for _, f := range p.SourceFiles {
			scoped[f] = p
		}
	}
	return idx.Build(ctx, BuildInput{Files: scoped})
}

func (idx *Index) indexFile(path string, proj *model.ProjectInfo) {
	content, err := os.ReadFile(path)
	if err != nil {
		defaultMetrics.filesFailed.Inc()
		idx.logger.Debug("symbolindex.file_read_failed", "path", path, "error", err)
		return
	}

	scan := scanFile(content)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.fileProject[path] = proj
	for _, ns := range scan.Namespaces {
		addTo(idx.namespace, ns, path)
	}
	for _, t := range scan.Types {
		addTo(idx.typeSimpleName, t.SimpleName, path)
	}
	for _, m := range scan.Methods {
		addTo(idx.methodSimpleName, m.SimpleName, path)
		addTo(idx.approximateMethodID, approximateID(m.Namespace, m.EnclosingType, m.SimpleName, m.ParamCount), path)
	}

	defaultMetrics.filesIndexed.Inc()
}

func approximateID(namespace, typeName, method string, paramCount int) string {
	ns := namespace
	if ns == "" {
		ns = "?"
	}
	tn := typeName
	if tn == "" {
		tn = "?"
	}
	return fmt.Sprintf("%s.%s.%s(%d params)", ns, tn, method, paramCount)
}

func addTo(table map[string]map[string]bool, key, path string) {
	set, ok := table[key]
	if !ok {
		set = make(map[string]bool)
		table[key] = set
	}
	set[path] = true
}

// Refresh re-scans a single file, removing its prior entries from every
// table first.
func (idx *Index) Refresh(path string, proj *model.ProjectInfo) {
	defaultMetrics.init()
	defaultMetrics.refreshCount.Inc()

	idx.mu.Lock()
	removeFileLocked(idx.methodSimpleName, path)
	removeFileLocked(idx.approximateMethodID, path)
	removeFileLocked(idx.typeSimpleName, path)
	removeFileLocked(idx.namespace, path)
	delete(idx.fileProject, path)
	idx.mu.Unlock()

	idx.indexFile(path, proj)
}

func removeFileLocked(table map[string]map[string]bool, path string) {
	for key, set := range table {
		delete(set, path)
		if len(set) == 0 {
			delete(table, key)
		}
	}
}

// FindFilesContainingMethod implements spec §4.2's "exact approximate-id
// match; else fuzzy match by substring on the simple name."
func (idx *Index) FindFilesContainingMethod(methodID string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.isBuilt {
		idx.logger.Warn("symbolindex.query_before_build")
		return nil
	}

	if set, ok := idx.approximateMethodID[methodID]; ok {
		return keys(set)
	}

	simple := simpleNameFromMethodID(methodID)
	var out []string
	seen := make(map[string]bool)
	for name, set := range idx.methodSimpleName {
		if strings.Contains(name, simple) || strings.Contains(simple, name) {
			for f := range set {
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// FindFilesContainingType returns files that may declare typeName: exact
// match first, falling back to bidirectional substring match.
func (idx *Index) FindFilesContainingType(typeName string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.isBuilt {
		idx.logger.Warn("symbolindex.query_before_build")
		return nil
	}

	if set, ok := idx.typeSimpleName[typeName]; ok {
		return keys(set)
	}

	var out []string
	seen := make(map[string]bool)
	for name, set := range idx.typeSimpleName {
		if strings.Contains(name, typeName) || strings.Contains(typeName, name) {
			for f := range set {
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// ProjectFor returns the project a file was indexed under, if known.
func (idx *Index) ProjectFor(path string) *model.ProjectInfo {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.fileProject[path]
}

// IsBuilt reports whether Build/ScopedBuild has completed at least once.
func (idx *Index) IsBuilt() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.isBuilt
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// simpleNameFromMethodID extracts the bare method name from either a
// canonical MethodID ("NS.Type.Name(args)") or an approximate one
// ("NS.Type.Name(N params)").
func simpleNameFromMethodID(methodID string) string {
	s := methodID
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// paramCountFromApproximateID parses the "(N params)" suffix used by
// approximate_method_id entries, returning -1 if not in that shape.
func paramCountFromApproximateID(id string) int {
	open := strings.LastIndexByte(id, '(')
	close := strings.LastIndexByte(id, ')')
	if open < 0 || close < 0 || close < open {
		return -1
	}
	inner := id[open+1 : close]
	inner = strings.TrimSuffix(inner, " params")
	n, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil {
		return -1
	}
	return n
}
