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

package project

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// projectLineRe matches `Project("{guid}") = "Name", "relative/path", "{guid}"`.
// Quoting is permissive about whitespace around commas, which is common in
// manifests hand-edited across tools.
var projectLineRe = regexp.MustCompile(`^Project\("\{[0-9A-Fa-f-]+\}"\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"\{[0-9A-Fa-f-]+\}"\)?$`)

// ParseSolution parses a solution manifest and every project it references.
// Malformed lines are skipped with a warning; the parse only fails fatally
// when the solution file itself cannot be read.
func ParseSolution(path string, logger *slog.Logger) (*model.SolutionInfo, error) {
	logger = logOrDefault(logger)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	sol := &model.SolutionInfo{Path: path}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "Project(") {
			continue
		}
		m := projectLineRe.FindStringSubmatch(trimmed)
		if m == nil {
			logger.Warn("project.solution.malformed_line", "path", path, "line", lineNo)
			continue
		}
		relPath := filepath.FromSlash(strings.ReplaceAll(m[2], `\`, "/"))
		projPath := relPath
		if !filepath.IsAbs(projPath) {
			projPath = filepath.Join(dir, relPath)
		}
		// Solution-folder pseudo-entries (and any entry whose target isn't a
		// project manifest we know how to parse) are recorded as skipped,
		// never fatal.
		if !looksLikeProjectManifest(projPath) {
			continue
		}
		info, err := ParseProject(projPath)
		if err != nil {
			logger.Warn("project.solution.project_parse_failed", "path", projPath, "error", err)
			continue
		}
		sol.Projects = append(sol.Projects, info)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return sol, nil
}

func looksLikeProjectManifest(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csproj", ".vbproj", ".fsproj", ".proj":
		return true
	default:
		return false
	}
}

func logOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
