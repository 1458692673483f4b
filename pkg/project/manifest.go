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
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// DefaultTargetFramework is used when a project manifest declares neither
// TargetFramework nor TargetFrameworks.
const DefaultTargetFramework = "net8.0"

// SourceExtension is the source-file extension projects are globbed for
// when no explicit Compile items are present.
const SourceExtension = ".cs"

var excludedDirs = map[string]bool{
	"bin": true, "obj": true, ".git": true, ".svn": true, ".hg": true,
}

// testFrameworkPackages names package references that mark a project as a
// test project (case-insensitive substring match against PackageReference
// Include values).
var testFrameworkPackages = []string{
	"xunit",
	"nunit",
	"microsoft.net.test.sdk",
	"mstest.testframework",
	"mstest.testadapter",
}

var testNameSuffixes = []string{"Test", "Tests", "Spec", "Specs"}
var testNameInfixes = []string{".Tests.", ".Test.", ".Specs.", ".Spec."}

type csprojXML struct {
	PropertyGroups []propertyGroupXML `xml:"PropertyGroup"`
	ItemGroups     []itemGroupXML     `xml:"ItemGroup"`
}

type propertyGroupXML struct {
	TargetFramework  string `xml:"TargetFramework"`
	TargetFrameworks string `xml:"TargetFrameworks"`
	IsTestProject    string `xml:"IsTestProject"`
}

type itemGroupXML struct {
	ProjectReference []includeXML    `xml:"ProjectReference"`
	PackageReference []packageRefXML `xml:"PackageReference"`
	Reference        []includeXML    `xml:"Reference"`
	Compile          []includeXML    `xml:"Compile"`
}

type includeXML struct {
	Include string `xml:"Include,attr"`
}

type packageRefXML struct {
	Include string `xml:"Include,attr"`
	Version string `xml:"Version,attr"`
}

// ParseProject parses a single project manifest.
func ParseProject(path string) (*model.ProjectInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	var doc csprojXML
	// Malformed XML still yields a ProjectInfo with defaults: a missing or
	// corrupt manifest should not abort a whole-solution parse (§4.1).
	_ = xml.Unmarshal(data, &doc)

	dir := filepath.Dir(path)
	info := &model.ProjectInfo{
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:      path,
		Directory: dir,
	}

	info.TargetFrameworks = targetFrameworks(doc)
	if len(info.TargetFrameworks) == 0 {
		info.TargetFrameworks = []string{DefaultTargetFramework}
	}

	isTestByProperty := false
	for _, pg := range doc.PropertyGroups {
		if strings.EqualFold(strings.TrimSpace(pg.IsTestProject), "true") {
			isTestByProperty = true
		}
	}

	var projectRefs []string
	var packageRefs []string
	var explicitCompile []string
	for _, ig := range doc.ItemGroups {
		for _, pr := range ig.ProjectReference {
			if pr.Include == "" {
				continue
			}
			refPath := filepath.FromSlash(pr.Include)
			if !filepath.IsAbs(refPath) {
				refPath = filepath.Join(dir, refPath)
			}
			projectRefs = append(projectRefs, filepath.Clean(refPath))
		}
		for _, pr := range ig.PackageReference {
			packageRefs = append(packageRefs, pr.Include)
		}
		for _, c := range ig.Compile {
			if c.Include == "" {
				continue
			}
			explicitCompile = append(explicitCompile, filepath.Join(dir, filepath.FromSlash(c.Include)))
		}
	}
	info.ProjectReferences = projectRefs

	if len(explicitCompile) > 0 {
		info.SourceFiles = explicitCompile
	} else {
		info.SourceFiles = discoverSourceFiles(dir)
	}

	info.IsTestProject = isTestByProperty || hasTestFrameworkPackage(packageRefs) || nameLooksLikeTest(info.Name)

	return info, nil
}

func targetFrameworks(doc csprojXML) []string {
	for _, pg := range doc.PropertyGroups {
		if tf := strings.TrimSpace(pg.TargetFramework); tf != "" {
			return []string{tf}
		}
	}
	for _, pg := range doc.PropertyGroups {
		if tfs := strings.TrimSpace(pg.TargetFrameworks); tfs != "" {
			parts := strings.Split(tfs, ";")
			if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
				return []string{strings.TrimSpace(parts[0])}
			}
		}
	}
	return nil
}

func hasTestFrameworkPackage(refs []string) bool {
	for _, r := range refs {
		lower := strings.ToLower(r)
		for _, known := range testFrameworkPackages {
			if strings.Contains(lower, known) {
				return true
			}
		}
	}
	return false
}

func nameLooksLikeTest(name string) bool {
	for _, suf := range testNameSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	for _, infix := range testNameInfixes {
		if strings.Contains(name, infix) {
			return true
		}
	}
	return false
}

// IsTestProject returns the test-project classification ParseProject stored
// on info. It does not re-apply the rule: the package references and the
// IsTestProject property it depends on are not kept in model.ProjectInfo.
func IsTestProject(info *model.ProjectInfo) bool {
	return info.IsTestProject
}

// discoverSourceFiles recursively globs *.cs under dir, excluding build
// output and VCS metadata directories.
func discoverSourceFiles(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best-effort walk, individual errors are not fatal
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), SourceExtension) {
			out = append(out, path)
		}
		return nil
	})
	return out
}
