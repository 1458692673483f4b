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

// Package project parses solution and project manifests into
// model.SolutionInfo / model.ProjectInfo values and exposes the project
// dependency graph used to pick a safe compilation order.
//
// Two manifest shapes are understood:
//
//   - A solution manifest: a line-oriented text file containing
//     `Project("{guid}") = "name", "relative/path.proj", "{guid}"` entries.
//   - A project manifest: XML carrying TargetFramework(s), ProjectReference,
//     PackageReference, Reference, and Compile items.
//
// Malformed lines in a solution manifest are skipped with a logged warning;
// they never abort the parse. The fatal conditions this package raises are
// a missing manifest file (NotFoundError) and a cycle in the project
// references (CircularDependencyError from BuildDependencyGraph).
package project
