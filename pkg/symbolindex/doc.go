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

// Package symbolindex answers "which files could possibly contain a
// declaration of method/type X" without semantic analysis. An exact key is
// a single map lookup; when it misses, a substring fallback scans every
// indexed name. Namespaces are recorded but have no query method. The index
// is built by a cheap regex/brace-matching scan (pkg/symbolindex scan.go),
// never a full compile, so it can run before pkg/compiler and pkg/callgraph
// exist for a project and can bound their work to a relevant file set.
package symbolindex
