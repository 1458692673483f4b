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

// Package compiler provides the semantic layer over a scanned source tree:
// a table of declared types and members derived from the lightweight
// syntactic scan, and one SemanticModel implementation over it. The two
// constructors, NewWorkspaceCompiler and NewScopedCompiler, build the same
// Compiler and differ only in the file set the caller hands them. It is not
// a real C# compiler; there is no such thing in the Go ecosystem, so it
// approximates binding with name/arity matching over the declared-member
// table, which is what pkg/resolver needs to drive method resolution.
package compiler
