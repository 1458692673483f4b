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

// Package resolver maps a syntactic call site to a fully-qualified
// MethodId using a pkg/compiler.SemanticModel, and expands polymorphic
// call targets (interface/abstract/virtual/override members) into the
// back-edges pkg/callgraph needs for reverse traversal to reach every
// implementation of an interface method.
package resolver
