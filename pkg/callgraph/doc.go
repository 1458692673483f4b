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

// Package callgraph builds and queries a method call graph. MethodId values
// are interned into an arena-backed int32 index so the graph's internal
// adjacency lists never carry string weight; string-keyed MethodId only
// reappears at the query surface, where callers need it. Two builders
// share the same Graph: BuildWhole walks every file in a compiler's known
// set, BuildIncremental walks outward from one target method to a bounded
// depth, consulting a symbol index to pull in additional files on demand.
package callgraph
