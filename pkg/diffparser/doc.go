// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package diffparser turns a unified diff — a string, a file on disk, or
// the stdout of an external VCS command — into a model.CodeChangeSet: one
// CodeChange per touched source file, with a best-effort extraction of the
// method and type names the diff's added/removed lines mention.
//
// File-boundary and hunk splitting is delegated to
// github.com/sourcegraph/go-diff, so this package's own scanning is limited
// to the domain-specific part no library can do for us: pulling C#
// method/type names out of hunk body text.
package diffparser
