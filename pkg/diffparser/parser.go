// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package diffparser

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/kelvinreed/codeimpact/internal/contract"
	"github.com/kelvinreed/codeimpact/pkg/model"
)

// sourceExtensions are the file extensions spec §4.6 scopes method/type
// extraction to; a CodeChange is still emitted for any other file (file-level
// fidelity is never lost), it just carries no changed method/type names.
var sourceExtensions = map[string]bool{
	".cs": true, ".csx": true, ".vb": true,
}

// Parse turns a unified diff into a model.CodeChangeSet. File and hunk
// splitting is delegated to sourcegraph/go-diff; this package's own scanning
// is limited to pulling method/type names out of each file's accumulated
// added/removed line text, per spec §4.6.
func Parse(r io.Reader) (*model.CodeChangeSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(raw)
}

// ParseBytes is Parse without the io.Reader indirection, for callers that
// already hold the diff text (e.g. ParseFile, ParseVCS).
func ParseBytes(raw []byte) (*model.CodeChangeSet, error) {
	if bytes.Contains(raw, []byte("Binary files ")) && !bytes.Contains(raw, []byte("@@")) {
		// Spec §6: binary diffs are ignored entirely. A mixed diff with both
		// binary and textual file entries still parses the textual ones below;
		// changeFromFileDiff drops each binary file entry go-diff returns.
	}

	set := &model.CodeChangeSet{}
	if r := contract.ValidateDiffSize(raw); !r.OK {
		set.Warnings = append(set.Warnings, r.Message)
	}

	fileDiffs, err := diff.ParseMultiFileDiff(raw)
	if err != nil {
		// go-diff expects multi-file framing; fall back to a single-file parse
		// for inputs that are just one `diff --git` block (or none at all).
		fd, ferr := diff.ParseFileDiff(raw)
		if ferr != nil {
			return set, nil
		}
		fileDiffs = []*diff.FileDiff{fd}
	}

	for _, fd := range fileDiffs {
		change, ok := changeFromFileDiff(fd)
		if ok {
			set.Changes = append(set.Changes, change)
		}
	}
	return set, nil
}

// ParseFile reads path and parses its contents as a unified diff.
func ParseFile(path string) (*model.CodeChangeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParseVCS runs an external version-control command (e.g. `git diff
// HEAD~1`) and parses its stdout as a unified diff, per spec §6 ("the
// stdout of an external version-control command executed as a child
// process").
func ParseVCS(ctx context.Context, name string, args ...string) (*model.CodeChangeSet, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errorsAsExitError(err, &exitErr) {
			return nil, err
		}
		// A VCS diff command frequently exits non-zero purely to signal
		// "differences found" (e.g. `git diff --exit-code`); stdout is still
		// the diff we want, so only a missing/unexecutable binary is fatal.
	}
	return ParseBytes(out)
}

func errorsAsExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}
	return ok
}

// changeFromFileDiff converts one go-diff FileDiff into a model.CodeChange,
// classifying Added/Modified/Deleted per spec §4.6's state machine and
// extracting method/type names from the hunk bodies of source-file
// extensions of interest.
func changeFromFileDiff(fd *diff.FileDiff) (model.CodeChange, bool) {
	path := displayPath(fd)
	if path == "" {
		return model.CodeChange{}, false
	}
	for _, ext := range fd.Extended {
		if strings.HasPrefix(ext, "Binary files ") || strings.HasPrefix(ext, "GIT binary patch") {
			return model.CodeChange{}, false
		}
	}

	changeType := classifyChangeType(fd)

	var addedRemoved strings.Builder
	for _, h := range fd.Hunks {
		for _, line := range strings.Split(string(h.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
				addedRemoved.WriteString(strings.TrimPrefix(line, "+"))
				addedRemoved.WriteByte('\n')
			case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
				addedRemoved.WriteString(strings.TrimPrefix(line, "-"))
				addedRemoved.WriteByte('\n')
			}
		}
	}

	change := model.CodeChange{
		FilePath:   path,
		ChangeType: changeType,
	}

	if sourceExtensions[extOf(path)] {
		text := addedRemoved.String()
		change.ChangedMethods = extractMethodNames(text)
		change.ChangedTypes = extractTypeNames(text)
	}

	// Per spec §4.6: "A CodeChange is emitted whenever the accumulator for a
	// source file is non-empty, even when no methods or types were matched,
	// so that file-level change is never lost." A file with zero hunks (pure
	// rename, or a mode-change-only diff) still produces a CodeChange here;
	// only a binary entry or a file we couldn't name at all is dropped
	// (handled above).
	return change, true
}

// displayPath picks the new file's path, falling back to the old path for a
// deletion (NewName is "/dev/null" in that case).
func displayPath(fd *diff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	name = strings.TrimPrefix(name, "a/")
	name = strings.TrimPrefix(name, "b/")
	if name == "/dev/null" {
		return ""
	}
	return name
}

// classifyChangeType implements spec §4.6's scan-state-machine rules:
// "new file mode"/"deleted file mode" extended headers, and `/dev/null`
// orig/new names, take priority over the default Modified classification.
func classifyChangeType(fd *diff.FileDiff) model.ChangeType {
	for _, ext := range fd.Extended {
		switch {
		case strings.HasPrefix(ext, "new file mode"):
			return model.ChangeAdded
		case strings.HasPrefix(ext, "deleted file mode"):
			return model.ChangeDeleted
		}
	}
	if fd.OrigName == "/dev/null" {
		return model.ChangeAdded
	}
	if fd.NewName == "/dev/null" {
		return model.ChangeDeleted
	}
	return model.ChangeModified
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}
