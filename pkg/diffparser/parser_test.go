// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package diffparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinreed/codeimpact/pkg/model"
)

// TestParse_ModifiedFile_ExtractsChangedMethod is scenario S2 from spec §8.
func TestParse_ModifiedFile_ExtractsChangedMethod(t *testing.T) {
	raw := "diff --git a/x.cs b/x.cs\n" +
		"index 1111111..2222222 100644\n" +
		"--- a/x.cs\n" +
		"+++ b/x.cs\n" +
		"@@ -1,3 +1,4 @@\n" +
		" class X {\n" +
		"+    var y = DoWork();\n" +
		" }\n"

	set, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, set.Changes, 1)

	change := set.Changes[0]
	assert.Equal(t, "x.cs", change.FilePath)
	assert.Equal(t, model.ChangeModified, change.ChangeType)
	assert.Contains(t, change.ChangedMethods, "DoWork")
}

// TestParse_DeletedFile is scenario S5 from spec §8.
func TestParse_DeletedFile(t *testing.T) {
	raw := "diff --git a/Foo.cs b/Foo.cs\n" +
		"deleted file mode 100644\n" +
		"index 1111111..0000000\n" +
		"--- a/Foo.cs\n" +
		"+++ /dev/null\n" +
		"@@ -1,5 +0,0 @@\n" +
		"-public class Foo {\n" +
		"-    public void Bar() {}\n" +
		"-}\n"

	set, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, set.Changes, 1)
	assert.Equal(t, "Foo.cs", set.Changes[0].FilePath)
	assert.Equal(t, model.ChangeDeleted, set.Changes[0].ChangeType)
}

func TestParse_AddedFile(t *testing.T) {
	raw := "diff --git a/New.cs b/New.cs\n" +
		"new file mode 100644\n" +
		"index 0000000..1111111\n" +
		"--- /dev/null\n" +
		"+++ b/New.cs\n" +
		"@@ -0,0 +1,3 @@\n" +
		"+public class New {\n" +
		"+    public void Go() {}\n" +
		"+}\n"

	set, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, set.Changes, 1)
	assert.Equal(t, model.ChangeAdded, set.Changes[0].ChangeType)
	assert.Contains(t, set.Changes[0].ChangedTypes, "New")
}

// TestParse_NonSourceFile_StillEmitsFileLevelChange verifies spec §4.6's
// "file-level change is never lost" rule for extensions we don't extract
// identifiers from.
func TestParse_NonSourceFile_StillEmitsFileLevelChange(t *testing.T) {
	raw := "diff --git a/readme.md b/readme.md\n" +
		"--- a/readme.md\n" +
		"+++ b/readme.md\n" +
		"@@ -1 +1 @@\n" +
		"-old\n" +
		"+new\n"

	set, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, set.Changes, 1)
	assert.Equal(t, "readme.md", set.Changes[0].FilePath)
	assert.Empty(t, set.Changes[0].ChangedMethods)
}

func TestParse_EmptyInput(t *testing.T) {
	set, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, set.Changes)
}

// TestParse_RoundTrip_FileLevelFidelity covers invariant 4 from spec §8:
// file-level fidelity is guaranteed even though method extraction is lossy.
func TestParse_RoundTrip_FileLevelFidelity(t *testing.T) {
	raw := "diff --git a/a.cs b/a.cs\n" +
		"--- a/a.cs\n" +
		"+++ b/a.cs\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-int Old() { return 1; }\n" +
		"+int New() { return 2; }\n"

	set, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, set.Changes, 1)
	assert.Equal(t, []string{"a.cs"}, set.ChangedFiles())
}
