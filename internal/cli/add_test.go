// Package cli tests the add command.
// Related: internal/cli/add.go
// Tags: cli, add, entries
package cli

import (
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Flags(t *testing.T) {
	tests := map[string]struct {
		flagName string
		defValue string
	}{
		"version":    {flagName: "version", defValue: ""},
		"date":       {flagName: "date", defValue: ""},
		"owner-repo": {flagName: "owner-repo", defValue: ""},
	}

	cmd := findCommand("add")
	require.NotNil(t, cmd)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flagName)
			require.NotNil(t, f)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestAdd_CreatesUnreleased(t *testing.T) {
	dir := newWorkspace(t)
	path := writeChangelog(t, dir, "")

	stdout, _, err := executeCommand(t, "add", "added", "X")
	require.NoError(t, err)

	assert.Equal(t, "## [Unreleased]\n\n### Added\n\n- X\n", readFile(t, path))
	assert.Contains(t, stdout, "Created [Unreleased] section")
	assert.Contains(t, stdout, "Added to [Unreleased] > Added: X")
}

func TestAdd_ReleaseWithLinks(t *testing.T) {
	dir := newWorkspace(t)
	path := writeChangelog(t, dir, sampleChangelog)

	stdout, _, err := executeCommand(t, "add", "Security", "Bump TLS minimum",
		"--version", "1.2.0", "--date", "2025-03-15")
	require.NoError(t, err)

	got := readFile(t, path)
	assert.Contains(t, got, "## [1.2.0] - 2025-03-15\n\n### Security\n\n- Bump TLS minimum\n")
	assert.Contains(t, got, "[Unreleased]: https://github.com/acme/widget/compare/v1.2.0...HEAD")
	assert.Contains(t, got, "[1.2.0]: https://github.com/acme/widget/compare/v1.1.0...v1.2.0")
	assert.Less(t, indexOf(got, "## [1.2.0]"), indexOf(got, "## [1.1.0]"))
	assert.Contains(t, stdout, "Updated link references")
}

func TestAdd_OwnerRepoFromFlag(t *testing.T) {
	dir := newWorkspace(t)
	path := writeChangelog(t, dir, "# Changelog\n")

	_, _, err := executeCommand(t, "add", "Added", "First", "--owner-repo", "acme/widget")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "[Unreleased]: https://github.com/acme/widget/compare/v0.0.0...HEAD")
}

func TestAdd_OwnerRepoFromConfig(t *testing.T) {
	dir := newWorkspace(t)
	path := writeChangelog(t, dir, "# Changelog\n")
	t.Setenv("CHANGELOGMD_OWNER_REPO", "acme/gadget")

	_, _, err := executeCommand(t, "add", "Added", "First")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "https://github.com/acme/gadget/")
}

func TestAdd_FileFlag(t *testing.T) {
	dir := newWorkspace(t)
	path := filepath.Join(dir, "docs", "CHANGELOG.md")
	writeFileAt(t, path, "")

	_, _, err := executeCommand(t, "--file", path, "add", "Fixed", "Typo")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "### Fixed\n\n- Typo\n")
}

func TestAdd_Errors(t *testing.T) {
	tests := map[string]struct {
		args         []string
		noFile       bool
		wantCategory clierrors.ErrorCategory
		wantMessage  string
	}{
		"invalid type": {
			args:         []string{"add", "Bogus", "X"},
			wantCategory: clierrors.Argument,
			wantMessage:  "invalid change type",
		},
		"invalid date": {
			args:         []string{"add", "Added", "X", "--version", "1.0.0", "--date", "2025-02-30"},
			wantCategory: clierrors.Argument,
			wantMessage:  "invalid date",
		},
		"empty message": {
			args:         []string{"add", "Added", "   "},
			wantCategory: clierrors.Schema,
			wantMessage:  "message is empty",
		},
		"missing changelog": {
			args:         []string{"add", "Added", "X"},
			noFile:       true,
			wantCategory: clierrors.IO,
			wantMessage:  "changelog not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := newWorkspace(t)
			var path string
			if !tt.noFile {
				path = writeChangelog(t, dir, sampleChangelog)
			}

			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)

			cliErr := clierrors.FromEngine(err)
			assert.Equal(t, tt.wantCategory, cliErr.Category)
			assert.Contains(t, cliErr.Message, tt.wantMessage)

			if path != "" {
				assert.Equal(t, sampleChangelog, readFile(t, path), "file must be unchanged")
			}
		})
	}
}

func TestAdd_RequiresTwoArgs(t *testing.T) {
	newWorkspace(t)

	_, _, err := executeCommand(t, "add", "Added")
	assert.Error(t, err)
}
