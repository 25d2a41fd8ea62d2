package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/changelogmd/internal/yamlcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceYAML = `project: widget
repository: acme/widget
versions:
  - version: unreleased
    changes:
      added:
        - Pending feature
  - version: 1.1.0
    date: "2024-02-01"
    yanked: true
    changes:
      fixed:
        - Crash on empty input
  - version: 1.0.0
    date: "2024-01-01"
    changes:
      added:
        - Initial release
`

func TestLoadSourceFromReader(t *testing.T) {
	t.Parallel()

	c, err := LoadSourceFromReader(strings.NewReader(sourceYAML))
	require.NoError(t, err)
	assert.Equal(t, "widget", c.Project)
	assert.Equal(t, "acme/widget", c.Repository)
	require.Len(t, c.Versions, 3)
	assert.True(t, c.Versions[0].IsUnreleased())
	assert.True(t, c.Versions[1].Yanked)
	assert.Equal(t, []string{"Initial release"}, c.Versions[2].Changes.Added)
}

func TestLoadSourceFromReader_Errors(t *testing.T) {
	t.Parallel()

	version := func(body string) string {
		return "versions:\n" + body
	}

	tests := map[string]struct {
		yaml       string
		wantErrMsg string
	}{
		"malformed yaml": {
			yaml:       "versions: [",
			wantErrMsg: "parse source",
		},
		"unknown field": {
			yaml:       "projekt: widget\n",
			wantErrMsg: "field projekt not found",
		},
		"missing version": {
			yaml:       version("  - date: \"2024-01-01\"\n    changes:\n      added: [x]\n"),
			wantErrMsg: "versions[0].version: required field is empty",
		},
		"not semver": {
			yaml:       version("  - version: \"1.0\"\n    date: \"2024-01-01\"\n    changes:\n      added: [x]\n"),
			wantErrMsg: `invalid semver format "1.0"`,
		},
		"release without date": {
			yaml:       version("  - version: 1.0.0\n    changes:\n      added: [x]\n"),
			wantErrMsg: "versions[0].date: date is required for released versions",
		},
		"bad date": {
			yaml:       version("  - version: 1.0.0\n    date: \"2024-02-30\"\n    changes:\n      added: [x]\n"),
			wantErrMsg: `invalid date "2024-02-30"`,
		},
		"no changes": {
			yaml:       version("  - version: 1.0.0\n    date: \"2024-01-01\"\n    changes: {}\n"),
			wantErrMsg: "at least one change entry is required",
		},
		"blank entry": {
			yaml:       version("  - version: 1.0.0\n    date: \"2024-01-01\"\n    changes:\n      fixed: [\"  \"]\n"),
			wantErrMsg: "versions[0].changes.fixed[0]: change entry cannot be empty",
		},
		"multi-line entry": {
			yaml:       version("  - version: 1.0.0\n    date: \"2024-01-01\"\n    changes:\n      fixed:\n        - |\n          one\n          two\n"),
			wantErrMsg: "change entry must be a single line",
		},
		"duplicate version": {
			yaml:       version("  - version: 1.0.0\n    date: \"2024-01-01\"\n    changes:\n      added: [x]\n  - version: v1.0.0\n    date: \"2024-01-01\"\n    changes:\n      added: [y]\n"),
			wantErrMsg: `versions[1].version: duplicate version "v1.0.0"`,
		},
		"two unreleased": {
			yaml:       version("  - version: unreleased\n    changes:\n      added: [x]\n  - version: Unreleased\n    changes:\n      added: [y]\n"),
			wantErrMsg: "duplicate version",
		},
		"yanked unreleased": {
			yaml:       version("  - version: unreleased\n    yanked: true\n    changes:\n      added: [x]\n"),
			wantErrMsg: "unreleased changes cannot be yanked",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadSourceFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, IsSchemaError(err))
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestLoadSourceFromReader_SyntaxErrorHasPosition(t *testing.T) {
	t.Parallel()

	broken := "project: widget\nversions:\n  - version: \"1.0.0\n    date: 2024-01-01\n"
	_, err := LoadSourceFromReader(strings.NewReader(broken))
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))

	var se *yamlcheck.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.GreaterOrEqual(t, se.Line, 3)
}

func TestLoadSource_SyntaxErrorNamesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "changelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: widget\nversions: [\n  {version: 1.0.0\n"), 0o644))

	_, err := LoadSource(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	var se *yamlcheck.SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestValidateSource_ReturnsSourceError(t *testing.T) {
	t.Parallel()

	err := ValidateSource(&Changelog{Versions: []Version{{Version: "1.0.0"}}})
	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "versions[0].date", se.Field)
}

func TestIsFullSemver(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		label string
		want  bool
	}{
		"plain":       {label: "1.2.3", want: true},
		"prefixed":    {label: "v1.2.3", want: true},
		"prerelease":  {label: "1.2.3-rc.1", want: true},
		"build":       {label: "1.2.3+build.5", want: true},
		"major only":  {label: "1", want: false},
		"major minor": {label: "1.2", want: false},
		"garbage":     {label: "latest", want: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isFullSemver(tt.label))
		})
	}
}

func TestLoadSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "changelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sourceYAML), 0o644))

	c, err := LoadSource(path)
	require.NoError(t, err)
	assert.Len(t, c.Versions, 3)

	_, err = LoadSource(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, IsIOError(err))
}
