// Package cli tests the config show and config init commands.
// Related: internal/cli/config.go
// Tags: cli, config
package cli

import (
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/changelogmd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigShow(t *testing.T) {
	newWorkspace(t)
	t.Setenv("CHANGELOGMD_OWNER_REPO", "acme/widget")

	stdout, _, err := executeCommand(t, "config", "show")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "acme/widget", got["owner_repo"])
	assert.Equal(t, false, got["detect_remote"])
	assert.Equal(t, "200ms", got["watch_debounce"])
	assert.Equal(t, 4, got["jobs"])
}

func TestConfigShow_ExplicitFile(t *testing.T) {
	dir := newWorkspace(t)
	cfgPath := filepath.Join(dir, "ci.yml")
	writeFileAt(t, cfgPath, "jobs: 9\n")

	stdout, _, err := executeCommand(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "jobs: 9")
}

func TestConfigInit(t *testing.T) {
	dir := newWorkspace(t)

	stdout, _, err := executeCommand(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, config.ProjectConfigPath())

	got := readFile(t, filepath.Join(dir, config.ProjectConfigPath()))
	assert.Equal(t, config.GetDefaultConfigTemplate(), got)

	_, _, err = executeCommand(t, "config", "init")
	assert.Error(t, err, "existing config needs --force")

	_, _, err = executeCommand(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_User(t *testing.T) {
	newWorkspace(t)

	_, _, err := executeCommand(t, "config", "init", "--user")
	require.NoError(t, err)

	path, err := config.UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), readFile(t, path))
}
