package config

import (
	"os"
	"path/filepath"
)

const (
	appName           = "changelogmd"
	projectConfigYAML = "config.yml"
	projectConfigJSON = "config.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changelogmd/config.yml
// - macOS: ~/Library/Application Support/changelogmd/config.yml
// - Windows: %APPDATA%\changelogmd\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, projectConfigYAML), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .changelogmd/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), projectConfigYAML)
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return "." + appName
}
