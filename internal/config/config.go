// Package config provides hierarchical configuration management for changelogmd using koanf.
// Configuration is loaded with priority: environment variables (a .env file included)
// > explicit --config file > project config (.changelogmd/config.yml or config.json)
// > user config (~/.config/changelogmd/config.yml) > defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/changelogmd/internal/yamlcheck"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as config keys.
const EnvPrefix = "CHANGELOGMD_"

// Configuration represents the changelogmd CLI configuration
type Configuration struct {
	// ChangelogPath is the changelog edited when --file is not given.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" validate:"required"`

	// OwnerRepo is the GitHub "owner/repo" slug used for link references when
	// the changelog has no github.com links yet.
	OwnerRepo string `koanf:"owner_repo" yaml:"owner_repo" validate:"omitempty,owner_repo"`

	// DetectRemote reads the slug from the git remote when OwnerRepo is empty.
	DetectRemote bool `koanf:"detect_remote" yaml:"detect_remote"`
	// RemoteName is the git remote consulted by DetectRemote.
	RemoteName string `koanf:"remote_name" yaml:"remote_name" validate:"required"`

	// Plain disables colors and icons.
	Plain bool `koanf:"plain" yaml:"plain"`
	// OutputFormat is the default report format for validate.
	OutputFormat string `koanf:"output_format" yaml:"output_format" validate:"oneof=text json yaml"`

	// Jobs bounds concurrent validation of multiple files.
	Jobs int `koanf:"jobs" yaml:"jobs" validate:"min=1,max=64"`
	// WatchDebounce coalesces bursts of file events in validate --watch.
	WatchDebounce time.Duration `koanf:"watch_debounce" yaml:"watch_debounce" validate:"gte=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigFile is an explicit config file (--config). YAML unless it ends in .json.
	ConfigFile string
	// ProjectDir overrides the project config directory (default: .changelogmd)
	ProjectDir string
	// EnvFile overrides the dotenv file (default: .env). Missing files are ignored.
	EnvFile string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectDir, warningWriter); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if err := loadConfigFile(k, opts.ConfigFile, "explicit"); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k, opts.EnvFile); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/changelogmd/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return err
	}
	return nil
}

// loadProjectConfig loads config.yml from the project directory, falling back
// to config.json. Warns if both exist.
func loadProjectConfig(k *koanf.Koanf, dir string, warningWriter io.Writer) error {
	if dir == "" {
		dir = ProjectConfigDir()
	}
	yamlPath := filepath.Join(dir, projectConfigYAML)
	jsonPath := filepath.Join(dir, projectConfigJSON)

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if jsonExists {
			fmt.Fprintf(warningWriter, "Warning: both %s and %s exist; using %s\n\n", yamlPath, jsonPath, yamlPath)
		}
		return loadConfigFile(k, yamlPath, "project")
	case jsonExists:
		return loadConfigFile(k, jsonPath, "project")
	}
	return nil
}

// loadConfigFile reads a YAML or JSON config file once, checks its syntax and
// merges it into k.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return fmt.Errorf("reading %s config: %w", configType, err)
	}

	var parser koanf.Parser = yaml.Parser()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	} else if err := yamlcheck.Check(data, path); err != nil {
		return fmt.Errorf("invalid %s config: %w", configType, err)
	}

	if err := k.Load(rawBytes(data), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// rawBytes hands already-read file content to koanf.
type rawBytes []byte

func (b rawBytes) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("rawBytes provider does not support Read")
}

// loadEnvironmentConfig loads the dotenv file into the process environment
// (existing variables win) and then CHANGELOGMD_* overrides.
func loadEnvironmentConfig(k *koanf.Koanf, envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGELOGMD_OWNER_REPO -> owner_repo
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
