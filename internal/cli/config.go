package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/changelogmd/internal/config"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitUserFlag  bool
	configInitForceFlag bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changelogmd configuration",
	Long: `Manage changelogmd configuration.

Configuration is read from, in increasing priority: built-in defaults, the
user config (~/.config/changelogmd/config.yml), the project config
(.changelogmd/config.yml or .changelogmd/config.json), the --config file,
and CHANGELOGMD_* environment variables (a .env file is loaded too).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Example: `  changelogmd config init          # .changelogmd/config.yml
  changelogmd config init --user   # ~/.config/changelogmd/config.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupSetup
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitUserFlag, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(effectiveConfig(appConfig)); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// effectiveConfig renders durations as strings so the output can be read back.
func effectiveConfig(cfg *config.Configuration) map[string]any {
	return map[string]any{
		"changelog_path": cfg.ChangelogPath,
		"owner_repo":     cfg.OwnerRepo,
		"detect_remote":  cfg.DetectRemote,
		"remote_name":    cfg.RemoteName,
		"plain":          cfg.Plain,
		"output_format":  cfg.OutputFormat,
		"jobs":           cfg.Jobs,
		"watch_debounce": cfg.WatchDebounce.String(),
	}
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configInitUserFlag {
		var err error
		if path, err = config.UserConfigPath(); err != nil {
			return clierrors.NewConfigError(fmt.Sprintf("cannot locate user config directory: %v", err))
		}
	}

	if fileExists(path) && !configInitForceFlag {
		return clierrors.NewArgumentError(
			fmt.Sprintf("config already exists: %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	output.NewPrinter(cmd.OutOrStdout(), isPlain()).Success("Wrote %s", path)
	return nil
}
