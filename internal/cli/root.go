// Package cli implements the changelogmd command line: adding entries,
// validating, viewing, extracting, exporting, importing, and creating
// Keep a Changelog files.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/changelogmd/internal/config"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/git"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupEdit    = "edit"
	GroupInspect = "inspect"
	GroupSetup   = "setup"
)

var (
	fileFlag   string
	configFlag string
	plainFlag  bool
	debugFlag  bool

	// appConfig is loaded before every command runs.
	appConfig *config.Configuration
	// debugf is a no-op unless --debug is set.
	debugf = func(string, ...any) {}
)

var rootCmd = &cobra.Command{
	Use:   "changelogmd",
	Short: "Edit and validate Keep a Changelog files",
	Long: `changelogmd edits and validates CHANGELOG.md files that follow
Keep a Changelog 1.1.0.

Entries are inserted in place: the target version and change-type sections
are created when missing, change types stay in their canonical order, and
the link references at the bottom of the file are regenerated. Everything
else in the file is left untouched.`,
	Example: `  # Record a change under [Unreleased]
  changelogmd add Added "Support for --watch"

  # Record a change under a release
  changelogmd add Fixed "Crash on empty input" --version 1.2.1

  # Check a changelog against Keep a Changelog
  changelogmd validate CHANGELOG.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupEdit, Title: "Editing:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspecting:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
	)

	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Changelog file (default from config: CHANGELOG.md)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors/icons)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output to stderr")
}

// initRuntime loads configuration and wires the debug logger.
func initRuntime(cmd *cobra.Command) error {
	debugf = func(string, ...any) {}
	git.SetDebugLogger(nil)
	if debugFlag {
		debugf = output.DebugLogger(cmd.ErrOrStderr())
		git.SetDebugLogger(debugf)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile:    configFlag,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigParseError(configSource(), err)
	}
	appConfig = cfg
	debugf("config: changelog_path=%s owner_repo=%q detect_remote=%t jobs=%d",
		cfg.ChangelogPath, cfg.OwnerRepo, cfg.DetectRemote, cfg.Jobs)
	return nil
}

func configSource() string {
	if configFlag != "" {
		return configFlag
	}
	return config.ProjectConfigPath()
}

// Execute runs the root command and reports any error on stderr.
// Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintError(rootCmd.ErrOrStderr(), clierrors.FromEngine(err), isPlain())
	}
	return err
}

// isPlain reports whether styling is disabled by flag or config.
func isPlain() bool {
	if plainFlag {
		return true
	}
	return appConfig != nil && appConfig.Plain
}
