package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	"github.com/spf13/cobra"
)

var showLastFlag int

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View changelog entries",
	Long: `View changelog entries in the terminal.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry count.`,
	Example: `  changelogmd show              # Show 5 most recent entries
  changelogmd show v1.2.0       # Show all entries for version 1.2.0
  changelogmd show 1.2.0        # Same (v prefix optional)
  changelogmd show unreleased   # Show unreleased changes
  changelogmd show --last 10    # Show 10 most recent entries`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.GroupID = GroupInspect
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of entries to show")
}

func runShow(cmd *cobra.Command, args []string) error {
	log, err := loadOutline(changelogPath())
	if err != nil {
		return err
	}

	opts := formatOptions()

	if len(args) == 1 {
		return showVersion(cmd, log, args[0], opts)
	}
	return showLastEntries(cmd, log, showLastFlag, opts)
}

func showVersion(cmd *cobra.Command, log *changelog.Changelog, version string, opts changelog.FormatOptions) error {
	v, err := log.GetVersion(version)
	if err != nil {
		return versionError(err)
	}
	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

func showLastEntries(cmd *cobra.Command, log *changelog.Changelog, n int, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.GetEntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
