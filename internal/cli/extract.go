package cli

import (
	"github.com/ariel-frischer/changelogmd/internal/changelog"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

The entries of the version are written to stdout grouped by change type,
in a form suitable for GitHub release notes.`,
	Example: `  changelogmd extract v1.2.0      # Extract notes for version 1.2.0
  changelogmd extract 1.2.0       # Same (v prefix optional)
  changelogmd extract unreleased  # Extract unreleased changes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	extractCmd.GroupID = GroupInspect
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, version string) error {
	log, err := loadOutline(changelogPath())
	if err != nil {
		return err
	}

	v, err := log.GetVersion(version)
	if err != nil {
		return versionError(err)
	}

	return changelog.RenderReleaseNotes(v, cmd.OutOrStdout())
}
