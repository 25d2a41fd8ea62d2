package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelogmd/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for changelogmd",
	Example: `  # Show version info
  changelogmd version

  # Plain output (for scripts)
  changelogmd version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command) {
	info := version.Get()
	out := cmd.OutOrStdout()

	if isPlain() {
		fmt.Fprintf(out, "changelogmd %s\n", info.Version)
		fmt.Fprintf(out, "commit: %s\n", info.Commit)
		fmt.Fprintf(out, "built: %s\n", info.BuildDate)
		fmt.Fprintf(out, "go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "platform: %s\n", info.Platform)
		return
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	header := cyan("changelogmd") + " " + info.Version
	if version.IsDevBuild() {
		header += " " + dim("(development build)")
	}
	fmt.Fprintln(out, header)
	rows := []struct {
		label string
		value string
	}{
		{"Commit", version.ShortCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("%-9s", row.label)), row.value)
	}
}
