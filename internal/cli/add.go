package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/spf13/cobra"
)

var (
	addVersionFlag   string
	addDateFlag      string
	addOwnerRepoFlag string
)

var addCmd = &cobra.Command{
	Use:   "add <type> <message>",
	Short: "Add an entry to the changelog",
	Long: `Add a single entry to the changelog.

<type> is one of Added, Changed, Deprecated, Removed, Fixed, Security
(case-insensitive). The entry goes under [Unreleased] unless --version names
a release. Missing version and change-type sections are created in place,
and the link references at the end of the file are regenerated when a new
section is created.

Link references need a GitHub owner/repo. It is read from existing links,
then --owner-repo, then the owner_repo config key, then the git remote.`,
	Example: `  changelogmd add Added "Support for --watch"
  changelogmd add fixed "Crash on empty input" --version 1.2.1
  changelogmd add Security "Bump TLS minimum" --version 2.0.0 --date 2025-03-15`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args)
	},
}

func init() {
	addCmd.GroupID = GroupEdit
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addVersionFlag, "version", "", "Target release version (default: Unreleased)")
	addCmd.Flags().StringVar(&addDateFlag, "date", "", "Release date YYYY-MM-DD for a new version (default: today)")
	addCmd.Flags().StringVar(&addOwnerRepoFlag, "owner-repo", "", "GitHub owner/repo for link references")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if _, err := changelog.ParseChangeType(args[0]); err != nil {
		return clierrors.InvalidChangeType(args[0])
	}
	if addDateFlag != "" {
		if err := changelog.ValidateDate(addDateFlag); err != nil {
			return clierrors.InvalidDate(addDateFlag)
		}
	}

	path := changelogPath()
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	res, err := doc.AddEntry(changelog.EntryOptions{
		Type:      args[0],
		Message:   args[1],
		Version:   addVersionFlag,
		Date:      addDateFlag,
		OwnerRepo: resolveOwnerRepo(doc, addOwnerRepoFlag, changelogDir(path)),
	})
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}

	if err := saveDocument(doc, path); err != nil {
		return err
	}

	printAddResult(cmd, res, args[1])
	return nil
}

func printAddResult(cmd *cobra.Command, res *changelog.EntryResult, message string) {
	p := output.NewPrinter(cmd.OutOrStdout(), isPlain())

	if res.CreatedUnreleased {
		p.Info("Created [%s] section", changelog.UnreleasedLabel)
	}
	if res.CreatedVersion {
		p.Info("Created version [%s] - %s", res.Version, res.Date)
	}
	if res.CreatedSection {
		p.Info("Created ### %s section", res.Type)
	}
	if res.LinksUpdated {
		p.Info("Updated link references")
	}

	p.Success("Added to [%s] > %s: %s", res.Version, res.Type, message)
}
