package cli

import (
	"errors"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/spf13/cobra"
)

var importOwnerRepoFlag string

var importCmd = &cobra.Command{
	Use:   "import <changelog.yaml>",
	Short: "Merge a YAML changelog source into the markdown changelog",
	Long: `Merge a YAML changelog source into the markdown changelog.

The source lists versions newest first, each with a version label, a date
for releases, an optional yanked flag, and entries per change type:

  project: widget
  repository: acme/widget
  versions:
    - version: unreleased
      changes:
        added:
          - Support for --watch
    - version: 1.0.0
      date: 2025-01-15
      changes:
        added:
          - Initial release

Releases are replayed oldest first, so the result is ordered newest first.
Entries already present in the changelog are skipped, so importing the same
source twice changes nothing. The changelog is created from the template
when it does not exist yet. The source may be an http(s) URL.`,
	Example: `  changelogmd import changelog.yaml
  changelogmd import changelog.yaml --owner-repo acme/widget
  changelogmd import https://example.com/widget/changelog.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0])
	},
}

func init() {
	importCmd.GroupID = GroupEdit
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importOwnerRepoFlag, "owner-repo", "", "GitHub owner/repo for link references (default from source)")
}

func runImport(cmd *cobra.Command, source string) error {
	src, err := loadImportSource(cmd, source)
	if err != nil {
		return err
	}

	path := changelogPath()
	var doc *changelog.Document
	if fileExists(path) {
		if doc, err = loadDocument(path); err != nil {
			return err
		}
	} else {
		debugf("%s does not exist; starting from template", path)
		doc = changelog.Parse(changelog.Template(src.Project))
	}

	ownerRepo := importOwnerRepoFlag
	if ownerRepo == "" && src.Repository == "" {
		ownerRepo = resolveOwnerRepo(doc, "", changelogDir(path))
	}

	res, err := doc.Import(src, ownerRepo)
	if err != nil {
		var srcErr *changelog.SourceError
		if errors.As(err, &srcErr) {
			return clierrors.InvalidSource(source, err)
		}
		return err
	}

	if err := saveDocument(doc, path); err != nil {
		return err
	}

	p := output.NewPrinter(cmd.OutOrStdout(), isPlain())
	if res.Skipped > 0 {
		p.Info("Skipped %d entries already present", res.Skipped)
	}
	if res.Yanked > 0 {
		p.Info("Marked %d versions as yanked", res.Yanked)
	}
	if res.LinksUpdated {
		p.Info("Updated link references")
	}
	p.Success("Imported %d entries (%d new versions) into %s", res.Entries, res.Versions, path)
	return nil
}

func loadImportSource(cmd *cobra.Command, source string) (*changelog.Changelog, error) {
	var (
		src *changelog.Changelog
		err error
	)
	if changelog.IsRemote(source) {
		src, err = changelog.LoadRemoteSource(cmd.Context(), source)
	} else {
		src, err = changelog.LoadSource(source)
	}
	if err != nil {
		if changelog.IsSchemaError(err) {
			return nil, clierrors.InvalidSource(source, err)
		}
		return nil, err
	}
	return src, nil
}
