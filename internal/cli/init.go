package cli

import (
	"os"
	"path/filepath"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/git"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/spf13/cobra"
)

var (
	initProjectFlag   string
	initOwnerRepoFlag string
	initForceFlag     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new changelog from the Keep a Changelog template",
	Long: `Create a new changelog with a title, the standard preamble, and an
empty [Unreleased] section.

The project name defaults to the git repository name, and the owner/repo
for the [Unreleased] link reference is taken from --owner-repo, the
owner_repo config key, or the git remote.`,
	Example: `  changelogmd init
  changelogmd init --project widget --owner-repo acme/widget
  changelogmd init --file docs/CHANGELOG.md --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	initCmd.GroupID = GroupSetup
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initProjectFlag, "project", "", "Project name for the preamble (default: repository name)")
	initCmd.Flags().StringVar(&initOwnerRepoFlag, "owner-repo", "", "GitHub owner/repo for link references")
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing changelog")
}

func runInit(cmd *cobra.Command) error {
	path := changelogPath()
	if fileExists(path) && !initForceFlag {
		return clierrors.ChangelogExists(path)
	}

	dir := changelogDir(path)
	project := initProjectFlag
	if project == "" {
		project = defaultProjectName(dir)
	}

	doc := changelog.NewFromTemplate(project, resolveOwnerRepo(nil, initOwnerRepoFlag, dir))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := saveDocument(doc, path); err != nil {
		return err
	}

	output.NewPrinter(cmd.OutOrStdout(), isPlain()).Success("Created %s", path)
	return nil
}

// defaultProjectName is the repository name, or the directory name outside a repository.
func defaultProjectName(dir string) string {
	if name, err := git.ProjectName(dir); err == nil {
		return name
	}
	return filepath.Base(dir)
}
