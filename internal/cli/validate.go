package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/ariel-frischer/changelogmd/internal/watch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportFormats = []string{"text", "json", "yaml"}

var (
	validateFormatFlag string
	validateJobsFlag   int
	validateWatchFlag  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Validate changelogs against Keep a Changelog 1.1.0",
	Long: `Validate one or more changelogs against Keep a Changelog 1.1.0.

Each file is checked for its name, title, version headers, dates, change-type
sections, list items, and link references. Errors make the changelog invalid;
warnings and info never do. http(s) URLs are fetched and validated too.

Exits 0 when no file has errors, 1 otherwise. With --watch, files are
re-validated whenever they change until interrupted.`,
	Example: `  changelogmd validate
  changelogmd validate CHANGELOG.md docs/CHANGELOG.md --jobs 2
  changelogmd validate --format json
  changelogmd validate https://raw.githubusercontent.com/acme/widget/main/CHANGELOG.md
  changelogmd validate --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	validateCmd.GroupID = GroupInspect
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFormatFlag, "format", "", "Report format: text, json, yaml (default from config: text)")
	validateCmd.Flags().IntVarP(&validateJobsFlag, "jobs", "j", 0, "Files validated concurrently (default from config: 4)")
	validateCmd.Flags().BoolVarP(&validateWatchFlag, "watch", "w", false, "Re-validate when files change")
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{changelogPath()}
	}

	format := validateFormatFlag
	if format == "" {
		format = appConfig.OutputFormat
	}
	if !slices.Contains(reportFormats, format) {
		return clierrors.InvalidFormat(format, reportFormats...)
	}

	jobs := validateJobsFlag
	if jobs <= 0 {
		jobs = appConfig.Jobs
	}

	valid, err := validateOnce(cmd, paths, format, jobs)
	if err != nil {
		return err
	}

	if validateWatchFlag {
		return watchAndValidate(cmd, paths, format, jobs)
	}

	if !valid {
		return NewExitError(ExitFailure)
	}
	return nil
}

// validateOnce validates all paths and writes the reports. It returns whether all were valid.
func validateOnce(cmd *cobra.Command, paths []string, format string, jobs int) (bool, error) {
	debugf("validating %d file(s) with %d job(s)", len(paths), jobs)

	reports, err := changelog.ValidateFiles(cmd.Context(), paths, jobs)
	if err != nil {
		return false, fmt.Errorf("validating changelogs: %w", err)
	}

	if err := writeReports(cmd.OutOrStdout(), reports, format); err != nil {
		return false, fmt.Errorf("writing report: %w", err)
	}

	return slices.IndexFunc(reports, func(r *changelog.Report) bool { return !r.Valid() }) < 0, nil
}

func writeReports(w io.Writer, reports []*changelog.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	}

	opts := formatOptions()
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := changelog.FormatReport(r, w, opts); err != nil {
			return err
		}
	}
	return nil
}

// watchAndValidate re-validates local paths on change until the command context ends.
func watchAndValidate(cmd *cobra.Command, paths []string, format string, jobs int) error {
	local := slices.DeleteFunc(slices.Clone(paths), changelog.IsRemote)
	if len(local) == 0 {
		return clierrors.NewArgumentError("--watch needs at least one local file", "Remote URLs cannot be watched")
	}

	w, err := watch.New(local, appConfig.WatchDebounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	w.ErrorHandler = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: watcher: %v\n", err)
	}

	out := cmd.OutOrStdout()
	message := fmt.Sprintf("Watching %d file(s) for changes (Ctrl+C to stop)", len(local))
	sp := output.NewSpinner(out, message, isPlain())
	if !sp.Active() {
		fmt.Fprintf(out, "\n%s\n", message)
	}
	sp.Start()

	err = w.Run(cmd.Context(), func(changed []string) {
		sp.Stop()
		debugf("changed: %v", changed)
		fmt.Fprintln(out)
		if _, err := validateOnce(cmd, changed, format, jobs); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		if !sp.Active() {
			fmt.Fprintf(out, "\n%s\n", message)
		}
		sp.Start()
	})
	sp.Stop()
	return err
}
