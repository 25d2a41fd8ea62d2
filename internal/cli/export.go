package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormats = []string{"yaml", "json"}

var exportFormatFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the changelog as YAML or JSON",
	Long: `Export the parsed changelog as structured data.

The output has the same shape that 'changelogmd import' reads: a list of
versions with their date, yanked flag, and entries per change type.`,
	Example: `  changelogmd export > changelog.yaml
  changelogmd export --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd)
	},
}

func init() {
	exportCmd.GroupID = GroupInspect
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormatFlag, "format", "yaml", "Output format: yaml, json")
}

func runExport(cmd *cobra.Command) error {
	if !slices.Contains(exportFormats, exportFormatFlag) {
		return clierrors.InvalidFormat(exportFormatFlag, exportFormats...)
	}

	log, err := loadOutline(changelogPath())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportFormatFlag == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(log); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
