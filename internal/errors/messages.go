package errors

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
)

// Common error messages for the changelogmd CLI.

// InvalidChangeType creates an error for a change type outside the six categories.
func InvalidChangeType(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid change type: %q", provided),
		"changelogmd add <type> \"<message>\"",
		"Valid types: "+strings.Join(changelog.ValidCategories(), ", "),
		"Example: changelogmd add Fixed \"Crash when the file is empty\"",
	)
}

// InvalidDate creates an error for a malformed --date value.
func InvalidDate(provided string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid date: %q", provided),
		"Use the ISO 8601 calendar form YYYY-MM-DD",
		"Example: --date 2025-03-15",
	)
}

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return &CLIError{
		Category: IO,
		Message:  fmt.Sprintf("changelog not found: %s", path),
		Remediation: []string{
			"Run 'changelogmd init' to create one",
			"Or point to an existing file with --file",
		},
	}
}

// ChangelogExists creates an error when init would overwrite a file.
func ChangelogExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("changelog already exists: %s", path),
		"Use --force to overwrite it",
		"Or choose another location with --file",
	)
}

// VersionNotFound creates an error for a version missing from the changelog.
func VersionNotFound(err *changelog.VersionNotFoundError) *CLIError {
	remediation := []string{"Run 'changelogmd show' to list the versions"}
	if len(err.Available) > 0 {
		remediation = append(remediation, "Available: "+strings.Join(err.Available, ", "))
	}
	return &CLIError{
		Category:    Argument,
		Message:     fmt.Sprintf("version not found: %s", err.Version),
		Remediation: remediation,
		Err:         err,
	}
}

// InvalidFormat creates an error for an unsupported --format value.
func InvalidFormat(provided string, valid ...string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format: %q", provided),
		"Valid formats: "+strings.Join(valid, ", "),
	)
}

// InvalidSource creates an error for a YAML changelog source that fails checks.
func InvalidSource(location string, err error) *CLIError {
	return &CLIError{
		Category: Schema,
		Message:  fmt.Sprintf("invalid changelog source %s: %v", location, err),
		Remediation: []string{
			"Each version needs a version label and at least one change",
			"Released versions need a semver label (X.Y.Z) and a YYYY-MM-DD date",
		},
		Err: err,
	}
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load config file: %s", path),
		"Check the file for YAML or JSON syntax errors",
		"Environment variables use the CHANGELOGMD_ prefix, e.g. CHANGELOGMD_OWNER_REPO",
	)
}

// FileNotWritable creates an error when the changelog cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return &CLIError{
		Category: IO,
		Message:  fmt.Sprintf("cannot write to file: %s: %v", path, err),
		Remediation: []string{
			"Check file permissions: ls -la " + path,
			"Ensure the parent directory exists and is writable",
		},
		Err: err,
	}
}
