package changelog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changelogmd/internal/yamlcheck"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SourceError describes an invalid field in a YAML changelog source.
type SourceError struct {
	Field   string
	Message string
}

func (e *SourceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// LoadSource reads and checks a YAML changelog source file.
func LoadSource(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open source", path, err)
	}
	defer f.Close()

	c, err := LoadSourceFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadSourceFromReader decodes and checks a YAML changelog source.
func LoadSourceFromReader(r io.Reader) (*Changelog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read source", "", err)
	}
	if err := yamlcheck.Check(data, ""); err != nil {
		return nil, schemaError("parse source", err)
	}

	var c Changelog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, schemaError("parse source", fmt.Errorf("parsing changelog YAML: %w", err))
	}
	if err := ValidateSource(&c); err != nil {
		return nil, schemaError("check source", err)
	}
	return &c, nil
}

// ValidateSource checks the constraints an import source must satisfy.
func ValidateSource(c *Changelog) error {
	seen := make(map[string]bool)
	unreleased := 0

	for i, v := range c.Versions {
		field := fmt.Sprintf("versions[%d]", i)
		if err := validateSourceVersion(v, field); err != nil {
			return err
		}

		key := NormalizeVersion(v.Version)
		if seen[key] {
			return &SourceError{Field: field + ".version", Message: fmt.Sprintf("duplicate version %q", v.Version)}
		}
		seen[key] = true

		if v.IsUnreleased() {
			unreleased++
		}
	}

	if unreleased > 1 {
		return &SourceError{Field: "versions", Message: "only one unreleased version is allowed"}
	}
	return nil
}

func validateSourceVersion(v Version, field string) error {
	if strings.TrimSpace(v.Version) == "" {
		return &SourceError{Field: field + ".version", Message: "required field is empty"}
	}

	if v.IsUnreleased() {
		if v.Yanked {
			return &SourceError{Field: field + ".yanked", Message: "unreleased changes cannot be yanked"}
		}
	} else {
		if !isFullSemver(v.Version) {
			return &SourceError{Field: field + ".version", Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", v.Version)}
		}
		if v.Date == "" {
			return &SourceError{Field: field + ".date", Message: "date is required for released versions"}
		}
	}

	if v.Date != "" {
		if err := ValidateDate(v.Date); err != nil {
			return &SourceError{Field: field + ".date", Message: fmt.Sprintf("invalid date %q (expected: YYYY-MM-DD)", v.Date)}
		}
	}

	if v.Changes.IsEmpty() {
		return &SourceError{Field: field + ".changes", Message: "at least one change entry is required"}
	}

	for _, t := range ChangeTypes() {
		for j, text := range v.Changes.Get(t) {
			if strings.TrimSpace(text) == "" {
				return &SourceError{Field: fmt.Sprintf("%s.changes.%s[%d]", field, t.Key(), j), Message: "change entry cannot be empty"}
			}
			if strings.ContainsAny(text, "\r\n") {
				return &SourceError{Field: fmt.Sprintf("%s.changes.%s[%d]", field, t.Key(), j), Message: "change entry must be a single line"}
			}
		}
	}
	return nil
}

// isFullSemver rejects the vMAJOR and vMAJOR.MINOR shorthands that
// semver.IsValid accepts.
func isFullSemver(label string) bool {
	ref := versionRef(label)
	core, _, _ := strings.Cut(ref, "+")
	return semver.IsValid(ref) && semver.Canonical(ref) == core
}
