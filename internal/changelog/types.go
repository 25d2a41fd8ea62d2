package changelog

import "strings"

// Changelog is the structured view of a changelog: the versions in document
// order (newest first) with their entries grouped by category. It is both
// the YAML import source format and the export format.
type Changelog struct {
	Project    string    `yaml:"project,omitempty" json:"project,omitempty"`
	Repository string    `yaml:"repository,omitempty" json:"repository,omitempty"`
	Versions   []Version `yaml:"versions" json:"versions"`
}

// Version is one version section. Version is a release label such as
// "1.2.0" or the Unreleased sentinel; Date is empty for Unreleased.
type Version struct {
	Version string  `yaml:"version" json:"version"`
	Date    string  `yaml:"date,omitempty" json:"date,omitempty"`
	Yanked  bool    `yaml:"yanked,omitempty" json:"yanked,omitempty"`
	Changes Changes `yaml:"changes" json:"changes"`
}

// Changes groups entries by Keep a Changelog category.
// Empty categories are omitted when rendering.
type Changes struct {
	Added      []string `yaml:"added,omitempty" json:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty" json:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty" json:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty" json:"security,omitempty"`
}

// Entry is a flattened single entry with its version and category.
type Entry struct {
	Text     string `yaml:"text" json:"text"`
	Category string `yaml:"category" json:"category"`
	Version  string `yaml:"version" json:"version"`
}

// list returns a pointer to the slice holding category t.
func (c *Changes) list(t ChangeType) *[]string {
	switch t {
	case Added:
		return &c.Added
	case Changed:
		return &c.Changed
	case Deprecated:
		return &c.Deprecated
	case Removed:
		return &c.Removed
	case Fixed:
		return &c.Fixed
	default:
		return &c.Security
	}
}

// Get returns the entries of category t.
func (c Changes) Get(t ChangeType) []string {
	return *c.list(t)
}

// Add appends text to category t.
func (c *Changes) Add(t ChangeType, text string) {
	l := c.list(t)
	*l = append(*l, text)
}

// IsEmpty returns true if no category has entries.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	n := 0
	for _, t := range ChangeTypes() {
		n += len(c.Get(t))
	}
	return n
}

// IsUnreleased returns true if this version holds unreleased changes.
func (v Version) IsUnreleased() bool {
	return isUnreleased(v.Version)
}

// Entries returns the version's entries in category order.
func (v Version) Entries() []Entry {
	entries := make([]Entry, 0, v.Changes.Count())
	for _, t := range ChangeTypes() {
		for _, text := range v.Changes.Get(t) {
			entries = append(entries, Entry{Text: text, Category: t.Key(), Version: v.Version})
		}
	}
	return entries
}

// NormalizeVersion lowercases a label and strips a "v" prefix so that
// "v0.6.0" and "0.6.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
