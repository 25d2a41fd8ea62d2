package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version   string
	Available []string
}

func (e *VersionNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("version %q not found (changelog has no versions)", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.Available, ", "))
}

// GetVersion looks up a version by label. "v1.2.0" and "1.2.0" match the same
// release and "unreleased" matches the Unreleased section in any case.
func (c *Changelog) GetVersion(label string) (*Version, error) {
	want := NormalizeVersion(label)
	for i := range c.Versions {
		if NormalizeVersion(c.Versions[i].Version) == want {
			return &c.Versions[i], nil
		}
	}
	return nil, &VersionNotFoundError{Version: label, Available: c.ListVersions()}
}

// ListVersions returns the version labels in document order.
func (c *Changelog) ListVersions() []string {
	labels := make([]string, len(c.Versions))
	for i, v := range c.Versions {
		labels[i] = v.Version
	}
	return labels
}

// GetUnreleased returns the Unreleased section, or nil if there is none.
func (c *Changelog) GetUnreleased() *Version {
	for i := range c.Versions {
		if c.Versions[i].IsUnreleased() {
			return &c.Versions[i]
		}
	}
	return nil
}

// GetLatestRelease returns the newest dated release, or nil.
func (c *Changelog) GetLatestRelease() *Version {
	for i := range c.Versions {
		if !c.Versions[i].IsUnreleased() {
			return &c.Versions[i]
		}
	}
	return nil
}

// AllEntries returns every entry, newest version first and in category
// order within a version.
func (c *Changelog) AllEntries() []Entry {
	var entries []Entry
	for _, v := range c.Versions {
		entries = append(entries, v.Entries()...)
	}
	return entries
}

// GetLastN returns at most n of the newest entries.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// GetEntryCount returns the total number of entries across all versions.
func (c *Changelog) GetEntryCount() int {
	n := 0
	for _, v := range c.Versions {
		n += v.Changes.Count()
	}
	return n
}
