package changelog

import (
	"fmt"
	"strings"
)

// ChangeType is one of the six Keep a Changelog categories.
// The numeric value is the category's rendering priority.
type ChangeType int

const (
	Added ChangeType = iota
	Changed
	Deprecated
	Removed
	Fixed
	Security
)

var changeTypeNames = [...]string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

// String returns the canonical header spelling, e.g. "Added".
func (t ChangeType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
	return changeTypeNames[t]
}

// Valid reports whether t is one of the six categories.
func (t ChangeType) Valid() bool {
	return t >= Added && t <= Security
}

// Priority returns the position of t in the canonical section order.
func (t ChangeType) Priority() int {
	return int(t)
}

// Key returns the lowercase identifier used in YAML sources and entries.
func (t ChangeType) Key() string {
	return strings.ToLower(t.String())
}

// ChangeTypes returns all categories in canonical order.
func ChangeTypes() []ChangeType {
	return []ChangeType{Added, Changed, Deprecated, Removed, Fixed, Security}
}

// ValidCategories returns the list of valid Keep a Changelog categories
// in their standard rendering order.
func ValidCategories() []string {
	return append([]string(nil), changeTypeNames[:]...)
}

// ParseChangeType resolves a category name, ignoring case.
// Returns a SchemaError for anything outside the six categories.
func ParseChangeType(s string) (ChangeType, error) {
	name := strings.TrimSpace(s)
	for _, t := range ChangeTypes() {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, schemaError("parse change type",
		fmt.Errorf("invalid section %q (valid sections: %s)", s, strings.Join(ValidCategories(), ", ")))
}

// lookupChangeType is the exact-spelling match used when reading headers.
func lookupChangeType(name string) (ChangeType, bool) {
	for _, t := range ChangeTypes() {
		if name == t.String() {
			return t, true
		}
	}
	return 0, false
}
