// Package changelog edits and validates CHANGELOG.md files written in the
// Keep a Changelog convention (https://keepachangelog.com/en/1.1.0/).
//
// This package implements:
//   - A line-addressed Document model loaded from and saved to disk
//   - Locator scans for version headers, change-type subsections, items and
//     the trailing link-reference block
//   - AddEntry, which appends one item and creates any missing structure in
//     its canonical position
//   - Link reference synthesis from the version headers present
//   - A read-only validator producing errors, warnings and info
//   - Structured views (Outline) used for display, export and YAML import
//
// Every operation works on the current lines of a Document; positions are
// never cached across a mutation.
package changelog
