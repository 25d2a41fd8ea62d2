package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a change type.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

var categoryStyles = map[ChangeType]CategoryStyle{
	Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes entries grouped by version with color-coded
// category headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupEntriesByVersion(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeVersionHeader(&Version{Version: group.version}, w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}

		var changes Changes
		for _, e := range group.entries {
			t, _ := ParseChangeType(e.Category)
			changes.Add(t, e.Text)
		}
		if err := formatChanges(&changes, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}
	return nil
}

// FormatVersion writes a single version's entries.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	if err := writeVersionHeader(v, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if v.Changes.IsEmpty() {
		_, err := fmt.Fprintln(w, "\n  (no entries)")
		return err
	}
	return formatChanges(&v.Changes, w, opts, resolveWidth(opts.MaxWidth))
}

type versionGroup struct {
	version string
	entries []Entry
}

func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].version == e.Version {
			groups[n-1].entries = append(groups[n-1].entries, e)
			continue
		}
		groups = append(groups, versionGroup{version: e.Version, entries: []Entry{e}})
	}
	return groups
}

func writeVersionHeader(v *Version, w io.Writer, opts FormatOptions) error {
	header := v.Version
	switch {
	case v.IsUnreleased():
		header = UnreleasedLabel
	case v.Date != "":
		header = fmt.Sprintf("%s (%s)", versionRef(v.Version), v.Date)
	default:
		header = versionRef(v.Version)
	}
	if v.Yanked {
		header += " [YANKED]"
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}
	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func formatChanges(c *Changes, w io.Writer, opts FormatOptions, width int) error {
	for _, t := range ChangeTypes() {
		entries := c.Get(t)
		if len(entries) == 0 {
			continue
		}
		style := categoryStyles[t]

		if opts.Plain {
			fmt.Fprintf(w, "\n### %s\n", t)
		} else {
			colored := style.Color.SprintFunc()
			fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(t.String()))
		}

		for _, text := range entries {
			if err := writeEntry(text, style, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatReport writes a validation report in human-readable form.
func FormatReport(r *Report, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if opts.Plain {
		plain := func(a ...any) string { return fmt.Sprint(a...) }
		red, yellow, green, dim = plain, plain, plain, plain
	}

	fmt.Fprintf(w, "Validating %s\n", r.Path)

	sections := []struct {
		title  string
		items  []Diagnostic
		paint  func(a ...any) string
		marker string
	}{
		{"ERRORS", r.Errors, red, "✗"},
		{"WARNINGS", r.Warnings, yellow, "⚠"},
		{"INFO", r.Info, dim, "ℹ"},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", s.paint(fmt.Sprintf("%s (%d):", s.title, len(s.items))))
		for _, d := range s.items {
			fmt.Fprintf(w, "  %s %s\n", s.paint(s.marker), wrapText(d.String(), width-4, "    "))
		}
	}

	var err error
	if r.Valid() {
		_, err = fmt.Fprintf(w, "\n%s\n", green("✓ Changelog is valid"))
	} else {
		_, err = fmt.Fprintf(w, "\n%s\n", red(fmt.Sprintf("✗ Changelog is invalid (%d errors)", len(r.Errors))))
	}
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text on spaces so that no line exceeds maxWidth display
// columns, using indent for continuation lines. A single word wider than
// maxWidth is kept whole.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	var (
		lines []string
		line  strings.Builder
		cur   int
	)
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if cur > 0 && cur+1+ww > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
			cur = 0
		}
		if cur > 0 {
			line.WriteByte(' ')
			cur++
		}
		line.WriteString(word)
		cur += ww
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"+indent)
}
