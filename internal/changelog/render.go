package changelog

import (
	"fmt"
	"io"
)

// RenderReleaseNotes writes the body of one version as markdown suitable for
// a release description: each non-empty category as a "###" section. The
// version header itself is not written.
func RenderReleaseNotes(v *Version, w io.Writer) error {
	first := true
	for _, t := range ChangeTypes() {
		entries := v.Changes.Get(t)
		if len(entries) == 0 {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprintf(w, "### %s\n\n", t); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "- %s\n", e); err != nil {
				return err
			}
		}
	}
	return nil
}

// HeaderLine formats the markdown header for v as AddEntry writes it.
func HeaderLine(v *Version) string {
	if v.IsUnreleased() {
		return "## [" + UnreleasedLabel + "]"
	}
	header := fmt.Sprintf("## [%s] - %s", v.Version, v.Date)
	if v.Yanked {
		header += " [YANKED]"
	}
	return header
}
