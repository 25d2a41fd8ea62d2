package changelog

import "strings"

// Outline derives the structured view of the document. Items under headers
// outside the six categories are skipped; indented continuation lines are
// folded into the preceding item.
func (d *Document) Outline() *Changelog {
	c := &Changelog{Repository: d.ResolveOwnerRepo("")}

	headers := d.VersionHeaders()
	for idx, h := range headers {
		end := d.versionEnd(h.Line)
		if idx+1 < len(headers) && headers[idx+1].Line < end {
			end = headers[idx+1].Line
		}

		v := Version{Version: h.Label, Yanked: h.Yanked}
		if !h.IsUnreleased() {
			v.Date = h.Date
		}

		var (
			current  ChangeType
			inKnown  bool
			lastItem *string
		)
		for i := h.Line + 1; i < end; i++ {
			line := d.lines[i]
			trimmed := strings.TrimSpace(line)

			if m := subsectionRe.FindStringSubmatch(trimmed); m != nil {
				current, inKnown = lookupChangeType(m[1])
				lastItem = nil
				continue
			}
			if !inKnown {
				continue
			}
			switch {
			case lastItem != nil && isContinuation(line):
				*lastItem += " " + trimmed
			case isBullet(line):
				v.Changes.Add(current, strings.TrimSpace(strings.TrimPrefix(trimmed, "-")))
				items := v.Changes.list(current)
				lastItem = &(*items)[len(*items)-1]
			default:
				lastItem = nil
			}
		}

		c.Versions = append(c.Versions, v)
	}

	return c
}

// HasEntry reports whether the version labelled label already lists message
// under category t.
func (d *Document) HasEntry(label string, t ChangeType, message string) bool {
	versionPos := d.FindVersion(label)
	if versionPos < 0 {
		return false
	}
	subPos := d.FindSubsection(versionPos, t)
	if subPos < 0 {
		return false
	}
	want := strings.TrimSpace(message)
	for i := subPos + 1; i <= d.LastItemLine(subPos); i++ {
		line := strings.TrimSpace(d.lines[i])
		if isBullet(line) && strings.TrimSpace(strings.TrimPrefix(line, "-")) == want {
			return true
		}
	}
	return false
}

// SetYanked appends the [YANKED] marker to a release header.
// Returns false if the release does not exist or is already marked.
func (d *Document) SetYanked(label string) bool {
	pos := d.FindVersion(label)
	if pos < 0 || isUnreleased(label) {
		return false
	}
	h, _ := parseVersionHeader(d.lines[pos])
	if h.Yanked {
		return false
	}
	d.lines[pos] = strings.TrimRight(d.lines[pos], " \t") + " [YANKED]"
	return true
}
