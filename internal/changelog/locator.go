package changelog

import (
	"regexp"
	"strings"
)

// UnreleasedLabel is the label of the pending-changes section.
const UnreleasedLabel = "Unreleased"

var (
	versionHeaderRe = regexp.MustCompile(`^##\s+\[([^\]]+)\](.*)$`)
	headerDateRe    = regexp.MustCompile(`^\s*-\s*(\S+)`)
	subsectionRe    = regexp.MustCompile(`^###\s+(.+?)\s*$`)
	linkRefRe       = regexp.MustCompile(`^\[([^\]]+)\]:\s+(\S+)`)
)

// VersionHeader is a located `## [label]` line.
type VersionHeader struct {
	Label  string
	Date   string
	Yanked bool
	Line   int
	// Suffix is the raw text following the closing bracket.
	Suffix string
}

// IsUnreleased returns true for the Unreleased section.
func (h VersionHeader) IsUnreleased() bool {
	return isUnreleased(h.Label)
}

// SubsectionHeader is a located `### Name` line inside a version.
type SubsectionHeader struct {
	Name  string
	Type  ChangeType
	Known bool
	Line  int
}

// LinkReference is one `[label]: URL` line.
type LinkReference struct {
	Label string
	URL   string
	Line  int
}

func isUnreleased(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), UnreleasedLabel)
}

func parseVersionHeader(line string) (VersionHeader, bool) {
	m := versionHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return VersionHeader{}, false
	}
	h := VersionHeader{
		Label:  strings.TrimSpace(m[1]),
		Suffix: m[2],
		Yanked: strings.Contains(strings.ToUpper(m[2]), "[YANKED]"),
	}
	if dm := headerDateRe.FindStringSubmatch(m[2]); dm != nil {
		h.Date = dm[1]
	}
	return h, true
}

func parseLinkReference(line string) (LinkReference, bool) {
	m := linkRefRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return LinkReference{}, false
	}
	return LinkReference{Label: m[1], URL: m[2]}, true
}

func isVersionHeader(line string) bool {
	_, ok := parseVersionHeader(line)
	return ok
}

func isSubsectionHeader(line string) bool {
	return subsectionRe.MatchString(strings.TrimSpace(line))
}

func isLinkReference(line string) bool {
	return linkRefRe.MatchString(strings.TrimSpace(line))
}

// isBullet matches "- text" items but not "---" rules.
func isBullet(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "-") {
		return false
	}
	return len(s) == 1 || s[1] == ' ' || s[1] == '\t'
}

// isContinuation matches indented text that belongs to the preceding item.
func isContinuation(line string) bool {
	return strings.TrimSpace(line) != "" && (line[0] == ' ' || line[0] == '\t')
}

// VersionHeaders returns every version header in document order.
func (d *Document) VersionHeaders() []VersionHeader {
	var headers []VersionHeader
	for i, line := range d.lines {
		if h, ok := parseVersionHeader(line); ok {
			h.Line = i
			headers = append(headers, h)
		}
	}
	return headers
}

// FindVersion returns the header position of label, or -1.
// Unreleased is matched case-insensitively; release labels exactly.
func (d *Document) FindVersion(label string) int {
	label = strings.TrimSpace(label)
	for i, line := range d.lines {
		h, ok := parseVersionHeader(line)
		if !ok {
			continue
		}
		if h.Label == label || (isUnreleased(label) && h.IsUnreleased()) {
			return i
		}
	}
	return -1
}

// nextVersionHeader returns the first version header at or after from, or Len.
func (d *Document) nextVersionHeader(from int) int {
	for i := max(from, 0); i < len(d.lines); i++ {
		if isVersionHeader(d.lines[i]) {
			return i
		}
	}
	return len(d.lines)
}

// versionEnd returns the exclusive end of the block opened by the header at
// versionPos: the next version header, or the link block if that comes first.
func (d *Document) versionEnd(versionPos int) int {
	end := d.nextVersionHeader(versionPos + 1)
	if link := d.FindLinkBlockStart(); link > versionPos && link < end {
		end = link
	}
	return end
}

// lastContentLine returns the last non-blank position in [from, to),
// or from-1 when the range is blank.
func (d *Document) lastContentLine(from, to int) int {
	for i := min(to, len(d.lines)) - 1; i >= from; i-- {
		if !d.IsBlank(i) {
			return i
		}
	}
	return from - 1
}

// Subsections returns the `###` headers between versionPos and the next
// version header, including names outside the six categories.
func (d *Document) Subsections(versionPos int) []SubsectionHeader {
	var subs []SubsectionHeader
	end := d.nextVersionHeader(versionPos + 1)
	for i := versionPos + 1; i < end; i++ {
		m := subsectionRe.FindStringSubmatch(strings.TrimSpace(d.lines[i]))
		if m == nil {
			continue
		}
		t, known := lookupChangeType(m[1])
		subs = append(subs, SubsectionHeader{Name: m[1], Type: t, Known: known, Line: i})
	}
	return subs
}

// FindSubsection returns the position of `### {t}` inside the version at
// versionPos, or -1. The scope ends before the next version header.
func (d *Document) FindSubsection(versionPos int, t ChangeType) int {
	for _, s := range d.Subsections(versionPos) {
		if s.Known && s.Type == t {
			return s.Line
		}
	}
	return -1
}

// LastItemLine returns the last line of the bullet list following the
// subsection header at subPos. A single blank line after the header is
// skipped. With no bullets, subPos itself is returned.
func (d *Document) LastItemLine(subPos int) int {
	last := subPos
	i := subPos + 1
	if i < len(d.lines) && d.IsBlank(i) {
		i++
	}
	for i < len(d.lines) {
		line := d.lines[i]
		switch {
		case isBullet(line):
			last = i
		case last != subPos && isContinuation(line):
			last = i
		default:
			return last
		}
		i++
	}
	return last
}

// FindLinkBlockStart returns the first line matching `[label]: URL`, or -1.
// Body lines of the same shape are indistinguishable from references.
func (d *Document) FindLinkBlockStart() int {
	for i, line := range d.lines {
		if isLinkReference(line) {
			return i
		}
	}
	return -1
}

// LinkBlockEnd returns the exclusive end of the reference block starting at
// start. Blank lines between references belong to the block; trailing blank
// lines do not.
func (d *Document) LinkBlockEnd(start int) int {
	end := start
	for i := start; i < len(d.lines); i++ {
		switch {
		case isLinkReference(d.lines[i]):
			end = i + 1
		case d.IsBlank(i):
			continue
		default:
			return end
		}
	}
	return end
}

// LinkReferences returns every reference line in the document.
func (d *Document) LinkReferences() []LinkReference {
	var refs []LinkReference
	for i, line := range d.lines {
		if ref, ok := parseLinkReference(line); ok {
			ref.Line = i
			refs = append(refs, ref)
		}
	}
	return refs
}
