package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DateLayout is the ISO 8601 calendar date used in release headers.
const DateLayout = "2006-01-02"

// EntryOptions describes a single AddEntry call.
type EntryOptions struct {
	// Type is the change category name (Added, Changed, ...).
	Type string
	// Message is the bullet text, without the leading "- ".
	Message string
	// Version targets a release section. Empty targets Unreleased.
	Version string
	// Date is used when a new release section is created (YYYY-MM-DD).
	// Defaults to today.
	Date string
	// OwnerRepo is the fallback "owner/repo" slug for link references when
	// none can be read from existing links.
	OwnerRepo string
	// Now overrides the clock used for the default date.
	Now func() time.Time
}

// EntryResult reports what AddEntry changed.
type EntryResult struct {
	Type              ChangeType
	Version           string
	Date              string
	CreatedUnreleased bool
	CreatedVersion    bool
	CreatedSection    bool
	LinksUpdated      bool
	// Line is the zero-based position of the inserted item.
	Line int
}

// entryRequest is a validated EntryOptions.
type entryRequest struct {
	typ     ChangeType
	message string
	label   string
	date    string
	release bool
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return schemaError("validate date", fmt.Errorf("invalid date format %q (expected: YYYY-MM-DD)", s))
	}
	return nil
}

func (o EntryOptions) resolve() (entryRequest, error) {
	typ, err := ParseChangeType(o.Type)
	if err != nil {
		return entryRequest{}, err
	}

	msg := strings.TrimSpace(o.Message)
	if msg == "" {
		return entryRequest{}, schemaError("add entry", errors.New("message is empty"))
	}
	if strings.ContainsAny(msg, "\r\n") {
		return entryRequest{}, schemaError("add entry", errors.New("message must be a single line"))
	}

	if o.Date != "" {
		if err := ValidateDate(o.Date); err != nil {
			return entryRequest{}, err
		}
	}

	req := entryRequest{typ: typ, message: msg, label: UnreleasedLabel}

	label := strings.TrimSpace(o.Version)
	if label == "" || isUnreleased(label) {
		return req, nil
	}
	if strings.ContainsAny(label, "[]\r\n") {
		return entryRequest{}, schemaError("add entry", fmt.Errorf("invalid version label %q", label))
	}

	req.label = label
	req.release = true
	req.date = o.Date
	if req.date == "" {
		now := time.Now
		if o.Now != nil {
			now = o.Now
		}
		req.date = now().Format(DateLayout)
	}
	return req, nil
}

// AddEntry appends one item to the document, creating the version section
// and change-type subsection when they are missing. Options are validated
// before anything is inserted; on error the document is unchanged.
//
// Link references are regenerated when a new Unreleased section is created
// or when the target is a release.
func (d *Document) AddEntry(opts EntryOptions) (*EntryResult, error) {
	req, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	res := &EntryResult{Type: req.typ, Version: req.label}

	versionPos := d.FindVersion(req.label)
	if versionPos < 0 {
		if req.release {
			versionPos = d.createRelease(req.label, req.date)
			res.CreatedVersion = true
			res.Date = req.date
		} else {
			versionPos = d.createUnreleased()
			res.CreatedUnreleased = true
		}
	}

	subPos := d.FindSubsection(versionPos, req.typ)
	if subPos < 0 {
		subPos = d.createSubsection(versionPos, req.typ)
		res.CreatedSection = true
	}

	res.Line = d.appendItem(subPos, "- "+req.message)

	if res.CreatedUnreleased || req.release {
		res.LinksUpdated = d.SynthesizeLinks(opts.OwnerRepo)
	}

	return res, nil
}

// preambleEnd is the insertion point for the first version header in a
// document that has none: after the title/intro, before any link block.
func (d *Document) preambleEnd() int {
	boundary := d.Len()
	if link := d.FindLinkBlockStart(); link >= 0 {
		boundary = link
	}
	return d.lastContentLine(0, boundary) + 1
}

// createUnreleased inserts `## [Unreleased]` above every version header.
func (d *Document) createUnreleased() int {
	pos := d.nextVersionHeader(0)
	if pos == d.Len() {
		pos = d.preambleEnd()
	}
	return d.insertSeparated(pos, HeaderLine(&Version{Version: UnreleasedLabel}))
}

// createRelease inserts a dated release header. A semver label goes above
// the first existing release that sorts older than it, or after the last
// release when every existing one is newer. Anything else goes directly
// below the Unreleased block, or above every version header when there is
// no Unreleased section.
func (d *Document) createRelease(label, date string) int {
	header := HeaderLine(&Version{Version: label, Date: date})

	if ref := versionRef(label); semver.IsValid(ref) {
		var last *VersionHeader
		for _, h := range d.VersionHeaders() {
			if h.IsUnreleased() {
				continue
			}
			other := versionRef(h.Label)
			if !semver.IsValid(other) {
				continue
			}
			if semver.Compare(other, ref) < 0 {
				return d.insertSeparated(h.Line, header)
			}
			last = &h
		}
		if last != nil {
			end := d.versionEnd(last.Line)
			return d.insertSeparated(d.lastContentLine(last.Line, end)+1, header)
		}
	}

	if u := d.FindVersion(UnreleasedLabel); u >= 0 {
		end := d.versionEnd(u)
		return d.insertSeparated(d.lastContentLine(u, end)+1, header)
	}

	pos := d.nextVersionHeader(0)
	if pos == d.Len() {
		pos = d.preambleEnd()
	}
	return d.insertSeparated(pos, header)
}

// createSubsection inserts `### {t}` so that the known subsections of the
// version keep canonical order.
func (d *Document) createSubsection(versionPos int, t ChangeType) int {
	header := "### " + t.String()

	for _, s := range d.Subsections(versionPos) {
		if s.Known && s.Type.Priority() > t.Priority() {
			return d.insertSeparated(s.Line, header)
		}
	}

	end := d.versionEnd(versionPos)
	return d.insertSeparated(d.lastContentLine(versionPos, end)+1, header)
}

// appendItem inserts item after the last bullet of the subsection at subPos.
// An empty subsection gets "header, blank, item" and a blank line before
// whatever follows.
func (d *Document) appendItem(subPos int, item string) int {
	if last := d.LastItemLine(subPos); last != subPos {
		d.Insert(last+1, item)
		return last + 1
	}

	pos := subPos + 1
	if pos >= d.Len() || !d.IsBlank(pos) {
		d.Insert(pos, "")
	}
	pos++
	d.Insert(pos, item)
	if !d.IsBlank(pos + 1) {
		d.Insert(pos+1, "")
	}
	return pos
}
