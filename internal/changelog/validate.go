package changelog

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// CanonicalFilename is the expected changelog file name (case-insensitive).
const CanonicalFilename = "CHANGELOG.md"

var (
	releaseSuffixRe = regexp.MustCompile(`^\s*-\s*(\d{4}-\d{2}-\d{2})(\s+\[YANKED\])?\s*$`)
	dateShapeRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	changeItemRe    = regexp.MustCompile(`^-\s+.+$`)
	compareURLRe    = regexp.MustCompile(`^https?://[^/\s]+/[^/\s]+/[^/\s]+/compare/\S+?\.\.\.\S+$`)
	releaseURLRe    = regexp.MustCompile(`^https?://[^/\s]+/[^/\s]+/[^/\s]+/releases/tag/\S+$`)
)

// ValidateFile validates the changelog at path. Problems reading the file
// are reported as errors in the returned Report.
func ValidateFile(path string) *Report {
	r := &Report{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.addError(0, "File does not exist: %s", path)
		} else {
			r.addError(0, "Cannot access file: %v", err)
		}
		return r
	}
	if info.IsDir() {
		r.addError(0, "Path is a directory: %s", path)
		return r
	}

	if !checkFileName(r, path) {
		return r
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.addError(0, "Failed to read file: %v", err)
		return r
	}

	validateText(r, string(data))
	return r
}

// ValidateContent validates changelog text held in memory. name is checked
// against CanonicalFilename unless empty.
func ValidateContent(name, text string) *Report {
	r := &Report{Path: name}
	if name != "" && !checkFileName(r, name) {
		return r
	}
	validateText(r, text)
	return r
}

// ValidateFiles validates several changelogs concurrently, at most jobs at a
// time. http(s) URLs are fetched. Reports are returned in the order of paths.
func ValidateFiles(ctx context.Context, paths []string, jobs int) ([]*Report, error) {
	reports := make([]*Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if IsRemote(path) {
				reports[i] = ValidateRemote(ctx, path)
			} else {
				reports[i] = ValidateFile(path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkFileName(r *Report, path string) bool {
	name := filepath.Base(path)
	if !strings.EqualFold(name, CanonicalFilename) {
		r.addError(0, "File should be named '%s' (case-insensitive), got: %s", CanonicalFilename, name)
		return false
	}
	return true
}

func validateText(r *Report, text string) {
	if strings.TrimSpace(text) == "" {
		r.addError(0, "File is empty")
		return
	}

	v := &validator{doc: Parse(text), report: r, firstLabel: make(map[string]int)}
	v.scan()
	v.checkVersions()
	v.checkLinks()
	v.checkReleases()

	if r.Valid() {
		r.addInfo("Changelog follows Keep a Changelog 1.1.0 specification")
	}
}

// versionState accumulates what one version section contains.
type versionState struct {
	header   VersionHeader
	line     int
	sections []ChangeType
	items    int
}

type validator struct {
	doc        *Document
	report     *Report
	versions   []*versionState
	current    *versionState
	links      []LinkReference
	firstLabel map[string]int
}

func (v *validator) scan() {
	for i, raw := range v.doc.lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if h, ok := parseVersionHeader(line); ok {
			v.onVersionHeader(h, lineNo)
			continue
		}
		if m := subsectionRe.FindStringSubmatch(line); m != nil {
			v.onSubsection(m[1], lineNo)
			continue
		}
		if changeItemRe.MatchString(line) {
			v.onItem(lineNo)
			continue
		}
		if ref, ok := parseLinkReference(line); ok {
			ref.Line = lineNo
			v.links = append(v.links, ref)
		}
	}
}

func (v *validator) onVersionHeader(h VersionHeader, lineNo int) {
	state := &versionState{header: h, line: lineNo}
	v.versions = append(v.versions, state)
	v.current = state

	key := h.Label
	if h.IsUnreleased() {
		key = strings.ToLower(key)
	}
	if first, dup := v.firstLabel[key]; dup {
		v.report.addWarning(lineNo, "Duplicate version [%s] (first defined at line %d)", h.Label, first)
	} else {
		v.firstLabel[key] = lineNo
	}

	if h.IsUnreleased() {
		v.report.addInfo("Found [Unreleased] section at line %d", lineNo)
		switch {
		case h.Yanked:
			v.report.addWarning(lineNo, "[Unreleased] should not be marked as [YANKED]")
		case strings.TrimSpace(h.Suffix) != "":
			v.report.addWarning(lineNo, "[Unreleased] header should not carry a date or suffix, got %q", strings.TrimSpace(h.Suffix))
		}
		return
	}

	m := releaseSuffixRe.FindStringSubmatch(h.Suffix)
	if m == nil {
		if !dateShapeRe.MatchString(h.Date) {
			v.report.addError(lineNo, "Version %s missing valid ISO 8601 date (YYYY-MM-DD)", h.Label)
		} else {
			v.report.addError(lineNo, "Version %s header is malformed (expected '## [%s] - YYYY-MM-DD', optionally followed by [YANKED])", h.Label, h.Label)
		}
		return
	}
	if _, err := time.Parse(DateLayout, m[1]); err != nil {
		v.report.addError(lineNo, "Version %s has invalid date %q", h.Label, m[1])
	}
}

func (v *validator) onSubsection(name string, lineNo int) {
	t, known := lookupChangeType(name)
	if !known {
		v.report.addError(lineNo, "Invalid section '%s'. Allowed sections: %s", name, strings.Join(ValidCategories(), ", "))
		return
	}

	cur := v.current
	if cur == nil {
		v.report.addWarning(lineNo, "Section '%s' found outside version context", name)
		return
	}

	for _, seen := range cur.sections {
		if seen == t {
			v.report.addWarning(lineNo, "Duplicate section '%s' in version %s", name, cur.header.Label)
			return
		}
	}
	if n := len(cur.sections); n > 0 && cur.sections[n-1].Priority() > t.Priority() {
		v.report.addWarning(lineNo, "Section '%s' should appear before '%s' in version %s", name, cur.sections[n-1], cur.header.Label)
	}
	cur.sections = append(cur.sections, t)
}

func (v *validator) onItem(lineNo int) {
	if v.current != nil {
		v.current.items++
	}
	if v.current == nil || len(v.current.sections) == 0 {
		v.report.addWarning(lineNo, "Change item found outside of a section (Added/Changed/etc.)")
	}
}

func (v *validator) checkVersions() {
	if len(v.versions) == 0 {
		return
	}
	v.report.addInfo("Found %d version headers", len(v.versions))

	for i, s := range v.versions {
		if s.header.IsUnreleased() && i > 0 {
			v.report.addWarning(s.line, "[Unreleased] section should be first (found after %d other version header(s))", i)
			break
		}
	}

	var prev *versionState
	for _, s := range v.versions {
		if s.header.IsUnreleased() {
			continue
		}
		ref := semverRef(s.header.Label)
		if !semver.IsValid(ref) {
			v.report.addInfo("Version '%s' does not follow Semantic Versioning (vX.Y.Z or X.Y.Z) - this is just a recommendation", s.header.Label)
			continue
		}
		if prev != nil && semver.Compare(ref, semverRef(prev.header.Label)) > 0 {
			v.report.addWarning(s.line, "Version %s is listed below older version %s (versions should be newest first)", s.header.Label, prev.header.Label)
		}
		prev = s
	}
}

func semverRef(label string) string {
	return "v" + strings.TrimPrefix(label, "v")
}

func (v *validator) checkLinks() {
	released := 0
	for _, s := range v.versions {
		if !s.header.IsUnreleased() {
			released++
		}
	}

	if len(v.links) > 0 {
		v.report.addInfo("Found %d link reference(s) at bottom", len(v.links))

		for _, ref := range v.links {
			if !compareURLRe.MatchString(ref.URL) && !releaseURLRe.MatchString(ref.URL) {
				v.report.addWarning(ref.Line,
					"Link reference for '%s' has invalid URL pattern. Expected 'https://github.com/owner/repo/compare/vA...vB' or 'https://github.com/owner/repo/releases/tag/vX.Y.Z'",
					ref.Label)
			}
			if !v.hasVersion(ref.Label) {
				v.report.addWarning(ref.Line, "Link reference '%s' does not match any version header", ref.Label)
			}
		}

		last := v.links[len(v.links)-1].Line
		for i := last; i < v.doc.Len(); i++ {
			if !v.doc.IsBlank(i) {
				v.report.addWarning(0, "Link references should be at the very bottom. Found content after last link reference (line %d)", i+1)
				break
			}
		}
	}

	if released > 0 && len(v.links) < released {
		v.report.addWarning(0, "Expected at least %d link references for %d released versions, found %d",
			released, released, len(v.links))
	}
}

func (v *validator) hasVersion(label string) bool {
	if isUnreleased(label) {
		_, ok := v.firstLabel[strings.ToLower(UnreleasedLabel)]
		return ok
	}
	_, ok := v.firstLabel[label]
	return ok
}

func (v *validator) checkReleases() {
	for _, s := range v.versions {
		if len(s.sections) > 0 {
			names := make([]string, len(s.sections))
			for i, t := range s.sections {
				names[i] = t.String()
			}
			v.report.addInfo("Version %s has %d section(s): %s", s.header.Label, len(s.sections), strings.Join(names, ", "))
		}

		if !s.header.IsUnreleased() && len(s.sections) == 0 && s.items == 0 {
			v.report.addWarning(s.line, "Version %s has no change items or sections", s.header.Label)
		}
	}
}
