package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

const githubBaseURL = "https://github.com/"

var githubSlugRe = regexp.MustCompile(`github\.com/([^/\s]+/[^/\s]+)/`)

// versionRef returns the git tag for a version label ("1.2.0" -> "v1.2.0").
func versionRef(label string) string {
	if strings.HasPrefix(label, "v") {
		return label
	}
	return "v" + label
}

// NormalizeOwnerRepo trims whitespace, a github.com URL prefix and a ".git"
// suffix from an "owner/repo" slug.
func NormalizeOwnerRepo(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, githubBaseURL)
	s = strings.TrimSuffix(s, ".git")
	return strings.Trim(s, "/")
}

// ResolveOwnerRepo returns the slug embedded in the first existing
// github.com link reference, falling back to fallback.
func (d *Document) ResolveOwnerRepo(fallback string) string {
	for _, ref := range d.LinkReferences() {
		if m := githubSlugRe.FindStringSubmatch(ref.URL); m != nil {
			return m[1]
		}
	}
	return NormalizeOwnerRepo(fallback)
}

// LinkBlock computes the reference lines for the version headers currently
// present, newest first, with Unreleased on top when that section exists.
func (d *Document) LinkBlock(ownerRepo string) []string {
	base := githubBaseURL + NormalizeOwnerRepo(ownerRepo)

	var releases []string
	unreleased := ""
	seen := make(map[string]bool)
	for _, h := range d.VersionHeaders() {
		if h.IsUnreleased() {
			if unreleased == "" {
				unreleased = h.Label
			}
			continue
		}
		if seen[h.Label] {
			continue
		}
		seen[h.Label] = true
		releases = append(releases, h.Label)
	}

	var lines []string
	if unreleased != "" {
		newest := "v0.0.0"
		if len(releases) > 0 {
			newest = versionRef(releases[0])
		}
		lines = append(lines, fmt.Sprintf("[%s]: %s/compare/%s...HEAD", unreleased, base, newest))
	}

	for i, label := range releases {
		if i == len(releases)-1 {
			lines = append(lines, fmt.Sprintf("[%s]: %s/releases/tag/%s", label, base, versionRef(label)))
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s]: %s/compare/%s...%s",
			label, base, versionRef(releases[i+1]), versionRef(label)))
	}

	return lines
}

// SynthesizeLinks replaces the link-reference block with one generated from
// the version headers. Returns false, leaving the document untouched, when no
// owner/repo slug is known or there are no version headers.
func (d *Document) SynthesizeLinks(ownerRepo string) bool {
	slug := d.ResolveOwnerRepo(ownerRepo)
	if slug == "" {
		return false
	}

	block := d.LinkBlock(slug)
	if len(block) == 0 {
		return false
	}

	start := d.FindLinkBlockStart()
	if start < 0 {
		if d.Len() > 0 && !d.IsBlank(d.Len()-1) {
			d.Insert(d.Len(), "")
		}
		d.Insert(d.Len(), block...)
		return true
	}

	d.Delete(start, d.LinkBlockEnd(start))
	d.Insert(start, block...)
	return true
}
