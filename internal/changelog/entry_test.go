package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func mustAdd(t *testing.T, d *Document, opts EntryOptions) *EntryResult {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedClock
	}
	res, err := d.AddEntry(opts)
	require.NoError(t, err)
	return res
}

func headerLabels(d *Document) []string {
	var labels []string
	for _, h := range d.VersionHeaders() {
		labels = append(labels, h.Label)
	}
	return labels
}

func TestAddEntry_EmptyDocument(t *testing.T) {
	t.Parallel()

	d := Parse("")
	res := mustAdd(t, d, EntryOptions{Type: "Added", Message: "X"})

	assert.Equal(t, "## [Unreleased]\n\n### Added\n\n- X\n", d.String())
	assert.True(t, res.CreatedUnreleased)
	assert.True(t, res.CreatedSection)
	assert.False(t, res.LinksUpdated)
	assert.Equal(t, 4, res.Line)
	assert.Equal(t, Added, res.Type)
}

func TestAddEntry_AppendsWithoutDuplicatingHeaders(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version string
		date    string
		header  string
	}{
		"unreleased": {
			header: "## [Unreleased]",
		},
		"dated release": {
			version: "1.0.0",
			date:    "2024-01-15",
			header:  "## [1.0.0] - 2024-01-15",
		},
		"release with default date": {
			version: "1.0.0",
			header:  "## [1.0.0] - 2025-03-15",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d := Parse("# Changelog\n")
			for _, msg := range []string{"first", "second", "third"} {
				mustAdd(t, d, EntryOptions{Type: "Fixed", Message: msg, Version: tt.version, Date: tt.date})
			}

			text := d.String()
			assert.Equal(t, 1, strings.Count(text, tt.header+"\n"))
			assert.Equal(t, 1, strings.Count(text, "### Fixed"))
			assert.Contains(t, text, "### Fixed\n\n- first\n- second\n- third\n")
		})
	}
}

func TestAddEntry_SubsectionOrder(t *testing.T) {
	t.Parallel()

	types := ChangeTypes()
	var permute func(prefix, rest []ChangeType, out *[][]ChangeType)
	permute = func(prefix, rest []ChangeType, out *[][]ChangeType) {
		if len(rest) == 0 {
			*out = append(*out, append([]ChangeType(nil), prefix...))
			return
		}
		for i := range rest {
			next := append(append([]ChangeType(nil), rest[:i]...), rest[i+1:]...)
			permute(append(prefix, rest[i]), next, out)
		}
	}

	var orders [][]ChangeType
	permute(nil, types, &orders)
	require.Len(t, orders, 720)

	for _, order := range orders {
		d := Parse("")
		for _, typ := range order {
			mustAdd(t, d, EntryOptions{Type: typ.String(), Message: "entry " + typ.Key()})
		}

		var got []ChangeType
		for _, s := range d.Subsections(d.FindVersion(UnreleasedLabel)) {
			got = append(got, s.Type)
		}
		require.Equal(t, types, got, "creation order %v", order)

		for _, typ := range types {
			sub := d.FindSubsection(0, typ)
			require.Equal(t, "- entry "+typ.Key(), d.Line(d.LastItemLine(sub)))
		}

		r := ValidateContent(CanonicalFilename, d.String())
		require.Empty(t, r.Errors, "creation order %v", order)
		require.Empty(t, r.Warnings, "creation order %v", order)
	}
}

func TestAddEntry_SubsetOrder(t *testing.T) {
	t.Parallel()

	d := Parse("")
	for _, typ := range []string{"Security", "Added", "Fixed", "Changed"} {
		mustAdd(t, d, EntryOptions{Type: typ, Message: typ})
	}

	want := "## [Unreleased]\n\n" +
		"### Added\n\n- Added\n\n" +
		"### Changed\n\n- Changed\n\n" +
		"### Fixed\n\n- Fixed\n\n" +
		"### Security\n\n- Security\n"
	assert.Equal(t, want, d.String())
}

func TestAddEntry_ReleasePlacement(t *testing.T) {
	t.Parallel()

	d := Parse("## [Unreleased]\n\n### Added\n\n- X\n")
	mustAdd(t, d, EntryOptions{Type: "Added", Message: "two", Version: "2.0.0", Date: "2024-02-01", OwnerRepo: "acme/widget"})
	mustAdd(t, d, EntryOptions{Type: "Added", Message: "one-nine", Version: "1.9.0", Date: "2024-01-20"})
	assert.Equal(t, []string{"Unreleased", "2.0.0", "1.9.0"}, headerLabels(d))

	mustAdd(t, d, EntryOptions{Type: "Added", Message: "two-one", Version: "2.1.0", Date: "2024-03-01"})
	assert.Equal(t, []string{"Unreleased", "2.1.0", "2.0.0", "1.9.0"}, headerLabels(d))

	mustAdd(t, d, EntryOptions{Type: "Added", Message: "one-nine-five", Version: "1.9.5", Date: "2024-01-25"})
	assert.Equal(t, []string{"Unreleased", "2.1.0", "2.0.0", "1.9.5", "1.9.0"}, headerLabels(d))

	unreleased := d.FindVersion(UnreleasedLabel)
	assert.Equal(t, "- X", d.Line(d.LastItemLine(d.FindSubsection(unreleased, Added))))

	r := ValidateContent(CanonicalFilename, d.String())
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestAddEntry_CreatesStructureInPosition(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		opts EntryOptions
		want string
	}{
		"unreleased after title": {
			text: "# Changelog\n\nAll notable changes.\n",
			opts: EntryOptions{Type: "Added", Message: "X"},
			want: "# Changelog\n\nAll notable changes.\n\n## [Unreleased]\n\n### Added\n\n- X\n",
		},
		"unreleased above existing release": {
			text: "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- A\n",
			opts: EntryOptions{Type: "Fixed", Message: "B"},
			want: "# Changelog\n\n## [Unreleased]\n\n### Fixed\n\n- B\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- A\n",
		},
		"release without unreleased goes above releases": {
			text: "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- A\n",
			opts: EntryOptions{Type: "Added", Message: "B", Version: "1.1.0", Date: "2024-02-01"},
			want: "# Changelog\n\n## [1.1.0] - 2024-02-01\n\n### Added\n\n- B\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- A\n",
		},
		"item appended after continuation line": {
			text: "## [Unreleased]\n\n### Added\n\n- A\n  more\n\n### Fixed\n\n- F\n",
			opts: EntryOptions{Type: "Added", Message: "B"},
			want: "## [Unreleased]\n\n### Added\n\n- A\n  more\n- B\n\n### Fixed\n\n- F\n",
		},
		"empty subsection gets blank after header": {
			text: "## [Unreleased]\n\n### Added\n### Fixed\n\n- F\n",
			opts: EntryOptions{Type: "Added", Message: "A"},
			want: "## [Unreleased]\n\n### Added\n\n- A\n\n### Fixed\n\n- F\n",
		},
		"untouched malformed headers are left alone": {
			text: "## [Unreleased]\n\n## [0.1.0] - someday\n",
			opts: EntryOptions{Type: "Added", Message: "A"},
			want: "## [Unreleased]\n\n### Added\n\n- A\n\n## [0.1.0] - someday\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := Parse(tt.text)
			mustAdd(t, d, tt.opts)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestAddEntry_RejectsBeforeMutating(t *testing.T) {
	t.Parallel()

	tests := map[string]EntryOptions{
		"unknown type":       {Type: "Bogus", Message: "x"},
		"empty message":      {Type: "Added", Message: "   "},
		"multi-line message": {Type: "Added", Message: "a\nb"},
		"bad date":           {Type: "Added", Message: "x", Version: "1.0.0", Date: "2024-13-01"},
		"bad date shape":     {Type: "Added", Message: "x", Version: "1.0.0", Date: "15/01/2024"},
		"date on unreleased": {Type: "Added", Message: "x", Date: "yesterday"},
		"bracket in version": {Type: "Added", Message: "x", Version: "1.0]"},
	}

	for name, opts := range tests {
		opts := opts
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := Parse(locatorSample)
			before := d.String()

			_, err := d.AddEntry(opts)
			require.Error(t, err)
			assert.True(t, IsSchemaError(err), "got %v", err)
			assert.Equal(t, before, d.String())
		})
	}
}

func TestAddEntry_TypeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	d := Parse("")
	res := mustAdd(t, d, EntryOptions{Type: "security", Message: "CVE fix"})
	assert.Equal(t, Security, res.Type)
	assert.Contains(t, d.String(), "### Security\n")
}

func TestAddEntry_SynthesizesLinks(t *testing.T) {
	t.Parallel()

	d := Parse("# Changelog\n")
	res := mustAdd(t, d, EntryOptions{Type: "Added", Message: "A", OwnerRepo: "acme/widget"})
	assert.True(t, res.LinksUpdated)
	assert.True(t, strings.HasSuffix(d.String(),
		"\n\n[Unreleased]: https://github.com/acme/widget/compare/v0.0.0...HEAD\n"))

	res = mustAdd(t, d, EntryOptions{Type: "Added", Message: "B", Version: "1.0.0", Date: "2024-01-01"})
	assert.True(t, res.LinksUpdated, "slug is reused from existing links")
	assert.True(t, strings.HasSuffix(d.String(),
		"\n\n[Unreleased]: https://github.com/acme/widget/compare/v1.0.0...HEAD\n"+
			"[1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0\n"))

	res = mustAdd(t, d, EntryOptions{Type: "Added", Message: "C"})
	assert.False(t, res.LinksUpdated, "existing Unreleased does not trigger synthesis")

	r := ValidateContent(CanonicalFilename, d.String())
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestAddEntry_WithoutSlugSkipsLinks(t *testing.T) {
	t.Parallel()

	d := Parse("")
	res := mustAdd(t, d, EntryOptions{Type: "Added", Message: "A", Version: "1.0.0", Date: "2024-01-01"})
	assert.True(t, res.CreatedVersion)
	assert.Equal(t, "2024-01-01", res.Date)
	assert.False(t, res.LinksUpdated)
	assert.Equal(t, -1, d.FindLinkBlockStart())
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		date    string
		wantErr bool
	}{
		"valid":          {date: "2024-02-29"},
		"not leap year":  {date: "2023-02-29", wantErr: true},
		"month overflow": {date: "2024-13-01", wantErr: true},
		"wrong shape":    {date: "2024-1-5", wantErr: true},
		"empty":          {date: "", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDate(tt.date)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsSchemaError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
