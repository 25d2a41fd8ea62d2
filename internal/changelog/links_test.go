package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkBlock(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []string
	}{
		"unreleased and two releases": {
			text: "## [Unreleased]\n\n## [2.0.0] - 2024-02-01\n\n## [1.5.0] - 2024-01-01\n",
			want: []string{
				"[Unreleased]: https://github.com/acme/widget/compare/v2.0.0...HEAD",
				"[2.0.0]: https://github.com/acme/widget/compare/v1.5.0...v2.0.0",
				"[1.5.0]: https://github.com/acme/widget/releases/tag/v1.5.0",
			},
		},
		"only unreleased": {
			text: "## [Unreleased]\n",
			want: []string{
				"[Unreleased]: https://github.com/acme/widget/compare/v0.0.0...HEAD",
			},
		},
		"no unreleased": {
			text: "## [1.1.0] - 2024-02-01\n\n## [1.0.0] - 2024-01-01\n",
			want: []string{
				"[1.1.0]: https://github.com/acme/widget/compare/v1.0.0...v1.1.0",
				"[1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0",
			},
		},
		"labels already prefixed": {
			text: "## [v2.0.0] - 2024-02-01\n\n## [v1.0.0] - 2024-01-01\n",
			want: []string{
				"[v2.0.0]: https://github.com/acme/widget/compare/v1.0.0...v2.0.0",
				"[v1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0",
			},
		},
		"duplicate headers linked once": {
			text: "## [1.0.0] - 2024-01-01\n\n## [1.0.0] - 2024-01-01\n",
			want: []string{
				"[1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0",
			},
		},
		"no headers": {
			text: "# Changelog\n",
			want: nil,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Parse(tt.text).LinkBlock("acme/widget"))
		})
	}
}

func TestSynthesizeLinks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text      string
		ownerRepo string
		wantOK    bool
		want      string
	}{
		"no slug is a no-op": {
			text:   "## [Unreleased]\n",
			wantOK: false,
			want:   "## [Unreleased]\n",
		},
		"appended after blank line": {
			text:      "## [Unreleased]\n",
			ownerRepo: "https://github.com/acme/widget.git",
			wantOK:    true,
			want:      "## [Unreleased]\n\n[Unreleased]: https://github.com/acme/widget/compare/v0.0.0...HEAD\n",
		},
		"existing slug wins and stale block is replaced": {
			text: "## [Unreleased]\n\n## [2.0.0] - 2024-02-01\n\n## [1.5.0] - 2024-01-01\n\n" +
				"[Unreleased]: https://github.com/old/repo/compare/v1.5.0...HEAD\n\n" +
				"[1.5.0]: https://github.com/old/repo/releases/tag/v1.5.0\n",
			ownerRepo: "acme/widget",
			wantOK:    true,
			want: "## [Unreleased]\n\n## [2.0.0] - 2024-02-01\n\n## [1.5.0] - 2024-01-01\n\n" +
				"[Unreleased]: https://github.com/old/repo/compare/v2.0.0...HEAD\n" +
				"[2.0.0]: https://github.com/old/repo/compare/v1.5.0...v2.0.0\n" +
				"[1.5.0]: https://github.com/old/repo/releases/tag/v1.5.0\n",
		},
		"no headers is a no-op": {
			text:      "# Changelog\n",
			ownerRepo: "acme/widget",
			wantOK:    false,
			want:      "# Changelog\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := Parse(tt.text)
			assert.Equal(t, tt.wantOK, d.SynthesizeLinks(tt.ownerRepo))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestNormalizeOwnerRepo(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"slug":       {input: "acme/widget", want: "acme/widget"},
		"padded":     {input: "  /acme/widget/ ", want: "acme/widget"},
		"https url":  {input: "https://github.com/acme/widget", want: "acme/widget"},
		"git suffix": {input: "https://github.com/acme/widget.git", want: "acme/widget"},
		"empty":      {input: "", want: ""},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeOwnerRepo(tt.input))
		})
	}
}

func TestResolveOwnerRepo(t *testing.T) {
	t.Parallel()

	withLinks := Parse("[1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0\n")
	assert.Equal(t, "acme/widget", withLinks.ResolveOwnerRepo("other/repo"))

	foreign := Parse("[1.0.0]: https://gitlab.com/acme/widget/-/tags/v1.0.0\n")
	assert.Equal(t, "other/repo", foreign.ResolveOwnerRepo("other/repo"))
}
