package changelog

import "strings"

// ImportResult summarizes an Import.
type ImportResult struct {
	Entries      int
	Skipped      int
	Versions     int
	Yanked       int
	LinksUpdated bool
}

// Import merges a structured changelog into the document. Releases are
// replayed oldest first through AddEntry so headers end up newest first;
// entries already present under the same version and category are skipped.
// The document is left untouched if any entry is rejected.
func (d *Document) Import(c *Changelog, ownerRepo string) (*ImportResult, error) {
	if err := ValidateSource(c); err != nil {
		return nil, schemaError("import", err)
	}
	if ownerRepo == "" {
		ownerRepo = c.Repository
	}

	work := &Document{lines: d.Lines(), eol: d.eol}
	res := &ImportResult{}

	for i := len(c.Versions) - 1; i >= 0; i-- {
		v := c.Versions[i]
		label := v.Version
		if v.IsUnreleased() {
			label = UnreleasedLabel
		} else {
			label = strings.TrimPrefix(strings.TrimSpace(label), "v")
		}

		for _, t := range ChangeTypes() {
			for _, text := range v.Changes.Get(t) {
				if work.HasEntry(label, t, text) {
					res.Skipped++
					continue
				}
				r, err := work.AddEntry(EntryOptions{
					Type:      t.String(),
					Message:   text,
					Version:   label,
					Date:      v.Date,
					OwnerRepo: ownerRepo,
				})
				if err != nil {
					return nil, err
				}
				res.Entries++
				if r.CreatedVersion || r.CreatedUnreleased {
					res.Versions++
				}
				res.LinksUpdated = res.LinksUpdated || r.LinksUpdated
			}
		}

		if v.Yanked && work.SetYanked(label) {
			res.Yanked++
		}
	}

	d.lines = work.lines
	return res, nil
}
