package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Document is a changelog held as an ordered sequence of lines.
// A Document is owned by a single caller for the duration of an edit.
type Document struct {
	lines []string
	// eol is the line terminator written back by String.
	eol string
}

// Parse splits text into a Document. The line ending of the first line
// (LF or CRLF) is kept for the whole document and a single trailing newline
// does not produce an extra empty line.
func Parse(text string) *Document {
	eol := "\n"
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		eol = "\r\n"
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return &Document{eol: eol}
	}
	return &Document{lines: strings.Split(strings.TrimSuffix(text, "\n"), "\n"), eol: eol}
}

// Load reads the changelog at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("reading changelog", path, err)
	}
	return Parse(string(data)), nil
}

// Save writes the whole document to path. The content is written to a
// temporary file next to the destination and renamed over it. A symlinked
// path is resolved first so the link itself survives.
func (d *Document) Save(path string) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return ioError("writing changelog", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(d.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioError("writing changelog", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ioError("writing changelog", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return ioError("writing changelog", path, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return ioError("writing changelog", path, fmt.Errorf("replacing file: %w", err))
	}
	return nil
}

// String joins the lines with the document's line ending and terminates the
// text with one.
func (d *Document) String() string {
	eol := d.eol
	if eol == "" {
		eol = "\n"
	}
	return strings.Join(d.lines, eol) + eol
}

// Lines returns a copy of the current lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the line at i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// IsBlank reports whether line i is empty or whitespace. Out-of-range
// positions count as blank.
func (d *Document) IsBlank(i int) bool {
	return strings.TrimSpace(d.Line(i)) == ""
}

// Insert places lines before position i (i == Len appends).
func (d *Document) Insert(i int, lines ...string) {
	i = max(0, min(i, len(d.lines)))
	d.lines = slices.Insert(d.lines, i, lines...)
}

// Delete removes lines in the half-open range [from, to).
func (d *Document) Delete(from, to int) {
	from = max(0, from)
	to = min(to, len(d.lines))
	if from >= to {
		return
	}
	d.lines = slices.Delete(d.lines, from, to)
}

// insertSeparated inserts block at i, adding blank lines so the block is
// separated from non-blank neighbours. Returns the position of the block's
// first line.
func (d *Document) insertSeparated(i int, block ...string) int {
	lead := i > 0 && !d.IsBlank(i-1)
	trail := !d.IsBlank(i)

	lines := make([]string, 0, len(block)+2)
	if lead {
		lines = append(lines, "")
	}
	lines = append(lines, block...)
	if trail {
		lines = append(lines, "")
	}
	d.Insert(i, lines...)

	if lead {
		return i + 1
	}
	return i
}
