package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	clierrors "github.com/ariel-frischer/changelogmd/internal/errors"
	"github.com/ariel-frischer/changelogmd/internal/git"
)

// changelogPath returns --file, or the configured changelog path.
func changelogPath() string {
	if fileFlag != "" {
		return fileFlag
	}
	if appConfig != nil {
		return appConfig.ChangelogPath
	}
	return changelog.CanonicalFilename
}

// loadDocument reads the changelog, mapping a missing file to a CLI error.
func loadDocument(path string) (*changelog.Document, error) {
	doc, err := changelog.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, clierrors.ChangelogNotFound(path)
		}
		return nil, err
	}
	debugf("loaded %s (%d lines)", path, doc.Len())
	return doc, nil
}

// saveDocument writes the changelog back in place.
func saveDocument(doc *changelog.Document, path string) error {
	if err := doc.Save(path); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	debugf("wrote %s (%d lines)", path, doc.Len())
	return nil
}

// loadOutline reads the changelog and derives its structured view.
func loadOutline(path string) (*changelog.Changelog, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Outline(), nil
}

// resolveOwnerRepo picks the fallback slug for link references:
// the flag, then config, then the git remote when detection is enabled.
// Slugs already present in the document's links take precedence in the engine,
// so detection is skipped when the document has them.
func resolveOwnerRepo(doc *changelog.Document, flagValue, dir string) string {
	if flagValue != "" {
		return flagValue
	}
	if appConfig == nil {
		return ""
	}
	if appConfig.OwnerRepo != "" {
		return appConfig.OwnerRepo
	}
	if !appConfig.DetectRemote {
		return ""
	}
	if doc != nil && doc.ResolveOwnerRepo("") != "" {
		return ""
	}

	slug, err := git.DetectOwnerRepo(dir, appConfig.RemoteName)
	if err != nil {
		debugf("owner/repo detection skipped: %v", err)
		return ""
	}
	debugf("owner/repo from remote %s: %s", appConfig.RemoteName, slug)
	return slug
}

// changelogDir is the directory used to find the git repository for path.
func changelogDir(path string) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// formatOptions returns terminal formatting options for the command output.
func formatOptions() changelog.FormatOptions {
	return changelog.FormatOptions{Plain: isPlain()}
}

// versionError maps a missing version to a CLI error listing the alternatives.
func versionError(err error) error {
	var notFound *changelog.VersionNotFoundError
	if errors.As(err, &notFound) {
		return clierrors.VersionNotFound(notFound)
	}
	return err
}
