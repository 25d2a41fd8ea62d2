// Package git reads repository metadata changelogmd needs from the project's
// git repository: the repository root and the GitHub owner/repo slug of a
// remote. It uses go-git so no git binary is required.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotGitHub is returned when a remote URL does not point at github.com.
var ErrNotGitHub = errors.New("remote is not a github.com repository")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository reports whether dir is inside a git repository.
func IsGitRepository(dir string) bool {
	_, err := openRepo(dir)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", dir, result)
	return result
}

// RepositoryRoot returns the absolute path to the root of the repository containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// ProjectName returns the base name of the repository root containing dir.
func ProjectName(dir string) (string, error) {
	root, err := RepositoryRoot(dir)
	if err != nil {
		return "", err
	}
	return filepath.Base(root), nil
}

// RemoteURL returns the first configured URL of the named remote.
func RemoteURL(dir, remoteName string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("looking up remote %q: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteName)
	}

	logDebug("[git] remote %s: %s", remoteName, urls[0])
	return urls[0], nil
}

// DetectOwnerRepo returns the GitHub owner/repo slug of the named remote.
func DetectOwnerRepo(dir, remoteName string) (string, error) {
	remoteURL, err := RemoteURL(dir, remoteName)
	if err != nil {
		return "", err
	}
	return OwnerRepoFromURL(remoteURL)
}

// OwnerRepoFromURL extracts "owner/repo" from a GitHub remote URL.
// Supported forms:
//
//	https://github.com/owner/repo(.git)
//	ssh://git@github.com/owner/repo(.git)
//	git@github.com:owner/repo(.git)
func OwnerRepoFromURL(remoteURL string) (string, error) {
	remoteURL = strings.TrimSpace(remoteURL)

	var host, repoPath string
	if isSCPLike(remoteURL) {
		userHost, p, _ := strings.Cut(remoteURL, ":")
		_, host, _ = strings.Cut(userHost, "@")
		repoPath = p
	} else {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", remoteURL, err)
		}
		host = u.Hostname()
		repoPath = u.Path
	}

	if !strings.EqualFold(host, "github.com") {
		return "", fmt.Errorf("%q: %w", remoteURL, ErrNotGitHub)
	}

	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	parts := strings.Split(repoPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("remote URL %q does not name owner/repo", remoteURL)
	}

	return parts[0] + "/" + parts[1], nil
}

// isSCPLike reports whether s is an scp-style address such as git@host:path.
func isSCPLike(s string) bool {
	if strings.Contains(s, "://") {
		return false
	}
	at := strings.Index(s, "@")
	colon := strings.Index(s, ":")
	return at > 0 && colon > at
}
