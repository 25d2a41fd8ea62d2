package changelog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds a single remote fetch.
const DefaultRemoteTimeout = 10 * time.Second

// maxRemoteSize caps the body read from a remote changelog.
const maxRemoteSize = 10 << 20

// IsRemote reports whether location is an http(s) URL rather than a path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// FetchRemote downloads the raw content at rawURL.
func FetchRemote(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRemoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ioError("fetch", rawURL, fmt.Errorf("creating request: %w", err))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, ioError("fetch", rawURL, fmt.Errorf("making request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ioError("fetch", rawURL, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, ioError("fetch", rawURL, fmt.Errorf("reading response: %w", err))
	}
	return body, nil
}

// ValidateRemote fetches and validates a changelog published at rawURL.
// The last path segment of the URL is checked as the file name.
func ValidateRemote(ctx context.Context, rawURL string) *Report {
	r := &Report{Path: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil {
		r.addError(0, "Invalid URL: %v", err)
		return r
	}
	if !checkFileName(r, path.Base(u.Path)) {
		return r
	}

	body, err := FetchRemote(ctx, rawURL)
	if err != nil {
		r.addError(0, "Failed to fetch file: %v", err)
		return r
	}

	validateText(r, string(body))
	return r
}

// LoadRemoteSource fetches and checks a YAML changelog source.
func LoadRemoteSource(ctx context.Context, rawURL string) (*Changelog, error) {
	body, err := FetchRemote(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	c, err := LoadSourceFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return c, nil
}
