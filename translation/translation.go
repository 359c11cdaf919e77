// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package translation downloads translation files from a translation server.
package translation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultFile is the translation file requested from the server and installed into the localization folder
const DefaultFile = "global.ini"

// Fetcher fetches translation files over HTTP
//
// Files are served at <server>/translations/<version>/<file>.
type Fetcher struct {
	client *http.Client
	server string
}

// NewFetcher returns a new Fetcher for the given server, using http.DefaultClient if client is nil
func NewFetcher(client *http.Client, server string) (*Fetcher, error) {
	if client == nil {
		client = http.DefaultClient
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid translation server %q: %w", server, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid translation server %q: scheme must be http or https", server)
	}

	return &Fetcher{client: client, server: strings.TrimRight(server, "/")}, nil
}

// URL returns the location of file for the given game version
func (f *Fetcher) URL(version, file string) string {
	return strings.Join([]string{
		f.server,
		"translations",
		url.PathEscape(version),
		url.PathEscape(file),
	}, "/")
}

// Fetch performs a GET request for the version's translation file and returns the response body
func (f *Fetcher) Fetch(ctx context.Context, version, file string) (io.ReadCloser, error) {
	raw := f.URL(version, file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "scloc")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: %s", raw, resp.Status)
	}
	return resp.Body, nil
}

// FetchString fetches the version's translation file into memory
func (f *Fetcher) FetchString(ctx context.Context, version, file string) (string, error) {
	rc, err := f.Fetch(ctx, version, file)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.URL(version, file), err)
	}
	return string(b), nil
}
