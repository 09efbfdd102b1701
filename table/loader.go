// SPDX-License-Identifier: MIT

package table

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Loader fetches a table from a named source (file path, URL, fixture key).
type Loader interface {
	Load(ctx context.Context, source string) (*Table, error)
}

// SourceLoader reads CSV tables from local paths or http(s) URLs.
// The zero value uses http.DefaultClient.
type SourceLoader struct {
	Client *http.Client
}

var _ Loader = SourceLoader{}

// Load opens source and parses it with ReadCSV.
func (l SourceLoader) Load(ctx context.Context, source string) (*Table, error) {
	if isURL(source) {
		return l.loadURL(ctx, source)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", source, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return t, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l SourceLoader) loadURL(ctx context.Context, url string) (*Table, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("table: request %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("table: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("table: fetch %s: status %d: %w", url, resp.StatusCode, ErrInvalidInput)
	}
	t, err := ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return t, nil
}

// MapLoader serves tables held in memory, keyed by source name.
type MapLoader map[string]*Table

// Load returns the table registered under source.
func (m MapLoader) Load(ctx context.Context, source string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, ok := m[source]
	if !ok {
		return nil, fmt.Errorf("table: no table registered as %q: %w", source, os.ErrNotExist)
	}
	return t, nil
}
