// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads the reference manual and records metadata about
// the fetched file. A file that already exists on disk is never fetched
// again.
package acquire

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/swat-chat/internal/log"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// FetchError reports a non-success HTTP status from the remote host.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Fetcher downloads url to destPath.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) (*types.ManualMetadata, error)
}

// Ensure fetches url to path unless path already exists. It reports whether
// a fetch happened.
func Ensure(ctx context.Context, f Fetcher, url, path string) (fetched bool, err error) {
	if _, err := os.Stat(path); err == nil {
		log.Debug("manual already present, skipping fetch", "path", path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}

	log.Info("downloading manual", "url", url, "path", path)
	meta, err := f.Fetch(ctx, url, path)
	if err != nil {
		return false, fmt.Errorf("downloading %s: %w", url, err)
	}
	log.Info("download completed", "path", path, "bytes", meta.Size)
	return true, nil
}

// HTTPFetcher fetches files over HTTP with a per-call timeout.
type HTTPFetcher struct {
	Client *http.Client
	Config types.ManualConfig
}

// NewHTTPFetcher returns a fetcher using cfg. A nil client means
// http.DefaultClient.
func NewHTTPFetcher(client *http.Client, cfg types.ManualConfig) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client, Config: cfg}
}

// Fetch downloads url into destPath through a temporary file in the same
// directory and writes the metadata sidecar. Any status other than 200 is a
// *FetchError and leaves no file behind.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, destPath string) (*types.ManualMetadata, error) {
	if f.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.Config.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.UserAgent)
	}
	req.Header.Set("Accept", "application/pdf")
	if f.Config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Config.Token)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	h := sha256.New()
	n, copyErr := io.Copy(io.MultiWriter(tmpFile, h), resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("renaming temp file: %w", err)
	}

	meta := &types.ManualMetadata{
		SourceURL: url,
		Path:      destPath,
		Size:      n,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		FetchedAt: time.Now().UTC(),
	}
	if err := WriteMetadata(meta, MetadataPath(destPath)); err != nil {
		log.Error(err, "writing manual metadata", "path", destPath)
	}
	return meta, nil
}

// MetadataPath returns the sidecar path for a fetched file.
func MetadataPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".meta.yaml"
}

// WriteMetadata writes meta as YAML to path.
func WriteMetadata(meta *types.ManualMetadata, path string) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadMetadata reads a sidecar written by WriteMetadata.
func ReadMetadata(path string) (*types.ManualMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta types.ManualMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return &meta, nil
}
