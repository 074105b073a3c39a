// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Page is the text of one page of the reference manual.
type Page struct {
	// Number is the 1-based page index in the source PDF.
	Number int `json:"number" yaml:"number"`

	// Content is the extracted page text.
	Content string `json:"content" yaml:"content"`
}

// LoadStatus indicates how the manual bootstrap ended.
type LoadStatus string

const (
	LoadLoaded LoadStatus = "loaded"
	LoadEmpty  LoadStatus = "empty"
	LoadFailed LoadStatus = "failed"
)

// LoadOutcome is the result of bootstrapping the manual. A failed outcome
// always has no pages and a non-empty Reason.
type LoadOutcome struct {
	Status LoadStatus `json:"status" yaml:"status"`
	Pages  []Page     `json:"-" yaml:"-"`
	Reason string     `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Path is the local manual file.
	Path string `json:"path" yaml:"path"`

	// Fetched reports whether this bootstrap downloaded the file.
	Fetched bool `json:"fetched" yaml:"fetched"`

	// FromCache reports whether the pages came from the page cache.
	FromCache bool `json:"from_cache" yaml:"from_cache"`
}

// PageCount returns the number of loaded pages.
func (o LoadOutcome) PageCount() int {
	return len(o.Pages)
}

// ManualMetadata describes a fetched manual. It is written as a YAML sidecar
// next to the PDF.
type ManualMetadata struct {
	SourceURL string    `json:"source_url" yaml:"source_url"`
	Path      string    `json:"path" yaml:"path"`
	Size      int64     `json:"size" yaml:"size"`
	SHA256    string    `json:"sha256" yaml:"sha256"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
