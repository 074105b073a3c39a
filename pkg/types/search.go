// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the swat-chat service:
// search results from the primary source, manual pages from the secondary
// source, the chat contract, and component configuration.
package types

// SummaryLimit is the number of characters of an abstract kept in a result.
const SummaryLimit = 400

// SearchResult is a paper returned by the primary source, projected to the
// fields the API exposes.
type SearchResult struct {
	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Summary is the first SummaryLimit characters of the abstract.
	Summary string `json:"summary" yaml:"summary"`

	// Published is the publication date as YYYY-MM-DD (UTC).
	Published string `json:"published" yaml:"published"`

	// Categories lists the arXiv category terms in feed order.
	Categories []string `json:"categories" yaml:"categories"`
}
