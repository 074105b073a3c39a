// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the primary source (arXiv) with a domain-scoped
// boolean expression and shapes the response into bounded result records.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/swat-chat/pkg/types"
)

// DefaultMaxResults is the result cap used when the caller passes zero.
const DefaultMaxResults = 3

// Searcher runs a scoped query against the primary source.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}

// Kind classifies a search failure.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindTransport   Kind = "transport"
	KindEmptyResult Kind = "empty_result"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrTimeout     = errors.New("search timed out")
	ErrTransport   = errors.New("search transport failure")
	ErrEmptyResult = errors.New("search returned no results")
	ErrEmptyQuery  = errors.New("empty query with domain scope disabled")
)

// Error is the typed outcome of a failed search.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindTimeout:
		return target == ErrTimeout
	case KindTransport:
		return target == ErrTransport
	case KindEmptyResult:
		return target == ErrEmptyResult
	}
	return false
}

// classify wraps err as a timeout when the context deadline passed and as a
// transport failure otherwise.
func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

// truncateSummary returns the first limit characters of s. The cut never
// splits a multi-byte character.
func truncateSummary(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// collapseSpace joins the fields of s with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-10s  %s\n", "Rank", "Title", "Published", "Categories")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %-10s  %s\n",
			i+1, truncate(r.Title, 60), r.Published, strings.Join(r.Categories, ","))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	if results == nil {
		results = []types.SearchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return truncateSummary(s, max-3) + "..."
}
