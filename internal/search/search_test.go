// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/swat-chat/pkg/types"
)

func swatScope() types.DomainScope {
	return types.DomainScope{
		Enabled:    true,
		Name:       "SWaT",
		Expansions: []string{"Secure Water Treatment"},
		Keywords:   []string{"cyber physical", "industrial control", "ICS", "water treatment"},
	}
}

// --- Query construction ---

func TestBuildQuery(t *testing.T) {
	const fixed = `(ti:"SWaT" OR abs:"SWaT" OR abs:"Secure Water Treatment") AND ` +
		`(abs:"cyber physical" OR abs:"industrial control" OR abs:"ICS" OR abs:"water treatment")`

	tests := []struct {
		name  string
		scope types.DomainScope
		query string
		want  string
	}{
		{"scoped query", swatScope(), "anomaly detection", fixed + " AND (anomaly detection)"},
		{"query passed unsanitized", swatScope(), `x") OR ti:"y`, fixed + ` AND (x") OR ti:"y)`},
		{"empty query keeps fixed clauses", swatScope(), "", fixed},
		{"whitespace query keeps fixed clauses", swatScope(), "   ", fixed},
		{"scope disabled", types.DomainScope{Name: "SWaT"}, "attack", "(attack)"},
		{"scope disabled empty query", types.DomainScope{}, "", ""},
		{
			"expansions only",
			types.DomainScope{Enabled: true, Expansions: []string{"Water Distribution"}},
			"leak",
			`(abs:"Water Distribution") AND (leak)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.scope, tt.query); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Summary truncation ---

func TestTruncateSummary(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := truncateSummary(long, 400); len(got) != 400 {
		t.Errorf("len = %d, want 400", len(got))
	}

	short := "short abstract"
	if got := truncateSummary(short, 400); got != short {
		t.Errorf("got %q, want unchanged", got)
	}

	exact := strings.Repeat("b", 400)
	if got := truncateSummary(exact, 400); got != exact {
		t.Error("400-character summary should be unchanged")
	}

	multi := strings.Repeat("é", 450)
	got := truncateSummary(multi, 400)
	if utf8.RuneCountInString(got) != 400 {
		t.Errorf("rune count = %d, want 400", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Error("truncated summary is not valid UTF-8")
	}
	if !strings.HasPrefix(multi, got) {
		t.Error("truncated summary is not a prefix of the original")
	}
}

func TestCollapseSpace(t *testing.T) {
	got := collapseSpace("  Attack Detection\n   in the SWaT\tTestbed ")
	if got != "Attack Detection in the SWaT Testbed" {
		t.Errorf("collapseSpace = %q", got)
	}
}

// --- Errors ---

func TestErrorIs(t *testing.T) {
	tests := []struct {
		kind   Kind
		target error
	}{
		{KindTimeout, ErrTimeout},
		{KindTransport, ErrTransport},
		{KindEmptyResult, ErrEmptyResult},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var err error = &Error{Kind: tt.kind, Err: errors.New("boom")}
			if !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
			wrapped := fmt.Errorf("handler: %w", err)
			if !errors.Is(wrapped, tt.target) {
				t.Error("sentinel should match through wrapping")
			}
		})
	}

	err := &Error{Kind: KindTimeout}
	if errors.Is(err, ErrTransport) {
		t.Error("timeout should not match ErrTransport")
	}
}

func TestClassify(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	if got := classify(ctx, errors.New("read failed")); got.Kind != KindTimeout {
		t.Errorf("expired context: kind = %s, want timeout", got.Kind)
	}
	if got := classify(context.Background(), errors.New("connection refused")); got.Kind != KindTransport {
		t.Errorf("live context: kind = %s, want transport", got.Kind)
	}
	if got := classify(context.Background(), fmt.Errorf("wrapped: %w", context.DeadlineExceeded)); got.Kind != KindTimeout {
		t.Errorf("deadline error: kind = %s, want timeout", got.Kind)
	}
}

// --- Output formatting ---

func TestFormatTable(t *testing.T) {
	results := []types.SearchResult{
		{Title: "Paper A", Published: "2023-01-01", Categories: []string{"cs.CR", "eess.SY"}},
		{Title: strings.Repeat("Long title ", 10), Published: "2022-06-01"},
	}

	var buf bytes.Buffer
	FormatTable(results, &buf)
	s := buf.String()

	if !strings.Contains(s, "Paper A") {
		t.Error("table should contain 'Paper A'")
	}
	if !strings.Contains(s, "cs.CR,eess.SY") {
		t.Error("table should list categories")
	}
	if !strings.Contains(s, "...") {
		t.Error("long titles should be truncated")
	}
	if !strings.Contains(s, "2 results") {
		t.Error("table should report the result count")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No results") {
		t.Error("empty output should say 'No results'")
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON([]types.SearchResult{{Title: "Paper A", Published: "2023-01-01"}}, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var parsed []types.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Title != "Paper A" {
		t.Errorf("parsed = %+v", parsed)
	}

	buf.Reset()
	if err := FormatJSON(nil, &buf); err != nil {
		t.Fatalf("FormatJSON(nil): %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("nil results = %q, want []", buf.String())
	}
}
