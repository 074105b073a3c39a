// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/swat-chat/internal/httputil"
	"github.com/pdiddy/swat-chat/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivClient queries the arXiv API with every query constrained to the
// configured domain scope.
type ArxivClient struct {
	Client *http.Client
	Config types.SearchConfig
}

// NewArxivClient returns a client using cfg. A nil client means
// http.DefaultClient.
func NewArxivClient(client *http.Client, cfg types.SearchConfig) *ArxivClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ArxivClient{Client: client, Config: cfg}
}

// Search sends the scoped query and returns at most maxResults records. A
// maxResults of zero or less uses DefaultMaxResults. The call is bounded by
// Config.Timeout; failures are returned as *Error.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	expr := BuildQuery(c.Config.Domain, query)
	if expr == "" {
		return nil, ErrEmptyQuery
	}

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if c.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.Timeout)
		defer cancel()
	}

	base := c.Config.BaseURL
	if base == "" {
		base = arxivAPIBase
	}
	params := url.Values{}
	params.Set("search_query", expr)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	resp, err := httputil.Do(ctx, c.Client, req, c.Config.MaxRetries)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("arXiv API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)}
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, classify(ctx, fmt.Errorf("parsing arXiv response: %w", err))
	}

	var results []types.SearchResult
	for _, entry := range feed.Entries {
		if strings.Contains(entry.ID, "/api/errors") {
			return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("arXiv API error: %s", collapseSpace(entry.Summary))}
		}
		if len(results) == maxResults {
			break
		}
		results = append(results, projectEntry(entry))
	}

	if len(results) == 0 {
		return nil, &Error{Kind: KindEmptyResult}
	}
	return results, nil
}

// projectEntry maps a feed entry to the exposed result fields.
func projectEntry(entry arxivEntry) types.SearchResult {
	r := types.SearchResult{
		Title:      collapseSpace(entry.Title),
		Summary:    truncateSummary(strings.TrimSpace(entry.Summary), types.SummaryLimit),
		Categories: []string{},
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published)); err == nil {
		r.Published = t.UTC().Format(time.DateOnly)
	}
	for _, c := range entry.Categories {
		if c.Term != "" {
			r.Categories = append(r.Categories, c.Term)
		}
	}
	return r
}

// BuildQuery embeds query, unmodified, into the boolean template of scope:
//
//	(ti:"Name" OR abs:"Name" OR abs:"Expansion"...) AND (abs:"Keyword" OR ...) AND (query)
//
// A blank query drops the last clause. A disabled scope leaves only the
// query clause.
func BuildQuery(scope types.DomainScope, query string) string {
	var clauses []string
	if scope.Enabled {
		var names []string
		if scope.Name != "" {
			names = append(names, field("ti", scope.Name), field("abs", scope.Name))
		}
		for _, e := range scope.Expansions {
			names = append(names, field("abs", e))
		}
		if c := anyOf(names); c != "" {
			clauses = append(clauses, c)
		}

		var keywords []string
		for _, k := range scope.Keywords {
			keywords = append(keywords, field("abs", k))
		}
		if c := anyOf(keywords); c != "" {
			clauses = append(clauses, c)
		}
	}
	if strings.TrimSpace(query) != "" {
		clauses = append(clauses, "("+query+")")
	}
	return strings.Join(clauses, " AND ")
}

func field(prefix, phrase string) string {
	return prefix + `:"` + phrase + `"`
}

func anyOf(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Categories []arxivCategory `xml:"category"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}
