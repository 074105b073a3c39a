package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/swat-chat/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv within the SWaT domain scope",
	Long: `Search sends the query to the arXiv API AND-ed with the configured domain
scope and prints the projected results. With no query the domain scope alone
is searched.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", search.DefaultMaxResults, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	query := strings.Join(args, " ")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if limit := cfg.Search.MaxResultsLimit; limit > 0 && maxResults > limit {
		maxResults = limit
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	client := search.NewArxivClient(&http.Client{}, cfg.Search)
	results, err := client.Search(cmd.Context(), query, maxResults)
	if err != nil && !errors.Is(err, search.ErrEmptyResult) {
		return fmt.Errorf("searching arXiv: %w", err)
	}

	if asJSON {
		return search.FormatJSON(results, os.Stdout)
	}
	search.FormatTable(results, os.Stdout)
	return nil
}
