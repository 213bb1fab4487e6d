// Package search provides the external web-search capability discovery
// relies on to find ATS boards. All callers reach it through the query cache.
package search

import "context"

// Result is one organic search hit.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search and returns organic results in rank order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
