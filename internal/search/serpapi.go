package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobscout/jobscout/internal/model"
)

const serpAPIBaseURL = "https://serpapi.com/search.json"

// SerpAPIClient searches Google through SerpAPI. The upstream is metered per
// request, which is why every call must go through the query cache.
type SerpAPIClient struct {
	apiKey  string
	baseURL string
	num     int
	client  *http.Client
}

// NewSerpAPIClient creates a SerpAPI searcher. num caps organic results per
// query (SerpAPI accepts 10..100).
func NewSerpAPIClient(apiKey string, num int, client *http.Client) *SerpAPIClient {
	if num < 10 {
		num = 10
	}
	if num > 100 {
		num = 100
	}
	return &SerpAPIClient{
		apiKey:  apiKey,
		baseURL: serpAPIBaseURL,
		num:     num,
		client:  client,
	}
}

type serpAPIResponse struct {
	OrganicResults []serpAPIResult `json:"organic_results"`
}

type serpAPIResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Search runs one Google query and returns its organic results.
func (s *SerpAPIClient) Search(ctx context.Context, query string) ([]Result, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("serpapi search: missing API key")
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(s.num))
	params.Set("hl", "en")
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("serpapi search: unexpected status %d", resp.StatusCode),
		}
	}

	var sr serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("serpapi search: decode: %w", err)
	}

	results := make([]Result, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		if r.Link == "" {
			continue
		}
		results = append(results, Result{URL: r.Link, Title: r.Title, Snippet: r.Snippet})
	}
	return results, nil
}
