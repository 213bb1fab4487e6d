package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobscout/jobscout/internal/model"
)

const duckDuckGoBaseURL = "https://duckduckgo.com/html/"

// DuckDuckGoClient searches the DuckDuckGo HTML endpoint. Keyless fallback
// for deployments without a SerpAPI account; results are noisier and capped.
type DuckDuckGoClient struct {
	baseURL string
	limit   int
	client  *http.Client
}

// NewDuckDuckGoClient creates a DuckDuckGo searcher returning at most limit results.
func NewDuckDuckGoClient(limit int, client *http.Client) *DuckDuckGoClient {
	if limit <= 0 {
		limit = 50
	}
	return &DuckDuckGoClient{
		baseURL: duckDuckGoBaseURL,
		limit:   limit,
		client:  client,
	}
}

// Search scrapes result links from the DuckDuckGo HTML page.
func (d *DuckDuckGoClient) Search(ctx context.Context, query string) ([]Result, error) {
	reqURL := d.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}
	req.Header.Set("User-Agent", "jobscout/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("duckduckgo search: unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: parse: %w", err)
	}

	var results []Result
	doc.Find("a.result__a, a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(results) >= d.limit {
			return false
		}
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return true
		}

		// DuckDuckGo rewrites outbound links as /l/?uddg=<encoded>.
		if strings.Contains(href, "duckduckgo.com/l/?") || strings.HasPrefix(href, "/l/?") {
			if decoded := decodeUDDGLink(href); decoded != "" {
				href = decoded
			}
		}

		if !strings.HasPrefix(href, "http") || strings.Contains(href, "duckduckgo.com") {
			return true
		}

		results = append(results, Result{URL: href, Title: strings.TrimSpace(a.Text())})
		return true
	})

	return results, nil
}

// decodeUDDGLink unwraps DuckDuckGo's redirect links to the target URL.
func decodeUDDGLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	v := u.Query().Get("uddg")
	if v == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(v)
	if err != nil {
		return ""
	}
	return decoded
}
