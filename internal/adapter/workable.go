package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobscout/jobscout/internal/model"
)

const workableBaseURL = "https://apply.workable.com/api/v3/accounts"

// workableJob represents a single job in the Workable widget API response.
type workableJob struct {
	ID            string           `json:"id"`
	Shortcode     string           `json:"shortcode"`
	Title         string           `json:"title"`
	URL           string           `json:"url"`
	Location      workableLocation `json:"location"`
	Published     string           `json:"published_at"`
	WorkplaceType string           `json:"workplace_type"`
	Description   string           `json:"description"`
}

type workableLocation struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// workableResponse is the top-level Workable jobs response.
type workableResponse struct {
	Results []workableJob `json:"results"`
}

// WorkableAdapter fetches postings from the Workable public accounts API.
type WorkableAdapter struct {
	client *http.Client
}

// NewWorkableAdapter creates the Workable adapter.
func NewWorkableAdapter(client *http.Client) *WorkableAdapter {
	return &WorkableAdapter{client: client}
}

func (a *WorkableAdapter) Name() string { return "workable" }

// Fetch retrieves all jobs for a Workable account and normalizes them into
// the unified Posting model.
func (a *WorkableAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s/jobs", workableBaseURL, org)

	var wResp workableResponse
	if err := getJSON(ctx, a.client, url, a.Name(), org, &wResp); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(wResp.Results))
	for _, wj := range wResp.Results {
		if limit > 0 && len(postings) >= limit {
			break
		}

		nativeID := wj.ID
		if nativeID == "" {
			nativeID = wj.Shortcode
		}

		jobURL := wj.URL
		if jobURL == "" && wj.Shortcode != "" {
			jobURL = fmt.Sprintf("https://apply.workable.com/%s/j/%s/", org, strings.Trim(wj.Shortcode, "/"))
		}

		location := joinLocation(wj.Location.City, wj.Location.Region, wj.Location.Country)

		workMode := model.InferWorkMode(wj.Title, location, nil)
		switch strings.ToLower(wj.WorkplaceType) {
		case "remote":
			workMode = model.WorkModeRemote
		case "hybrid":
			workMode = model.WorkModeHybrid
		case "on_site", "onsite":
			workMode = model.WorkModeOnsite
		}

		p := model.Posting{
			ID:        model.PostingID(a.Name(), org, nativeID),
			Provider:  a.Name(),
			Org:       org,
			Title:     wj.Title,
			Location:  location,
			URL:       jobURL,
			WorkMode:  workMode,
			Remote:    workMode == model.WorkModeRemote,
			CreatedAt: parseTimestamp(wj.Published),
			Extra:     model.Extra{Description: extractText(wj.Description)},
		}

		postings = append(postings, p)
	}

	return postings, nil
}
