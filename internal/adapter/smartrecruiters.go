package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

const smartRecruitersBaseURL = "https://api.smartrecruiters.com/v1/companies"

// smartRecruitersPosting represents one entry in the SmartRecruiters
// postings list response.
type smartRecruitersPosting struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Ref      string                  `json:"ref"`
	Released string                  `json:"releasedDate"`
	Location smartRecruitersLocation `json:"location"`
}

type smartRecruitersLocation struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Remote  bool   `json:"remote"`
}

// smartRecruitersResponse is the top-level postings list response.
type smartRecruitersResponse struct {
	Content []smartRecruitersPosting `json:"content"`
}

// SmartRecruitersAdapter fetches postings from the SmartRecruiters public
// postings API.
type SmartRecruitersAdapter struct {
	client *http.Client
}

// NewSmartRecruitersAdapter creates the SmartRecruiters adapter.
func NewSmartRecruitersAdapter(client *http.Client) *SmartRecruitersAdapter {
	return &SmartRecruitersAdapter{client: client}
}

func (a *SmartRecruitersAdapter) Name() string { return "smartrecruiters" }

// Fetch retrieves postings for a SmartRecruiters company. The list API has
// no human-facing URL field, so the job-board URL is derived from the
// posting id instead of resolving every posting through the detail endpoint.
func (a *SmartRecruitersAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	pageSize := 100
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}
	url := fmt.Sprintf("%s/%s/postings?limit=%d", smartRecruitersBaseURL, org, pageSize)

	var srResp smartRecruitersResponse
	if err := getJSON(ctx, a.client, url, a.Name(), org, &srResp); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(srResp.Content))
	for _, sp := range srResp.Content {
		if limit > 0 && len(postings) >= limit {
			break
		}

		location := joinLocation(sp.Location.City, sp.Location.Region, sp.Location.Country)
		remote := sp.Location.Remote

		jobURL := sp.Ref
		if sp.ID != "" {
			jobURL = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", org, sp.ID)
		}

		p := model.Posting{
			ID:        model.PostingID(a.Name(), org, sp.ID),
			Provider:  a.Name(),
			Org:       org,
			Title:     sp.Name,
			Location:  location,
			URL:       jobURL,
			WorkMode:  model.InferWorkMode(sp.Name, location, &remote),
			CreatedAt: parseTimestamp(sp.Released),
		}
		p.Remote = p.WorkMode == model.WorkModeRemote

		postings = append(postings, p)
	}

	return postings, nil
}
