package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

const ashbyBaseURL = "https://api.ashbyhq.com/posting-api/job-board"

// ashbyJob represents a single job in the Ashby API response.
type ashbyJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	JobURL      string `json:"jobUrl"`
	PublishedAt string `json:"publishedAt"`
	IsListed    bool   `json:"isListed"`
	IsRemote    bool   `json:"isRemote"`
}

// ashbyResponse is the top-level Ashby job board API response.
type ashbyResponse struct {
	Jobs []ashbyJob `json:"jobs"`
}

// AshbyAdapter fetches postings from the Ashby public job board API.
type AshbyAdapter struct {
	client *http.Client
}

// NewAshbyAdapter creates the Ashby adapter.
func NewAshbyAdapter(client *http.Client) *AshbyAdapter {
	return &AshbyAdapter{client: client}
}

func (a *AshbyAdapter) Name() string { return "ashby" }

// Fetch retrieves all listed jobs from an Ashby job board. Unlisted jobs are
// skipped; they show up in the API but not on the public board.
func (a *AshbyAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s", ashbyBaseURL, org)

	var ashbyResp ashbyResponse
	if err := getJSON(ctx, a.client, url, a.Name(), org, &ashbyResp); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(ashbyResp.Jobs))
	for _, aj := range ashbyResp.Jobs {
		if !aj.IsListed {
			continue
		}
		if limit > 0 && len(postings) >= limit {
			break
		}

		nativeID := aj.ID
		if nativeID == "" {
			nativeID = aj.JobURL
		}
		remote := aj.IsRemote

		p := model.Posting{
			ID:        model.PostingID(a.Name(), org, nativeID),
			Provider:  a.Name(),
			Org:       org,
			Title:     aj.Title,
			Location:  aj.Location,
			URL:       aj.JobURL,
			WorkMode:  model.InferWorkMode(aj.Title, aj.Location, &remote),
			CreatedAt: parseTimestamp(aj.PublishedAt),
		}
		p.Remote = p.WorkMode == model.WorkModeRemote

		postings = append(postings, p)
	}

	return postings, nil
}
