package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// greenhouseJob represents a single job in the Greenhouse API response.
type greenhouseJob struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Location    greenhouseLocation `json:"location"`
	AbsoluteURL string             `json:"absolute_url"`
	Content     string             `json:"content"`
	UpdatedAt   string             `json:"updated_at"`
	FirstPub    string             `json:"first_published"`
}

type greenhouseLocation struct {
	Name string `json:"name"`
}

// greenhouseResponse is the top-level Greenhouse jobs API response.
type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// GreenhouseAdapter fetches postings from the Greenhouse public boards API.
type GreenhouseAdapter struct {
	client *http.Client
}

// NewGreenhouseAdapter creates the Greenhouse adapter.
func NewGreenhouseAdapter(client *http.Client) *GreenhouseAdapter {
	return &GreenhouseAdapter{client: client}
}

func (a *GreenhouseAdapter) Name() string { return "greenhouse" }

// Fetch retrieves all jobs from a Greenhouse board and normalizes them into
// the unified Posting model.
func (a *GreenhouseAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s/jobs?content=true", greenhouseBaseURL, org)

	var ghResp greenhouseResponse
	if err := getJSON(ctx, a.client, url, a.Name(), org, &ghResp); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(ghResp.Jobs))
	for _, gj := range ghResp.Jobs {
		if limit > 0 && len(postings) >= limit {
			break
		}

		nativeID := fmt.Sprintf("%d", gj.ID)
		p := model.Posting{
			ID:       model.PostingID(a.Name(), org, nativeID),
			Provider: a.Name(),
			Org:      org,
			Title:    gj.Title,
			Location: gj.Location.Name,
			URL:      gj.AbsoluteURL,
			WorkMode: model.InferWorkMode(gj.Title, gj.Location.Name, nil),
			Extra:    model.Extra{Description: extractText(gj.Content)},
		}
		p.Remote = p.WorkMode == model.WorkModeRemote

		// first_published is the real posting time; updated_at moves on edits.
		if t := parseTimestamp(gj.FirstPub); t != nil {
			p.CreatedAt = t
		} else {
			p.CreatedAt = parseTimestamp(gj.UpdatedAt)
		}

		postings = append(postings, p)
	}

	return postings, nil
}
