package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobscout/jobscout/internal/model"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// leverCategories represents the categories object in a Lever job.
type leverCategories struct {
	Team         string   `json:"team"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Commitment   string   `json:"commitment"`
	AllLocations []string `json:"allLocations"`
}

// leverJob represents a single job in the Lever API response.
type leverJob struct {
	ID               string          `json:"id"`
	Text             string          `json:"text"`
	DescriptionPlain string          `json:"descriptionPlain"`
	Categories       leverCategories `json:"categories"`
	CreatedAt        int64           `json:"createdAt"`
	WorkplaceType    string          `json:"workplaceType"`
	HostedURL        string          `json:"hostedUrl"`
	ApplyURL         string          `json:"applyUrl"`
}

// LeverAdapter fetches postings from the Lever public postings API.
type LeverAdapter struct {
	client *http.Client
}

// NewLeverAdapter creates the Lever adapter.
func NewLeverAdapter(client *http.Client) *LeverAdapter {
	return &LeverAdapter{client: client}
}

func (a *LeverAdapter) Name() string { return "lever" }

// Fetch retrieves all jobs from a Lever board and normalizes them into the
// unified Posting model.
func (a *LeverAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s?mode=json", leverBaseURL, org)

	var leverJobs []leverJob
	if err := getJSON(ctx, a.client, url, a.Name(), org, &leverJobs); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(leverJobs))
	for _, lj := range leverJobs {
		if limit > 0 && len(postings) >= limit {
			break
		}

		// Prefer allLocations when present, fall back to the single location.
		location := lj.Categories.Location
		if len(lj.Categories.AllLocations) > 0 {
			location = strings.Join(lj.Categories.AllLocations, ", ")
		}

		workMode := model.InferWorkMode(lj.Text, location, nil)
		switch strings.ToLower(lj.WorkplaceType) {
		case "remote":
			workMode = model.WorkModeRemote
		case "hybrid":
			workMode = model.WorkModeHybrid
		case "on-site", "onsite":
			workMode = model.WorkModeOnsite
		}

		p := model.Posting{
			ID:        model.PostingID(a.Name(), org, lj.ID),
			Provider:  a.Name(),
			Org:       org,
			Title:     lj.Text,
			Location:  location,
			URL:       lj.HostedURL,
			WorkMode:  workMode,
			Remote:    workMode == model.WorkModeRemote,
			CreatedAt: millisToTime(lj.CreatedAt),
			Extra: model.Extra{
				Description: lj.DescriptionPlain,
				ApplyURL:    lj.ApplyURL,
				Department:  lj.Categories.Department,
			},
		}

		postings = append(postings, p)
	}

	return postings, nil
}
