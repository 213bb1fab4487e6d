package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

// recruiteeOffer represents a single offer in the Recruitee careers API.
type recruiteeOffer struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CareersURL  string `json:"careers_url"`
	CreatedAt   string `json:"created_at"`
	Remote      bool   `json:"remote"`
	Description string `json:"description"`
}

// recruiteeResponse is the top-level Recruitee offers response.
type recruiteeResponse struct {
	Offers []recruiteeOffer `json:"offers"`
}

// RecruiteeAdapter fetches postings from the Recruitee public careers API.
type RecruiteeAdapter struct {
	client *http.Client
}

// NewRecruiteeAdapter creates the Recruitee adapter.
func NewRecruiteeAdapter(client *http.Client) *RecruiteeAdapter {
	return &RecruiteeAdapter{client: client}
}

func (a *RecruiteeAdapter) Name() string { return "recruitee" }

// Fetch retrieves all offers for a Recruitee company and normalizes them
// into the unified Posting model.
func (a *RecruiteeAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	url := fmt.Sprintf("https://api.recruitee.com/c/%s/offers", org)

	var rResp recruiteeResponse
	if err := getJSON(ctx, a.client, url, a.Name(), org, &rResp); err != nil {
		return nil, err
	}

	postings := make([]model.Posting, 0, len(rResp.Offers))
	for _, ro := range rResp.Offers {
		if limit > 0 && len(postings) >= limit {
			break
		}

		location := joinLocation(ro.City, ro.Country)
		remote := ro.Remote

		p := model.Posting{
			ID:        model.PostingID(a.Name(), org, fmt.Sprintf("%d", ro.ID)),
			Provider:  a.Name(),
			Org:       org,
			Title:     ro.Title,
			Location:  location,
			URL:       ro.CareersURL,
			WorkMode:  model.InferWorkMode(ro.Title, location, &remote),
			CreatedAt: parseTimestamp(ro.CreatedAt),
			Extra:     model.Extra{Description: extractText(ro.Description)},
		}
		p.Remote = p.WorkMode == model.WorkModeRemote

		postings = append(postings, p)
	}

	return postings, nil
}
