package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

const workdayPageSize = 20

// workdayRequest is the POST body for the Workday jobs listing endpoint.
type workdayRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

// workdayResponse is the paged response from the Workday jobs listing endpoint.
type workdayResponse struct {
	Total       int              `json:"total"`
	JobPostings []workdayListing `json:"jobPostings"`
}

type workdayListing struct {
	Title         string   `json:"title"`
	ExternalPath  string   `json:"externalPath"`
	LocationsText string   `json:"locationsText"`
	PostedOn      string   `json:"postedOn"`
	BulletFields  []string `json:"bulletFields"`
}

// WorkdayAdapter fetches postings from a hosted Workday career site. The
// tenant and site id both default to the org slug, which is what boards at
// <org>.myworkdayjobs.com resolve to when the site does not say otherwise.
type WorkdayAdapter struct {
	client *http.Client
}

// NewWorkdayAdapter creates the Workday adapter.
func NewWorkdayAdapter(client *http.Client) *WorkdayAdapter {
	return &WorkdayAdapter{client: client}
}

func (a *WorkdayAdapter) Name() string { return "workday" }

// Fetch paginates the Workday listing endpoint and normalizes the listings
// into the unified Posting model. Workday has no public bulk detail API, so
// postings carry listing-level data only.
func (a *WorkdayAdapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	host := org + ".myworkdayjobs.com"
	endpoint := fmt.Sprintf("https://%s/wday/cxs/%s/%s/jobs", host, org, org)
	now := time.Now().UTC()

	var postings []model.Posting
	offset := 0
	for {
		pageSize := workdayPageSize
		if limit > 0 && limit-len(postings) < pageSize {
			pageSize = limit - len(postings)
		}

		body := workdayRequest{
			AppliedFacets: map[string]any{},
			Limit:         pageSize,
			Offset:        offset,
		}
		var page workdayResponse
		if err := postJSON(ctx, a.client, endpoint, a.Name(), org, body, &page); err != nil {
			return nil, err
		}
		if len(page.JobPostings) == 0 {
			break
		}

		for _, l := range page.JobPostings {
			postings = append(postings, a.posting(org, host, l, now))
			if limit > 0 && len(postings) >= limit {
				return postings, nil
			}
		}

		offset += len(page.JobPostings)
		if offset >= page.Total || len(page.JobPostings) < pageSize {
			break
		}
	}

	return postings, nil
}

func (a *WorkdayAdapter) posting(org, host string, l workdayListing, now time.Time) model.Posting {
	nativeID := l.ExternalPath
	if len(l.BulletFields) > 0 && l.BulletFields[0] != "" {
		nativeID = l.BulletFields[0]
	}

	// locationsText collapses multi-location postings to "2 Locations"; the
	// external path still carries the primary one (/job/Israel-Raanana/...).
	location := l.LocationsText
	if location == "" || workdayAmbiguousLocRegex.MatchString(location) {
		if loc := workdayLocationFromPath(l.ExternalPath); loc != "" {
			location = loc
		}
	}

	p := model.Posting{
		ID:        model.PostingID(a.Name(), org, nativeID),
		Provider:  a.Name(),
		Org:       org,
		Title:     l.Title,
		Location:  location,
		URL:       workdayJobURL(host, org, l.ExternalPath),
		WorkMode:  model.InferWorkMode(l.Title, location, nil),
		CreatedAt: parsePostedOn(l.PostedOn, now),
	}
	p.Remote = p.WorkMode == model.WorkModeRemote
	return p
}

// workdayJobURL builds the public job page URL from an external path. The
// site id segment is inserted unless the path already carries it.
func workdayJobURL(host, site, externalPath string) string {
	if externalPath == "" {
		return ""
	}
	if strings.HasPrefix(externalPath, "http://") || strings.HasPrefix(externalPath, "https://") {
		return externalPath
	}
	ext := externalPath
	if !strings.HasPrefix(ext, "/") {
		ext = "/" + ext
	}
	if strings.Contains(ext, "/"+site+"/") {
		return "https://" + host + ext
	}
	return "https://" + host + "/" + site + ext
}

var (
	workdayAmbiguousLocRegex = regexp.MustCompile(`^\d+ Locations?$`)
	workdayLocaleRegex       = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)
	workdayDaysAgoRegex      = regexp.MustCompile(`^Posted (\d+) Days? Ago$`)
)

// workdayLocationFromPath recovers a location from external paths shaped like
// /job/Israel-Raanana/Engineer_R123 or /en-US/job/Israel-Raanana/....
func workdayLocationFromPath(externalPath string) string {
	unescaped, err := url.PathUnescape(externalPath)
	if err != nil {
		unescaped = externalPath
	}
	var parts []string
	for _, s := range strings.Split(unescaped, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}

	var loc string
	switch {
	case len(parts) > 1 && strings.EqualFold(parts[0], "job"):
		loc = parts[1]
	case len(parts) > 2 && workdayLocaleRegex.MatchString(parts[0]) && strings.EqualFold(parts[1], "job"):
		loc = parts[2]
	default:
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(loc, "-", " "))
}

// parsePostedOn converts Workday's relative posting date to an approximate
// UTC-midnight timestamp. "Posted 30+ Days Ago" and unknown strings map to nil.
func parsePostedOn(postedOn string, now time.Time) *time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch postedOn {
	case "Posted Today":
		return &today
	case "Posted Yesterday":
		t := today.AddDate(0, 0, -1)
		return &t
	}

	if m := workdayDaysAgoRegex.FindStringSubmatch(postedOn); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t := today.AddDate(0, 0, -n)
			return &t
		}
	}
	return nil
}
