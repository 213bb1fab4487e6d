package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

func TestAshbyFetch_SkipsUnlisted(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"id": "job-1",
				"title": "Platform Engineer",
				"location": "Tel Aviv",
				"jobUrl": "https://jobs.ashbyhq.com/acme/job-1",
				"publishedAt": "2026-02-12T08:00:00Z",
				"isListed": true,
				"isRemote": false
			},
			{
				"id": "job-2",
				"title": "Hidden Role",
				"location": "Tel Aviv",
				"jobUrl": "https://jobs.ashbyhq.com/acme/job-2",
				"isListed": false,
				"isRemote": false
			},
			{
				"id": "job-3",
				"title": "Data Engineer",
				"location": "Anywhere",
				"jobUrl": "https://jobs.ashbyhq.com/acme/job-3",
				"isListed": true,
				"isRemote": true
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posting-api/job-board/acme" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := NewAshbyAdapter(newTestClient(srv))

	postings, err := adapter.Fetch(context.Background(), "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 listed postings, got %d", len(postings))
	}
	if postings[0].ID != "ashby:acme:job-1" {
		t.Errorf("unexpected first posting id: %s", postings[0].ID)
	}
	if postings[0].WorkMode != model.WorkModeUnknown {
		t.Errorf("expected unknown work mode for plain city, got %s", postings[0].WorkMode)
	}
	// isRemote flag drives the work mode when nothing else hints.
	if postings[1].WorkMode != model.WorkModeRemote || !postings[1].Remote {
		t.Errorf("expected remote work mode for job-3, got %s", postings[1].WorkMode)
	}
}

func TestAshbyFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewAshbyAdapter(newTestClient(srv))

	_, err := adapter.Fetch(context.Background(), "fail-co", 0)
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
}
