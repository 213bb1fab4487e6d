package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSmartRecruitersFetch_DerivesJobURL(t *testing.T) {
	payload := `{
		"content": [
			{
				"id": "744000012345",
				"name": "DevOps Engineer",
				"releasedDate": "2026-02-11T12:00:00Z",
				"location": {"city": "Herzliya", "country": "il", "remote": false},
				"ref": "https://api.smartrecruiters.com/v1/companies/acme/postings/744000012345"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/companies/acme/postings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := NewSmartRecruitersAdapter(newTestClient(srv))

	postings, err := adapter.Fetch(context.Background(), "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}

	p := postings[0]
	// The list API only exposes the API ref, so the public job-board URL is
	// built from the company and posting id.
	if p.URL != "https://jobs.smartrecruiters.com/acme/744000012345" {
		t.Errorf("unexpected job URL: %s", p.URL)
	}
	if p.Location != "Herzliya, il" {
		t.Errorf("unexpected location: %s", p.Location)
	}
}

func TestSmartRecruitersFetch_LimitCapsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("expected limit=5 in query, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": []}`))
	}))
	defer srv.Close()

	adapter := NewSmartRecruitersAdapter(newTestClient(srv))

	if _, err := adapter.Fetch(context.Background(), "acme", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
