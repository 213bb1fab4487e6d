package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecruiteeFetch_Success(t *testing.T) {
	payload := `{
		"offers": [
			{
				"id": 991,
				"title": "QA Engineer",
				"city": "Netanya",
				"country": "Israel",
				"careers_url": "https://acme.recruitee.com/o/qa-engineer",
				"created_at": "2026-02-08 09:30:00 UTC",
				"remote": false,
				"description": "<p>Test things.</p>"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/c/acme/offers" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := NewRecruiteeAdapter(newTestClient(srv))

	postings, err := adapter.Fetch(context.Background(), "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}

	p := postings[0]
	if p.ID != "recruitee:acme:991" {
		t.Errorf("unexpected posting id: %s", p.ID)
	}
	if p.Location != "Netanya, Israel" {
		t.Errorf("unexpected location: %s", p.Location)
	}
	if p.Extra.Description != "Test things." {
		t.Errorf("expected stripped description, got %q", p.Extra.Description)
	}
}
