package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSerpAPISearch_Success(t *testing.T) {
	payload := `{
		"organic_results": [
			{"link": "https://boards.greenhouse.io/acme", "title": "Acme Careers", "snippet": "Open roles in Tel Aviv"},
			{"link": "", "title": "no link"},
			{"link": "https://jobs.lever.co/beta", "title": "Beta Jobs"}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google" {
			t.Errorf("expected engine=google, got %q", q.Get("engine"))
		}
		if q.Get("q") != "site:boards.greenhouse.io golang" {
			t.Errorf("unexpected query: %q", q.Get("q"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("expected api key to be sent, got %q", q.Get("api_key"))
		}
		if q.Get("num") != "40" {
			t.Errorf("expected num=40, got %q", q.Get("num"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	s := NewSerpAPIClient("test-key", 40, srv.Client())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "site:boards.greenhouse.io golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The empty link is dropped.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://boards.greenhouse.io/acme" {
		t.Errorf("unexpected first URL: %s", results[0].URL)
	}
	if results[0].Snippet != "Open roles in Tel Aviv" {
		t.Errorf("unexpected snippet: %s", results[0].Snippet)
	}
}

func TestSerpAPISearch_NumClamped(t *testing.T) {
	if s := NewSerpAPIClient("k", 1, nil); s.num != 10 {
		t.Errorf("expected num clamped up to 10, got %d", s.num)
	}
	if s := NewSerpAPIClient("k", 500, nil); s.num != 100 {
		t.Errorf("expected num clamped down to 100, got %d", s.num)
	}
}

func TestSerpAPISearch_MissingKey(t *testing.T) {
	s := NewSerpAPIClient("", 10, http.DefaultClient)
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSerpAPISearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSerpAPIClient("bad-key", 10, srv.Client())
	s.baseURL = srv.URL

	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}
