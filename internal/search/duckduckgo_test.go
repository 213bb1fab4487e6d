package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDuckDuckGoSearch_DecodesRedirects(t *testing.T) {
	page := `<html><body>
		<a class="result__a" href="/l/?uddg=https%3A%2F%2Fboards.greenhouse.io%2Facme">Acme Careers</a>
		<a class="result__a" href="https://jobs.lever.co/beta/123">Beta Role</a>
		<a href="https://duckduckgo.com/settings">Settings</a>
		<a href="/html/?q=next">Next page</a>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "golang jobs" {
			t.Errorf("unexpected query: %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	d := NewDuckDuckGoClient(10, srv.Client())
	d.baseURL = srv.URL + "/html/"

	results, err := d.Search(context.Background(), "golang jobs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Redirect decoded, direct link kept, duckduckgo-internal and relative
	// links dropped.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %v", len(results), results)
	}
	if results[0].URL != "https://boards.greenhouse.io/acme" {
		t.Errorf("expected decoded uddg link, got %s", results[0].URL)
	}
	if results[0].Title != "Acme Careers" {
		t.Errorf("unexpected title: %q", results[0].Title)
	}
	if results[1].URL != "https://jobs.lever.co/beta/123" {
		t.Errorf("unexpected second URL: %s", results[1].URL)
	}
}

func TestDuckDuckGoSearch_LimitRespected(t *testing.T) {
	page := `<html><body>
		<a class="result__a" href="https://jobs.lever.co/one">One</a>
		<a class="result__a" href="https://jobs.lever.co/two">Two</a>
		<a class="result__a" href="https://jobs.lever.co/three">Three</a>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	d := NewDuckDuckGoClient(2, srv.Client())
	d.baseURL = srv.URL + "/html/"

	results, err := d.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected limit of 2 results, got %d", len(results))
	}
}

func TestDecodeUDDGLink(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/l/?uddg=https%3A%2F%2Fexample.com%2Fjobs&rut=abc", "https://example.com/jobs"},
		{"/l/?rut=abc", ""},
		{"%%%", ""},
	}
	for _, tt := range tests {
		if got := decodeUDDGLink(tt.href); got != tt.want {
			t.Errorf("decodeUDDGLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
