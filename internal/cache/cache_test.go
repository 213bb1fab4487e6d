package cache

import (
	"errors"
	"testing"
	"time"
)

func TestFingerprintKey_OrderAndCaseInsensitive(t *testing.T) {
	a := Fingerprint{Cities: []string{"Tel Aviv", "Haifa"}, Keywords: []string{"Backend", "go"}}
	b := Fingerprint{Cities: []string{"haifa", "TEL AVIV"}, Keywords: []string{"GO", "backend"}}

	if a.Key() != b.Key() {
		t.Error("expected identical keys for reordered, recased params")
	}

	c := Fingerprint{Cities: []string{"Tel Aviv"}, Keywords: []string{"backend", "go"}}
	if a.Key() == c.Key() {
		t.Error("expected different keys for different cities")
	}

	d := a
	d.SplitCities = true
	if a.Key() == d.Key() {
		t.Error("expected split flags to change the key")
	}
}

func TestGetOrFetch_HitWithinTTL(t *testing.T) {
	c := New[[]string]()
	fp := Fingerprint{Cities: []string{"tel aviv"}, Keywords: []string{"go"}}

	calls := 0
	fetch := func() ([]string, error) {
		calls++
		return []string{"result"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrFetch(fp, time.Hour, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "result" {
			t.Fatalf("unexpected payload: %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cache entry, got %d", c.Len())
	}
}

func TestGetOrFetch_ExpiredEntryRefetches(t *testing.T) {
	c := New[[]string]()
	fp := Fingerprint{Keywords: []string{"go"}}

	current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	calls := 0
	fetch := func() ([]string, error) {
		calls++
		return []string{"result"}, nil
	}

	if _, err := c.GetOrFetch(fp, time.Hour, fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(2 * time.Hour)
	if _, err := c.GetOrFetch(fp, time.Hour, fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after TTL expiry, got %d calls", calls)
	}
}

func TestGetOrFetch_ZeroTTLNeverCaches(t *testing.T) {
	c := New[int]()
	fp := Fingerprint{Keywords: []string{"go"}}

	calls := 0
	fetch := func() (int, error) {
		calls++
		return calls, nil
	}

	c.GetOrFetch(fp, 0, fetch)
	c.GetOrFetch(fp, 0, fetch)
	if calls != 2 {
		t.Errorf("expected live fetch every time with ttl 0, got %d calls", calls)
	}
	if c.Len() != 0 {
		t.Errorf("expected no entries stored, got %d", c.Len())
	}
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	c := New[[]string]()
	fp := Fingerprint{Keywords: []string{"go"}}

	wantErr := errors.New("upstream down")
	if _, err := c.GetOrFetch(fp, time.Hour, func() ([]string, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed fetch must not be cached, got %d entries", c.Len())
	}

	// The next call with a working upstream succeeds.
	got, err := c.GetOrFetch(fp, time.Hour, func() ([]string, error) { return []string{"ok"}, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestFetchFresh_BypassesAndRefreshes(t *testing.T) {
	c := New[string]()
	fp := Fingerprint{Keywords: []string{"go"}}

	if _, err := c.GetOrFetch(fp, time.Hour, func() (string, error) { return "stale", nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.FetchFresh(fp, time.Hour, func() (string, error) { return "fresh", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fresh" {
		t.Fatalf("expected fresh payload, got %q", got)
	}

	// A later cached read sees the refreshed entry.
	got, err = c.GetOrFetch(fp, time.Hour, func() (string, error) {
		t.Fatal("upstream should not be called")
		return "", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fresh" {
		t.Errorf("expected refreshed entry, got %q", got)
	}
}
