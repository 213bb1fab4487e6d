package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

// getJSON performs a GET against a provider listing endpoint and decodes the
// JSON body into v. Non-200 responses become *model.HTTPError so callers can
// distinguish transient provider failures from malformed payloads.
func getJSON(ctx context.Context, client *http.Client, url, provider, org string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s fetch for %s: %w", provider, org, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jobscout/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s fetch for %s: %w", provider, org, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("%s fetch for %s: unexpected status %d", provider, org, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s fetch for %s: decode: %w", provider, org, err)
	}
	return nil
}

// postJSON performs a POST with a JSON body against a provider endpoint and
// decodes the JSON response into v. Error shape matches getJSON.
func postJSON(ctx context.Context, client *http.Client, url, provider, org string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s fetch for %s: marshal: %w", provider, org, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s fetch for %s: %w", provider, org, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "jobscout/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s fetch for %s: %w", provider, org, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("%s fetch for %s: unexpected status %d", provider, org, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s fetch for %s: decode: %w", provider, org, err)
	}
	return nil
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
