package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// WorkMode classifies where a role is performed.
type WorkMode string

const (
	WorkModeRemote  WorkMode = "remote"
	WorkModeHybrid  WorkMode = "hybrid"
	WorkModeOnsite  WorkMode = "onsite"
	WorkModeUnknown WorkMode = ""
)

// Posting is the unified representation of a job posting from any ATS.
type Posting struct {
	ID        string     `json:"id"` // provider:org:native-id, stable across refreshes
	Provider  string     `json:"provider"`
	Org       string     `json:"org"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	URL       string     `json:"url"`
	Location  string     `json:"location"`
	WorkMode  WorkMode   `json:"work_mode"`
	Remote    bool       `json:"remote"`
	CreatedAt *time.Time `json:"created_at"` // provider clock, nullable
	FirstSeen time.Time  `json:"first_seen"` // our clock, set on first upsert
	Extra     Extra      `json:"extra"`
	Score     int        `json:"score"`
	Reasons   []string   `json:"reasons"`
}

// Extra holds free-form posting metadata that providers expose inconsistently.
type Extra struct {
	Description string   `json:"description,omitempty"`
	ApplyURL    string   `json:"apply_url,omitempty"`
	Department  string   `json:"department,omitempty"`
	SalaryMin   *float64 `json:"salary_min,omitempty"`
	SalaryMax   *float64 `json:"salary_max,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

// PostingID builds the identity key for a provider-native job id.
// The org slug is lowercased so the same board never yields two identities.
func PostingID(provider, org, nativeID string) string {
	return fmt.Sprintf("%s:%s:%s", provider, strings.ToLower(strings.TrimSpace(org)), nativeID)
}

// Company identifies a board on a specific ATS.
type Company struct {
	Name       string `json:"name"`
	Provider   string `json:"provider"`
	Org        string `json:"org"`
	City       string `json:"city,omitempty"`
	CareersURL string `json:"careers_url,omitempty"`
}

// Key returns the case-insensitive dedup key for a company.
func (c Company) Key() string {
	return c.Provider + "/" + strings.ToLower(c.Org)
}

// InferWorkMode classifies a posting from its title, location text, and the
// provider's explicit remote flag when one exists. Hybrid wins over remote so
// "Remote / Hybrid" listings are not overcounted as fully remote.
func InferWorkMode(title, location string, remoteFlag *bool) WorkMode {
	t := strings.ToLower(title)
	l := strings.ToLower(location)
	if strings.Contains(t, "hybrid") || strings.Contains(l, "hybrid") {
		return WorkModeHybrid
	}
	if (remoteFlag != nil && *remoteFlag) ||
		strings.Contains(t, "remote") || strings.Contains(l, "remote") ||
		strings.Contains(l, "work from home") {
		return WorkModeRemote
	}
	if strings.Contains(t, "onsite") || strings.Contains(t, "on-site") ||
		strings.Contains(l, "onsite") || strings.Contains(l, "on-site") {
		return WorkModeOnsite
	}
	return WorkModeUnknown
}

// ProviderAdapter fetches raw postings for one organization on one ATS.
// Implementations are stateless and safe to call concurrently for
// different orgs. limit <= 0 means "everything the board returns".
type ProviderAdapter interface {
	Name() string
	Fetch(ctx context.Context, org string, limit int) ([]Posting, error)
}
