// Package discovery finds companies with open boards on supported ATS
// providers by issuing scoped web searches and mining result URLs for
// (provider, org) identities.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/cache"
	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/score"
	"github.com/jobscout/jobscout/internal/search"
)

// Params selects what to discover. Zero Limit means DefaultLimit.
type Params struct {
	Cities   []string
	Keywords []string
	// Providers restricts the search; empty means every supported provider.
	Providers []string
	Limit     int
	// SplitCities issues one query per city instead of one OR-combined clause.
	SplitCities bool
	// SplitProviders issues one query per provider site instead of one
	// OR-combined site: clause.
	SplitProviders bool
	// Bypass skips the cache read; the live result still refreshes the cache.
	Bypass bool
}

// DefaultLimit caps discovered companies when the caller does not say.
const DefaultLimit = 50

// Engine discovers companies through a cached external search.
type Engine struct {
	searcher search.Searcher
	cache    *cache.Cache[[]search.Result]
	ttl      time.Duration
	aliases  score.Aliases
	logger   *slog.Logger
}

// NewEngine wires a discovery engine. ttl governs how long identical search
// fingerprints are served from cache; aliases may be nil for the default table.
func NewEngine(searcher search.Searcher, c *cache.Cache[[]search.Result], ttl time.Duration, aliases score.Aliases, logger *slog.Logger) *Engine {
	if aliases == nil {
		aliases = score.DefaultAliases
	}
	return &Engine{
		searcher: searcher,
		cache:    c,
		ttl:      ttl,
		aliases:  aliases,
		logger:   logger,
	}
}

// Discover searches for ATS boards matching the params and returns the
// deduplicated companies, first-seen order. An upstream search failure is a
// hard error: without results there is nothing to discover.
func (e *Engine) Discover(ctx context.Context, p Params) ([]model.Company, error) {
	providers := normalizeProviders(p.Providers)
	if len(providers) == 0 {
		return nil, fmt.Errorf("discover: no supported providers in %v", p.Providers)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	citiesExpanded := e.aliases.Expand(p.Cities)
	queries := buildQueries(citiesExpanded, p.Keywords, providers, p.SplitCities, p.SplitProviders)

	fp := cache.Fingerprint{
		Cities:         citiesExpanded,
		Keywords:       p.Keywords,
		Providers:      providers,
		SplitCities:    p.SplitCities,
		SplitProviders: p.SplitProviders,
	}

	fetch := func() ([]search.Result, error) {
		var all []search.Result
		for _, q := range queries {
			results, err := e.searcher.Search(ctx, q)
			if err != nil {
				return nil, fmt.Errorf("discover: search %q: %w", q, err)
			}
			all = append(all, results...)
		}
		return all, nil
	}

	var results []search.Result
	var err error
	if p.Bypass {
		results, err = e.cache.FetchFresh(fp, e.ttl, fetch)
	} else {
		results, err = e.cache.GetOrFetch(fp, e.ttl, fetch)
	}
	if err != nil {
		return nil, err
	}

	companies, skipped := e.extractCompanies(results, citiesExpanded, limit)
	e.logger.Info("discovery complete",
		"queries", len(queries),
		"results", len(results),
		"companies", len(companies),
		"skipped_urls", skipped,
	)
	return companies, nil
}

// extractCompanies mines result URLs for (provider, org) identities,
// deduplicating case-insensitively. The first result for an identity wins;
// later results may only fill in a missing city.
func (e *Engine) extractCompanies(results []search.Result, cities []string, limit int) ([]model.Company, int) {
	byKey := make(map[string]int)
	var companies []model.Company
	skipped := 0

	for _, r := range results {
		provider := providerFromResult(r.URL)
		if provider == "" {
			skipped++
			continue
		}
		org := extractOrg(provider, r.URL)
		if org == "" {
			skipped++
			continue
		}

		city := extractCity(r, cities)
		key := provider + "/" + strings.ToLower(org)
		if idx, seen := byKey[key]; seen {
			if companies[idx].City == "" && city != "" {
				companies[idx].City = city
			}
			continue
		}
		if len(companies) >= limit {
			continue
		}

		byKey[key] = len(companies)
		companies = append(companies, model.Company{
			Name:       displayName(org),
			Provider:   provider,
			Org:        org,
			City:       city,
			CareersURL: careersURL(provider, org),
		})
	}
	return companies, skipped
}

func providerFromResult(raw string) string {
	start := strings.Index(raw, "://")
	if start < 0 {
		return ""
	}
	rest := raw[start+3:]
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return providerFromHost(rest)
}

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// extractCity looks for a requested city anywhere in the result's visible
// text, after stripping punctuation so "Tel-Aviv" matches "tel aviv".
func extractCity(r search.Result, cities []string) string {
	if len(cities) == 0 {
		return ""
	}
	haystack := strings.TrimSpace(nonAlnumRegex.ReplaceAllString(
		strings.ToLower(r.Title+" "+r.Snippet+" "+r.URL), " "))
	if haystack == "" {
		return ""
	}
	for _, c := range cities {
		needle := strings.TrimSpace(nonAlnumRegex.ReplaceAllString(strings.ToLower(c), " "))
		if needle != "" && strings.Contains(haystack, needle) {
			return c
		}
	}
	return ""
}

// normalizeProviders lowercases, dedups, and drops unsupported names,
// falling back to every supported provider when the input is empty.
func normalizeProviders(in []string) []string {
	if len(in) == 0 {
		out := make([]string, 0, len(providerHosts))
		for p := range providerHosts {
			out = append(out, p)
		}
		sort.Strings(out)
		return out
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := providerHosts[p]; !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// buildQueries produces the search queries for a discovery call: one per
// (provider clause × city clause) pair, keywords appended to each.
func buildQueries(cities, keywords, providers []string, splitCities, splitProviders bool) []string {
	providerClauses := buildProviderClauses(providers, !splitProviders)
	cityClauses := buildCityClauses(cities, !splitCities)
	kw := strings.TrimSpace(strings.Join(keywords, " "))

	var queries []string
	for _, pc := range providerClauses {
		for _, cc := range cityClauses {
			parts := make([]string, 0, 3)
			if pc != "" {
				parts = append(parts, pc)
			}
			if cc != "" {
				parts = append(parts, cc)
			}
			if kw != "" {
				parts = append(parts, kw)
			}
			if q := strings.Join(parts, " "); q != "" {
				queries = append(queries, q)
			}
		}
	}
	return queries
}

// buildCityClauses quotes each city term; combined mode ORs them into one clause.
func buildCityClauses(cities []string, combine bool) []string {
	cleaned := cleanTerms(cities)
	if len(cleaned) == 0 {
		return []string{""}
	}
	if combine && len(cleaned) > 1 {
		quoted := make([]string, len(cleaned))
		for i, c := range cleaned {
			quoted[i] = `"` + c + `"`
		}
		return []string{"(" + strings.Join(quoted, " OR ") + ")"}
	}
	clauses := make([]string, len(cleaned))
	for i, c := range cleaned {
		clauses[i] = `"` + c + `"`
	}
	return clauses
}

// buildProviderClauses emits site: clauses; combined mode ORs them into one.
func buildProviderClauses(providers []string, combine bool) []string {
	if len(providers) == 0 {
		return []string{""}
	}
	if combine && len(providers) > 1 {
		sites := make([]string, len(providers))
		for i, p := range providers {
			sites[i] = "site:" + providerHosts[p]
		}
		return []string{"(" + strings.Join(sites, " OR ") + ")"}
	}
	clauses := make([]string, len(providers))
	for i, p := range providers {
		clauses[i] = "site:" + providerHosts[p]
	}
	return clauses
}

// cleanTerms strips quotes and blanks and dedups case-insensitively,
// preserving order.
func cleanTerms(terms []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range terms {
		t = strings.TrimSpace(strings.ReplaceAll(t, `"`, ""))
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
