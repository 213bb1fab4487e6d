// Package score ranks postings against a user's search criteria with a
// deterministic, explainable heuristic. Every point carries a reason tag.
package score

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

// Rule weights. Additive; the final score is never negative.
const (
	weightTitleKeyword = 20
	weightCity         = 15
	weightRemote       = 5
	weightHybrid       = 4
	weightSalary       = 5
)

// freshnessBands, most recent first. A posting scores the first band whose
// window contains its age.
var freshnessBands = []struct {
	maxAge time.Duration
	bonus  int
	tag    string
}{
	{24 * time.Hour, 15, "fresh-1d"},
	{5 * 24 * time.Hour, 10, "fresh-5d"},
	{30 * 24 * time.Hour, 5, "fresh-30d"},
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// Scorer computes relevance scores. Aliases expand city terms before the
// location match, mirroring the expansion used when building search queries.
type Scorer struct {
	aliases Aliases
}

// NewScorer creates a scorer with the given alias table (nil means DefaultAliases).
func NewScorer(aliases Aliases) *Scorer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Scorer{aliases: aliases}
}

// Score computes the relevance score and reason trail for one posting.
// Rules fire in a fixed order so the trail is reproducible: title keywords
// (input order), city, work mode, freshness, salary. now is injected so
// freshness is testable.
func (s *Scorer) Score(p model.Posting, keywords, cities []string, now time.Time) (int, []string) {
	total := 0
	var reasons []string

	title := normalize(p.Title)
	location := normalize(p.Location)

	matched := make(map[string]struct{})
	for _, kw := range keywords {
		k := normalize(kw)
		if k == "" {
			continue
		}
		if _, dup := matched[k]; dup {
			continue
		}
		if strings.Contains(title, k) {
			matched[k] = struct{}{}
			total += weightTitleKeyword
			reasons = append(reasons, "title:"+k)
		}
	}

	for _, c := range s.aliases.Expand(cities) {
		if strings.Contains(location, normalize(c)) {
			total += weightCity
			reasons = append(reasons, "city")
			break
		}
	}

	switch p.WorkMode {
	case model.WorkModeRemote:
		total += weightRemote
		reasons = append(reasons, "remote")
	case model.WorkModeHybrid:
		total += weightHybrid
		reasons = append(reasons, "hybrid")
	}

	if p.CreatedAt != nil && !p.CreatedAt.After(now) {
		age := now.Sub(*p.CreatedAt)
		for _, band := range freshnessBands {
			if age <= band.maxAge {
				total += band.bonus
				reasons = append(reasons, band.tag)
				break
			}
		}
	}

	if p.Extra.SalaryMin != nil || p.Extra.SalaryMax != nil {
		total += weightSalary
		reasons = append(reasons, "salary")
	}

	if total < 0 {
		total = 0
	}
	return total, reasons
}

// SortPostings orders postings for display: score descending, then creation
// time descending (missing timestamps last), then posting id ascending so
// identical inputs always produce identical output.
func SortPostings(postings []model.Posting) {
	sort.SliceStable(postings, func(i, j int) bool {
		a, b := postings[i], postings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.CreatedAt != nil && b.CreatedAt != nil:
			if !a.CreatedAt.Equal(*b.CreatedAt) {
				return a.CreatedAt.After(*b.CreatedAt)
			}
		case a.CreatedAt != nil:
			return true
		case b.CreatedAt != nil:
			return false
		}
		return a.ID < b.ID
	})
}
