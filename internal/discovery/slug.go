package discovery

import (
	"net/url"
	"regexp"
	"strings"
)

// providerHosts maps each supported provider to the public host its board
// URLs live on. Discovery scopes search queries with site: clauses built
// from this table and infers the provider back from result hosts.
var providerHosts = map[string]string{
	"greenhouse":      "boards.greenhouse.io",
	"lever":           "jobs.lever.co",
	"ashby":           "jobs.ashbyhq.com",
	"smartrecruiters": "jobs.smartrecruiters.com",
	"workable":        "apply.workable.com",
	"recruitee":       "recruitee.com",
	"workday":         "myworkdayjobs.com",
}

// reservedSlugs are path segments that look like org slugs but never are.
var reservedSlugs = map[string]struct{}{
	"www": {}, "jobs": {}, "job": {}, "career": {}, "careers": {},
	"apply": {}, "search": {}, "positions": {}, "position": {},
	"en": {}, "en-us": {}, "en_us": {}, "o": {}, "p": {},
	"wday": {}, "details": {},
}

var slugRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9_-]{0,62}[a-z0-9])$`)

// validSlug reports whether s is a plausible organization slug: at least two
// characters, at least two letters, slug-shaped, and not a reserved word.
func validSlug(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return false
	}
	if _, reserved := reservedSlugs[s]; reserved {
		return false
	}
	letters := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if letters < 2 {
		return false
	}
	return slugRegex.MatchString(s)
}

// providerFromHost infers the provider owning a result host, or "".
func providerFromHost(host string) string {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for provider, base := range providerHosts {
		if host == base || strings.HasSuffix(host, "."+base) {
			return provider
		}
	}
	return ""
}

// extractOrg pulls the organization slug out of a board URL, canonicalizing
// first (query string and fragment stripped). Returns "" when no valid slug
// can be extracted.
func extractOrg(provider, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	segs := splitPath(u.Path)

	// Recruitee boards live on org subdomains: <org>.recruitee.com/o/<job>.
	if provider == "recruitee" {
		sub := strings.TrimSuffix(host, ".recruitee.com")
		if sub == host || sub == "" {
			return ""
		}
		if last := sub[strings.LastIndex(sub, ".")+1:]; validSlug(last) {
			return last
		}
		return ""
	}

	// Workday boards live on tenant subdomains, sometimes with a wdN data
	// center hop: <org>.myworkdayjobs.com or <org>.wd5.myworkdayjobs.com.
	// The path may repeat the tenant after a locale segment.
	if provider == "workday" {
		if len(segs) > 0 {
			first := strings.ToLower(segs[0])
			if workdayLocaleSegRegex.MatchString(first) && len(segs) > 1 {
				if second := strings.ToLower(segs[1]); validSlug(second) {
					return second
				}
			} else if validSlug(first) {
				return first
			}
		}
		return workdayOrgFromHost(host)
	}

	if len(segs) == 0 {
		return ""
	}
	if validSlug(segs[0]) {
		return strings.ToLower(segs[0])
	}
	return ""
}

var workdayLocaleSegRegex = regexp.MustCompile(`^[a-z]{2}(-[a-z]{2})?$`)

// workdayOrgFromHost pulls the tenant out of a myworkdayjobs.com host,
// skipping data-center prefixes (wd1, wd5, ...) and generic subdomains.
func workdayOrgFromHost(host string) string {
	sub := strings.TrimSuffix(host, ".myworkdayjobs.com")
	if sub == host || sub == "" {
		return ""
	}
	parts := strings.Split(sub, ".")
	first := parts[0]
	if len(first) > 2 && strings.HasPrefix(first, "wd") && isDigits(first[2:]) {
		if len(parts) > 1 && validSlug(parts[1]) {
			return parts[1]
		}
		return ""
	}
	if first == "careers" || first == "jobs" {
		return ""
	}
	if validSlug(first) {
		return first
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// displayName derives a human-readable company name from a slug:
// hyphens and underscores become spaces, tokens are title-cased.
func displayName(slug string) string {
	tokens := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		tokens[i] = strings.ToUpper(tok[:1]) + tok[1:]
	}
	return strings.Join(tokens, " ")
}

// careersURL builds the canonical board URL for a discovered company.
func careersURL(provider, org string) string {
	host, ok := providerHosts[provider]
	if !ok {
		return ""
	}
	if provider == "recruitee" {
		return "https://" + org + ".recruitee.com"
	}
	if provider == "workday" {
		return "https://" + org + ".myworkdayjobs.com/" + org
	}
	return "https://" + host + "/" + org
}
