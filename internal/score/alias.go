package score

import "strings"

// Aliases maps a lowercased city name to its accepted spelling variants.
// The table is configuration data: deployments tune it per locale and pass
// their own through config, with DefaultAliases as the fallback.
type Aliases map[string][]string

// DefaultAliases covers spelling variations common on Israeli tech boards.
var DefaultAliases = Aliases{
	"tel aviv":      {"tel aviv", "tel-aviv", "tel aviv-yafo", "tel aviv yafo"},
	"tel aviv-yafo": {"tel aviv-yafo", "tel aviv yafo", "tel aviv"},
	"herzliya":      {"herzliya", "hertzliya", "herzlia"},
	"kfar saba":     {"kfar saba", "kfar sava"},
	"raanana":       {"raanana", "ra'anana", "ra-anana", "ra anana"},
	"petach tikva":  {"petach tikva", "petah tikva", "petach tikvah", "petah tikvah"},
	"petah tikva":   {"petach tikva", "petah tikva", "petach tikvah", "petah tikvah"},
	"hod hasharon":  {"hod hasharon", "hod ha-sharon", "hod ha sharon"},
	"netanya":       {"netanya", "netnaya"},
	"ramat gan":     {"ramat gan", "ramat-gan"},
	"bnei brak":     {"bnei brak", "bnei-brak"},
	"givatayim":     {"givatayim", "giv'atayim", "givataym"},
	"airport city":  {"airport city", "airport-city"},
}

// Expand returns the cities plus their known variants, original order
// preserved and duplicates removed case-insensitively.
func (a Aliases) Expand(cities []string) []string {
	seen := make(map[string]struct{})
	var expanded []string
	for _, c := range cities {
		base := strings.TrimSpace(c)
		if base == "" {
			continue
		}
		variants := append([]string{base}, a[strings.ToLower(base)]...)
		for _, v := range variants {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			expanded = append(expanded, v)
		}
	}
	return expanded
}
