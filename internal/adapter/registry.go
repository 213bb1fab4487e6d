package adapter

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/jobscout/jobscout/internal/model"
)

// Registry maps provider names to their adapters. The provider family is a
// closed set: adapters register here at construction, not via globals.
type Registry struct {
	adapters map[string]model.ProviderAdapter
}

// NewRegistry builds a registry with every supported ATS wired to the given
// HTTP client.
func NewRegistry(client *http.Client) *Registry {
	r := &Registry{adapters: make(map[string]model.ProviderAdapter)}
	r.Register(NewGreenhouseAdapter(client))
	r.Register(NewLeverAdapter(client))
	r.Register(NewAshbyAdapter(client))
	r.Register(NewSmartRecruitersAdapter(client))
	r.Register(NewWorkableAdapter(client))
	r.Register(NewRecruiteeAdapter(client))
	r.Register(NewWorkdayAdapter(client))
	return r
}

// Register adds or replaces an adapter under its own name. Replacing is what
// lets decorators (retry, rate limiting) wrap the registered adapter.
func (r *Registry) Register(a model.ProviderAdapter) {
	r.adapters[a.Name()] = a
}

// Get returns the adapter for the given provider name.
func (r *Registry) Get(provider string) (model.ProviderAdapter, error) {
	a, ok := r.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	return a, nil
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
