// Package refresh fans provider fetches out across a set of companies,
// scores the results, upserts them into the posting store, and reports what
// happened company by company.
package refresh

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobscout/jobscout/internal/model"
)

// Status values for a per-company outcome.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CompanyReport is the outcome of one company's fetch-and-write.
type CompanyReport struct {
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Org         string `json:"org"`
	Status      string `json:"status"`
	JobsFetched int    `json:"jobs_fetched"`
	JobsWritten int    `json:"jobs_written"`
	ElapsedMS   int64  `json:"elapsed_ms"`
	Error       string `json:"error,omitempty"`
}

// Summary aggregates a whole refresh cycle.
type Summary struct {
	CompaniesTotal  int   `json:"companies_total"`
	CompaniesOK     int   `json:"companies_ok"`
	CompaniesFailed int   `json:"companies_failed"`
	JobsFetched     int   `json:"jobs_fetched"`
	JobsWritten     int   `json:"jobs_written"`
	ElapsedMS       int64 `json:"elapsed_ms"`
}

// Report is what a UI or CLI renders after a refresh: the summary, the
// per-company outcomes (failures last, most productive first within each
// status), and the posting ids that were not in the store before this cycle.
type Report struct {
	Summary   Summary         `json:"summary"`
	Companies []CompanyReport `json:"companies"`
	NewIDs    []string        `json:"new_posting_ids"`
}

// Store is the slice of the posting store the orchestrator needs.
type Store interface {
	UpsertCompany(ctx context.Context, c model.Company) error
	UpsertPosting(ctx context.Context, p model.Posting) error
	PostingIDs(ctx context.Context) (map[string]struct{}, error)
}

// AdapterResolver maps a provider name to its adapter.
type AdapterResolver interface {
	Get(provider string) (model.ProviderAdapter, error)
}

// Scorer computes a posting's relevance score and reason trail.
type Scorer interface {
	Score(p model.Posting, keywords, cities []string, now time.Time) (int, []string)
}

// Options tune a refresh cycle. Zero values get sane defaults.
type Options struct {
	// Workers bounds concurrent provider calls.
	Workers int
	// FetchTimeout bounds a single company's adapter call.
	FetchTimeout time.Duration
	// Deadline bounds the whole refresh; companies still waiting when it
	// passes are reported as failed.
	Deadline time.Duration
	// FetchLimit caps postings requested per company, 0 for no cap.
	FetchLimit int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 8
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 30 * time.Second
	}
	if o.Deadline <= 0 {
		o.Deadline = 5 * time.Minute
	}
	return o
}

// Orchestrator runs refresh cycles.
type Orchestrator struct {
	adapters AdapterResolver
	store    Store
	scorer   Scorer
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrchestrator wires a refresh orchestrator.
func NewOrchestrator(adapters AdapterResolver, store Store, scorer Scorer, opts Options, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		adapters: adapters,
		store:    store,
		scorer:   scorer,
		opts:     opts.withDefaults(),
		logger:   logger,
		now:      time.Now,
	}
}

// fetchOutcome carries one company's fetch result from the fan-out phase to
// the write phase.
type fetchOutcome struct {
	report   CompanyReport
	company  model.Company
	postings []model.Posting
}

// Refresh fetches every company's board, scores the postings, upserts them,
// and returns the report plus all postings fetched this cycle. One company's
// failure never blocks the others; a cancelled context stops new fetches but
// completed ones are still written.
func (o *Orchestrator) Refresh(ctx context.Context, companies []model.Company, cities, keywords []string) (*Report, []model.Posting, error) {
	start := o.now()
	now := start.UTC()

	snapshot, err := o.store.PostingIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.opts.Deadline)
	defer cancel()

	outcomes := make([]fetchOutcome, len(companies))
	g := &errgroup.Group{}
	g.SetLimit(o.opts.Workers)

	for i, c := range companies {
		g.Go(func() error {
			outcomes[i] = o.fetchCompany(ctx, c, cities, keywords, now)
			return nil
		})
	}
	g.Wait()

	// Write phase. Runs on its own context so postings from fetches that
	// finished before cancellation or the deadline still land. Store
	// failures are per posting: count what actually landed and keep going.
	writeCtx := context.WithoutCancel(ctx)
	newIDs := make(map[string]struct{})
	for i := range outcomes {
		out := &outcomes[i]
		if out.report.Status != StatusOK {
			continue
		}
		writeStart := o.now()

		if err := o.store.UpsertCompany(writeCtx, out.company); err != nil {
			out.report.Status = StatusError
			out.report.Error = err.Error()
			out.report.ElapsedMS += o.now().Sub(writeStart).Milliseconds()
			continue
		}

		for _, p := range out.postings {
			if err := o.store.UpsertPosting(writeCtx, p); err != nil {
				o.logger.Warn("posting write failed",
					"posting", p.ID,
					"company", out.report.Name,
					"error", err,
				)
				continue
			}
			out.report.JobsWritten++
			if _, seen := snapshot[p.ID]; !seen {
				newIDs[p.ID] = struct{}{}
			}
		}
		out.report.ElapsedMS += o.now().Sub(writeStart).Milliseconds()
	}

	report := o.buildReport(outcomes, newIDs, start)

	var postings []model.Posting
	for i := range outcomes {
		postings = append(postings, outcomes[i].postings...)
	}

	o.logger.Info("refresh complete",
		"companies", report.Summary.CompaniesTotal,
		"ok", report.Summary.CompaniesOK,
		"failed", report.Summary.CompaniesFailed,
		"fetched", report.Summary.JobsFetched,
		"written", report.Summary.JobsWritten,
		"new", len(report.NewIDs),
		"elapsed_ms", report.Summary.ElapsedMS,
	)
	return report, postings, nil
}

// fetchCompany runs one company's adapter call and scores the results.
func (o *Orchestrator) fetchCompany(ctx context.Context, c model.Company, cities, keywords []string, now time.Time) fetchOutcome {
	out := fetchOutcome{
		company: c,
		report: CompanyReport{
			Name:     companyName(c),
			Provider: c.Provider,
			Org:      c.Org,
			Status:   StatusError,
		},
	}
	start := o.now()
	defer func() {
		out.report.ElapsedMS = o.now().Sub(start).Milliseconds()
	}()

	// The refresh deadline may already have passed; do not start new calls.
	if err := ctx.Err(); err != nil {
		out.report.Error = err.Error()
		return out
	}

	adapter, err := o.adapters.Get(c.Provider)
	if err != nil {
		out.report.Error = err.Error()
		return out
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.opts.FetchTimeout)
	defer cancel()

	postings, err := adapter.Fetch(fetchCtx, c.Org, o.opts.FetchLimit)
	if err != nil {
		out.report.Error = err.Error()
		o.logger.Warn("company fetch failed",
			"company", out.report.Name,
			"provider", c.Provider,
			"error", err,
		)
		return out
	}

	for i := range postings {
		if postings[i].Company == "" {
			postings[i].Company = companyName(c)
		}
		postings[i].Score, postings[i].Reasons = o.scorer.Score(postings[i], keywords, cities, now)
	}

	out.report.Status = StatusOK
	out.report.JobsFetched = len(postings)
	out.postings = dedupePostings(postings)
	return out
}

// buildReport assembles and orders the final report: ok companies first,
// failures last, each group sorted by descending fetched count so operators
// see problems and the most productive sources at a glance.
func (o *Orchestrator) buildReport(outcomes []fetchOutcome, newIDs map[string]struct{}, start time.Time) *Report {
	report := &Report{
		Summary: Summary{CompaniesTotal: len(outcomes)},
	}
	for i := range outcomes {
		r := outcomes[i].report
		report.Companies = append(report.Companies, r)
		if r.Status == StatusOK {
			report.Summary.CompaniesOK++
		} else {
			report.Summary.CompaniesFailed++
		}
		report.Summary.JobsFetched += r.JobsFetched
		report.Summary.JobsWritten += r.JobsWritten
	}

	sort.SliceStable(report.Companies, func(i, j int) bool {
		a, b := report.Companies[i], report.Companies[j]
		if (a.Status == StatusOK) != (b.Status == StatusOK) {
			return a.Status == StatusOK
		}
		return a.JobsFetched > b.JobsFetched
	})

	report.NewIDs = make([]string, 0, len(newIDs))
	for id := range newIDs {
		report.NewIDs = append(report.NewIDs, id)
	}
	sort.Strings(report.NewIDs)

	report.Summary.ElapsedMS = o.now().Sub(start).Milliseconds()
	return report
}

// dedupePostings drops same-id duplicates within one company's fetch,
// keeping the entry with the newer creation time.
func dedupePostings(postings []model.Posting) []model.Posting {
	if len(postings) < 2 {
		return postings
	}
	index := make(map[string]int, len(postings))
	out := postings[:0]
	for _, p := range postings {
		i, seen := index[p.ID]
		if !seen {
			index[p.ID] = len(out)
			out = append(out, p)
			continue
		}
		prev := out[i]
		if prev.CreatedAt == nil || (p.CreatedAt != nil && p.CreatedAt.After(*prev.CreatedAt)) {
			out[i] = p
		}
	}
	return out
}

func companyName(c model.Company) string {
	if c.Name != "" {
		return c.Name
	}
	return c.Org
}
