// Package store persists companies and postings in SQLite and answers
// filtered queries over them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jobscout/jobscout/internal/model"
	"github.com/jobscout/jobscout/internal/score"
)

// SQLiteStore is the durable posting store. Upserts are keyed by posting id;
// a re-fetched posting updates mutable fields but keeps its identity and
// first-seen time.
type SQLiteStore struct {
	db      *sql.DB
	aliases score.Aliases
	now     func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	provider    TEXT NOT NULL,
	org         TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	careers_url TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL,
	PRIMARY KEY (provider, org)
);
CREATE TABLE IF NOT EXISTS postings (
	id         TEXT PRIMARY KEY,
	provider   TEXT NOT NULL,
	org        TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	work_mode  TEXT NOT NULL DEFAULT '',
	remote     INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	first_seen DATETIME NOT NULL,
	last_seen  DATETIME NOT NULL,
	score      INTEGER NOT NULL DEFAULT 0,
	reasons    TEXT NOT NULL DEFAULT '[]',
	extra      TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS ix_postings_provider ON postings (provider);
CREATE INDEX IF NOT EXISTS ix_postings_score ON postings (score);
CREATE INDEX IF NOT EXISTS ix_postings_created ON postings (created_at);
`

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists. aliases may be nil for the default city alias table.
func NewSQLiteStore(dbPath string, aliases score.Aliases) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if aliases == nil {
		aliases = score.DefaultAliases
	}
	return &SQLiteStore{db: db, aliases: aliases, now: time.Now}, nil
}

// UpsertCompany inserts a company or enriches an existing one. Identity
// (provider, lowercased org) is immutable; name and city only fill in when
// the stored value is empty.
func (s *SQLiteStore) UpsertCompany(ctx context.Context, c model.Company) error {
	if c.Provider == "" || c.Org == "" {
		return fmt.Errorf("upsert company: provider and org are required")
	}
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (provider, org, name, city, careers_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, org) DO UPDATE SET
			name        = CASE WHEN companies.name = '' THEN excluded.name ELSE companies.name END,
			city        = CASE WHEN companies.city = '' THEN excluded.city ELSE companies.city END,
			careers_url = CASE WHEN companies.careers_url = '' THEN excluded.careers_url ELSE companies.careers_url END,
			updated_at  = excluded.updated_at`,
		c.Provider, strings.ToLower(c.Org), c.Name, c.City, c.CareersURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert company %s/%s: %w", c.Provider, c.Org, err)
	}
	return nil
}

// Companies returns every stored company ordered by provider then org.
func (s *SQLiteStore) Companies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT provider, org, name, city, careers_url FROM companies ORDER BY provider, org`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.Provider, &c.Org, &c.Name, &c.City, &c.CareersURL); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertPosting writes one posting. Inserting twice with the same id yields
// a single row: the second write refreshes mutable fields and last_seen but
// preserves first_seen.
func (s *SQLiteStore) UpsertPosting(ctx context.Context, p model.Posting) error {
	if p.ID == "" {
		return fmt.Errorf("upsert posting: missing id")
	}

	reasons, err := json.Marshal(p.Reasons)
	if err != nil {
		return fmt.Errorf("upsert posting %s: encoding reasons: %w", p.ID, err)
	}
	extra, err := json.Marshal(p.Extra)
	if err != nil {
		return fmt.Errorf("upsert posting %s: encoding extra: %w", p.ID, err)
	}

	var createdAt any
	if p.CreatedAt != nil {
		createdAt = p.CreatedAt.UTC()
	}
	now := s.now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO postings (id, provider, org, title, company, url, location,
			work_mode, remote, created_at, first_seen, last_seen, score, reasons, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title      = excluded.title,
			company    = excluded.company,
			url        = excluded.url,
			location   = excluded.location,
			work_mode  = excluded.work_mode,
			remote     = excluded.remote,
			created_at = excluded.created_at,
			last_seen  = excluded.last_seen,
			score      = excluded.score,
			reasons    = excluded.reasons,
			extra      = excluded.extra`,
		p.ID, p.Provider, strings.ToLower(p.Org), p.Title, p.Company, p.URL, p.Location,
		string(p.WorkMode), boolToInt(p.Remote), createdAt, now, now, p.Score,
		string(reasons), string(extra),
	)
	if err != nil {
		return fmt.Errorf("upsert posting %s: %w", p.ID, err)
	}
	return nil
}

// PostingIDs returns the set of posting ids currently stored. This is the
// refresh snapshot used to compute "new since last run".
func (s *SQLiteStore) PostingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM postings`)
	if err != nil {
		return nil, fmt.Errorf("listing posting ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning posting id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// Filters narrows a posting query. Zero values mean "no constraint".
type Filters struct {
	Provider      string
	WorkMode      model.WorkMode
	MinScore      int
	MaxAgeDays    int
	Cities        []string
	TitleKeywords []string
	Limit         int
}

// DefaultQueryLimit caps query results when the caller does not set one.
const DefaultQueryLimit = 500

// Query returns stored postings matching the filters, ordered by score
// descending, then creation time descending, then id. City terms are
// alias-expanded and substring-matched against the location text.
func (s *SQLiteStore) Query(ctx context.Context, f Filters) ([]model.Posting, error) {
	where := []string{"1=1"}
	var args []any

	if f.Provider != "" {
		where = append(where, "provider = ?")
		args = append(args, strings.ToLower(f.Provider))
	}
	if f.WorkMode != model.WorkModeUnknown {
		where = append(where, "work_mode = ?")
		args = append(args, string(f.WorkMode))
	}
	if f.MinScore > 0 {
		where = append(where, "score >= ?")
		args = append(args, f.MinScore)
	}
	if f.MaxAgeDays > 0 {
		cutoff := s.now().UTC().AddDate(0, 0, -f.MaxAgeDays)
		where = append(where, "created_at IS NOT NULL AND created_at >= ?")
		args = append(args, cutoff)
	}

	query := `SELECT id, provider, org, title, company, url, location, work_mode,
		remote, created_at, first_seen, score, reasons, extra
		FROM postings WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY score DESC, created_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}
	defer rows.Close()

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	cities := lowerAll(s.aliases.Expand(f.Cities))
	title := lowerAll(f.TitleKeywords)

	var out []model.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		if len(cities) > 0 && !containsAny(strings.ToLower(p.Location), cities) {
			continue
		}
		if len(title) > 0 && !containsAny(strings.ToLower(p.Title), title) {
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, rows.Err()
}

func scanPosting(rows *sql.Rows) (model.Posting, error) {
	var (
		p          model.Posting
		workMode   string
		remote     int
		createdAt  sql.NullTime
		reasonsRaw string
		extraRaw   string
	)
	err := rows.Scan(&p.ID, &p.Provider, &p.Org, &p.Title, &p.Company, &p.URL,
		&p.Location, &workMode, &remote, &createdAt, &p.FirstSeen, &p.Score,
		&reasonsRaw, &extraRaw)
	if err != nil {
		return p, fmt.Errorf("scanning posting: %w", err)
	}
	p.WorkMode = model.WorkMode(workMode)
	p.Remote = remote != 0
	if createdAt.Valid {
		t := createdAt.Time.UTC()
		p.CreatedAt = &t
	}
	if err := json.Unmarshal([]byte(reasonsRaw), &p.Reasons); err != nil {
		return p, fmt.Errorf("decoding reasons for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(extraRaw), &p.Extra); err != nil {
		return p, fmt.Errorf("decoding extra for %s: %w", p.ID, err)
	}
	return p, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func lowerAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
