// Package memory persists past (situation, recommendation) pairs used by
// the reflection stages. Each logical memory name maps to its own table in
// a shared sqlite database; creation is idempotent.
package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one remembered situation and the recommendation that followed.
type Record struct {
	Situation      string
	Recommendation string
}

// Store is a named memory collection.
type Store struct {
	name string
	db   *sql.DB
}

// Registry creates or reuses named stores over one sqlite database.
// Concurrent creation of different names is safe; each name's table is
// created at most once.
type Registry struct {
	mu     sync.Mutex
	db     *sql.DB
	stores map[string]*Store
}

var tableNamePattern = regexp.MustCompile(`[^A-Za-z0-9_]`)

func sanitizeName(name string) string {
	return tableNamePattern.ReplaceAllString(name, "_")
}

// OpenRegistry opens (or creates) the memory database at dbPath.
func OpenRegistry(dbPath string) (*Registry, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("memory: db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("memory: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_loc=Local")
	if err != nil {
		return nil, fmt.Errorf("memory: open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("memory: set pragma %s: %w", p, err)
		}
	}

	return &Registry{db: db, stores: make(map[string]*Store)}, nil
}

// Get returns the store for name, creating its table on first use.
func (r *Registry) Get(name string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[name]; ok {
		return s, nil
	}

	table := sanitizeName(name)
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		situation TEXT NOT NULL,
		recommendation TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`, table)
	if _, err := r.db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("memory: create collection %s: %w", name, err)
	}

	s := &Store{name: table, db: r.db}
	r.stores[name] = s
	return s, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

// AddMemory stores one situation/recommendation pair.
func (s *Store) AddMemory(situation, recommendation string) error {
	query := fmt.Sprintf("INSERT INTO %s (situation, recommendation) VALUES (?, ?)", s.name)
	if _, err := s.db.Exec(query, situation, recommendation); err != nil {
		return fmt.Errorf("memory: add to %s: %w", s.name, err)
	}
	return nil
}

// GetMemories returns up to n past records ordered by similarity to the
// given situation. Similarity is token overlap; embedding retrieval is the
// original system's concern, not this one's.
func (s *Store) GetMemories(situation string, n int) ([]Record, error) {
	if n <= 0 {
		n = 2
	}

	query := fmt.Sprintf("SELECT situation, recommendation FROM %s", s.name)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("memory: query %s: %w", s.name, err)
	}
	defer rows.Close()

	type scored struct {
		rec   Record
		score float64
	}
	var all []scored

	queryTokens := tokenize(situation)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Situation, &rec.Recommendation); err != nil {
			return nil, fmt.Errorf("memory: scan %s: %w", s.name, err)
		}
		all = append(all, scored{rec: rec, score: overlap(queryTokens, tokenize(rec.Situation))})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memory: iterate %s: %w", s.name, err)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	if len(all) > n {
		all = all[:n]
	}
	out := make([]Record, 0, len(all))
	for _, s := range all {
		out = append(out, s.rec)
	}
	return out, nil
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,:;!?()[]\"'")
		if len(f) > 2 {
			tokens[f] = struct{}{}
		}
	}
	return tokens
}

// overlap is the Jaccard index between two token sets.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	return float64(common) / float64(len(a)+len(b)-common)
}
