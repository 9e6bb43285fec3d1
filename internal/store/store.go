// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists client-local state: the current topic feed, session
// history, covered-topic history, and best-effort flags. Everything lives in
// one SQLite database under the data directory.
// See docs/ARCHITECTURE.md § Local Store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/esosa/podcast-assistant/pkg/types"
)

const dbFile = "assistant.db"

// feedSchemaVersion tags persisted topic feeds. A mismatch on load resets the
// feed to empty instead of attempting a migration; the feed is a cache and
// the next research call rebuilds it.
const feedSchemaVersion = 1

const (
	topicFeedKey  = "topic_feed"
	authFlag      = "authenticated"
	coveredThresh = 0.7
)

// Store manages the client-local SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open creates or opens the database at dataDir/assistant.db and ensures the
// schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DataDir returns the directory the store lives in; downloaded reports are
// placed alongside the database.
func (s *Store) DataDir() string { return s.dataDir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			payload TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flags (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			summary TEXT,
			payload TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_type ON sessions(type)`,
		`CREATE TABLE IF NOT EXISTS topic_history (
			topic TEXT PRIMARY KEY,
			covered_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveTopicFeed replaces the persisted topic feed. Last write wins.
func (s *Store) SaveTopicFeed(topics []types.Topic) error {
	payload, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("encoding topic feed: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, schema_version, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			schema_version=excluded.schema_version,
			payload=excluded.payload,
			updated_at=excluded.updated_at`,
		topicFeedKey, feedSchemaVersion, string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving topic feed: %w", err)
	}
	return nil
}

// LoadTopicFeed returns the persisted topic feed. A missing snapshot, a
// schema version mismatch, or an unparseable payload all yield an empty feed
// without error: the feed is a best-effort cache.
func (s *Store) LoadTopicFeed() ([]types.Topic, error) {
	var version int
	var payload string
	err := s.db.QueryRow(
		`SELECT schema_version, payload FROM snapshots WHERE key = ?`, topicFeedKey,
	).Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading topic feed: %w", err)
	}
	if version != feedSchemaVersion {
		return nil, nil
	}
	var topics []types.Topic
	if json.Unmarshal([]byte(payload), &topics) != nil {
		return nil, nil
	}
	return topics, nil
}

// SetAuthenticated records the login flag.
func (s *Store) SetAuthenticated(v bool) error {
	val := 0
	if v {
		val = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO flags (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value=excluded.value`,
		authFlag, val,
	)
	if err != nil {
		return fmt.Errorf("setting auth flag: %w", err)
	}
	return nil
}

// Authenticated reads the login flag; absent means false.
func (s *Store) Authenticated() (bool, error) {
	var val int
	err := s.db.QueryRow(`SELECT value FROM flags WHERE name = ?`, authFlag).Scan(&val)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading auth flag: %w", err)
	}
	return val != 0, nil
}

// Session is one recorded research or episode run.
type Session struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Summary   string          `json:"summary"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// RecordSession stores a run with its full payload for later inspection.
func (s *Store) RecordSession(sessionType, summary string, payload any) (Session, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Session{}, fmt.Errorf("encoding session payload: %w", err)
	}
	sess := Session{
		ID:        uuid.NewString(),
		Type:      sessionType,
		Summary:   summary,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (id, type, summary, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Type, sess.Summary, string(data), sess.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Session{}, fmt.Errorf("recording session: %w", err)
	}
	return sess, nil
}

// Sessions lists recorded runs, newest first. An empty sessionType matches
// all types; limit <= 0 means 10.
func (s *Store) Sessions(sessionType string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, type, summary, payload, created_at FROM sessions`
	args := []any{}
	if sessionType != "" {
		query += ` WHERE type = ?`
		args = append(args, sessionType)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var payload, createdAt string
		if err := rows.Scan(&sess.ID, &sess.Type, &sess.Summary, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.Payload = json.RawMessage(payload)
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			sess.CreatedAt = t
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// AddTopicHistory marks a topic as covered.
func (s *Store) AddTopicHistory(topic string, coveredAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO topic_history (topic, covered_at) VALUES (?, ?)
		 ON CONFLICT(topic) DO UPDATE SET covered_at=excluded.covered_at`,
		topic, coveredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("adding topic history: %w", err)
	}
	return nil
}

// HistoryMatch is a previously covered topic similar to a candidate.
type HistoryMatch struct {
	Topic      string
	Similarity float64
	CoveredAt  time.Time
}

// Covered returns covered topics whose word overlap with the candidate meets
// the similarity threshold, most similar first.
func (s *Store) Covered(topic string) ([]HistoryMatch, error) {
	rows, err := s.db.Query(`SELECT topic, covered_at FROM topic_history`)
	if err != nil {
		return nil, fmt.Errorf("reading topic history: %w", err)
	}
	defer rows.Close()

	var matches []HistoryMatch
	for rows.Next() {
		var covered, coveredAt string
		if err := rows.Scan(&covered, &coveredAt); err != nil {
			return nil, fmt.Errorf("scanning topic history: %w", err)
		}
		sim := wordOverlap(topic, covered)
		if sim < coveredThresh {
			continue
		}
		m := HistoryMatch{Topic: covered, Similarity: sim}
		if t, perr := time.Parse(time.RFC3339, coveredAt); perr == nil {
			m.CoveredAt = t
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Insertion sort; history is small.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Similarity > matches[j-1].Similarity; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches, nil
}

// wordOverlap computes Jaccard similarity over lowercased word sets.
func wordOverlap(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if wb[w] {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = true
	}
	return out
}
