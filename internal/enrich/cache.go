// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache persists CrossRef lookup outcomes in a SQLite database so that
// repeated validations of the same reference list do not re-query the
// API. Misses are cached too (found = 0) to avoid hammering the index
// with titles it will never match.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the lookup cache at path, creating the
// schema on first use.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS lookups (
		title_key TEXT PRIMARY KEY,
		found INTEGER NOT NULL,
		record TEXT,
		fetched_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached outcome for a title. hit is false when the
// title has never been looked up; a hit with a nil record means the
// earlier lookup found nothing.
func (c *Cache) Get(title string) (rec *Record, hit bool, err error) {
	var found int
	var blob sql.NullString
	row := c.db.QueryRow(`SELECT found, record FROM lookups WHERE title_key = ?`, titleKey(title))
	if err := row.Scan(&found, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	if found == 0 || !blob.Valid {
		return nil, true, nil
	}

	var r Record
	if err := json.Unmarshal([]byte(blob.String), &r); err != nil {
		return nil, false, fmt.Errorf("decoding cached record: %w", err)
	}
	return &r, true, nil
}

// Put stores a lookup outcome. A nil record marks the title as a known
// miss.
func (c *Cache) Put(title string, rec *Record) error {
	found := 0
	var blob sql.NullString
	if rec != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		found = 1
		blob = sql.NullString{String: string(data), Valid: true}
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO lookups (title_key, found, record, fetched_at) VALUES (?, ?, ?, ?)`,
		titleKey(title), found, blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// titleKey normalizes a title into a stable cache key.
func titleKey(title string) string {
	return strings.Join(wordRe.FindAllString(strings.ToLower(title), -1), " ")
}
