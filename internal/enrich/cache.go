package enrich

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// schemaSQL defines the SQLite schema for the classification cache. One row
// per distinct (text, language) pair, keyed by digest.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS classifications (
    text_hash TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    score REAL,
    classified_at TEXT NOT NULL
);
`

// Cache stores classifier verdicts in a SQLite database so repeated runs
// over the same transcript skip the classifier entirely.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// OpenCache opens or creates the cache database at path and initializes
// the schema if the database is new.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sentiment cache: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sentiment cache schema: %w", err)
	}
	return &Cache{db: db, dbPath: path}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string { return c.dbPath }

// Clear removes all cached classifications.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM classifications"); err != nil {
		return fmt.Errorf("clear sentiment cache: %w", err)
	}
	return nil
}

// Lookup returns the cached classification for the text, if any.
func (c *Cache) Lookup(text, language string) (Classification, bool, error) {
	var (
		label string
		score sql.NullFloat64
	)
	err := c.db.QueryRow(
		"SELECT label, score FROM classifications WHERE text_hash = ?",
		cacheKey(text, language),
	).Scan(&label, &score)
	if err == sql.ErrNoRows {
		return Classification{}, false, nil
	}
	if err != nil {
		return Classification{}, false, fmt.Errorf("lookup classification: %w", err)
	}

	cl := Classification{Label: model.ParseSentimentLabel(label)}
	if score.Valid {
		v := score.Float64
		cl.Score = &v
	}
	return cl, true, nil
}

// Store upserts the classification for the text.
func (c *Cache) Store(text, language string, cl Classification) error {
	var score interface{}
	if cl.Score != nil {
		score = *cl.Score
	}
	_, err := c.db.Exec(`
		INSERT INTO classifications (text_hash, label, score, classified_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(text_hash) DO UPDATE SET
			label = excluded.label,
			score = excluded.score,
			classified_at = excluded.classified_at`,
		cacheKey(text, language), string(cl.Label), score, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store classification: %w", err)
	}
	return nil
}

// cacheKey digests text and language together so the same utterance in two
// languages never collides.
func cacheKey(text, language string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(language))
	return hex.EncodeToString(h.Sum(nil))
}
