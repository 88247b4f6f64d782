package transcriptcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cutter/internal/logging"
	"cutter/internal/transcript"
)

// Entry summarizes a cached transcript.
type Entry struct {
	Key
	SourcePath   string
	SegmentCount int
	CreatedAt    time.Time
}

// Cache stores transcripts in a SQLite database.
type Cache struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the cache database and applies migrations.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("transcript cache: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path, logger: logging.NewComponentLogger(logger, "transcriptcache")}
	if err := cache.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Lookup returns the transcript stored under key.
func (c *Cache) Lookup(ctx context.Context, key Key) (transcript.Transcript, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM transcripts WHERE fingerprint = ? AND model = ? AND language = ?`,
		key.Fingerprint, key.Model, key.Language,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return transcript.Transcript{}, false, nil
	}
	if err != nil {
		return transcript.Transcript{}, false, fmt.Errorf("lookup transcript: %w", err)
	}

	var tr transcript.Transcript
	if err := json.Unmarshal([]byte(payload), &tr); err != nil {
		return transcript.Transcript{}, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	c.logger.Debug("transcript cache hit",
		logging.String("fingerprint", key.Fingerprint),
		logging.String("model", key.Model),
		logging.Int("segments", len(tr.Segments)),
	)
	return tr, true, nil
}

// Store inserts or replaces the transcript for key.
func (c *Cache) Store(ctx context.Context, key Key, sourcePath string, tr transcript.Transcript) error {
	if strings.TrimSpace(key.Fingerprint) == "" {
		return errors.New("store transcript: fingerprint required")
	}
	payload, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO transcripts (fingerprint, model, language, source_path, payload, segment_count, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (fingerprint, model, language) DO UPDATE SET
             source_path = excluded.source_path,
             payload = excluded.payload,
             segment_count = excluded.segment_count,
             created_at = excluded.created_at`,
		key.Fingerprint,
		key.Model,
		key.Language,
		sourcePath,
		string(payload),
		len(tr.Segments),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// List returns all entries, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT fingerprint, model, language, source_path, segment_count, created_at
         FROM transcripts ORDER BY created_at DESC, source_path`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var created string
		if err := rows.Scan(&entry.Fingerprint, &entry.Model, &entry.Language, &entry.SourcePath, &entry.SegmentCount, &created); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM transcripts`)
	if err != nil {
		return 0, fmt.Errorf("clear transcripts: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	c.logger.Debug("cleared transcript cache", logging.Int("removed", int(removed)))
	return removed, nil
}
