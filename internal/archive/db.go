// Package archive keeps every fetched tweet in a local SQLite database.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    query      TEXT NOT NULL,
    tweets     INTEGER NOT NULL,
    fetched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tweets (
    id          TEXT PRIMARY KEY,
    created_at  INTEGER NOT NULL DEFAULT 0,
    user_id     TEXT NOT NULL DEFAULT '',
    screen_name TEXT NOT NULL DEFAULT '',
    full_text   TEXT NOT NULL DEFAULT '',
    raw         TEXT NOT NULL,
    user_raw    TEXT,
    run_id      INTEGER NOT NULL REFERENCES runs(id)
);

CREATE INDEX IF NOT EXISTS tweets_created_at ON tweets(created_at);
`

// ErrNotFound is returned by Tweet when no row matches.
var ErrNotFound = errors.New("tweet not archived")

// DB is an open tweet archive.
type DB struct {
	db *sql.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SaveRun records one search run and upserts its tweets in a single transaction.
// It returns the run ID.
func (d *DB) SaveRun(ctx context.Context, query string, tweets []*twinicodo.Tweet) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, tweets, fetched_at) VALUES (?, ?, ?)`,
		query, len(tweets), time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO tweets
		(id, created_at, user_id, screen_name, full_text, raw, user_raw, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare tweet insert: %w", err)
	}
	defer stmt.Close()

	for _, tw := range tweets {
		raw, err := json.Marshal(tw)
		if err != nil {
			return 0, fmt.Errorf("encode tweet %s: %w", tw.ID, err)
		}
		var createdAt int64
		if !tw.CreatedAt.IsZero() {
			createdAt = tw.CreatedAt.UnixMilli()
		}
		var screenName string
		var userRaw sql.NullString
		if tw.User != nil {
			screenName = tw.User.ScreenName
			ub, err := json.Marshal(tw.User)
			if err != nil {
				return 0, fmt.Errorf("encode user %s: %w", tw.UserID, err)
			}
			userRaw = sql.NullString{String: string(ub), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, tw.ID, createdAt, tw.UserID, screenName, tw.FullText, string(raw), userRaw, runID); err != nil {
			return 0, fmt.Errorf("insert tweet %s: %w", tw.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive: %w", err)
	}
	return runID, nil
}

// Tweet reloads an archived tweet from its stored JSON, author included.
func (d *DB) Tweet(ctx context.Context, id string) (*twinicodo.Tweet, error) {
	var raw string
	var userRaw sql.NullString
	err := d.db.QueryRowContext(ctx, `SELECT raw, user_raw FROM tweets WHERE id = ?`, id).Scan(&raw, &userRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query tweet %s: %w", id, err)
	}

	tw := &twinicodo.Tweet{}
	if err := json.Unmarshal([]byte(raw), tw); err != nil {
		return nil, err
	}
	if userRaw.Valid {
		tw.User = &twinicodo.User{}
		if err := json.Unmarshal([]byte(userRaw.String), tw.User); err != nil {
			return nil, err
		}
	}
	return tw, nil
}

// Count returns the number of archived tweets.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return n, nil
}

// Runs returns the number of recorded search runs.
func (d *DB) Runs(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}
