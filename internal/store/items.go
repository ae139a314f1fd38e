// Package store persists the items behind the list demo in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var (
	ErrNotFound   = errors.New("item not found")
	ErrEmptyTitle = errors.New("item title is empty")
)

type Item struct {
	ID        string
	Title     string
	Rank      string
	CreatedAt time.Time
}

// DB is an ordered item collection backed by a sqlite file.
type DB struct {
	sql  *sql.DB
	path string
	log  *slog.Logger
	now  func() time.Time
}

type Option func(*DB)

func WithLogger(l *slog.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.log = l
		}
	}
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty path")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	}
	// modernc.org/sqlite registers the "sqlite" driver.
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if path == MemoryPath {
		// Every pooled connection would get its own empty database.
		sqldb.SetMaxOpenConns(1)
	}
	db := &DB{sql: sqldb, path: path, log: slog.New(slog.DiscardHandler), now: time.Now}
	for _, o := range opts {
		o(db)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqldb.ExecContext(ctx, p); err != nil {
			_ = sqldb.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if err := db.migrate(ctx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	db.log.Debug("store opened", "path", path)
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			rank TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_rank ON items(rank, id);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, s := range stmts {
		if _, err := db.sql.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

func (db *DB) Path() string { return db.path }

func (db *DB) Close() error { return db.sql.Close() }

// List returns every item in rank order.
func (db *DB) List(ctx context.Context) ([]Item, error) {
	return list(ctx, db.sql)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func list(ctx context.Context, q querier) ([]Item, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title, rank, created_at_unixms FROM items ORDER BY rank, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var it Item
		var ms int64
		if err := rows.Scan(&it.ID, &it.Title, &it.Rank, &ms); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		it.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Add appends an item after the last one.
func (db *DB) Add(ctx context.Context, title string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}
	var last string
	err := db.sql.QueryRowContext(ctx, `SELECT rank FROM items ORDER BY rank DESC, id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("store: add: %w", err)
	}
	rank, err := rankBetween(last, "")
	if err != nil {
		return Item{}, fmt.Errorf("store: add: %w", err)
	}
	it := Item{ID: uuid.NewString(), Title: title, Rank: rank, CreatedAt: db.now().UTC()}
	_, err = db.sql.ExecContext(ctx,
		`INSERT INTO items(id, title, rank, created_at_unixms) VALUES(?, ?, ?, ?)`,
		it.ID, it.Title, it.Rank, it.CreatedAt.UnixMilli())
	if err != nil {
		return Item{}, fmt.Errorf("store: add: %w", err)
	}
	db.log.Debug("item added", "id", it.ID, "rank", it.Rank)
	return it, nil
}

// Remove deletes the item with id.
func (db *DB) Remove(ctx context.Context, id string) error {
	res, err := db.sql.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: remove: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("store: remove %s: %w", id, ErrNotFound)
	}
	db.log.Debug("item removed", "id", id)
	return nil
}

// Seed adds titles when the store is empty and reports whether it did.
func (db *DB) Seed(ctx context.Context, titles []string) (bool, error) {
	n, err := db.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for _, t := range titles {
		if _, err := db.Add(ctx, t); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Move shifts the item with id by delta positions, clamped to the ends of
// the list, and returns its new index.
func (db *DB) Move(ctx context.Context, id string, delta int) (int, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: move: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	items, err := list(ctx, tx)
	if err != nil {
		return 0, err
	}
	from := -1
	for i, it := range items {
		if it.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return 0, fmt.Errorf("store: move %s: %w", id, ErrNotFound)
	}
	to := min(max(from+delta, 0), len(items)-1)
	if to == from {
		return from, nil
	}

	rank, err := neighbourRank(items, from, to)
	if errors.Is(err, errNoRankSpace) {
		if err := rebalance(ctx, tx, items); err != nil {
			return 0, err
		}
		rank, err = neighbourRank(items, from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("store: move: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET rank = ? WHERE id = ?`, rank, id); err != nil {
		return 0, fmt.Errorf("store: move: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: move: %w", err)
	}
	db.log.Debug("item moved", "id", id, "from", from, "to", to, "rank", rank)
	return to, nil
}

// neighbourRank computes a rank that places items[from] at index to.
func neighbourRank(items []Item, from, to int) (string, error) {
	var lo, hi string
	if to > from {
		lo = items[to].Rank
		if to+1 < len(items) {
			hi = items[to+1].Rank
		}
	} else {
		hi = items[to].Rank
		if to > 0 {
			lo = items[to-1].Rank
		}
	}
	if lo == hi && lo != "" {
		return "", errNoRankSpace
	}
	return rankBetween(lo, hi)
}

// rebalance rewrites every rank evenly spaced, updating items in place.
func rebalance(ctx context.Context, tx *sql.Tx, items []Item) error {
	ranks := spreadRanks(len(items))
	for i := range items {
		if _, err := tx.ExecContext(ctx, `UPDATE items SET rank = ? WHERE id = ?`, ranks[i], items[i].ID); err != nil {
			return fmt.Errorf("store: rebalance: %w", err)
		}
		items[i].Rank = ranks[i]
	}
	return nil
}
