// Package store handles SQLite persistence of manifest definitions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/verte-zerg/itemstats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a definition is not in the manifest.
var ErrNotFound = errors.New("definition not found")

const (
	tableStats      = "stat_definitions"
	tableStatGroups = "stat_group_definitions"
	tableItems      = "item_definitions"

	defaultCacheSize = 4096
)

// Store wraps SQLite access for manifest data. Decoded definitions are kept
// in LRU caches, so batch builds do not decode the same plug over and over.
type Store struct {
	db     *sql.DB
	stats  *lru.Cache[model.StatHash, *model.StatDefinition]
	groups *lru.Cache[uint32, *model.StatGroupDefinition]
	items  *lru.Cache[uint32, *model.ItemDefinition]
}

// Info describes the last manifest import.
type Info struct {
	ImportedAt time.Time
	Source     string
	Counts     Counts
}

// Counts is the number of definitions of each kind.
type Counts struct {
	Stats      int
	StatGroups int
	Items      int
}

// ItemRef is a lightweight reference to an item definition.
type ItemRef struct {
	Hash uint32
	Name string
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store, err := newStore(db)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

func newStore(db *sql.DB) (*Store, error) {
	stats, err := lru.New[model.StatHash, *model.StatDefinition](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	groups, err := lru.New[uint32, *model.StatGroupDefinition](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	items, err := lru.New[uint32, *model.ItemDefinition](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, stats: stats, groups: groups, items: items}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stat_definitions (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stat_group_definitions (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS item_definitions (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS manifest_info (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			imported_at TEXT NOT NULL,
			source TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_item_definitions_name ON item_definitions(name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// StatDefinition returns the definition of a stat.
func (s *Store) StatDefinition(ctx context.Context, hash model.StatHash) (*model.StatDefinition, error) {
	return lookup(ctx, s, s.stats, tableStats, hash, int64(hash))
}

// StatGroupDefinition returns the definition of a stat group.
func (s *Store) StatGroupDefinition(ctx context.Context, hash uint32) (*model.StatGroupDefinition, error) {
	return lookup(ctx, s, s.groups, tableStatGroups, hash, int64(hash))
}

// ItemDefinition returns the definition of an item or plug.
func (s *Store) ItemDefinition(ctx context.Context, hash uint32) (*model.ItemDefinition, error) {
	return lookup(ctx, s, s.items, tableItems, hash, int64(hash))
}

func lookup[K comparable, V any](ctx context.Context, s *Store, cache *lru.Cache[K, *V], table string, key K, hash int64) (*V, error) {
	if v, ok := cache.Get(key); ok {
		return v, nil
	}
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT json FROM `+table+` WHERE hash = ?`, hash).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", table, hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s %d: %w", table, hash, err)
	}
	v := new(V)
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return nil, fmt.Errorf("failed to decode %s %d: %w", table, hash, err)
	}
	cache.Add(key, v)
	return v, nil
}

// FindItems returns item definitions whose name contains query, ignoring case.
func (s *Store) FindItems(ctx context.Context, query string, limit int) ([]ItemRef, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash, name FROM item_definitions
		 WHERE lower(name) LIKE ?
		 ORDER BY name ASC, hash ASC
		 LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []ItemRef
	for rows.Next() {
		var ref ItemRef
		var hash int64
		if err := rows.Scan(&hash, &ref.Name); err != nil {
			return nil, err
		}
		ref.Hash = uint32(hash)
		result = append(result, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Info returns details of the last import, or ErrNotFound when the manifest
// was never imported.
func (s *Store) Info(ctx context.Context) (Info, error) {
	var info Info
	var importedAt string
	err := s.db.QueryRowContext(ctx, `SELECT imported_at, source FROM manifest_info WHERE id = 1`).Scan(&importedAt, &info.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("manifest: %w", ErrNotFound)
	}
	if err != nil {
		return Info{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, importedAt)
	if err != nil {
		return Info{}, err
	}
	info.ImportedAt = parsed

	for table, dst := range map[string]*int{
		tableStats:      &info.Counts.Stats,
		tableStatGroups: &info.Counts.StatGroups,
		tableItems:      &info.Counts.Items,
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(dst); err != nil {
			return Info{}, err
		}
	}
	return info, nil
}
