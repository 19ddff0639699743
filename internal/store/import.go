package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Manifest table files, as the game's manifest ships them: one JSON object
// per table, keyed by hash.
const (
	StatDefinitionFile      = "DestinyStatDefinition.json"
	StatGroupDefinitionFile = "DestinyStatGroupDefinition.json"
	ItemDefinitionFile      = "DestinyInventoryItemDefinition.json"
)

var manifestTables = []struct {
	file  string
	table string
}{
	{StatDefinitionFile, tableStats},
	{StatGroupDefinitionFile, tableStatGroups},
	{ItemDefinitionFile, tableItems},
}

// namedRecord is the part of every manifest record the index needs.
type namedRecord struct {
	DisplayProperties struct {
		Name string `json:"name"`
	} `json:"displayProperties"`
}

// ImportDir replaces the stored manifest with the table files in dir. The
// import runs in one transaction, so a failure leaves the previous data intact.
func (s *Store) ImportDir(ctx context.Context, dir string) (Counts, error) {
	tables := make(map[string]map[string]json.RawMessage, len(manifestTables))
	for _, mt := range manifestTables {
		records, err := readTable(filepath.Join(dir, mt.file))
		if err != nil {
			return Counts{}, err
		}
		tables[mt.table] = records
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Counts{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var counts Counts
	for _, mt := range manifestTables {
		var n int
		n, err = insertTable(ctx, tx, mt.table, tables[mt.table])
		if err != nil {
			return Counts{}, fmt.Errorf("failed to import %s: %w", mt.file, err)
		}
		switch mt.table {
		case tableStats:
			counts.Stats = n
		case tableStatGroups:
			counts.StatGroups = n
		case tableItems:
			counts.Items = n
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO manifest_info (id, imported_at, source) VALUES (1, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), dir,
	); err != nil {
		return Counts{}, err
	}
	if err = tx.Commit(); err != nil {
		return Counts{}, err
	}

	s.stats.Purge()
	s.groups.Purge()
	s.items.Purge()
	return counts, nil
}

func readTable(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest table: %w", err)
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func insertTable(ctx context.Context, tx *sql.Tx, table string, records map[string]json.RawMessage) (int, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (hash, name, json) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for key, raw := range records {
		hash, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hash %q: %w", key, err)
		}
		var rec namedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return 0, fmt.Errorf("failed to decode record %d: %w", hash, err)
		}
		if _, err := stmt.ExecContext(ctx, int64(hash), rec.DisplayProperties.Name, string(raw)); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}
