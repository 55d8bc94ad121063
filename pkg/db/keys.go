// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/TFMV/AddressKey/internal/keys"
)

// keyColumns is the COPY column order for the keys table.
var keyColumns = []string{"run_id", "address_id", "address", "address_key"}

// Tables names the tables a KeyStore works with.
type Tables struct {
	Source string
	Keys   string
	Runs   string
}

// DuplicateGroup is a key shared by more than one address within a run.
type DuplicateGroup struct {
	Key        string   `json:"key"`
	AddressIDs []string `json:"address_ids"`
}

// KeyStore reads raw addresses from a source table and stores generated keys per run.
type KeyStore struct {
	pool   Pool
	tables Tables
	source string
	keys   string
	runs   string
}

// NewKeyStore returns a KeyStore over pool.
func NewKeyStore(pool Pool, tables Tables) *KeyStore {
	return &KeyStore{
		pool:   pool,
		tables: tables,
		source: pgx.Identifier{tables.Source}.Sanitize(),
		keys:   pgx.Identifier{tables.Keys}.Sanitize(),
		runs:   pgx.Identifier{tables.Runs}.Sanitize(),
	}
}

// EnsureSchema creates the runs and keys tables when they do not exist.
func (s *KeyStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id SERIAL PRIMARY KEY,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, s.runs),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id INTEGER NOT NULL,
	address_id TEXT NOT NULL,
	address TEXT NOT NULL,
	address_key TEXT NOT NULL
)`, s.keys),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (run_id, address_key)`,
			pgx.Identifier{s.tables.Keys + "_run_key_idx"}.Sanitize(), s.keys),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return eris.Wrap(err, "db: ensure schema")
		}
	}
	return nil
}

// CreateRun registers a new run and returns its id.
func (s *KeyStore) CreateRun(ctx context.Context, description string) (int, error) {
	var runID int
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf("INSERT INTO %s (description) VALUES ($1) RETURNING run_id", s.runs),
		description,
	).Scan(&runID)
	if err != nil {
		return 0, eris.Wrap(err, "db: create run")
	}
	return runID, nil
}

// ClearRun deletes every key stored for runID.
func (s *KeyStore) ClearRun(ctx context.Context, runID int) error {
	if _, err := s.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", s.keys), runID); err != nil {
		return eris.Wrapf(err, "db: clear run %d", runID)
	}
	return nil
}

// Addresses streams the source table. It implements keys.Source.
func (s *KeyStore) Addresses(ctx context.Context, out chan<- keys.Address) error {
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT address_id::text, address FROM %s", s.source))
	if err != nil {
		return eris.Wrap(err, "db: query addresses")
	}
	defer rows.Close()

	for rows.Next() {
		var addr keys.Address
		if err := rows.Scan(&addr.ID, &addr.Raw); err != nil {
			return eris.Wrap(err, "db: scan address")
		}
		select {
		case out <- addr:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "db: read addresses")
	}
	return nil
}

// Writer returns a keys.Sink that copies records into the keys table under runID.
func (s *KeyStore) Writer(runID int) keys.Sink {
	return &keyWriter{store: s, runID: runID}
}

// Duplicates returns the keys of runID shared by more than one address id,
// ordered by key.
func (s *KeyStore) Duplicates(ctx context.Context, runID int) ([]DuplicateGroup, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT address_key, array_agg(DISTINCT address_id ORDER BY address_id)
FROM %s
WHERE run_id = $1
GROUP BY address_key
HAVING COUNT(DISTINCT address_id) > 1
ORDER BY address_key`, s.keys), runID)
	if err != nil {
		return nil, eris.Wrapf(err, "db: query duplicates for run %d", runID)
	}
	defer rows.Close()

	var groups []DuplicateGroup
	for rows.Next() {
		var g DuplicateGroup
		if err := rows.Scan(&g.Key, &g.AddressIDs); err != nil {
			return nil, eris.Wrap(err, "db: scan duplicate group")
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "db: read duplicates")
	}
	return groups, nil
}

type keyWriter struct {
	store *KeyStore
	runID int
}

func (w *keyWriter) WriteKeys(ctx context.Context, records []keys.Record) error {
	if len(records) == 0 {
		return nil
	}

	n, err := w.store.pool.CopyFrom(ctx,
		pgx.Identifier{w.store.tables.Keys},
		keyColumns,
		&recordSource{runID: w.runID, records: records, idx: -1},
	)
	if err != nil {
		return eris.Wrapf(err, "db: COPY INTO %s", w.store.keys)
	}
	if n != int64(len(records)) {
		return eris.Errorf("db: COPY INTO %s wrote %d of %d rows", w.store.keys, n, len(records))
	}
	return nil
}

// recordSource implements the pgx.CopyFromSource interface
type recordSource struct {
	runID   int
	records []keys.Record
	idx     int
}

func (r *recordSource) Next() bool {
	r.idx++
	return r.idx < len(r.records)
}

func (r *recordSource) Values() ([]any, error) {
	rec := r.records[r.idx]
	return []any{r.runID, rec.ID, rec.Raw, rec.Key}, nil
}

func (r *recordSource) Err() error {
	return nil
}
