// Package sqlite provides a SQLite-backed persistent store. It reuses the
// in-memory store for transaction semantics and snapshots the full state to a
// single table as JSON blobs after every successful transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pharmtrace/internal/infra/persistence/memory"
	"pharmtrace/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// Store persists the in-memory state to SQLite as per-bucket JSON blobs.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore constructs a snapshotting SQLite-backed persistent store.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "pharmtrace.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	mem := memory.NewStore(engine)
	s := &Store{Store: mem, db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

const (
	bucketUsers           = "users"
	bucketPharmaceuticals = "pharmaceuticals"
	bucketEvents          = "events"
	bucketRewards         = "rewards"
	bucketChecks          = "quality_checks"
	bucketLogs            = "temperature_logs"
	bucketRecalls         = "recall_alerts"
	bucketSequence        = "sequence"
)

var buckets = []string{
	bucketUsers, bucketPharmaceuticals, bucketEvents, bucketRewards,
	bucketChecks, bucketLogs, bucketRecalls, bucketSequence,
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		snapshot memory.Snapshot
		loaded   bool
	)
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		loaded = true
		var decodeErr error
		switch bucket {
		case bucketUsers:
			decodeErr = json.Unmarshal(payload, &snapshot.Users)
		case bucketPharmaceuticals:
			decodeErr = json.Unmarshal(payload, &snapshot.Pharmaceuticals)
		case bucketEvents:
			decodeErr = json.Unmarshal(payload, &snapshot.Events)
		case bucketRewards:
			decodeErr = json.Unmarshal(payload, &snapshot.Rewards)
		case bucketChecks:
			decodeErr = json.Unmarshal(payload, &snapshot.Checks)
		case bucketLogs:
			decodeErr = json.Unmarshal(payload, &snapshot.Logs)
		case bucketRecalls:
			decodeErr = json.Unmarshal(payload, &snapshot.Recalls)
		case bucketSequence:
			decodeErr = json.Unmarshal(payload, &snapshot.NextSeq)
		}
		if decodeErr != nil {
			return fmt.Errorf("decode %s: %w", bucket, decodeErr)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if !loaded {
		return nil
	}
	s.ImportState(snapshot)
	return nil
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range buckets {
		var data []byte
		switch bucket {
		case bucketUsers:
			data, err = json.Marshal(snapshot.Users)
		case bucketPharmaceuticals:
			data, err = json.Marshal(snapshot.Pharmaceuticals)
		case bucketEvents:
			data, err = json.Marshal(snapshot.Events)
		case bucketRewards:
			data, err = json.Marshal(snapshot.Rewards)
		case bucketChecks:
			data, err = json.Marshal(snapshot.Checks)
		case bucketLogs:
			data, err = json.Marshal(snapshot.Logs)
		case bucketRecalls:
			data, err = json.Marshal(snapshot.Recalls)
		case bucketSequence:
			data, err = json.Marshal(snapshot.NextSeq)
		}
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err = tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// RunInTransaction applies fn within a transaction, then snapshots state to
// SQLite if the commit succeeded.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
