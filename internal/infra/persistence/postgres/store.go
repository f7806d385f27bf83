// Package postgres provides a Postgres-backed persistent store that mirrors
// the in-memory semantics, snapshotting state into a single table after every
// successful transaction.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"pharmtrace/internal/infra/persistence/memory"
	"pharmtrace/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/pharmtrace?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists state to Postgres while reusing the in-memory implementation
// for transactions.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the snapshot table exists, and hydrates the
// in-memory store from any existing snapshot.
func NewStore(dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS ledger_state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	snapshot, err := loadSnapshot(ctx, db)
	if err != nil {
		return nil, err
	}
	mem := memory.NewStore(engine)
	mem.ImportState(snapshot)
	return &Store{Store: mem, db: db}, nil
}

func loadSnapshot(ctx context.Context, db *sql.DB) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	rows, err := db.QueryContext(ctx, `SELECT bucket, payload FROM ledger_state`)
	if err != nil {
		return snapshot, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return snapshot, fmt.Errorf("scan: %w", err)
		}
		var decodeErr error
		switch bucket {
		case "users":
			decodeErr = json.Unmarshal(payload, &snapshot.Users)
		case "pharmaceuticals":
			decodeErr = json.Unmarshal(payload, &snapshot.Pharmaceuticals)
		case "events":
			decodeErr = json.Unmarshal(payload, &snapshot.Events)
		case "rewards":
			decodeErr = json.Unmarshal(payload, &snapshot.Rewards)
		case "quality_checks":
			decodeErr = json.Unmarshal(payload, &snapshot.Checks)
		case "temperature_logs":
			decodeErr = json.Unmarshal(payload, &snapshot.Logs)
		case "recall_alerts":
			decodeErr = json.Unmarshal(payload, &snapshot.Recalls)
		case "sequence":
			decodeErr = json.Unmarshal(payload, &snapshot.NextSeq)
		}
		if decodeErr != nil {
			return snapshot, fmt.Errorf("decode %s: %w", bucket, decodeErr)
		}
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("iterate state: %w", err)
	}
	return snapshot, nil
}

func (s *Store) persist(ctx context.Context) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	payloads := []struct {
		bucket string
		value  any
	}{
		{"users", snapshot.Users},
		{"pharmaceuticals", snapshot.Pharmaceuticals},
		{"events", snapshot.Events},
		{"rewards", snapshot.Rewards},
		{"quality_checks", snapshot.Checks},
		{"temperature_logs", snapshot.Logs},
		{"recall_alerts", snapshot.Recalls},
		{"sequence", snapshot.NextSeq},
	}
	for _, p := range payloads {
		data, err := json.Marshal(p.value)
		if err != nil {
			retErr = fmt.Errorf("marshal %s: %w", p.bucket, err)
			return retErr
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO ledger_state(bucket,payload) VALUES($1,$2)
			ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, p.bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", p.bucket, err)
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// RunInTransaction applies fn within a transaction, then snapshots to
// Postgres if the commit succeeded.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(ctx); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
