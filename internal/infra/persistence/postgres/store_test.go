package postgres_test

import (
	"database/sql"
	"fmt"
	"testing"

	"pharmtrace/internal/infra/persistence/postgres"
	"pharmtrace/pkg/domain"
)

func TestNewStoreOpenFailure(t *testing.T) {
	restore := postgres.OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Fatalf("unexpected driver %s", driver)
		}
		return nil, fmt.Errorf("refused")
	})
	defer restore()

	if _, err := postgres.NewStore("postgres://example/ledger", domain.NewRulesEngine()); err == nil {
		t.Fatalf("expected open failure")
	}
}

func TestNewStorePingFailure(t *testing.T) {
	// An unreachable DSN passes sql.Open but fails the readiness ping.
	restore := postgres.OverrideSQLOpen(sql.Open)
	defer restore()

	if _, err := postgres.NewStore("postgres://127.0.0.1:1/ledger?connect_timeout=1", domain.NewRulesEngine()); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestDefaultDSNIsApplied(t *testing.T) {
	var captured string
	restore := postgres.OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		captured = dsn
		return nil, fmt.Errorf("stop before dialing")
	})
	defer restore()

	_, err := postgres.NewStore("", domain.NewRulesEngine())
	if err == nil {
		t.Fatalf("expected error from stubbed open")
	}
	if captured != "postgres://localhost/pharmtrace?sslmode=disable" {
		t.Fatalf("unexpected dsn %s", captured)
	}
}
