package core_test

import (
	"path/filepath"
	"testing"

	"pharmtrace/internal/core"
	"pharmtrace/internal/infra/persistence/memory"
	"pharmtrace/internal/infra/persistence/sqlite"
)

func TestOpenPersistentStoreMemory(t *testing.T) {
	t.Setenv("PHARMTRACE_STORAGE_DRIVER", "memory")
	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestOpenPersistentStoreSQLiteDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	t.Setenv("PHARMTRACE_STORAGE_DRIVER", "")
	t.Setenv("PHARMTRACE_SQLITE_PATH", dbPath)

	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	defer func() { _ = s.Close() }()
	if s.Path() != dbPath {
		t.Fatalf("unexpected path %s", s.Path())
	}
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	t.Setenv("PHARMTRACE_STORAGE_DRIVER", "etcd")
	if _, err := core.OpenPersistentStore(core.NewDefaultRulesEngine()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
