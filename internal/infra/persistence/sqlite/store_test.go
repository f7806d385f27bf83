package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pharmtrace/internal/infra/persistence/sqlite"
	"pharmtrace/pkg/domain"
)

func TestStoreSnapshotSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")
	store, err := sqlite.NewStore(dbPath, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	ctx := context.Background()

	var userID string
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		user, err := tx.CreateUser(domain.User{Username: "alice", Role: domain.RoleAdmin})
		if err != nil {
			return err
		}
		userID = user.ID
		_, err = tx.CreatePharmaceutical(domain.Pharmaceutical{OwnerID: user.ID, Name: "Amoxicillin", Manufacturer: "Acme", BatchNumber: "B-1"})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlite.NewStore(dbPath, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	user, ok := reopened.GetUser(userID)
	if !ok || user.Username != "alice" {
		t.Fatalf("user not restored: %+v", user)
	}
	drugs := reopened.ListPharmaceuticals()
	if len(drugs) != 1 || drugs[0].BatchNumber != "B-1" {
		t.Fatalf("pharmaceuticals not restored: %+v", drugs)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file missing: %v", err)
	}
	if reopened.Path() != dbPath {
		t.Fatalf("unexpected path %s", reopened.Path())
	}
}

func TestStoreDefaultsPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	store, err := sqlite.NewStore("", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	if store.Path() != "pharmtrace.db" {
		t.Fatalf("unexpected default path %s", store.Path())
	}
}

func TestBlockedTransactionIsNotPersisted(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")

	engine := domain.NewRulesEngine()
	engine.Register(rejectRewards{})
	store, err := sqlite.NewStore(dbPath, engine)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateReward(domain.Reward{ParticipantID: "u-1", Points: 10, Type: domain.RewardOther})
		return err
	}); err == nil {
		t.Fatalf("expected blocked transaction")
	}

	reopened, err := sqlite.NewStore(dbPath, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if rewards := reopened.ListRewards(); len(rewards) != 0 {
		t.Fatalf("blocked write leaked to disk: %+v", rewards)
	}
}

type rejectRewards struct{}

func (rejectRewards) Name() string { return "reject_rewards" }

func (rejectRewards) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	var result domain.Result
	for _, c := range changes {
		if c.Entity == domain.EntityReward {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "reject_rewards",
				Severity: domain.SeverityBlock,
				Message:  "rewards disabled",
			})
		}
	}
	return result, nil
}
