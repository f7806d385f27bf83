package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. The ledger domain is append-only: the
// only mutable records are user point balances and recall alert status, so no
// delete operations exist.
type Transaction interface {
	Snapshot() TransactionView
	CreateUser(User) (User, error)
	UpdateUser(id string, mutator func(*User) error) (User, error)
	CreatePharmaceutical(Pharmaceutical) (Pharmaceutical, error)
	CreateSupplyChainEvent(SupplyChainEvent) (SupplyChainEvent, error)
	CreateReward(Reward) (Reward, error)
	CreateQualityCheck(QualityCheck) (QualityCheck, error)
	CreateTemperatureLog(TemperatureLog) (TemperatureLog, error)
	CreateRecallAlert(RecallAlert) (RecallAlert, error)
	UpdateRecallAlert(id string, mutator func(*RecallAlert) error) (RecallAlert, error)
	FindUser(id string) (User, bool)
	FindUserByUsername(username string) (User, bool)
	FindPharmaceutical(id string) (Pharmaceutical, bool)
	FindRecallAlert(id string) (RecallAlert, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// query operations. List results are ordered by insertion sequence.
type TransactionView interface {
	RuleView
	FindUserByUsername(username string) (User, bool)
	FindRecallAlert(id string) (RecallAlert, bool)
	FindQualityCheck(id string) (QualityCheck, bool)
	FindTemperatureLog(id string) (TemperatureLog, bool)
	FindSupplyChainEvent(id string) (SupplyChainEvent, bool)
	FindReward(id string) (Reward, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetUser(id string) (User, bool)
	GetPharmaceutical(id string) (Pharmaceutical, bool)
	GetQualityCheck(id string) (QualityCheck, bool)
	GetRecallAlert(id string) (RecallAlert, bool)
	ListUsers() []User
	ListPharmaceuticals() []Pharmaceutical
	ListSupplyChainEvents() []SupplyChainEvent
	ListRewards() []Reward
	ListQualityChecks() []QualityCheck
	ListTemperatureLogs() []TemperatureLog
	ListRecallAlerts() []RecallAlert
}
