// Package memory provides the in-memory implementation of the core
// persistence store. It is the reference implementation of the single-writer
// transaction semantics the ledger depends on, and the substrate the durable
// drivers snapshot from.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"pharmtrace/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// User aliases domain.User for in-memory persistence operations.
	User = domain.User
	// Pharmaceutical aliases domain.Pharmaceutical.
	Pharmaceutical = domain.Pharmaceutical
	// SupplyChainEvent aliases domain.SupplyChainEvent.
	SupplyChainEvent = domain.SupplyChainEvent
	// Reward aliases domain.Reward.
	Reward = domain.Reward
	// QualityCheck aliases domain.QualityCheck.
	QualityCheck = domain.QualityCheck
	// TemperatureLog aliases domain.TemperatureLog.
	TemperatureLog = domain.TemperatureLog
	// RecallAlert aliases domain.RecallAlert.
	RecallAlert = domain.RecallAlert
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	users           map[string]User
	pharmaceuticals map[string]Pharmaceutical
	events          map[string]SupplyChainEvent
	rewards         map[string]Reward
	checks          map[string]QualityCheck
	logs            map[string]TemperatureLog
	recalls         map[string]RecallAlert
	nextSeq         uint64
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Users           map[string]User             `json:"users"`
	Pharmaceuticals map[string]Pharmaceutical   `json:"pharmaceuticals"`
	Events          map[string]SupplyChainEvent `json:"events"`
	Rewards         map[string]Reward           `json:"rewards"`
	Checks          map[string]QualityCheck     `json:"quality_checks"`
	Logs            map[string]TemperatureLog   `json:"temperature_logs"`
	Recalls         map[string]RecallAlert      `json:"recall_alerts"`
	NextSeq         uint64                      `json:"next_seq"`
}

func newMemoryState() memoryState {
	return memoryState{
		users:           make(map[string]User),
		pharmaceuticals: make(map[string]Pharmaceutical),
		events:          make(map[string]SupplyChainEvent),
		rewards:         make(map[string]Reward),
		checks:          make(map[string]QualityCheck),
		logs:            make(map[string]TemperatureLog),
		recalls:         make(map[string]RecallAlert),
		nextSeq:         1,
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	cloned.nextSeq = s.nextSeq
	for k, v := range s.users {
		cloned.users[k] = cloneUser(v)
	}
	for k, v := range s.pharmaceuticals {
		cloned.pharmaceuticals[k] = clonePharmaceutical(v)
	}
	for k, v := range s.events {
		cloned.events[k] = cloneEvent(v)
	}
	for k, v := range s.rewards {
		cloned.rewards[k] = cloneReward(v)
	}
	for k, v := range s.checks {
		cloned.checks[k] = cloneCheck(v)
	}
	for k, v := range s.logs {
		cloned.logs[k] = cloneLog(v)
	}
	for k, v := range s.recalls {
		cloned.recalls[k] = cloneRecall(v)
	}
	return cloned
}

func cloneUser(u User) User                               { return u }
func clonePharmaceutical(p Pharmaceutical) Pharmaceutical { return p }
func cloneEvent(e SupplyChainEvent) SupplyChainEvent      { return e }
func cloneReward(r Reward) Reward                         { return r }
func cloneCheck(c QualityCheck) QualityCheck              { return c }
func cloneLog(l TemperatureLog) TemperatureLog            { return l }
func cloneRecall(r RecallAlert) RecallAlert {
	cp := r
	cp.AffectedBatches = append([]string(nil), r.AffectedBatches...)
	return cp
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Users:           make(map[string]User, len(state.users)),
		Pharmaceuticals: make(map[string]Pharmaceutical, len(state.pharmaceuticals)),
		Events:          make(map[string]SupplyChainEvent, len(state.events)),
		Rewards:         make(map[string]Reward, len(state.rewards)),
		Checks:          make(map[string]QualityCheck, len(state.checks)),
		Logs:            make(map[string]TemperatureLog, len(state.logs)),
		Recalls:         make(map[string]RecallAlert, len(state.recalls)),
		NextSeq:         state.nextSeq,
	}
	for k, v := range state.users {
		s.Users[k] = cloneUser(v)
	}
	for k, v := range state.pharmaceuticals {
		s.Pharmaceuticals[k] = clonePharmaceutical(v)
	}
	for k, v := range state.events {
		s.Events[k] = cloneEvent(v)
	}
	for k, v := range state.rewards {
		s.Rewards[k] = cloneReward(v)
	}
	for k, v := range state.checks {
		s.Checks[k] = cloneCheck(v)
	}
	for k, v := range state.logs {
		s.Logs[k] = cloneLog(v)
	}
	for k, v := range state.recalls {
		s.Recalls[k] = cloneRecall(v)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	state.nextSeq = s.NextSeq
	for k, v := range s.Users {
		state.users[k] = cloneUser(v)
	}
	for k, v := range s.Pharmaceuticals {
		state.pharmaceuticals[k] = clonePharmaceutical(v)
	}
	for k, v := range s.Events {
		state.events[k] = cloneEvent(v)
	}
	for k, v := range s.Rewards {
		state.rewards[k] = cloneReward(v)
	}
	for k, v := range s.Checks {
		state.checks[k] = cloneCheck(v)
	}
	for k, v := range s.Logs {
		state.logs[k] = cloneLog(v)
	}
	for k, v := range s.Recalls {
		state.recalls[k] = cloneRecall(v)
	}
	return state
}

// migrateSnapshot normalizes snapshots written by earlier revisions: nil
// buckets become empty maps, recall alerts without a status default to
// active, and the sequence counter is rebuilt when missing.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Users == nil {
		snapshot.Users = map[string]User{}
	}
	if snapshot.Pharmaceuticals == nil {
		snapshot.Pharmaceuticals = map[string]Pharmaceutical{}
	}
	if snapshot.Events == nil {
		snapshot.Events = map[string]SupplyChainEvent{}
	}
	if snapshot.Rewards == nil {
		snapshot.Rewards = map[string]Reward{}
	}
	if snapshot.Checks == nil {
		snapshot.Checks = map[string]QualityCheck{}
	}
	if snapshot.Logs == nil {
		snapshot.Logs = map[string]TemperatureLog{}
	}
	if snapshot.Recalls == nil {
		snapshot.Recalls = map[string]RecallAlert{}
	}

	for id, alert := range snapshot.Recalls {
		if alert.Status == "" {
			alert.Status = domain.RecallActive
		}
		if alert.AffectedBatches == nil {
			alert.AffectedBatches = []string{}
		}
		snapshot.Recalls[id] = alert
	}

	var maxSeq uint64
	trackSeq := func(seq uint64) {
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	for _, v := range snapshot.Users {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Pharmaceuticals {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Events {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Rewards {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Checks {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Logs {
		trackSeq(v.Seq)
	}
	for _, v := range snapshot.Recalls {
		trackSeq(v.Seq)
	}
	if snapshot.NextSeq <= maxSeq {
		snapshot.NextSeq = maxSeq + 1
	}
	return snapshot
}

// Store provides an in-memory transactional store for the ledger domain.
// A single RWMutex serializes all mutating transactions, which is what makes
// the multi-collection write sequences of the engine indivisible from every
// observer's perspective.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the transaction timestamp source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.nowFn = now
	}
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState returns a deep snapshot of the committed state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the committed state with the supplied snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RunInTransaction executes fn within a transactional copy of the store
// state. Rules are evaluated against the post-transaction snapshot; blocking
// violations abort the commit, leaving the committed state untouched.
func (s *Store) RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, &view{state: &tx.state}, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the committed state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(&view{state: &snapshot})
}

type transaction struct {
	state   memoryState
	changes []Change
	now     time.Time
}

var _ domain.Transaction = (*transaction)(nil)

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

func (tx *transaction) stamp(base *domain.Base) {
	if base.ID == "" {
		base.ID = newID()
	}
	base.Seq = tx.state.nextSeq
	tx.state.nextSeq++
	base.CreatedAt = tx.now
	base.UpdatedAt = tx.now
}

// Snapshot exposes the in-flight transactional state read-only.
func (tx *transaction) Snapshot() TransactionView {
	return &view{state: &tx.state}
}

// CreateUser stores a new participant record within the transaction.
func (tx *transaction) CreateUser(u User) (User, error) {
	if _, exists := tx.state.users[u.ID]; u.ID != "" && exists {
		return User{}, fmt.Errorf("user %q already exists", u.ID)
	}
	tx.stamp(&u.Base)
	tx.state.users[u.ID] = cloneUser(u)
	tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionCreate, After: cloneUser(u)})
	return cloneUser(u), nil
}

// UpdateUser mutates a participant using the provided mutator function.
func (tx *transaction) UpdateUser(id string, mutator func(*User) error) (User, error) {
	current, ok := tx.state.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %q not found", id)
	}
	before := cloneUser(current)
	if err := mutator(&current); err != nil {
		return User{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.users[id] = cloneUser(current)
	tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionUpdate, Before: before, After: cloneUser(current)})
	return cloneUser(current), nil
}

// CreatePharmaceutical stores a new registration record.
func (tx *transaction) CreatePharmaceutical(p Pharmaceutical) (Pharmaceutical, error) {
	if _, exists := tx.state.pharmaceuticals[p.ID]; p.ID != "" && exists {
		return Pharmaceutical{}, fmt.Errorf("pharmaceutical %q already exists", p.ID)
	}
	tx.stamp(&p.Base)
	tx.state.pharmaceuticals[p.ID] = clonePharmaceutical(p)
	tx.recordChange(Change{Entity: domain.EntityPharmaceutical, Action: domain.ActionCreate, After: clonePharmaceutical(p)})
	return clonePharmaceutical(p), nil
}

// CreateSupplyChainEvent appends a ledger event. Events are never mutated or
// deleted after creation.
func (tx *transaction) CreateSupplyChainEvent(e SupplyChainEvent) (SupplyChainEvent, error) {
	if _, exists := tx.state.events[e.ID]; e.ID != "" && exists {
		return SupplyChainEvent{}, fmt.Errorf("supply chain event %q already exists", e.ID)
	}
	tx.stamp(&e.Base)
	tx.state.events[e.ID] = cloneEvent(e)
	tx.recordChange(Change{Entity: domain.EntitySupplyChainEvent, Action: domain.ActionCreate, After: cloneEvent(e)})
	return cloneEvent(e), nil
}

// CreateReward stores a point-earning record.
func (tx *transaction) CreateReward(r Reward) (Reward, error) {
	if _, exists := tx.state.rewards[r.ID]; r.ID != "" && exists {
		return Reward{}, fmt.Errorf("reward %q already exists", r.ID)
	}
	tx.stamp(&r.Base)
	tx.state.rewards[r.ID] = cloneReward(r)
	tx.recordChange(Change{Entity: domain.EntityReward, Action: domain.ActionCreate, After: cloneReward(r)})
	return cloneReward(r), nil
}

// CreateQualityCheck stores a quality inspection record.
func (tx *transaction) CreateQualityCheck(c QualityCheck) (QualityCheck, error) {
	if _, exists := tx.state.checks[c.ID]; c.ID != "" && exists {
		return QualityCheck{}, fmt.Errorf("quality check %q already exists", c.ID)
	}
	tx.stamp(&c.Base)
	tx.state.checks[c.ID] = cloneCheck(c)
	tx.recordChange(Change{Entity: domain.EntityQualityCheck, Action: domain.ActionCreate, After: cloneCheck(c)})
	return cloneCheck(c), nil
}

// CreateTemperatureLog stores a temperature reading record.
func (tx *transaction) CreateTemperatureLog(l TemperatureLog) (TemperatureLog, error) {
	if _, exists := tx.state.logs[l.ID]; l.ID != "" && exists {
		return TemperatureLog{}, fmt.Errorf("temperature log %q already exists", l.ID)
	}
	tx.stamp(&l.Base)
	tx.state.logs[l.ID] = cloneLog(l)
	tx.recordChange(Change{Entity: domain.EntityTemperatureLog, Action: domain.ActionCreate, After: cloneLog(l)})
	return cloneLog(l), nil
}

// CreateRecallAlert stores a recall alert record.
func (tx *transaction) CreateRecallAlert(r RecallAlert) (RecallAlert, error) {
	if _, exists := tx.state.recalls[r.ID]; r.ID != "" && exists {
		return RecallAlert{}, fmt.Errorf("recall alert %q already exists", r.ID)
	}
	tx.stamp(&r.Base)
	if r.InitiatedAt.IsZero() {
		r.InitiatedAt = tx.now
	}
	tx.state.recalls[r.ID] = cloneRecall(r)
	tx.recordChange(Change{Entity: domain.EntityRecallAlert, Action: domain.ActionCreate, After: cloneRecall(r)})
	return cloneRecall(r), nil
}

// UpdateRecallAlert mutates a recall alert using the provided mutator.
func (tx *transaction) UpdateRecallAlert(id string, mutator func(*RecallAlert) error) (RecallAlert, error) {
	current, ok := tx.state.recalls[id]
	if !ok {
		return RecallAlert{}, fmt.Errorf("recall alert %q not found", id)
	}
	before := cloneRecall(current)
	if err := mutator(&current); err != nil {
		return RecallAlert{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.recalls[id] = cloneRecall(current)
	tx.recordChange(Change{Entity: domain.EntityRecallAlert, Action: domain.ActionUpdate, Before: before, After: cloneRecall(current)})
	return cloneRecall(current), nil
}

// FindUser retrieves a participant by ID from the transaction state.
func (tx *transaction) FindUser(id string) (User, bool) {
	u, ok := tx.state.users[id]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

// FindUserByUsername retrieves a participant by exact username match.
func (tx *transaction) FindUserByUsername(username string) (User, bool) {
	return findUserByUsername(&tx.state, username)
}

// FindPharmaceutical retrieves a registration by ID from the transaction state.
func (tx *transaction) FindPharmaceutical(id string) (Pharmaceutical, bool) {
	p, ok := tx.state.pharmaceuticals[id]
	if !ok {
		return Pharmaceutical{}, false
	}
	return clonePharmaceutical(p), true
}

// FindRecallAlert retrieves a recall alert by ID from the transaction state.
func (tx *transaction) FindRecallAlert(id string) (RecallAlert, bool) {
	r, ok := tx.state.recalls[id]
	if !ok {
		return RecallAlert{}, false
	}
	return cloneRecall(r), true
}

func findUserByUsername(state *memoryState, username string) (User, bool) {
	for _, u := range state.users {
		if u.Username == username {
			return cloneUser(u), true
		}
	}
	return User{}, false
}

// view exposes a read-only snapshot of a memoryState to rules and queries.
type view struct {
	state *memoryState
}

var _ domain.TransactionView = (*view)(nil)

func (v *view) ListUsers() []User {
	out := make([]User, 0, len(v.state.users))
	for _, u := range v.state.users {
		out = append(out, cloneUser(u))
	}
	sortBySeq(out, func(u User) uint64 { return u.Seq })
	return out
}

func (v *view) ListPharmaceuticals() []Pharmaceutical {
	out := make([]Pharmaceutical, 0, len(v.state.pharmaceuticals))
	for _, p := range v.state.pharmaceuticals {
		out = append(out, clonePharmaceutical(p))
	}
	sortBySeq(out, func(p Pharmaceutical) uint64 { return p.Seq })
	return out
}

func (v *view) ListSupplyChainEvents() []SupplyChainEvent {
	out := make([]SupplyChainEvent, 0, len(v.state.events))
	for _, e := range v.state.events {
		out = append(out, cloneEvent(e))
	}
	sortBySeq(out, func(e SupplyChainEvent) uint64 { return e.Seq })
	return out
}

func (v *view) ListRewards() []Reward {
	out := make([]Reward, 0, len(v.state.rewards))
	for _, r := range v.state.rewards {
		out = append(out, cloneReward(r))
	}
	sortBySeq(out, func(r Reward) uint64 { return r.Seq })
	return out
}

func (v *view) ListQualityChecks() []QualityCheck {
	out := make([]QualityCheck, 0, len(v.state.checks))
	for _, c := range v.state.checks {
		out = append(out, cloneCheck(c))
	}
	sortBySeq(out, func(c QualityCheck) uint64 { return c.Seq })
	return out
}

func (v *view) ListTemperatureLogs() []TemperatureLog {
	out := make([]TemperatureLog, 0, len(v.state.logs))
	for _, l := range v.state.logs {
		out = append(out, cloneLog(l))
	}
	sortBySeq(out, func(l TemperatureLog) uint64 { return l.Seq })
	return out
}

func (v *view) ListRecallAlerts() []RecallAlert {
	out := make([]RecallAlert, 0, len(v.state.recalls))
	for _, r := range v.state.recalls {
		out = append(out, cloneRecall(r))
	}
	sortBySeq(out, func(r RecallAlert) uint64 { return r.Seq })
	return out
}

func (v *view) FindUser(id string) (User, bool) {
	u, ok := v.state.users[id]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

func (v *view) FindUserByUsername(username string) (User, bool) {
	return findUserByUsername(v.state, username)
}

func (v *view) FindPharmaceutical(id string) (Pharmaceutical, bool) {
	p, ok := v.state.pharmaceuticals[id]
	if !ok {
		return Pharmaceutical{}, false
	}
	return clonePharmaceutical(p), true
}

func (v *view) FindRecallAlert(id string) (RecallAlert, bool) {
	r, ok := v.state.recalls[id]
	if !ok {
		return RecallAlert{}, false
	}
	return cloneRecall(r), true
}

func (v *view) FindQualityCheck(id string) (QualityCheck, bool) {
	c, ok := v.state.checks[id]
	if !ok {
		return QualityCheck{}, false
	}
	return cloneCheck(c), true
}

func (v *view) FindTemperatureLog(id string) (TemperatureLog, bool) {
	l, ok := v.state.logs[id]
	if !ok {
		return TemperatureLog{}, false
	}
	return cloneLog(l), true
}

func (v *view) FindSupplyChainEvent(id string) (SupplyChainEvent, bool) {
	e, ok := v.state.events[id]
	if !ok {
		return SupplyChainEvent{}, false
	}
	return cloneEvent(e), true
}

func (v *view) FindReward(id string) (Reward, bool) {
	r, ok := v.state.rewards[id]
	if !ok {
		return Reward{}, false
	}
	return cloneReward(r), true
}

func sortBySeq[T any](items []T, seq func(T) uint64) {
	sort.Slice(items, func(i, j int) bool { return seq(items[i]) < seq(items[j]) })
}

// Read helpers over committed state --------------------------------------

// GetUser retrieves a participant by ID from committed state.
func (s *Store) GetUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.users[id]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

// GetPharmaceutical retrieves a registration by ID from committed state.
func (s *Store) GetPharmaceutical(id string) (Pharmaceutical, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.pharmaceuticals[id]
	if !ok {
		return Pharmaceutical{}, false
	}
	return clonePharmaceutical(p), true
}

// GetQualityCheck retrieves a quality check by ID from committed state.
func (s *Store) GetQualityCheck(id string) (QualityCheck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.checks[id]
	if !ok {
		return QualityCheck{}, false
	}
	return cloneCheck(c), true
}

// GetRecallAlert retrieves a recall alert by ID from committed state.
func (s *Store) GetRecallAlert(id string) (RecallAlert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.recalls[id]
	if !ok {
		return RecallAlert{}, false
	}
	return cloneRecall(r), true
}

// ListUsers returns all participants in insertion order.
func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListUsers()
}

// ListPharmaceuticals returns all registrations in insertion order.
func (s *Store) ListPharmaceuticals() []Pharmaceutical {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListPharmaceuticals()
}

// ListSupplyChainEvents returns the full ledger in insertion order.
func (s *Store) ListSupplyChainEvents() []SupplyChainEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListSupplyChainEvents()
}

// ListRewards returns all point grants in insertion order.
func (s *Store) ListRewards() []Reward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListRewards()
}

// ListQualityChecks returns all quality checks in insertion order.
func (s *Store) ListQualityChecks() []QualityCheck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListQualityChecks()
}

// ListTemperatureLogs returns all temperature readings in insertion order.
func (s *Store) ListTemperatureLogs() []TemperatureLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListTemperatureLogs()
}

// ListRecallAlerts returns all recall alerts in insertion order.
func (s *Store) ListRecallAlerts() []RecallAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{state: &s.state}).ListRecallAlerts()
}
