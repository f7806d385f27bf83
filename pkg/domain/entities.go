// Package domain defines the persistent entities, value types, error
// taxonomy, and rule evaluation primitives used by pharmtrace.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityUser identifies a supply-chain participant record.
	EntityUser EntityType = "user"
	// EntityPharmaceutical identifies a registered pharmaceutical record.
	EntityPharmaceutical EntityType = "pharmaceutical"
	// EntitySupplyChainEvent identifies an append-only ledger event record.
	EntitySupplyChainEvent EntityType = "supply_chain_event"
	// EntityReward identifies a point-earning record.
	EntityReward EntityType = "reward"
	// EntityQualityCheck identifies a quality inspection record.
	EntityQualityCheck EntityType = "quality_check"
	// EntityTemperatureLog identifies a temperature reading record.
	EntityTemperatureLog EntityType = "temperature_log"
	// EntityRecallAlert identifies a recall alert record.
	EntityRecallAlert EntityType = "recall_alert"
)

// Role classifies a participant's position in the supply chain.
type Role string

// Canonical participant roles. Only admins may register pharmaceuticals.
const (
	RoleAdmin        Role = "admin"
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RoleViewer       Role = "viewer"
)

// KnownRole reports whether role is one of the canonical variants.
func KnownRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManufacturer, RoleDistributor, RoleViewer:
		return true
	}
	return false
}

// EventType classifies supply-chain ledger events.
type EventType string

// Canonical event types. TemperatureExcursion and RecallInitiated entries are
// normally derived by the engine rather than requested by callers.
const (
	EventProduction           EventType = "production"
	EventPackaging            EventType = "packaging"
	EventStorage              EventType = "storage"
	EventTransportation       EventType = "transportation"
	EventDelivery             EventType = "delivery"
	EventQualityControl       EventType = "quality_control"
	EventTemperatureExcursion EventType = "temperature_excursion"
	EventRecallInitiated      EventType = "recall_initiated"
)

// KnownEventType reports whether t is one of the canonical variants.
func KnownEventType(t EventType) bool {
	switch t {
	case EventProduction, EventPackaging, EventStorage, EventTransportation,
		EventDelivery, EventQualityControl, EventTemperatureExcursion, EventRecallInitiated:
		return true
	}
	return false
}

// RewardType classifies the activity a point grant rewards.
type RewardType string

// Canonical reward types.
const (
	RewardSupplyChainEvent RewardType = "supply_chain_event"
	RewardQualityReport    RewardType = "quality_report"
	RewardRecallManagement RewardType = "recall_management"
	RewardOther            RewardType = "other"
)

// KnownRewardType reports whether t is one of the canonical variants.
func KnownRewardType(t RewardType) bool {
	switch t {
	case RewardSupplyChainEvent, RewardQualityReport, RewardRecallManagement, RewardOther:
		return true
	}
	return false
}

// RecallSeverity grades the urgency of a recall alert.
type RecallSeverity string

// Canonical recall severities.
const (
	SeverityLow      RecallSeverity = "low"
	SeverityMedium   RecallSeverity = "medium"
	SeverityHigh     RecallSeverity = "high"
	SeverityCritical RecallSeverity = "critical"
)

// KnownRecallSeverity reports whether s is one of the canonical variants.
func KnownRecallSeverity(s RecallSeverity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// RecallStatus tracks the lifecycle of a recall alert.
type RecallStatus string

// Recall alerts start Active; closing is the only legal transition.
const (
	RecallActive RecallStatus = "active"
	RecallClosed RecallStatus = "closed"
)

// Base contains common fields for all domain records. Seq is a store-assigned
// monotonic sequence number preserving insertion order across collections.
type Base struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents a supply-chain participant with an accumulated point balance.
type User struct {
	Base
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Points   int    `json:"points"`
}

// Pharmaceutical represents a registered drug batch. Immutable once created.
type Pharmaceutical struct {
	Base
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	BatchNumber  string    `json:"batch_number"`
	ExpiryDate   time.Time `json:"expiry_date"`
}

// SupplyChainEvent is an append-only ledger entry. CreatedAt is the
// server-assigned event timestamp.
type SupplyChainEvent struct {
	Base
	PharmaceuticalID string    `json:"pharmaceutical_id"`
	Type             EventType `json:"type"`
	Location         string    `json:"location"`
	ParticipantID    string    `json:"participant_id"`
}

// Reward is a point grant paired 1:1 with a balance increment on the
// receiving participant within the same transaction.
type Reward struct {
	Base
	ParticipantID string     `json:"participant_id"`
	Points        int        `json:"points"`
	Type          RewardType `json:"type"`
}

// QualityCheck records a quality inspection submission. Immutable once created.
type QualityCheck struct {
	Base
	PharmaceuticalID string  `json:"pharmaceutical_id"`
	InspectorID      string  `json:"inspector_id"`
	TemperatureC     float64 `json:"temperature_c"`
	Humidity         float64 `json:"humidity"`
	Passed           bool    `json:"passed"`
	Notes            string  `json:"notes,omitempty"`
}

// TemperatureLog records a single temperature reading. IsExcursion is a pure
// function of the reading against the acceptable band at creation time.
type TemperatureLog struct {
	Base
	PharmaceuticalID string  `json:"pharmaceutical_id"`
	TemperatureC     float64 `json:"temperature_c"`
	Location         string  `json:"location"`
	RecordedBy       string  `json:"recorded_by"`
	IsExcursion      bool    `json:"is_excursion"`
}

// RecallAlert halts distribution of specific batches of a pharmaceutical.
type RecallAlert struct {
	Base
	PharmaceuticalID string         `json:"pharmaceutical_id"`
	Severity         RecallSeverity `json:"severity"`
	Reason           string         `json:"reason"`
	InitiatedBy      string         `json:"initiated_by"`
	InitiatedAt      time.Time      `json:"initiated_at"`
	AffectedBatches  []string       `json:"affected_batches"`
	Status           RecallStatus   `json:"status"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions captured in the audit trail. The ledger domain never
// deletes, so only create and update exist.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
