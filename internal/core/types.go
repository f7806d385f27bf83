package core

import "pharmtrace/pkg/domain"

type (
	EntityType         = domain.EntityType
	Role               = domain.Role
	EventType          = domain.EventType
	RewardType         = domain.RewardType
	RecallSeverity     = domain.RecallSeverity
	RecallStatus       = domain.RecallStatus
	Severity           = domain.Severity
	Base               = domain.Base
	User               = domain.User
	Pharmaceutical     = domain.Pharmaceutical
	SupplyChainEvent   = domain.SupplyChainEvent
	Reward             = domain.Reward
	QualityCheck       = domain.QualityCheck
	TemperatureLog     = domain.TemperatureLog
	RecallAlert        = domain.RecallAlert
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RuleView           = domain.RuleView
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

const (
	EntityUser             = domain.EntityUser
	EntityPharmaceutical   = domain.EntityPharmaceutical
	EntitySupplyChainEvent = domain.EntitySupplyChainEvent
	EntityReward           = domain.EntityReward
	EntityQualityCheck     = domain.EntityQualityCheck
	EntityTemperatureLog   = domain.EntityTemperatureLog
	EntityRecallAlert      = domain.EntityRecallAlert
)

const (
	RoleAdmin        = domain.RoleAdmin
	RoleManufacturer = domain.RoleManufacturer
	RoleDistributor  = domain.RoleDistributor
	RoleViewer       = domain.RoleViewer
)

const (
	EventProduction           = domain.EventProduction
	EventPackaging            = domain.EventPackaging
	EventStorage              = domain.EventStorage
	EventTransportation       = domain.EventTransportation
	EventDelivery             = domain.EventDelivery
	EventQualityControl       = domain.EventQualityControl
	EventTemperatureExcursion = domain.EventTemperatureExcursion
	EventRecallInitiated      = domain.EventRecallInitiated
)

const (
	RewardSupplyChainEvent = domain.RewardSupplyChainEvent
	RewardQualityReport    = domain.RewardQualityReport
	RewardRecallManagement = domain.RewardRecallManagement
	RewardOther            = domain.RewardOther
)

const (
	SeverityLow      = domain.SeverityLow
	SeverityMedium   = domain.SeverityMedium
	SeverityHigh     = domain.SeverityHigh
	SeverityCritical = domain.SeverityCritical
)

const (
	RecallActive = domain.RecallActive
	RecallClosed = domain.RecallClosed
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
)
