package core

import "pharmtrace/pkg/domain"

// NewDefaultRulesEngine returns the engine loaded with the standard policy
// set evaluated at every commit.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(rewardBalanceParityRule{})
	engine.Register(pointsMonotonicRule{})
	engine.Register(newRegistrationExpiryRule())
	engine.Register(duplicateActiveRecallRule{})
	return engine
}
