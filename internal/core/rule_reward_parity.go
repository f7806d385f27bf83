package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// rewardBalanceParityRule blocks commits where the points written to the
// reward ledger and the participant balance deltas in the same transaction
// do not match, in either direction.
type rewardBalanceParityRule struct{}

func (rewardBalanceParityRule) Name() string { return "reward_balance_parity" }

func (rewardBalanceParityRule) Evaluate(_ context.Context, _ RuleView, changes []Change) (Result, error) {
	rewarded := map[string]int{}
	credited := map[string]int{}
	for _, change := range changes {
		switch change.Entity {
		case EntityReward:
			if change.Action != ActionCreate {
				continue
			}
			if reward, ok := change.After.(Reward); ok {
				rewarded[reward.ParticipantID] += reward.Points
			}
		case EntityUser:
			if change.Action != ActionUpdate {
				continue
			}
			before, okBefore := change.Before.(User)
			after, okAfter := change.After.(User)
			if okBefore && okAfter {
				credited[after.ID] += after.Points - before.Points
			}
		}
	}
	var result Result
	for id, points := range rewarded {
		if credited[id] != points {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "reward_balance_parity",
				Severity: SeverityBlock,
				Message:  fmt.Sprintf("rewards worth %d points but balance changed by %d", points, credited[id]),
				Entity:   EntityUser,
				EntityID: id,
			})
		}
	}
	for id, delta := range credited {
		if _, matched := rewarded[id]; matched || delta == 0 {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "reward_balance_parity",
			Severity: SeverityBlock,
			Message:  fmt.Sprintf("balance changed by %d points with no reward record", delta),
			Entity:   EntityUser,
			EntityID: id,
		})
	}
	return result, nil
}
