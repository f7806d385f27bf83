package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// pointsMonotonicRule blocks any commit that lowers a participant balance.
// Points only ever accumulate.
type pointsMonotonicRule struct{}

func (pointsMonotonicRule) Name() string { return "points_monotonic" }

func (pointsMonotonicRule) Evaluate(_ context.Context, _ RuleView, changes []Change) (Result, error) {
	var result Result
	for _, change := range changes {
		if change.Entity != EntityUser {
			continue
		}
		switch change.Action {
		case ActionCreate:
			if user, ok := change.After.(User); ok && user.Points < 0 {
				result.Violations = append(result.Violations, domain.Violation{
					Rule:     "points_monotonic",
					Severity: SeverityBlock,
					Message:  fmt.Sprintf("new participant with negative balance %d", user.Points),
					Entity:   EntityUser,
					EntityID: user.ID,
				})
			}
		case ActionUpdate:
			before, okBefore := change.Before.(User)
			after, okAfter := change.After.(User)
			if okBefore && okAfter && after.Points < before.Points {
				result.Violations = append(result.Violations, domain.Violation{
					Rule:     "points_monotonic",
					Severity: SeverityBlock,
					Message:  fmt.Sprintf("balance lowered from %d to %d", before.Points, after.Points),
					Entity:   EntityUser,
					EntityID: after.ID,
				})
			}
		}
	}
	return result, nil
}
