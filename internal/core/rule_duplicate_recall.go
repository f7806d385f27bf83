package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// duplicateActiveRecallRule warns when a recall is opened for a batch that
// already has another active recall. Coordinators may legitimately stack
// recalls, so this does not block.
type duplicateActiveRecallRule struct{}

func (duplicateActiveRecallRule) Name() string { return "duplicate_active_recall" }

func (duplicateActiveRecallRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	var result Result
	for _, change := range changes {
		if change.Entity != EntityRecallAlert || change.Action != ActionCreate {
			continue
		}
		created, ok := change.After.(RecallAlert)
		if !ok {
			continue
		}
		for _, existing := range view.ListRecallAlerts() {
			if existing.ID == created.ID || existing.PharmaceuticalID != created.PharmaceuticalID {
				continue
			}
			if existing.Status != RecallActive {
				continue
			}
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "duplicate_active_recall",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("recall %s is already active for this batch", existing.ID),
				Entity:   EntityRecallAlert,
				EntityID: created.ID,
			})
			break
		}
	}
	return result, nil
}
