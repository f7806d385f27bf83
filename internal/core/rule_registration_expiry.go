package core

import (
	"context"
	"fmt"
	"time"

	"pharmtrace/pkg/domain"
)

// registrationExpiryRule warns when a batch is registered with an expiry
// date already in the past. The registration still commits; downstream
// consumers decide what to do with an expired batch.
type registrationExpiryRule struct {
	nowFn func() time.Time
}

func newRegistrationExpiryRule() registrationExpiryRule {
	return registrationExpiryRule{nowFn: time.Now}
}

func (registrationExpiryRule) Name() string { return "registered_expired" }

func (r registrationExpiryRule) Evaluate(_ context.Context, _ RuleView, changes []Change) (Result, error) {
	now := r.nowFn()
	var result Result
	for _, change := range changes {
		if change.Entity != EntityPharmaceutical || change.Action != ActionCreate {
			continue
		}
		record, ok := change.After.(Pharmaceutical)
		if !ok || record.ExpiryDate.IsZero() || !record.ExpiryDate.Before(now) {
			continue
		}
		result.Violations = append(result.Violations, domain.Violation{
			Rule:     "registered_expired",
			Severity: SeverityWarn,
			Message:  fmt.Sprintf("batch %s registered after expiry %s", record.BatchNumber, record.ExpiryDate.Format(time.RFC3339)),
			Entity:   EntityPharmaceutical,
			EntityID: record.ID,
		})
	}
	return result, nil
}
