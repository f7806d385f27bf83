package core

import (
	"context"

	"pharmtrace/pkg/domain"
)

// SubmitQualityCheckInput carries one inspection result.
type SubmitQualityCheckInput struct {
	PharmaceuticalID string
	InspectorID      string
	TemperatureC     float64
	Humidity         float64
	Passed           bool
	Notes            string
}

// QualityMetricsReport aggregates the inspection history of one batch.
// PassRate is a whole percentage; the averages are truncated to integers.
type QualityMetricsReport struct {
	PharmaceuticalID   string `json:"pharmaceutical_id"`
	TotalChecks        int    `json:"total_checks"`
	PassRate           int    `json:"pass_rate"`
	AverageTemperature int    `json:"average_temperature"`
	AverageHumidity    int    `json:"average_humidity"`
}

// SubmitQualityCheck records an inspection. Every check also appends a
// quality-control event to the ledger, and a passed check credits the
// inspector. All writes commit atomically.
func (s *Service) SubmitQualityCheck(ctx context.Context, input SubmitQualityCheckInput) (QualityCheck, Result, error) {
	ctx, done := s.begin(ctx, "submit_quality_check")
	var created QualityCheck
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if input.PharmaceuticalID == "" {
			return domain.InvalidPayloadError{Field: "pharmaceutical_id"}
		}
		if input.InspectorID == "" {
			return domain.InvalidPayloadError{Field: "inspector_id"}
		}
		if _, ok := tx.FindPharmaceutical(input.PharmaceuticalID); !ok {
			return domain.NotFoundError{Entity: EntityPharmaceutical, ID: input.PharmaceuticalID}
		}
		if _, ok := tx.FindUser(input.InspectorID); !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: input.InspectorID}
		}
		var err error
		created, err = tx.CreateQualityCheck(QualityCheck{
			PharmaceuticalID: input.PharmaceuticalID,
			InspectorID:      input.InspectorID,
			TemperatureC:     input.TemperatureC,
			Humidity:         input.Humidity,
			Passed:           input.Passed,
			Notes:            input.Notes,
		})
		if err != nil {
			return err
		}
		if _, err = tx.CreateSupplyChainEvent(SupplyChainEvent{
			PharmaceuticalID: input.PharmaceuticalID,
			Type:             EventQualityControl,
			Location:         "Quality Control Lab",
			ParticipantID:    input.InspectorID,
		}); err != nil {
			return err
		}
		if input.Passed {
			_, err = grantReward(tx, input.InspectorID, PointsPassedQualityCheck, RewardQualityReport)
		}
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// ChecksForPharmaceutical returns the inspection history of one batch in
// insertion order. An empty history is reported as not found.
func (s *Service) ChecksForPharmaceutical(ctx context.Context, pharmaceuticalID string) ([]QualityCheck, error) {
	ctx, done := s.begin(ctx, "checks_for_pharmaceutical")
	var matched []QualityCheck
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, c := range v.ListQualityChecks() {
			if c.PharmaceuticalID == pharmaceuticalID {
				matched = append(matched, c)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityQualityCheck}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// QualityMetrics computes aggregate inspection statistics for one batch.
// Reported as not found when the batch has no recorded checks.
func (s *Service) QualityMetrics(ctx context.Context, pharmaceuticalID string) (QualityMetricsReport, error) {
	ctx, done := s.begin(ctx, "quality_metrics")
	var report QualityMetricsReport
	err := s.store.View(ctx, func(v TransactionView) error {
		var (
			total    int
			passed   int
			tempSum  float64
			humidSum float64
		)
		for _, c := range v.ListQualityChecks() {
			if c.PharmaceuticalID != pharmaceuticalID {
				continue
			}
			total++
			if c.Passed {
				passed++
			}
			tempSum += c.TemperatureC
			humidSum += c.Humidity
		}
		if total == 0 {
			return domain.NotFoundError{Entity: EntityQualityCheck}
		}
		report = QualityMetricsReport{
			PharmaceuticalID:   pharmaceuticalID,
			TotalChecks:        total,
			PassRate:           passed * 100 / total,
			AverageTemperature: int(tempSum / float64(total)),
			AverageHumidity:    int(humidSum / float64(total)),
		}
		return nil
	})
	done(pharmaceuticalID, err)
	return report, err
}
