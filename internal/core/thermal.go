package core

import (
	"context"

	"pharmtrace/pkg/domain"
)

// Cold-chain band in degrees Celsius, both bounds inclusive. Readings
// outside the band are excursions.
const (
	ColdChainMinC = 2.0
	ColdChainMaxC = 8.0
)

// LogTemperatureInput carries one cold-chain reading.
type LogTemperatureInput struct {
	PharmaceuticalID string
	TemperatureC     float64
	Location         string
	RecordedBy       string
}

// LogTemperature records a cold-chain reading. A reading outside the
// [2, 8]°C band still commits, together with a derived excursion event,
// and the call then reports the excursion as an error so callers cannot
// miss it.
func (s *Service) LogTemperature(ctx context.Context, input LogTemperatureInput) (TemperatureLog, Result, error) {
	ctx, done := s.begin(ctx, "log_temperature")
	var created TemperatureLog
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if input.PharmaceuticalID == "" {
			return domain.InvalidPayloadError{Field: "pharmaceutical_id"}
		}
		if input.Location == "" {
			return domain.InvalidPayloadError{Field: "location"}
		}
		if input.RecordedBy == "" {
			return domain.InvalidPayloadError{Field: "recorded_by"}
		}
		if _, ok := tx.FindPharmaceutical(input.PharmaceuticalID); !ok {
			return domain.NotFoundError{Entity: EntityPharmaceutical, ID: input.PharmaceuticalID}
		}
		if _, ok := tx.FindUser(input.RecordedBy); !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: input.RecordedBy}
		}
		excursion := input.TemperatureC < ColdChainMinC || input.TemperatureC > ColdChainMaxC
		var err error
		created, err = tx.CreateTemperatureLog(TemperatureLog{
			PharmaceuticalID: input.PharmaceuticalID,
			TemperatureC:     input.TemperatureC,
			Location:         input.Location,
			RecordedBy:       input.RecordedBy,
			IsExcursion:      excursion,
		})
		if err != nil {
			return err
		}
		if excursion {
			_, err = tx.CreateSupplyChainEvent(SupplyChainEvent{
				PharmaceuticalID: input.PharmaceuticalID,
				Type:             EventTemperatureExcursion,
				Location:         input.Location,
				ParticipantID:    input.RecordedBy,
			})
		}
		return err
	})
	if err == nil && created.IsExcursion {
		// The log and the excursion event are committed at this point.
		err = domain.TemperatureExcursionError{
			PharmaceuticalID: created.PharmaceuticalID,
			TemperatureC:     created.TemperatureC,
		}
	}
	done(created.ID, err)
	return created, res, err
}

// LogsForPharmaceutical returns all cold-chain readings of one batch in
// insertion order. An empty history is reported as not found.
func (s *Service) LogsForPharmaceutical(ctx context.Context, pharmaceuticalID string) ([]TemperatureLog, error) {
	ctx, done := s.begin(ctx, "logs_for_pharmaceutical")
	var matched []TemperatureLog
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, l := range v.ListTemperatureLogs() {
			if l.PharmaceuticalID == pharmaceuticalID {
				matched = append(matched, l)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityTemperatureLog}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// ExcursionsForPharmaceutical returns only the out-of-band readings of one
// batch in insertion order. An empty result is reported as not found.
func (s *Service) ExcursionsForPharmaceutical(ctx context.Context, pharmaceuticalID string) ([]TemperatureLog, error) {
	ctx, done := s.begin(ctx, "excursions_for_pharmaceutical")
	var matched []TemperatureLog
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, l := range v.ListTemperatureLogs() {
			if l.PharmaceuticalID == pharmaceuticalID && l.IsExcursion {
				matched = append(matched, l)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityTemperatureLog}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}
