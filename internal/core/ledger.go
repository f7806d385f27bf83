package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// RecordEventInput carries the payload for one supply-chain event.
type RecordEventInput struct {
	PharmaceuticalID string
	Type             EventType
	Location         string
	ParticipantID    string
}

// RecordEvent appends a supply-chain event to the ledger and credits the
// recording participant. The event and the reward commit atomically.
func (s *Service) RecordEvent(ctx context.Context, input RecordEventInput) (SupplyChainEvent, Result, error) {
	ctx, done := s.begin(ctx, "record_event")
	var created SupplyChainEvent
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if input.PharmaceuticalID == "" {
			return domain.InvalidPayloadError{Field: "pharmaceutical_id"}
		}
		if input.Type == "" {
			return domain.InvalidPayloadError{Field: "event_type"}
		}
		if input.Location == "" {
			return domain.InvalidPayloadError{Field: "location"}
		}
		if input.ParticipantID == "" {
			return domain.InvalidPayloadError{Field: "participant_id"}
		}
		if !domain.KnownEventType(input.Type) {
			return domain.ValidationError{Detail: fmt.Sprintf("unknown event type %q", input.Type)}
		}
		if _, ok := tx.FindPharmaceutical(input.PharmaceuticalID); !ok {
			return domain.NotFoundError{Entity: EntityPharmaceutical, ID: input.PharmaceuticalID}
		}
		if _, ok := tx.FindUser(input.ParticipantID); !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: input.ParticipantID}
		}
		var err error
		created, err = tx.CreateSupplyChainEvent(SupplyChainEvent{
			PharmaceuticalID: input.PharmaceuticalID,
			Type:             input.Type,
			Location:         input.Location,
			ParticipantID:    input.ParticipantID,
		})
		if err != nil {
			return err
		}
		_, err = grantReward(tx, input.ParticipantID, PointsSupplyChainEvent, RewardSupplyChainEvent)
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// EventsForPharmaceutical returns the event history of one batch in
// insertion order. An empty history is reported as not found.
func (s *Service) EventsForPharmaceutical(ctx context.Context, pharmaceuticalID string) ([]SupplyChainEvent, error) {
	ctx, done := s.begin(ctx, "events_for_pharmaceutical")
	var matched []SupplyChainEvent
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, e := range v.ListSupplyChainEvents() {
			if e.PharmaceuticalID == pharmaceuticalID {
				matched = append(matched, e)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntitySupplyChainEvent}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// ListEvents returns the full ledger in insertion order.
func (s *Service) ListEvents(ctx context.Context) ([]SupplyChainEvent, error) {
	_, done := s.begin(ctx, "list_events")
	records := s.store.ListSupplyChainEvents()
	done("", nil)
	return records, nil
}
