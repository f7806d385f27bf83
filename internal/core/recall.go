package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// InitiateRecallInput carries the payload for opening a recall.
type InitiateRecallInput struct {
	PharmaceuticalID string
	Severity         RecallSeverity
	Reason           string
	InitiatedBy      string
	AffectedBatches  []string
}

// InitiateRecall opens a recall alert, appends a recall event to the ledger
// and credits the initiator. All three writes commit atomically; a failure
// in any of them leaves no trace.
func (s *Service) InitiateRecall(ctx context.Context, input InitiateRecallInput) (RecallAlert, Result, error) {
	ctx, done := s.begin(ctx, "initiate_recall")
	var created RecallAlert
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if input.PharmaceuticalID == "" {
			return domain.InvalidPayloadError{Field: "pharmaceutical_id"}
		}
		if input.Reason == "" {
			return domain.InvalidPayloadError{Field: "reason"}
		}
		if input.InitiatedBy == "" {
			return domain.InvalidPayloadError{Field: "initiated_by"}
		}
		if len(input.AffectedBatches) == 0 {
			return domain.InvalidPayloadError{Field: "affected_batches"}
		}
		if input.Severity == "" {
			return domain.InvalidPayloadError{Field: "severity"}
		}
		if !domain.KnownRecallSeverity(input.Severity) {
			return domain.ValidationError{Detail: fmt.Sprintf("unknown recall severity %q", input.Severity)}
		}
		if _, ok := tx.FindPharmaceutical(input.PharmaceuticalID); !ok {
			return domain.NotFoundError{Entity: EntityPharmaceutical, ID: input.PharmaceuticalID}
		}
		if _, ok := tx.FindUser(input.InitiatedBy); !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: input.InitiatedBy}
		}
		var err error
		created, err = tx.CreateRecallAlert(RecallAlert{
			PharmaceuticalID: input.PharmaceuticalID,
			Severity:         input.Severity,
			Reason:           input.Reason,
			InitiatedBy:      input.InitiatedBy,
			AffectedBatches:  append([]string(nil), input.AffectedBatches...),
			Status:           RecallActive,
		})
		if err != nil {
			return err
		}
		if _, err = tx.CreateSupplyChainEvent(SupplyChainEvent{
			PharmaceuticalID: input.PharmaceuticalID,
			Type:             EventRecallInitiated,
			Location:         "System",
			ParticipantID:    input.InitiatedBy,
		}); err != nil {
			return err
		}
		_, err = grantReward(tx, input.InitiatedBy, PointsRecallInitiation, RewardRecallManagement)
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// CloseRecall transitions an active recall to closed. Closing an already
// closed recall is rejected.
func (s *Service) CloseRecall(ctx context.Context, recallID string) (RecallAlert, Result, error) {
	ctx, done := s.begin(ctx, "close_recall")
	var updated RecallAlert
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		current, ok := tx.FindRecallAlert(recallID)
		if !ok {
			return domain.NotFoundError{Entity: EntityRecallAlert, ID: recallID}
		}
		if current.Status == RecallClosed {
			return domain.ValidationError{Detail: fmt.Sprintf("recall %s already closed", recallID)}
		}
		var err error
		updated, err = tx.UpdateRecallAlert(recallID, func(r *RecallAlert) error {
			r.Status = RecallClosed
			return nil
		})
		return err
	})
	done(recallID, err)
	return updated, res, err
}

// GetRecall retrieves a recall alert by ID.
func (s *Service) GetRecall(ctx context.Context, id string) (RecallAlert, error) {
	ctx, done := s.begin(ctx, "get_recall")
	record, ok := s.store.GetRecallAlert(id)
	var err error
	if !ok {
		err = domain.NotFoundError{Entity: EntityRecallAlert, ID: id}
	}
	done(id, err)
	return record, err
}

// ActiveRecalls returns all open recall alerts in insertion order. An empty
// result is reported as not found.
func (s *Service) ActiveRecalls(ctx context.Context) ([]RecallAlert, error) {
	ctx, done := s.begin(ctx, "active_recalls")
	var matched []RecallAlert
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, r := range v.ListRecallAlerts() {
			if r.Status == RecallActive {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityRecallAlert}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// ListRecalls returns every recall alert in insertion order.
func (s *Service) ListRecalls(ctx context.Context) ([]RecallAlert, error) {
	_, done := s.begin(ctx, "list_recalls")
	records := s.store.ListRecallAlerts()
	done("", nil)
	return records, nil
}
