package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pharmtrace/pkg/domain"
)

// RegisterPharmaceuticalInput carries the registration payload.
type RegisterPharmaceuticalInput struct {
	OwnerID      string
	Name         string
	Manufacturer string
	BatchNumber  string
	ExpiryDate   time.Time
}

// RegisterPharmaceutical records a new drug batch. Only admin participants
// may register; the record is immutable once created.
func (s *Service) RegisterPharmaceutical(ctx context.Context, input RegisterPharmaceuticalInput) (Pharmaceutical, Result, error) {
	ctx, done := s.begin(ctx, "register_pharmaceutical")
	var created Pharmaceutical
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		for _, field := range []struct {
			name  string
			value string
		}{
			{"name", input.Name},
			{"manufacturer", input.Manufacturer},
			{"batch_number", input.BatchNumber},
		} {
			if strings.TrimSpace(field.value) == "" {
				return domain.InvalidPayloadError{Field: field.name}
			}
		}
		owner, ok := tx.FindUser(input.OwnerID)
		if !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: input.OwnerID}
		}
		if owner.Role != RoleAdmin {
			return domain.UnauthorizedError{Detail: fmt.Sprintf("user %s is not an admin", owner.ID)}
		}
		var err error
		created, err = tx.CreatePharmaceutical(Pharmaceutical{
			OwnerID:      input.OwnerID,
			Name:         input.Name,
			Manufacturer: input.Manufacturer,
			BatchNumber:  input.BatchNumber,
			ExpiryDate:   input.ExpiryDate,
		})
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// GetPharmaceutical retrieves a registration by ID.
func (s *Service) GetPharmaceutical(ctx context.Context, id string) (Pharmaceutical, error) {
	ctx, done := s.begin(ctx, "get_pharmaceutical")
	record, ok := s.store.GetPharmaceutical(id)
	var err error
	if !ok {
		err = domain.NotFoundError{Entity: EntityPharmaceutical, ID: id}
	}
	done(id, err)
	return record, err
}

// ListPharmaceuticals returns all registrations in insertion order.
func (s *Service) ListPharmaceuticals(ctx context.Context) ([]Pharmaceutical, error) {
	_, done := s.begin(ctx, "list_pharmaceuticals")
	records := s.store.ListPharmaceuticals()
	done("", nil)
	return records, nil
}
