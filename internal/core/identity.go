package core

import (
	"context"
	"fmt"
	"strings"

	"pharmtrace/pkg/domain"
)

// CreateUser registers a new participant with a zero point balance. The
// username must be unique across all users (case-sensitive exact match).
func (s *Service) CreateUser(ctx context.Context, username string, role Role) (User, Result, error) {
	ctx, done := s.begin(ctx, "create_user")
	var created User
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if strings.TrimSpace(username) == "" {
			return domain.ValidationError{Detail: "username must not be empty"}
		}
		if !domain.KnownRole(role) {
			return domain.ValidationError{Detail: fmt.Sprintf("unknown role %q", role)}
		}
		if _, taken := tx.FindUserByUsername(username); taken {
			return domain.ValidationError{Detail: fmt.Sprintf("username %q already taken", username)}
		}
		var err error
		created, err = tx.CreateUser(User{Username: username, Role: role})
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// GetUser retrieves a participant by ID.
func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	ctx, done := s.begin(ctx, "get_user")
	user, ok := s.store.GetUser(id)
	var err error
	if !ok {
		err = domain.NotFoundError{Entity: EntityUser, ID: id}
	}
	done(id, err)
	return user, err
}

// ListUsersByRole returns all participants holding the given role in
// insertion order. An empty result is reported as not found rather than an
// empty sequence; callers relying on this behavior are covered by tests.
func (s *Service) ListUsersByRole(ctx context.Context, role Role) ([]User, error) {
	ctx, done := s.begin(ctx, "list_users_by_role")
	var matched []User
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, u := range v.ListUsers() {
			if u.Role == role {
				matched = append(matched, u)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityUser}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// creditPoints adds amount to the user's balance within the transaction.
// Callers pair every credit with a Reward insert in the same transaction;
// the reward_balance_parity rule blocks commits that do not.
func creditPoints(tx Transaction, userID string, amount int) (User, error) {
	return tx.UpdateUser(userID, func(u *User) error {
		u.Points += amount
		return nil
	})
}
