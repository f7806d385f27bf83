package core

import (
	"context"
	"fmt"

	"pharmtrace/pkg/domain"
)

// grantReward credits points to the participant and writes the matching
// Reward record inside tx. Both writes land in the same commit so the
// balance and the reward ledger never diverge.
func grantReward(tx Transaction, participantID string, points int, kind RewardType) (Reward, error) {
	if _, err := creditPoints(tx, participantID, points); err != nil {
		return Reward{}, err
	}
	return tx.CreateReward(Reward{
		ParticipantID: participantID,
		Points:        points,
		Type:          kind,
	})
}

// GrantReward issues a discretionary reward outside the automatic schedule.
func (s *Service) GrantReward(ctx context.Context, participantID string, points int, kind RewardType) (Reward, Result, error) {
	ctx, done := s.begin(ctx, "grant_reward")
	var created Reward
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if participantID == "" {
			return domain.InvalidPayloadError{Field: "participant_id"}
		}
		if points <= 0 {
			return domain.InvalidPayloadError{Field: "points"}
		}
		if kind == "" {
			return domain.InvalidPayloadError{Field: "reward_type"}
		}
		if !domain.KnownRewardType(kind) {
			return domain.ValidationError{Detail: fmt.Sprintf("unknown reward type %q", kind)}
		}
		if _, ok := tx.FindUser(participantID); !ok {
			return domain.NotFoundError{Entity: EntityUser, ID: participantID}
		}
		var err error
		created, err = grantReward(tx, participantID, points, kind)
		return err
	})
	done(created.ID, err)
	return created, res, err
}

// RewardsForParticipant returns every reward issued to the participant in
// insertion order. An empty result is reported as not found.
func (s *Service) RewardsForParticipant(ctx context.Context, participantID string) ([]Reward, error) {
	ctx, done := s.begin(ctx, "rewards_for_participant")
	var matched []Reward
	err := s.store.View(ctx, func(v TransactionView) error {
		for _, r := range v.ListRewards() {
			if r.ParticipantID == participantID {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			return domain.NotFoundError{Entity: EntityReward}
		}
		return nil
	})
	done("", err)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// ListRewards returns every reward in insertion order.
func (s *Service) ListRewards(ctx context.Context) ([]Reward, error) {
	_, done := s.begin(ctx, "list_rewards")
	records := s.store.ListRewards()
	done("", nil)
	return records, nil
}
