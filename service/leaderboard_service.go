package service

import (
	"context"
	"fmt"
	"sort"
)

// leaderboardService implements the LeaderboardService interface
type leaderboardService struct {
	uowFactory UnitOfWorkFactory
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(uowFactory UnitOfWorkFactory) LeaderboardService {
	return &leaderboardService{
		uowFactory: uowFactory,
	}
}

// UpdateUserTotals recomputes the cross-match point total for each user from
// all rosters they own, not just the match being settled. Idempotent and safe
// for an arbitrary subset of users.
func (s *leaderboardService) UpdateUserTotals(ctx context.Context, userIDs []int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	for _, userID := range userIDs {
		total, err := uow.RosterRepository().SumPointsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to sum points for user %d: %w", userID, err)
		}
		if err := uow.UserRepository().UpdateTotalPoints(ctx, userID, total); err != nil {
			return fmt.Errorf("failed to update total for user %d: %w", userID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateGlobalRanks reranks every user by total points descending, ties broken
// by account-creation order ascending. Ranks are dense 1..N and persisted for
// every user. Cost is O(all users) per call.
func (s *leaderboardService) UpdateGlobalRanks(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// GetAll orders by account creation, which doubles as the tie-break
	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalPoints > users[j].TotalPoints
	})

	for i, user := range users {
		user.GlobalRank = i + 1
		if err := uow.UserRepository().UpdateGlobalRank(ctx, user.ID, user.GlobalRank); err != nil {
			return fmt.Errorf("failed to persist rank for user %d: %w", user.ID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
