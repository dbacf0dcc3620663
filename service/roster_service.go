package service

import (
	"context"
	"fmt"
	"sort"

	"gridiron/models"
	"gridiron/scoring"
)

// rosterService implements the RosterService interface
type rosterService struct {
	uowFactory UnitOfWorkFactory
}

// NewRosterService creates a new roster service
func NewRosterService(uowFactory UnitOfWorkFactory) RosterService {
	return &rosterService{
		uowFactory: uowFactory,
	}
}

// AggregateRosters recomputes total points for every roster bound to the match
// and assigns dense ranks 1..N, points descending. Ties go to the earlier
// created roster, so every roster gets a distinct rank. Every roster is
// persisted, not just changed ones, and re-running yields identical results.
func (s *rosterService) AggregateRosters(ctx context.Context, matchID int64) ([]*models.Roster, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// GetByMatch orders by creation, which doubles as the tie-break
	rosters, err := uow.RosterRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rosters: %w", err)
	}

	lines, err := uow.StatLineRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stat lines: %w", err)
	}
	pointsByPlayer := make(map[int64]float64, len(lines))
	for _, line := range lines {
		pointsByPlayer[line.PlayerID] = line.FantasyPoints
	}

	for _, roster := range rosters {
		slots, err := uow.RosterRepository().GetSlots(ctx, roster.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get slots for roster %d: %w", roster.ID, err)
		}

		var total float64
		for _, slot := range slots {
			// A player who did not play still occupies the slot and counts 0
			total += pointsByPlayer[slot.PlayerID]
		}
		roster.TotalPoints = scoring.RoundHalfUp1(total)
	}

	// Stable sort keeps the creation-order tie-break from GetByMatch
	sort.SliceStable(rosters, func(i, j int) bool {
		return rosters[i].TotalPoints > rosters[j].TotalPoints
	})

	for i, roster := range rosters {
		roster.Rank = i + 1
		if err := uow.RosterRepository().UpdateScore(ctx, roster.ID, roster.TotalPoints, roster.Rank); err != nil {
			return nil, fmt.Errorf("failed to persist roster %d: %w", roster.ID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rosters, nil
}
