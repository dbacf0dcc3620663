package service

import (
	"context"
	"fmt"

	"gridiron/config"
	"gridiron/scoring"
	"gridiron/simulator"

	log "github.com/sirupsen/logrus"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
	simulator  *simulator.Simulator
	config     *config.Config
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory, sim *simulator.Simulator, cfg *config.Config) StatsService {
	return &statsService{
		uowFactory: uowFactory,
		simulator:  sim,
		config:     cfg,
	}
}

// EnsureStatLines simulates a stat line for every rostered player in the match
// that has none. Simulated lines are conditioned on the match's final score and
// go through the scoring calculator like authoritative data.
func (s *statsService) EnsureStatLines(ctx context.Context, matchID int64) (int, error) {
	if !s.config.SimulateMissingStats {
		return 0, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return 0, fmt.Errorf("match %d not found", matchID)
	}

	rosters, err := uow.RosterRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to get rosters: %w", err)
	}

	lines, err := uow.StatLineRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to get stat lines: %w", err)
	}
	covered := make(map[int64]bool, len(lines))
	for _, line := range lines {
		covered[line.PlayerID] = true
	}

	// Every rostered player without a line needs a simulated one
	var missing []int64
	seen := make(map[int64]bool)
	for _, roster := range rosters {
		slots, err := uow.RosterRepository().GetSlots(ctx, roster.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to get slots for roster %d: %w", roster.ID, err)
		}
		for _, slot := range slots {
			if !covered[slot.PlayerID] && !seen[slot.PlayerID] {
				seen[slot.PlayerID] = true
				missing = append(missing, slot.PlayerID)
			}
		}
	}

	if len(missing) == 0 {
		return 0, uow.Commit()
	}

	players, err := uow.PlayerRepository().GetByIDs(ctx, missing)
	if err != nil {
		return 0, fmt.Errorf("failed to get players: %w", err)
	}

	created := 0
	for _, playerID := range missing {
		player, ok := players[playerID]
		if !ok {
			// Roster references a player the store no longer knows; skip it
			log.WithFields(log.Fields{
				"playerID": playerID,
				"matchID":  matchID,
			}).Warn("Rostered player not found, skipping simulation")
			continue
		}

		teamScore, opponentScore := match.ScoreFor(player.Team)
		line := s.simulator.Simulate(player.Position, teamScore, opponentScore)
		line.PlayerID = player.ID
		line.MatchID = matchID
		line.FantasyPoints = scoring.Points(line)

		if err := uow.StatLineRepository().Upsert(ctx, &line); err != nil {
			return 0, fmt.Errorf("failed to store simulated stat line: %w", err)
		}
		created++
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID": matchID,
		"created": created,
	}).Info("Simulated stat lines for players without authoritative data")

	return created, nil
}

// RecomputeFantasyPoints recalculates and persists the fantasy point cache for
// every stat line of the match. Every row is written, not just changed ones.
func (s *statsService) RecomputeFantasyPoints(ctx context.Context, matchID int64) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	lines, err := uow.StatLineRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to get stat lines: %w", err)
	}

	for _, line := range lines {
		points := scoring.Points(*line)
		if err := uow.StatLineRepository().UpdateFantasyPoints(ctx, line.ID, points); err != nil {
			return 0, fmt.Errorf("failed to update fantasy points: %w", err)
		}
		line.FantasyPoints = points
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(lines), nil
}
