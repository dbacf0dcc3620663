package service

import (
	"context"
	"fmt"
	"sync"

	"gridiron/events"
	"gridiron/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// settlementService implements the SettlementService interface
type settlementService struct {
	uowFactory  UnitOfWorkFactory
	stats       StatsService
	rosters     RosterService
	leaderboard LeaderboardService
	leagues     LeagueService

	mu      sync.Mutex
	inMatch map[int64]*sync.Mutex
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	uowFactory UnitOfWorkFactory,
	stats StatsService,
	rosters RosterService,
	leaderboard LeaderboardService,
	leagues LeagueService,
) SettlementService {
	return &settlementService{
		uowFactory:  uowFactory,
		stats:       stats,
		rosters:     rosters,
		leaderboard: leaderboard,
		leagues:     leagues,
		inMatch:     make(map[int64]*sync.Mutex),
	}
}

// matchLock returns the mutex serializing settlement of a single match.
// Concurrent Settle calls for the same match run one after the other instead
// of racing each other's transactions.
func (s *settlementService) matchLock(matchID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.inMatch[matchID]
	if !ok {
		lock = &sync.Mutex{}
		s.inMatch[matchID] = lock
	}
	return lock
}

// Settle runs the full settlement pipeline for a completed match: fill in
// missing stat lines, recompute fantasy points, score and rank rosters, update
// the global leaderboard, then settle every league bound to the match. Only a
// missing or unfinished match is fatal; per-league failures are reported in
// the result.
func (s *settlementService) Settle(ctx context.Context, matchID int64) (*models.SettlementReport, error) {
	lock := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	uow.Rollback()
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %d not found", matchID)
	}
	if !match.Final {
		return nil, fmt.Errorf("match %d is not final", matchID)
	}

	settlementID := uuid.New()
	log.WithFields(log.Fields{
		"matchID":      matchID,
		"settlementID": settlementID,
	}).Info("Starting settlement")

	simulated, err := s.stats.EnsureStatLines(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure stat lines: %w", err)
	}

	statLines, err := s.stats.RecomputeFantasyPoints(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute fantasy points: %w", err)
	}

	rosters, err := s.rosters.AggregateRosters(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rosters: %w", err)
	}

	// Only users with a roster in this match need their totals refreshed;
	// the global rerank still covers everyone
	userIDs := distinctUserIDs(rosters)
	if err := s.leaderboard.UpdateUserTotals(ctx, userIDs); err != nil {
		return nil, fmt.Errorf("failed to update user totals: %w", err)
	}
	if err := s.leaderboard.UpdateGlobalRanks(ctx); err != nil {
		return nil, fmt.Errorf("failed to update global ranks: %w", err)
	}

	summary := s.leagues.SettleLeagues(ctx, matchID, settlementID)

	report := &models.SettlementReport{
		SettlementID:   settlementID,
		MatchID:        matchID,
		StatLinesFinal: statLines,
		RostersScored:  len(rosters),
		UsersUpdated:   len(userIDs),
		LeaguesSettled: summary.LeaguesSettled,
		Failures:       summary.Failures,
	}

	if err := s.recordRun(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to record settlement run: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID":        matchID,
		"settlementID":   settlementID,
		"statLinesFinal": report.StatLinesFinal,
		"simulated":      simulated,
		"rostersScored":  report.RostersScored,
		"usersUpdated":   report.UsersUpdated,
		"leaguesSettled": report.LeaguesSettled,
		"leaguesFailed":  len(report.Failures),
	}).Info("Settlement complete")

	return report, nil
}

// recordRun persists the audit row and emits the settled event once the row
// commits.
func (s *settlementService) recordRun(ctx context.Context, report *models.SettlementReport) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	run := &models.SettlementRun{
		ID:             report.SettlementID,
		MatchID:        report.MatchID,
		UsersUpdated:   report.UsersUpdated,
		RostersScored:  report.RostersScored,
		LeaguesSettled: report.LeaguesSettled,
		LeaguesFailed:  len(report.Failures),
	}
	if err := uow.SettlementRepository().CreateRun(ctx, run); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	uow.EventBus().Publish(events.MatchSettledEvent{
		MatchID:        report.MatchID,
		SettlementID:   report.SettlementID,
		UsersUpdated:   report.UsersUpdated,
		LeaguesSettled: report.LeaguesSettled,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func distinctUserIDs(rosters []*models.Roster) []int64 {
	seen := make(map[int64]bool, len(rosters))
	var ids []int64
	for _, roster := range rosters {
		if !seen[roster.UserID] {
			seen[roster.UserID] = true
			ids = append(ids, roster.UserID)
		}
	}
	return ids
}
