package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gridiron/events"
	"gridiron/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// leagueService implements the LeagueService interface
type leagueService struct {
	uowFactory UnitOfWorkFactory
}

// NewLeagueService creates a new league service
func NewLeagueService(uowFactory UnitOfWorkFactory) LeagueService {
	return &leagueService{
		uowFactory: uowFactory,
	}
}

// CreateLeague validates the prize distribution table and creates the league.
// The settlement engine assumes every persisted table passed this validation.
func (s *leagueService) CreateLeague(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error {
	if league.Name == "" {
		return fmt.Errorf("league name cannot be empty")
	}
	if league.MaxMembers < 2 {
		return fmt.Errorf("league needs at least 2 members, got %d", league.MaxMembers)
	}
	if league.EntryFee < 0 {
		return fmt.Errorf("entry fee cannot be negative")
	}
	if league.BasePrizePool < 0 {
		return fmt.Errorf("base prize pool cannot be negative")
	}

	seenRanks := make(map[int]bool, len(tiers))
	for _, tier := range tiers {
		if tier.Rank < 1 || tier.Rank > league.MaxMembers {
			return fmt.Errorf("prize tier rank %d is outside 1..%d", tier.Rank, league.MaxMembers)
		}
		if tier.Amount <= 0 {
			return fmt.Errorf("prize tier for rank %d must have a positive amount", tier.Rank)
		}
		if seenRanks[tier.Rank] {
			return fmt.Errorf("duplicate prize tier for rank %d", tier.Rank)
		}
		seenRanks[tier.Rank] = true
	}

	if total, poolCap := models.TotalPrizeAmount(tiers), league.PrizePoolCap(); total > poolCap {
		return fmt.Errorf("prize table total %d exceeds pool cap %d", total, poolCap)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.LeagueRepository().CreateWithTiers(ctx, league, tiers); err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"leagueID": league.ID,
		"matchID":  league.MatchID,
		"tiers":    len(tiers),
	}).Info("League created")

	return nil
}

// JoinLeague adds a user to a league, charging the entry fee through the
// ledger. A roster may be bound at join time; members without one are not
// ranked or paid until they bind one.
func (s *leagueService) JoinLeague(ctx context.Context, leagueID, userID int64, rosterID *int64) (*models.LeagueMembership, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	league, err := uow.LeagueRepository().GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	count, err := uow.LeagueRepository().CountMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to count memberships: %w", err)
	}
	if count >= league.MaxMembers {
		return nil, fmt.Errorf("league %d is full (%d/%d members)", leagueID, count, league.MaxMembers)
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	if rosterID != nil {
		roster, err := uow.RosterRepository().GetByID(ctx, *rosterID)
		if err != nil {
			return nil, fmt.Errorf("failed to get roster: %w", err)
		}
		if roster == nil {
			return nil, fmt.Errorf("roster %d not found", *rosterID)
		}
		if roster.UserID != userID {
			return nil, fmt.Errorf("roster %d does not belong to user %d", *rosterID, userID)
		}
		if roster.MatchID != league.MatchID {
			return nil, fmt.Errorf("roster %d is for match %d, league is for match %d", *rosterID, roster.MatchID, league.MatchID)
		}
	}

	if league.EntryFee > 0 {
		if err := uow.UserRepository().DeductCredits(ctx, userID, league.EntryFee); err != nil {
			return nil, fmt.Errorf("failed to charge entry fee: %w", err)
		}

		history := &models.CreditHistory{
			UserID:          userID,
			BalanceBefore:   user.Credits,
			BalanceAfter:    user.Credits - league.EntryFee,
			ChangeAmount:    -league.EntryFee,
			TransactionType: models.TransactionTypeEntryFee,
			TransactionMetadata: map[string]any{
				"league_name": league.Name,
			},
			RelatedID:   &leagueID,
			RelatedType: relatedTypePtr(models.RelatedTypeLeague),
		}
		if err := RecordCreditChange(ctx, uow, history); err != nil {
			return nil, fmt.Errorf("failed to record entry fee: %w", err)
		}
	}

	membership := &models.LeagueMembership{
		LeagueID: leagueID,
		UserID:   userID,
		RosterID: rosterID,
	}
	if err := uow.LeagueRepository().AddMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add membership: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return membership, nil
}

// SettleLeagues ranks memberships and distributes prizes for every league bound
// to the match. Leagues settle independently; a failure in one is collected
// into the summary and never blocks its siblings.
func (s *leagueService) SettleLeagues(ctx context.Context, matchID int64, settlementID uuid.UUID) *models.LeagueSettlementSummary {
	summary := &models.LeagueSettlementSummary{}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		summary.Failures = append(summary.Failures, models.LeagueFailure{
			Err: fmt.Errorf("failed to begin transaction: %w", err),
		})
		return summary
	}
	leagues, err := uow.LeagueRepository().GetByMatch(ctx, matchID)
	uow.Rollback()
	if err != nil {
		summary.Failures = append(summary.Failures, models.LeagueFailure{
			Err: fmt.Errorf("failed to list leagues: %w", err),
		})
		return summary
	}

	for _, league := range leagues {
		paid, alreadyPaid, err := s.settleLeague(ctx, league.ID, matchID, settlementID)
		if err != nil {
			log.WithFields(log.Fields{
				"leagueID": league.ID,
				"matchID":  matchID,
				"error":    err,
			}).Error("Failed to settle league")
			summary.Failures = append(summary.Failures, models.LeagueFailure{
				LeagueID: league.ID,
				Err:      err,
			})
			continue
		}
		summary.LeaguesSettled++
		summary.TotalPaid += paid
		if alreadyPaid {
			summary.AlreadyPaid++
		}
	}

	return summary
}

// settleLeague syncs points, ranks memberships, and pays prizes for one league
// inside a single transaction. Returns the amount paid out and whether the
// league had already been paid for this match.
func (s *leagueService) settleLeague(ctx context.Context, leagueID, matchID int64, settlementID uuid.UUID) (int64, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	detail, err := uow.LeagueRepository().GetDetailByID(ctx, leagueID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load league: %w", err)
	}
	if detail == nil {
		return 0, false, fmt.Errorf("league %d not found", leagueID)
	}

	// Rosters carry the authoritative totals after aggregation
	rosters := make(map[int64]*models.Roster)
	for _, m := range detail.Memberships {
		if !m.HasRoster() {
			continue
		}
		roster, err := uow.RosterRepository().GetByID(ctx, *m.RosterID)
		if err != nil {
			return 0, false, fmt.Errorf("failed to get roster %d: %w", *m.RosterID, err)
		}
		if roster == nil {
			return 0, false, fmt.Errorf("membership %d references missing roster %d", m.ID, *m.RosterID)
		}
		rosters[m.ID] = roster
	}

	// Points sync. Memberships without a bound roster keep their stale points
	// so joining without a team never zeroes a past result.
	rankKey := make(map[int64]float64, len(detail.Memberships))
	for _, m := range detail.Memberships {
		if roster, ok := rosters[m.ID]; ok {
			m.Points = math.Round(roster.TotalPoints)
			rankKey[m.ID] = roster.TotalPoints
		} else {
			rankKey[m.ID] = m.Points
		}
	}

	// Memberships arrive in join order, which is the tie-break
	ranked := make([]*models.LeagueMembership, len(detail.Memberships))
	copy(ranked, detail.Memberships)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankKey[ranked[i].ID] > rankKey[ranked[j].ID]
	})
	for i, m := range ranked {
		m.Rank = i + 1
		if err := uow.LeagueRepository().UpdateMembershipScore(ctx, m.ID, m.Points, m.Rank); err != nil {
			return 0, false, fmt.Errorf("failed to persist membership %d: %w", m.ID, err)
		}
	}

	// Prize distribution is guarded by the settlement marker: a re-run still
	// refreshes points and ranks above, but credits move at most once per
	// (league, match).
	existing, err := uow.SettlementRepository().GetLeagueSettlement(ctx, leagueID, matchID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to check settlement marker: %w", err)
	}
	if existing != nil {
		if err := uow.Commit(); err != nil {
			return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return 0, true, nil
	}

	var totalPaid int64
	for _, m := range ranked {
		tier := detail.TierForRank(m.Rank)
		if tier == nil || tier.Amount <= 0 {
			continue
		}

		// prizes_won is assigned, not incremented, so the credit movement is
		// the difference against whatever was recorded before
		delta := tier.Amount - m.PrizesWon
		if delta > 0 {
			user, err := uow.UserRepository().GetByID(ctx, m.UserID)
			if err != nil {
				return 0, false, fmt.Errorf("failed to get user %d: %w", m.UserID, err)
			}
			if user == nil {
				return 0, false, fmt.Errorf("membership %d references missing user %d", m.ID, m.UserID)
			}

			if err := uow.UserRepository().AddCredits(ctx, m.UserID, delta); err != nil {
				return 0, false, fmt.Errorf("failed to credit user %d: %w", m.UserID, err)
			}

			history := &models.CreditHistory{
				UserID:          m.UserID,
				BalanceBefore:   user.Credits,
				BalanceAfter:    user.Credits + delta,
				ChangeAmount:    delta,
				TransactionType: models.TransactionTypePrizePayout,
				TransactionMetadata: map[string]any{
					"league_name": detail.League.Name,
					"rank":        m.Rank,
				},
				RelatedID:   &leagueID,
				RelatedType: relatedTypePtr(models.RelatedTypeLeague),
			}
			if err := RecordCreditChange(ctx, uow, history); err != nil {
				return 0, false, fmt.Errorf("failed to record prize payout: %w", err)
			}
			totalPaid += delta
		}

		m.PrizesWon = tier.Amount
		if err := uow.LeagueRepository().UpdateMembershipPrize(ctx, m.ID, m.PrizesWon); err != nil {
			return 0, false, fmt.Errorf("failed to record prizes won: %w", err)
		}

		uow.EventBus().Publish(events.PrizeAwardedEvent{
			LeagueID: leagueID,
			UserID:   m.UserID,
			Rank:     m.Rank,
			Amount:   tier.Amount,
		})
	}

	marker := &models.LeagueSettlement{
		LeagueID:     leagueID,
		MatchID:      matchID,
		SettlementID: settlementID,
		TotalPaid:    totalPaid,
	}
	if err := uow.SettlementRepository().CreateLeagueSettlement(ctx, marker); err != nil {
		return 0, false, fmt.Errorf("failed to record settlement marker: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"leagueID":  leagueID,
		"matchID":   matchID,
		"totalPaid": totalPaid,
	}).Info("League settled")

	return totalPaid, false, nil
}
