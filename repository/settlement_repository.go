package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// SettlementRepository implements the service.SettlementRepository interface
type SettlementRepository struct {
	q queryable
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *database.DB) *SettlementRepository {
	return &SettlementRepository{q: db.Pool}
}

func newSettlementRepositoryWithTx(tx queryable) *SettlementRepository {
	return &SettlementRepository{q: tx}
}

// CreateRun records the audit row for one settlement invocation
func (r *SettlementRepository) CreateRun(ctx context.Context, run *models.SettlementRun) error {
	query := `
		INSERT INTO settlement_runs (id, match_id, users_updated, rosters_scored, leagues_settled, leagues_failed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		run.ID,
		run.MatchID,
		run.UsersUpdated,
		run.RostersScored,
		run.LeaguesSettled,
		run.LeaguesFailed,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create settlement run for match %d: %w", run.MatchID, err)
	}
	return nil
}

// GetLeagueSettlement returns the paid marker for a (league, match) pair, if any
func (r *SettlementRepository) GetLeagueSettlement(ctx context.Context, leagueID, matchID int64) (*models.LeagueSettlement, error) {
	query := `
		SELECT id, league_id, match_id, settlement_id, total_paid, created_at
		FROM league_settlements
		WHERE league_id = $1 AND match_id = $2
	`

	var settlement models.LeagueSettlement
	err := r.q.QueryRow(ctx, query, leagueID, matchID).Scan(
		&settlement.ID,
		&settlement.LeagueID,
		&settlement.MatchID,
		&settlement.SettlementID,
		&settlement.TotalPaid,
		&settlement.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league settlement for league %d match %d: %w", leagueID, matchID, err)
	}
	return &settlement, nil
}

// CreateLeagueSettlement records that a league's prizes were paid for a match.
// The unique (league_id, match_id) constraint rejects a second payout.
func (r *SettlementRepository) CreateLeagueSettlement(ctx context.Context, settlement *models.LeagueSettlement) error {
	query := `
		INSERT INTO league_settlements (league_id, match_id, settlement_id, total_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		settlement.LeagueID,
		settlement.MatchID,
		settlement.SettlementID,
		settlement.TotalPaid,
	).Scan(&settlement.ID, &settlement.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create league settlement for league %d match %d: %w",
			settlement.LeagueID, settlement.MatchID, err)
	}
	return nil
}
