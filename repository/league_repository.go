package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// LeagueRepository implements the service.LeagueRepository interface
type LeagueRepository struct {
	q queryable
}

// NewLeagueRepository creates a new league repository
func NewLeagueRepository(db *database.DB) *LeagueRepository {
	return &LeagueRepository{q: db.Pool}
}

func newLeagueRepositoryWithTx(tx queryable) *LeagueRepository {
	return &LeagueRepository{q: tx}
}

const leagueColumns = `id, match_id, name, entry_fee, max_members, base_prize_pool, created_at`

func scanLeague(row pgx.Row) (*models.League, error) {
	var league models.League
	err := row.Scan(
		&league.ID,
		&league.MatchID,
		&league.Name,
		&league.EntryFee,
		&league.MaxMembers,
		&league.BasePrizePool,
		&league.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// CreateWithTiers creates a league and its prize distribution table atomically
func (r *LeagueRepository) CreateWithTiers(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error {
	query := `
		INSERT INTO leagues (match_id, name, entry_fee, max_members, base_prize_pool)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		league.MatchID,
		league.Name,
		league.EntryFee,
		league.MaxMembers,
		league.BasePrizePool,
	).Scan(&league.ID, &league.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create league %q: %w", league.Name, err)
	}

	tierQuery := `
		INSERT INTO league_prize_tiers (league_id, rank, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	for _, tier := range tiers {
		tier.LeagueID = league.ID
		err := r.q.QueryRow(ctx, tierQuery, tier.LeagueID, tier.Rank, tier.Amount).
			Scan(&tier.ID, &tier.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create prize tier rank %d: %w", tier.Rank, err)
		}
	}
	return nil
}

// GetByID retrieves a league by ID
func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`

	league, err := scanLeague(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", id, err)
	}
	return league, nil
}

// GetByMatch returns all leagues bound to a match
func (r *LeagueRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE match_id = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leagues for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var leagues []*models.League
	for rows.Next() {
		league, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, league)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leagues: %w", err)
	}
	return leagues, nil
}

// GetDetailByID returns a league with its prize table and memberships.
// Memberships come back in join order, the documented rank tie-break.
func (r *LeagueRepository) GetDetailByID(ctx context.Context, id int64) (*models.LeagueDetail, error) {
	league, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, nil
	}

	tierQuery := `
		SELECT id, league_id, rank, amount, created_at
		FROM league_prize_tiers
		WHERE league_id = $1
		ORDER BY rank ASC
	`
	tierRows, err := r.q.Query(ctx, tierQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize tiers for league %d: %w", id, err)
	}
	defer tierRows.Close()

	var tiers []*models.PrizeTier
	for tierRows.Next() {
		var tier models.PrizeTier
		err := tierRows.Scan(&tier.ID, &tier.LeagueID, &tier.Rank, &tier.Amount, &tier.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prize tier: %w", err)
		}
		tiers = append(tiers, &tier)
	}
	if err := tierRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prize tiers: %w", err)
	}
	tierRows.Close()

	memberQuery := `
		SELECT id, league_id, user_id, roster_id, points, rank, prizes_won, created_at
		FROM league_memberships
		WHERE league_id = $1
		ORDER BY id ASC
	`
	memberRows, err := r.q.Query(ctx, memberQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships for league %d: %w", id, err)
	}
	defer memberRows.Close()

	var memberships []*models.LeagueMembership
	for memberRows.Next() {
		var m models.LeagueMembership
		err := memberRows.Scan(
			&m.ID,
			&m.LeagueID,
			&m.UserID,
			&m.RosterID,
			&m.Points,
			&m.Rank,
			&m.PrizesWon,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return &models.LeagueDetail{
		League:      league,
		PrizeTiers:  tiers,
		Memberships: memberships,
	}, nil
}

// AddMembership creates a league membership
func (r *LeagueRepository) AddMembership(ctx context.Context, membership *models.LeagueMembership) error {
	query := `
		INSERT INTO league_memberships (league_id, user_id, roster_id)
		VALUES ($1, $2, $3)
		RETURNING id, points, rank, prizes_won, created_at
	`

	err := r.q.QueryRow(ctx, query,
		membership.LeagueID,
		membership.UserID,
		membership.RosterID,
	).Scan(
		&membership.ID,
		&membership.Points,
		&membership.Rank,
		&membership.PrizesWon,
		&membership.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add membership for user %d to league %d: %w",
			membership.UserID, membership.LeagueID, err)
	}
	return nil
}

// CountMemberships returns the number of memberships in a league
func (r *LeagueRepository) CountMemberships(ctx context.Context, leagueID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM league_memberships WHERE league_id = $1`, leagueID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships for league %d: %w", leagueID, err)
	}
	return count, nil
}

// UpdateMembershipScore persists a membership's synced points and rank
func (r *LeagueRepository) UpdateMembershipScore(ctx context.Context, membershipID int64, points float64, rank int) error {
	query := `
		UPDATE league_memberships
		SET points = $1, rank = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, points, rank, membershipID)
	if err != nil {
		return fmt.Errorf("failed to update score for membership %d: %w", membershipID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %d not found", membershipID)
	}
	return nil
}

// UpdateMembershipPrize sets a membership's cumulative prizes won
func (r *LeagueRepository) UpdateMembershipPrize(ctx context.Context, membershipID int64, prizesWon int64) error {
	query := `
		UPDATE league_memberships
		SET prizes_won = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, prizesWon, membershipID)
	if err != nil {
		return fmt.Errorf("failed to update prize for membership %d: %w", membershipID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %d not found", membershipID)
	}
	return nil
}
