package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// MatchRepository implements the service.MatchRepository interface
type MatchRepository struct {
	q queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

func newMatchRepositoryWithTx(tx queryable) *MatchRepository {
	return &MatchRepository{q: tx}
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := `
		SELECT id, home_team, away_team, home_score, away_score, final, created_at
		FROM matches
		WHERE id = $1
	`

	var match models.Match
	err := r.q.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.HomeScore,
		&match.AwayScore,
		&match.Final,
		&match.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return &match, nil
}

// Create creates a new match
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (home_team, away_team, home_score, away_score, final)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		match.HomeTeam,
		match.AwayTeam,
		match.HomeScore,
		match.AwayScore,
		match.Final,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// SetFinal records the final score of a match
func (r *MatchRepository) SetFinal(ctx context.Context, id int64, homeScore, awayScore int) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, final = TRUE
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return fmt.Errorf("failed to finalize match %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", id)
	}
	return nil
}
