package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// StatLineRepository implements the service.StatLineRepository interface
type StatLineRepository struct {
	q queryable
}

// NewStatLineRepository creates a new stat line repository
func NewStatLineRepository(db *database.DB) *StatLineRepository {
	return &StatLineRepository{q: db.Pool}
}

func newStatLineRepositoryWithTx(tx queryable) *StatLineRepository {
	return &StatLineRepository{q: tx}
}

const statLineColumns = `
	id, player_id, match_id,
	passing_yards, passing_tds, interceptions,
	rushing_yards, rushing_tds,
	receptions, receiving_yards, receiving_tds,
	fumbles_lost,
	field_goals_made, field_goals_attempted,
	sacks, defensive_interceptions, defensive_tds,
	fantasy_points, simulated, created_at, updated_at`

func scanStatLine(row pgx.Row) (*models.StatLine, error) {
	var line models.StatLine
	err := row.Scan(
		&line.ID, &line.PlayerID, &line.MatchID,
		&line.PassingYards, &line.PassingTDs, &line.Interceptions,
		&line.RushingYards, &line.RushingTDs,
		&line.Receptions, &line.ReceivingYards, &line.ReceivingTDs,
		&line.FumblesLost,
		&line.FieldGoalsMade, &line.FieldGoalsAttempted,
		&line.Sacks, &line.DefensiveInterceptions, &line.DefensiveTDs,
		&line.FantasyPoints, &line.Simulated, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// GetByMatch returns all stat lines recorded for a match
func (r *StatLineRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.StatLine, error) {
	query := `SELECT ` + statLineColumns + ` FROM stat_lines WHERE match_id = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stat lines for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var lines []*models.StatLine
	for rows.Next() {
		line, err := scanStatLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stat line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stat lines: %w", err)
	}
	return lines, nil
}

// GetByPlayerAndMatch retrieves the unique stat line for a (player, match) pair
func (r *StatLineRepository) GetByPlayerAndMatch(ctx context.Context, playerID, matchID int64) (*models.StatLine, error) {
	query := `SELECT ` + statLineColumns + ` FROM stat_lines WHERE player_id = $1 AND match_id = $2`

	line, err := scanStatLine(r.q.QueryRow(ctx, query, playerID, matchID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stat line for player %d match %d: %w", playerID, matchID, err)
	}
	return line, nil
}

// Upsert inserts a stat line or replaces the existing (player, match) row
func (r *StatLineRepository) Upsert(ctx context.Context, line *models.StatLine) error {
	query := `
		INSERT INTO stat_lines (
			player_id, match_id,
			passing_yards, passing_tds, interceptions,
			rushing_yards, rushing_tds,
			receptions, receiving_yards, receiving_tds,
			fumbles_lost,
			field_goals_made, field_goals_attempted,
			sacks, defensive_interceptions, defensive_tds,
			fantasy_points, simulated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (player_id, match_id) DO UPDATE SET
			passing_yards = EXCLUDED.passing_yards,
			passing_tds = EXCLUDED.passing_tds,
			interceptions = EXCLUDED.interceptions,
			rushing_yards = EXCLUDED.rushing_yards,
			rushing_tds = EXCLUDED.rushing_tds,
			receptions = EXCLUDED.receptions,
			receiving_yards = EXCLUDED.receiving_yards,
			receiving_tds = EXCLUDED.receiving_tds,
			fumbles_lost = EXCLUDED.fumbles_lost,
			field_goals_made = EXCLUDED.field_goals_made,
			field_goals_attempted = EXCLUDED.field_goals_attempted,
			sacks = EXCLUDED.sacks,
			defensive_interceptions = EXCLUDED.defensive_interceptions,
			defensive_tds = EXCLUDED.defensive_tds,
			fantasy_points = EXCLUDED.fantasy_points,
			simulated = EXCLUDED.simulated,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		line.PlayerID, line.MatchID,
		line.PassingYards, line.PassingTDs, line.Interceptions,
		line.RushingYards, line.RushingTDs,
		line.Receptions, line.ReceivingYards, line.ReceivingTDs,
		line.FumblesLost,
		line.FieldGoalsMade, line.FieldGoalsAttempted,
		line.Sacks, line.DefensiveInterceptions, line.DefensiveTDs,
		line.FantasyPoints, line.Simulated,
	).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert stat line for player %d match %d: %w", line.PlayerID, line.MatchID, err)
	}
	return nil
}

// UpdateFantasyPoints persists the cached fantasy point value for a line
func (r *StatLineRepository) UpdateFantasyPoints(ctx context.Context, id int64, points float64) error {
	query := `
		UPDATE stat_lines
		SET fantasy_points = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, points, id)
	if err != nil {
		return fmt.Errorf("failed to update fantasy points for stat line %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("stat line %d not found", id)
	}
	return nil
}
