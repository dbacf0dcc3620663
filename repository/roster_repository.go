package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// RosterRepository implements the service.RosterRepository interface
type RosterRepository struct {
	q queryable
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *database.DB) *RosterRepository {
	return &RosterRepository{q: db.Pool}
}

func newRosterRepositoryWithTx(tx queryable) *RosterRepository {
	return &RosterRepository{q: tx}
}

const rosterColumns = `id, user_id, match_id, name, acquisition_cost, total_points, rank, created_at`

func scanRoster(row pgx.Row) (*models.Roster, error) {
	var roster models.Roster
	err := row.Scan(
		&roster.ID,
		&roster.UserID,
		&roster.MatchID,
		&roster.Name,
		&roster.AcquisitionCost,
		&roster.TotalPoints,
		&roster.Rank,
		&roster.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

// GetByID retrieves a roster by ID
func (r *RosterRepository) GetByID(ctx context.Context, id int64) (*models.Roster, error) {
	query := `SELECT ` + rosterColumns + ` FROM rosters WHERE id = $1`

	roster, err := scanRoster(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster %d: %w", id, err)
	}
	return roster, nil
}

// GetByMatch returns all rosters bound to a match, ordered by creation.
// The creation order doubles as the documented rank tie-break.
func (r *RosterRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.Roster, error) {
	query := `SELECT ` + rosterColumns + ` FROM rosters WHERE match_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rosters for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var rosters []*models.Roster
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, roster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rosters: %w", err)
	}
	return rosters, nil
}

// GetSlots returns the slots of a roster
func (r *RosterRepository) GetSlots(ctx context.Context, rosterID int64) ([]*models.RosterSlot, error) {
	query := `
		SELECT id, roster_id, player_id, slot, created_at
		FROM roster_slots
		WHERE roster_id = $1
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots for roster %d: %w", rosterID, err)
	}
	defer rows.Close()

	var slots []*models.RosterSlot
	for rows.Next() {
		var slot models.RosterSlot
		err := rows.Scan(
			&slot.ID,
			&slot.RosterID,
			&slot.PlayerID,
			&slot.Slot,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster slot: %w", err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster slots: %w", err)
	}
	return slots, nil
}

// CreateWithSlots creates a roster and its slots atomically
func (r *RosterRepository) CreateWithSlots(ctx context.Context, roster *models.Roster, slots []*models.RosterSlot) error {
	query := `
		INSERT INTO rosters (user_id, match_id, name, acquisition_cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id, total_points, rank, created_at
	`

	err := r.q.QueryRow(ctx, query,
		roster.UserID,
		roster.MatchID,
		roster.Name,
		roster.AcquisitionCost,
	).Scan(&roster.ID, &roster.TotalPoints, &roster.Rank, &roster.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create roster: %w", err)
	}

	slotQuery := `
		INSERT INTO roster_slots (roster_id, player_id, slot)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	for _, slot := range slots {
		slot.RosterID = roster.ID
		err := r.q.QueryRow(ctx, slotQuery, slot.RosterID, slot.PlayerID, slot.Slot).
			Scan(&slot.ID, &slot.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create roster slot %q: %w", slot.Slot, err)
		}
	}
	return nil
}

// UpdateScore persists a roster's recomputed total points and rank
func (r *RosterRepository) UpdateScore(ctx context.Context, rosterID int64, totalPoints float64, rank int) error {
	query := `
		UPDATE rosters
		SET total_points = $1, rank = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, totalPoints, rank, rosterID)
	if err != nil {
		return fmt.Errorf("failed to update score for roster %d: %w", rosterID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("roster %d not found", rosterID)
	}
	return nil
}

// SumPointsByUser returns the sum of total points over all rosters owned by a user
func (r *RosterRepository) SumPointsByUser(ctx context.Context, userID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_points), 0)
		FROM rosters
		WHERE user_id = $1
	`

	var total float64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum roster points for user %d: %w", userID, err)
	}
	return total, nil
}
