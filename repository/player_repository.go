package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"

	"github.com/jackc/pgx/v5"
)

// PlayerRepository implements the service.PlayerRepository interface
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := `SELECT id, name, team, position, created_at FROM players WHERE id = $1`

	var player models.Player
	err := r.q.QueryRow(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Team,
		&player.Position,
		&player.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return &player, nil
}

// GetByIDs retrieves players keyed by ID
func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Player, error) {
	players := make(map[int64]*models.Player, len(ids))
	if len(ids) == 0 {
		return players, nil
	}

	query := `SELECT id, name, team, position, created_at FROM players WHERE id = ANY($1)`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var player models.Player
		err := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Team,
			&player.Position,
			&player.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players[player.ID] = &player
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// Create creates a new player
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, team, position)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, player.Name, player.Team, player.Position).Scan(
		&player.ID,
		&player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}
	return nil
}
