package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/models"
)

// CreditHistoryRepository implements the service.CreditHistoryRepository interface
type CreditHistoryRepository struct {
	q queryable
}

// NewCreditHistoryRepository creates a new credit history repository
func NewCreditHistoryRepository(db *database.DB) *CreditHistoryRepository {
	return &CreditHistoryRepository{q: db.Pool}
}

func newCreditHistoryRepositoryWithTx(tx queryable) *CreditHistoryRepository {
	return &CreditHistoryRepository{q: tx}
}

// Record creates a new credit history entry
func (r *CreditHistoryRepository) Record(ctx context.Context, history *models.CreditHistory) error {
	query := `
		INSERT INTO credit_history (
			user_id, balance_before, balance_after, change_amount,
			transaction_type, transaction_metadata, related_id, related_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		history.UserID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		history.TransactionMetadata,
		history.RelatedID,
		history.RelatedType,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record credit history for user %d: %w", history.UserID, err)
	}
	return nil
}

// GetByUser returns credit history for a specific user, newest first
func (r *CreditHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.CreditHistory, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, related_id, related_type, created_at
		FROM credit_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.CreditHistory
	for rows.Next() {
		var h models.CreditHistory
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.BalanceBefore,
			&h.BalanceAfter,
			&h.ChangeAmount,
			&h.TransactionType,
			&h.TransactionMetadata,
			&h.RelatedID,
			&h.RelatedType,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit history: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit history: %w", err)
	}
	return entries, nil
}
