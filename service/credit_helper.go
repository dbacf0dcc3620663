package service

import (
	"context"
	"fmt"

	"gridiron/events"
	"gridiron/models"
)

// RecordCreditChange records a credit history entry and emits appropriate events.
// This is the single entry point for all credits changes in the system.
func RecordCreditChange(ctx context.Context, uow UnitOfWork, history *models.CreditHistory) error {
	// Record the credit history
	if err := uow.CreditHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record credit history: %w", err)
	}

	// Emit credits change event (will be flushed after transaction commits)
	event := events.CreditsChangeEvent{
		UserID:          history.UserID,
		OldCredits:      history.BalanceBefore,
		NewCredits:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	}
	uow.EventBus().Publish(event)

	// Also emit user created event if this is initial credits
	if history.TransactionType == models.TransactionTypeInitial {
		if username, ok := history.TransactionMetadata["username"].(string); ok {
			userCreatedEvent := events.UserCreatedEvent{
				UserID:         history.UserID,
				Username:       username,
				InitialCredits: history.BalanceAfter,
			}
			uow.EventBus().Publish(userCreatedEvent)
		}
	}

	return nil
}

func relatedTypePtr(t models.RelatedType) *models.RelatedType {
	return &t
}
