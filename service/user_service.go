package service

import (
	"context"
	"fmt"
	"sort"

	"gridiron/config"
	"gridiron/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, cfg *config.Config) UserService {
	return &userService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one with initial credits
func (s *userService) GetOrCreateUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, username, s.config.StartingCredits)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	history := &models.CreditHistory{
		UserID:          user.ID,
		BalanceBefore:   0,
		BalanceAfter:    user.Credits,
		ChangeAmount:    user.Credits,
		TransactionType: models.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"username": username,
		},
	}
	if err := RecordCreditChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record initial credits: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetLeaderboard returns the top users by global rank
func (s *userService) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	// Unranked users (rank 0) sort after everyone with a rank
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].GlobalRank == 0 {
			return false
		}
		if users[j].GlobalRank == 0 {
			return true
		}
		return users[i].GlobalRank < users[j].GlobalRank
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
