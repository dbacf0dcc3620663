package service

import (
	"context"
	"testing"

	"gridiron/models"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardService_UpdateUserTotals(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockRosterRepo := new(MockRosterRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, mockRosterRepo, nil, nil, nil)

	service := NewLeaderboardService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Totals come from all rosters a user owns, across every match
	mockRosterRepo.On("SumPointsByUser", ctx, int64(1)).Return(48.5, nil)
	mockRosterRepo.On("SumPointsByUser", ctx, int64(2)).Return(0.0, nil)
	mockUserRepo.On("UpdateTotalPoints", ctx, int64(1), 48.5).Return(nil)
	mockUserRepo.On("UpdateTotalPoints", ctx, int64(2), 0.0).Return(nil)

	err := service.UpdateUserTotals(ctx, []int64{1, 2})

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockRosterRepo.AssertExpectations(t)
}

func TestLeaderboardService_UpdateGlobalRanks(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewLeaderboardService(mockFactory)

	// GetAll returns account-creation order; users 2 and 3 are tied, so the
	// older account (2) ranks higher
	users := []*models.User{
		{ID: 1, Username: "low", TotalPoints: 10.0},
		{ID: 2, Username: "tied-older", TotalPoints: 50.0},
		{ID: 3, Username: "tied-newer", TotalPoints: 50.0},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetAll", ctx).Return(users, nil)
	mockUserRepo.On("UpdateGlobalRank", ctx, int64(2), 1).Return(nil)
	mockUserRepo.On("UpdateGlobalRank", ctx, int64(3), 2).Return(nil)
	mockUserRepo.On("UpdateGlobalRank", ctx, int64(1), 3).Return(nil)

	err := service.UpdateGlobalRanks(ctx)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}
