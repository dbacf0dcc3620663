package service

import (
	"context"
	"errors"
	"testing"

	"gridiron/config"
	"gridiron/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		StartingCredits:      1000,
		SimulateMissingStats: true,
		Environment:          "test",
	}
}

func TestUserService_GetOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockHistoryRepo := new(MockCreditHistoryRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockHistoryRepo, nil)

	service := NewUserService(mockFactory, testConfig())

	existingUser := &models.User{
		ID:       1,
		Username: "alice",
		Credits:  500,
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit() expected since user exists and no changes are made

	mockUserRepo.On("GetByUsername", ctx, "alice").Return(existingUser, nil)

	user, err := service.GetOrCreateUser(ctx, "alice")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockHistoryRepo.AssertNotCalled(t, "Record")
}

func TestUserService_GetOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockHistoryRepo := new(MockCreditHistoryRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockHistoryRepo, nil)

	service := NewUserService(mockFactory, testConfig())

	newUser := &models.User{
		ID:       7,
		Username: "bob",
		Credits:  1000,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// User doesn't exist on first check
	mockUserRepo.On("GetByUsername", ctx, "bob").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "bob", int64(1000)).Return(newUser, nil)

	// Initial credits go through the ledger
	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.CreditHistory) bool {
		return h.UserID == 7 &&
			h.BalanceBefore == 0 &&
			h.BalanceAfter == 1000 &&
			h.ChangeAmount == 1000 &&
			h.TransactionType == models.TransactionTypeInitial
	})).Return(nil)

	user, err := service.GetOrCreateUser(ctx, "bob")

	assert.NoError(t, err)
	assert.Equal(t, newUser, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_EmptyUsername(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewUserService(mockFactory, testConfig())

	user, err := service.GetOrCreateUser(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, user)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestUserService_GetOrCreateUser_CreateError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockHistoryRepo := new(MockCreditHistoryRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockHistoryRepo, nil)

	service := NewUserService(mockFactory, testConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "carol").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "carol", int64(1000)).Return(nil, errors.New("database error"))

	user, err := service.GetOrCreateUser(ctx, "carol")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "failed to create user")

	mockUoW.AssertNotCalled(t, "Commit")
	mockHistoryRepo.AssertNotCalled(t, "Record")
}

func TestUserService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory, testConfig())

	users := []*models.User{
		{ID: 1, Username: "unranked", GlobalRank: 0},
		{ID: 2, Username: "second", GlobalRank: 2},
		{ID: 3, Username: "first", GlobalRank: 1},
		{ID: 4, Username: "third", GlobalRank: 3},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetAll", ctx).Return(users, nil)

	top, err := service.GetLeaderboard(ctx, 3)

	assert.NoError(t, err)
	assert.Len(t, top, 3)
	assert.Equal(t, "first", top[0].Username)
	assert.Equal(t, "second", top[1].Username)
	assert.Equal(t, "third", top[2].Username)
}
