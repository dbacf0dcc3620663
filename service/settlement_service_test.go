package service

import (
	"context"
	"testing"

	"gridiron/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettlementService_Settle_RunsFullPipeline(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockSettlementRepo := new(MockSettlementRepository)

	mockUoW.SetRepositories(nil, nil, mockMatchRepo, nil, nil, nil, nil, mockSettlementRepo)

	mockStats := new(MockStatsService)
	mockRosters := new(MockRosterService)
	mockLeaderboard := new(MockLeaderboardService)
	mockLeagues := new(MockLeagueService)

	service := NewSettlementService(mockFactory, mockStats, mockRosters, mockLeaderboard, mockLeagues)

	match := &models.Match{ID: 5, HomeTeam: "NE", AwayTeam: "NYJ", HomeScore: 24, AwayScore: 17, Final: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockMatchRepo.On("GetByID", ctx, int64(5)).Return(match, nil)

	mockStats.On("EnsureStatLines", ctx, int64(5)).Return(3, nil)
	mockStats.On("RecomputeFantasyPoints", ctx, int64(5)).Return(8, nil)

	// Two rosters from the same user plus one from another: two distinct users
	rosters := []*models.Roster{
		{ID: 10, UserID: 1, MatchID: 5, TotalPoints: 30.5, Rank: 1},
		{ID: 20, UserID: 2, MatchID: 5, TotalPoints: 18.0, Rank: 2},
		{ID: 30, UserID: 1, MatchID: 5, TotalPoints: 12.0, Rank: 3},
	}
	mockRosters.On("AggregateRosters", ctx, int64(5)).Return(rosters, nil)

	mockLeaderboard.On("UpdateUserTotals", ctx, []int64{1, 2}).Return(nil)
	mockLeaderboard.On("UpdateGlobalRanks", ctx).Return(nil)

	mockLeagues.On("SettleLeagues", ctx, int64(5), mock.AnythingOfType("uuid.UUID")).Return(&models.LeagueSettlementSummary{
		LeaguesSettled: 1,
		TotalPaid:      50,
	})

	mockSettlementRepo.On("CreateRun", ctx, mock.MatchedBy(func(run *models.SettlementRun) bool {
		return run.MatchID == 5 &&
			run.UsersUpdated == 2 &&
			run.RostersScored == 3 &&
			run.LeaguesSettled == 1 &&
			run.LeaguesFailed == 0
	})).Return(nil)

	report, err := service.Settle(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), report.MatchID)
	assert.Equal(t, 8, report.StatLinesFinal)
	assert.Equal(t, 3, report.RostersScored)
	assert.Equal(t, 2, report.UsersUpdated)
	assert.Equal(t, 1, report.LeaguesSettled)
	assert.Empty(t, report.Failures)
	assert.NotEqual(t, report.SettlementID.String(), "00000000-0000-0000-0000-000000000000")

	mockStats.AssertExpectations(t)
	mockRosters.AssertExpectations(t)
	mockLeaderboard.AssertExpectations(t)
	mockLeagues.AssertExpectations(t)
	mockSettlementRepo.AssertExpectations(t)
}

func TestSettlementService_Settle_MatchNotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, mockMatchRepo, nil, nil, nil, nil, nil)

	mockStats := new(MockStatsService)
	service := NewSettlementService(mockFactory, mockStats, new(MockRosterService), new(MockLeaderboardService), new(MockLeagueService))

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockMatchRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	report, err := service.Settle(ctx, 99)

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "not found")
	mockStats.AssertNotCalled(t, "EnsureStatLines", mock.Anything, mock.Anything)
}

func TestSettlementService_Settle_MatchNotFinal(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, mockMatchRepo, nil, nil, nil, nil, nil)

	mockStats := new(MockStatsService)
	service := NewSettlementService(mockFactory, mockStats, new(MockRosterService), new(MockLeaderboardService), new(MockLeagueService))

	inProgress := &models.Match{ID: 5, HomeTeam: "NE", AwayTeam: "NYJ", Final: false}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockMatchRepo.On("GetByID", ctx, int64(5)).Return(inProgress, nil)

	report, err := service.Settle(ctx, 5)

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "not final")
	mockStats.AssertNotCalled(t, "EnsureStatLines", mock.Anything, mock.Anything)
}

func TestSettlementService_Settle_LeagueFailuresAreReportedNotFatal(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockSettlementRepo := new(MockSettlementRepository)

	mockUoW.SetRepositories(nil, nil, mockMatchRepo, nil, nil, nil, nil, mockSettlementRepo)

	mockStats := new(MockStatsService)
	mockRosters := new(MockRosterService)
	mockLeaderboard := new(MockLeaderboardService)
	mockLeagues := new(MockLeagueService)

	service := NewSettlementService(mockFactory, mockStats, mockRosters, mockLeaderboard, mockLeagues)

	match := &models.Match{ID: 5, Final: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockMatchRepo.On("GetByID", ctx, int64(5)).Return(match, nil)

	mockStats.On("EnsureStatLines", ctx, int64(5)).Return(0, nil)
	mockStats.On("RecomputeFantasyPoints", ctx, int64(5)).Return(0, nil)
	mockRosters.On("AggregateRosters", ctx, int64(5)).Return([]*models.Roster{}, nil)
	mockLeaderboard.On("UpdateUserTotals", ctx, []int64(nil)).Return(nil)
	mockLeaderboard.On("UpdateGlobalRanks", ctx).Return(nil)

	mockLeagues.On("SettleLeagues", ctx, int64(5), mock.AnythingOfType("uuid.UUID")).Return(&models.LeagueSettlementSummary{
		Failures: []models.LeagueFailure{
			{LeagueID: 3, Err: assert.AnError},
		},
	})

	mockSettlementRepo.On("CreateRun", ctx, mock.MatchedBy(func(run *models.SettlementRun) bool {
		return run.LeaguesFailed == 1
	})).Return(nil)

	report, err := service.Settle(ctx, 5)

	assert.NoError(t, err)
	assert.Len(t, report.Failures, 1)
	assert.Equal(t, int64(3), report.Failures[0].LeagueID)
}
