package service

import (
	"context"
	"testing"

	"gridiron/config"
	"gridiron/models"
	"gridiron/simulator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_EnsureStatLines_SimulatesOnlyMissingPlayers(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockPlayerRepo := new(MockPlayerRepository)
	mockRosterRepo := new(MockRosterRepository)
	mockStatLineRepo := new(MockStatLineRepository)

	mockUoW.SetRepositories(nil, mockPlayerRepo, mockMatchRepo, mockStatLineRepo, mockRosterRepo, nil, nil, nil)

	service := NewStatsService(mockFactory, simulator.NewSeeded(42), testConfig())

	match := &models.Match{ID: 5, HomeTeam: "NE", AwayTeam: "NYJ", HomeScore: 24, AwayScore: 17, Final: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, int64(5)).Return(match, nil)
	mockRosterRepo.On("GetByMatch", ctx, int64(5)).Return([]*models.Roster{
		{ID: 10, UserID: 1, MatchID: 5},
	}, nil)
	// Player 100 already has a line; 101 does not
	mockStatLineRepo.On("GetByMatch", ctx, int64(5)).Return([]*models.StatLine{
		{ID: 1, PlayerID: 100, MatchID: 5, FantasyPoints: 22.0},
	}, nil)
	mockRosterRepo.On("GetSlots", ctx, int64(10)).Return([]*models.RosterSlot{
		{RosterID: 10, PlayerID: 100, Slot: "QB"},
		{RosterID: 10, PlayerID: 101, Slot: "RB"},
	}, nil)
	mockPlayerRepo.On("GetByIDs", ctx, []int64{101}).Return(map[int64]*models.Player{
		101: {ID: 101, Name: "Test Back", Team: "NYJ", Position: models.PositionRB},
	}, nil)

	mockStatLineRepo.On("Upsert", ctx, mock.MatchedBy(func(line *models.StatLine) bool {
		return line.PlayerID == 101 &&
			line.MatchID == 5 &&
			line.Simulated &&
			line.PassingYards == 0
	})).Return(nil)

	created, err := service.EnsureStatLines(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 1, created)
	mockStatLineRepo.AssertExpectations(t)
	mockPlayerRepo.AssertExpectations(t)
}

func TestStatsService_EnsureStatLines_DisabledByConfig(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	cfg := &config.Config{SimulateMissingStats: false, Environment: "test"}
	service := NewStatsService(mockFactory, simulator.NewSeeded(42), cfg)

	created, err := service.EnsureStatLines(ctx, 5)

	assert.NoError(t, err)
	assert.Zero(t, created)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestStatsService_EnsureStatLines_NothingMissing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockRosterRepo := new(MockRosterRepository)
	mockStatLineRepo := new(MockStatLineRepository)

	mockUoW.SetRepositories(nil, nil, mockMatchRepo, mockStatLineRepo, mockRosterRepo, nil, nil, nil)

	service := NewStatsService(mockFactory, simulator.NewSeeded(42), testConfig())

	match := &models.Match{ID: 5, Final: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, int64(5)).Return(match, nil)
	mockRosterRepo.On("GetByMatch", ctx, int64(5)).Return([]*models.Roster{
		{ID: 10, MatchID: 5},
	}, nil)
	mockStatLineRepo.On("GetByMatch", ctx, int64(5)).Return([]*models.StatLine{
		{ID: 1, PlayerID: 100, MatchID: 5},
	}, nil)
	mockRosterRepo.On("GetSlots", ctx, int64(10)).Return([]*models.RosterSlot{
		{RosterID: 10, PlayerID: 100, Slot: "QB"},
	}, nil)

	created, err := service.EnsureStatLines(ctx, 5)

	assert.NoError(t, err)
	assert.Zero(t, created)
	mockStatLineRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestStatsService_RecomputeFantasyPoints(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockStatLineRepo := new(MockStatLineRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockStatLineRepo, nil, nil, nil, nil)

	service := NewStatsService(mockFactory, simulator.NewSeeded(42), testConfig())

	lines := []*models.StatLine{
		// 300 yards, 3 TDs, 1 INT scores 22.0; the stale cache gets replaced
		{ID: 1, PlayerID: 100, MatchID: 5, PassingYards: 300, PassingTDs: 3, Interceptions: 1, FantasyPoints: 99.0},
		// 87 rushing yards, 1 TD scores 14.0
		{ID: 2, PlayerID: 101, MatchID: 5, RushingYards: 87, RushingTDs: 1},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockStatLineRepo.On("GetByMatch", ctx, int64(5)).Return(lines, nil)
	mockStatLineRepo.On("UpdateFantasyPoints", ctx, int64(1), 22.0).Return(nil)
	mockStatLineRepo.On("UpdateFantasyPoints", ctx, int64(2), 14.0).Return(nil)

	updated, err := service.RecomputeFantasyPoints(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, 22.0, lines[0].FantasyPoints)
	mockStatLineRepo.AssertExpectations(t)
}
