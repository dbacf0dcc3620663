package service

import (
	"context"

	"gridiron/events"
	"gridiron/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialCredits int64) (*models.User, error) {
	args := m.Called(ctx, username, initialCredits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddCredits(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DeductCredits(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTotalPoints(ctx context.Context, userID int64, totalPoints float64) error {
	args := m.Called(ctx, userID, totalPoints)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateGlobalRank(ctx context.Context, userID int64, rank int) error {
	args := m.Called(ctx, userID, rank)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Player, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) SetFinal(ctx context.Context, id int64, homeScore, awayScore int) error {
	args := m.Called(ctx, id, homeScore, awayScore)
	return args.Error(0)
}

// MockStatLineRepository is a mock implementation of StatLineRepository
type MockStatLineRepository struct {
	mock.Mock
}

func (m *MockStatLineRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.StatLine, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StatLine), args.Error(1)
}

func (m *MockStatLineRepository) GetByPlayerAndMatch(ctx context.Context, playerID, matchID int64) (*models.StatLine, error) {
	args := m.Called(ctx, playerID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatLine), args.Error(1)
}

func (m *MockStatLineRepository) Upsert(ctx context.Context, line *models.StatLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStatLineRepository) UpdateFantasyPoints(ctx context.Context, id int64, points float64) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

// MockRosterRepository is a mock implementation of RosterRepository
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) GetByID(ctx context.Context, id int64) (*models.Roster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.Roster, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roster), args.Error(1)
}

func (m *MockRosterRepository) GetSlots(ctx context.Context, rosterID int64) ([]*models.RosterSlot, error) {
	args := m.Called(ctx, rosterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RosterSlot), args.Error(1)
}

func (m *MockRosterRepository) CreateWithSlots(ctx context.Context, roster *models.Roster, slots []*models.RosterSlot) error {
	args := m.Called(ctx, roster, slots)
	return args.Error(0)
}

func (m *MockRosterRepository) UpdateScore(ctx context.Context, rosterID int64, totalPoints float64, rank int) error {
	args := m.Called(ctx, rosterID, totalPoints, rank)
	return args.Error(0)
}

func (m *MockRosterRepository) SumPointsByUser(ctx context.Context, userID int64) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

// MockLeagueRepository is a mock implementation of LeagueRepository
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) CreateWithTiers(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error {
	args := m.Called(ctx, league, tiers)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetByID(ctx context.Context, id int64) (*models.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueRepository) GetByMatch(ctx context.Context, matchID int64) ([]*models.League, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.League), args.Error(1)
}

func (m *MockLeagueRepository) GetDetailByID(ctx context.Context, id int64) (*models.LeagueDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueDetail), args.Error(1)
}

func (m *MockLeagueRepository) AddMembership(ctx context.Context, membership *models.LeagueMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockLeagueRepository) CountMemberships(ctx context.Context, leagueID int64) (int, error) {
	args := m.Called(ctx, leagueID)
	return args.Int(0), args.Error(1)
}

func (m *MockLeagueRepository) UpdateMembershipScore(ctx context.Context, membershipID int64, points float64, rank int) error {
	args := m.Called(ctx, membershipID, points, rank)
	return args.Error(0)
}

func (m *MockLeagueRepository) UpdateMembershipPrize(ctx context.Context, membershipID int64, prizesWon int64) error {
	args := m.Called(ctx, membershipID, prizesWon)
	return args.Error(0)
}

// MockCreditHistoryRepository is a mock implementation of CreditHistoryRepository
type MockCreditHistoryRepository struct {
	mock.Mock
}

func (m *MockCreditHistoryRepository) Record(ctx context.Context, history *models.CreditHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockCreditHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.CreditHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CreditHistory), args.Error(1)
}

// MockSettlementRepository is a mock implementation of SettlementRepository
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) CreateRun(ctx context.Context, run *models.SettlementRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockSettlementRepository) GetLeagueSettlement(ctx context.Context, leagueID, matchID int64) (*models.LeagueSettlement, error) {
	args := m.Called(ctx, leagueID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueSettlement), args.Error(1)
}

func (m *MockSettlementRepository) CreateLeagueSettlement(ctx context.Context, settlement *models.LeagueSettlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// discardPublisher drops events; used when a test does not care about them
type discardPublisher struct{}

func (discardPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Transaction lifecycle
// calls go through testify expectations; repository accessors return whatever
// SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock

	users         UserRepository
	players       PlayerRepository
	matches       MatchRepository
	statLines     StatLineRepository
	rosters       RosterRepository
	leagues       LeagueRepository
	creditHistory CreditHistoryRepository
	settlements   SettlementRepository
	eventBus      EventPublisher
}

// SetRepositories installs the repositories the unit of work hands out.
// Pass nil for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(
	users UserRepository,
	players PlayerRepository,
	matches MatchRepository,
	statLines StatLineRepository,
	rosters RosterRepository,
	leagues LeagueRepository,
	creditHistory CreditHistoryRepository,
	settlements SettlementRepository,
) {
	m.users = users
	m.players = players
	m.matches = matches
	m.statLines = statLines
	m.rosters = rosters
	m.leagues = leagues
	m.creditHistory = creditHistory
	m.settlements = settlements
}

// SetEventPublisher installs an event publisher; without one events are dropped
func (m *MockUnitOfWork) SetEventPublisher(pub EventPublisher) {
	m.eventBus = pub
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository { return m.users }

func (m *MockUnitOfWork) PlayerRepository() PlayerRepository { return m.players }

func (m *MockUnitOfWork) MatchRepository() MatchRepository { return m.matches }

func (m *MockUnitOfWork) StatLineRepository() StatLineRepository { return m.statLines }

func (m *MockUnitOfWork) RosterRepository() RosterRepository { return m.rosters }

func (m *MockUnitOfWork) LeagueRepository() LeagueRepository { return m.leagues }

func (m *MockUnitOfWork) CreditHistoryRepository() CreditHistoryRepository { return m.creditHistory }

func (m *MockUnitOfWork) SettlementRepository() SettlementRepository { return m.settlements }

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return discardPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) EnsureStatLines(ctx context.Context, matchID int64) (int, error) {
	args := m.Called(ctx, matchID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsService) RecomputeFantasyPoints(ctx context.Context, matchID int64) (int, error) {
	args := m.Called(ctx, matchID)
	return args.Int(0), args.Error(1)
}

// MockRosterService is a mock implementation of RosterService
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) AggregateRosters(ctx context.Context, matchID int64) ([]*models.Roster, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Roster), args.Error(1)
}

// MockLeaderboardService is a mock implementation of LeaderboardService
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) UpdateUserTotals(ctx context.Context, userIDs []int64) error {
	args := m.Called(ctx, userIDs)
	return args.Error(0)
}

func (m *MockLeaderboardService) UpdateGlobalRanks(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLeagueService is a mock implementation of LeagueService
type MockLeagueService struct {
	mock.Mock
}

func (m *MockLeagueService) CreateLeague(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error {
	args := m.Called(ctx, league, tiers)
	return args.Error(0)
}

func (m *MockLeagueService) JoinLeague(ctx context.Context, leagueID, userID int64, rosterID *int64) (*models.LeagueMembership, error) {
	args := m.Called(ctx, leagueID, userID, rosterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueMembership), args.Error(1)
}

func (m *MockLeagueService) SettleLeagues(ctx context.Context, matchID int64, settlementID uuid.UUID) *models.LeagueSettlementSummary {
	args := m.Called(ctx, matchID, settlementID)
	return args.Get(0).(*models.LeagueSettlementSummary)
}
