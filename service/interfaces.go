package service

import (
	"context"

	"gridiron/events"
	"gridiron/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with the initial credits
	Create(ctx context.Context, username string, initialCredits int64) (*models.User, error)

	// AddCredits adds to a user's credits atomically
	AddCredits(ctx context.Context, userID int64, amount int64) error

	// DeductCredits deducts from a user's credits atomically, failing if insufficient funds
	DeductCredits(ctx context.Context, userID int64, amount int64) error

	// UpdateTotalPoints sets a user's cross-match fantasy point total
	UpdateTotalPoints(ctx context.Context, userID int64, totalPoints float64) error

	// UpdateGlobalRank sets a user's global leaderboard rank
	UpdateGlobalRank(ctx context.Context, userID int64, rank int) error

	// GetAll returns all users ordered by account creation
	GetAll(ctx context.Context) ([]*models.User, error)
}

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// GetByID retrieves a player by ID
	GetByID(ctx context.Context, id int64) (*models.Player, error)

	// GetByIDs retrieves players keyed by ID
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Player, error)

	// Create creates a new player
	Create(ctx context.Context, player *models.Player) error
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// GetByID retrieves a match by ID
	GetByID(ctx context.Context, id int64) (*models.Match, error)

	// Create creates a new match
	Create(ctx context.Context, match *models.Match) error

	// SetFinal records the final score of a match
	SetFinal(ctx context.Context, id int64, homeScore, awayScore int) error
}

// StatLineRepository defines the interface for stat line data access
type StatLineRepository interface {
	// GetByMatch returns all stat lines recorded for a match
	GetByMatch(ctx context.Context, matchID int64) ([]*models.StatLine, error)

	// GetByPlayerAndMatch retrieves the unique stat line for a (player, match) pair
	GetByPlayerAndMatch(ctx context.Context, playerID, matchID int64) (*models.StatLine, error)

	// Upsert inserts a stat line or replaces the existing (player, match) row
	Upsert(ctx context.Context, line *models.StatLine) error

	// UpdateFantasyPoints persists the cached fantasy point value for a line
	UpdateFantasyPoints(ctx context.Context, id int64, points float64) error
}

// RosterRepository defines the interface for roster data access
type RosterRepository interface {
	// GetByID retrieves a roster by ID
	GetByID(ctx context.Context, id int64) (*models.Roster, error)

	// GetByMatch returns all rosters bound to a match, ordered by creation
	GetByMatch(ctx context.Context, matchID int64) ([]*models.Roster, error)

	// GetSlots returns the slots of a roster
	GetSlots(ctx context.Context, rosterID int64) ([]*models.RosterSlot, error)

	// CreateWithSlots creates a roster and its slots atomically
	CreateWithSlots(ctx context.Context, roster *models.Roster, slots []*models.RosterSlot) error

	// UpdateScore persists a roster's recomputed total points and rank
	UpdateScore(ctx context.Context, rosterID int64, totalPoints float64, rank int) error

	// SumPointsByUser returns the sum of total points over all rosters owned by a user
	SumPointsByUser(ctx context.Context, userID int64) (float64, error)
}

// LeagueRepository defines the interface for league data access
type LeagueRepository interface {
	// CreateWithTiers creates a league and its prize distribution table atomically
	CreateWithTiers(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error

	// GetByID retrieves a league by ID
	GetByID(ctx context.Context, id int64) (*models.League, error)

	// GetByMatch returns all leagues bound to a match
	GetByMatch(ctx context.Context, matchID int64) ([]*models.League, error)

	// GetDetailByID returns a league with its prize table and memberships,
	// memberships ordered by join order
	GetDetailByID(ctx context.Context, id int64) (*models.LeagueDetail, error)

	// AddMembership creates a league membership
	AddMembership(ctx context.Context, membership *models.LeagueMembership) error

	// CountMemberships returns the number of memberships in a league
	CountMemberships(ctx context.Context, leagueID int64) (int, error)

	// UpdateMembershipScore persists a membership's synced points and rank
	UpdateMembershipScore(ctx context.Context, membershipID int64, points float64, rank int) error

	// UpdateMembershipPrize sets a membership's cumulative prizes won
	UpdateMembershipPrize(ctx context.Context, membershipID int64, prizesWon int64) error
}

// CreditHistoryRepository defines the interface for credits ledger tracking
type CreditHistoryRepository interface {
	// Record creates a new credit history entry
	Record(ctx context.Context, history *models.CreditHistory) error

	// GetByUser returns credit history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.CreditHistory, error)
}

// SettlementRepository defines the interface for settlement bookkeeping
type SettlementRepository interface {
	// CreateRun records the audit row for one settlement invocation
	CreateRun(ctx context.Context, run *models.SettlementRun) error

	// GetLeagueSettlement returns the paid marker for a (league, match) pair, if any
	GetLeagueSettlement(ctx context.Context, leagueID, matchID int64) (*models.LeagueSettlement, error)

	// CreateLeagueSettlement records that a league's prizes were paid for a match
	CreateLeagueSettlement(ctx context.Context, settlement *models.LeagueSettlement) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents an atomic set of repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// UserRepository returns the user repository bound to this transaction
	UserRepository() UserRepository

	// PlayerRepository returns the player repository bound to this transaction
	PlayerRepository() PlayerRepository

	// MatchRepository returns the match repository bound to this transaction
	MatchRepository() MatchRepository

	// StatLineRepository returns the stat line repository bound to this transaction
	StatLineRepository() StatLineRepository

	// RosterRepository returns the roster repository bound to this transaction
	RosterRepository() RosterRepository

	// LeagueRepository returns the league repository bound to this transaction
	LeagueRepository() LeagueRepository

	// CreditHistoryRepository returns the ledger repository bound to this transaction
	CreditHistoryRepository() CreditHistoryRepository

	// SettlementRepository returns the settlement repository bound to this transaction
	SettlementRepository() SettlementRepository

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a new one with initial credits
	GetOrCreateUser(ctx context.Context, username string) (*models.User, error)

	// GetLeaderboard returns the top users by global rank
	GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error)
}

// StatsService defines the interface for stat line maintenance
type StatsService interface {
	// EnsureStatLines simulates a stat line for every rostered player in the
	// match that has none, so settlement can proceed without an authoritative
	// stats provider
	EnsureStatLines(ctx context.Context, matchID int64) (int, error)

	// RecomputeFantasyPoints recalculates and persists the fantasy point cache
	// for every stat line of the match
	RecomputeFantasyPoints(ctx context.Context, matchID int64) (int, error)
}

// RosterService defines the interface for roster aggregation
type RosterService interface {
	// AggregateRosters recomputes total points and rank for every roster bound
	// to the match
	AggregateRosters(ctx context.Context, matchID int64) ([]*models.Roster, error)
}

// LeaderboardService defines the interface for the global leaderboard
type LeaderboardService interface {
	// UpdateUserTotals recomputes the cross-match point total for each user
	UpdateUserTotals(ctx context.Context, userIDs []int64) error

	// UpdateGlobalRanks reranks every user by total points
	UpdateGlobalRanks(ctx context.Context) error
}

// LeagueService defines the interface for league configuration and settlement
type LeagueService interface {
	// CreateLeague creates a league after validating its prize distribution
	CreateLeague(ctx context.Context, league *models.League, tiers []*models.PrizeTier) error

	// JoinLeague adds a user to a league with a bound roster, charging the entry fee
	JoinLeague(ctx context.Context, leagueID, userID int64, rosterID *int64) (*models.LeagueMembership, error)

	// SettleLeagues ranks memberships and distributes prizes for every league
	// bound to the match
	SettleLeagues(ctx context.Context, matchID int64, settlementID uuid.UUID) *models.LeagueSettlementSummary
}

// SettlementService defines the interface for the settlement pipeline
type SettlementService interface {
	// Settle runs the full settlement pipeline for a completed match
	Settle(ctx context.Context, matchID int64) (*models.SettlementReport, error)
}
