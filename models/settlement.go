package models

import (
	"time"

	"github.com/google/uuid"
)

// SettlementRun is the audit record of one settle() invocation for a match
type SettlementRun struct {
	ID             uuid.UUID `db:"id"`
	MatchID        int64     `db:"match_id"`
	UsersUpdated   int       `db:"users_updated"`
	RostersScored  int       `db:"rosters_scored"`
	LeaguesSettled int       `db:"leagues_settled"`
	LeaguesFailed  int       `db:"leagues_failed"`
	CreatedAt      time.Time `db:"created_at"`
}

// LeagueSettlement marks a (league, match) pair whose prizes have been paid.
// Its presence makes re-running settlement safe: ranks are refreshed but no
// credits move a second time.
type LeagueSettlement struct {
	ID           int64     `db:"id"`
	LeagueID     int64     `db:"league_id"`
	MatchID      int64     `db:"match_id"`
	SettlementID uuid.UUID `db:"settlement_id"`
	TotalPaid    int64     `db:"total_paid"`
	CreatedAt    time.Time `db:"created_at"`
}

// LeagueFailure describes one league that could not be settled
type LeagueFailure struct {
	LeagueID int64
	Err      error
}

// LeagueSettlementSummary aggregates the outcome of settling every league
// bound to one match
type LeagueSettlementSummary struct {
	LeaguesSettled int
	AlreadyPaid    int
	TotalPaid      int64
	Failures       []LeagueFailure
}

// SettlementReport is the result of the settlement pipeline for one match
type SettlementReport struct {
	SettlementID   uuid.UUID
	MatchID        int64
	StatLinesFinal int
	RostersScored  int
	UsersUpdated   int
	LeaguesSettled int
	Failures       []LeagueFailure
}
