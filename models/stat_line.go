package models

import (
	"time"
)

// StatLine holds one player's raw counting statistics for one match.
// Unique per (player, match). FantasyPoints is a cache derived from the
// raw fields by the scoring package, never a source of truth.
type StatLine struct {
	ID       int64 `db:"id"`
	PlayerID int64 `db:"player_id"`
	MatchID  int64 `db:"match_id"`

	PassingYards  int `db:"passing_yards"`
	PassingTDs    int `db:"passing_tds"`
	Interceptions int `db:"interceptions"`

	RushingYards int `db:"rushing_yards"`
	RushingTDs   int `db:"rushing_tds"`

	Receptions     int `db:"receptions"`
	ReceivingYards int `db:"receiving_yards"`
	ReceivingTDs   int `db:"receiving_tds"`

	FumblesLost int `db:"fumbles_lost"`

	FieldGoalsMade      int `db:"field_goals_made"`
	FieldGoalsAttempted int `db:"field_goals_attempted"`

	Sacks                  int `db:"sacks"`
	DefensiveInterceptions int `db:"defensive_interceptions"`
	DefensiveTDs           int `db:"defensive_tds"`

	FantasyPoints float64 `db:"fantasy_points"`

	// Simulated marks lines produced by the simulator rather than an
	// authoritative stats provider, so re-ingestion can overwrite them.
	Simulated bool `db:"simulated"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
