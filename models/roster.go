package models

import (
	"time"
)

// Roster is one user's fantasy lineup for exactly one match
type Roster struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	MatchID         int64     `db:"match_id"`
	Name            string    `db:"name"`
	AcquisitionCost int64     `db:"acquisition_cost"`
	TotalPoints     float64   `db:"total_points"`
	Rank            int       `db:"rank"`
	CreatedAt       time.Time `db:"created_at"`
}

// RosterSlot binds one player to one labeled position slot inside a roster.
// Immutable once created.
type RosterSlot struct {
	ID        int64     `db:"id"`
	RosterID  int64     `db:"roster_id"`
	PlayerID  int64     `db:"player_id"`
	Slot      string    `db:"slot"`
	CreatedAt time.Time `db:"created_at"`
}

// RosterDetail combines a roster with its slots
type RosterDetail struct {
	Roster *Roster
	Slots  []*RosterSlot
}
