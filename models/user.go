package models

import (
	"time"
)

// User represents a fantasy player with a credits ledger balance
type User struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	Credits     int64     `db:"credits"`
	TotalPoints float64   `db:"total_points"`
	GlobalRank  int       `db:"global_rank"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
