package models

import (
	"time"
)

// Position identifies the fantasy position a player occupies
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// Player represents a real-world player that can fill a roster slot
type Player struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Team      string    `db:"team"`
	Position  Position  `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

// Match represents one real-world game between two teams
type Match struct {
	ID        int64     `db:"id"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	Final     bool      `db:"final"`
	CreatedAt time.Time `db:"created_at"`
}

// ScoreFor returns the (team score, opponent score) pair for the given team,
// falling back to the home perspective for unknown team names.
func (m *Match) ScoreFor(team string) (int, int) {
	if team == m.AwayTeam {
		return m.AwayScore, m.HomeScore
	}
	return m.HomeScore, m.AwayScore
}
