package models

import (
	"time"
)

// League is a prize-bearing competition among memberships, scoped to one match
type League struct {
	ID            int64     `db:"id"`
	MatchID       int64     `db:"match_id"`
	Name          string    `db:"name"`
	EntryFee      int64     `db:"entry_fee"`
	MaxMembers    int       `db:"max_members"`
	BasePrizePool int64     `db:"base_prize_pool"`
	CreatedAt     time.Time `db:"created_at"`
}

// PrizePoolCap returns the maximum total amount the prize table may distribute
func (l *League) PrizePoolCap() int64 {
	return l.EntryFee*int64(l.MaxMembers) + l.BasePrizePool
}

// PrizeTier is one (rank, amount) entry of a league's prize distribution table
type PrizeTier struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	Rank      int       `db:"rank"`
	Amount    int64     `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

// TotalPrizeAmount sums the amounts of a prize distribution table
func TotalPrizeAmount(tiers []*PrizeTier) int64 {
	var total int64
	for _, tier := range tiers {
		total += tier.Amount
	}
	return total
}

// LeagueMembership binds one user, via one chosen roster, to one league.
// RosterID is nil for members who joined without binding a team.
type LeagueMembership struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	UserID    int64     `db:"user_id"`
	RosterID  *int64    `db:"roster_id"`
	Points    float64   `db:"points"`
	Rank      int       `db:"rank"`
	PrizesWon int64     `db:"prizes_won"`
	CreatedAt time.Time `db:"created_at"`
}

// HasRoster reports whether the membership has a bound roster
func (m *LeagueMembership) HasRoster() bool {
	return m.RosterID != nil
}

// LeagueDetail combines a league with its prize table and memberships
type LeagueDetail struct {
	League      *League
	PrizeTiers  []*PrizeTier
	Memberships []*LeagueMembership
}

// TierForRank returns the prize tier for the given rank, or nil if the
// distribution table has no entry at that rank.
func (ld *LeagueDetail) TierForRank(rank int) *PrizeTier {
	for _, tier := range ld.PrizeTiers {
		if tier.Rank == rank {
			return tier
		}
	}
	return nil
}
