package testutil

import (
	"gridiron/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(username string) *models.User {
	return &models.User{
		Username: username,
		Credits:  1000,
	}
}

// CreateTestPlayer creates a test player at the given position
func CreateTestPlayer(name, team string, position models.Position) *models.Player {
	return &models.Player{
		Name:     name,
		Team:     team,
		Position: position,
	}
}

// CreateTestMatch creates a final match with the given score
func CreateTestMatch(homeTeam, awayTeam string, homeScore, awayScore int) *models.Match {
	return &models.Match{
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Final:     true,
	}
}

// CreateTestStatLine creates a stat line with a modest QB-like performance
func CreateTestStatLine(playerID, matchID int64) *models.StatLine {
	return &models.StatLine{
		PlayerID:     playerID,
		MatchID:      matchID,
		PassingYards: 250,
		PassingTDs:   2,
	}
}

// CreateTestLeague creates a league for a match with default limits
func CreateTestLeague(matchID int64, name string) *models.League {
	return &models.League{
		MatchID:       matchID,
		Name:          name,
		EntryFee:      100,
		MaxMembers:    10,
		BasePrizePool: 0,
	}
}
