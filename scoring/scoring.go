// Package scoring converts raw stat lines into fantasy point values.
// Points is pure and total: missing stats count as zero and there is no
// error case, so it can be used standalone to preview scores before
// settlement.
package scoring

import (
	"math"

	"gridiron/models"
)

// Scoring weights. Non-PPR: receptions are recorded but worth nothing.
const (
	passingYardsPerPoint = 25
	passingTDPoints      = 4
	interceptionPoints   = -2

	rushingYardsPerPoint = 10
	rushingTDPoints      = 6

	receivingYardsPerPoint = 10
	receivingTDPoints      = 6

	fumbleLostPoints = -2

	// Flat value per made field goal, independent of distance.
	fieldGoalPoints = 3.5

	sackPoints         = 1
	defensiveIntPoints = 2
	defensiveTDPoints  = 6
)

// Points computes the fantasy point value of a stat line, rounded half-up
// to one decimal place. Callers persist the result as a cache on the line.
func Points(stat models.StatLine) float64 {
	var points float64

	points += math.Floor(float64(stat.PassingYards) / passingYardsPerPoint)
	points += float64(stat.PassingTDs * passingTDPoints)
	points += float64(stat.Interceptions * interceptionPoints)

	points += math.Floor(float64(stat.RushingYards) / rushingYardsPerPoint)
	points += float64(stat.RushingTDs * rushingTDPoints)

	points += math.Floor(float64(stat.ReceivingYards) / receivingYardsPerPoint)
	points += float64(stat.ReceivingTDs * receivingTDPoints)

	points += float64(stat.FumblesLost * fumbleLostPoints)

	points += float64(stat.FieldGoalsMade) * fieldGoalPoints

	points += float64(stat.Sacks * sackPoints)
	points += float64(stat.DefensiveInterceptions * defensiveIntPoints)
	points += float64(stat.DefensiveTDs * defensiveTDPoints)

	return RoundHalfUp1(points)
}

// RoundHalfUp1 rounds to one decimal place with halves rounding up.
func RoundHalfUp1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
