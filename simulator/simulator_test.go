package simulator

import (
	"testing"

	"gridiron/models"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceBonus(t *testing.T) {
	tests := []struct {
		name          string
		teamScore     int
		opponentScore int
		expected      float64
	}{
		{"blowout win", 42, 14, 0.25},
		{"comfortable win", 31, 17, 0.15},
		{"narrow win", 24, 21, 0.05},
		{"tie", 21, 21, -0.05},
		{"narrow loss", 17, 24, -0.05},
		{"clear loss", 14, 28, -0.15},
		{"blowout loss", 7, 35, -0.25},
		{"exactly 20 up", 34, 14, 0.15},
		{"exactly 10 up", 27, 17, 0.05},
		{"exactly 10 down", 17, 27, -0.15},
		{"exactly 20 down", 14, 34, -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PerformanceBonus(tt.teamScore, tt.opponentScore))
		})
	}
}

func TestSimulate_QuarterbackBoundsInTiedGame(t *testing.T) {
	sim := NewSeeded(42)

	// Tied game carries a -0.05 bonus, so the base 180..350 yardage range
	// lands in 171..333 after scaling
	for i := 0; i < 500; i++ {
		line := sim.Simulate(models.PositionQB, 21, 21)

		assert.GreaterOrEqual(t, line.PassingYards, 171)
		assert.LessOrEqual(t, line.PassingYards, 333)
		assert.GreaterOrEqual(t, line.PassingTDs, 1)
		assert.LessOrEqual(t, line.PassingTDs, 4)
		assert.GreaterOrEqual(t, line.Interceptions, 0)
		assert.LessOrEqual(t, line.Interceptions, 2)
		assert.GreaterOrEqual(t, line.RushingYards, 0)
		assert.LessOrEqual(t, line.RushingYards, 29)
		assert.True(t, line.Simulated)
	}
}

func TestSimulate_KickerNeverMakesMoreThanAttempted(t *testing.T) {
	sim := NewSeeded(7)

	for i := 0; i < 500; i++ {
		line := sim.Simulate(models.PositionK, 35, 10)
		assert.GreaterOrEqual(t, line.FieldGoalsAttempted, 2)
		assert.LessOrEqual(t, line.FieldGoalsAttempted, 5)
		assert.LessOrEqual(t, line.FieldGoalsMade, line.FieldGoalsAttempted)
		assert.GreaterOrEqual(t, line.FieldGoalsMade, 0)
	}
}

func TestSimulate_StatsStayNonNegative(t *testing.T) {
	sim := NewSeeded(99)

	positions := []models.Position{
		models.PositionQB, models.PositionRB, models.PositionWR,
		models.PositionTE, models.PositionK, models.PositionDEF,
	}

	// Heavy loss pushes every scaled draw toward its floor
	for i := 0; i < 200; i++ {
		for _, pos := range positions {
			line := sim.Simulate(pos, 3, 45)

			assert.GreaterOrEqual(t, line.PassingYards, 0)
			assert.GreaterOrEqual(t, line.RushingYards, 0)
			assert.GreaterOrEqual(t, line.ReceivingYards, 0)
			assert.GreaterOrEqual(t, line.Receptions, 0)
			assert.GreaterOrEqual(t, line.Sacks, 0)
			assert.GreaterOrEqual(t, line.FieldGoalsMade, 0)
		}
	}
}

func TestSimulate_PositionsOnlyFillTheirOwnStats(t *testing.T) {
	sim := NewSeeded(1)

	wr := sim.Simulate(models.PositionWR, 24, 20)
	assert.Zero(t, wr.PassingYards)
	assert.Zero(t, wr.FieldGoalsAttempted)
	assert.Zero(t, wr.Sacks)

	def := sim.Simulate(models.PositionDEF, 24, 20)
	assert.Zero(t, def.PassingYards)
	assert.Zero(t, def.RushingYards)
	assert.Zero(t, def.ReceivingYards)
}

func TestSimulate_SameSeedSameDraws(t *testing.T) {
	a := NewSeeded(1234)
	b := NewSeeded(1234)

	for i := 0; i < 50; i++ {
		lineA := a.Simulate(models.PositionRB, 28, 24)
		lineB := b.Simulate(models.PositionRB, 28, 24)
		assert.Equal(t, lineA, lineB)
	}
}
