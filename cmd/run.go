package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"gridiron/config"
	"gridiron/database"
	"gridiron/events"
	"gridiron/models"
	"gridiron/repository"
	"gridiron/scoring"
	"gridiron/service"
	"gridiron/simulator"

	log "github.com/sirupsen/logrus"
)

// Run wires the application together and dispatches the requested command
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: gridiron [settle|simulate|leaderboard|migrate] [args...]")
	}

	// Load configuration
	cfg := config.Get()

	sim := simulator.New(rand.New(rand.NewSource(time.Now().UnixNano())))

	// The simulate command is pure; it needs no database
	if args[0] == "simulate" {
		return runSimulate(sim, args[1:])
	}

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize event bus and unit of work factory
	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory, cfg)
	statsService := service.NewStatsService(uowFactory, sim, cfg)
	rosterService := service.NewRosterService(uowFactory)
	leaderboardService := service.NewLeaderboardService(uowFactory)
	leagueService := service.NewLeagueService(uowFactory)
	settlementService := service.NewSettlementService(uowFactory, statsService, rosterService, leaderboardService, leagueService)

	switch args[0] {
	case "settle":
		return runSettle(ctx, settlementService, args[1:])
	case "leaderboard":
		return runLeaderboard(ctx, userService, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// runSettle runs the settlement pipeline for one completed match
func runSettle(ctx context.Context, settlements service.SettlementService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gridiron settle <match-id>")
	}
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}

	report, err := settlements.Settle(ctx, matchID)
	if err != nil {
		return fmt.Errorf("settlement failed: %w", err)
	}

	fmt.Printf("Settlement %s for match %d\n", report.SettlementID, report.MatchID)
	fmt.Printf("  stat lines scored: %d\n", report.StatLinesFinal)
	fmt.Printf("  rosters ranked:    %d\n", report.RostersScored)
	fmt.Printf("  users updated:     %d\n", report.UsersUpdated)
	fmt.Printf("  leagues settled:   %d\n", report.LeaguesSettled)
	for _, failure := range report.Failures {
		fmt.Printf("  league %d FAILED: %v\n", failure.LeagueID, failure.Err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d league(s) failed to settle", len(report.Failures))
	}
	return nil
}

// runSimulate draws one stat line for a position and final score, then prices
// it with the scoring calculator. Useful for previewing scores.
func runSimulate(sim *simulator.Simulator, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: gridiron simulate <position> <team-score> <opponent-score>")
	}

	position := models.Position(strings.ToUpper(args[0]))
	switch position {
	case models.PositionQB, models.PositionRB, models.PositionWR,
		models.PositionTE, models.PositionK, models.PositionDEF:
	default:
		return fmt.Errorf("unknown position %q", args[0])
	}

	teamScore, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid team score %q: %w", args[1], err)
	}
	opponentScore, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid opponent score %q: %w", args[2], err)
	}

	line := sim.Simulate(position, teamScore, opponentScore)
	fmt.Printf("%s in a %d-%d game:\n", position, teamScore, opponentScore)
	fmt.Printf("  passing:   %d yds, %d TD, %d INT\n", line.PassingYards, line.PassingTDs, line.Interceptions)
	fmt.Printf("  rushing:   %d yds, %d TD, %d fumbles lost\n", line.RushingYards, line.RushingTDs, line.FumblesLost)
	fmt.Printf("  receiving: %d rec, %d yds, %d TD\n", line.Receptions, line.ReceivingYards, line.ReceivingTDs)
	fmt.Printf("  kicking:   %d/%d FG\n", line.FieldGoalsMade, line.FieldGoalsAttempted)
	fmt.Printf("  defense:   %d sacks, %d INT, %d TD\n", line.Sacks, line.DefensiveInterceptions, line.DefensiveTDs)
	fmt.Printf("  fantasy points: %.1f\n", scoring.Points(line))
	return nil
}

// runLeaderboard prints the top of the global leaderboard
func runLeaderboard(ctx context.Context, users service.UserService, args []string) error {
	limit := 10
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid limit %q: %w", args[0], err)
		}
		limit = parsed
	}

	top, err := users.GetLeaderboard(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	for _, user := range top {
		fmt.Printf("%4d. %-20s %8.1f pts %8d credits\n", user.GlobalRank, user.Username, user.TotalPoints, user.Credits)
	}
	return nil
}
