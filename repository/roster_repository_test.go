package repository

import (
	"context"
	"errors"
	"testing"

	"gridiron/models"
	"gridiron/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository_CreateAndAggregate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	playerRepo := NewPlayerRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	repo := NewRosterRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "alice", 1000)
	require.NoError(t, err)

	match := testutil.CreateTestMatch("NE", "NYJ", 24, 17)
	require.NoError(t, matchRepo.Create(ctx, match))

	qb := testutil.CreateTestPlayer("Test QB", "NE", models.PositionQB)
	require.NoError(t, playerRepo.Create(ctx, qb))
	rb := testutil.CreateTestPlayer("Test RB", "NYJ", models.PositionRB)
	require.NoError(t, playerRepo.Create(ctx, rb))

	roster := &models.Roster{UserID: user.ID, MatchID: match.ID, Name: "A-Team"}
	require.NoError(t, repo.CreateWithSlots(ctx, roster, []*models.RosterSlot{
		{PlayerID: qb.ID, Slot: "QB"},
		{PlayerID: rb.ID, Slot: "RB"},
	}))
	require.NotZero(t, roster.ID)

	t.Run("slots are bound to the roster", func(t *testing.T) {
		slots, err := repo.GetSlots(ctx, roster.ID)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, roster.ID, slots[0].RosterID)
	})

	t.Run("GetByMatch returns creation order", func(t *testing.T) {
		second := &models.Roster{UserID: user.ID, MatchID: match.ID, Name: "B-Team"}
		require.NoError(t, repo.CreateWithSlots(ctx, second, nil))

		rosters, err := repo.GetByMatch(ctx, match.ID)
		require.NoError(t, err)
		require.Len(t, rosters, 2)
		assert.Equal(t, roster.ID, rosters[0].ID)
		assert.Equal(t, second.ID, rosters[1].ID)
	})

	t.Run("score updates feed the user total", func(t *testing.T) {
		require.NoError(t, repo.UpdateScore(ctx, roster.ID, 32.5, 1))

		total, err := repo.SumPointsByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 32.5, total)
	})

	t.Run("user without rosters sums to zero", func(t *testing.T) {
		other, err := userRepo.Create(ctx, "bob", 1000)
		require.NoError(t, err)

		total, err := repo.SumPointsByUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestRosterRepository_TransactionRollbackDiscardsRoster(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	playerRepo := NewPlayerRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)
	repo := NewRosterRepository(testDB.DB)

	user, err := userRepo.Create(ctx, "alice", 1000)
	require.NoError(t, err)
	match := testutil.CreateTestMatch("NE", "NYJ", 24, 17)
	require.NoError(t, matchRepo.Create(ctx, match))
	qb := testutil.CreateTestPlayer("Test QB", "NE", models.PositionQB)
	require.NoError(t, playerRepo.Create(ctx, qb))

	failure := errors.New("abort")
	err = testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		txRepo := newRosterRepositoryWithTx(tx)
		roster := &models.Roster{UserID: user.ID, MatchID: match.ID, Name: "Ghost"}
		if err := txRepo.CreateWithSlots(ctx, roster, []*models.RosterSlot{
			{PlayerID: qb.ID, Slot: "QB"},
		}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	rosters, err := repo.GetByMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Empty(t, rosters)
}
