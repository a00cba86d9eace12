package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/app/dto"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
)

func newFavoriteFlow(testDB *testingutil.TestDB) businessflow.FavoriteFlow {
	favoriteRepo := repository.NewFavoriteRepository(testDB.DB)
	tournamentRepo := repository.NewTournamentRepository(testDB.DB)
	playerRepo := repository.NewPlayerRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)
	return businessflow.NewFavoriteFlow(favoriteRepo, tournamentRepo, playerRepo, auditRepo, testDB.DB)
}

func TestFavoriteFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newFavoriteFlow(testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		player, err := fixtures.CreateTestPlayer("fan@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
		require.NoError(t, err)

		t.Run("AddAndList", func(t *testing.T) {
			_, err := flow.AddFavorite(context.Background(), &dto.AddFavoriteRequest{
				PlayerID:       player.ID,
				TournamentUUID: tournament.UUID.String(),
			}, metadata)
			require.NoError(t, err)

			result, err := flow.ListFavorites(context.Background(), &dto.ListFavoritesRequest{
				PlayerID: player.ID,
			}, metadata)
			require.NoError(t, err)
			require.Len(t, result.Tournaments, 1)
			assert.Equal(t, tournament.UUID.String(), result.Tournaments[0].UUID)
		})

		t.Run("AddingTwiceIsIdempotent", func(t *testing.T) {
			result, err := flow.AddFavorite(context.Background(), &dto.AddFavoriteRequest{
				PlayerID:       player.ID,
				TournamentUUID: tournament.UUID.String(),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Tournament already favorited", result.Message)

			list, err := flow.ListFavorites(context.Background(), &dto.ListFavoritesRequest{
				PlayerID: player.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Len(t, list.Tournaments, 1)
		})

		t.Run("UnknownTournament", func(t *testing.T) {
			_, err := flow.AddFavorite(context.Background(), &dto.AddFavoriteRequest{
				PlayerID:       player.ID,
				TournamentUUID: uuid.NewString(),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsTournamentNotFound(err))
		})

		t.Run("Remove", func(t *testing.T) {
			_, err := flow.RemoveFavorite(context.Background(), &dto.RemoveFavoriteRequest{
				PlayerID:       player.ID,
				TournamentUUID: tournament.UUID.String(),
			}, metadata)
			require.NoError(t, err)

			list, err := flow.ListFavorites(context.Background(), &dto.ListFavoritesRequest{
				PlayerID: player.ID,
			}, metadata)
			require.NoError(t, err)
			assert.Empty(t, list.Tournaments)
		})

		t.Run("RemovingMissingFavorite", func(t *testing.T) {
			_, err := flow.RemoveFavorite(context.Background(), &dto.RemoveFavoriteRequest{
				PlayerID:       player.ID,
				TournamentUUID: tournament.UUID.String(),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsFavoriteNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
