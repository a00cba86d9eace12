package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/app/dto"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
	"github.com/tannermartz/breakline/utils"
)

func newTournamentFlow(testDB *testingutil.TestDB) businessflow.TournamentFlow {
	tournamentRepo := repository.NewTournamentRepository(testDB.DB)
	venueRepo := repository.NewVenueRepository(testDB.DB)
	playerRepo := repository.NewPlayerRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)
	matchingFlow := newMatchingFlow(testDB, &config.CacheConfig{Enabled: false}, nil)
	return businessflow.NewTournamentFlow(tournamentRepo, venueRepo, playerRepo, auditRepo, matchingFlow, testDB.DB)
}

func futureDate(days int) string {
	return utils.UTCNow().AddDate(0, 0, days).Format(time.DateOnly)
}

func TestCreateTournament(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTournamentFlow(testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		player, err := fixtures.CreateTestPlayer("promoter@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		t.Run("NewListingStartsPending", func(t *testing.T) {
			venueUUID := venue.UUID.String()
			result, err := flow.CreateTournament(context.Background(), &dto.CreateTournamentRequest{
				PlayerID:         player.ID,
				Name:             "Friday Night 8-Ball",
				GameType:         "8-ball",
				TournamentFormat: "single-elimination",
				TableSize:        "7ft",
				EntryFee:         utils.ToPtr(15.0),
				TournamentDate:   futureDate(7),
				VenueUUID:        &venueUUID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.TournamentStatusPending.String(), result.Tournament.Status)
			require.NotNil(t, result.Tournament.Venue)
			assert.Equal(t, "TX", result.Tournament.Venue.State)
		})

		t.Run("PastDateRejected", func(t *testing.T) {
			_, err := flow.CreateTournament(context.Background(), &dto.CreateTournamentRequest{
				PlayerID:         player.ID,
				Name:             "Yesterday's news",
				GameType:         "8-ball",
				TournamentFormat: "single-elimination",
				TableSize:        "7ft",
				TournamentDate:   utils.UTCNow().AddDate(0, 0, -1).Format(time.DateOnly),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsTournamentDateInPast(err))
		})

		t.Run("UnknownVenueRejected", func(t *testing.T) {
			badUUID := "00000000-0000-0000-0000-000000000000"
			_, err := flow.CreateTournament(context.Background(), &dto.CreateTournamentRequest{
				PlayerID:         player.ID,
				Name:             "Nowhere open",
				GameType:         "8-ball",
				TournamentFormat: "single-elimination",
				TableSize:        "7ft",
				TournamentDate:   futureDate(7),
				VenueUUID:        &badUUID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsVenueNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestUpdateTournament(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTournamentFlow(testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		owner, err := fixtures.CreateTestPlayer("owner@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(owner.ID, venue, models.TournamentStatusPending)
		require.NoError(t, err)

		t.Run("OwnerCanEditPendingListing", func(t *testing.T) {
			result, err := flow.UpdateTournament(context.Background(), &dto.UpdateTournamentRequest{
				PlayerID: owner.ID,
				UUID:     tournament.UUID.String(),
				Name:     utils.ToPtr("Tuesday Night 10-Ball"),
				GameType: utils.ToPtr("10-ball"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Tuesday Night 10-Ball", result.Tournament.Name)
			assert.Equal(t, "10-ball", result.Tournament.GameType)
		})

		t.Run("StrangerIsDenied", func(t *testing.T) {
			stranger, err := fixtures.CreateTestPlayer("snooker@example.com")
			require.NoError(t, err)

			_, err = flow.UpdateTournament(context.Background(), &dto.UpdateTournamentRequest{
				PlayerID: stranger.ID,
				UUID:     tournament.UUID.String(),
				Name:     utils.ToPtr("Hijacked"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsTournamentAccessDenied(err))
		})

		t.Run("CancelledListingNotEditable", func(t *testing.T) {
			cancelled, err := fixtures.CreateTestTournament(owner.ID, venue, models.TournamentStatusCancelled)
			require.NoError(t, err)

			_, err = flow.UpdateTournament(context.Background(), &dto.UpdateTournamentRequest{
				PlayerID: owner.ID,
				UUID:     cancelled.UUID.String(),
				Name:     utils.ToPtr("Back from the dead"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsTournamentNotEditable(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestListTournaments(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTournamentFlow(testDB)

		player, err := fixtures.CreateTestPlayer("browser@example.com")
		require.NoError(t, err)

		texas, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)
		oklahoma, err := fixtures.CreateTestVenue("Tulsa", "OK")
		require.NoError(t, err)

		_, err = fixtures.CreateTestTournament(player.ID, texas, models.TournamentStatusApproved)
		require.NoError(t, err)
		_, err = fixtures.CreateTestTournament(player.ID, oklahoma, models.TournamentStatusApproved)
		require.NoError(t, err)
		_, err = fixtures.CreateTestTournament(player.ID, texas, models.TournamentStatusPending)
		require.NoError(t, err)

		t.Run("OnlyApprovedListingsAppear", func(t *testing.T) {
			result, err := flow.ListTournaments(context.Background(), &dto.ListTournamentsRequest{})
			require.NoError(t, err)
			assert.Len(t, result.Tournaments, 2)
			assert.EqualValues(t, 2, result.Total)
		})

		t.Run("StateFilter", func(t *testing.T) {
			// Lowercase query still matches the stored uppercase state
			result, err := flow.ListTournaments(context.Background(), &dto.ListTournamentsRequest{
				State: utils.ToPtr("ok"),
			})
			require.NoError(t, err)
			require.Len(t, result.Tournaments, 1)
			assert.EqualValues(t, 1, result.Total)
			require.NotNil(t, result.Tournaments[0].Venue)
			assert.Equal(t, "OK", result.Tournaments[0].Venue.State)
		})

		t.Run("StateFilterPaginates", func(t *testing.T) {
			for i := 0; i < 3; i++ {
				_, err := fixtures.CreateTestTournament(player.ID, oklahoma, models.TournamentStatusApproved)
				require.NoError(t, err)
			}

			// Pages and total both see the state predicate
			page, err := flow.ListTournaments(context.Background(), &dto.ListTournamentsRequest{
				PaginationRequest: dto.PaginationRequest{Page: 1, PageSize: 2},
				State:             utils.ToPtr("OK"),
			})
			require.NoError(t, err)
			assert.Len(t, page.Tournaments, 2)
			assert.EqualValues(t, 4, page.Total)
		})

		t.Run("GameTypeFilter", func(t *testing.T) {
			result, err := flow.ListTournaments(context.Background(), &dto.ListTournamentsRequest{
				GameType: utils.ToPtr("one-pocket"),
			})
			require.NoError(t, err)
			assert.Empty(t, result.Tournaments)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCancelTournament(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTournamentFlow(testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		tournamentRepo := repository.NewTournamentRepository(testDB.DB)

		owner, err := fixtures.CreateTestPlayer("canceller@example.com")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(owner.ID, nil, models.TournamentStatusApproved)
		require.NoError(t, err)

		result, err := flow.CancelTournament(context.Background(), &dto.CancelTournamentRequest{
			PlayerID: owner.ID,
			UUID:     tournament.UUID.String(),
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, models.TournamentStatusCancelled.String(), result.Status)

		stored, err := tournamentRepo.ByUUID(context.Background(), tournament.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.TournamentStatusCancelled, stored.Status)

		// Cancelling twice is an invalid transition
		_, err = flow.CancelTournament(context.Background(), &dto.CancelTournamentRequest{
			PlayerID: owner.ID,
			UUID:     tournament.UUID.String(),
		}, metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidStatusTransition(err))

		return nil
	})
	require.NoError(t, err)
}
