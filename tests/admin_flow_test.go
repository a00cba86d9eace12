package tests

import (
	"context"
	"testing"

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

func newAdminFlow(t *testing.T, testDB *testingutil.TestDB) businessflow.AdminFlow {
	playerRepo := repository.NewPlayerRepository(testDB.DB)
	tournamentRepo := repository.NewTournamentRepository(testDB.DB)
	venueRepo := repository.NewVenueRepository(testDB.DB)
	sessionRepo := repository.NewPlayerSessionRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)
	matchingFlow := newMatchingFlow(testDB, &config.CacheConfig{Enabled: false}, nil)
	return businessflow.NewAdminFlow(playerRepo, tournamentRepo, venueRepo, sessionRepo, auditRepo, newTestTokenService(t), matchingFlow, testDB.DB)
}

func TestAdminLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAdminFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		_, err := fixtures.CreateTestAdmin("mod@example.com")
		require.NoError(t, err)
		_, err = fixtures.CreateTestPlayer("regular@example.com")
		require.NoError(t, err)

		t.Run("AdminCanLogin", func(t *testing.T) {
			result, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
				Email:    "mod@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.NotEmpty(t, result.RefreshToken)
		})

		t.Run("NonAdminIsRejected", func(t *testing.T) {
			_, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
				Email:    "regular@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotAdmin(err))
		})

		t.Run("WrongPasswordIsRejected", func(t *testing.T) {
			_, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
				Email:    "mod@example.com",
				Password: "not-the-password",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTournamentModeration(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAdminFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		tournamentRepo := repository.NewTournamentRepository(testDB.DB)

		admin, err := fixtures.CreateTestAdmin("reviewer@example.com")
		require.NoError(t, err)
		player, err := fixtures.CreateTestPlayer("organizer@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		pending, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusPending)
		require.NoError(t, err)

		t.Run("QueueListsPendingOnly", func(t *testing.T) {
			_, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
			require.NoError(t, err)

			result, err := flow.ListPendingTournaments(context.Background(), &dto.ListPendingTournamentsRequest{
				AdminID: admin.ID,
			}, metadata)
			require.NoError(t, err)
			require.Len(t, result.Tournaments, 1)
			assert.Equal(t, pending.UUID.String(), result.Tournaments[0].UUID)
		})

		t.Run("NonAdminCannotReadQueue", func(t *testing.T) {
			_, err := flow.ListPendingTournaments(context.Background(), &dto.ListPendingTournamentsRequest{
				AdminID: player.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotAdmin(err))
		})

		t.Run("ApprovePublishesListing", func(t *testing.T) {
			result, err := flow.ApproveTournament(context.Background(), &dto.ReviewTournamentRequest{
				AdminID: admin.ID,
				UUID:    pending.UUID.String(),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.TournamentStatusApproved.String(), result.Status)

			stored, err := tournamentRepo.ByUUID(context.Background(), pending.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, models.TournamentStatusApproved, stored.Status)
		})

		t.Run("ApprovedListingCannotBeRejected", func(t *testing.T) {
			_, err := flow.RejectTournament(context.Background(), &dto.ReviewTournamentRequest{
				AdminID: admin.ID,
				UUID:    pending.UUID.String(),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidStatusTransition(err))
		})

		t.Run("RejectedListingCanBeApprovedLater", func(t *testing.T) {
			second, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusPending)
			require.NoError(t, err)

			reason := "Duplicate listing"
			_, err = flow.RejectTournament(context.Background(), &dto.ReviewTournamentRequest{
				AdminID: admin.ID,
				UUID:    second.UUID.String(),
				Reason:  &reason,
			}, metadata)
			require.NoError(t, err)

			result, err := flow.ApproveTournament(context.Background(), &dto.ReviewTournamentRequest{
				AdminID: admin.ID,
				UUID:    second.UUID.String(),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.TournamentStatusApproved.String(), result.Status)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestListPlayers(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAdminFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		playerRepo := repository.NewPlayerRepository(testDB.DB)

		admin, err := fixtures.CreateTestAdmin("overseer@example.com")
		require.NoError(t, err)
		regular, err := fixtures.CreateTestPlayer("active@example.com")
		require.NoError(t, err)
		suspended, err := fixtures.CreateTestPlayer("suspended@example.com")
		require.NoError(t, err)
		require.NoError(t, playerRepo.UpdateActiveStatus(context.Background(), suspended.ID, false))

		t.Run("ListsAllAccounts", func(t *testing.T) {
			result, err := flow.ListPlayers(context.Background(), &dto.ListPlayersRequest{
				AdminID: admin.ID,
			}, metadata)
			require.NoError(t, err)
			assert.EqualValues(t, 3, result.Total)
			assert.Len(t, result.Players, 3)
		})

		t.Run("FiltersByActiveStatus", func(t *testing.T) {
			result, err := flow.ListPlayers(context.Background(), &dto.ListPlayersRequest{
				AdminID:  admin.ID,
				IsActive: utils.ToPtr(false),
			}, metadata)
			require.NoError(t, err)
			require.Len(t, result.Players, 1)
			assert.Equal(t, suspended.UUID.String(), result.Players[0].UUID)
		})

		t.Run("NonAdminIsDenied", func(t *testing.T) {
			_, err := flow.ListPlayers(context.Background(), &dto.ListPlayersRequest{
				AdminID: regular.ID,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotAdmin(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSetPlayerStatus(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newAdminFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		playerRepo := repository.NewPlayerRepository(testDB.DB)
		sessionRepo := repository.NewPlayerSessionRepository(testDB.DB)

		admin, err := fixtures.CreateTestAdmin("enforcer@example.com")
		require.NoError(t, err)
		player, err := fixtures.CreateTestPlayer("troublemaker@example.com")
		require.NoError(t, err)

		session, err := fixtures.CreateTestSession(player.ID)
		require.NoError(t, err)

		t.Run("DeactivationKillsSessions", func(t *testing.T) {
			_, err := flow.SetPlayerStatus(context.Background(), &dto.SetPlayerStatusRequest{
				AdminID:    admin.ID,
				PlayerUUID: player.UUID.String(),
				IsActive:   false,
			}, metadata)
			require.NoError(t, err)

			stored, err := playerRepo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			assert.False(t, utils.IsTrue(stored.IsActive))

			live, err := sessionRepo.BySessionToken(context.Background(), session.SessionToken)
			require.NoError(t, err)
			if live != nil {
				assert.False(t, live.IsValid())
			}
		})

		t.Run("Reactivation", func(t *testing.T) {
			_, err := flow.SetPlayerStatus(context.Background(), &dto.SetPlayerStatusRequest{
				AdminID:    admin.ID,
				PlayerUUID: player.UUID.String(),
				IsActive:   true,
			}, metadata)
			require.NoError(t, err)

			stored, err := playerRepo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			assert.True(t, utils.IsTrue(stored.IsActive))
		})

		t.Run("NonAdminIsDenied", func(t *testing.T) {
			_, err := flow.SetPlayerStatus(context.Background(), &dto.SetPlayerStatusRequest{
				AdminID:    player.ID,
				PlayerUUID: admin.UUID.String(),
				IsActive:   false,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotAdmin(err))
		})

		return nil
	})
	require.NoError(t, err)
}
