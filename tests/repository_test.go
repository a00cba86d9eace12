package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
	"github.com/tannermartz/breakline/utils"
)

func TestPlayerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewPlayerRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("repo@example.com")
		require.NoError(t, err)

		t.Run("ByEmail", func(t *testing.T) {
			found, err := repo.ByEmail(context.Background(), "repo@example.com")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, player.ID, found.ID)

			missing, err := repo.ByEmail(context.Background(), "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("ByUUID", func(t *testing.T) {
			found, err := repo.ByUUID(context.Background(), player.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, player.ID, found.ID)
		})

		t.Run("CreateSetsTimestamps", func(t *testing.T) {
			found, err := repo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			assert.False(t, found.CreatedAt.IsZero())
			assert.False(t, found.UpdatedAt.IsZero())
		})

		t.Run("UpdateActiveStatus", func(t *testing.T) {
			require.NoError(t, repo.UpdateActiveStatus(context.Background(), player.ID, false))

			found, err := repo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			assert.False(t, utils.IsTrue(found.IsActive))

			require.NoError(t, repo.UpdateActiveStatus(context.Background(), player.ID, true))
		})

		t.Run("UpdateLastLogin", func(t *testing.T) {
			at := utils.UTCNow()
			require.NoError(t, repo.UpdateLastLogin(context.Background(), player.ID, at))

			found, err := repo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			require.NotNil(t, found.LastLoginAt)
			assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTournamentRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewTournamentRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("lister@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		pending, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusPending)
		require.NoError(t, err)
		approved, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
		require.NoError(t, err)

		t.Run("ListByStatus", func(t *testing.T) {
			rows, err := repo.ListByStatus(context.Background(), models.TournamentStatusApproved, 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, approved.ID, rows[0].ID)
		})

		t.Run("ListByCreator", func(t *testing.T) {
			rows, err := repo.ListByCreator(context.Background(), player.ID, 10, 0)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			require.NoError(t, repo.UpdateStatus(context.Background(), pending.ID, models.TournamentStatusApproved))

			found, err := repo.ByID(context.Background(), pending.ID)
			require.NoError(t, err)
			assert.Equal(t, models.TournamentStatusApproved, found.Status)
		})

		t.Run("ByIDPreloadsVenue", func(t *testing.T) {
			found, err := repo.ByID(context.Background(), approved.ID)
			require.NoError(t, err)
			require.NotNil(t, found.Venue)
			assert.Equal(t, "TX", found.Venue.State)
			assert.False(t, found.Venue.CreatedAt.IsZero())
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSearchAlertRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewSearchAlertRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("alertrepo@example.com")
		require.NoError(t, err)

		active, err := fixtures.CreateTestAlert(player.ID, "Active one", models.FilterCriteria{
			GameType: utils.ToPtr("9-ball"),
		})
		require.NoError(t, err)

		inactive, err := fixtures.CreateTestAlert(player.ID, "Paused one", models.FilterCriteria{})
		require.NoError(t, err)
		inactive.IsActive = utils.ToPtr(false)
		require.NoError(t, testDB.DB.Save(inactive).Error)

		t.Run("ListActiveAlertsExcludesPaused", func(t *testing.T) {
			rows, err := repo.ListActiveAlerts(context.Background())
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, active.ID, rows[0].ID)
		})

		t.Run("IncrementMatchCount", func(t *testing.T) {
			matchedAt := utils.UTCNow()
			require.NoError(t, repo.IncrementMatchCount(context.Background(), active.ID, matchedAt))
			require.NoError(t, repo.IncrementMatchCount(context.Background(), active.ID, matchedAt))

			found, err := repo.ByID(context.Background(), active.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, found.MatchCount)
			require.NotNil(t, found.LastMatchDate)
			assert.WithinDuration(t, matchedAt, *found.LastMatchDate, time.Second)
		})

		t.Run("DeleteRemovesAlert", func(t *testing.T) {
			require.NoError(t, repo.Delete(context.Background(), inactive.ID))

			found, err := repo.ByID(context.Background(), inactive.ID)
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAlertMatchRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewAlertMatchRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("matchrepo@example.com")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(player.ID, nil, models.TournamentStatusApproved)
		require.NoError(t, err)

		alert, err := fixtures.CreateTestAlert(player.ID, "Matcher", models.FilterCriteria{})
		require.NoError(t, err)

		pair := []*models.AlertMatch{{AlertID: alert.ID, TournamentID: tournament.ID}}

		t.Run("InsertIgnoringDuplicates", func(t *testing.T) {
			inserted, err := repo.InsertIgnoringDuplicates(context.Background(), pair)
			require.NoError(t, err)
			assert.EqualValues(t, 1, inserted)

			// The unique pair index swallows the second insert
			again, err := repo.InsertIgnoringDuplicates(context.Background(), []*models.AlertMatch{
				{AlertID: alert.ID, TournamentID: tournament.ID},
			})
			require.NoError(t, err)
			assert.EqualValues(t, 0, again)
		})

		t.Run("ListByTournamentAmongAlerts", func(t *testing.T) {
			rows, err := repo.ListByTournamentAmongAlerts(context.Background(), tournament.ID, []uint{alert.ID})
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, alert.ID, rows[0].AlertID)

			none, err := repo.ListByTournamentAmongAlerts(context.Background(), tournament.ID, []uint{alert.ID + 1000})
			require.NoError(t, err)
			assert.Empty(t, none)
		})

		t.Run("ListByAlertPreloadsTournament", func(t *testing.T) {
			rows, err := repo.ListByAlert(context.Background(), alert.ID, 10, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			require.NotNil(t, rows[0].Tournament)
			assert.Equal(t, tournament.ID, rows[0].Tournament.ID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestPlayerSessionRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewPlayerSessionRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("sessions@example.com")
		require.NoError(t, err)

		first, err := fixtures.CreateTestSession(player.ID)
		require.NoError(t, err)
		second, err := fixtures.CreateTestSession(player.ID)
		require.NoError(t, err)

		t.Run("ExpireAllPlayerSessions", func(t *testing.T) {
			require.NoError(t, repo.ExpireAllPlayerSessions(context.Background(), player.ID))

			for _, token := range []string{first.SessionToken, second.SessionToken} {
				session, err := repo.BySessionToken(context.Background(), token)
				require.NoError(t, err)
				require.NotNil(t, session)
				assert.False(t, session.IsValid())
			}
		})

		t.Run("CleanupExpiredSessions", func(t *testing.T) {
			require.NoError(t, repo.CleanupExpiredSessions(context.Background()))

			// ExpireAllPlayerSessions backdated the expiry, so both rows go
			session, err := repo.BySessionToken(context.Background(), first.SessionToken)
			require.NoError(t, err)
			assert.Nil(t, session)
		})

		return nil
	})
	require.NoError(t, err)
}
