package tests

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/app/services"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
	"github.com/tannermartz/breakline/utils"
)

func newMatchingFlow(testDB *testingutil.TestDB, cacheCfg *config.CacheConfig, rc *redis.Client) businessflow.AlertMatchingFlow {
	alertRepo := repository.NewSearchAlertRepository(testDB.DB)
	matchRepo := repository.NewAlertMatchRepository(testDB.DB)
	playerRepo := repository.NewPlayerRepository(testDB.DB)
	notifier := services.NewNotificationService(services.NewMockPushProvider(), services.NewMockEmailProvider())
	return businessflow.NewAlertMatchingFlow(alertRepo, matchRepo, playerRepo, notifier, cacheCfg, rc)
}

func TestRecordMatches(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		alertRepo := repository.NewSearchAlertRepository(testDB.DB)
		matchRepo := repository.NewAlertMatchRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("racker@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Austin", "TX")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
		require.NoError(t, err)

		matchingAlert, err := fixtures.CreateTestAlert(player.ID, "Local 9-ball", models.FilterCriteria{
			GameType: utils.ToPtr("9-ball"),
			State:    utils.ToPtr("TX"),
		})
		require.NoError(t, err)

		_, err = fixtures.CreateTestAlert(player.ID, "One pocket only", models.FilterCriteria{
			GameType: utils.ToPtr("one-pocket"),
		})
		require.NoError(t, err)

		flow := newMatchingFlow(testDB, &config.CacheConfig{Enabled: false}, nil)

		t.Run("RecordsNewMatch", func(t *testing.T) {
			created := flow.RecordMatches(context.Background(), tournament)
			assert.Equal(t, 1, created)

			rows, err := matchRepo.ListByAlert(context.Background(), matchingAlert.ID, 10, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tournament.ID, rows[0].TournamentID)

			alert, err := alertRepo.ByID(context.Background(), matchingAlert.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, alert.MatchCount)
			assert.NotNil(t, alert.LastMatchDate)
		})

		t.Run("SecondPassIsIdempotent", func(t *testing.T) {
			created := flow.RecordMatches(context.Background(), tournament)
			assert.Equal(t, 0, created)

			alert, err := alertRepo.ByID(context.Background(), matchingAlert.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, alert.MatchCount)
		})

		t.Run("InactiveAlertIsSkipped", func(t *testing.T) {
			paused, err := fixtures.CreateTestAlert(player.ID, "Paused alert", models.FilterCriteria{
				GameType: utils.ToPtr("9-ball"),
			})
			require.NoError(t, err)
			paused.IsActive = utils.ToPtr(false)
			require.NoError(t, testDB.DB.Save(paused).Error)

			created := flow.RecordMatches(context.Background(), tournament)
			assert.Equal(t, 0, created)

			rows, err := matchRepo.ListByAlert(context.Background(), paused.ID, 10, 0)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("NilTournamentIsNoOp", func(t *testing.T) {
			assert.Equal(t, 0, flow.RecordMatches(context.Background(), nil))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRecordMatchesWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()

	cacheCfg := &config.CacheConfig{
		Enabled:     true,
		Provider:    "redis",
		RedisPrefix: "breakline-test",
	}

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		matchRepo := repository.NewAlertMatchRepository(testDB.DB)

		player, err := fixtures.CreateTestPlayer("cacher@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Dallas", "TX")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
		require.NoError(t, err)

		flow := newMatchingFlow(testDB, cacheCfg, rc)

		// First pass with no alerts warms the cache with an empty list
		created := flow.RecordMatches(context.Background(), tournament)
		assert.Equal(t, 0, created)

		alert, err := fixtures.CreateTestAlert(player.ID, "Cached out", models.FilterCriteria{
			GameType: utils.ToPtr("9-ball"),
		})
		require.NoError(t, err)

		// The warm cache predates the alert, so the pass cannot see it
		created = flow.RecordMatches(context.Background(), tournament)
		assert.Equal(t, 0, created)

		// Invalidation is what alert writes do; the next pass hits the database
		flow.InvalidateAlertCache(context.Background())

		created = flow.RecordMatches(context.Background(), tournament)
		assert.Equal(t, 1, created)

		rows, err := matchRepo.ListByAlert(context.Background(), alert.ID, 10, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		return nil
	})
	require.NoError(t, err)
}

func TestRecordMatchesCorruptCacheEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()

	cacheCfg := &config.CacheConfig{
		Enabled:     true,
		Provider:    "redis",
		RedisPrefix: "breakline-test",
	}

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		player, err := fixtures.CreateTestPlayer("corrupt@example.com")
		require.NoError(t, err)

		venue, err := fixtures.CreateTestVenue("Houston", "TX")
		require.NoError(t, err)

		tournament, err := fixtures.CreateTestTournament(player.ID, venue, models.TournamentStatusApproved)
		require.NoError(t, err)

		_, err = fixtures.CreateTestAlert(player.ID, "Weeknight 9-ball", models.FilterCriteria{
			GameType: utils.ToPtr("9-ball"),
		})
		require.NoError(t, err)

		// A garbage cache entry must fall through to the database
		require.NoError(t, mr.Set("breakline-test:"+utils.ActiveAlertCacheKey, "not json"))

		flow := newMatchingFlow(testDB, cacheCfg, rc)
		created := flow.RecordMatches(context.Background(), tournament)
		assert.Equal(t, 1, created)

		return nil
	})
	require.NoError(t, err)
}
