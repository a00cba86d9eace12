package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/services"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/repository"
	testingutil "github.com/tannermartz/breakline/testing"
	"github.com/tannermartz/breakline/utils"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	ts, err := services.NewTokenService(
		1*time.Hour,
		24*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-at-least-32-characters-long",
	)
	require.NoError(t, err)
	return ts
}

func disabledCacheConfig() *config.CacheConfig {
	return &config.CacheConfig{Enabled: false}
}

func TestSignupFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		playerRepo := repository.NewPlayerRepository(testDB.DB)
		sessionRepo := repository.NewPlayerSessionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		signupFlow := businessflow.NewSignupFlow(playerRepo, sessionRepo, auditRepo, newTestTokenService(t), testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		t.Run("SuccessfulSignup", func(t *testing.T) {
			req := &dto.SignupRequest{
				Email:           "jane@example.com",
				Password:        "SecurePass123!",
				ConfirmPassword: "SecurePass123!",
				DisplayName:     "Jane",
				HomeState:       utils.ToPtr("TX"),
			}

			result, err := signupFlow.Signup(context.Background(), req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.Token)
			assert.NotEmpty(t, result.RefreshToken)
			assert.Equal(t, "jane@example.com", result.Player.Email)

			player, err := playerRepo.ByEmail(context.Background(), "jane@example.com")
			require.NoError(t, err)
			require.NotNil(t, player)
			assert.True(t, utils.IsTrue(player.IsActive))
			assert.False(t, utils.IsTrue(player.IsAdmin))
			assert.NotEqual(t, "SecurePass123!", player.PasswordHash)

			session, err := sessionRepo.BySessionToken(context.Background(), result.Token)
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, player.ID, session.PlayerID)
		})

		t.Run("DuplicateEmailRejected", func(t *testing.T) {
			req := &dto.SignupRequest{
				Email:           "jane@example.com",
				Password:        "SecurePass123!",
				ConfirmPassword: "SecurePass123!",
				DisplayName:     "Jane Again",
			}

			_, err := signupFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLoginFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		playerRepo := repository.NewPlayerRepository(testDB.DB)
		sessionRepo := repository.NewPlayerSessionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		loginFlow := businessflow.NewLoginFlow(playerRepo, sessionRepo, auditRepo, newTestTokenService(t), disabledCacheConfig(), nil, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		player, err := fixtures.CreateTestPlayer("shooter@example.com")
		require.NoError(t, err)

		t.Run("SuccessfulLogin", func(t *testing.T) {
			result, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "shooter@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.NotEmpty(t, result.RefreshToken)

			refreshed, err := playerRepo.ByID(context.Background(), player.ID)
			require.NoError(t, err)
			assert.NotNil(t, refreshed.LastLoginAt)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			_, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "shooter@example.com",
				Password: "not-the-password",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("UnknownEmail", func(t *testing.T) {
			_, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "ghost@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPlayerNotFound(err))
		})

		t.Run("InactiveAccount", func(t *testing.T) {
			require.NoError(t, playerRepo.UpdateActiveStatus(context.Background(), player.ID, false))
			defer func() {
				require.NoError(t, playerRepo.UpdateActiveStatus(context.Background(), player.ID, true))
			}()

			_, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "shooter@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		t.Run("RefreshRotatesSession", func(t *testing.T) {
			login, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "shooter@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.NoError(t, err)

			refreshed, err := loginFlow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
				RefreshToken: login.RefreshToken,
			}, metadata)
			require.NoError(t, err)
			assert.NotEqual(t, login.Token, refreshed.Token)
			assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

			// The old session must be unusable after rotation
			old, err := sessionRepo.ByRefreshToken(context.Background(), login.RefreshToken)
			require.NoError(t, err)
			if old != nil {
				assert.False(t, old.IsValid())
			}
		})

		t.Run("LogoutExpiresSessions", func(t *testing.T) {
			login, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "shooter@example.com",
				Password: testingutil.TestPassword,
			}, metadata)
			require.NoError(t, err)

			_, err = loginFlow.Logout(context.Background(), &dto.LogoutRequest{
				PlayerID:    player.ID,
				AllSessions: true,
			}, metadata)
			require.NoError(t, err)

			session, err := sessionRepo.BySessionToken(context.Background(), login.Token)
			require.NoError(t, err)
			if session != nil {
				assert.False(t, session.IsValid())
			}
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLoginThrottle(t *testing.T) {
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

		playerRepo := repository.NewPlayerRepository(testDB.DB)
		sessionRepo := repository.NewPlayerSessionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		loginFlow := businessflow.NewLoginFlow(playerRepo, sessionRepo, auditRepo, newTestTokenService(t), cacheCfg, rc, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "go-test")

		_, err := fixtures.CreateTestPlayer("hustler@example.com")
		require.NoError(t, err)

		for i := 0; i < utils.MaxLoginAttempts; i++ {
			_, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "hustler@example.com",
				Password: fmt.Sprintf("wrong-password-%d", i),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		}

		// Even the correct password is rejected once the counter is full
		_, err = loginFlow.Login(context.Background(), &dto.LoginRequest{
			Email:    "hustler@example.com",
			Password: testingutil.TestPassword,
		}, metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsTooManyAttempts(err))

		// The window expiring unlocks the account
		mr.FastForward(utils.LoginAttemptWindow + time.Second)

		result, err := loginFlow.Login(context.Background(), &dto.LoginRequest{
			Email:    "hustler@example.com",
			Password: testingutil.TestPassword,
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		return nil
	})
	require.NoError(t, err)
}
