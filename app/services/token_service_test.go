package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) TokenService {
	t.Helper()
	ts, err := NewTokenService(accessTTL, refreshTTL, "test-issuer", "test-audience", false, "", "", testSecret)
	require.NoError(t, err)
	return ts
}

func TestNewTokenService(t *testing.T) {
	t.Run("RequiresSecretForSymmetricSigning", func(t *testing.T) {
		_, err := NewTokenService(time.Hour, time.Hour, "iss", "aud", false, "", "", "")
		require.Error(t, err)
	})

	t.Run("RequiresValidRSAKeys", func(t *testing.T) {
		_, err := NewTokenService(time.Hour, time.Hour, "iss", "aud", true, "not a key", "not a key", "")
		require.Error(t, err)
	})
}

func TestGenerateAndValidateTokens(t *testing.T) {
	ts := newTestService(t, time.Hour, 24*time.Hour)

	accessToken, refreshToken, err := ts.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	t.Run("AccessTokenRoundTrip", func(t *testing.T) {
		claims, err := ts.ValidateToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.PlayerID)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, "test-issuer", claims.Issuer)
		assert.Equal(t, "test-audience", claims.Audience)
		assert.NotEmpty(t, claims.TokenID)
	})

	t.Run("RefreshTokenCarriesItsType", func(t *testing.T) {
		claims, err := ts.ValidateToken(refreshToken)
		require.NoError(t, err)
		assert.Equal(t, "refresh", claims.TokenType)
	})

	t.Run("GarbageTokenIsInvalid", func(t *testing.T) {
		_, err := ts.ValidateToken("not.a.token")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("TokenSignedWithOtherKeyIsInvalid", func(t *testing.T) {
		other := newTestService(t, time.Hour, time.Hour)
		foreign, _, err := other.GenerateTokens(42)
		require.NoError(t, err)

		impostor, err := NewTokenService(time.Hour, time.Hour, "test-issuer", "test-audience", false, "", "", "a-completely-different-32-char-secret!!")
		require.NoError(t, err)

		_, err = impostor.ValidateToken(foreign)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestExpiredToken(t *testing.T) {
	ts := newTestService(t, -time.Minute, -time.Minute)

	accessToken, _, err := ts.GenerateTokens(7)
	require.NoError(t, err)

	_, err = ts.ValidateToken(accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAdminTokens(t *testing.T) {
	ts := newTestService(t, time.Hour, 24*time.Hour)

	accessToken, refreshToken, err := ts.GenerateAdminTokens(9)
	require.NoError(t, err)
	require.NotEmpty(t, refreshToken)

	claims, err := ts.ValidateAdminToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.AdminID)
	assert.Equal(t, "access", claims.TokenType)

	// Admin tokens carry admin_id, not player_id
	_, err = ts.ValidateToken(accessToken)
	require.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	ts := newTestService(t, time.Hour, 24*time.Hour)

	accessToken, refreshToken, err := ts.GenerateTokens(11)
	require.NoError(t, err)

	t.Run("RefreshYieldsFreshPair", func(t *testing.T) {
		newAccess, newRefresh, err := ts.RefreshToken(refreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, accessToken, newAccess)
		assert.NotEqual(t, refreshToken, newRefresh)

		claims, err := ts.ValidateToken(newAccess)
		require.NoError(t, err)
		assert.Equal(t, uint(11), claims.PlayerID)
	})

	t.Run("AccessTokenCannotRefresh", func(t *testing.T) {
		_, _, err := ts.RefreshToken(accessToken)
		require.Error(t, err)
	})
}

func TestRevokeToken(t *testing.T) {
	ts := newTestService(t, time.Hour, 24*time.Hour)

	accessToken, _, err := ts.GenerateTokens(13)
	require.NoError(t, err)

	assert.False(t, ts.IsTokenRevoked(accessToken))

	require.NoError(t, ts.RevokeToken(accessToken))

	assert.True(t, ts.IsTokenRevoked(accessToken))

	_, err = ts.ValidateToken(accessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
