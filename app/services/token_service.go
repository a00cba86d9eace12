// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tannermartz/breakline/utils"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenService defines the interface for JWT token operations
type TokenService interface {
	GenerateTokens(playerID uint) (accessToken, refreshToken string, err error)
	GenerateAdminTokens(adminID uint) (accessToken, refreshToken string, err error)
	ValidateToken(token string) (*TokenClaims, error)
	ValidateAdminToken(token string) (*AdminTokenClaims, error)
	RefreshToken(refreshToken string) (newAccessToken, newRefreshToken string, err error)
	RevokeToken(token string) error
	IsTokenRevoked(token string) bool
}

// TokenClaims represents the claims in a player JWT token
type TokenClaims struct {
	PlayerID  uint      `json:"player_id"`
	TokenType string    `json:"token_type"` // "access" or "refresh"
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
}

// AdminTokenClaims represents the claims in an admin JWT token
type AdminTokenClaims struct {
	AdminID   uint      `json:"admin_id"`
	TokenType string    `json:"token_type"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
}

// TokenServiceImpl implements TokenService using JWT
type TokenServiceImpl struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
	audience        string
	signingMethod   jwt.SigningMethod
	useRSAKeys      bool
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	secretKey       []byte

	mu      sync.RWMutex
	revoked map[string]time.Time // token ID -> expiry of the revoked token
}

// NewTokenService creates a new token service instance
func NewTokenService(
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
	issuer string,
	audience string,
	useRSAKeys bool,
	privateKeyPEM string,
	publicKeyPEM string,
	secretKey string,
) (TokenService, error) {
	service := &TokenServiceImpl{
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		issuer:          issuer,
		audience:        audience,
		useRSAKeys:      useRSAKeys,
		revoked:         make(map[string]time.Time),
	}

	if useRSAKeys {
		service.signingMethod = jwt.SigningMethodRS256

		privateKey, err := parseRSAPrivateKey(privateKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		service.privateKey = privateKey

		publicKey, err := parseRSAPublicKey(publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		service.publicKey = publicKey
	} else {
		service.signingMethod = jwt.SigningMethodHS256
		if secretKey == "" {
			return nil, fmt.Errorf("secret key is required for symmetric signing")
		}
		service.secretKey = []byte(secretKey)
	}

	return service, nil
}

// GenerateTokens creates a new access and refresh token pair for a player
func (s *TokenServiceImpl) GenerateTokens(playerID uint) (accessToken, refreshToken string, err error) {
	now := utils.UTCNow()

	accessTokenID, err := generateTokenID()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token ID: %w", err)
	}

	accessClaims := jwt.MapClaims{
		"player_id":  playerID,
		"token_type": "access",
		"jti":        accessTokenID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessTokenTTL).Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	accessToken, err = s.generateToken(accessClaims)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshTokenID, err := generateTokenID()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token ID: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"player_id":  playerID,
		"token_type": "refresh",
		"jti":        refreshTokenID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.refreshTokenTTL).Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	refreshToken, err = s.generateToken(refreshClaims)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// GenerateAdminTokens creates a new access and refresh token pair for an admin
func (s *TokenServiceImpl) GenerateAdminTokens(adminID uint) (accessToken, refreshToken string, err error) {
	now := utils.UTCNow()

	accessTokenID, err := generateTokenID()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token ID: %w", err)
	}

	accessClaims := jwt.MapClaims{
		"admin_id":   adminID,
		"token_type": "access",
		"jti":        accessTokenID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.accessTokenTTL).Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	accessToken, err = s.generateToken(accessClaims)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate admin access token: %w", err)
	}

	refreshTokenID, err := generateTokenID()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token ID: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"admin_id":   adminID,
		"token_type": "refresh",
		"jti":        refreshTokenID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.refreshTokenTTL).Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	refreshToken, err = s.generateToken(refreshClaims)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate admin refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// ValidateToken validates a player token and returns its claims
func (s *TokenServiceImpl) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, s.keyFunc)
	if err != nil {
		if isExpiredError(err) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	playerID, ok := mapClaims["player_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	tokenType, _ := mapClaims["token_type"].(string)
	tokenID, _ := mapClaims["jti"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)
	iss, _ := mapClaims["iss"].(string)
	aud, _ := mapClaims["aud"].(string)

	claims := &TokenClaims{
		PlayerID:  uint(playerID),
		TokenType: tokenType,
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(iat), 0).UTC(),
		ExpiresAt: time.Unix(int64(exp), 0).UTC(),
		Issuer:    iss,
		Audience:  aud,
	}

	if utils.UTCNow().After(claims.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	if s.isRevoked(claims.TokenID) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// ValidateAdminToken validates an admin token and returns its claims
func (s *TokenServiceImpl) ValidateAdminToken(tokenString string) (*AdminTokenClaims, error) {
	token, err := jwt.Parse(tokenString, s.keyFunc)
	if err != nil {
		if isExpiredError(err) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	adminID, ok := mapClaims["admin_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	tokenType, _ := mapClaims["token_type"].(string)
	tokenID, _ := mapClaims["jti"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)
	iss, _ := mapClaims["iss"].(string)
	aud, _ := mapClaims["aud"].(string)

	claims := &AdminTokenClaims{
		AdminID:   uint(adminID),
		TokenType: tokenType,
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(iat), 0).UTC(),
		ExpiresAt: time.Unix(int64(exp), 0).UTC(),
		Issuer:    iss,
		Audience:  aud,
	}

	if utils.UTCNow().After(claims.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	if s.isRevoked(claims.TokenID) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RefreshToken generates new tokens using a refresh token
func (s *TokenServiceImpl) RefreshToken(refreshToken string) (newAccessToken, newRefreshToken string, err error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	if claims.TokenType != "refresh" {
		return "", "", fmt.Errorf("token is not a refresh token")
	}

	return s.GenerateTokens(claims.PlayerID)
}

// RevokeToken adds a token's ID to the in-memory revocation list
func (s *TokenServiceImpl) RevokeToken(tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[claims.TokenID] = claims.ExpiresAt

	// Drop entries for tokens that have expired on their own
	now := utils.UTCNow()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}

	return nil
}

// IsTokenRevoked checks if a token has been revoked
func (s *TokenServiceImpl) IsTokenRevoked(tokenString string) bool {
	token, err := jwt.Parse(tokenString, s.keyFunc)
	if err != nil || !token.Valid {
		return true // Consider invalid tokens as revoked
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return true
	}

	tokenID, _ := mapClaims["jti"].(string)
	return s.isRevoked(tokenID)
}

func (s *TokenServiceImpl) isRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.revoked[tokenID]
	return found
}

func (s *TokenServiceImpl) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != s.signingMethod.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	if s.useRSAKeys {
		return s.publicKey, nil
	}
	return s.secretKey, nil
}

// generateToken creates a signed JWT token
func (s *TokenServiceImpl) generateToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(s.signingMethod, claims)

	var signedString string
	var err error

	if s.useRSAKeys {
		signedString, err = token.SignedString(s.privateKey)
	} else {
		signedString, err = token.SignedString(s.secretKey)
	}

	if err != nil {
		return "", err
	}

	return signedString, nil
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}

func isExpiredError(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

func parseRSAPrivateKey(pemString string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemString))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA private key")
	}
	return key, nil
}

func parseRSAPublicKey(pemString string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemString))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return key, nil
}
