// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/services"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate is the middleware function that validates JWT tokens
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, code, message := bearerToken(c)
		if code != "" {
			return unauthorized(c, code, message)
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			return tokenErrorResponse(c, err)
		}

		// Store player information in context for downstream handlers
		c.Locals("player_id", claims.PlayerID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)
		c.Locals("session_token", token)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// AdminAuthenticate validates JWT tokens and sets admin-specific context values
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, code, message := bearerToken(c)
		if code != "" {
			return unauthorized(c, code, message)
		}

		adminClaims, err := m.tokenService.ValidateAdminToken(token)
		if err != nil {
			return tokenErrorResponse(c, err)
		}

		c.Locals("admin_id", adminClaims.AdminID)
		c.Locals("token_id", adminClaims.TokenID)
		c.Locals("token_claims", adminClaims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// OptionalAuth validates JWT tokens if present, but doesn't require them
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Next()
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			// Token is invalid, but this is optional auth, so continue
			return c.Next()
		}

		c.Locals("player_id", claims.PlayerID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)
		c.Locals("session_token", token)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// bearerToken pulls the token out of the Authorization header; a non-empty
// code means the header was missing or malformed
func bearerToken(c fiber.Ctx) (token, code, message string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_AUTHORIZATION_HEADER", "Authorization header is required"
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "INVALID_AUTHORIZATION_FORMAT", "Invalid authorization header format. Expected 'Bearer <token>'"
	}

	token = strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "MISSING_ACCESS_TOKEN", "Access token is required"
	}

	return token, "", ""
}

func unauthorized(c fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}

func tokenErrorResponse(c fiber.Ctx, err error) error {
	var errorCode string
	var message string

	if errors.Is(err, services.ErrTokenExpired) {
		errorCode = "TOKEN_EXPIRED"
		message = "Access token has expired"
	} else if errors.Is(err, services.ErrTokenInvalid) {
		errorCode = "TOKEN_INVALID"
		message = "Invalid access token"
	} else if errors.Is(err, services.ErrTokenRevoked) {
		errorCode = "TOKEN_REVOKED"
		message = "Access token has been revoked"
	} else {
		errorCode = "TOKEN_VALIDATION_FAILED"
		message = "Token validation failed"
	}

	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
		},
	})
}

// GetPlayerIDFromContext extracts player ID from the request context
func GetPlayerIDFromContext(c fiber.Ctx) (uint, bool) {
	playerID, ok := c.Locals("player_id").(uint)
	return playerID, ok
}

// GetAdminIDFromContext extracts admin ID from the request context
func GetAdminIDFromContext(c fiber.Ctx) (uint, bool) {
	adminID, ok := c.Locals("admin_id").(uint)
	return adminID, ok
}

// GetSessionTokenFromContext extracts the raw bearer token from the request context
func GetSessionTokenFromContext(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals("session_token").(string)
	return token, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.TokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.TokenClaims)
	return claims, ok
}
