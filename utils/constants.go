// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (30 days)
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Alert matching constants
const (
	// MaxAlertsPerPlayer caps how many saved search alerts one account may hold
	MaxAlertsPerPlayer = 20

	// MatchingTimeout bounds a single tournament's alert-matching pass
	MatchingTimeout = 15 * time.Second

	// ActiveAlertCacheTTL is how long the active-alert list stays cached in redis
	ActiveAlertCacheTTL = 5 * time.Minute

	// ActiveAlertCacheKey is the redis key holding the cached active-alert list
	ActiveAlertCacheKey = "active_search_alerts"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400

	// MaxLoginAttempts is how many failed logins an email gets per window
	MaxLoginAttempts = 5

	// LoginAttemptWindow is the sliding window for the login throttle
	LoginAttemptWindow = 15 * time.Minute

	// LoginAttemptsKeyPrefix namespaces the per-email throttle counters
	LoginAttemptsKeyPrefix = "login_attempts"
)
