// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/tannermartz/breakline/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// PlayerRepository defines operations for player accounts
type PlayerRepository interface {
	Repository[models.Player, models.PlayerFilter]
	ByEmail(ctx context.Context, email string) (*models.Player, error)
	ByUUID(ctx context.Context, uuid string) (*models.Player, error)
	Update(ctx context.Context, player models.Player) error
	UpdatePassword(ctx context.Context, playerID uint, passwordHash string) error
	UpdateActiveStatus(ctx context.Context, playerID uint, isActive bool) error
	UpdateLastLogin(ctx context.Context, playerID uint, at time.Time) error
}

// VenueRepository defines operations for venues
type VenueRepository interface {
	Repository[models.Venue, models.VenueFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Venue, error)
	ListByState(ctx context.Context, state string, limit, offset int) ([]*models.Venue, error)
}

// TournamentRepository defines operations for tournament listings
type TournamentRepository interface {
	Repository[models.Tournament, models.TournamentFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus, limit, offset int) ([]*models.Tournament, error)
	ListByCreator(ctx context.Context, playerID uint, limit, offset int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament models.Tournament) error
	UpdateStatus(ctx context.Context, id uint, status models.TournamentStatus) error
}

// SearchAlertRepository defines operations for search alerts
type SearchAlertRepository interface {
	Repository[models.SearchAlert, models.SearchAlertFilter]
	ByUUID(ctx context.Context, uuid string) (*models.SearchAlert, error)
	ListByPlayer(ctx context.Context, playerID uint, limit, offset int) ([]*models.SearchAlert, error)
	ListActiveAlerts(ctx context.Context) ([]*models.SearchAlert, error)
	Update(ctx context.Context, alert models.SearchAlert) error
	Delete(ctx context.Context, id uint) error
	IncrementMatchCount(ctx context.Context, alertID uint, matchedAt time.Time) error
}

// AlertMatchRepository defines operations for recorded alert matches
type AlertMatchRepository interface {
	Repository[models.AlertMatch, models.AlertMatchFilter]
	ListByTournamentAmongAlerts(ctx context.Context, tournamentID uint, alertIDs []uint) ([]*models.AlertMatch, error)
	ListByAlert(ctx context.Context, alertID uint, limit, offset int) ([]*models.AlertMatch, error)
	InsertIgnoringDuplicates(ctx context.Context, matches []*models.AlertMatch) (int64, error)
}

// FavoriteRepository defines operations for favorites
type FavoriteRepository interface {
	Repository[models.Favorite, models.FavoriteFilter]
	ByPlayerAndTournament(ctx context.Context, playerID, tournamentID uint) (*models.Favorite, error)
	ListByPlayer(ctx context.Context, playerID uint, limit, offset int) ([]*models.Favorite, error)
	Delete(ctx context.Context, playerID, tournamentID uint) error
}

// PlayerSessionRepository defines operations for player sessions
type PlayerSessionRepository interface {
	Repository[models.PlayerSession, models.PlayerSessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.PlayerSession, error)
	ByRefreshToken(ctx context.Context, token string) (*models.PlayerSession, error)
	ExpireSession(ctx context.Context, sessionID uint) error
	ExpireAllPlayerSessions(ctx context.Context, playerID uint) error
	CleanupExpiredSessions(ctx context.Context) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByPlayer(ctx context.Context, playerID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}
