package repository

import (
	"context"
	"errors"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// PlayerSessionRepositoryImpl implements the PlayerSessionRepository interface
type PlayerSessionRepositoryImpl struct {
	*BaseRepository[models.PlayerSession, models.PlayerSessionFilter]
}

// NewPlayerSessionRepository creates a new player session repository
func NewPlayerSessionRepository(db *gorm.DB) PlayerSessionRepository {
	return &PlayerSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PlayerSession, models.PlayerSessionFilter](db),
	}
}

// BySessionToken retrieves a session by its access token
func (r *PlayerSessionRepositoryImpl) BySessionToken(ctx context.Context, token string) (*models.PlayerSession, error) {
	db := r.getDB(ctx)

	var session models.PlayerSession
	err := db.Where("session_token = ?", token).Last(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// ByRefreshToken retrieves a session by its refresh token
func (r *PlayerSessionRepositoryImpl) ByRefreshToken(ctx context.Context, token string) (*models.PlayerSession, error) {
	db := r.getDB(ctx)

	var session models.PlayerSession
	err := db.Where("refresh_token = ?", token).Last(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// ExpireSession deactivates a single session
func (r *PlayerSessionRepositoryImpl) ExpireSession(ctx context.Context, sessionID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.PlayerSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"is_active":  false,
			"expires_at": utils.UTCNow(),
		}).Error
}

// ExpireAllPlayerSessions deactivates every session a player holds
func (r *PlayerSessionRepositoryImpl) ExpireAllPlayerSessions(ctx context.Context, playerID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.PlayerSession{}).
		Where("player_id = ? AND is_active = ?", playerID, true).
		Updates(map[string]any{
			"is_active":  false,
			"expires_at": utils.UTCNow(),
		}).Error
}

// CleanupExpiredSessions removes sessions past their expiry
func (r *PlayerSessionRepositoryImpl) CleanupExpiredSessions(ctx context.Context) error {
	db := r.getDB(ctx)
	return db.Where("expires_at < ?", utils.UTCNow()).
		Delete(&models.PlayerSession{}).Error
}

// ByFilter retrieves sessions based on filter criteria
func (r *PlayerSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.PlayerSessionFilter, orderBy string, limit, offset int) ([]*models.PlayerSession, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlayerSession{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.PlayerSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of sessions matching the filter
func (r *PlayerSessionRepositoryImpl) Count(ctx context.Context, filter models.PlayerSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlayerSession{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any session matching the filter exists
func (r *PlayerSessionRepositoryImpl) Exists(ctx context.Context, filter models.PlayerSessionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *PlayerSessionRepositoryImpl) applyFilter(db *gorm.DB, f models.PlayerSessionFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.PlayerID != nil {
		db = db.Where("player_id = ?", *f.PlayerID)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.IPAddress != nil {
		db = db.Where("ip_address = ?", *f.IPAddress)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	if f.ExpiresAfter != nil {
		db = db.Where("expires_at >= ?", *f.ExpiresAfter)
	}
	if f.ExpiresBefore != nil {
		db = db.Where("expires_at < ?", *f.ExpiresBefore)
	}
	return db
}
