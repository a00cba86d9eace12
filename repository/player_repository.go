package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// PlayerRepositoryImpl implements the PlayerRepository interface
type PlayerRepositoryImpl struct {
	*BaseRepository[models.Player, models.PlayerFilter]
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &PlayerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Player, models.PlayerFilter](db),
	}
}

// ByEmail retrieves a player by email address
func (r *PlayerRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Player, error) {
	filter := models.PlayerFilter{Email: &email}
	players, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find player by email: %w", err)
	}

	if len(players) == 0 {
		return nil, nil
	}

	return players[0], nil
}

// ByUUID retrieves a player by UUID
func (r *PlayerRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Player, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.PlayerFilter{UUID: &parsedUUID}
	players, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(players) == 0 {
		return nil, nil
	}

	return players[0], nil
}

// Update updates a player
func (r *PlayerRepositoryImpl) Update(ctx context.Context, player models.Player) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	player.UpdatedAt = utils.UTCNow()

	err = db.Save(&player).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdatePassword updates only the password hash of a player
func (r *PlayerRepositoryImpl) UpdatePassword(ctx context.Context, playerID uint, passwordHash string) error {
	db := r.getDB(ctx)
	return db.Model(&models.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    utils.UTCNow(),
		}).Error
}

// UpdateActiveStatus activates or deactivates a player account
func (r *PlayerRepositoryImpl) UpdateActiveStatus(ctx context.Context, playerID uint, isActive bool) error {
	db := r.getDB(ctx)
	return db.Model(&models.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]any{
			"is_active":  isActive,
			"updated_at": utils.UTCNow(),
		}).Error
}

// UpdateLastLogin records the last login time of a player
func (r *PlayerRepositoryImpl) UpdateLastLogin(ctx context.Context, playerID uint, at time.Time) error {
	db := r.getDB(ctx)
	return db.Model(&models.Player{}).
		Where("id = ?", playerID).
		Update("last_login_at", at).Error
}

// ByFilter retrieves players based on filter criteria
func (r *PlayerRepositoryImpl) ByFilter(ctx context.Context, filter models.PlayerFilter, orderBy string, limit, offset int) ([]*models.Player, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Player{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Player
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of players matching the filter
func (r *PlayerRepositoryImpl) Count(ctx context.Context, filter models.PlayerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Player{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any player matching the filter exists
func (r *PlayerRepositoryImpl) Exists(ctx context.Context, filter models.PlayerFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *PlayerRepositoryImpl) applyFilter(db *gorm.DB, f models.PlayerFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.Email != nil {
		db = db.Where("email = ?", *f.Email)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.IsAdmin != nil {
		db = db.Where("is_admin = ?", *f.IsAdmin)
	}
	if f.HomeState != nil {
		db = db.Where("home_state = ?", *f.HomeState)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	if f.LastLoginAfter != nil {
		db = db.Where("last_login_at >= ?", *f.LastLoginAfter)
	}
	if f.LastLoginBefore != nil {
		db = db.Where("last_login_at < ?", *f.LastLoginBefore)
	}
	return db
}
