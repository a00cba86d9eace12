package repository

import (
	"context"
	"time"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// SearchAlertRepositoryImpl implements the SearchAlertRepository interface
type SearchAlertRepositoryImpl struct {
	*BaseRepository[models.SearchAlert, models.SearchAlertFilter]
}

// NewSearchAlertRepository creates a new search alert repository
func NewSearchAlertRepository(db *gorm.DB) SearchAlertRepository {
	return &SearchAlertRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SearchAlert, models.SearchAlertFilter](db),
	}
}

// ByUUID retrieves a search alert by UUID
func (r *SearchAlertRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.SearchAlert, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.SearchAlertFilter{UUID: &parsedUUID}
	alerts, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(alerts) == 0 {
		return nil, nil
	}

	return alerts[0], nil
}

// ListByPlayer retrieves a player's alerts with pagination
func (r *SearchAlertRepositoryImpl) ListByPlayer(ctx context.Context, playerID uint, limit, offset int) ([]*models.SearchAlert, error) {
	filter := models.SearchAlertFilter{PlayerID: &playerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// ListActiveAlerts retrieves every active alert across all players.
// This is the matcher's candidate set; it is unbounded by design.
func (r *SearchAlertRepositoryImpl) ListActiveAlerts(ctx context.Context) ([]*models.SearchAlert, error) {
	filter := models.SearchAlertFilter{IsActive: utils.ToPtr(true)}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// Update updates a search alert
func (r *SearchAlertRepositoryImpl) Update(ctx context.Context, alert models.SearchAlert) error {
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

	alert.UpdatedAt = utils.UTCNowPtr()

	err = db.Save(&alert).Error
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a search alert; recorded matches cascade with it
func (r *SearchAlertRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Delete(&models.SearchAlert{}, id).Error
}

// IncrementMatchCount bumps the alert's counter by exactly one and records
// the match time. Each call is its own unit of work so concurrent per-alert
// updates stay independent.
func (r *SearchAlertRepositoryImpl) IncrementMatchCount(ctx context.Context, alertID uint, matchedAt time.Time) error {
	db := r.getDB(ctx)
	return db.Model(&models.SearchAlert{}).
		Where("id = ?", alertID).
		Updates(map[string]any{
			"match_count":     gorm.Expr("match_count + 1"),
			"last_match_date": matchedAt,
			"updated_at":      utils.UTCNow(),
		}).Error
}

// ByFilter retrieves search alerts based on filter criteria
func (r *SearchAlertRepositoryImpl) ByFilter(ctx context.Context, filter models.SearchAlertFilter, orderBy string, limit, offset int) ([]*models.SearchAlert, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SearchAlert{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.SearchAlert
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of search alerts matching the filter
func (r *SearchAlertRepositoryImpl) Count(ctx context.Context, filter models.SearchAlertFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SearchAlert{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any search alert matching the filter exists
func (r *SearchAlertRepositoryImpl) Exists(ctx context.Context, filter models.SearchAlertFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *SearchAlertRepositoryImpl) applyFilter(db *gorm.DB, f models.SearchAlertFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.PlayerID != nil {
		db = db.Where("player_id = ?", *f.PlayerID)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}
