package repository

import (
	"context"
	"fmt"

	"github.com/tannermartz/breakline/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlertMatchRepositoryImpl implements the AlertMatchRepository interface
type AlertMatchRepositoryImpl struct {
	*BaseRepository[models.AlertMatch, models.AlertMatchFilter]
}

// NewAlertMatchRepository creates a new alert match repository
func NewAlertMatchRepository(db *gorm.DB) AlertMatchRepository {
	return &AlertMatchRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AlertMatch, models.AlertMatchFilter](db),
	}
}

// ListByTournamentAmongAlerts retrieves the matches already recorded for a
// tournament among the given candidate alert IDs
func (r *AlertMatchRepositoryImpl) ListByTournamentAmongAlerts(ctx context.Context, tournamentID uint, alertIDs []uint) ([]*models.AlertMatch, error) {
	if len(alertIDs) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var rows []*models.AlertMatch
	err := db.Where("tournament_id = ? AND alert_id IN ?", tournamentID, alertIDs).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list existing matches for tournament %d: %w", tournamentID, err)
	}

	return rows, nil
}

// ListByAlert retrieves recorded matches for an alert with pagination
func (r *AlertMatchRepositoryImpl) ListByAlert(ctx context.Context, alertID uint, limit, offset int) ([]*models.AlertMatch, error) {
	filter := models.AlertMatchFilter{AlertID: &alertID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// InsertIgnoringDuplicates inserts match rows, silently skipping any that
// collide with the (alert_id, tournament_id) unique index. Returns the number
// of rows actually written, which is what match_count bookkeeping must follow.
func (r *AlertMatchRepositoryImpl) InsertIgnoringDuplicates(ctx context.Context, matches []*models.AlertMatch) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}

	db := r.getDB(ctx)

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "alert_id"}, {Name: "tournament_id"}},
		DoNothing: true,
	}).Create(&matches)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to insert alert matches: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// ByFilter retrieves alert matches based on filter criteria
func (r *AlertMatchRepositoryImpl) ByFilter(ctx context.Context, filter models.AlertMatchFilter, orderBy string, limit, offset int) ([]*models.AlertMatch, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AlertMatch{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.AlertMatch
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of alert matches matching the filter
func (r *AlertMatchRepositoryImpl) Count(ctx context.Context, filter models.AlertMatchFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AlertMatch{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any alert match matching the filter exists
func (r *AlertMatchRepositoryImpl) Exists(ctx context.Context, filter models.AlertMatchFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *AlertMatchRepositoryImpl) applyFilter(db *gorm.DB, f models.AlertMatchFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.AlertID != nil {
		db = db.Where("alert_id = ?", *f.AlertID)
	}
	if f.TournamentID != nil {
		db = db.Where("tournament_id = ?", *f.TournamentID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}
