package repository

import (
	"context"
	"errors"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// TournamentRepositoryImpl implements the TournamentRepository interface
type TournamentRepositoryImpl struct {
	*BaseRepository[models.Tournament, models.TournamentFilter]
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &TournamentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Tournament, models.TournamentFilter](db),
	}
}

// ByID retrieves a tournament by ID with its venue preloaded
func (r *TournamentRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Tournament, error) {
	db := r.getDB(ctx)

	var tournament models.Tournament
	err := db.Preload("Venue").Last(&tournament, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &tournament, nil
}

// ByUUID retrieves a tournament by UUID
func (r *TournamentRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Tournament, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.TournamentFilter{UUID: &parsedUUID}
	tournaments, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(tournaments) == 0 {
		return nil, nil
	}

	return tournaments[0], nil
}

// ListByStatus retrieves tournaments by status with pagination
func (r *TournamentRepositoryImpl) ListByStatus(ctx context.Context, status models.TournamentStatus, limit, offset int) ([]*models.Tournament, error) {
	filter := models.TournamentFilter{Status: &status}
	return r.ByFilter(ctx, filter, "tournament_date ASC", limit, offset)
}

// ListByCreator retrieves tournaments submitted by a player with pagination
func (r *TournamentRepositoryImpl) ListByCreator(ctx context.Context, playerID uint, limit, offset int) ([]*models.Tournament, error) {
	filter := models.TournamentFilter{CreatedBy: &playerID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Update updates a tournament
func (r *TournamentRepositoryImpl) Update(ctx context.Context, tournament models.Tournament) error {
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

	tournament.UpdatedAt = utils.UTCNowPtr()

	err = db.Save(&tournament).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus updates only the status of a tournament
func (r *TournamentRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.TournamentStatus) error {
	db := r.getDB(ctx)
	return db.Model(&models.Tournament{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
}

// ByFilter retrieves tournaments based on filter criteria, venue preloaded
func (r *TournamentRepositoryImpl) ByFilter(ctx context.Context, filter models.TournamentFilter, orderBy string, limit, offset int) ([]*models.Tournament, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Tournament{}), filter).Preload("Venue")
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Tournament
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of tournaments matching the filter
func (r *TournamentRepositoryImpl) Count(ctx context.Context, filter models.TournamentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Tournament{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any tournament matching the filter exists
func (r *TournamentRepositoryImpl) Exists(ctx context.Context, filter models.TournamentFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *TournamentRepositoryImpl) applyFilter(db *gorm.DB, f models.TournamentFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.GameType != nil {
		db = db.Where("game_type = ?", *f.GameType)
	}
	if f.Format != nil {
		db = db.Where("tournament_format = ?", *f.Format)
	}
	if f.TableSize != nil {
		db = db.Where("table_size = ?", *f.TableSize)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.VenueID != nil {
		db = db.Where("venue_id = ?", *f.VenueID)
	}
	if f.VenueState != nil {
		db = db.Where("venue_id IN (SELECT id FROM venues WHERE state = ?)", *f.VenueState)
	}
	if f.CreatedBy != nil {
		db = db.Where("created_by = ?", *f.CreatedBy)
	}
	if f.DateAfter != nil {
		db = db.Where("tournament_date >= ?", *f.DateAfter)
	}
	if f.DateBefore != nil {
		db = db.Where("tournament_date <= ?", *f.DateBefore)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	if f.MinEntryFee != nil {
		db = db.Where("entry_fee >= ?", *f.MinEntryFee)
	}
	if f.MaxEntryFee != nil {
		db = db.Where("entry_fee <= ?", *f.MaxEntryFee)
	}
	if f.ReportsToFargo != nil {
		db = db.Where("reports_to_fargo = ?", *f.ReportsToFargo)
	}
	if f.OpenTournament != nil {
		db = db.Where("open_tournament = ?", *f.OpenTournament)
	}
	return db
}
