package repository

import (
	"context"

	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// VenueRepositoryImpl implements the VenueRepository interface
type VenueRepositoryImpl struct {
	*BaseRepository[models.Venue, models.VenueFilter]
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &VenueRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Venue, models.VenueFilter](db),
	}
}

// ByUUID retrieves a venue by UUID
func (r *VenueRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Venue, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.VenueFilter{UUID: &parsedUUID}
	venues, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(venues) == 0 {
		return nil, nil
	}

	return venues[0], nil
}

// ListByState retrieves venues in a state with pagination
func (r *VenueRepositoryImpl) ListByState(ctx context.Context, state string, limit, offset int) ([]*models.Venue, error) {
	filter := models.VenueFilter{State: &state}
	return r.ByFilter(ctx, filter, "name ASC", limit, offset)
}

// ByFilter retrieves venues based on filter criteria
func (r *VenueRepositoryImpl) ByFilter(ctx context.Context, filter models.VenueFilter, orderBy string, limit, offset int) ([]*models.Venue, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Venue{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Venue
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of venues matching the filter
func (r *VenueRepositoryImpl) Count(ctx context.Context, filter models.VenueFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Venue{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any venue matching the filter exists
func (r *VenueRepositoryImpl) Exists(ctx context.Context, filter models.VenueFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *VenueRepositoryImpl) applyFilter(db *gorm.DB, f models.VenueFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.Name != nil {
		db = db.Where("name = ?", *f.Name)
	}
	if f.City != nil {
		db = db.Where("city = ?", *f.City)
	}
	if f.State != nil {
		db = db.Where("state = ?", *f.State)
	}
	return db
}
