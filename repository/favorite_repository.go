package repository

import (
	"context"
	"errors"

	"github.com/tannermartz/breakline/models"
	"gorm.io/gorm"
)

// FavoriteRepositoryImpl implements the FavoriteRepository interface
type FavoriteRepositoryImpl struct {
	*BaseRepository[models.Favorite, models.FavoriteFilter]
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &FavoriteRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Favorite, models.FavoriteFilter](db),
	}
}

// ByPlayerAndTournament retrieves a favorite by its identifying pair
func (r *FavoriteRepositoryImpl) ByPlayerAndTournament(ctx context.Context, playerID, tournamentID uint) (*models.Favorite, error) {
	db := r.getDB(ctx)

	var favorite models.Favorite
	err := db.Where("player_id = ? AND tournament_id = ?", playerID, tournamentID).
		Last(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &favorite, nil
}

// ListByPlayer retrieves a player's favorites with their tournaments preloaded
func (r *FavoriteRepositoryImpl) ListByPlayer(ctx context.Context, playerID uint, limit, offset int) ([]*models.Favorite, error) {
	db := r.getDB(ctx)

	query := db.Where("player_id = ?", playerID).
		Preload("Tournament").
		Preload("Tournament.Venue").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Favorite
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a favorite by its identifying pair
func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, playerID, tournamentID uint) error {
	db := r.getDB(ctx)
	return db.Where("player_id = ? AND tournament_id = ?", playerID, tournamentID).
		Delete(&models.Favorite{}).Error
}

// ByFilter retrieves favorites based on filter criteria
func (r *FavoriteRepositoryImpl) ByFilter(ctx context.Context, filter models.FavoriteFilter, orderBy string, limit, offset int) ([]*models.Favorite, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Favorite{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Favorite
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of favorites matching the filter
func (r *FavoriteRepositoryImpl) Count(ctx context.Context, filter models.FavoriteFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Favorite{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any favorite matching the filter exists
func (r *FavoriteRepositoryImpl) Exists(ctx context.Context, filter models.FavoriteFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *FavoriteRepositoryImpl) applyFilter(db *gorm.DB, f models.FavoriteFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.PlayerID != nil {
		db = db.Where("player_id = ?", *f.PlayerID)
	}
	if f.TournamentID != nil {
		db = db.Where("tournament_id = ?", *f.TournamentID)
	}
	return db
}
