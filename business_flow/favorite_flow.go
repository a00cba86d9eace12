// Package businessflow contains the core business logic and use cases for favorite workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"gorm.io/gorm"
)

// FavoriteFlow handles the favorite business logic
type FavoriteFlow interface {
	AddFavorite(ctx context.Context, req *dto.AddFavoriteRequest, metadata *ClientMetadata) (*dto.AddFavoriteResponse, error)
	RemoveFavorite(ctx context.Context, req *dto.RemoveFavoriteRequest, metadata *ClientMetadata) (*dto.RemoveFavoriteResponse, error)
	ListFavorites(ctx context.Context, req *dto.ListFavoritesRequest, metadata *ClientMetadata) (*dto.ListFavoritesResponse, error)
}

// FavoriteFlowImpl implements the favorite business flow
type FavoriteFlowImpl struct {
	favoriteRepo   repository.FavoriteRepository
	tournamentRepo repository.TournamentRepository
	playerRepo     repository.PlayerRepository
	auditRepo      repository.AuditLogRepository
	db             *gorm.DB
}

// NewFavoriteFlow creates a new favorite flow instance
func NewFavoriteFlow(
	favoriteRepo repository.FavoriteRepository,
	tournamentRepo repository.TournamentRepository,
	playerRepo repository.PlayerRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) FavoriteFlow {
	return &FavoriteFlowImpl{
		favoriteRepo:   favoriteRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		auditRepo:      auditRepo,
		db:             db,
	}
}

// AddFavorite marks a tournament as a favorite; adding twice is a no-op
func (s *FavoriteFlowImpl) AddFavorite(ctx context.Context, req *dto.AddFavoriteRequest, metadata *ClientMetadata) (*dto.AddFavoriteResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, req.TournamentUUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	existing, err := s.favoriteRepo.ByPlayerAndTournament(ctx, player.ID, tournament.ID)
	if err != nil {
		return nil, NewBusinessError("FAVORITE_LOOKUP_FAILED", "Failed to lookup favorite", err)
	}
	if existing != nil {
		return &dto.AddFavoriteResponse{Message: "Tournament already favorited"}, nil
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.favoriteRepo.Save(txCtx, &models.Favorite{
			PlayerID:     player.ID,
			TournamentID: tournament.ID,
		})
	})

	if err != nil {
		return nil, NewBusinessError("FAVORITE_ADD_FAILED", "Failed to add favorite", err)
	}

	msg := fmt.Sprintf("Favorite added: %s", tournament.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionFavoriteAdded, msg, true, nil, metadata)

	return &dto.AddFavoriteResponse{Message: "Tournament favorited"}, nil
}

// RemoveFavorite deletes a favorite
func (s *FavoriteFlowImpl) RemoveFavorite(ctx context.Context, req *dto.RemoveFavoriteRequest, metadata *ClientMetadata) (*dto.RemoveFavoriteResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, req.TournamentUUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	existing, err := s.favoriteRepo.ByPlayerAndTournament(ctx, player.ID, tournament.ID)
	if err != nil {
		return nil, NewBusinessError("FAVORITE_LOOKUP_FAILED", "Failed to lookup favorite", err)
	}
	if existing == nil {
		return nil, NewBusinessError("FAVORITE_NOT_FOUND", "Favorite not found", ErrFavoriteNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.favoriteRepo.Delete(txCtx, player.ID, tournament.ID)
	})

	if err != nil {
		return nil, NewBusinessError("FAVORITE_REMOVE_FAILED", "Failed to remove favorite", err)
	}

	msg := fmt.Sprintf("Favorite removed: %s", tournament.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionFavoriteRemoved, msg, true, nil, metadata)

	return &dto.RemoveFavoriteResponse{Message: "Favorite removed"}, nil
}

// ListFavorites returns the player's favorited tournaments
func (s *FavoriteFlowImpl) ListFavorites(ctx context.Context, req *dto.ListFavoritesRequest, metadata *ClientMetadata) (*dto.ListFavoritesResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	favorites, err := s.favoriteRepo.ListByPlayer(ctx, player.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("FAVORITE_LIST_FAILED", "Failed to list favorites", err)
	}

	tournaments := make([]dto.TournamentDTO, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.Tournament != nil {
			tournaments = append(tournaments, ToTournamentDTO(*favorite.Tournament))
			continue
		}

		t, err := s.tournamentRepo.ByID(ctx, favorite.TournamentID)
		if err != nil || t == nil {
			continue
		}
		tournaments = append(tournaments, ToTournamentDTO(*t))
	}

	return &dto.ListFavoritesResponse{
		Message:     "Favorites retrieved successfully",
		Tournaments: tournaments,
	}, nil
}
