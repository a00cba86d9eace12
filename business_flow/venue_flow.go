// Package businessflow contains the core business logic and use cases for venue workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"gorm.io/gorm"
)

// VenueFlow handles the venue directory
type VenueFlow interface {
	CreateVenue(ctx context.Context, req *dto.CreateVenueRequest, metadata *ClientMetadata) (*dto.CreateVenueResponse, error)
	ListVenues(ctx context.Context, req *dto.ListVenuesRequest) (*dto.ListVenuesResponse, error)
}

// VenueFlowImpl implements the venue business flow
type VenueFlowImpl struct {
	venueRepo repository.VenueRepository
	db        *gorm.DB
}

// NewVenueFlow creates a new venue flow instance
func NewVenueFlow(venueRepo repository.VenueRepository, db *gorm.DB) VenueFlow {
	return &VenueFlowImpl{
		venueRepo: venueRepo,
		db:        db,
	}
}

// CreateVenue adds a venue to the directory
func (s *VenueFlowImpl) CreateVenue(ctx context.Context, req *dto.CreateVenueRequest, metadata *ClientMetadata) (*dto.CreateVenueResponse, error) {
	venue := &models.Venue{
		UUID:    uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		City:    strings.TrimSpace(req.City),
		State:   strings.ToUpper(strings.TrimSpace(req.State)),
		Phone:   req.Phone,
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.venueRepo.Save(txCtx, venue)
	})
	if err != nil {
		return nil, NewBusinessError("VENUE_CREATE_FAILED", "Failed to create venue", err)
	}

	return &dto.CreateVenueResponse{
		Message: "Venue created successfully",
		Venue:   ToVenueDTO(*venue),
	}, nil
}

// ListVenues returns venues, optionally narrowed to one state
func (s *VenueFlowImpl) ListVenues(ctx context.Context, req *dto.ListVenuesRequest) (*dto.ListVenuesResponse, error) {
	filter := models.VenueFilter{}
	if req.State != nil {
		state := strings.ToUpper(*req.State)
		filter.State = &state
	}

	venues, err := s.venueRepo.ByFilter(ctx, filter, "name ASC", req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("VENUE_LIST_FAILED", "Failed to list venues", err)
	}

	total, err := s.venueRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("VENUE_COUNT_FAILED", "Failed to count venues", err)
	}

	dtos := make([]dto.VenueDTO, 0, len(venues))
	for _, v := range venues {
		dtos = append(dtos, ToVenueDTO(*v))
	}

	return &dto.ListVenuesResponse{
		Message: "Venues retrieved successfully",
		Venues:  dtos,
		Total:   total,
	}, nil
}
