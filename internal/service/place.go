package service

import (
	"context"
	"fmt"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository"
)

var ErrPlaceNotFound = repository.ErrPlaceNotFound

type PlaceRepository interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	FindByID(ctx context.Context, id uint) (domain.Place, error)
	FindAll(ctx context.Context, activeOnly bool) ([]domain.Place, error)
	Update(ctx context.Context, place domain.Place) (domain.Place, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type PlaceService struct {
	repo PlaceRepository
}

func NewPlaceService(repo PlaceRepository) *PlaceService {
	return &PlaceService{
		repo: repo,
	}
}

// ListPlaces returns active places; admins may ask for the full directory.
func (s *PlaceService) ListPlaces(ctx context.Context, includeInactive bool) ([]domain.Place, error) {
	places, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return places, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id uint) (domain.Place, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return place, nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, place domain.Place) (domain.Place, error) {
	place.IsActive = true

	created, err := s.repo.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, place domain.Place) (domain.Place, error) {
	updated, err := s.repo.Update(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeactivatePlace soft-deletes: the place disappears from listings but stays
// referencable by existing events.
func (s *PlaceService) DeactivatePlace(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

func (s *PlaceService) RestorePlace(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}
