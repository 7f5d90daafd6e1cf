package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
)

var ErrPlaceNotFound = dao.ErrPlaceNotFound

type PlaceDAO interface {
	Insert(ctx context.Context, place dao.Place) (dao.Place, error)
	FindByID(ctx context.Context, id uint) (dao.Place, error)
	FindAll(ctx context.Context, activeOnly bool) ([]dao.Place, error)
	Update(ctx context.Context, place dao.Place) (dao.Place, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type PlaceRepository struct {
	dao PlaceDAO
}

func NewPlaceRepository(dao PlaceDAO) *PlaceRepository {
	return &PlaceRepository{
		dao: dao,
	}
}

func (r *PlaceRepository) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	created, err := r.dao.Insert(ctx, placeDomainToDao(place))
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return placeDaoToDomain(created), nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id uint) (domain.Place, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return placeDaoToDomain(found), nil
}

func (r *PlaceRepository) FindAll(ctx context.Context, activeOnly bool) ([]domain.Place, error) {
	found, err := r.dao.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	places := make([]domain.Place, 0, len(found))
	for _, p := range found {
		places = append(places, placeDaoToDomain(p))
	}

	return places, nil
}

func (r *PlaceRepository) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	updated, err := r.dao.Update(ctx, placeDomainToDao(place))
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return placeDaoToDomain(updated), nil
}

func (r *PlaceRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func placeDomainToDao(p domain.Place) dao.Place {
	return dao.Place{
		ID:               p.ID,
		Name:             p.Name,
		Address:          p.Address,
		City:             p.City,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Sports:           strings.Join(p.Sports, ","),
		IsPMRAccessible:  p.IsPMRAccessible,
		TransportStation: p.TransportStation,
		TransportLines:   encodeLines(p.TransportLines),
		IsActive:         p.IsActive,
	}
}

func placeDaoToDomain(p dao.Place) domain.Place {
	var sports []string
	if p.Sports != "" {
		sports = strings.Split(p.Sports, ",")
	}

	return domain.Place{
		ID:               p.ID,
		Name:             p.Name,
		Address:          p.Address,
		City:             p.City,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Sports:           sports,
		IsPMRAccessible:  p.IsPMRAccessible,
		TransportStation: p.TransportStation,
		TransportLines:   decodeLines(p.TransportLines),
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
	}
}
