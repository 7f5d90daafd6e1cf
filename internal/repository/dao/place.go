package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPlaceNotFound = errors.New("place not found")

type Place struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null"`
	Address string
	City    string `gorm:"not null"`

	Latitude  *float64
	Longitude *float64

	Sports           string // comma-separated list
	IsPMRAccessible  bool   `gorm:"not null;default:false"`
	TransportStation string
	TransportLines   string // JSON-encoded list

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
}

type PlaceDAO struct {
	db *gorm.DB
}

func NewPlaceDAO(db *gorm.DB) *PlaceDAO {
	return &PlaceDAO{
		db: db,
	}
}

func (d *PlaceDAO) Insert(ctx context.Context, place Place) (Place, error) {
	result := d.db.WithContext(ctx).Create(&place)
	if result.Error != nil {
		return Place{}, result.Error
	}

	return place, nil
}

func (d *PlaceDAO) FindByID(ctx context.Context, id uint) (Place, error) {
	var place Place

	result := d.db.WithContext(ctx).First(&place, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Place{}, ErrPlaceNotFound
		}

		return Place{}, result.Error
	}

	return place, nil
}

func (d *PlaceDAO) FindAll(ctx context.Context, activeOnly bool) ([]Place, error) {
	tx := d.db.WithContext(ctx)
	if activeOnly {
		tx = tx.Where("is_active = TRUE")
	}

	var places []Place
	result := tx.Order("city ASC, name ASC").Find(&places)
	if result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

func (d *PlaceDAO) Update(ctx context.Context, place Place) (Place, error) {
	result := d.db.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", place.ID).
		Updates(map[string]any{
			"name":              place.Name,
			"address":           place.Address,
			"city":              place.City,
			"latitude":          place.Latitude,
			"longitude":         place.Longitude,
			"sports":            place.Sports,
			"is_pmr_accessible": place.IsPMRAccessible,
			"transport_station": place.TransportStation,
			"transport_lines":   place.TransportLines,
		})
	if result.Error != nil {
		return Place{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Place{}, ErrPlaceNotFound
	}

	return d.FindByID(ctx, place.ID)
}

// SetActive soft-deactivates (or restores) a place. Places referenced by
// events are never hard-deleted.
func (d *PlaceDAO) SetActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlaceNotFound
	}

	return nil
}
