package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errInvalidPlaceName = errors.New("name must be between 2 and 100 characters")
	errInvalidPlaceCity = errors.New("city must be between 1 and 50 characters")
)

type CreatePlaceRequest struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Sports           []string `json:"sports"`
	IsPMRAccessible  bool     `json:"is_pmr_accessible"`
	TransportStation string   `json:"transport_station"`
	TransportLines   []string `json:"transport_lines"`
}

func (req *CreatePlaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.City, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Address, validation.Length(0, 200)),
	)
}

type UpdatePlaceRequest struct {
	Name             *string   `json:"name"`
	Address          *string   `json:"address"`
	City             *string   `json:"city"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	Sports           *[]string `json:"sports"`
	IsPMRAccessible  *bool     `json:"is_pmr_accessible"`
	TransportStation *string   `json:"transport_station"`
	TransportLines   *[]string `json:"transport_lines"`
}

func (req *UpdatePlaceRequest) Validate() error {
	if req.Name != nil {
		if err := validation.Validate(*req.Name, validation.Required, validation.Length(2, 100)); err != nil {
			return errInvalidPlaceName
		}
	}
	if req.City != nil {
		if err := validation.Validate(*req.City, validation.Required, validation.Length(1, 50)); err != nil {
			return errInvalidPlaceCity
		}
	}

	return nil
}
