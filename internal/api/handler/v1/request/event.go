package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Sport            string   `json:"sport"`
	Level            string   `json:"level"`
	Gender           string   `json:"gender"`
	Location         string   `json:"location"`
	PlaceID          *uint    `json:"place_id"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	StartsAt         string   `json:"starts_at" format:"RFC3339"`
	TransportStation string   `json:"transport_station"`
	TransportLines   []string `json:"transport_lines"`
	IsAccessible     bool     `json:"is_accessible"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Sport, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Level, validation.Required, validation.In("beginner", "intermediate", "advanced", "all")),
		validation.Field(&req.Gender, validation.Required, validation.In("male", "female", "mixed")),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// ParseStartsAt parses the RFC 3339 start time from the request body.
func (req *CreateEventRequest) ParseStartsAt() (time.Time, error) {
	return time.Parse(time.RFC3339, req.StartsAt)
}
