package domain

import "time"

type Place struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	Sports           []string  `json:"sports,omitempty"`
	IsPMRAccessible  bool      `json:"is_pmr_accessible"`
	TransportStation string    `json:"transport_station,omitempty"`
	TransportLines   []string  `json:"transport_lines,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}
