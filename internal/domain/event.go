package domain

import "time"

type Event struct {
	ID               uint      `json:"id"`
	Sport            string    `json:"sport"`
	Level            string    `json:"level"`
	Gender           string    `json:"gender"`
	Location         string    `json:"location"`
	PlaceID          *uint     `json:"place_id,omitempty"`
	Place            *Place    `json:"place,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	StartsAt         time.Time `json:"starts_at"`
	TransportStation string    `json:"transport_station,omitempty"`
	TransportLines   []string  `json:"transport_lines,omitempty"`
	IsAccessible     bool      `json:"is_accessible"`
	IsCancelled      bool      `json:"is_cancelled"`
	OrganizerID      uint      `json:"organizer_id"`
	OrganizerName    string    `json:"organizer_name,omitempty"`
	Participants     int       `json:"participants"`
	IsJoined         bool      `json:"is_joined"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventFilter narrows the upcoming-events listing. Zero values mean "any".
type EventFilter struct {
	Sport          string
	Level          string
	Gender         string
	Location       string
	PlaceID        uint
	AccessibleOnly bool
	IncludePast    bool
}
