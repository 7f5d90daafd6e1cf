package domain

import "time"

// Participation links a user to an event. PointsAwarded records what the join
// granted at the time, so leaving reverses exactly that amount even if the
// award constant changes later.
type Participation struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	EventID       uint      `json:"event_id"`
	PointsAwarded int       `json:"points_awarded"`
	JoinedAt      time.Time `json:"joined_at"`
}
