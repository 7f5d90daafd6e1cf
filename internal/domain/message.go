package domain

import "time"

// Message is a chat entry scoped to one event. Append-only.
type Message struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	AvatarColor string    `json:"avatar_color,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
