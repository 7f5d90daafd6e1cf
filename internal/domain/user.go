package domain

import (
	"strings"
	"time"
)

const DefaultAvatarColor = "#6c757d"

type User struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	Password    string    `json:"-"`
	Points      int       `json:"points"`
	AvatarColor string    `json:"avatar_color"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u User) Level() Level {
	return ComputeLevel(u.Points)
}

// Initials returns up to two uppercase letters for the avatar badge.
func (u User) Initials() string {
	if u.Username == "" {
		return "?"
	}

	parts := strings.Fields(u.Username)
	if len(parts) >= 2 {
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[1]))
	}

	runes := []rune(u.Username)
	if len(runes) == 1 {
		return strings.ToUpper(string(runes))
	}

	return strings.ToUpper(string(runes[:2]))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}

	return ""
}

// ApplyDelta is the ledger rule: a signed delta applied to a balance, clamped
// at zero. Excess negative delta is absorbed, not tracked as debt.
func ApplyDelta(balance, delta int) int {
	if balance+delta < 0 {
		return 0
	}

	return balance + delta
}
