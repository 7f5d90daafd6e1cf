package response

import (
	"github.com/sportconnect/sportconnect-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type JoinEventResponse struct {
	Message       string `json:"message"`
	AwardedPoints int    `json:"awarded_points"`
	TotalPoints   int    `json:"total_points"`
}

type LeaveEventResponse struct {
	Message        string `json:"message"`
	PointsReversed int    `json:"points_reversed"`
	TotalPoints    int    `json:"total_points"`
}

type LeaderboardEntry struct {
	Rank        int          `json:"rank"`
	ID          uint         `json:"id"`
	Username    string       `json:"username"`
	AvatarColor string       `json:"avatar_color"`
	Points      int          `json:"points"`
	Level       domain.Level `json:"level"`
}

type CoachResponse struct {
	Answer string `json:"answer"`
}
