package domain

// Points awarded or charged by the ledger for each lifecycle action. Leaving
// an event is deliberately absent: it reverses the amount stored on the
// participation row, never a constant.
const (
	PointsCreateEvent = 20
	PointsJoinEvent   = 50
	PointsCancelEvent = -10
)

// Level describes the tier a point total falls into.
type Level struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Progress  int    `json:"progress"`
	Points    int    `json:"points"`
	NextLevel int    `json:"next_level"`
}

type tier struct {
	name  string
	color string
	min   int
	max   int // 0 marks the unbounded top tier
}

// The tiers partition [0, +inf): every max equals the next tier's min.
var tiers = []tier{
	{name: "Beginner", color: "secondary", min: 0, max: 100},
	{name: "Explorer", color: "info", min: 100, max: 200},
	{name: "Confirmed Athlete", color: "warning", min: 200, max: 500},
	{name: "Olympic Champion", color: "success", min: 500, max: 1000},
	{name: "Sport Legend", color: "danger", min: 1000, max: 0},
}

// ComputeLevel maps a point total to its tier. Total over all int inputs.
func ComputeLevel(points int) Level {
	for _, t := range tiers {
		if points < t.min {
			continue
		}

		if t.max == 0 {
			// Top tier: no further progress is representable.
			return Level{
				Name:      t.name,
				Color:     t.color,
				Progress:  100,
				Points:    points,
				NextLevel: points,
			}
		}

		if points < t.max {
			return Level{
				Name:      t.name,
				Color:     t.color,
				Progress:  100 * (points - t.min) / (t.max - t.min),
				Points:    points,
				NextLevel: t.max,
			}
		}
	}

	// Only reachable for negative input, which no stored balance can hold.
	return Level{
		Name:      tiers[0].name,
		Color:     tiers[0].color,
		Progress:  0,
		Points:    0,
		NextLevel: tiers[0].max,
	}
}
