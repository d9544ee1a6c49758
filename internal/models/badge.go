package models

// Badge is the gamified award attached to a scored submission.
type Badge string

const (
	BadgeGold     Badge = "gold"
	BadgeSilver   Badge = "silver"
	BadgeBronze   Badge = "bronze"
	BadgeTryAgain Badge = "try_again"
)

// AwardBadge maps a normalized overall score in [0, 1] to a badge.
func AwardBadge(overall float64) Badge {
	switch {
	case overall > 0.9:
		return BadgeGold
	case overall > 0.75:
		return BadgeSilver
	case overall > 0.5:
		return BadgeBronze
	default:
		return BadgeTryAgain
	}
}
