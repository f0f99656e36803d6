package matching

import "skill-swap/internal/domain/user"

// Match bundles everything a client needs to render one pairing.
type Match struct {
	Percentage int
	Label      string
	ColorClass string
	BadgeClass string
	Breakdown  Breakdown
}

func Evaluate(user1, user2 user.Profile) Match {
	pct := MatchPercentage(user1, user2)
	return Match{
		Percentage: pct,
		Label:      Describe(pct),
		ColorClass: ColorClass(pct),
		BadgeClass: BadgeClass(pct),
		Breakdown:  MatchBreakdown(user1, user2),
	}
}

func Describe(percentage int) string {
	switch {
	case percentage >= 90:
		return "Perfect Match!"
	case percentage >= 80:
		return "Excellent Match"
	case percentage >= 70:
		return "Great Match"
	case percentage >= 60:
		return "Good Match"
	case percentage >= 50:
		return "Fair Match"
	case percentage >= 30:
		return "Poor Match"
	default:
		return "No Match"
	}
}

// ColorClass and BadgeClass break at 80/60/40, not at the Describe thresholds.
func ColorClass(percentage int) string {
	switch {
	case percentage >= 80:
		return "text-green-600"
	case percentage >= 60:
		return "text-blue-600"
	case percentage >= 40:
		return "text-yellow-600"
	default:
		return "text-red-600"
	}
}

func BadgeClass(percentage int) string {
	switch {
	case percentage >= 80:
		return "bg-green-100 text-green-800"
	case percentage >= 60:
		return "bg-blue-100 text-blue-800"
	case percentage >= 40:
		return "bg-yellow-100 text-yellow-800"
	default:
		return "bg-red-100 text-red-800"
	}
}
