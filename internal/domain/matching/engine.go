package matching

import (
	"math"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
)

const (
	commonSkillBonus    = 5
	maxCommonSkillBonus = 20
)

type MatchEntry struct {
	Wanted    skill.Skill
	BestMatch skill.Skill
	Score     float64
}

type CommonSkillEntry struct {
	Skill      skill.Skill
	User1Level string
	User2Level string
}

type Breakdown struct {
	User1Wants       []MatchEntry
	User2Wants       []MatchEntry
	CommonSkills     []CommonSkillEntry
	TotalScore       float64
	MaxPossibleScore float64
}

// ScoreSkillPair returns how well two skills line up, in [0,1]. Skills with different
// names (compared case-insensitively) or without a name never match; same-named skills
// score by how far apart their levels are.
func ScoreSkillPair(a, b skill.Skill) float64 {
	if !a.HasName() || !b.HasName() {
		return 0
	}
	if a.Key() != b.Key() {
		return 0
	}

	switch absInt(a.Level.Weight() - b.Level.Weight()) {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.6
	case 3:
		return 0.3
	default:
		return 0.1
	}
}

// MatchPercentage scores user1 against user2 on a 0-100 scale. Every wanted skill on
// either side counts toward the denominator whether or not the other side offers it.
// Skills user1 offers that user2 wants add a bonus of 5 points each, capped at 20.
func MatchPercentage(user1, user2 user.Profile) int {
	if user1.OfferedSkills == nil || user1.WantedSkills == nil ||
		user2.OfferedSkills == nil || user2.WantedSkills == nil {
		return 0
	}

	var totalScore, maxPossibleScore float64

	for _, wanted := range user1.WantedSkills {
		best, _ := bestOffer(wanted, user2.OfferedSkills)
		totalScore += best
		maxPossibleScore++
	}
	for _, wanted := range user2.WantedSkills {
		best, _ := bestOffer(wanted, user1.OfferedSkills)
		totalScore += best
		maxPossibleScore++
	}

	if maxPossibleScore == 0 {
		return 0
	}

	base := (totalScore / maxPossibleScore) * 100
	bonus := math.Min(float64(countCommonSkills(user1.OfferedSkills, user2.WantedSkills)*commonSkillBonus), maxCommonSkillBonus)

	score := int(math.Round(base + bonus))
	return clampInt(score, 0, 100)
}

// MatchBreakdown explains a match: for each wanted skill, the offered skill that scored
// best. Wants with no compatible offer are left out of the lists but still count in
// MaxPossibleScore, so TotalScore/MaxPossibleScore agrees with MatchPercentage's base.
func MatchBreakdown(user1, user2 user.Profile) Breakdown {
	b := Breakdown{
		User1Wants:   make([]MatchEntry, 0),
		User2Wants:   make([]MatchEntry, 0),
		CommonSkills: make([]CommonSkillEntry, 0),
	}

	for _, wanted := range user1.WantedSkills {
		score, idx := bestOffer(wanted, user2.OfferedSkills)
		if idx >= 0 {
			b.User1Wants = append(b.User1Wants, MatchEntry{Wanted: wanted, BestMatch: user2.OfferedSkills[idx], Score: score})
			b.TotalScore += score
		}
		b.MaxPossibleScore++
	}
	for _, wanted := range user2.WantedSkills {
		score, idx := bestOffer(wanted, user1.OfferedSkills)
		if idx >= 0 {
			b.User2Wants = append(b.User2Wants, MatchEntry{Wanted: wanted, BestMatch: user1.OfferedSkills[idx], Score: score})
			b.TotalScore += score
		}
		b.MaxPossibleScore++
	}

	for _, offered := range user1.OfferedSkills {
		for _, wanted := range user2.WantedSkills {
			if !sameSkill(offered, wanted) {
				continue
			}
			b.CommonSkills = append(b.CommonSkills, CommonSkillEntry{
				Skill:      offered,
				User1Level: string(offered.Level),
				User2Level: string(wanted.Level),
			})
		}
	}

	return b
}

// bestOffer finds the offered skill scoring highest against wanted. The first offer
// reaching the maximum wins; idx is -1 when nothing scores above zero.
func bestOffer(wanted skill.Skill, offered []skill.Skill) (float64, int) {
	best := 0.0
	idx := -1
	for i, o := range offered {
		s := ScoreSkillPair(wanted, o)
		if s > best {
			best = s
			idx = i
		}
	}
	return best, idx
}

// countCommonSkills counts entries of offered whose name appears anywhere in wanted.
func countCommonSkills(offered, wanted []skill.Skill) int {
	n := 0
	for _, o := range offered {
		for _, w := range wanted {
			if sameSkill(o, w) {
				n++
				break
			}
		}
	}
	return n
}

func sameSkill(a, b skill.Skill) bool {
	return a.HasName() && b.HasName() && a.Key() == b.Key()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
