package dto

import (
	"skill-swap/internal/domain/matching"
	"skill-swap/internal/usecase"

	"github.com/google/uuid"
)

type MatchEntryResponse struct {
	Wanted    SkillResponse `json:"wanted"`
	BestMatch SkillResponse `json:"best_match"`
	Score     float64       `json:"score"`
}

type CommonSkillResponse struct {
	Skill      SkillResponse `json:"skill"`
	User1Level string        `json:"user1_level"`
	User2Level string        `json:"user2_level"`
}

type BreakdownResponse struct {
	User1Wants       []MatchEntryResponse  `json:"user1_wants"`
	User2Wants       []MatchEntryResponse  `json:"user2_wants"`
	CommonSkills     []CommonSkillResponse `json:"common_skills"`
	TotalScore       float64               `json:"total_score"`
	MaxPossibleScore float64               `json:"max_possible_score"`
}

type MatchResponse struct {
	UserID     uuid.UUID         `json:"user_id"`
	Percentage int               `json:"percentage"`
	Label      string            `json:"label"`
	ColorClass string            `json:"color_class"`
	BadgeClass string            `json:"badge_class"`
	Breakdown  BreakdownResponse `json:"breakdown"`
}

type CandidateResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Percentage int       `json:"percentage"`
	Label      string    `json:"label"`
	ColorClass string    `json:"color_class"`
	BadgeClass string    `json:"badge_class"`
}

func NewMatchResponse(targetID uuid.UUID, m matching.Match) MatchResponse {
	return MatchResponse{
		UserID:     targetID,
		Percentage: m.Percentage,
		Label:      m.Label,
		ColorClass: m.ColorClass,
		BadgeClass: m.BadgeClass,
		Breakdown:  NewBreakdownResponse(m.Breakdown),
	}
}

func NewBreakdownResponse(b matching.Breakdown) BreakdownResponse {
	out := BreakdownResponse{
		User1Wants:       newMatchEntries(b.User1Wants),
		User2Wants:       newMatchEntries(b.User2Wants),
		CommonSkills:     make([]CommonSkillResponse, 0, len(b.CommonSkills)),
		TotalScore:       b.TotalScore,
		MaxPossibleScore: b.MaxPossibleScore,
	}
	for _, c := range b.CommonSkills {
		out.CommonSkills = append(out.CommonSkills, CommonSkillResponse{
			Skill:      NewSkillResponse(c.Skill),
			User1Level: c.User1Level,
			User2Level: c.User2Level,
		})
	}
	return out
}

func newMatchEntries(in []matching.MatchEntry) []MatchEntryResponse {
	out := make([]MatchEntryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, MatchEntryResponse{
			Wanted:    NewSkillResponse(e.Wanted),
			BestMatch: NewSkillResponse(e.BestMatch),
			Score:     e.Score,
		})
	}
	return out
}

func NewCandidateResponses(in []usecase.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CandidateResponse{
			UserID:     c.UserID,
			Name:       c.Name,
			Username:   c.Username,
			Percentage: c.Percentage,
			Label:      c.Label,
			ColorClass: c.ColorClass,
			BadgeClass: c.BadgeClass,
		})
	}
	return out
}
