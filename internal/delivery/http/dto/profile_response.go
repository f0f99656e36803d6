package dto

import (
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

type SkillResponse struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type ProfileResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Username      string          `json:"username"`
	OfferedSkills []SkillResponse `json:"offered_skills"`
	WantedSkills  []SkillResponse `json:"wanted_skills"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{Name: s.Name, Level: string(s.Level)}
}

func NewSkillResponses(in []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(in))
	for _, s := range in {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		Name:          p.Name,
		Username:      p.Username,
		OfferedSkills: NewSkillResponses(p.OfferedSkills),
		WantedSkills:  NewSkillResponses(p.WantedSkills),
	}
}
