package user

import (
	"time"

	"skill-swap/internal/domain/skill"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the snapshot the matching engine scores. A nil skill list means the list
// was absent from the source record; an empty one means the user has no skills of that kind.
type Profile struct {
	ID            uuid.UUID     `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Username      string        `json:"username" yaml:"username"`
	OfferedSkills []skill.Skill `json:"offeredSkills" yaml:"offeredSkills"`
	WantedSkills  []skill.Skill `json:"wantedSkills" yaml:"wantedSkills"`
}
