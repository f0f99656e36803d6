package usecase

import (
	"context"
	"errors"
	"log"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

const MaxSkillsPerList = 50

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrTooManySkills   = errors.New("too many skills")
	ErrInvalidSkill    = errors.New("skill name is required")
)

type ProfileNotifier interface {
	NotifyProfileUpdated(userID uuid.UUID)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateSkills(ctx context.Context, userID uuid.UUID, offered, wanted []skill.Skill) (user.Profile, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	cache    MatchCache
	notifier ProfileNotifier
	logger   *log.Logger
}

func NewProfileUsecase(profiles repository.ProfileRepository, cache MatchCache, notifier ProfileNotifier, logger *log.Logger) *Profile {
	return &Profile{profiles: profiles, cache: cache, notifier: notifier, logger: logger}
}

func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpdateSkills(ctx context.Context, userID uuid.UUID, offered, wanted []skill.Skill) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}
	if len(offered) > MaxSkillsPerList || len(wanted) > MaxSkillsPerList {
		return user.Profile{}, ErrTooManySkills
	}
	for _, list := range [][]skill.Skill{offered, wanted} {
		for _, s := range list {
			if !s.HasName() {
				return user.Profile{}, ErrInvalidSkill
			}
		}
	}

	if err := u.profiles.ReplaceSkills(ctx, userID, nonNil(offered), nonNil(wanted)); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, ErrInternal
	}

	if err := invalidateMatches(ctx, u.cache, userID); err != nil && u.logger != nil {
		u.logger.Printf("Profile | cache invalidation failed user_id=%s err=%v", userID, err)
	}
	if u.notifier != nil {
		u.notifier.NotifyProfileUpdated(userID)
	}

	return u.GetProfile(ctx, userID)
}

func nonNil(s []skill.Skill) []skill.Skill {
	if s == nil {
		return []skill.Skill{}
	}
	return s
}
