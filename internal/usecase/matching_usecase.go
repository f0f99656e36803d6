package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"skill-swap/internal/domain/matching"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDiscoverLimit = 20
	MaxDiscoverLimit     = 100

	// discoverCandidatePool bounds how many public profiles one discovery call scores.
	discoverCandidatePool = 1000
)

var ErrSelfMatch = errors.New("cannot match a user with themselves")

type Candidate struct {
	UserID     uuid.UUID
	Name       string
	Username   string
	Percentage int
	Label      string
	ColorClass string
	BadgeClass string
}

type MatchingUsecase interface {
	Match(ctx context.Context, viewerID, targetID uuid.UUID) (matching.Match, error)
	Discover(ctx context.Context, viewerID uuid.UUID, limit int) ([]Candidate, error)
}

type Matching struct {
	profiles repository.ProfileRepository
	cache    MatchCache
	ttl      time.Duration
	logger   *log.Logger
}

func NewMatchingUsecase(profiles repository.ProfileRepository, cache MatchCache, ttl time.Duration, logger *log.Logger) *Matching {
	return &Matching{profiles: profiles, cache: cache, ttl: ttl, logger: logger}
}

func (u *Matching) Match(ctx context.Context, viewerID, targetID uuid.UUID) (matching.Match, error) {
	if viewerID == uuid.Nil {
		return matching.Match{}, ErrUnauthorized
	}
	if targetID == uuid.Nil {
		return matching.Match{}, ErrProfileNotFound
	}
	if viewerID == targetID {
		return matching.Match{}, ErrSelfMatch
	}

	var key string
	if u.cache != nil {
		k, err := matchCacheKeyFor(ctx, u.cache, viewerID, targetID)
		if err != nil {
			u.logf("Match | profile version read failed viewer=%s target=%s err=%v", viewerID, targetID, err)
		}
		key = k
	}
	if key != "" {
		var cached matching.Match
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logf("Match | cache read failed key=%s err=%v", key, err)
		}
		if hit {
			return cached, nil
		}
	}

	var viewer, target user.Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.profiles.FindByUserID(gctx, viewerID)
		viewer = p
		return err
	})
	g.Go(func() error {
		p, err := u.profiles.FindByUserID(gctx, targetID)
		target = p
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return matching.Match{}, ErrProfileNotFound
		}
		return matching.Match{}, ErrInternal
	}

	m := matching.Evaluate(viewer, target)

	if key != "" {
		if err := u.cache.SetJSON(ctx, key, m, u.ttl); err != nil {
			u.logf("Match | cache write failed key=%s err=%v", key, err)
		}
	}
	return m, nil
}

// Discover scores the viewer against every other public profile and returns the best
// matches first. Ties break on username so the order is stable between calls.
func (u *Matching) Discover(ctx context.Context, viewerID uuid.UUID, limit int) ([]Candidate, error) {
	if viewerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit = normalizeDiscoverLimit(limit)

	var (
		viewer     user.Profile
		candidates []user.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.profiles.FindByUserID(gctx, viewerID)
		viewer = p
		return err
	})
	g.Go(func() error {
		list, err := u.profiles.ListDiscoverable(gctx, viewerID, discoverCandidatePool)
		candidates = list
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == viewerID {
			continue
		}
		pct := matching.MatchPercentage(viewer, c)
		out = append(out, Candidate{
			UserID:     c.ID,
			Name:       c.Name,
			Username:   c.Username,
			Percentage: pct,
			Label:      matching.Describe(pct),
			ColorClass: matching.ColorClass(pct),
			BadgeClass: matching.BadgeClass(pct),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Username < out[j].Username
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func normalizeDiscoverLimit(limit int) int {
	if limit <= 0 {
		return DefaultDiscoverLimit
	}
	if limit > MaxDiscoverLimit {
		return MaxDiscoverLimit
	}
	return limit
}

func (u *Matching) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
