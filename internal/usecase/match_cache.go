package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
	GetInt64s(ctx context.Context, keys ...string) ([]int64, error)
}

func profileVersionKey(userID uuid.UUID) string {
	return "matchver:" + userID.String()
}

// MatchCacheKey is ordered: the score of viewer against target differs from the
// reverse because the common-skill bonus only looks at the viewer's offers. Both
// profile versions are part of the key, so once a version is bumped no reader asks
// for an entry computed from the older profile, even one written after the bump.
func MatchCacheKey(viewerID uuid.UUID, viewerVersion int64, targetID uuid.UUID, targetVersion int64) string {
	return fmt.Sprintf("match:%s:%d:%s:%d", viewerID, viewerVersion, targetID, targetVersion)
}

// matchCachePatterns covers every cached match the user takes part in, on either side.
func matchCachePatterns(userID uuid.UUID) []string {
	id := userID.String()
	return []string{
		"match:" + id + ":*",
		"match:*:" + id + ":*",
	}
}

// matchCacheKeyFor reads both users' current profile versions and builds the key.
func matchCacheKeyFor(ctx context.Context, c MatchCache, viewerID, targetID uuid.UUID) (string, error) {
	vers, err := c.GetInt64s(ctx, profileVersionKey(viewerID), profileVersionKey(targetID))
	if err != nil {
		return "", err
	}
	if len(vers) != 2 {
		return "", fmt.Errorf("profile versions: got %d values, want 2", len(vers))
	}
	return MatchCacheKey(viewerID, vers[0], targetID, vers[1]), nil
}

// invalidateMatches bumps the user's profile version, then drops the entries the old
// version left behind. The delete only frees memory; the bump is what stops stale reads.
func invalidateMatches(ctx context.Context, c MatchCache, userID uuid.UUID) error {
	if c == nil {
		return nil
	}
	_, firstErr := c.Incr(ctx, profileVersionKey(userID))
	for _, p := range matchCachePatterns(userID) {
		if err := c.DeleteByPattern(ctx, p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
