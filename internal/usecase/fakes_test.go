package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]user.Profile
	private  map[uuid.UUID]bool
	err      error
	finds    int

	// afterFind runs outside the lock once a profile has been read.
	afterFind func(id uuid.UUID)
}

func newFakeProfiles(ps ...user.Profile) *fakeProfiles {
	f := &fakeProfiles{profiles: map[uuid.UUID]user.Profile{}, private: map[uuid.UUID]bool{}}
	for _, p := range ps {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) FindByUserID(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, err := f.find(id)
	if f.afterFind != nil {
		f.afterFind(id)
	}
	return p, err
}

func (f *fakeProfiles) find(id uuid.UUID) (user.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.err != nil {
		return user.Profile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return user.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) ListDiscoverable(_ context.Context, exclude uuid.UUID, limit int) ([]user.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]user.Profile, 0)
	for id, p := range f.profiles {
		if id == exclude || f.private[id] {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProfiles) ReplaceSkills(_ context.Context, id uuid.UUID, offered, wanted []skill.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.OfferedSkills = offered
	p.WantedSkills = wanted
	f.profiles[id] = p
	return nil
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	counters map[string]int64
	deleted  []string
	failGets bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, counters: map[string]int64{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGets {
		return false, errors.New("connection refused")
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

// DeleteByPattern globs like SCAN MATCH for keys without slashes.
func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) GetInt64s(_ context.Context, keys ...string) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(keys))
	for i, k := range keys {
		out[i] = c.counters[k]
	}
	return out, nil
}

type fakeNotifier struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (n *fakeNotifier) NotifyProfileUpdated(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

func profile(username string, offered, wanted []skill.Skill) user.Profile {
	return user.Profile{
		ID:            uuid.New(),
		Name:          strings.ToUpper(username[:1]) + username[1:],
		Username:      username,
		OfferedSkills: offered,
		WantedSkills:  wanted,
	}
}

func sk(name string, level skill.Level) skill.Skill {
	return skill.Skill{Name: name, Level: level}
}
