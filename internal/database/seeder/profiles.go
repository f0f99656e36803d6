package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type ProfileFixture struct {
	Email         string        `yaml:"email"`
	Password      string        `yaml:"password"`
	Name          string        `yaml:"name"`
	Username      string        `yaml:"username"`
	Private       bool          `yaml:"private"`
	OfferedSkills []skill.Skill `yaml:"offeredSkills"`
	WantedSkills  []skill.Skill `yaml:"wantedSkills"`
}

type profilesFile struct {
	Profiles []ProfileFixture `yaml:"profiles"`
}

// ParseProfiles reads a fixtures document. Skill entries accept the same shapes as the
// API: a bare name or a {name, level} mapping.
func ParseProfiles(data []byte) ([]ProfileFixture, error) {
	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	seen := map[string]bool{}
	for i, p := range f.Profiles {
		email := strings.ToLower(strings.TrimSpace(p.Email))
		if email == "" || strings.TrimSpace(p.Username) == "" || p.Password == "" {
			return nil, fmt.Errorf("profile %d: email, username and password are required", i)
		}
		if seen[email] {
			return nil, fmt.Errorf("profile %d: duplicate email %s", i, email)
		}
		seen[email] = true
		f.Profiles[i].Email = email
		if f.Profiles[i].Name == "" {
			f.Profiles[i].Name = p.Username
		}
	}
	return f.Profiles, nil
}

// ProfilesSeeder inserts demo users with their skills. Users that already exist
// (matched by email) keep their account but get their skills reset to the fixture.
type ProfilesSeeder struct {
	Data []byte
	Cost int
}

func (ProfilesSeeder) Name() string { return "profiles" }

func (s ProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "name", "username", "is_public"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "user_skills", "id", "user_id", "kind", "name", "level", "position"); err != nil {
		return err
	}

	fixtures, err := ParseProfiles(s.Data)
	if err != nil {
		return err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	profiles := repository.NewPostgresProfileRepository(db)

	for _, p := range fixtures {
		id, err := upsertUser(ctx, db, p, cost)
		if err != nil {
			return fmt.Errorf("user %s: %w", p.Email, err)
		}
		if err := profiles.ReplaceSkills(ctx, id, nonNil(p.OfferedSkills), nonNil(p.WantedSkills)); err != nil {
			return fmt.Errorf("skills %s: %w", p.Email, err)
		}
	}
	return nil
}

func upsertUser(ctx context.Context, db database.DB, p ProfileFixture, cost int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, p.Email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !isNoRows(err) {
		return uuid.Nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), cost)
	if err != nil {
		return uuid.Nil, err
	}
	id = uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, username, is_public) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, p.Email, string(hash), p.Name, p.Username, !p.Private,
	)
	return id, err
}

func nonNil(s []skill.Skill) []skill.Skill {
	if s == nil {
		return []skill.Skill{}
	}
	return s
}

func isNoRows(err error) bool {
	return err != nil && (errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows))
}
