package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

const (
	skillKindOffered = "offered"
	skillKindWanted  = "wanted"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	ListDiscoverable(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]user.Profile, error)
	ReplaceSkills(ctx context.Context, userID uuid.UUID, offered, wanted []skill.Skill) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, username FROM users WHERE id = $1`, userID)

	p := newProfile()
	if err := row.Scan(&p.ID, &p.Name, &p.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, err
	}

	byID := map[uuid.UUID]*user.Profile{p.ID: &p}
	if err := r.loadSkills(ctx, byID, []string{p.ID.String()}); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListDiscoverable(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]user.Profile, error) {
	if limit <= 0 {
		return []user.Profile{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, username
		 FROM users
		 WHERE is_public AND id <> $1
		 ORDER BY username ASC
		 LIMIT $2`,
		excludeUserID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Profile, 0)
	for rows.Next() {
		p := newProfile()
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	byID := make(map[uuid.UUID]*user.Profile, len(out))
	ids := make([]string, 0, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
		ids = append(ids, out[i].ID.String())
	}
	if err := r.loadSkills(ctx, byID, ids); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceSkills swaps a user's whole skill set in one transaction. List order is kept
// through the position column because the breakdown reports the first best offer.
func (r *PostgresProfileRepository) ReplaceSkills(ctx context.Context, userID uuid.UUID, offered, wanted []skill.Skill) error {
	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProfileNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if err := insertSkills(ctx, tx, userID, skillKindOffered, offered); err != nil {
			return err
		}
		if err := insertSkills(ctx, tx, userID, skillKindWanted, wanted); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `UPDATE users SET updated_at = now() WHERE id = $1`, userID)
		return err
	})
}

func insertSkills(ctx context.Context, tx database.Tx, userID uuid.UUID, kind string, skills []skill.Skill) error {
	for i, s := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, kind, name, level, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), userID, kind, s.Name, string(s.Level), i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresProfileRepository) loadSkills(ctx context.Context, byID map[uuid.UUID]*user.Profile, ids []string) error {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, kind, name, level
		 FROM user_skills
		 WHERE user_id = ANY($1::uuid[])
		 ORDER BY user_id, kind, position ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID uuid.UUID
			kind   string
			name   string
			level  string
		)
		if err := rows.Scan(&userID, &kind, &name, &level); err != nil {
			return err
		}
		p, ok := byID[userID]
		if !ok {
			continue
		}
		s := skill.Skill{Name: name, Level: skill.ParseLevel(level)}
		switch kind {
		case skillKindOffered:
			p.OfferedSkills = append(p.OfferedSkills, s)
		case skillKindWanted:
			p.WantedSkills = append(p.WantedSkills, s)
		}
	}
	return rows.Err()
}

// newProfile starts with empty, non-nil lists: a stored user always has both lists,
// possibly empty, so the scorer never treats them as absent.
func newProfile() user.Profile {
	return user.Profile{
		OfferedSkills: make([]skill.Skill, 0),
		WantedSkills:  make([]skill.Skill, 0),
	}
}
