package repository

import (
	"context"
	"database/sql"
	"errors"

	"loomconnect/internal/database"
	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNeedNotFound      = errors.New("need not found")
	ErrNeedAlreadyExists = errors.New("need already exists")
)

type ProfileNeedRepository interface {
	ListNeeds(ctx context.Context, profileID uuid.UUID) ([]profile.Need, error)
	ActiveNeeds(ctx context.Context, profileID uuid.UUID) ([]profile.Need, error)
	Add(ctx context.Context, n profile.Need) (profile.Need, error)
	Update(ctx context.Context, n profile.Need) (profile.Need, error)
	Remove(ctx context.Context, profileID, skillID uuid.UUID) error
}

type PostgresProfileNeedRepository struct {
	db database.DB
}

func NewPostgresProfileNeedRepository(db database.DB) *PostgresProfileNeedRepository {
	return &PostgresProfileNeedRepository{db: db}
}

const needSelect = `SELECT pn.id, pn.profile_id, pn.skill_id, s.name, pn.urgency, pn.is_active, pn.created_at
	 FROM profile_needs pn
	 JOIN skills s ON s.id = pn.skill_id`

func (r *PostgresProfileNeedRepository) ListNeeds(ctx context.Context, profileID uuid.UUID) ([]profile.Need, error) {
	rows, err := r.db.Query(ctx,
		needSelect+` WHERE pn.profile_id = $1 ORDER BY s.name ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNeeds(rows)
}

func (r *PostgresProfileNeedRepository) ActiveNeeds(ctx context.Context, profileID uuid.UUID) ([]profile.Need, error) {
	rows, err := r.db.Query(ctx,
		needSelect+` WHERE pn.profile_id = $1 AND pn.is_active = TRUE ORDER BY s.name ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNeeds(rows)
}

func (r *PostgresProfileNeedRepository) Add(ctx context.Context, n profile.Need) (profile.Need, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profile_needs WHERE profile_id = $1 AND skill_id = $2)`,
		n.ProfileID, n.SkillID,
	)
	if err := row.Scan(&exists); err != nil {
		return profile.Need{}, err
	}
	if exists {
		return profile.Need{}, ErrNeedAlreadyExists
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_needs (id, profile_id, skill_id, urgency, is_active)
		 VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.ProfileID, n.SkillID, n.Urgency, n.IsActive,
	)
	if err != nil {
		return profile.Need{}, err
	}
	return r.getByID(ctx, n.ID, n.ProfileID)
}

func (r *PostgresProfileNeedRepository) Update(ctx context.Context, n profile.Need) (profile.Need, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profile_needs
		 SET urgency = $1, is_active = $2
		 WHERE id = $3 AND profile_id = $4`,
		n.Urgency, n.IsActive, n.ID, n.ProfileID,
	)
	if err != nil {
		return profile.Need{}, err
	}
	if rowsAffected == 0 {
		return profile.Need{}, ErrNeedNotFound
	}
	return r.getByID(ctx, n.ID, n.ProfileID)
}

func (r *PostgresProfileNeedRepository) Remove(ctx context.Context, profileID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM profile_needs WHERE profile_id = $1 AND skill_id = $2`,
		profileID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNeedNotFound
	}
	return nil
}

func (r *PostgresProfileNeedRepository) getByID(ctx context.Context, id, profileID uuid.UUID) (profile.Need, error) {
	row := r.db.QueryRow(ctx,
		needSelect+` WHERE pn.id = $1 AND pn.profile_id = $2`,
		id, profileID,
	)

	var n profile.Need
	if err := row.Scan(&n.ID, &n.ProfileID, &n.SkillID, &n.SkillName, &n.Urgency, &n.IsActive, &n.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Need{}, ErrNeedNotFound
		}
		return profile.Need{}, err
	}
	return n, nil
}

func collectNeeds(rows database.Rows) ([]profile.Need, error) {
	out := make([]profile.Need, 0)
	for rows.Next() {
		var n profile.Need
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.SkillID, &n.SkillName, &n.Urgency, &n.IsActive, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
