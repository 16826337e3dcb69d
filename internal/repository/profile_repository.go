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

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, display_name, headline, is_public, onboarding_completed, created_at, updated_at`

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, display_name, headline, is_public, onboarding_completed)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.DisplayName, p.Headline, p.IsPublic, p.OnboardingCompleted,
	)
	return err
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET display_name = $1, headline = $2, is_public = $3, onboarding_completed = $4, updated_at = now()
		 WHERE id = $5`,
		p.DisplayName, p.Headline, p.IsPublic, p.OnboardingCompleted, p.ID,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	if rowsAffected == 0 {
		return profile.Profile{}, profile.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresProfileRepository) ListCandidateIDs(ctx context.Context, excluding uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM profiles
		 WHERE is_public = TRUE AND onboarding_completed = TRUE AND id <> $1`,
		excluding,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) SkillCount(ctx context.Context, profileID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profile_skills WHERE profile_id = $1`, profileID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Headline,
		&p.IsPublic, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}
