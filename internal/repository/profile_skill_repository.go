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
	ErrOfferedSkillNotFound = errors.New("offered skill not found")
	ErrSkillAlreadyOffered  = errors.New("skill already offered")
)

type ProfileSkillRepository interface {
	OfferedSkills(ctx context.Context, profileID uuid.UUID) ([]profile.OfferedSkill, error)
	Add(ctx context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error)
	Update(ctx context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error)
	Remove(ctx context.Context, profileID, skillID uuid.UUID) error
}

type PostgresProfileSkillRepository struct {
	db database.DB
}

func NewPostgresProfileSkillRepository(db database.DB) *PostgresProfileSkillRepository {
	return &PostgresProfileSkillRepository{db: db}
}

func (r *PostgresProfileSkillRepository) OfferedSkills(ctx context.Context, profileID uuid.UUID) ([]profile.OfferedSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ps.id, ps.profile_id, ps.skill_id, s.name, ps.proficiency, COALESCE(ps.years_experience, 0), ps.created_at
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.profile_id = $1
		 ORDER BY s.name ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.OfferedSkill, 0)
	for rows.Next() {
		var os profile.OfferedSkill
		if err := rows.Scan(&os.ID, &os.ProfileID, &os.SkillID, &os.SkillName, &os.Proficiency, &os.YearsExperience, &os.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, os)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileSkillRepository) Add(ctx context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profile_skills WHERE profile_id = $1 AND skill_id = $2)`,
		s.ProfileID, s.SkillID,
	)
	if err := row.Scan(&exists); err != nil {
		return profile.OfferedSkill{}, err
	}
	if exists {
		return profile.OfferedSkill{}, ErrSkillAlreadyOffered
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_skills (id, profile_id, skill_id, proficiency, years_experience)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.ProfileID, s.SkillID, s.Proficiency, s.YearsExperience,
	)
	if err != nil {
		return profile.OfferedSkill{}, err
	}
	return r.getByID(ctx, s.ID, s.ProfileID)
}

func (r *PostgresProfileSkillRepository) Update(ctx context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profile_skills
		 SET proficiency = $1, years_experience = $2
		 WHERE id = $3 AND profile_id = $4`,
		s.Proficiency, s.YearsExperience, s.ID, s.ProfileID,
	)
	if err != nil {
		return profile.OfferedSkill{}, err
	}
	if rowsAffected == 0 {
		return profile.OfferedSkill{}, ErrOfferedSkillNotFound
	}
	return r.getByID(ctx, s.ID, s.ProfileID)
}

func (r *PostgresProfileSkillRepository) Remove(ctx context.Context, profileID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM profile_skills WHERE profile_id = $1 AND skill_id = $2`,
		profileID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOfferedSkillNotFound
	}
	return nil
}

func (r *PostgresProfileSkillRepository) getByID(ctx context.Context, id, profileID uuid.UUID) (profile.OfferedSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ps.id, ps.profile_id, ps.skill_id, s.name, ps.proficiency, COALESCE(ps.years_experience, 0), ps.created_at
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.id = $1 AND ps.profile_id = $2`,
		id, profileID,
	)

	var os profile.OfferedSkill
	if err := row.Scan(&os.ID, &os.ProfileID, &os.SkillID, &os.SkillName, &os.Proficiency, &os.YearsExperience, &os.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.OfferedSkill{}, ErrOfferedSkillNotFound
		}
		return profile.OfferedSkill{}, err
	}
	return os, nil
}
