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
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
)

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

const connectionColumns = `id, requester_id, addressee_id, status, created_at, responded_at`

func (r *PostgresConnectionRepository) Create(ctx context.Context, c profile.Connection) error {
	exists, err := r.ExistsBetween(ctx, c.RequesterID, c.AddresseeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrConnectionExists
	}

	// A declined request does not block a new one. Clear it so the
	// (requester, addressee) unique constraint accepts the insert.
	_, err = r.db.Exec(ctx,
		`DELETE FROM connections
		 WHERE status = 'declined'
		   AND ((requester_id = $1 AND addressee_id = $2)
		     OR (requester_id = $2 AND addressee_id = $1))`,
		c.RequesterID, c.AddresseeID,
	)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO connections (id, requester_id, addressee_id, status)
		 VALUES ($1, $2, $3, $4)`,
		c.ID, c.RequesterID, c.AddresseeID, c.Status,
	)
	return err
}

func (r *PostgresConnectionRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Connection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+connectionColumns+` FROM connections WHERE id = $1`,
		id,
	)
	return scanConnection(row)
}

func (r *PostgresConnectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status profile.ConnectionStatus) (profile.Connection, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE connections SET status = $1, responded_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return profile.Connection{}, err
	}
	if rowsAffected == 0 {
		return profile.Connection{}, ErrConnectionNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresConnectionRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]profile.Connection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+connectionColumns+` FROM connections
		 WHERE requester_id = $1 OR addressee_id = $1
		 ORDER BY created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Connection, 0)
	for rows.Next() {
		var c profile.Connection
		if err := rows.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.RespondedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE ((requester_id = $1 AND addressee_id = $2)
			    OR (requester_id = $2 AND addressee_id = $1))
			  AND status <> 'declined'
		)`,
		a, b,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresConnectionRepository) ConnectedIDs(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT CASE WHEN requester_id = $1 THEN addressee_id ELSE requester_id END
		 FROM connections
		 WHERE (requester_id = $1 OR addressee_id = $1) AND status <> 'declined'`,
		profileID,
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

func scanConnection(row database.Row) (profile.Connection, error) {
	var c profile.Connection
	if err := row.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.CreatedAt, &c.RespondedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Connection{}, ErrConnectionNotFound
		}
		return profile.Connection{}, err
	}
	return c, nil
}
