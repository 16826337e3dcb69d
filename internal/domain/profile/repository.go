package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Repository is the read surface the match engine depends on plus the writes
// the profile vertical needs. Implementations must be safe for concurrent
// reads.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) (Profile, error)

	// ListCandidateIDs returns public, onboarding-complete profiles other
	// than the given one. Order is unspecified; callers needing determinism
	// sort themselves.
	ListCandidateIDs(ctx context.Context, excluding uuid.UUID) ([]uuid.UUID, error)

	SkillCount(ctx context.Context, profileID uuid.UUID) (int, error)
}

type ConnectionRepository interface {
	Create(ctx context.Context, c Connection) error
	GetByID(ctx context.Context, id uuid.UUID) (Connection, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ConnectionStatus) (Connection, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]Connection, error)
	// ExistsBetween reports whether a pending or accepted connection links
	// the two profiles, in either direction. Declined connections do not
	// count; a declined pair may request again.
	ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)

	// ConnectedIDs returns profiles linked to the given one in either
	// direction, regardless of which side initiated.
	ConnectedIDs(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error)
}
