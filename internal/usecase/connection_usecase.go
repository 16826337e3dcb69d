package usecase

import (
	"context"
	"errors"

	"loomconnect/internal/domain/profile"
	"loomconnect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrConnectionExists  = errors.New("connection already exists")
	ErrConnectionMissing = errors.New("connection not found")
	ErrNotAddressee      = errors.New("only the addressee may respond")
	ErrConnectionDecided = errors.New("connection already responded to")
	ErrCannotConnectSelf = errors.New("cannot connect to own profile")
)

type ConnectionUsecase interface {
	Request(ctx context.Context, userID, addresseeID uuid.UUID) (profile.Connection, error)
	Respond(ctx context.Context, userID, connectionID uuid.UUID, accept bool) (profile.Connection, error)
	List(ctx context.Context, userID uuid.UUID) ([]profile.Connection, error)
}

type ConnectionService struct {
	profiles    profile.Repository
	connections profile.ConnectionRepository
	invalidator MatchInvalidator
}

func NewConnectionUsecase(
	profiles profile.Repository,
	connections profile.ConnectionRepository,
	invalidator MatchInvalidator,
) *ConnectionService {
	return &ConnectionService{
		profiles:    profiles,
		connections: connections,
		invalidator: invalidator,
	}
}

func (s *ConnectionService) Request(ctx context.Context, userID, addresseeID uuid.UUID) (profile.Connection, error) {
	requester, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.Connection{}, err
	}
	if requester.ID == addresseeID {
		return profile.Connection{}, ErrCannotConnectSelf
	}

	if _, err := s.profiles.GetByID(ctx, addresseeID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Connection{}, ErrProfileNotFound
		}
		return profile.Connection{}, ErrInternal
	}

	exists, err := s.connections.ExistsBetween(ctx, requester.ID, addresseeID)
	if err != nil {
		return profile.Connection{}, ErrInternal
	}
	if exists {
		return profile.Connection{}, ErrConnectionExists
	}

	c := profile.Connection{
		ID:          uuid.New(),
		RequesterID: requester.ID,
		AddresseeID: addresseeID,
		Status:      profile.ConnectionStatusPending,
	}
	if err := s.connections.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConnectionExists) {
			return profile.Connection{}, ErrConnectionExists
		}
		return profile.Connection{}, ErrInternal
	}

	// A pending connection already removes both sides from each other's
	// candidate pool, so both caches are stale.
	s.invalidate(ctx, requester.ID, addresseeID)

	created, err := s.connections.GetByID(ctx, c.ID)
	if err != nil {
		return c, nil
	}
	return created, nil
}

func (s *ConnectionService) Respond(ctx context.Context, userID, connectionID uuid.UUID, accept bool) (profile.Connection, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.Connection{}, err
	}

	c, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return profile.Connection{}, ErrConnectionMissing
		}
		return profile.Connection{}, ErrInternal
	}

	if c.AddresseeID != p.ID {
		return profile.Connection{}, ErrNotAddressee
	}
	if c.Status != profile.ConnectionStatusPending {
		return profile.Connection{}, ErrConnectionDecided
	}

	status := profile.ConnectionStatusAccepted
	if !accept {
		status = profile.ConnectionStatusDeclined
	}

	updated, err := s.connections.UpdateStatus(ctx, connectionID, status)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return profile.Connection{}, ErrConnectionMissing
		}
		return profile.Connection{}, ErrInternal
	}

	// A decline re-admits both profiles to each other's candidate pool.
	s.invalidate(ctx, updated.RequesterID, updated.AddresseeID)
	return updated, nil
}

func (s *ConnectionService) List(ctx context.Context, userID uuid.UUID) ([]profile.Connection, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	conns, err := s.connections.ListForProfile(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return conns, nil
}

func (s *ConnectionService) ownProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *ConnectionService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	_ = s.invalidator.InvalidateMatches(ctx, strs...)
}
