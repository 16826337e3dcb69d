package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

type fakeConnectionRepo struct {
	conns map[uuid.UUID]profile.Connection
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{conns: make(map[uuid.UUID]profile.Connection)}
}

func (f *fakeConnectionRepo) Create(_ context.Context, c profile.Connection) error {
	for id, existing := range f.conns {
		if existing.Status == profile.ConnectionStatusDeclined &&
			existing.Involves(c.RequesterID) && existing.Involves(c.AddresseeID) {
			delete(f.conns, id)
		}
	}
	c.CreatedAt = time.Now().UTC()
	f.conns[c.ID] = c
	return nil
}

func (f *fakeConnectionRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Connection, error) {
	c, ok := f.conns[id]
	if !ok {
		return profile.Connection{}, errors.New("connection not found")
	}
	return c, nil
}

func (f *fakeConnectionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status profile.ConnectionStatus) (profile.Connection, error) {
	c, ok := f.conns[id]
	if !ok {
		return profile.Connection{}, errors.New("connection not found")
	}
	now := time.Now().UTC()
	c.Status = status
	c.RespondedAt = &now
	f.conns[id] = c
	return c, nil
}

func (f *fakeConnectionRepo) ListForProfile(_ context.Context, profileID uuid.UUID) ([]profile.Connection, error) {
	out := make([]profile.Connection, 0)
	for _, c := range f.conns {
		if c.Involves(profileID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConnectionRepo) ExistsBetween(_ context.Context, a, b uuid.UUID) (bool, error) {
	for _, c := range f.conns {
		if c.Status == profile.ConnectionStatusDeclined {
			continue
		}
		if (c.RequesterID == a && c.AddresseeID == b) || (c.RequesterID == b && c.AddresseeID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnectionRepo) ConnectedIDs(_ context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0)
	for _, c := range f.conns {
		if c.Status != profile.ConnectionStatusDeclined && c.Involves(profileID) {
			out = append(out, c.Other(profileID))
		}
	}
	return out, nil
}

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) InvalidateMatches(_ context.Context, ids ...string) error {
	r.invalidated = append(r.invalidated, ids...)
	return nil
}

type connectionFixture struct {
	profiles    mockProfileRepo
	conns       *fakeConnectionRepo
	invalidator *recordingInvalidator
}

func newConnectionFixture() connectionFixture {
	return connectionFixture{
		profiles: mockProfileRepo{
			profiles:    make(map[uuid.UUID]profile.Profile),
			skillCounts: make(map[uuid.UUID]int),
		},
		conns:       newFakeConnectionRepo(),
		invalidator: &recordingInvalidator{},
	}
}

func (f connectionFixture) usecase() *ConnectionService {
	return NewConnectionUsecase(f.profiles, f.conns, f.invalidator)
}

func (f *connectionFixture) addProfile(name string) (profileID, userID uuid.UUID) {
	profileID = uuid.New()
	userID = uuid.New()
	f.profiles.profiles[profileID] = profile.Profile{
		ID:          profileID,
		UserID:      userID,
		DisplayName: name,
		IsPublic:    true,
	}
	return profileID, userID
}

func TestConnectionRequest_CreatesPending(t *testing.T) {
	f := newConnectionFixture()
	requesterProfile, requesterUser := f.addProfile("requester")
	addresseeProfile, _ := f.addProfile("addressee")

	c, err := f.usecase().Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Status != profile.ConnectionStatusPending {
		t.Fatalf("status = %s, want pending", c.Status)
	}
	if c.RequesterID != requesterProfile || c.AddresseeID != addresseeProfile {
		t.Fatalf("unexpected endpoints: %+v", c)
	}
	if len(f.invalidator.invalidated) != 2 {
		t.Fatalf("expected both caches invalidated, got %v", f.invalidator.invalidated)
	}
}

func TestConnectionRequest_Self(t *testing.T) {
	f := newConnectionFixture()
	profileID, userID := f.addProfile("solo")

	_, err := f.usecase().Request(context.Background(), userID, profileID)
	if !errors.Is(err, ErrCannotConnectSelf) {
		t.Fatalf("expected ErrCannotConnectSelf, got %v", err)
	}
}

func TestConnectionRequest_Duplicate(t *testing.T) {
	f := newConnectionFixture()
	_, requesterUser := f.addProfile("requester")
	addresseeProfile, addresseeUser := f.addProfile("addressee")
	requesterProfile := mustProfileID(t, f, requesterUser)

	uc := f.usecase()
	if _, err := uc.Request(context.Background(), requesterUser, addresseeProfile); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := uc.Request(context.Background(), requesterUser, addresseeProfile); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists, got %v", err)
	}
	// Reverse direction is also blocked while the first is pending.
	if _, err := uc.Request(context.Background(), addresseeUser, requesterProfile); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("reverse: expected ErrConnectionExists, got %v", err)
	}
}

func TestConnectionRequest_AfterDecline(t *testing.T) {
	f := newConnectionFixture()
	requesterProfile, requesterUser := f.addProfile("requester")
	addresseeProfile, addresseeUser := f.addProfile("addressee")

	uc := f.usecase()
	created, err := uc.Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Respond(context.Background(), addresseeUser, created.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// A declined pair is back in each other's candidate pool, so either
	// side may try again.
	again, err := uc.Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("request after decline: %v", err)
	}
	if again.ID == created.ID {
		t.Fatalf("expected a fresh connection, got the declined one back")
	}
	if again.Status != profile.ConnectionStatusPending {
		t.Fatalf("status = %s, want pending", again.Status)
	}

	connected, err := f.conns.ConnectedIDs(context.Background(), requesterProfile)
	if err != nil {
		t.Fatalf("connected ids: %v", err)
	}
	if len(connected) != 1 || connected[0] != addresseeProfile {
		t.Fatalf("declined row should be gone, got %v", connected)
	}
}

func TestConnectionRespond_Accept(t *testing.T) {
	f := newConnectionFixture()
	_, requesterUser := f.addProfile("requester")
	addresseeProfile, addresseeUser := f.addProfile("addressee")

	uc := f.usecase()
	created, err := uc.Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	updated, err := uc.Respond(context.Background(), addresseeUser, created.ID, true)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if updated.Status != profile.ConnectionStatusAccepted {
		t.Fatalf("status = %s, want accepted", updated.Status)
	}
	if updated.RespondedAt == nil {
		t.Fatalf("responded_at not set")
	}
}

func TestConnectionRespond_OnlyAddressee(t *testing.T) {
	f := newConnectionFixture()
	_, requesterUser := f.addProfile("requester")
	addresseeProfile, _ := f.addProfile("addressee")

	uc := f.usecase()
	created, err := uc.Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if _, err := uc.Respond(context.Background(), requesterUser, created.ID, true); !errors.Is(err, ErrNotAddressee) {
		t.Fatalf("expected ErrNotAddressee, got %v", err)
	}
}

func TestConnectionRespond_AlreadyDecided(t *testing.T) {
	f := newConnectionFixture()
	_, requesterUser := f.addProfile("requester")
	addresseeProfile, addresseeUser := f.addProfile("addressee")

	uc := f.usecase()
	created, err := uc.Request(context.Background(), requesterUser, addresseeProfile)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := uc.Respond(context.Background(), addresseeUser, created.ID, false); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if _, err := uc.Respond(context.Background(), addresseeUser, created.ID, true); !errors.Is(err, ErrConnectionDecided) {
		t.Fatalf("expected ErrConnectionDecided, got %v", err)
	}
}

func mustProfileID(t *testing.T, f connectionFixture, userID uuid.UUID) uuid.UUID {
	t.Helper()
	p, err := f.profiles.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("profile for user %s: %v", userID, err)
	}
	return p.ID
}
