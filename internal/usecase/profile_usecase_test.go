package usecase

import (
	"context"
	"errors"
	"testing"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

func TestCompleteOnboarding_RequiresSkill(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	repo := mockProfileRepo{
		profiles: map[uuid.UUID]profile.Profile{
			profileID: {ID: profileID, UserID: userID, IsPublic: true},
		},
		skillCounts: map[uuid.UUID]int{profileID: 0},
	}

	uc := NewProfileUsecase(repo, nil)
	if _, err := uc.CompleteOnboarding(context.Background(), userID); !errors.Is(err, ErrOnboardingIncomplete) {
		t.Fatalf("expected ErrOnboardingIncomplete, got %v", err)
	}
}

func TestCompleteOnboarding_FlipsFlag(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	repo := mockProfileRepo{
		profiles: map[uuid.UUID]profile.Profile{
			profileID: {ID: profileID, UserID: userID, IsPublic: true},
		},
		skillCounts: map[uuid.UUID]int{profileID: 2},
	}

	uc := NewProfileUsecase(repo, nil)
	p, err := uc.CompleteOnboarding(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !p.OnboardingCompleted {
		t.Fatalf("onboarding flag not set")
	}
	if !p.IsCandidate() {
		t.Fatalf("completed public profile must be a candidate")
	}
}

func TestUpdateMyProfile_RejectsEmptyDisplayName(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	repo := mockProfileRepo{
		profiles: map[uuid.UUID]profile.Profile{
			profileID: {ID: profileID, UserID: userID, DisplayName: "old"},
		},
		skillCounts: map[uuid.UUID]int{},
	}

	empty := "   "
	uc := NewProfileUsecase(repo, nil)
	if _, err := uc.UpdateMyProfile(context.Background(), userID, UpdateProfileInput{DisplayName: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateMyProfile_VisibilityChangeDropsCachedMatches(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	repo := mockProfileRepo{
		profiles: map[uuid.UUID]profile.Profile{
			profileID: {ID: profileID, UserID: userID, DisplayName: "maya", IsPublic: true},
		},
		skillCounts: map[uuid.UUID]int{},
	}

	inv := &recordingInvalidator{}
	hidden := false
	uc := NewProfileUsecase(repo, inv)
	p, err := uc.UpdateMyProfile(context.Background(), userID, UpdateProfileInput{IsPublic: &hidden})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.IsPublic {
		t.Fatalf("profile should be private")
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != profileID.String() {
		t.Fatalf("expected cached matches for %s dropped, got %v", profileID, inv.invalidated)
	}

	// An update that leaves visibility alone keeps the cache warm.
	name := "maya p"
	if _, err := uc.UpdateMyProfile(context.Background(), userID, UpdateProfileInput{DisplayName: &name}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(inv.invalidated) != 1 {
		t.Fatalf("unexpected invalidation: %v", inv.invalidated)
	}
}

func TestGetMyProfile_NotFound(t *testing.T) {
	repo := mockProfileRepo{profiles: map[uuid.UUID]profile.Profile{}, skillCounts: map[uuid.UUID]int{}}

	uc := NewProfileUsecase(repo, nil)
	if _, err := uc.GetMyProfile(context.Background(), uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
