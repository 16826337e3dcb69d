package usecase

import (
	"context"
	"errors"
	"strings"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

const minOnboardingSkills = 1

var ErrOnboardingIncomplete = errors.New("onboarding requirements not met")

type UpdateProfileInput struct {
	DisplayName *string
	Headline    *string
	IsPublic    *bool
}

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (profile.Profile, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
}

type ProfileService struct {
	profiles   profile.Repository
	invalidate MatchInvalidator
}

func NewProfileUsecase(profiles profile.Repository, invalidate MatchInvalidator) *ProfileService {
	return &ProfileService{profiles: profiles, invalidate: invalidate}
}

func (s *ProfileService) GetMyProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *ProfileService) UpdateMyProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (profile.Profile, error) {
	p, err := s.GetMyProfile(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return profile.Profile{}, ErrInvalidInput
		}
		p.DisplayName = name
	}
	if in.Headline != nil {
		p.Headline = strings.TrimSpace(*in.Headline)
	}
	visibilityChanged := in.IsPublic != nil && p.IsPublic != *in.IsPublic
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}

	updated, err := s.profiles.Update(ctx, p)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if visibilityChanged && s.invalidate != nil {
		_ = s.invalidate.InvalidateMatches(ctx, updated.ID.String())
	}
	return updated, nil
}

// CompleteOnboarding flips the flag that admits the profile into match
// candidate pools. It requires at least one offered skill so new accounts
// never surface as empty matches.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.GetMyProfile(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if p.OnboardingCompleted {
		return p, nil
	}

	count, err := s.profiles.SkillCount(ctx, p.ID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if count < minOnboardingSkills {
		return profile.Profile{}, ErrOnboardingIncomplete
	}

	p.OnboardingCompleted = true
	updated, err := s.profiles.Update(ctx, p)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if s.invalidate != nil {
		_ = s.invalidate.InvalidateMatches(ctx, updated.ID.String())
	}
	return updated, nil
}
