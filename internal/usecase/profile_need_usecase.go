package usecase

import (
	"context"
	"errors"

	"loomconnect/internal/domain/profile"
	"loomconnect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNeedAlreadyExists = errors.New("need already exists")
	ErrNeedMissing       = errors.New("need not found")
)

type AddNeedInput struct {
	SkillID uuid.UUID
	Urgency profile.Urgency
}

type UpdateNeedInput struct {
	SkillID  uuid.UUID
	Urgency  *profile.Urgency
	IsActive *bool
}

type ProfileNeedUsecase interface {
	ListNeeds(ctx context.Context, userID uuid.UUID) ([]profile.Need, error)
	AddNeed(ctx context.Context, userID uuid.UUID, in AddNeedInput) (profile.Need, error)
	UpdateNeed(ctx context.Context, userID uuid.UUID, in UpdateNeedInput) (profile.Need, error)
	RemoveNeed(ctx context.Context, userID, skillID uuid.UUID) error
}

type ProfileNeedService struct {
	profiles     profile.Repository
	profileNeeds repository.ProfileNeedRepository
	skills       repository.SkillRepository
	invalidator  MatchInvalidator
}

func NewProfileNeedUsecase(
	profiles profile.Repository,
	profileNeeds repository.ProfileNeedRepository,
	skills repository.SkillRepository,
	invalidator MatchInvalidator,
) *ProfileNeedService {
	return &ProfileNeedService{
		profiles:     profiles,
		profileNeeds: profileNeeds,
		skills:       skills,
		invalidator:  invalidator,
	}
}

func (s *ProfileNeedService) ListNeeds(ctx context.Context, userID uuid.UUID) ([]profile.Need, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	needs, err := s.profileNeeds.ListNeeds(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return needs, nil
}

func (s *ProfileNeedService) AddNeed(ctx context.Context, userID uuid.UUID, in AddNeedInput) (profile.Need, error) {
	if !in.Urgency.IsValid() {
		return profile.Need{}, ErrInvalidInput
	}

	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.Need{}, err
	}

	exists, err := s.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return profile.Need{}, ErrInternal
	}
	if !exists {
		return profile.Need{}, ErrSkillNotFound
	}

	added, err := s.profileNeeds.Add(ctx, profile.Need{
		ID:        uuid.New(),
		ProfileID: p.ID,
		SkillID:   in.SkillID,
		Urgency:   in.Urgency,
		IsActive:  true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNeedAlreadyExists) {
			return profile.Need{}, ErrNeedAlreadyExists
		}
		return profile.Need{}, ErrInternal
	}

	s.invalidate(ctx, p.ID)
	return added, nil
}

func (s *ProfileNeedService) UpdateNeed(ctx context.Context, userID uuid.UUID, in UpdateNeedInput) (profile.Need, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.Need{}, err
	}

	current, err := s.findNeed(ctx, p.ID, in.SkillID)
	if err != nil {
		return profile.Need{}, err
	}

	if in.Urgency != nil {
		if !in.Urgency.IsValid() {
			return profile.Need{}, ErrInvalidInput
		}
		current.Urgency = *in.Urgency
	}
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}

	updated, err := s.profileNeeds.Update(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrNeedNotFound) {
			return profile.Need{}, ErrNeedMissing
		}
		return profile.Need{}, ErrInternal
	}

	// Toggling IsActive changes scoring inputs just like add or remove.
	s.invalidate(ctx, p.ID)
	return updated, nil
}

func (s *ProfileNeedService) RemoveNeed(ctx context.Context, userID, skillID uuid.UUID) error {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.profileNeeds.Remove(ctx, p.ID, skillID); err != nil {
		if errors.Is(err, repository.ErrNeedNotFound) {
			return ErrNeedMissing
		}
		return ErrInternal
	}

	s.invalidate(ctx, p.ID)
	return nil
}

func (s *ProfileNeedService) ownProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *ProfileNeedService) findNeed(ctx context.Context, profileID, skillID uuid.UUID) (profile.Need, error) {
	needs, err := s.profileNeeds.ListNeeds(ctx, profileID)
	if err != nil {
		return profile.Need{}, ErrInternal
	}
	for _, n := range needs {
		if n.SkillID == skillID {
			return n, nil
		}
	}
	return profile.Need{}, ErrNeedMissing
}

func (s *ProfileNeedService) invalidate(ctx context.Context, profileID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.InvalidateMatches(ctx, profileID.String())
}
