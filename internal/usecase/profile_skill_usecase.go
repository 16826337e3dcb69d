package usecase

import (
	"context"
	"errors"

	"loomconnect/internal/domain/profile"
	"loomconnect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillAlreadyOffered = errors.New("skill already offered")
	ErrOfferedSkillMissing = errors.New("offered skill not found")
)

// MatchInvalidator drops cached match lists for the given profiles. A skill
// or need change makes every cached result involving that profile stale.
type MatchInvalidator interface {
	InvalidateMatches(ctx context.Context, profileIDs ...string) error
}

type AddOfferedSkillInput struct {
	SkillID         uuid.UUID
	Proficiency     profile.Proficiency
	YearsExperience int
}

type UpdateOfferedSkillInput struct {
	SkillID         uuid.UUID
	Proficiency     *profile.Proficiency
	YearsExperience *int
}

type ProfileSkillUsecase interface {
	ListOffered(ctx context.Context, userID uuid.UUID) ([]profile.OfferedSkill, error)
	AddOffered(ctx context.Context, userID uuid.UUID, in AddOfferedSkillInput) (profile.OfferedSkill, error)
	UpdateOffered(ctx context.Context, userID uuid.UUID, in UpdateOfferedSkillInput) (profile.OfferedSkill, error)
	RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error
}

type ProfileSkillService struct {
	profiles      profile.Repository
	profileSkills repository.ProfileSkillRepository
	skills        repository.SkillRepository
	invalidator   MatchInvalidator
}

func NewProfileSkillUsecase(
	profiles profile.Repository,
	profileSkills repository.ProfileSkillRepository,
	skills repository.SkillRepository,
	invalidator MatchInvalidator,
) *ProfileSkillService {
	return &ProfileSkillService{
		profiles:      profiles,
		profileSkills: profileSkills,
		skills:        skills,
		invalidator:   invalidator,
	}
}

func (s *ProfileSkillService) ListOffered(ctx context.Context, userID uuid.UUID) ([]profile.OfferedSkill, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	offered, err := s.profileSkills.OfferedSkills(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return offered, nil
}

func (s *ProfileSkillService) AddOffered(ctx context.Context, userID uuid.UUID, in AddOfferedSkillInput) (profile.OfferedSkill, error) {
	if !in.Proficiency.IsValid() {
		return profile.OfferedSkill{}, ErrInvalidInput
	}
	if in.YearsExperience < 0 {
		return profile.OfferedSkill{}, ErrInvalidInput
	}

	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.OfferedSkill{}, err
	}

	exists, err := s.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return profile.OfferedSkill{}, ErrInternal
	}
	if !exists {
		return profile.OfferedSkill{}, ErrSkillNotFound
	}

	added, err := s.profileSkills.Add(ctx, profile.OfferedSkill{
		ID:              uuid.New(),
		ProfileID:       p.ID,
		SkillID:         in.SkillID,
		Proficiency:     in.Proficiency,
		YearsExperience: in.YearsExperience,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillAlreadyOffered) {
			return profile.OfferedSkill{}, ErrSkillAlreadyOffered
		}
		return profile.OfferedSkill{}, ErrInternal
	}

	s.invalidate(ctx, p.ID)
	return added, nil
}

func (s *ProfileSkillService) UpdateOffered(ctx context.Context, userID uuid.UUID, in UpdateOfferedSkillInput) (profile.OfferedSkill, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return profile.OfferedSkill{}, err
	}

	current, err := s.findOffered(ctx, p.ID, in.SkillID)
	if err != nil {
		return profile.OfferedSkill{}, err
	}

	if in.Proficiency != nil {
		if !in.Proficiency.IsValid() {
			return profile.OfferedSkill{}, ErrInvalidInput
		}
		current.Proficiency = *in.Proficiency
	}
	if in.YearsExperience != nil {
		if *in.YearsExperience < 0 {
			return profile.OfferedSkill{}, ErrInvalidInput
		}
		current.YearsExperience = *in.YearsExperience
	}

	updated, err := s.profileSkills.Update(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrOfferedSkillNotFound) {
			return profile.OfferedSkill{}, ErrOfferedSkillMissing
		}
		return profile.OfferedSkill{}, ErrInternal
	}
	return updated, nil
}

func (s *ProfileSkillService) RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.profileSkills.Remove(ctx, p.ID, skillID); err != nil {
		if errors.Is(err, repository.ErrOfferedSkillNotFound) {
			return ErrOfferedSkillMissing
		}
		return ErrInternal
	}

	s.invalidate(ctx, p.ID)
	return nil
}

func (s *ProfileSkillService) ownProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *ProfileSkillService) findOffered(ctx context.Context, profileID, skillID uuid.UUID) (profile.OfferedSkill, error) {
	offered, err := s.profileSkills.OfferedSkills(ctx, profileID)
	if err != nil {
		return profile.OfferedSkill{}, ErrInternal
	}
	for _, o := range offered {
		if o.SkillID == skillID {
			return o, nil
		}
	}
	return profile.OfferedSkill{}, ErrOfferedSkillMissing
}

func (s *ProfileSkillService) invalidate(ctx context.Context, profileID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.InvalidateMatches(ctx, profileID.String())
}
