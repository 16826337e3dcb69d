package usecase

import (
	"context"
	"strings"

	"loomconnect/internal/domain/skill"
	"loomconnect/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context, query string) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type SkillService struct {
	skills repository.SkillRepository
}

func NewSkillUsecase(skills repository.SkillRepository) *SkillService {
	return &SkillService{skills: skills}
}

func (s *SkillService) ListSkills(ctx context.Context, query string) ([]skill.Skill, error) {
	query = strings.TrimSpace(query)

	var (
		result []skill.Skill
		err    error
	)
	if query == "" {
		result, err = s.skills.GetAllSkills(ctx)
	} else {
		result, err = s.skills.SearchSkills(ctx, query)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return result, nil
}

func (s *SkillService) CreateSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	category = strings.TrimSpace(category)

	created, err := s.skills.CreateSkill(ctx, name, category)
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}
