package dto

import (
	"loomconnect/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}

func NewSkillResponses(skills []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
