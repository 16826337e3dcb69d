package dto

import (
	"time"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	DisplayName         string    `json:"display_name"`
	Headline            string    `json:"headline"`
	IsPublic            bool      `json:"is_public"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID,
		DisplayName:         p.DisplayName,
		Headline:            p.Headline,
		IsPublic:            p.IsPublic,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

type OfferedSkillResponse struct {
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	Proficiency     string    `json:"proficiency"`
	YearsExperience int       `json:"years_experience"`
}

func NewOfferedSkillResponse(s profile.OfferedSkill) OfferedSkillResponse {
	return OfferedSkillResponse{
		SkillID:         s.SkillID,
		SkillName:       s.SkillName,
		Proficiency:     string(s.Proficiency),
		YearsExperience: s.YearsExperience,
	}
}

func NewOfferedSkillResponses(skills []profile.OfferedSkill) []OfferedSkillResponse {
	out := make([]OfferedSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewOfferedSkillResponse(s))
	}
	return out
}

type NeedResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Urgency   string    `json:"urgency"`
	IsActive  bool      `json:"is_active"`
}

func NewNeedResponse(n profile.Need) NeedResponse {
	return NeedResponse{
		SkillID:   n.SkillID,
		SkillName: n.SkillName,
		Urgency:   string(n.Urgency),
		IsActive:  n.IsActive,
	}
}

func NewNeedResponses(needs []profile.Need) []NeedResponse {
	out := make([]NeedResponse, 0, len(needs))
	for _, n := range needs {
		out = append(out, NewNeedResponse(n))
	}
	return out
}
