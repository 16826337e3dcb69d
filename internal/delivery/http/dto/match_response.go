package dto

import (
	"loomconnect/internal/domain/matching"
	"loomconnect/internal/usecase"

	"github.com/google/uuid"
)

type CommonSkillResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
}

type MatchScoreResponse struct {
	Score        int                   `json:"score"`
	CommonFactor int                   `json:"common_factor"`
	NeedsFactorA int                   `json:"needs_factor_a"`
	NeedsFactorB int                   `json:"needs_factor_b"`
	CommonSkills []CommonSkillResponse `json:"common_skills"`
}

func NewMatchScoreResponse(s usecase.MatchScore) MatchScoreResponse {
	return MatchScoreResponse{
		Score:        s.Score,
		CommonFactor: s.CommonFactor,
		NeedsFactorA: s.NeedsFactorA,
		NeedsFactorB: s.NeedsFactorB,
		CommonSkills: newCommonSkillResponses(s.CommonSkills),
	}
}

type MatchResultResponse struct {
	ProfileID    uuid.UUID             `json:"profile_id"`
	DisplayName  string                `json:"display_name"`
	Headline     string                `json:"headline,omitempty"`
	Score        int                   `json:"score"`
	CommonSkills []CommonSkillResponse `json:"common_skills"`
	SkillCount   int                   `json:"skill_count"`
}

func NewMatchResultResponses(results []usecase.MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, MatchResultResponse{
			ProfileID:    r.ProfileID,
			DisplayName:  r.DisplayName,
			Headline:     r.Headline,
			Score:        r.Score,
			CommonSkills: newCommonSkillResponses(r.CommonSkills),
			SkillCount:   r.SkillCount,
		})
	}
	return out
}

func newCommonSkillResponses(skills []matching.Skill) []CommonSkillResponse {
	out := make([]CommonSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, CommonSkillResponse{SkillID: s.ID, SkillName: s.Name})
	}
	return out
}
