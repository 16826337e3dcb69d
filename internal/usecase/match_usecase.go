package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"loomconnect/internal/domain/matching"
	"loomconnect/internal/domain/profile"
	"loomconnect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSelfMatch             = errors.New("cannot match a profile against itself")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrRepositoryUnavailable = errors.New("profile repository unavailable")
)

type MatchScore struct {
	Score        int
	CommonFactor int
	NeedsFactorA int
	NeedsFactorB int
	CommonSkills []matching.Skill
}

type MatchResult struct {
	ProfileID    uuid.UUID
	DisplayName  string
	Headline     string
	Score        int
	CommonSkills []matching.Skill
	SkillCount   int
}

type FindMatchesParams struct {
	Limit    int
	MinScore int
}

type MatchUsecase interface {
	CalculateMatchScore(ctx context.Context, profileA, profileB uuid.UUID) (MatchScore, error)
	FindMatches(ctx context.Context, profileID uuid.UUID, params FindMatchesParams) ([]MatchResult, error)
}

type Match struct {
	profiles profile.Repository
	skills   repository.ProfileSkillRepository
	needs    repository.ProfileNeedRepository
	conns    profile.ConnectionRepository

	cache    MatchCache
	cacheTTL time.Duration
}

func NewMatchUsecase(
	profiles profile.Repository,
	skills repository.ProfileSkillRepository,
	needs repository.ProfileNeedRepository,
	conns profile.ConnectionRepository,
	cache MatchCache,
	cacheTTL time.Duration,
) *Match {
	return &Match{
		profiles: profiles,
		skills:   skills,
		needs:    needs,
		conns:    conns,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (u *Match) CalculateMatchScore(ctx context.Context, profileA, profileB uuid.UUID) (MatchScore, error) {
	if profileA == uuid.Nil || profileB == uuid.Nil {
		return MatchScore{}, ErrInvalidInput
	}
	if profileA == profileB {
		return MatchScore{}, ErrSelfMatch
	}

	if _, err := u.mustGetProfile(ctx, profileA); err != nil {
		return MatchScore{}, err
	}
	if _, err := u.mustGetProfile(ctx, profileB); err != nil {
		return MatchScore{}, err
	}

	factsA, err := u.loadFacts(ctx, profileA)
	if err != nil {
		return MatchScore{}, err
	}
	factsB, err := u.loadFacts(ctx, profileB)
	if err != nil {
		return MatchScore{}, err
	}

	res := matching.Score(factsA, factsB)
	return MatchScore{
		Score:        res.Score,
		CommonFactor: res.CommonFactor,
		NeedsFactorA: res.NeedsOfAFactor,
		NeedsFactorB: res.NeedsOfBFactor,
		CommonSkills: res.CommonSkills,
	}, nil
}

func (u *Match) FindMatches(ctx context.Context, profileID uuid.UUID, params FindMatchesParams) ([]MatchResult, error) {
	if profileID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if params.Limit <= 0 {
		return nil, ErrInvalidInput
	}
	if params.MinScore < 0 || params.MinScore > 100 {
		return nil, ErrInvalidInput
	}

	if _, err := u.mustGetProfile(ctx, profileID); err != nil {
		return nil, err
	}

	cacheKey := MatchesCacheKey(profileID, params)
	if u.cache != nil {
		var cached []MatchResult
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	candidates, err := u.profiles.ListCandidateIDs(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates for %s: %w", ErrRepositoryUnavailable, profileID, err)
	}

	connectedIDs, err := u.conns.ConnectedIDs(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: connected profiles of %s: %w", ErrRepositoryUnavailable, profileID, err)
	}
	connected := make(map[uuid.UUID]struct{}, len(connectedIDs))
	for _, id := range connectedIDs {
		connected[id] = struct{}{}
	}

	ownFacts, err := u.loadFacts(ctx, profileID)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, 0)
	for _, candidateID := range candidates {
		if candidateID == profileID {
			continue
		}
		if _, ok := connected[candidateID]; ok {
			continue
		}

		candidateFacts, err := u.loadFacts(ctx, candidateID)
		if err != nil {
			return nil, err
		}

		res := matching.Score(ownFacts, candidateFacts)
		if res.Score < params.MinScore {
			continue
		}

		candidate, err := u.mustGetProfile(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		skillCount, err := u.profiles.SkillCount(ctx, candidateID)
		if err != nil {
			return nil, fmt.Errorf("%w: skill count of %s: %w", ErrRepositoryUnavailable, candidateID, err)
		}

		results = append(results, MatchResult{
			ProfileID:    candidateID,
			DisplayName:  candidate.DisplayName,
			Headline:     candidate.Headline,
			Score:        res.Score,
			CommonSkills: res.CommonSkills,
			SkillCount:   skillCount,
		})
	}

	// Descending by score; equal scores ordered by profile id so repeated
	// runs over the same data return the same list.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return bytes.Compare(results[i].ProfileID[:], results[j].ProfileID[:]) < 0
	})

	if len(results) > params.Limit {
		results = results[:params.Limit]
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, results, u.cacheTTL)
	}

	return results, nil
}

func (u *Match) mustGetProfile(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	p, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		return profile.Profile{}, fmt.Errorf("%w: profile %s: %w", ErrRepositoryUnavailable, id, err)
	}
	return p, nil
}

func (u *Match) loadFacts(ctx context.Context, id uuid.UUID) (matching.Facts, error) {
	offered, err := u.skills.OfferedSkills(ctx, id)
	if err != nil {
		return matching.Facts{}, fmt.Errorf("%w: offered skills of %s: %w", ErrRepositoryUnavailable, id, err)
	}
	needs, err := u.needs.ActiveNeeds(ctx, id)
	if err != nil {
		return matching.Facts{}, fmt.Errorf("%w: active needs of %s: %w", ErrRepositoryUnavailable, id, err)
	}

	facts := matching.Facts{
		Offered: make([]matching.Skill, 0, len(offered)),
		Needs:   make([]matching.Skill, 0, len(needs)),
	}
	for _, s := range offered {
		facts.Offered = append(facts.Offered, matching.Skill{ID: s.SkillID, Name: s.SkillName})
	}
	for _, n := range needs {
		facts.Needs = append(facts.Needs, matching.Skill{ID: n.SkillID, Name: n.SkillName})
	}
	return facts, nil
}
