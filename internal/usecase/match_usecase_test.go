package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"loomconnect/internal/domain/profile"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	profiles    map[uuid.UUID]profile.Profile
	candidates  []uuid.UUID
	candErr     error
	skillCounts map[uuid.UUID]int
	getErr      error

	// keepExcluded leaves the excluded id in ListCandidateIDs results,
	// imitating a storage layer that does not pre-filter the requester.
	keepExcluded bool
}

func (m mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	if m.getErr != nil {
		return profile.Profile{}, m.getErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m mockProfileRepo) Create(context.Context, profile.Profile) error { return nil }
func (m mockProfileRepo) Update(_ context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (m mockProfileRepo) ListCandidateIDs(_ context.Context, excluding uuid.UUID) ([]uuid.UUID, error) {
	if m.candErr != nil {
		return nil, m.candErr
	}
	out := make([]uuid.UUID, 0, len(m.candidates))
	for _, id := range m.candidates {
		if id == excluding && !m.keepExcluded {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (m mockProfileRepo) SkillCount(_ context.Context, id uuid.UUID) (int, error) {
	return m.skillCounts[id], nil
}

type mockProfileSkillRepo struct {
	offered map[uuid.UUID][]profile.OfferedSkill
	err     error
}

func (m mockProfileSkillRepo) OfferedSkills(_ context.Context, profileID uuid.UUID) ([]profile.OfferedSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.offered[profileID], nil
}

func (m mockProfileSkillRepo) Add(_ context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error) {
	return s, nil
}
func (m mockProfileSkillRepo) Update(_ context.Context, s profile.OfferedSkill) (profile.OfferedSkill, error) {
	return s, nil
}
func (m mockProfileSkillRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type mockProfileNeedRepo struct {
	needs map[uuid.UUID][]profile.Need
	err   error
}

func (m mockProfileNeedRepo) ListNeeds(_ context.Context, profileID uuid.UUID) ([]profile.Need, error) {
	return m.needs[profileID], nil
}

func (m mockProfileNeedRepo) ActiveNeeds(_ context.Context, profileID uuid.UUID) ([]profile.Need, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]profile.Need, 0)
	for _, n := range m.needs[profileID] {
		if n.IsActive {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m mockProfileNeedRepo) Add(_ context.Context, n profile.Need) (profile.Need, error) {
	return n, nil
}
func (m mockProfileNeedRepo) Update(_ context.Context, n profile.Need) (profile.Need, error) {
	return n, nil
}
func (m mockProfileNeedRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type mockConnectionRepo struct {
	connected map[uuid.UUID][]uuid.UUID
	err       error
}

func (m mockConnectionRepo) Create(context.Context, profile.Connection) error { return nil }
func (m mockConnectionRepo) GetByID(context.Context, uuid.UUID) (profile.Connection, error) {
	return profile.Connection{}, nil
}
func (m mockConnectionRepo) UpdateStatus(context.Context, uuid.UUID, profile.ConnectionStatus) (profile.Connection, error) {
	return profile.Connection{}, nil
}
func (m mockConnectionRepo) ListForProfile(context.Context, uuid.UUID) ([]profile.Connection, error) {
	return nil, nil
}
func (m mockConnectionRepo) ExistsBetween(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (m mockConnectionRepo) ConnectedIDs(_ context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.connected[profileID], nil
}

type fakeMatchCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func newFakeMatchCache() *fakeMatchCache {
	return &fakeMatchCache{entries: make(map[string][]byte)}
}

func (c *fakeMatchCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *fakeMatchCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *fakeMatchCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

type matchFixture struct {
	profiles mockProfileRepo
	skills   mockProfileSkillRepo
	needs    mockProfileNeedRepo
	conns    mockConnectionRepo
}

func (f matchFixture) usecase() *Match {
	return NewMatchUsecase(f.profiles, f.skills, f.needs, f.conns, nil, 0)
}

func newMatchFixture() matchFixture {
	return matchFixture{
		profiles: mockProfileRepo{
			profiles:    make(map[uuid.UUID]profile.Profile),
			skillCounts: make(map[uuid.UUID]int),
		},
		skills: mockProfileSkillRepo{offered: make(map[uuid.UUID][]profile.OfferedSkill)},
		needs:  mockProfileNeedRepo{needs: make(map[uuid.UUID][]profile.Need)},
		conns:  mockConnectionRepo{connected: make(map[uuid.UUID][]uuid.UUID)},
	}
}

func (f *matchFixture) addProfile(name string) uuid.UUID {
	id := uuid.New()
	f.profiles.profiles[id] = profile.Profile{
		ID:                  id,
		UserID:              uuid.New(),
		DisplayName:         name,
		IsPublic:            true,
		OnboardingCompleted: true,
	}
	return id
}

func (f *matchFixture) offer(profileID uuid.UUID, skills ...skillRef) {
	for _, s := range skills {
		f.skills.offered[profileID] = append(f.skills.offered[profileID], profile.OfferedSkill{
			ID:        uuid.New(),
			ProfileID: profileID,
			SkillID:   s.id,
			SkillName: s.name,
		})
	}
	f.profiles.skillCounts[profileID] = len(f.skills.offered[profileID])
}

func (f *matchFixture) need(profileID uuid.UUID, skills ...skillRef) {
	for _, s := range skills {
		f.needs.needs[profileID] = append(f.needs.needs[profileID], profile.Need{
			ID:        uuid.New(),
			ProfileID: profileID,
			SkillID:   s.id,
			SkillName: s.name,
			IsActive:  true,
		})
	}
}

type skillRef struct {
	id   uuid.UUID
	name string
}

func newSkillRef(name string) skillRef {
	return skillRef{id: uuid.New(), name: name}
}

func TestCalculateMatchScore_SelfMatch(t *testing.T) {
	f := newMatchFixture()
	id := f.addProfile("solo")

	_, err := f.usecase().CalculateMatchScore(context.Background(), id, id)
	if !errors.Is(err, ErrSelfMatch) {
		t.Fatalf("expected ErrSelfMatch, got %v", err)
	}
}

func TestCalculateMatchScore_NilID(t *testing.T) {
	f := newMatchFixture()
	id := f.addProfile("a")

	_, err := f.usecase().CalculateMatchScore(context.Background(), id, uuid.Nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalculateMatchScore_ProfileNotFound(t *testing.T) {
	f := newMatchFixture()
	id := f.addProfile("a")

	_, err := f.usecase().CalculateMatchScore(context.Background(), id, uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestCalculateMatchScore_Breakdown(t *testing.T) {
	f := newMatchFixture()
	a := f.addProfile("a")
	b := f.addProfile("b")

	goSkill := newSkillRef("Go")
	sqlSkill := newSkillRef("SQL")
	python := newSkillRef("Python")
	react := newSkillRef("React")

	f.offer(a, goSkill, sqlSkill)
	f.need(a, python)
	f.offer(b, goSkill, python)
	f.need(b, sqlSkill, react)

	got, err := f.usecase().CalculateMatchScore(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// common: Go (10); a needs python, b offers it (15); b needs sql+react,
	// a offers sql (15).
	if got.CommonFactor != 10 {
		t.Fatalf("common factor = %d, want 10", got.CommonFactor)
	}
	if got.NeedsFactorA != 15 {
		t.Fatalf("needs factor a = %d, want 15", got.NeedsFactorA)
	}
	if got.NeedsFactorB != 15 {
		t.Fatalf("needs factor b = %d, want 15", got.NeedsFactorB)
	}
	if got.Score != 40 {
		t.Fatalf("score = %d, want 40", got.Score)
	}
	if len(got.CommonSkills) != 1 || got.CommonSkills[0].Name != "Go" {
		t.Fatalf("unexpected common skills: %+v", got.CommonSkills)
	}
}

func TestFindMatches_InvalidParams(t *testing.T) {
	f := newMatchFixture()
	id := f.addProfile("a")
	uc := f.usecase()

	if _, err := uc.FindMatches(context.Background(), id, FindMatchesParams{Limit: 0, MinScore: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("limit=0: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.FindMatches(context.Background(), id, FindMatchesParams{Limit: 10, MinScore: 101}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("min_score=101: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.FindMatches(context.Background(), id, FindMatchesParams{Limit: 10, MinScore: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("min_score=-1: expected ErrInvalidInput, got %v", err)
	}
}

func TestFindMatches_FilterSortLimit(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")

	s1 := newSkillRef("Go")
	s2 := newSkillRef("SQL")
	n1 := newSkillRef("Docker")
	n2 := newSkillRef("React")
	other := newSkillRef("Rust")

	f.offer(searcher, s1, s2)
	f.need(searcher, n1, n2)

	// 50: two common + both needs covered.
	top := f.addProfile("top")
	f.offer(top, s1, s2, n1, n2)

	// 35: two common + needs something the searcher offers.
	second := f.addProfile("second")
	f.offer(second, s1, s2)
	f.need(second, s1)

	// 20: two common only. Passes the threshold but cut by the limit.
	third := f.addProfile("third")
	f.offer(third, s1, s2)

	// 15: only needs coverage. Below threshold.
	low := f.addProfile("low")
	f.offer(low, other)
	f.need(low, s1)

	// 10: one common. Below threshold.
	lowest := f.addProfile("lowest")
	f.offer(lowest, s1)

	f.profiles.candidates = []uuid.UUID{top, second, third, low, lowest}

	results, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 2, MinScore: 20})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ProfileID != top || results[0].Score != 50 {
		t.Fatalf("results[0] = %s score=%d, want top with 50", results[0].DisplayName, results[0].Score)
	}
	if results[1].ProfileID != second || results[1].Score != 35 {
		t.Fatalf("results[1] = %s score=%d, want second with 35", results[1].DisplayName, results[1].Score)
	}
}

func TestFindMatches_TieBreakByProfileID(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")

	s1 := newSkillRef("Go")
	f.offer(searcher, s1)

	a := f.addProfile("a")
	f.offer(a, s1)
	b := f.addProfile("b")
	f.offer(b, s1)

	f.profiles.candidates = []uuid.UUID{a, b}

	results, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if bytes.Compare(results[0].ProfileID[:], results[1].ProfileID[:]) >= 0 {
		t.Fatalf("equal scores must be ordered by profile id ascending")
	}
}

func TestFindMatches_ExcludesConnected(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")

	s1 := newSkillRef("Go")
	f.offer(searcher, s1)

	connectedCandidate := f.addProfile("connected")
	f.offer(connectedCandidate, s1)
	free := f.addProfile("free")
	f.offer(free, s1)

	f.profiles.candidates = []uuid.UUID{connectedCandidate, free}
	f.conns.connected[searcher] = []uuid.UUID{connectedCandidate}

	results, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 || results[0].ProfileID != free {
		t.Fatalf("expected only the unconnected candidate, got %+v", results)
	}
}

func TestFindMatches_RepositoryErrorPropagates(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")
	f.profiles.candErr = errors.New("connection refused")

	_, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if !errors.Is(err, ErrRepositoryUnavailable) {
		t.Fatalf("expected ErrRepositoryUnavailable, got %v", err)
	}
}

func TestFindMatches_SkillRepoErrorPropagates(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")
	f.profiles.candidates = []uuid.UUID{f.addProfile("candidate")}
	f.skills.err = errors.New("timeout")

	_, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if !errors.Is(err, ErrRepositoryUnavailable) {
		t.Fatalf("expected ErrRepositoryUnavailable, got %v", err)
	}
}

func TestFindMatches_EmptyPool(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")

	results, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result set, got %d", len(results))
	}
}

func TestFindMatches_IgnoresRequesterInCandidatePool(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")
	other := f.addProfile("other")
	goSkill := newSkillRef("Go")
	f.offer(searcher, goSkill)
	f.offer(other, goSkill)
	f.profiles.candidates = []uuid.UUID{searcher, other}
	f.profiles.keepExcluded = true

	results, err := f.usecase().FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 || results[0].ProfileID != other {
		t.Fatalf("searcher must never match itself, got %+v", results)
	}
}

func TestFindMatches_ServesCachedResults(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")
	other := f.addProfile("other")
	goSkill := newSkillRef("Go")
	f.offer(searcher, goSkill)
	f.offer(other, goSkill)
	f.profiles.candidates = []uuid.UUID{other}

	cache := newFakeMatchCache()
	params := FindMatchesParams{Limit: 10, MinScore: 5}
	uc := NewMatchUsecase(f.profiles, f.skills, f.needs, f.conns, cache, time.Minute)

	first, err := uc.FindMatches(context.Background(), searcher, params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one match, got %d", len(first))
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
	if _, ok := cache.entries[MatchesCacheKey(searcher, params)]; !ok {
		t.Fatalf("results not stored under the expected key")
	}

	// Same cache, candidate listing now failing: the warm entry is served
	// without touching the pool.
	f.profiles.candErr = errors.New("db down")
	uc = NewMatchUsecase(f.profiles, f.skills, f.needs, f.conns, cache, time.Minute)
	second, err := uc.FindMatches(context.Background(), searcher, params)
	if err != nil {
		t.Fatalf("cache hit should not reach the repository: %v", err)
	}
	if len(second) != 1 || second[0].ProfileID != first[0].ProfileID || second[0].Score != first[0].Score {
		t.Fatalf("cached result drifted: %+v vs %+v", second, first)
	}
}

func TestFindMatches_CacheReadErrorFallsThrough(t *testing.T) {
	f := newMatchFixture()
	searcher := f.addProfile("searcher")
	other := f.addProfile("other")
	goSkill := newSkillRef("Go")
	f.offer(searcher, goSkill)
	f.offer(other, goSkill)
	f.profiles.candidates = []uuid.UUID{other}

	cache := newFakeMatchCache()
	cache.getErr = errors.New("redis down")
	uc := NewMatchUsecase(f.profiles, f.skills, f.needs, f.conns, cache, time.Minute)

	results, err := uc.FindMatches(context.Background(), searcher, FindMatchesParams{Limit: 10, MinScore: 5})
	if err != nil {
		t.Fatalf("a cache failure must not fail the lookup: %v", err)
	}
	if len(results) != 1 || results[0].ProfileID != other {
		t.Fatalf("expected computed match, got %+v", results)
	}
}
