package matching

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Factor weights. The three caps sum to 100; the denominator is a constant
// 100 regardless of which factors fired, so the score is the raw capped sum.
const (
	CommonSkillCap    = 40
	CommonSkillPoints = 10

	NeedCoveredCap    = 30
	NeedCoveredPoints = 15
)

type Skill struct {
	ID   uuid.UUID
	Name string
}

// Facts is the slice of a profile the engine scores on: what it offers and
// what it actively needs. Proficiency and urgency do not enter the score.
type Facts struct {
	Offered []Skill
	Needs   []Skill
}

type Breakdown struct {
	Score int

	CommonFactor   int
	NeedsOfAFactor int
	NeedsOfBFactor int

	CommonSkills []Skill
}

// Score computes the compatibility of two profiles. It is deterministic and
// not symmetric: needs and offers are directional.
func Score(a, b Facts) Breakdown {
	offeredA := skillSet(a.Offered)
	offeredB := skillSet(b.Offered)

	common := make([]Skill, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, s := range a.Offered {
		if s.ID == uuid.Nil {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		if _, ok := offeredB[s.ID]; ok {
			common = append(common, s)
		}
	}
	sortSkills(common)

	commonFactor := capContribution(len(common), CommonSkillPoints, CommonSkillCap)
	needsAFactor := capContribution(countCovered(a.Needs, offeredB), NeedCoveredPoints, NeedCoveredCap)
	needsBFactor := capContribution(countCovered(b.Needs, offeredA), NeedCoveredPoints, NeedCoveredCap)

	score := commonFactor + needsAFactor + needsBFactor
	if score > 100 {
		score = 100
	}

	return Breakdown{
		Score:          score,
		CommonFactor:   commonFactor,
		NeedsOfAFactor: needsAFactor,
		NeedsOfBFactor: needsBFactor,
		CommonSkills:   common,
	}
}

func capContribution(count, points, limit int) int {
	c := count * points
	if c > limit {
		return limit
	}
	return c
}

func countCovered(needs []Skill, offered map[uuid.UUID]struct{}) int {
	seen := make(map[uuid.UUID]struct{}, len(needs))
	n := 0
	for _, need := range needs {
		if need.ID == uuid.Nil {
			continue
		}
		if _, dup := seen[need.ID]; dup {
			continue
		}
		seen[need.ID] = struct{}{}
		if _, ok := offered[need.ID]; ok {
			n++
		}
	}
	return n
}

func skillSet(skills []Skill) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(skills))
	for _, s := range skills {
		if s.ID == uuid.Nil {
			continue
		}
		out[s.ID] = struct{}{}
	}
	return out
}

func sortSkills(skills []Skill) {
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Name != skills[j].Name {
			return skills[i].Name < skills[j].Name
		}
		return bytes.Compare(skills[i].ID[:], skills[j].ID[:]) < 0
	})
}
