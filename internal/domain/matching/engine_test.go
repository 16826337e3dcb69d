package matching

import (
	"testing"

	"github.com/google/uuid"
)

func named(name string) Skill {
	return Skill{ID: uuid.New(), Name: name}
}

func TestScore_CommonSkillsOnly(t *testing.T) {
	python := named("Python")
	django := named("Django")
	react := named("React")

	a := Facts{Offered: []Skill{python, django}}
	b := Facts{Offered: []Skill{python, react}}

	res := Score(a, b)
	if res.Score != 10 {
		t.Fatalf("expected score 10, got %d", res.Score)
	}
	if res.CommonFactor != 10 {
		t.Fatalf("expected common factor 10, got %d", res.CommonFactor)
	}
	if len(res.CommonSkills) != 1 || res.CommonSkills[0].Name != "Python" {
		t.Fatalf("expected common skills [Python], got %v", res.CommonSkills)
	}
}

func TestScore_FourCommonSkillsHitCap(t *testing.T) {
	skills := []Skill{named("Python"), named("Django"), named("Docker"), named("SQL")}

	a := Facts{Offered: skills}
	b := Facts{Offered: skills}

	res := Score(a, b)
	if res.Score != 40 {
		t.Fatalf("expected score 40, got %d", res.Score)
	}
	if res.CommonFactor != CommonSkillCap {
		t.Fatalf("expected common factor at cap %d, got %d", CommonSkillCap, res.CommonFactor)
	}
}

func TestScore_OneNeedCovered(t *testing.T) {
	react := named("React")
	node := named("Node")

	a := Facts{Needs: []Skill{react}}
	b := Facts{Offered: []Skill{react, node}}

	res := Score(a, b)
	if res.Score != 15 {
		t.Fatalf("expected score 15, got %d", res.Score)
	}
	if res.NeedsOfAFactor != 15 || res.NeedsOfBFactor != 0 || res.CommonFactor != 0 {
		t.Fatalf("unexpected breakdown: %+v", res)
	}
}

func TestScore_MutualNeedsCovered(t *testing.T) {
	goSkill := named("Go")
	rust := named("Rust")

	a := Facts{Offered: []Skill{goSkill}, Needs: []Skill{rust}}
	b := Facts{Offered: []Skill{rust}, Needs: []Skill{goSkill}}

	res := Score(a, b)
	if res.Score != 30 {
		t.Fatalf("expected score 30, got %d", res.Score)
	}
	if res.NeedsOfAFactor != 15 || res.NeedsOfBFactor != 15 {
		t.Fatalf("unexpected breakdown: %+v", res)
	}
	if len(res.CommonSkills) != 0 {
		t.Fatalf("expected no common skills, got %v", res.CommonSkills)
	}
}

func TestScore_EmptyProfiles(t *testing.T) {
	res := Score(Facts{}, Facts{})
	if res.Score != 0 {
		t.Fatalf("expected score 0, got %d", res.Score)
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	shared := make([]Skill, 12)
	for i := range shared {
		shared[i] = named("shared")
	}

	for nCommon := 0; nCommon <= len(shared); nCommon++ {
		for nNeeds := 0; nNeeds <= len(shared); nNeeds++ {
			a := Facts{Offered: shared[:nCommon], Needs: shared[:nNeeds]}
			b := Facts{Offered: shared, Needs: shared[:nNeeds]}
			res := Score(a, b)
			if res.Score < 0 || res.Score > 100 {
				t.Fatalf("score out of bounds: common=%d needs=%d score=%d", nCommon, nNeeds, res.Score)
			}
		}
	}
}

func TestScore_CommonFactorMonotonicAndSaturating(t *testing.T) {
	pool := make([]Skill, 10)
	for i := range pool {
		pool[i] = named("skill")
	}

	prev := 0
	for n := 1; n <= len(pool); n++ {
		res := Score(Facts{Offered: pool[:n]}, Facts{Offered: pool[:n]})
		if res.CommonFactor < prev {
			t.Fatalf("common factor decreased at n=%d: %d < %d", n, res.CommonFactor, prev)
		}
		if n >= 4 && res.CommonFactor != CommonSkillCap {
			t.Fatalf("expected saturation at %d for n=%d, got %d", CommonSkillCap, n, res.CommonFactor)
		}
		prev = res.CommonFactor
	}
}

func TestScore_NotRequiredToBeSymmetric(t *testing.T) {
	rust := named("Rust")

	a := Facts{Needs: []Skill{rust}}
	b := Facts{Offered: []Skill{rust}}

	ab := Score(a, b)
	ba := Score(b, a)

	// Directional: A's need covered by B lands in a different factor when
	// the arguments flip. Totals coincide here, the factors must not.
	if ab.NeedsOfAFactor != ba.NeedsOfBFactor {
		t.Fatalf("mirrored factors diverge: %d vs %d", ab.NeedsOfAFactor, ba.NeedsOfBFactor)
	}
	if ab.NeedsOfAFactor == 0 {
		t.Fatalf("expected covered need to contribute")
	}
}

func TestScore_DuplicateSkillRowsCountOnce(t *testing.T) {
	python := named("Python")

	a := Facts{Offered: []Skill{python, python, python}}
	b := Facts{Offered: []Skill{python}}

	res := Score(a, b)
	if res.Score != 10 {
		t.Fatalf("expected duplicates to count once, got %d", res.Score)
	}
	if len(res.CommonSkills) != 1 {
		t.Fatalf("expected 1 common skill, got %d", len(res.CommonSkills))
	}
}

func TestScore_CommonSkillsSortedByName(t *testing.T) {
	skills := []Skill{named("SQL"), named("Django"), named("Python")}

	res := Score(Facts{Offered: skills}, Facts{Offered: skills})
	want := []string{"Django", "Python", "SQL"}
	if len(res.CommonSkills) != len(want) {
		t.Fatalf("expected %d common skills, got %d", len(want), len(res.CommonSkills))
	}
	for i, w := range want {
		if res.CommonSkills[i].Name != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, res.CommonSkills[i].Name)
		}
	}
}
