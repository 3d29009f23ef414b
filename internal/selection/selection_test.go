package selection

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/verte-zerg/perfil/internal/model"
)

func buildProfiles(counts map[string]int) []model.Profile {
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	var out []model.Profile
	for _, c := range cats {
		for i := 0; i < counts[c]; i++ {
			out = append(out, model.Profile{
				ID:       fmt.Sprintf("%s-%d", c, i),
				Category: c,
				Name:     fmt.Sprintf("%s %d", c, i),
				Clues:    []string{"clue"},
			})
		}
	}
	return out
}

func countByCategory(ids []string) map[string]int {
	out := map[string]int{}
	for _, id := range ids {
		out[id[:strings.LastIndex(id, "-")]]++
	}
	return out
}

func TestAvailableProfileCount(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 5, "sports": 3, "music": 2})
	if got := AvailableProfileCount(profiles, []string{"movies", "sports", "movies"}); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
	if !HasEnoughProfiles(profiles, []string{"music"}, 2) || HasEnoughProfiles(profiles, []string{"music"}, 3) {
		t.Fatalf("unexpected HasEnoughProfiles boundary")
	}
}

func TestSelectProfilesForGameExactUnique(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 5, "sports": 3, "music": 4})
	sel := NewWithSeed(1)
	categories := []string{"movies", "sports"}
	for rounds := 1; rounds <= 8; rounds++ {
		ids, err := sel.SelectProfilesForGame(profiles, categories, rounds)
		if err != nil {
			t.Fatalf("rounds=%d: %v", rounds, err)
		}
		if len(ids) != rounds {
			t.Fatalf("rounds=%d: got %d ids", rounds, len(ids))
		}
		seen := map[string]bool{}
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
			if strings.HasPrefix(id, "music") {
				t.Fatalf("id %s outside selected categories", id)
			}
		}
	}
}

func TestSelectProfilesForGameDistribution(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 5, "sports": 3})
	sel := NewWithSeed(2)
	cases := []struct {
		rounds int
		want   map[string]int
	}{
		{6, map[string]int{"movies": 3, "sports": 3}},
		{7, map[string]int{"movies": 4, "sports": 3}},
		{8, map[string]int{"movies": 5, "sports": 3}},
	}
	for _, tc := range cases {
		ids, err := sel.SelectProfilesForGame(profiles, []string{"movies", "sports"}, tc.rounds)
		if err != nil {
			t.Fatalf("rounds=%d: %v", tc.rounds, err)
		}
		got := countByCategory(ids)
		for cat, n := range tc.want {
			if got[cat] != n {
				t.Fatalf("rounds=%d: expected %d %s, got %v", tc.rounds, n, cat, got)
			}
		}
	}
}

func TestSelectProfilesForGameRedistributesShortfall(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 6, "sports": 1, "music": 2})
	ids, err := NewWithSeed(3).SelectProfilesForGame(profiles, []string{"sports", "music", "movies"}, 9)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	got := countByCategory(ids)
	if got["sports"] != 1 || got["music"] != 2 || got["movies"] != 6 {
		t.Fatalf("unexpected distribution: %v", got)
	}
}

func TestSelectProfilesForGameErrors(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 5, "sports": 3})
	sel := New()

	_, err := sel.SelectProfilesForGame(profiles, []string{"movies"}, 10)
	var insufficient *InsufficientProfilesError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientProfilesError, got %v", err)
	}
	if !strings.Contains(err.Error(), "5") || !strings.Contains(err.Error(), "10") {
		t.Fatalf("expected counts in message, got %q", err.Error())
	}

	_, err = sel.SelectProfilesForGame(profiles, []string{"history"}, 1)
	var none *NoProfilesError
	if !errors.As(err, &none) || err.Error() != "No profiles found for selected categories" {
		t.Fatalf("expected NoProfilesError, got %v", err)
	}
	if _, err := sel.SelectProfilesForGame(profiles, nil, 1); !errors.As(err, &none) {
		t.Fatalf("expected NoProfilesError for no categories, got %v", err)
	}
}

func TestSelectProfilesForGameIgnoresDuplicateIDs(t *testing.T) {
	profiles := buildProfiles(map[string]int{"movies": 2})
	profiles = append(profiles, profiles[0])
	if got := AvailableProfileCount(profiles, []string{"movies"}); got != 2 {
		t.Fatalf("expected duplicate id to count once, got %d", got)
	}
	if _, err := New().SelectProfilesForGame(profiles, []string{"movies"}, 3); err == nil {
		t.Fatalf("expected insufficient profiles")
	}
}

func TestShuffleProfiles(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	sel := NewWithSeed(7)
	observed := make([]map[string]bool, len(ids))
	for i := range observed {
		observed[i] = map[string]bool{}
	}
	for run := 0; run < 30; run++ {
		out := sel.ShuffleProfiles(ids)
		if strings.Join(ids, "") != "abcde" {
			t.Fatalf("input mutated: %v", ids)
		}
		sorted := append([]string(nil), out...)
		sort.Strings(sorted)
		if strings.Join(sorted, "") != "abcde" {
			t.Fatalf("shuffle changed contents: %v", out)
		}
		for i, id := range out {
			observed[i][id] = true
		}
	}
	for i, values := range observed {
		if len(values) < 2 {
			t.Fatalf("position %d never changed: %v", i, values)
		}
	}
}
