// Package selection picks and orders the profiles played in a game.
package selection

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/perfil/internal/model"
)

// NoProfilesError is returned when no profile matches the chosen categories.
type NoProfilesError struct {
	Categories []string
}

func (e *NoProfilesError) Error() string {
	return "No profiles found for selected categories"
}

// InsufficientProfilesError is returned when fewer unique profiles exist than
// rounds requested.
type InsufficientProfilesError struct {
	Requested int
	Available int
}

func (e *InsufficientProfilesError) Error() string {
	return fmt.Sprintf("Not enough profiles: requested %d rounds but only %d unique profiles are available", e.Requested, e.Available)
}

// Selector draws profiles using its own random source.
type Selector struct {
	rnd *rand.Rand
}

// New returns a Selector seeded with the current time.
func New() *Selector {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Selector with a deterministic random source.
func NewWithSeed(seed int64) *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(seed))}
}

// AvailableProfileCount counts unique profiles in the given categories.
func AvailableProfileCount(profiles []model.Profile, categories []string) int {
	total := 0
	for _, pool := range buildPools(profiles, categories) {
		total += len(pool)
	}
	return total
}

// HasEnoughProfiles reports whether rounds can be filled with unique profiles.
func HasEnoughProfiles(profiles []model.Profile, categories []string, rounds int) bool {
	return rounds <= AvailableProfileCount(profiles, categories)
}

// SelectProfilesForGame returns exactly rounds unique profile ids drawn from
// categories. Rounds are split evenly across categories; a category that
// cannot fill its share hands the shortfall to categories with spare profiles,
// in the order the categories were given. The result is shuffled.
func (s *Selector) SelectProfilesForGame(profiles []model.Profile, categories []string, rounds int) ([]string, error) {
	pools := buildPools(profiles, categories)
	available := 0
	for _, pool := range pools {
		available += len(pool)
	}
	if available == 0 {
		return nil, &NoProfilesError{Categories: uniqueStrings(categories)}
	}
	if rounds > available {
		return nil, &InsufficientProfilesError{Requested: rounds, Available: available}
	}
	if rounds <= 0 {
		return []string{}, nil
	}

	quotas := distribute(pools, rounds)
	selected := make([]string, 0, rounds)
	for i, pool := range pools {
		picked := s.ShuffleProfiles(pool)
		selected = append(selected, picked[:quotas[i]]...)
	}
	return s.ShuffleProfiles(selected), nil
}

// ShuffleProfiles returns a shuffled copy of ids.
func (s *Selector) ShuffleProfiles(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// buildPools returns unique profile ids per de-duplicated category, in
// category order. An id is only counted once even if repeated in the catalog.
func buildPools(profiles []model.Profile, categories []string) [][]string {
	cats := uniqueStrings(categories)
	index := make(map[string]int, len(cats))
	for i, c := range cats {
		index[c] = i
	}
	pools := make([][]string, len(cats))
	seen := map[string]struct{}{}
	for _, p := range profiles {
		i, ok := index[p.Category]
		if !ok {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		pools[i] = append(pools[i], p.ID)
	}
	return pools
}

func distribute(pools [][]string, rounds int) []int {
	n := len(pools)
	quotas := make([]int, n)
	base, extra := rounds/n, rounds%n
	shortfall := 0
	for i, pool := range pools {
		want := base
		if i < extra {
			want++
		}
		if want > len(pool) {
			shortfall += want - len(pool)
			want = len(pool)
		}
		quotas[i] = want
	}
	for shortfall > 0 {
		moved := false
		for i, pool := range pools {
			if shortfall == 0 {
				break
			}
			if quotas[i] < len(pool) {
				quotas[i]++
				shortfall--
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return quotas
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
