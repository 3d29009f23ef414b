package stats

import (
	"sort"

	"github.com/verte-zerg/perfil/internal/model"
)

// HardestCategories orders categories by lowest guess rate, then by most
// clues needed per round.
func HardestCategories(aggs []model.CategoryAggregate, top int) []model.CategoryAggregate {
	if len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.CategoryAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ri := GuessRate(candidates[i].Guessed, candidates[i].Rounds)
		rj := GuessRate(candidates[j].Guessed, candidates[j].Rounds)
		if ri != rj {
			return ri < rj
		}
		ci := CluesPerRound(candidates[i])
		cj := CluesPerRound(candidates[j])
		if ci != cj {
			return ci > cj
		}
		return candidates[i].Category < candidates[j].Category
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}

// CluesPerRound is the average number of clues read per round.
func CluesPerRound(agg model.CategoryAggregate) float64 {
	if agg.Rounds == 0 {
		return 0
	}
	return float64(agg.CluesRead) / float64(agg.Rounds)
}
