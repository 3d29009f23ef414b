// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/perfil/internal/model"
)

// TopPlayers returns the top N players by total points.
func TopPlayers(aggs []model.PlayerAggregate, n int) []model.PlayerAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.PlayerAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Points == items[j].Points {
			return items[i].Player < items[j].Player
		}
		return items[i].Points > items[j].Points
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
