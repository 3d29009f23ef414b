// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Games      []model.GameAggregate
	Categories []model.CategoryAggregate
	Players    []model.PlayerAggregate
	Rounds     []model.RoundRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}

	byGame, err := st.ListRoundsForGames(ctx, gameIDs(games))
	if err != nil {
		return Report{}, err
	}
	var rounds []model.RoundRecord
	for _, g := range games {
		for _, r := range byGame[g.GameID] {
			if cfg.Category != "" && r.Category != cfg.Category {
				continue
			}
			rounds = append(rounds, r)
		}
	}

	return Report{
		Games:      games,
		Categories: aggregateCategories(rounds),
		Players:    aggregatePlayers(rounds),
		Rounds:     rounds,
	}, nil
}

func gameIDs(games []model.GameAggregate) []string {
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	return ids
}

func aggregateCategories(rounds []model.RoundRecord) []model.CategoryAggregate {
	index := map[string]int{}
	var out []model.CategoryAggregate
	for _, r := range rounds {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, model.CategoryAggregate{Category: r.Category})
		}
		out[i].Rounds++
		out[i].Points += r.Points
		out[i].CluesRead += r.CluesRead
		if r.Guessed {
			out[i].Guessed++
		}
	}
	return out
}

func aggregatePlayers(rounds []model.RoundRecord) []model.PlayerAggregate {
	index := map[string]int{}
	var out []model.PlayerAggregate
	for _, r := range rounds {
		i, ok := index[r.Player]
		if !ok {
			i = len(out)
			index[r.Player] = i
			out = append(out, model.PlayerAggregate{Player: r.Player})
		}
		out[i].Rounds++
		out[i].Points += r.Points
		if r.Guessed {
			out[i].Guessed++
		}
	}
	return out
}
