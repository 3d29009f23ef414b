package stats

import (
	"testing"

	"github.com/verte-zerg/perfil/internal/model"
)

func TestTopPlayers(t *testing.T) {
	aggs := []model.PlayerAggregate{
		{Player: "Bo", Points: 30},
		{Player: "Ana", Points: 30},
		{Player: "Cy", Points: 12},
	}
	top := TopPlayers(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 players, got %d", len(top))
	}
	if top[0].Player != "Ana" || top[1].Player != "Bo" {
		t.Fatalf("unexpected order: %v", top)
	}
	if aggs[0].Player != "Bo" {
		t.Fatalf("input should not be reordered")
	}
}

func TestHardestCategories(t *testing.T) {
	aggs := []model.CategoryAggregate{
		{Category: "Movies", Rounds: 4, Guessed: 3, CluesRead: 20},
		{Category: "Sports", Rounds: 4, Guessed: 1, CluesRead: 40},
		{Category: "Music", Rounds: 2, Guessed: 0, CluesRead: 30},
		{Category: "Places", Rounds: 2, Guessed: 0, CluesRead: 40},
	}
	got := HardestCategories(aggs, 3)
	if len(got) != 3 || got[0].Category != "Places" || got[1].Category != "Music" || got[2].Category != "Sports" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSparklineAndAverage(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	avg := MovingAverage([]float64{2, 4, 6}, 2)
	if avg[0] != 2 || avg[1] != 3 || avg[2] != 5 {
		t.Fatalf("unexpected moving average %v", avg)
	}
	rounds := []model.RoundRecord{
		{CluesRead: 2, Guessed: true},
		{CluesRead: 20},
		{CluesRead: 4, Guessed: true},
	}
	if got := AverageCluesToGuess(rounds); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if GuessRate(0, 0) != 0 || GuessRate(1, 4) != 0.25 {
		t.Fatalf("unexpected guess rate")
	}
}
