package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/shuffle"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "perfil.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestGame(t *testing.T, st *Store, id string, endedAt time.Time, rounds []model.RoundRecord) {
	t.Helper()
	game := model.GameRecord{
		ID:         id,
		StartedAt:  endedAt.Add(-5 * time.Minute),
		EndedAt:    endedAt,
		Lang:       "en",
		Categories: []string{"Movies", "Sports"},
		Rounds:     len(rounds),
		Seed:       "seed",
	}
	if err := st.InsertGame(context.Background(), game, rounds); err != nil {
		t.Fatalf("insert game: %v", err)
	}
}

func TestInsertAndListGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0).UTC()
	insertTestGame(t, st, "g1", base, []model.RoundRecord{
		{RoundNumber: 1, ProfileID: "m1", Category: "Movies", Player: "Ana", CluesRead: 2, TotalClues: 20, Points: 19, Guessed: true},
		{RoundNumber: 2, ProfileID: "s1", Category: "Sports", Player: "Bo", CluesRead: 20, TotalClues: 20, Points: 0},
	})
	insertTestGame(t, st, "g2", base.Add(time.Hour), []model.RoundRecord{
		{RoundNumber: 1, ProfileID: "m2", Category: "Movies", Player: "Ana", CluesRead: 1, TotalClues: 20, Points: 20, Guessed: true},
	})

	games, err := st.ListGames(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 || games[0].GameID != "g1" || games[1].GameID != "g2" {
		t.Fatalf("unexpected games: %+v", games)
	}
	if games[0].Rounds != 2 || games[0].Guessed != 1 || games[0].Points != 19 || games[0].CluesRead != 22 {
		t.Fatalf("unexpected aggregate: %+v", games[0])
	}

	since := base.Add(30 * time.Minute)
	games, err = st.ListGames(ctx, model.StatsConfig{Since: &since})
	if err != nil || len(games) != 1 || games[0].GameID != "g2" {
		t.Fatalf("unexpected since filter: %+v %v", games, err)
	}
	games, err = st.ListGames(ctx, model.StatsConfig{Category: "Sports"})
	if err != nil || len(games) != 1 || games[0].Points != 0 {
		t.Fatalf("unexpected category filter: %+v %v", games, err)
	}

	rounds, err := st.ListRounds(ctx, "g1")
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 2 || !rounds[0].Guessed || rounds[1].Guessed || rounds[1].Player != "Bo" {
		t.Fatalf("unexpected rounds: %+v", rounds)
	}

	game, err := st.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !reflect.DeepEqual(game.Categories, []string{"Movies", "Sports"}) || !game.EndedAt.Equal(base) {
		t.Fatalf("unexpected game: %+v", game)
	}
	if _, err := st.GetGame(ctx, "missing"); err == nil {
		t.Fatalf("expected missing game error")
	}
	latest, err := st.LatestGameID(ctx)
	if err != nil || latest != "g2" {
		t.Fatalf("expected latest g2, got %q %v", latest, err)
	}

	recent, err := st.RecentProfileIDs(ctx, 1)
	if err != nil || !reflect.DeepEqual(recent, []string{"m2"}) {
		t.Fatalf("unexpected recent ids: %v %v", recent, err)
	}
}

func TestShuffleMapRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	m := shuffle.Map{"m1": {2, 0, 1}, "m2": {0}}
	if err := st.SaveShuffleMap(ctx, "g1", m); err != nil {
		t.Fatalf("save shuffle map: %v", err)
	}
	got, err := st.LoadShuffleMap(ctx, "g1")
	if err != nil {
		t.Fatalf("load shuffle map: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("expected %v, got %v", m, got)
	}

	if err := st.SaveShuffleMap(ctx, "g1", shuffle.Map{"m3": {1, 0}}); err != nil {
		t.Fatalf("replace shuffle map: %v", err)
	}
	if _, err := st.db.ExecContext(ctx, `INSERT INTO clue_shuffles (game_id, profile_id, indices) VALUES ('g1', 'bad', 'oops')`); err != nil {
		t.Fatalf("insert malformed row: %v", err)
	}
	got, err = st.LoadShuffleMap(ctx, "g1")
	if err != nil {
		t.Fatalf("load shuffle map: %v", err)
	}
	if !reflect.DeepEqual(got, shuffle.Map{"m3": {1, 0}}) {
		t.Fatalf("expected replaced map without malformed row, got %v", got)
	}

	empty, err := st.LoadShuffleMap(ctx, "unknown")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty map, got %v %v", empty, err)
	}
}
