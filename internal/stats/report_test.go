package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "perfil.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		game := model.GameRecord{
			ID:         "game-" + string(rune('a'+i)),
			StartedAt:  start,
			EndedAt:    start.Add(10 * time.Minute),
			Lang:       "en",
			Categories: []string{"Movies", "Sports"},
			Rounds:     2,
		}
		rounds := []model.RoundRecord{
			{RoundNumber: 1, ProfileID: "m1", Category: "Movies", Player: "Ana", CluesRead: 3, TotalClues: 20, Points: 18, Guessed: true},
			{RoundNumber: 2, ProfileID: "s1", Category: "Sports", Player: "Bo", CluesRead: 20, TotalClues: 20},
		}
		if err := st.InsertGame(ctx, game, rounds); err != nil {
			t.Fatalf("insert game: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2, CurveWindow: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(report.Games))
	}
	if report.Games[0].GameID != "game-b" || report.Games[1].GameID != "game-c" {
		t.Fatalf("unexpected game ids: %+v", report.Games)
	}
	if len(report.Rounds) != 4 || len(report.Categories) != 2 || len(report.Players) != 2 {
		t.Fatalf("unexpected aggregates: %+v", report)
	}
	if report.Categories[0].Category != "Movies" || report.Categories[0].Points != 36 {
		t.Fatalf("unexpected category aggregate: %+v", report.Categories[0])
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, report, 2, 80); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Games: 2", "Guess rate: 50.00%", "Avg clues to guess: 3.00", "Sports", "Ana"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("report missing %q:\n%s", needle, out)
		}
	}
	sportsRow := strings.Index(out, "\nSports ")
	moviesRow := strings.Index(out, "\nMovies ")
	if sportsRow < 0 || moviesRow < 0 || sportsRow > moviesRow {
		t.Fatalf("expected Sports listed before Movies:\n%s", out)
	}
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, Report{}, 5, 80); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if buf.String() != "No games found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
