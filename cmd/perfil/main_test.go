package main

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/perfil/internal/catalog"
	"github.com/verte-zerg/perfil/internal/config"
	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/store"
)

func TestApplyConfigRespectsFlags(t *testing.T) {
	var categories []string
	var rounds int
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "")
	cmd.Flags().IntVar(&rounds, "rounds", 10, "")

	fromFile := []string{"Movies", "Sports"}
	applyStringSliceConfig(cmd, "categories", &categories, &fromFile)
	if !reflect.DeepEqual(categories, fromFile) {
		t.Fatalf("expected config categories, got %v", categories)
	}
	fromFile[0] = "changed"
	if categories[0] != "Movies" {
		t.Fatalf("expected config slice to be copied")
	}

	if err := cmd.Flags().Set("rounds", "3"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	five := 5
	applyIntConfig(cmd, "rounds", &rounds, &five)
	if rounds != 3 {
		t.Fatalf("expected flag value to win, got %d", rounds)
	}
	applyIntConfig(cmd, "rounds", &rounds, nil)
	if rounds != 3 {
		t.Fatalf("expected nil config to be ignored, got %d", rounds)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if cfg.Play.Rounds != nil || cfg.Log.Level != nil {
		t.Fatalf("expected commented template to leave values unset: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     model.Config
		wantErr bool
	}{
		{name: "ok", cfg: model.Config{Lang: "en", Rounds: 5}},
		{name: "zero rounds", cfg: model.Config{Lang: "en"}, wantErr: true},
		{name: "empty lang", cfg: model.Config{Lang: " ", Rounds: 1}, wantErr: true},
		{name: "blank player", cfg: model.Config{Lang: "en", Rounds: 1, Players: []string{"Ana", ""}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeImportConfig(t *testing.T) {
	cmd := newImportCmd()
	if err := cmd.Flags().Set("category", "Sports"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	base := catalog.ImportConfig{Category: "Movies", MarkdownDir: "md", StartID: 7}
	got := mergeImportConfig(cmd, base, importCfg)
	if got.Category != "Sports" || got.MarkdownDir != "md" || got.StartID != 7 {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestSeedValueIsStable(t *testing.T) {
	if seedValue("party") != seedValue("party") {
		t.Fatalf("expected stable seed")
	}
	if seedValue("party") == seedValue("partz") {
		t.Fatalf("expected different seeds")
	}
}

func TestPreferUnseen(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "perfil.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	var profiles []model.Profile
	for i := 0; i < 4; i++ {
		profiles = append(profiles, model.Profile{
			ID:       fmt.Sprintf("p%d", i),
			Category: "Movies",
			Name:     fmt.Sprintf("Movie %d", i),
			Clues:    []string{"clue"},
		})
	}
	now := time.Now()
	game := model.GameRecord{ID: "g1", StartedAt: now, EndedAt: now, Lang: "en", Categories: []string{"Movies"}, Rounds: 1}
	rounds := []model.RoundRecord{{RoundNumber: 1, ProfileID: "p0", Category: "Movies", Player: "Ana", CluesRead: 1, TotalClues: 1, Points: 1, Guessed: true}}
	if err := st.InsertGame(context.Background(), game, rounds); err != nil {
		t.Fatalf("insert game: %v", err)
	}

	cfg := model.Config{Categories: []string{"Movies"}, Rounds: 3}
	fresh := preferUnseen(context.Background(), st, profiles, cfg)
	if len(fresh) != 3 || fresh[0].ID != "p1" {
		t.Fatalf("expected p0 to be dropped, got %+v", fresh)
	}
	cfg.Rounds = 4
	if all := preferUnseen(context.Background(), st, profiles, cfg); len(all) != 4 {
		t.Fatalf("expected full catalog when unseen profiles are too few, got %d", len(all))
	}
}
