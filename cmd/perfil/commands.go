package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/perfil/internal/catalog"
	"github.com/verte-zerg/perfil/internal/config"
	"github.com/verte-zerg/perfil/internal/logger"
	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/session"
	"github.com/verte-zerg/perfil/internal/stats"
	"github.com/verte-zerg/perfil/internal/statsui"
	"github.com/verte-zerg/perfil/internal/store"
	"github.com/verte-zerg/perfil/internal/tui"
)

var (
	importConfigPath string
	importCfg        catalog.ImportConfig
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories and profile counts",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesCmd,
	}
	cmd.Flags().StringVar(&playLang, "lang", defaultLang, "catalog language")
	return cmd
}

func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	profiles, err := loadCatalog(catalogDir, playLang)
	if err != nil {
		return err
	}
	for _, group := range model.GroupProfilesByCategory(profiles) {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", group.Category, len(group.ProfileIDs)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate catalog files (default: the whole catalog)",
		RunE:  runValidateCmd,
	}
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join(catalogDir, "*", "*", "*.json"))
		if err != nil {
			return err
		}
		sort.Strings(matches)
		paths = matches
	}
	if len(paths) == 0 {
		return fmt.Errorf("no catalog files found in %s", catalogDir)
	}
	failed := 0
	for _, path := range paths {
		profiles, err := catalog.LoadProfiles(path)
		if err != nil {
			failed++
			logErrf("FAIL %s: %v\n", path, err)
			continue
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d profiles)\n", path, len(profiles)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d catalog files are invalid", failed, len(paths))
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert markdown profile lists into catalog files",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importConfigPath, "config", "", "YAML import config")
	cmd.Flags().StringVar(&importCfg.Category, "category", "", "category name")
	cmd.Flags().StringVar(&importCfg.IDPrefix, "id-prefix", "", "profile id prefix (default: category slug)")
	cmd.Flags().StringVar(&importCfg.MarkdownDir, "markdown-dir", "", "directory with markdown sources")
	cmd.Flags().StringVar(&importCfg.JSONDir, "json-dir", "", "catalog directory to write (default: catalog dir)")
	cmd.Flags().IntVar(&importCfg.StartID, "start-id", 1, "first profile number")
	cmd.Flags().StringSliceVar(&importCfg.Languages, "languages", nil, "languages to import (default: en,es,pt-BR)")
	cmd.Flags().StringVar(&importCfg.Manifest, "manifest", "", "manifest JSON to update with profile counts")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	flush, err := logger.Init(logLevel, "")
	if err != nil {
		return err
	}
	defer flush()

	cfg := importCfg
	if importConfigPath != "" {
		fileCfg, err := catalog.LoadImportConfig(importConfigPath)
		if err != nil {
			return err
		}
		cfg = mergeImportConfig(cmd, fileCfg, importCfg)
	}
	if cfg.JSONDir == "" {
		cfg.JSONDir = catalogDir
	}
	counts, err := catalog.Import(cfg)
	if err != nil {
		return err
	}
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d profiles\n", lang, counts[lang]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// mergeImportConfig overlays flags that were set explicitly on the YAML config.
func mergeImportConfig(cmd *cobra.Command, base, flags catalog.ImportConfig) catalog.ImportConfig {
	changed := cmd.Flags().Changed
	if changed("category") {
		base.Category = flags.Category
	}
	if changed("id-prefix") {
		base.IDPrefix = flags.IDPrefix
	}
	if changed("markdown-dir") {
		base.MarkdownDir = flags.MarkdownDir
	}
	if changed("json-dir") {
		base.JSONDir = flags.JSONDir
	}
	if changed("start-id") {
		base.StartID = flags.StartID
	}
	if changed("languages") {
		base.Languages = flags.Languages
	}
	if changed("manifest") {
		base.Manifest = flags.Manifest
	}
	return base
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsCategory, "category", "", "category filter")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "browse stats interactively")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	envCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Category:    statsCategory,
	}

	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsTUI {
		return runTUI(statsui.NewModel(st, cfg))
	}
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	out := cmd.OutOrStdout()
	return stats.WriteReport(out, report, cfg.CurveWindow, stats.TerminalWidth(out))
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <game-id|latest>",
		Short: "Play a stored game again with the same profiles and clue order",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringSliceVar(&playPlayers, "players", nil, "player names, taking turns")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	envCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flush, err := logger.Init(logLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer flush()

	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	gameID := strings.TrimSpace(args[0])
	if gameID == "latest" {
		gameID, err = st.LatestGameID(ctx)
		if err != nil {
			return err
		}
	}
	original, err := st.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	records, err := st.ListRounds(ctx, gameID)
	if err != nil {
		return err
	}
	shuffles, err := st.LoadShuffleMap(ctx, gameID)
	if err != nil {
		return err
	}
	rounds := make([]model.Round, 0, len(records))
	for _, rec := range records {
		r, err := model.CreateRound(rec.RoundNumber, rec.ProfileID, rec.Category)
		if err != nil {
			return err
		}
		rounds = append(rounds, r)
	}

	profiles, err := loadCatalog(catalogDir, original.Lang)
	if err != nil {
		return err
	}
	id, err := newGameID()
	if err != nil {
		return err
	}
	sess, err := session.Restore(id, profiles, rounds, shuffles, session.Options{
		Categories: original.Categories,
		Rounds:     len(rounds),
		Players:    playPlayers,
		Seed:       original.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}
	zap.L().Info("replaying game", zap.String("game", id), zap.String("original", gameID))

	game := model.GameRecord{
		ID:         id,
		StartedAt:  time.Now(),
		Lang:       original.Lang,
		Categories: original.Categories,
		Seed:       original.Seed,
	}
	return runTUI(tui.NewModel(sess, st, game))
}
