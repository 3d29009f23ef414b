// Package main provides the CLI entrypoint for perfil.
package main

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/perfil/internal/catalog"
	"github.com/verte-zerg/perfil/internal/config"
	"github.com/verte-zerg/perfil/internal/logger"
	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/selection"
	"github.com/verte-zerg/perfil/internal/session"
	"github.com/verte-zerg/perfil/internal/store"
	"github.com/verte-zerg/perfil/internal/tui"
)

const (
	defaultLang        = "en"
	defaultRounds      = 10
	defaultLogLevel    = "info"
	defaultCurveWindow = 5
	recentGamesWindow  = 3
)

var (
	playLang       string
	playCategories []string
	playRounds     int
	playPlayers    []string
	playShuffle    bool
	playSeed       string
	catalogDir     string
	logLevel       string

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsCategory    string
	statsTUI         bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "perfil",
		Short:         "Guess the profile from its clues",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "profile catalog directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playLang, "lang", defaultLang, "catalog language")
	cmd.Flags().StringSliceVar(&playCategories, "categories", nil, "categories to play (default: all)")
	cmd.Flags().IntVar(&playRounds, "rounds", defaultRounds, "number of rounds")
	cmd.Flags().StringSliceVar(&playPlayers, "players", nil, "player names, taking turns")
	cmd.Flags().BoolVar(&playShuffle, "shuffle", false, "shuffle the clue order of each profile")
	cmd.Flags().StringVar(&playSeed, "seed", "", "seed for a reproducible game")
}

// loadSettings merges the config file and environment into the flag targets.
// Flags set on the command line always win.
func loadSettings(cmd *cobra.Command) (config.EnvConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.EnvConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return config.EnvConfig{}, err
	}
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Play.Lang)
	applyStringSliceConfig(cmd, "categories", &playCategories, fileCfg.Play.Categories)
	applyIntConfig(cmd, "rounds", &playRounds, fileCfg.Play.Rounds)
	applyStringSliceConfig(cmd, "players", &playPlayers, fileCfg.Play.Players)
	applyBoolConfig(cmd, "shuffle", &playShuffle, fileCfg.Play.Shuffle)
	applyStringConfig(cmd, "seed", &playSeed, fileCfg.Play.Seed)
	applyStringConfig(cmd, "catalog-dir", &catalogDir, fileCfg.Play.CatalogDir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyEnvConfig(cmd, "catalog-dir", &catalogDir, envCfg.CatalogDir)
	applyEnvConfig(cmd, "log-level", &logLevel, envCfg.LogLevel)
	if catalogDir == "" {
		catalogDir = config.DefaultCatalogDir()
	}
	return envCfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	envCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Lang:       playLang,
		Categories: playCategories,
		Rounds:     playRounds,
		Players:    playPlayers,
		Shuffle:    playShuffle,
		Seed:       playSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	flush, err := logger.Init(logLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer flush()

	profiles, err := loadCatalog(catalogDir, cfg.Lang)
	if err != nil {
		return err
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = model.GetUniqueCategories(profiles)
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

	sel := selection.New()
	if cfg.Seed != "" {
		sel = selection.NewWithSeed(seedValue(cfg.Seed))
	} else {
		profiles = preferUnseen(context.Background(), st, profiles, cfg)
	}

	id, err := newGameID()
	if err != nil {
		return err
	}
	sess, err := session.New(id, profiles, session.Options{
		Categories: cfg.Categories,
		Rounds:     cfg.Rounds,
		Players:    cfg.Players,
		Shuffle:    cfg.Shuffle,
		Seed:       cfg.Seed,
	}, sel)
	if err != nil {
		return err
	}
	zap.L().Info("game started",
		zap.String("game", id),
		zap.String("lang", cfg.Lang),
		zap.Strings("categories", cfg.Categories),
		zap.Int("rounds", cfg.Rounds),
	)

	game := model.GameRecord{
		ID:         id,
		StartedAt:  time.Now(),
		Lang:       cfg.Lang,
		Categories: cfg.Categories,
		Seed:       cfg.Seed,
	}
	return runTUI(tui.NewModel(sess, st, game))
}

func runTUI(m tea.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadCatalog(dir, lang string) ([]model.Profile, error) {
	profiles, err := catalog.LoadDir(dir, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no %s profiles found in %s\nImport some with: perfil import --category <name> --markdown-dir <dir>", lang, dir)
	}
	return profiles, nil
}

// preferUnseen drops profiles played in recent games when the rest of the
// catalog can still fill the game.
func preferUnseen(ctx context.Context, st *store.Store, profiles []model.Profile, cfg model.Config) []model.Profile {
	recent, err := st.RecentProfileIDs(ctx, recentGamesWindow)
	if err != nil {
		zap.L().Warn("failed to load recent profiles", zap.Error(err))
		return profiles
	}
	if len(recent) == 0 {
		return profiles
	}
	seen := make(map[string]struct{}, len(recent))
	for _, id := range recent {
		seen[id] = struct{}{}
	}
	fresh := make([]model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if _, ok := seen[p.ID]; !ok {
			fresh = append(fresh, p)
		}
	}
	if !selection.HasEnoughProfiles(fresh, cfg.Categories, cfg.Rounds) {
		return profiles
	}
	return fresh
}

func newGameID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}
	return id.String(), nil
}

func seedValue(seed string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum64())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyEnvConfig(cmd *cobra.Command, name string, target *string, value string) {
	if value == "" || cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# perfil configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# lang = %q                 # Catalog language
# categories = ["Movies"]     # Categories to play (default: all)
# rounds = %d                # Number of rounds
# players = ["Ana", "Bo"]     # Players take turns, one round each
# shuffle = false             # Shuffle the clue order of each profile
# seed = ""                   # Seed for a reproducible game
# catalog-dir = %q

[log]
# level = %q              # debug, info, warn, error
`,
		defaultLang,
		defaultRounds,
		config.DefaultCatalogDir(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Rounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if strings.TrimSpace(cfg.Lang) == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	for _, p := range cfg.Players {
		if strings.TrimSpace(p) == "" {
			return errors.New("--players must not contain empty names")
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
