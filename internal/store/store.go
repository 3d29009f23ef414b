// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/shuffle"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			categories TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			seed TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_rounds (
			game_id TEXT NOT NULL,
			round_number INTEGER NOT NULL,
			profile_id TEXT NOT NULL,
			category TEXT NOT NULL,
			player TEXT NOT NULL,
			clues_read INTEGER NOT NULL,
			total_clues INTEGER NOT NULL,
			points INTEGER NOT NULL,
			guessed INTEGER NOT NULL,
			PRIMARY KEY (game_id, round_number)
		);`,
		`CREATE TABLE IF NOT EXISTS clue_shuffles (
			game_id TEXT NOT NULL,
			profile_id TEXT NOT NULL,
			indices TEXT NOT NULL,
			PRIMARY KEY (game_id, profile_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_game_rounds_profile ON game_rounds(profile_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its round outcomes.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord, rounds []model.RoundRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	categories, err := json.Marshal(game.Categories)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, started_at, ended_at, lang, categories, rounds, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		game.StartedAt.Format(time.RFC3339Nano),
		game.EndedAt.Format(time.RFC3339Nano),
		game.Lang,
		string(categories),
		game.Rounds,
		game.Seed,
	); err != nil {
		return err
	}

	if len(rounds) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_rounds (game_id, round_number, profile_id, category, player, clues_read, total_clues, points, guessed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range rounds {
			if _, err = stmt.ExecContext(ctx, game.ID, r.RoundNumber, r.ProfileID, r.Category, r.Player, r.CluesRead, r.TotalClues, r.Points, r.Guessed); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// SaveShuffleMap replaces the stored clue permutations of a game.
func (s *Store) SaveShuffleMap(ctx context.Context, gameID string, m shuffle.Map) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM clue_shuffles WHERE game_id = ?`, gameID); err != nil {
		return err
	}
	for profileID, indices := range shuffle.Serialize(m) {
		data, merr := json.Marshal(indices)
		if merr != nil {
			err = merr
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO clue_shuffles (game_id, profile_id, indices) VALUES (?, ?, ?)`,
			gameID, profileID, string(data)); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

// LoadShuffleMap returns the stored clue permutations of a game. Rows whose
// indices are not an integer array are skipped.
func (s *Store) LoadShuffleMap(ctx context.Context, gameID string) (shuffle.Map, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT profile_id, indices FROM clue_shuffles WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	raw := map[string]any{}
	for rows.Next() {
		var profileID, indices string
		if err := rows.Scan(&profileID, &indices); err != nil {
			return nil, err
		}
		var value any
		if err := json.Unmarshal([]byte(indices), &value); err != nil {
			continue
		}
		raw[profileID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shuffle.Deserialize(raw), nil
}

// GetGame returns one stored game.
func (s *Store) GetGame(ctx context.Context, gameID string) (model.GameRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, ended_at, lang, categories, rounds, seed FROM games WHERE id = ?`, gameID)
	game, err := scanGame(row)
	if err == sql.ErrNoRows {
		return model.GameRecord{}, fmt.Errorf("game %q not found", gameID)
	}
	return game, err
}

// LatestGameID returns the id of the most recently finished game.
func (s *Store) LatestGameID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM games ORDER BY ended_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no games recorded yet")
	}
	return id, err
}

// ListRounds returns the recorded rounds of one game in play order.
func (s *Store) ListRounds(ctx context.Context, gameID string) ([]model.RoundRecord, error) {
	byGame, err := s.ListRoundsForGames(ctx, []string{gameID})
	if err != nil {
		return nil, err
	}
	return byGame[gameID], nil
}

// ListGames returns game aggregates filtered by stats config, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "g.ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	if cfg.Category != "" {
		clauses = append(clauses, "r.category = ?")
		args = append(args, cfg.Category)
	}
	query := fmt.Sprintf(`SELECT g.id, g.ended_at, COUNT(r.round_number),
		COALESCE(SUM(r.guessed), 0), COALESCE(SUM(r.points), 0), COALESCE(SUM(r.clues_read), 0)
		FROM games g
		JOIN game_rounds r ON r.game_id = g.id
		WHERE %s
		GROUP BY g.id, g.ended_at
		ORDER BY g.ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Rounds, &agg.Guessed, &agg.Points, &agg.CluesRead); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// ListRoundsForGames returns round records grouped by game id.
func (s *Store) ListRoundsForGames(ctx context.Context, gameIDs []string) (map[string][]model.RoundRecord, error) {
	result := map[string][]model.RoundRecord{}
	if len(gameIDs) == 0 {
		return result, nil
	}
	placeholders := make([]string, len(gameIDs))
	args := make([]any, len(gameIDs))
	for i, id := range gameIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT game_id, round_number, profile_id, category, player, clues_read, total_clues, points, guessed
		FROM game_rounds
		WHERE game_id IN (%s)
		ORDER BY game_id, round_number`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var gameID string
		var r model.RoundRecord
		if err := rows.Scan(&gameID, &r.RoundNumber, &r.ProfileID, &r.Category, &r.Player, &r.CluesRead, &r.TotalClues, &r.Points, &r.Guessed); err != nil {
			return nil, err
		}
		result[gameID] = append(result[gameID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RecentProfileIDs returns the distinct profiles played in the last games,
// most recent first.
func (s *Store) RecentProfileIDs(ctx context.Context, games int) ([]string, error) {
	if games <= 0 {
		return nil, nil
	}
	query := `WITH recent_games AS (
		SELECT id, ended_at FROM games
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT r.profile_id, MAX(g.ended_at) AS last_played
	FROM game_rounds r
	JOIN recent_games g ON g.id = r.game_id
	GROUP BY r.profile_id
	ORDER BY last_played DESC, r.profile_id`
	rows, err := s.db.QueryContext(ctx, query, games)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var ids []string
	for rows.Next() {
		var id, lastPlayed string
		if err := rows.Scan(&id, &lastPlayed); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (model.GameRecord, error) {
	var game model.GameRecord
	var startedAt, endedAt, categories string
	if err := row.Scan(&game.ID, &startedAt, &endedAt, &game.Lang, &categories, &game.Rounds, &game.Seed); err != nil {
		return model.GameRecord{}, err
	}
	var err error
	if game.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.GameRecord{}, err
	}
	if game.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.GameRecord{}, err
	}
	if err := json.Unmarshal([]byte(categories), &game.Categories); err != nil {
		return model.GameRecord{}, err
	}
	return game, nil
}
