// Package model defines shared data structures.
package model

import "time"

// MaxClues is the largest number of clues a profile may carry.
const MaxClues = 20

// Profile is a guessable subject with an ordered list of clues.
type Profile struct {
	ID       string         `json:"id"`
	Category string         `json:"category"`
	Name     string         `json:"name"`
	Clues    []string       `json:"clues"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ProfilesData is the bulk catalog file wrapper.
type ProfilesData struct {
	Profiles []Profile `json:"profiles"`
}

// Round pairs a sequence position with the profile played in it.
type Round struct {
	RoundNumber int    `json:"roundNumber"`
	ProfileID   string `json:"profileId"`
	Category    string `json:"category"`
}

// Turn is the guessing progress for one profile within a round.
type Turn struct {
	ProfileID string `json:"profileId"`
	CluesRead int    `json:"cluesRead"`
	Revealed  bool   `json:"revealed"`
}

// CategoryGroup lists profile ids belonging to one category.
type CategoryGroup struct {
	Category   string
	ProfileIDs []string
}

// Config defines play settings.
type Config struct {
	Lang       string
	Categories []string
	Rounds     int
	Players    []string
	Shuffle    bool
	Seed       string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Category    string
}

// GameRecord captures a finished game session.
type GameRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Lang       string
	Categories []string
	Rounds     int
	Seed       string
}

// RoundRecord stores the outcome of one played round.
type RoundRecord struct {
	RoundNumber int
	ProfileID   string
	Category    string
	Player      string
	CluesRead   int
	TotalClues  int
	Points      int
	Guessed     bool
}

// GameAggregate summarizes a game for reporting.
type GameAggregate struct {
	GameID    string
	EndedAt   time.Time
	Rounds    int
	Guessed   int
	Points    int
	CluesRead int
}

// CategoryAggregate aggregates round outcomes for one category.
type CategoryAggregate struct {
	Category  string
	Rounds    int
	Guessed   int
	Points    int
	CluesRead int
}

// PlayerAggregate aggregates points per player across games.
type PlayerAggregate struct {
	Player  string
	Rounds  int
	Guessed int
	Points  int
}
