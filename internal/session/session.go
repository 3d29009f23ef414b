// Package session runs a game: it schedules rounds, keeps the current turn,
// applies guesses and tracks player scores.
package session

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/verte-zerg/perfil/internal/answer"
	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/scoring"
	"github.com/verte-zerg/perfil/internal/selection"
	"github.com/verte-zerg/perfil/internal/shuffle"
	"github.com/verte-zerg/perfil/internal/turns"
)

// DefaultPlayer is used when no players are configured.
const DefaultPlayer = "Player"

var (
	// ErrRoundOver is returned for actions on a round that has been revealed.
	ErrRoundOver = errors.New("round is over")
	// ErrRoundInProgress is returned when moving on before the round ends.
	ErrRoundInProgress = errors.New("round is still in progress")
	// ErrFinished is returned once every round has been played.
	ErrFinished = errors.New("game is finished")
)

// Options configures a new session.
type Options struct {
	Categories []string
	Rounds     int
	Players    []string
	Shuffle    bool
	Seed       string
}

// Outcome describes how a round ended.
type Outcome int

const (
	// Pending means the round is still being played.
	Pending Outcome = iota
	Guessed
	Missed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Guessed:
		return "guessed"
	case Missed:
		return "missed"
	case Skipped:
		return "skipped"
	default:
		return "pending"
	}
}

// RoundState is a snapshot of the round being played.
type RoundState struct {
	Round   model.Round
	Profile model.Profile
	Turn    model.Turn
	Player  string
	Outcome Outcome
	Points  int
	Total   int
}

// GuessResult reports the effect of one guess.
type GuessResult struct {
	Correct   bool
	Points    int
	RoundOver bool
	NewClue   string
}

// PlayerScore is a player's running total.
type PlayerScore struct {
	Player string
	Points int
}

// Session holds the state of one game.
type Session struct {
	id       string
	opts     Options
	players  []string
	profiles map[string]model.Profile
	rounds   []model.Round
	shuffles shuffle.Map
	results  []model.RoundRecord
	scores   map[string]int

	current  int
	turn     model.Turn
	outcome  Outcome
	points   int
	finished bool
}

// New selects profiles from catalog and starts the first round.
func New(id string, catalog []model.Profile, opts Options, sel *selection.Selector) (*Session, error) {
	ids, err := sel.SelectProfilesForGame(catalog, opts.Categories, opts.Rounds)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("session needs at least one round")
	}
	rounds := make([]model.Round, 0, len(ids))
	for i, pid := range ids {
		p, _ := model.FindProfile(catalog, pid)
		r, err := model.CreateRound(i+1, p.ID, p.Category)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}
	shuffles := shuffle.Map{}
	if opts.Shuffle {
		for _, r := range rounds {
			p, _ := model.FindProfile(catalog, r.ProfileID)
			if opts.Seed != "" {
				shuffles[p.ID] = shuffle.GenerateSeededIndices(len(p.Clues), opts.Seed+":"+p.ID)
			} else {
				shuffles[p.ID] = shuffle.GenerateIndices(len(p.Clues))
			}
		}
	}
	return Restore(id, catalog, rounds, shuffles, opts)
}

// Restore rebuilds a session from a known round schedule and shuffle map.
// Profiles without a recorded permutation are revealed in catalog order.
func Restore(id string, catalog []model.Profile, rounds []model.Round, shuffles shuffle.Map, opts Options) (*Session, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("session needs at least one round")
	}
	profiles := make(map[string]model.Profile, len(rounds))
	for _, r := range rounds {
		if err := model.ValidateRound(r); err != nil {
			return nil, err
		}
		p, ok := model.FindProfile(catalog, r.ProfileID)
		if !ok {
			return nil, fmt.Errorf("profile %q not found in catalog", r.ProfileID)
		}
		if err := model.ValidateProfile(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.ID, err)
		}
		if indices, ok := shuffles[p.ID]; ok && !shuffle.Valid(indices, len(p.Clues)) {
			return nil, fmt.Errorf("invalid clue permutation for profile %q", p.ID)
		}
		profiles[p.ID] = p
	}
	players := opts.Players
	if len(players) == 0 {
		players = []string{DefaultPlayer}
	}
	if shuffles == nil {
		shuffles = shuffle.Map{}
	}
	s := &Session{
		id:       id,
		opts:     opts,
		players:  players,
		profiles: profiles,
		rounds:   rounds,
		shuffles: shuffles,
		scores:   map[string]int{},
	}
	for _, p := range players {
		s.scores[p] = 0
	}
	if err := s.startRound(0); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Rounds returns the scheduled rounds.
func (s *Session) Rounds() []model.Round {
	return append([]model.Round(nil), s.rounds...)
}

// Current returns a snapshot of the round being played.
func (s *Session) Current() RoundState {
	r := s.rounds[s.current]
	p := s.profiles[r.ProfileID]
	return RoundState{
		Round:   r,
		Profile: p,
		Turn:    s.turn,
		Player:  s.activePlayer(),
		Outcome: s.outcome,
		Points:  s.points,
		Total:   len(s.rounds),
	}
}

// CurrentProfile returns the profile being guessed.
func (s *Session) CurrentProfile() model.Profile {
	return s.currentProfile()
}

// RevealedClues returns the clues read this round, most recent first.
func (s *Session) RevealedClues() []string {
	p := s.currentProfile()
	return turns.RevealedClues(s.turn, p, s.indices(p))
}

// NextClue reveals another clue of the current profile.
func (s *Session) NextClue() (turns.Advance, error) {
	if s.finished {
		return turns.Advance{}, ErrFinished
	}
	if s.outcome != Pending {
		return turns.Advance{}, ErrRoundOver
	}
	p := s.currentProfile()
	adv, err := turns.AdvanceToNextClue(s.turn, p, s.indices(p))
	if err != nil {
		return turns.Advance{}, err
	}
	s.turn = adv.Turn
	return adv, nil
}

// Guess checks text against the current profile. A correct guess scores for
// the active player; a wrong one reveals the next clue, or ends the round once
// every clue has been read.
func (s *Session) Guess(text string) (GuessResult, error) {
	if s.finished {
		return GuessResult{}, ErrFinished
	}
	if s.outcome != Pending {
		return GuessResult{}, ErrRoundOver
	}
	p := s.currentProfile()
	total := model.GetClueCount(p)
	if answer.Matches(text, p.Name) {
		points, err := scoring.CalculatePoints(s.turn.CluesRead, total)
		if err != nil {
			return GuessResult{}, err
		}
		s.scores[s.activePlayer()] += points
		s.finishRound(Guessed, points)
		return GuessResult{Correct: true, Points: points, RoundOver: true}, nil
	}
	if !model.CanAdvanceClue(s.turn, total) {
		s.finishRound(Missed, 0)
		return GuessResult{RoundOver: true}, nil
	}
	adv, err := s.NextClue()
	if err != nil {
		return GuessResult{}, err
	}
	return GuessResult{NewClue: adv.ClueText}, nil
}

// Skip reveals the answer without awarding points.
func (s *Session) Skip() error {
	if s.finished {
		return ErrFinished
	}
	if s.outcome != Pending {
		return ErrRoundOver
	}
	s.finishRound(Skipped, 0)
	return nil
}

// NextRound moves to the following round. After the last round the session
// becomes finished.
func (s *Session) NextRound() error {
	if s.finished {
		return ErrFinished
	}
	if s.outcome == Pending {
		return ErrRoundInProgress
	}
	if s.current+1 >= len(s.rounds) {
		s.finished = true
		return nil
	}
	return s.startRound(s.current + 1)
}

// Finished reports whether every round has been played.
func (s *Session) Finished() bool {
	return s.finished
}

// Scores returns player totals, highest first.
func (s *Session) Scores() []PlayerScore {
	out := make([]PlayerScore, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, PlayerScore{Player: p, Points: s.scores[p]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

// Results returns the records of completed rounds.
func (s *Session) Results() []model.RoundRecord {
	return append([]model.RoundRecord(nil), s.results...)
}

// ShuffleMap returns a copy of the clue permutations used by this session.
func (s *Session) ShuffleMap() shuffle.Map {
	return shuffle.Map(shuffle.Serialize(s.shuffles))
}

func (s *Session) startRound(i int) error {
	s.current = i
	s.outcome = Pending
	s.points = 0
	r := s.rounds[i]
	p := s.profiles[r.ProfileID]
	adv, err := turns.AdvanceToNextClue(model.CreateTurn(p.ID), p, s.indices(p))
	if err != nil {
		return err
	}
	s.turn = adv.Turn
	zap.L().Debug("round started",
		zap.String("game", s.id),
		zap.Int("round", r.RoundNumber),
		zap.String("profile", p.ID),
		zap.Int("firstClue", adv.ClueIndex),
	)
	return nil
}

func (s *Session) finishRound(outcome Outcome, points int) {
	s.turn = model.RevealTurn(s.turn)
	s.outcome = outcome
	s.points = points
	r := s.rounds[s.current]
	p := s.profiles[r.ProfileID]
	s.results = append(s.results, model.RoundRecord{
		RoundNumber: r.RoundNumber,
		ProfileID:   p.ID,
		Category:    r.Category,
		Player:      s.activePlayer(),
		CluesRead:   s.turn.CluesRead,
		TotalClues:  len(p.Clues),
		Points:      points,
		Guessed:     outcome == Guessed,
	})
	zap.L().Debug("round finished",
		zap.String("game", s.id),
		zap.Int("round", r.RoundNumber),
		zap.Stringer("outcome", outcome),
		zap.Int("points", points),
	)
}

func (s *Session) currentProfile() model.Profile {
	return s.profiles[s.rounds[s.current].ProfileID]
}

func (s *Session) indices(p model.Profile) []int {
	return shuffle.GetOrCreate(p.ID, len(p.Clues), s.shuffles)
}

func (s *Session) activePlayer() string {
	return s.players[s.current%len(s.players)]
}
