package model

import "strings"

// ValidateTurn checks the turn invariants.
func ValidateTurn(t Turn) error {
	if strings.TrimSpace(t.ProfileID) == "" {
		return validationErrorf("profileId", "Turn profile id cannot be empty")
	}
	if t.CluesRead < 0 || t.CluesRead > MaxClues {
		return validationErrorf("cluesRead", "Turn clues read must be between 0 and %d, got %d", MaxClues, t.CluesRead)
	}
	return nil
}

// CreateTurn starts a turn with no clues read.
func CreateTurn(profileID string) Turn {
	return Turn{ProfileID: profileID}
}

// clueCap bounds totalClues to [1, MaxClues]; anything outside falls back to MaxClues.
func clueCap(totalClues int) int {
	if totalClues <= 0 || totalClues > MaxClues {
		return MaxClues
	}
	return totalClues
}

// AdvanceClue returns a copy of t with one more clue read.
func AdvanceClue(t Turn, totalClues int) (Turn, error) {
	limit := clueCap(totalClues)
	if t.CluesRead >= limit {
		return t, &MaxCluesReachedError{ProfileID: t.ProfileID, CluesRead: t.CluesRead, Max: limit}
	}
	t.CluesRead++
	return t, nil
}

// RevealTurn returns a copy of t marked as revealed.
func RevealTurn(t Turn) Turn {
	t.Revealed = true
	return t
}

// CanAdvanceClue reports whether another clue can be read.
func CanAdvanceClue(t Turn, totalClues int) bool {
	return t.CluesRead < clueCap(totalClues)
}

// HasReadClues reports whether at least one clue was read.
func HasReadClues(t Turn) bool {
	return t.CluesRead > 0
}

// HasReadAllClues reports whether the clue cap was reached.
func HasReadAllClues(t Turn, totalClues int) bool {
	return t.CluesRead >= clueCap(totalClues)
}

// GetCurrentClueIndex returns the index of the last read clue, or -1.
func GetCurrentClueIndex(t Turn) int {
	if t.CluesRead <= 0 {
		return -1
	}
	return t.CluesRead - 1
}
