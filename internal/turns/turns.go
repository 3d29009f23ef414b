// Package turns drives a Turn through clue reveals, optionally following a
// shuffle permutation.
package turns

import (
	"github.com/verte-zerg/perfil/internal/model"
	"github.com/verte-zerg/perfil/internal/shuffle"
)

// Advance is the result of revealing one more clue.
type Advance struct {
	Turn      model.Turn
	ClueText  string
	ClueIndex int
}

// AdvanceToNextClue reads the next clue of p. With a non-empty indices slice
// the reveal position is mapped through the permutation.
func AdvanceToNextClue(t model.Turn, p model.Profile, indices []int) (Advance, error) {
	next, err := model.AdvanceClue(t, model.GetClueCount(p))
	if err != nil {
		return Advance{}, err
	}
	pos := next.CluesRead
	if len(indices) > 0 {
		clue, _ := shuffle.ShuffledClue(p.Clues, pos, indices)
		idx := -1
		if pos <= len(indices) {
			idx = indices[pos-1]
		}
		return Advance{Turn: next, ClueText: clue, ClueIndex: idx}, nil
	}
	clue, _ := model.GetClue(p, pos-1)
	return Advance{Turn: next, ClueText: clue, ClueIndex: pos - 1}, nil
}

// CurrentClue returns the most recently read clue in sequential order.
func CurrentClue(t model.Turn, p model.Profile) (string, bool) {
	if t.CluesRead <= 0 || t.CluesRead > model.GetClueCount(p) {
		return "", false
	}
	return model.GetClue(p, model.GetCurrentClueIndex(t))
}

// CurrentClueWithShuffle returns the most recently read clue through indices.
func CurrentClueWithShuffle(t model.Turn, p model.Profile, indices []int) (string, bool) {
	if len(indices) == 0 || t.CluesRead <= 0 {
		return "", false
	}
	return shuffle.ShuffledClue(p.Clues, t.CluesRead, indices)
}

// RevealedClues lists every read clue text, most recent first.
func RevealedClues(t model.Turn, p model.Profile, indices []int) []string {
	var out []string
	if len(indices) > 0 {
		for pos := t.CluesRead; pos >= 1; pos-- {
			if clue, ok := shuffle.ShuffledClue(p.Clues, pos, indices); ok {
				out = append(out, clue)
			}
		}
		return out
	}
	for i := model.GetCurrentClueIndex(t); i >= 0; i-- {
		if clue, ok := model.GetClue(p, i); ok {
			out = append(out, clue)
		}
	}
	return out
}

// RevealedClueIndices lists the underlying clue index of every read clue,
// most recent first.
func RevealedClueIndices(t model.Turn, indices []int) []int {
	var out []int
	if len(indices) > 0 {
		for pos := t.CluesRead; pos >= 1; pos-- {
			if pos <= len(indices) {
				out = append(out, indices[pos-1])
			}
		}
		return out
	}
	for i := model.GetCurrentClueIndex(t); i >= 0; i-- {
		out = append(out, i)
	}
	return out
}

// IsFirstClue reports whether exactly one clue was read.
func IsFirstClue(t model.Turn) bool {
	return t.CluesRead == 1
}

// IsLastClue reports whether every clue was read.
func IsLastClue(t model.Turn, totalClues int) bool {
	return t.CluesRead == totalClues
}
