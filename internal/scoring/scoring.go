// Package scoring converts the number of clues read into awarded points.
package scoring

import (
	"fmt"

	"github.com/verte-zerg/perfil/internal/model"
)

// InvalidInputError reports a clue count that cannot be scored.
type InvalidInputError struct {
	CluesRead  int
	TotalClues int
}

func (e *InvalidInputError) Error() string {
	if e.CluesRead <= 0 {
		return fmt.Sprintf("cannot calculate points: no clues have been read (cluesRead=%d)", e.CluesRead)
	}
	return fmt.Sprintf("cannot calculate points: cluesRead (%d) exceeds totalClues (%d)", e.CluesRead, e.TotalClues)
}

// CalculatePoints returns totalClues - (cluesRead - 1).
// A guess after the first clue is worth totalClues, after the last one 1.
func CalculatePoints(cluesRead, totalClues int) (int, error) {
	if cluesRead <= 0 || cluesRead > totalClues {
		return 0, &InvalidInputError{CluesRead: cluesRead, TotalClues: totalClues}
	}
	return totalClues - (cluesRead - 1), nil
}

// DefaultPoints scores against model.MaxClues.
func DefaultPoints(cluesRead int) (int, error) {
	return CalculatePoints(cluesRead, model.MaxClues)
}

// MaximumPoints is the value of a guess after the first clue.
func MaximumPoints(totalClues int) int {
	return totalClues
}

// MinimumPoints is the value of a guess after the last clue.
func MinimumPoints() int {
	return 1
}

// CanAwardPoints reports whether cluesRead is scorable.
func CanAwardPoints(cluesRead, totalClues int) bool {
	return cluesRead >= 1 && cluesRead <= totalClues
}

// IsValidPointValue reports whether points is within [1, totalClues].
func IsValidPointValue(points, totalClues int) bool {
	return points >= MinimumPoints() && points <= totalClues
}
