// Package shuffle generates and stores clue reveal permutations.
//
// A permutation maps a 1-based reveal position to the underlying clue index:
// position p shows clues[indices[p-1]].
package shuffle

import "math/rand"

type intner interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n)
}

// GenerateIndices returns a random permutation of [0, length).
func GenerateIndices(length int) []int {
	return fisherYates(length, globalSource{})
}

// GenerateSeededIndices returns a permutation of [0, length) fully determined
// by seed. The generator is not cryptographically secure.
func GenerateSeededIndices(length int, seed string) []int {
	return fisherYates(length, newSeeded(seed))
}

func fisherYates(length int, src intner) []int {
	if length <= 0 {
		return []int{}
	}
	out := make([]int, length)
	for i := range out {
		out[i] = i
	}
	for i := length - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffledClue returns the clue shown at a 1-based reveal position.
func ShuffledClue(clues []string, position int, indices []int) (string, bool) {
	if position <= 0 || position > len(clues) || position > len(indices) {
		return "", false
	}
	idx := indices[position-1]
	if idx < 0 || idx >= len(clues) {
		return "", false
	}
	return clues[idx], true
}

// Identity returns [0, 1, ..., length-1].
func Identity(length int) []int {
	if length <= 0 {
		return []int{}
	}
	out := make([]int, length)
	for i := range out {
		out[i] = i
	}
	return out
}

// Valid reports whether indices is a bijection on [0, length).
func Valid(indices []int, length int) bool {
	if len(indices) != length {
		return false
	}
	seen := make([]bool, length)
	for _, idx := range indices {
		if idx < 0 || idx >= length || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
