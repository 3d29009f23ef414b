package model

import "strings"

// ValidateRound checks the round invariants.
func ValidateRound(r Round) error {
	if r.RoundNumber < 1 {
		return validationErrorf("roundNumber", "Round number must be at least 1")
	}
	if strings.TrimSpace(r.ProfileID) == "" {
		return validationErrorf("profileId", "Round profile id cannot be empty")
	}
	if strings.TrimSpace(r.Category) == "" {
		return validationErrorf("category", "Round category cannot be empty")
	}
	return nil
}

// CreateRound builds a validated round.
func CreateRound(n int, profileID, category string) (Round, error) {
	r := Round{RoundNumber: n, ProfileID: profileID, Category: category}
	if err := ValidateRound(r); err != nil {
		return Round{}, err
	}
	return r, nil
}
