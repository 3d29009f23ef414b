package model

import "strings"

// ValidateProfile checks the profile invariants and returns a *ValidationError
// naming the first violated field.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.ID) == "" {
		return validationErrorf("id", "Profile id cannot be empty")
	}
	if strings.TrimSpace(p.Category) == "" {
		return validationErrorf("category", "Profile category cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return validationErrorf("name", "Profile name cannot be empty")
	}
	if len(p.Clues) == 0 {
		return validationErrorf("clues", "Profile must have at least one clue")
	}
	if len(p.Clues) > MaxClues {
		return validationErrorf("clues", "Profile cannot have more than %d clues", MaxClues)
	}
	for i, clue := range p.Clues {
		if strings.TrimSpace(clue) == "" {
			return validationErrorf("clues", "Profile clue %d cannot be empty", i)
		}
	}
	return nil
}

// ValidateProfilesData validates every profile of a catalog file.
func ValidateProfilesData(data ProfilesData) error {
	for i, p := range data.Profiles {
		if err := ValidateProfile(p); err != nil {
			ve := err.(*ValidationError)
			return validationErrorf("profiles", "profiles[%d]: %s", i, ve.Message)
		}
	}
	return nil
}

// GetClue returns the clue at index, or false when index is out of range.
func GetClue(p Profile, index int) (string, bool) {
	if index < 0 || index >= len(p.Clues) {
		return "", false
	}
	return p.Clues[index], true
}

// GetClueCount returns the number of clues of a profile.
func GetClueCount(p Profile) int {
	return len(p.Clues)
}

// FilterProfilesByCategory keeps profiles whose category is in categories,
// preserving input order. Matching is exact and case-sensitive.
func FilterProfilesByCategory(profiles []Profile, categories []string) []Profile {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if _, ok := set[p.Category]; ok {
			out = append(out, p)
		}
	}
	return out
}

// GroupProfilesByCategory groups profile ids by category in first-seen order.
func GroupProfilesByCategory(profiles []Profile) []CategoryGroup {
	index := map[string]int{}
	var groups []CategoryGroup
	for _, p := range profiles {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, CategoryGroup{Category: p.Category})
		}
		groups[i].ProfileIDs = append(groups[i].ProfileIDs, p.ID)
	}
	return groups
}

// GetUniqueCategories returns the distinct categories in first-seen order.
func GetUniqueCategories(profiles []Profile) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range profiles {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// FindProfile returns the profile with the given id.
func FindProfile(profiles []Profile, id string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}
