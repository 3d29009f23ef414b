// Package catalog loads and validates profile catalog files.
//
// Catalogs live under <dir>/<category>/<lang>/*.json, each file holding a
// {"profiles": [...]} object.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/perfil/internal/model"
)

// LoadProfiles reads and validates one catalog file.
func LoadProfiles(path string) ([]model.Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only catalog.
			_ = cerr
		}
	}()

	var data model.ProfilesData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := model.ValidateProfilesData(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data.Profiles, nil
}

// LoadDir loads every catalog file for lang under dir. Profiles are returned
// in file path order; duplicate ids keep their first occurrence.
func LoadDir(dir, lang string) ([]model.Profile, error) {
	pattern := filepath.Join(dir, "*", lang, "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files match %s", pattern)
	}
	sort.Strings(paths)

	seen := map[string]struct{}{}
	var profiles []model.Profile
	for _, path := range paths {
		loaded, err := LoadProfiles(path)
		if err != nil {
			return nil, err
		}
		for _, p := range FilterForLang(loaded, lang) {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			profiles = append(profiles, p)
		}
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return profiles, nil
}

// CategoryFile returns the catalog file that new profiles are appended to.
func CategoryFile(dir, category, lang string) string {
	return filepath.Join(dir, Slug(category), lang, "data-1.json")
}
