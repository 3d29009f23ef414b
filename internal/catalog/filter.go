package catalog

import (
	"strings"

	"github.com/verte-zerg/perfil/internal/model"
)

// FilterForLang keeps profiles tagged with lang in metadata.language, plus
// profiles that carry no language tag.
func FilterForLang(profiles []model.Profile, lang string) []model.Profile {
	out := make([]model.Profile, 0, len(profiles))
	for _, p := range profiles {
		tag, ok := p.Metadata["language"].(string)
		if !ok || tag == "" || strings.EqualFold(tag, lang) {
			out = append(out, p)
		}
	}
	return out
}

// Slug lower-cases a category name for use in paths and ids.
func Slug(category string) string {
	return strings.ToLower(strings.Join(strings.Fields(category), "-"))
}
