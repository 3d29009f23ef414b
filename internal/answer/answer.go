// Package answer compares free-text guesses against profile names.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var leadingArticles = []string{"the ", "a ", "an ", "el ", "la ", "los ", "las ", "o ", "os ", "as "}

// Normalize folds case and diacritics, drops punctuation and collapses spaces.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches reports whether guess names the same subject as name. A leading
// article on either side is ignored.
func Matches(guess, name string) bool {
	g := stripArticle(Normalize(guess))
	n := stripArticle(Normalize(name))
	return g != "" && g == n
}

func stripArticle(s string) string {
	for _, article := range leadingArticles {
		if strings.HasPrefix(s, article) && len(s) > len(article) {
			return s[len(article):]
		}
	}
	return s
}
