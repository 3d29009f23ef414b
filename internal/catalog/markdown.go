package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/perfil/internal/model"
)

var titleLine = regexp.MustCompile(`^\d+\.\s+(.+)$`)

// Entry is a profile parsed from markdown, before ids are assigned.
type Entry struct {
	Title string
	Clues []string
}

// ParseMarkdown reads numbered titles such as "1. Title", each followed by
// its "- clue" lines. Entries without clues are dropped.
func ParseMarkdown(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var cur *Entry
	flush := func() {
		if cur == nil {
			return
		}
		if len(cur.Clues) != model.MaxClues {
			zap.L().Warn("unexpected clue count",
				zap.String("title", cur.Title),
				zap.Int("clues", len(cur.Clues)),
				zap.Int("expected", model.MaxClues),
			)
		}
		if len(cur.Clues) > 0 {
			entries = append(entries, *cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if m := titleLine.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Entry{Title: strings.TrimSpace(m[1])}
			continue
		}
		if cur == nil {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			if clue := strings.TrimSpace(line[2:]); clue != "" {
				cur.Clues = append(cur.Clues, clue)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return entries, nil
}

// ImportOptions controls how parsed entries become profiles.
type ImportOptions struct {
	Category string
	IDPrefix string
	StartID  int
	Language string
}

// BuildProfiles assigns ids of the form profile-<prefix>-<NNN> and the
// standard metadata to parsed entries.
func BuildProfiles(entries []Entry, opts ImportOptions) []model.Profile {
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = Slug(opts.Category)
	}
	out := make([]model.Profile, 0, len(entries))
	for i, e := range entries {
		out = append(out, model.Profile{
			ID:       fmt.Sprintf("profile-%s-%03d", prefix, opts.StartID+i),
			Category: opts.Category,
			Name:     e.Title,
			Clues:    append([]string(nil), e.Clues...),
			Metadata: map[string]any{
				"language":   opts.Language,
				"difficulty": "medium",
				"source":     "entertainment",
			},
		})
	}
	return out
}
