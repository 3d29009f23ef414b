package catalog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/perfil/internal/model"
)

// ImportConfig describes one markdown import run. It can be loaded from YAML.
type ImportConfig struct {
	Category    string   `yaml:"category"`
	IDPrefix    string   `yaml:"id-prefix"`
	MarkdownDir string   `yaml:"markdown-dir"`
	JSONDir     string   `yaml:"json-dir"`
	StartID     int      `yaml:"start-id"`
	Languages   []string `yaml:"languages"`
	Manifest    string   `yaml:"manifest"`
}

// DefaultLanguages are imported when none are configured.
var DefaultLanguages = []string{"en", "es", "pt-BR"}

// LoadImportConfig decodes a YAML import config.
func LoadImportConfig(path string) (ImportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportConfig{}, fmt.Errorf("failed to read import config: %w", err)
	}
	var cfg ImportConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ImportConfig{}, fmt.Errorf("failed to decode import config: %w", err)
	}
	return cfg, nil
}

// Validate fills defaults and checks required fields.
func (c *ImportConfig) Validate() error {
	if strings.TrimSpace(c.Category) == "" {
		return errors.New("import category is required")
	}
	if c.MarkdownDir == "" {
		return errors.New("markdown directory is required")
	}
	if c.JSONDir == "" {
		return errors.New("json directory is required")
	}
	if c.StartID <= 0 {
		c.StartID = 1
	}
	if c.IDPrefix == "" {
		c.IDPrefix = Slug(c.Category)
	}
	if len(c.Languages) == 0 {
		c.Languages = append([]string(nil), DefaultLanguages...)
	}
	return nil
}

// MarkdownFile finds the markdown source for a language, trying
// <category>.md, <category>_<lang>.md and <category>-<lang>.md.
func MarkdownFile(dir, category, lang string) (string, error) {
	base := Slug(category)
	for _, suffix := range []string{"", "_" + lang, "-" + lang} {
		for _, ext := range []string{".md", "_md.md"} {
			path := filepath.Join(dir, base+suffix+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no markdown file found for %s in %s", lang, dir)
}

// Import converts markdown sources to catalog files for every configured
// language and returns the number of profiles added per language. A failing
// language is logged and counted as zero.
func Import(cfg ImportConfig) (map[string]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make(map[string]int, len(cfg.Languages))
	totals := map[string]int{}
	for _, lang := range cfg.Languages {
		added, total, err := importLanguage(cfg, lang)
		if err != nil {
			zap.L().Error("import failed", zap.String("lang", lang), zap.Error(err))
			results[lang] = 0
			continue
		}
		results[lang] = added
		totals[lang] = total
	}
	if cfg.Manifest != "" && len(totals) > 0 {
		if err := UpdateManifest(cfg.Manifest, Slug(cfg.Category), totals); err != nil {
			return results, fmt.Errorf("failed to update manifest: %w", err)
		}
	}
	return results, nil
}

func importLanguage(cfg ImportConfig, lang string) (int, int, error) {
	mdPath, err := MarkdownFile(cfg.MarkdownDir, cfg.Category, lang)
	if err != nil {
		return 0, 0, err
	}
	file, err := os.Open(mdPath)
	if err != nil {
		return 0, 0, err
	}
	entries, err := ParseMarkdown(file)
	if cerr := file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return 0, 0, fmt.Errorf("parse %s: %w", mdPath, err)
	}
	if len(entries) == 0 {
		zap.L().Warn("no profiles found", zap.String("path", mdPath))
		return 0, 0, nil
	}
	profiles := BuildProfiles(entries, ImportOptions{
		Category: cfg.Category,
		IDPrefix: cfg.IDPrefix,
		StartID:  cfg.StartID,
		Language: lang,
	})
	jsonPath := CategoryFile(cfg.JSONDir, cfg.Category, lang)
	total, err := AppendProfiles(jsonPath, profiles)
	if err != nil {
		return 0, 0, err
	}
	zap.L().Info("profiles imported",
		zap.String("lang", lang),
		zap.String("path", jsonPath),
		zap.Int("added", len(profiles)),
	)
	return len(profiles), total, nil
}

// AppendProfiles adds profiles to the catalog file at path, creating it when
// missing, and returns the resulting profile count.
func AppendProfiles(path string, profiles []model.Profile) (int, error) {
	var data model.ProfilesData
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &data); err != nil {
			return 0, fmt.Errorf("decode %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return 0, err
	}
	existing := make(map[string]struct{}, len(data.Profiles))
	for _, p := range data.Profiles {
		existing[p.ID] = struct{}{}
	}
	for _, p := range profiles {
		if _, ok := existing[p.ID]; ok {
			return 0, fmt.Errorf("profile id %q already exists in %s", p.ID, path)
		}
	}
	data.Profiles = append(data.Profiles, profiles...)
	if err := model.ValidateProfilesData(data); err != nil {
		return 0, err
	}
	if err := writeJSON(path, data); err != nil {
		return 0, err
	}
	return len(data.Profiles), nil
}

// UpdateManifest sets locales.<lang>.profileAmount for the category with the
// given slug. Unknown manifest fields are preserved.
func UpdateManifest(path, slug string, counts map[string]int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var manifest map[string]any
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	categories, _ := manifest["categories"].([]any)
	found := false
	for _, item := range categories {
		category, ok := item.(map[string]any)
		if !ok || category["slug"] != slug {
			continue
		}
		found = true
		locales, _ := category["locales"].(map[string]any)
		for lang, count := range counts {
			locale, ok := locales[lang].(map[string]any)
			if !ok {
				continue
			}
			locale["profileAmount"] = count
		}
	}
	if !found {
		return fmt.Errorf("category %q not found in manifest", slug)
	}
	return writeJSON(path, manifest)
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
