package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/WallySa7/the-library-sub001/internal/dates"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/model"
	"github.com/WallySa7/the-library-sub001/internal/paths"
	"github.com/WallySa7/the-library-sub001/internal/template"
)

// SettingsDir is the library-local directory holding settings and the index.
const SettingsDir = ".library"

// settingsFile is the per-library settings file name.
const settingsFile = "settings.yaml"

// KeyMap maps logical field concepts to the literal key strings used in
// metadata blocks. The codec never hard-codes key names; everything goes
// through this mapping.
type KeyMap struct {
	Kind           string `yaml:"kind"`
	Title          string `yaml:"title"`
	Presenter      string `yaml:"presenter"`
	Author         string `yaml:"author"`
	Status         string `yaml:"status"`
	DateAdded      string `yaml:"date_added"`
	StartDate      string `yaml:"start_date"`
	CompletionDate string `yaml:"completion_date"`
	Categories     string `yaml:"categories"`
	Tags           string `yaml:"tags"`
	Duration       string `yaml:"duration"`
	ItemCount      string `yaml:"item_count"`
	Pages          string `yaml:"pages"`
	ExternalID     string `yaml:"external_id"`
	Language       string `yaml:"language"`
}

// KindSettings configures one content kind.
type KindSettings struct {
	// Root is the kind's root folder, relative to the library.
	Root string `yaml:"root"`
	// DefaultParty substitutes a missing presenter/author.
	DefaultParty string `yaml:"default_party"`
	// Statuses are the allowed status options; DefaultStatus applies when
	// a document has none.
	Statuses      []string `yaml:"statuses"`
	DefaultStatus string   `yaml:"default_status"`
	// FolderRules enables template-based folder placement for this kind.
	FolderRules bool `yaml:"folder_rules"`
	// FolderTemplate is the placeholder template, e.g. "{type}/{presenter}".
	FolderTemplate string `yaml:"folder_template"`
}

// Settings is the per-library configuration, stored as YAML inside the
// library's settings directory.
type Settings struct {
	MaxFilenameLength int                      `yaml:"max_filename_length"`
	DefaultCategory   string                   `yaml:"default_category"`
	Keys              KeyMap                   `yaml:"keys"`
	ListKeys          []string                 `yaml:"list_keys"`
	Kinds             map[string]*KindSettings `yaml:"kinds"`
}

// DefaultSettings returns the settings a fresh library starts with.
func DefaultSettings() *Settings {
	return &Settings{
		MaxFilenameLength: paths.DefaultMaxNameLength,
		DefaultCategory:   "general",
		Keys: KeyMap{
			Kind:           "type",
			Title:          "title",
			Presenter:      "presenter",
			Author:         "author",
			Status:         "status",
			DateAdded:      "dateAdded",
			StartDate:      "startDate",
			CompletionDate: "completionDate",
			Categories:     "categories",
			Tags:           "tags",
			Duration:       "duration",
			ItemCount:      "itemCount",
			Pages:          "pages",
			ExternalID:     "videoId",
			Language:       "language",
		},
		ListKeys: []string{"categories", "tags"},
		Kinds: map[string]*KindSettings{
			string(model.KindVideo): {
				Root:           "Videos",
				DefaultParty:   "Unknown",
				Statuses:       []string{"unwatched", "in progress", "watched"},
				DefaultStatus:  "unwatched",
				FolderRules:    true,
				FolderTemplate: "{type}/{presenter}",
			},
			string(model.KindSeries): {
				Root:           "Videos",
				DefaultParty:   "Unknown",
				Statuses:       []string{"unwatched", "in progress", "watched"},
				DefaultStatus:  "unwatched",
				FolderRules:    true,
				FolderTemplate: "{type}/{presenter}",
			},
			string(model.KindBook): {
				Root:           "Books",
				DefaultParty:   "Unknown",
				Statuses:       []string{"unread", "reading", "read"},
				DefaultStatus:  "unread",
				FolderRules:    true,
				FolderTemplate: "{type}/{author}",
			},
		},
	}
}

// LoadSettings reads the library settings, falling back to defaults when
// the file doesn't exist. Absent fields are filled from the defaults so
// older settings files keep working.
func LoadSettings(libraryPath string) (*Settings, error) {
	path := filepath.Join(libraryPath, SettingsDir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if settings.MaxFilenameLength <= 0 {
		settings.MaxFilenameLength = paths.DefaultMaxNameLength
	}
	return settings, nil
}

// Save writes the settings into the library's settings directory.
func (s *Settings) Save(libraryPath string) error {
	dir := filepath.Join(libraryPath, SettingsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, settingsFile), data, 0644)
}

// Kind returns the settings for a kind, or nil when unknown.
func (s *Settings) Kind(kind string) *KindSettings {
	if s.Kinds == nil {
		return nil
	}
	return s.Kinds[kind]
}

// ListKeySet returns the list-typed keys as a set for the codec.
func (s *Settings) ListKeySet() map[string]bool {
	set := make(map[string]bool, len(s.ListKeys))
	for _, key := range s.ListKeys {
		set[key] = true
	}
	return set
}

// ResolverFor builds the folder resolver for a kind.
func (s *Settings) ResolverFor(kind string) *template.Resolver {
	ks := s.Kind(kind)
	if ks == nil {
		return &template.Resolver{Enabled: false}
	}
	return &template.Resolver{
		Root:     ks.Root,
		Template: ks.FolderTemplate,
		Enabled:  ks.FolderRules,
		Defaults: template.Defaults{
			Type:     kind,
			Party:    ks.DefaultParty,
			Category: s.DefaultCategory,
		},
		MaxNameLength: s.MaxFilenameLength,
	}
}

// FolderData projects metadata fields into the template inputs for a kind.
// It is the only place that knows which keys feed folder placement.
func (s *Settings) FolderData(kind string, fields map[string]metadata.Value) template.FolderData {
	data := template.FolderData{Type: kind}

	partyKey := s.Keys.Presenter
	if kind == string(model.KindBook) {
		partyKey = s.Keys.Author
	}
	if v, ok := fields[partyKey]; ok {
		data.Party, _ = v.AsString()
	}

	if v, ok := fields[s.Keys.Categories]; ok {
		if items, isList := v.AsList(); isList && len(items) > 0 {
			data.Category = items[0].Text()
		} else if str, isStr := v.AsString(); isStr {
			data.Category = firstCommaField(str)
		}
	}

	if v, ok := fields[s.Keys.DateAdded]; ok {
		if str, isStr := v.AsString(); isStr {
			if t, parsed := dates.Parse(str); parsed {
				data.Date = t
			}
		}
	}
	if data.Date.IsZero() {
		data.Date = time.Now()
	}
	return data
}

// FolderFeedingKeys returns the keys whose change can relocate a document
// of the given kind.
func (s *Settings) FolderFeedingKeys(kind string) []string {
	partyKey := s.Keys.Presenter
	if kind == string(model.KindBook) {
		partyKey = s.Keys.Author
	}
	return []string{s.Keys.Kind, partyKey, s.Keys.Categories, s.Keys.DateAdded}
}

func firstCommaField(s string) string {
	return strings.TrimSpace(strings.SplitN(s, ",", 2)[0])
}
