// Package settings persists per-user preferences: recently used project
// files and the unit used to display times.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultMaxRecentFiles bounds the recently used list when unset.
const DefaultMaxRecentFiles = 10

// Settings is the on-disk preferences document.
type Settings struct {
	TimeUnits      TimeUnit `yaml:"time_units" toml:"time_units"`
	MaxRecentFiles int      `yaml:"max_recent_files" toml:"max_recent_files"`
	RecentFiles    []string `yaml:"recent_files" toml:"recent_files"`
}

func Default() *Settings {
	return &Settings{TimeUnits: Minutes, MaxRecentFiles: DefaultMaxRecentFiles}
}

// Load reads settings from path. A missing file yields defaults. Files ending
// in .toml are TOML; anything else is YAML.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, s)
	} else {
		err = yaml.Unmarshal(data, s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes settings to path, creating its directory.
func Save(path string, s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings are nil")
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Touch moves path to the front of the recently used list.
func (s *Settings) Touch(path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.RecentFiles = slices.DeleteFunc(s.RecentFiles, func(p string) bool { return p == path })
	s.RecentFiles = append([]string{path}, s.RecentFiles...)
	s.normalize()
}

// MostRecent returns the last used project file, or "".
func (s *Settings) MostRecent() string {
	if len(s.RecentFiles) == 0 {
		return ""
	}
	return s.RecentFiles[0]
}

// Clone returns a copy safe to hand to a background writer.
func (s *Settings) Clone() *Settings {
	c := *s
	c.RecentFiles = slices.Clone(s.RecentFiles)
	return &c
}

func (s *Settings) normalize() {
	if s.MaxRecentFiles <= 0 {
		s.MaxRecentFiles = DefaultMaxRecentFiles
	}
	if !s.TimeUnits.Valid() {
		s.TimeUnits = Minutes
	}
	s.RecentFiles = slices.DeleteFunc(s.RecentFiles, func(p string) bool { return strings.TrimSpace(p) == "" })
	if len(s.RecentFiles) > s.MaxRecentFiles {
		s.RecentFiles = s.RecentFiles[:s.MaxRecentFiles]
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
