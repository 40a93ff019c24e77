// Package prefs persists LeadFlow dashboard preferences in
// ~/.config/leadflow/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/leadflow/internal/config"
)

// Prefs holds user preferences for the dashboard.
type Prefs struct {
	Theme    string `toml:"theme"`
	SortKey  string `toml:"sort_key"`
	SortDesc bool   `toml:"sort_desc"`
}

const (
	defaultPrefsPath = "~/.config/leadflow/prefs.toml"
	defaultTheme     = "Dracula"
	defaultSortKey   = "name"
)

var validSortKeys = map[string]struct{}{"name": {}, "website": {}, "email": {}}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, SortKey: defaultSortKey}
}

// Load reads preferences from path. Preferences are cosmetic, so any problem
// reading them degrades to defaults instead of failing startup.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.SortKey = strings.ToLower(strings.TrimSpace(p.SortKey))
	if _, ok := validSortKeys[p.SortKey]; !ok {
		p.SortKey = defaultSortKey
		p.SortDesc = false
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
