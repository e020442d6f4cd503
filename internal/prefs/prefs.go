// Package prefs persists what the user changes at runtime: the theme and the
// last search term. They live in ~/.config/opsview/prefs.toml, separate from
// the config file, which opsview never writes.
package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/opsview/internal/config"
)

// Prefs holds user preferences for opsview.
type Prefs struct {
	Theme      string `toml:"theme"`
	LastSearch string `toml:"last_search"`
}

const (
	defaultPrefsPath = "~/.config/opsview/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Preferences are never fatal: a missing,
// unreadable or malformed file yields the defaults.
func Load(path string) Prefs {
	var p Prefs
	if resolved, err := resolvePath(path); err == nil {
		if data, err := os.ReadFile(resolved); err == nil {
			if err := toml.Unmarshal(data, &p); err != nil {
				p = Prefs{}
			}
		}
	}
	return p.normalized()
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastSearch = strings.TrimSpace(p.LastSearch)
	return p
}

// Save replaces the preferences file atomically, creating its directory.
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
	if err := atomic.WriteFile(resolved, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
