package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Prefs holds user preferences persisted between sessions
type Prefs struct {
	ColorScheme string `yaml:"color_scheme"`

	path string
}

// DefaultPrefsPath returns $HOME/.config/gitstory/prefs.yaml
func DefaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitstory", "prefs.yaml")
}

// LoadPrefs reads preferences from path. A missing file yields empty prefs.
func LoadPrefs(path string) (*Prefs, error) {
	p := &Prefs{path: path}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read prefs: %w", err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return p, fmt.Errorf("parse prefs: %w", err)
	}
	return p, nil
}

// Save writes preferences back to the file they were loaded from
func (p *Prefs) Save() error {
	if p.path == "" {
		return nil
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Apply overrides config values that have a stored preference
func (p *Prefs) Apply(cfg *Config) {
	if p.ColorScheme == "dark" || p.ColorScheme == "light" {
		cfg.Theme = p.ColorScheme
	}
}
