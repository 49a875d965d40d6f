// Package prefs persists the user's theme choice between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/plus3/dotfield/dotfield"
	"gopkg.in/yaml.v3"
)

// FileName is the prefs file inside the per-user config directory.
const FileName = "prefs.yaml"

// Prefs is the on-disk document. An empty Theme means no saved choice.
type Prefs struct {
	Theme string `yaml:"theme,omitempty"`
}

// Store reads and writes one prefs file.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the store under the user's config directory.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating config dir: %w", err)
	}
	return NewStore(filepath.Join(dir, "dotfield", FileName)), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the prefs file. A missing file yields empty Prefs.
func (s *Store) Load() (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("reading prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p, creating the parent directory if needed.
func (s *Store) Save(p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating prefs dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing prefs: %w", err)
	}
	return nil
}

// SaveTheme records t as the saved choice.
func (s *Store) SaveTheme(t dotfield.Theme) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.Theme = t.String()
	return s.Save(p)
}

// Source says where a resolved theme came from.
type Source string

const (
	FromSaved   Source = "saved"
	FromEnv     Source = "env"
	FromDefault Source = "default"
)

// Resolve picks the theme to start with: the saved choice, then the
// terminal's colour hint, then light. A nil store skips the saved choice;
// getenv is usually os.Getenv. A broken prefs file is reported but still
// resolves.
func Resolve(store *Store, getenv func(string) string) (dotfield.Theme, Source, error) {
	var loadErr error
	if store != nil {
		p, err := store.Load()
		loadErr = err
		if err == nil && p.Theme != "" {
			t, err := dotfield.ParseTheme(p.Theme)
			if err == nil {
				return t, FromSaved, nil
			}
			loadErr = fmt.Errorf("saved theme: %w", err)
		}
	}

	if getenv != nil {
		if t, ok := EnvTheme(getenv("COLORFGBG")); ok {
			return t, FromEnv, loadErr
		}
	}
	return dotfield.Light, FromDefault, loadErr
}

// EnvTheme interprets a COLORFGBG value ("fg;bg" or "fg;default;bg"). The
// background index 0-6 or 8 is a dark palette entry.
func EnvTheme(colorfgbg string) (dotfield.Theme, bool) {
	if colorfgbg == "" {
		return dotfield.Light, false
	}
	fields := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
	if err != nil || bg < 0 {
		return dotfield.Light, false
	}
	if bg <= 6 || bg == 8 {
		return dotfield.Dark, true
	}
	return dotfield.Light, true
}
