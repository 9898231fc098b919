// Package settings persists the user-tunable settings blob. The file is
// plain TOML with no versioning; keys missing from disk keep their defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings is the process-wide settings blob. It survives restarts and is
// shared by the speech adapters and the settings panel, which receive the
// same *Store rather than reading an ambient global.
type Settings struct {
	RecognitionLanguage string `toml:"recognition_language"`
	SelectedVoiceURI    string `toml:"selected_voice_uri"`
	TTSEnabled          bool   `toml:"tts_enabled"`
	FirstRunComplete    bool   `toml:"first_run_complete"`
}

func Defaults() Settings {
	return Settings{
		RecognitionLanguage: "hi-IN",
		SelectedVoiceURI:    "",
		TTSEnabled:          true,
		FirstRunComplete:    false,
	}
}

// Store loads and saves the settings file.
type Store struct {
	path    string
	current Settings
}

// DefaultPath is ~/.config/lia/settings.toml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", "lia", "settings.toml")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "lia", "settings.toml")
}

// Open reads the settings file at path, falling back to defaults when the
// file is missing or unreadable. A corrupt file never blocks startup.
func Open(path string) *Store {
	s := &Store{path: path, current: Defaults()}
	if _, err := toml.DecodeFile(path, &s.current); err != nil && !os.IsNotExist(err) {
		s.current = Defaults()
	}
	return s
}

func (s *Store) Get() Settings {
	return s.current
}

// Update applies fn to the current settings and writes the result to disk.
func (s *Store) Update(fn func(*Settings)) error {
	next := s.current
	fn(&next)
	s.current = next
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s.current); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
