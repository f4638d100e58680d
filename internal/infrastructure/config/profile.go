package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile holds CLI preferences kept between invocations
type Profile struct {
	UserID  string `yaml:"user_id,omitempty" json:"userId,omitempty"`
	LevelID *int   `yaml:"level_id,omitempty" json:"levelId,omitempty"`
}

// ProfileStore reads and writes a Profile as YAML
type ProfileStore struct {
	path string
}

// OpenProfileStore opens ~/.lthgame/profile.yaml
func OpenProfileStore() (*ProfileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return OpenProfileStoreAt(filepath.Join(home, ".lthgame", "profile.yaml"))
}

// OpenProfileStoreAt opens a profile at path, creating its directory
func OpenProfileStoreAt(path string) (*ProfileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &ProfileStore{path: path}, nil
}

func (s *ProfileStore) Path() string {
	return s.path
}

// Load returns the stored profile; a missing file is an empty profile
func (s *ProfileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &Profile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", s.path, err)
	}
	return profile, nil
}

// Update loads the profile, applies fn and writes the result back.
// The file is replaced through a rename so a crash never leaves it half written.
func (s *ProfileStore) Update(fn func(p *Profile)) error {
	profile, err := s.Load()
	if err != nil {
		return err
	}
	fn(profile)

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}
