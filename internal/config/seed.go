package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed describes the users, profiles, and search preferences loaded
// into an empty database at startup. The service is headless, so the
// seed file is how accounts enter the system.
type Seed struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUser is one account in the seed file.
type SeedUser struct {
	Email       string           `yaml:"email"`
	FullName    string           `yaml:"full_name"`
	Profile     *SeedProfile     `yaml:"profile"`
	SearchPrefs []SeedSearchPref `yaml:"search_prefs"`
}

// SeedProfile is the profile block of a seed user.
type SeedProfile struct {
	Headline   string   `yaml:"headline"`
	Summary    string   `yaml:"summary"`
	Skills     []string `yaml:"skills"`
	Locations  []string `yaml:"locations"`
	RemoteOnly bool     `yaml:"remote_only"`
}

// SeedSearchPref is one saved search in the seed file.
type SeedSearchPref struct {
	Name    string            `yaml:"name"`
	Filters map[string]string `yaml:"filters"`
}

// LoadSeed reads and parses a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}
