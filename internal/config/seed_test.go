package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `users:
  - email: ada@example.com
    full_name: Ada Lovelace
    profile:
      headline: Senior Backend Engineer
      summary: Distributed systems in Go
      skills: [go, postgresql]
      locations: [Remote, London]
      remote_only: true
    search_prefs:
      - name: go-roles
        filters:
          greenhouse_board_token: acme
  - email: bare@example.com
    full_name: No Profile
`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Users, 2)

	ada := seed.Users[0]
	assert.Equal(t, "ada@example.com", ada.Email)
	require.NotNil(t, ada.Profile)
	assert.Equal(t, []string{"go", "postgresql"}, ada.Profile.Skills)
	assert.True(t, ada.Profile.RemoteOnly)
	require.Len(t, ada.SearchPrefs, 1)
	assert.Equal(t, "acme", ada.SearchPrefs[0].Filters["greenhouse_board_token"])

	assert.Nil(t, seed.Users[1].Profile)
	assert.Empty(t, seed.Users[1].SearchPrefs)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [::"), 0o600))

	_, err := LoadSeed(path)
	assert.Error(t, err)
}
