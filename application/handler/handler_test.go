package handler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractString(t *testing.T) {
	payload := map[string]any{"name": "acme", "count": 3}

	s, err := ExtractString(payload, "name")
	require.NoError(t, err)
	assert.Equal(t, "acme", s)

	_, err = ExtractString(payload, "missing")
	assert.Error(t, err)

	_, err = ExtractString(payload, "count")
	assert.Error(t, err)
}

func TestExtractUUID(t *testing.T) {
	id := uuid.New()
	payload := map[string]any{"user_id": id.String(), "bad": "not-a-uuid"}

	got, err := ExtractUUID(payload, "user_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ExtractUUID(payload, "bad")
	assert.Error(t, err)

	_, err = ExtractUUID(payload, "missing")
	assert.Error(t, err)
}

func TestExtractInt64(t *testing.T) {
	payload := map[string]any{
		"as_int":     7,
		"as_int64":   int64(8),
		"as_float64": float64(9),
		"as_string":  "10",
	}

	for key, want := range map[string]int64{"as_int": 7, "as_int64": 8, "as_float64": 9} {
		got, err := ExtractInt64(payload, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ExtractInt64(payload, "as_string")
	assert.Error(t, err)
}
