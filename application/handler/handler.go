// Package handler provides task handlers for processing queued operations.
package handler

import (
	"fmt"

	"github.com/google/uuid"
)

// ExtractString extracts a string value from the payload.
func ExtractString(payload map[string]any, key string) (string, error) {
	val, ok := payload[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %s: expected string, got %T", key, val)
	}

	return s, nil
}

// ExtractUUID extracts a UUID value carried as a string in the payload.
func ExtractUUID(payload map[string]any, key string) (uuid.UUID, error) {
	s, err := ExtractString(payload, key)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid for %s: %w", key, err)
	}
	return id, nil
}

// ExtractInt64 extracts an int64 value from the payload. JSON decoding
// hands numbers back as float64, so that shape is accepted too.
func ExtractInt64(payload map[string]any, key string) (int64, error) {
	val, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("invalid type for %s: %T", key, val)
	}
}
