package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vantahq/jobscout/internal/config"
)

func TestNewLoggerFormats(t *testing.T) {
	pretty := NewLogger(config.NewAppConfigWithOptions(
		config.WithLogLevel("INFO"),
		config.WithLogFormat(config.LogFormatPretty),
	))
	require.NotNil(t, pretty.Slog())
	_, isTerminal := pretty.Handler().(*TerminalHandler)
	assert.True(t, isTerminal, "pretty format should use the terminal handler")

	jsonLogger := NewLogger(config.NewAppConfigWithOptions(
		config.WithLogLevel("DEBUG"),
		config.WithLogFormat(config.LogFormatJSON),
	))
	require.NotNil(t, jsonLogger.Slog())
	_, isTerminal = jsonLogger.Handler().(*TerminalHandler)
	assert.False(t, isTerminal, "json format should not use the terminal handler")
}

func TestJSONOutputIsParseable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG").Slog()

	logger.Debug("queue polled")
	logger.Info("posting upserted", "source_id", "101")
	logger.Warn("provider failed")
	logger.Error("digest failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record), "line: %s", line)
	}
}

func TestWithCarriesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("component", "scheduler").Slog().Info("tick")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "scheduler", record["component"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN").Slog()

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2, "only warn and error pass at WARN level")
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"WARN", "WARN"},
		{"WARNING", "WARN"},
		{"error", "ERROR"},
		{"nonsense", "INFO"},
		{"", "INFO"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.input).String(), "input %q", tc.input)
	}
}
