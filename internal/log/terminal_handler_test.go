package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRecord(t *testing.T, h slog.Handler, r slog.Record) string {
	t.Helper()
	require.NoError(t, h.Handle(context.Background(), r))
	switch th := h.(type) {
	case *TerminalHandler:
		buf, ok := th.out.(*bytes.Buffer)
		require.True(t, ok)
		return buf.String()
	default:
		t.Fatalf("unexpected handler type %T", h)
		return ""
	}
}

func TestTerminalHandlerRendersLine(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 8, 29, 7, 0, 1, 204000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "digest built", 0)
	r.AddAttrs(slog.Int("items", 5))

	out := renderRecord(t, h, r)
	assert.Contains(t, out, "07:00:01.204")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "digest built")
	assert.Contains(t, out, "items=")
	assert.Contains(t, out, "5")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTerminalHandlerLevelLabels(t *testing.T) {
	cases := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			out := renderRecord(t, h, slog.NewRecord(time.Now(), tc.level, "msg", 0))
			assert.Contains(t, out, tc.label)
		})
	}
}

func TestTerminalHandlerErrorValueInRed(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "fetch failed", 0)
	r.AddAttrs(slog.String("error", "connection refused"))

	out := renderRecord(t, h, r)
	assert.Contains(t, out, ansiRed+`"connection refused"`+ansiReset)
}

func TestTerminalHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.String("title", "Senior Go Engineer"), slog.String("token", "acme"))

	out := renderRecord(t, h, r)
	assert.Contains(t, out, `"Senior Go Engineer"`)
	assert.Contains(t, out, "token=")
	assert.NotContains(t, out, `"acme"`, "single tokens stay unquoted")
}

func TestTerminalHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestTerminalHandlerDefaultLevelIsInfo(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestTerminalHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	scoped := h.WithAttrs([]slog.Attr{slog.String("component", "worker")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "task handled", 0)
	r.AddAttrs(slog.String("operation", "noop"))
	require.NoError(t, scoped.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "component=")
	assert.Contains(t, out, "worker")
	assert.Contains(t, out, "operation=")

	// The original handler carries no attrs.
	buf.Reset()
	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "bare", 0)))
	assert.NotContains(t, buf.String(), "component=")
}

func TestTerminalHandlerWithGroupQualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	grouped := h.WithGroup("provider")
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "board fetched", 0)
	r.AddAttrs(slog.String("token", "acme"))
	require.NoError(t, grouped.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "provider.token=")
}

func TestTerminalHandlerEmptyGroupIsNoop(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	assert.Same(t, slog.Handler(h), h.WithGroup(""))
}

func TestTerminalHandlerInlineGroupAttr(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.Group("run",
		slog.Int("inserted", 2),
		slog.Int("touched", 4),
	))
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "run.inserted=")
	assert.Contains(t, out, "run.touched=")
}
