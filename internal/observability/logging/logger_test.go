package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"daily-journal/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Level: "info", Output: &buf})

	logger.Debug("hidden")
	logger.Info("entry saved", slog.String("date", "2024-01-01"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "entry saved", rec["msg"])
	assert.Equal(t, "2024-01-01", rec["date"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Level: "debug", Format: "text", Output: &buf})

	logger.Debug("visible")

	assert.Contains(t, buf.String(), "msg=visible")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Options{Output: &buf})

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)

	buf.Reset()
	WithRequestID(context.Background(), base).Info("hello")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestLoggerContext(t *testing.T) {
	logger := NewLogger(Options{})
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
