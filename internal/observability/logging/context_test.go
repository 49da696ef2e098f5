package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndExtractRequestID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "uuid is kept",
			input:    "0190a5f2-7c1e-7a3b-9c2d-1e2f3a4b5c6d",
			expected: "0190a5f2-7c1e-7a3b-9c2d-1e2f3a4b5c6d",
		},
		{
			name:     "opaque token is kept",
			input:    "lb.trace_01",
			expected: "lb.trace_01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateAndExtractRequestID(tt.input))
		})
	}
}

func TestValidateAndExtractRequestIDGenerates(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "newline injection", input: "abc\ninjected=1"},
		{name: "too long", input: string(bytes.Repeat([]byte("a"), 129))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ValidateAndExtractRequestID(tt.input)

			parsed, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ModuleFrom(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithModule(ctx, ModuleReminder)

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, ModuleReminder, ModuleFrom(ctx))
	assert.Equal(t, ModuleReminder, ModuleFrom(withDefaultModule(ctx, ModuleStore)))
	assert.Equal(t, ModuleStore, ModuleFrom(withDefaultModule(context.Background(), ModuleStore)))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	return line
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Level:         slog.LevelInfo,
		Service:       ServiceInfo{Name: "reminder-dispatch", Version: "1.2.3"},
		Environment:   EnvDev,
		DefaultModule: ModuleSweep,
	}))

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "hello", slog.String("event", "test"))

	line := decodeLine(t, &buf)
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "sweep", line["module"])
	assert.Equal(t, "dev", line["env"])

	service, ok := line["service"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "reminder-dispatch", service["name"])

	buf.Reset()
	logger.DebugContext(ctx, "hidden")
	assert.Zero(t, buf.Len())

	buf.Reset()
	logger.With(slog.String("component", "x")).InfoContext(WithModule(ctx, ModuleNotify), "scoped")

	line = decodeLine(t, &buf)
	assert.Equal(t, "notify", line["module"])
	assert.Equal(t, "x", line["component"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "WARN", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "info", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewCronLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Info("wake", "now", "12:00")

	line := decodeLine(t, &buf)
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "scheduler", line["module"])
	assert.Equal(t, "12:00", line["now"])

	buf.Reset()
	logger.Error(errors.New("boom"), "panic", "stack", "trace")

	line = decodeLine(t, &buf)
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "trace", line["stack"])
}
