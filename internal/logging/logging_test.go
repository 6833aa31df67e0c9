package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestConfigure_JSONWithExtraFields(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "json",
		ExtraFields:      map[string]string{"service": "zoneinv"},
		Output:           &buf,
	})

	logger.Info("hello", "zone", "qa")
	logger.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "zoneinv", entry["service"])
	assert.Equal(t, "qa", entry["zone"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestConfigure_TextByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Config{Level: "DEBUG", Output: &buf, IncludePID: true})

	logger.Debug("visible")

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "pid=")
}
