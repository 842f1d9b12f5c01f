// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/versedeck/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "slides", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "slides=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("rendered", "path", "deck.pptx")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rendered", rec["msg"])
	assert.Equal(t, "deck.pptx", rec["path"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(types.LogConfig{Format: "xml"}, nil)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Enabled(t.Context(), slog.LevelError))
}
