package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/LavaJover/cruise-commission-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, closer, err := New(config.LogConfig{LogLevel: "warn", LogFormat: "json", LogOutput: path})
	require.NoError(t, err)

	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	log.Warn("ledger sync failed", "sale_id", "s-1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ledger sync failed"`)
	assert.Contains(t, string(data), `"sale_id":"s-1"`)
}
