package logx

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLReturnsNonNilWithoutInit(t *testing.T) {
	mu.Lock()
	logger = nil
	mu.Unlock()

	require.NotNil(t, L())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" warning "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestInitWithComponent(t *testing.T) {
	Init(&Config{Level: "debug", Format: FormatJSON, Component: "test"})
	require.NotNil(t, L())

	// Reset to defaults for other tests
	Init(&Config{Level: "info", Format: FormatText})
}
