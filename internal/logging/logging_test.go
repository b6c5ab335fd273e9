package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		want slog.Level
	}{
		{"trace", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		require.Equal(t, c.want, parseLevel(c.name), "level %q", c.name)
	}
}

func TestSetupLibraryAcceptsAnyLevelName(t *testing.T) {
	require.NoError(t, SetupLibrary("debug"))
	require.NoError(t, SetupLibrary("bogus"))
}

func TestNewCLILoggerProductionAndDebug(t *testing.T) {
	prod, err := NewCLILogger(false)
	require.NoError(t, err)
	require.NotNil(t, prod)

	dev, err := NewCLILogger(true)
	require.NoError(t, err)
	require.NotNil(t, dev)
}
