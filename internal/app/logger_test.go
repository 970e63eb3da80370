package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, logLevel(&Config{LogLevel: in}), "level %q", in)
	}
	require.Equal(t, slog.LevelInfo, logLevel(nil))
}

func TestNewLogger(t *testing.T) {
	require.NotNil(t, NewLogger(&Config{LogFormat: "json", LogLevel: "debug"}))
	require.NotNil(t, NewLogger(&Config{LogFormat: "pretty"}))
	require.NotNil(t, NewLogger(nil))
}
