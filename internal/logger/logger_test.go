package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/config"
)

func TestNewWithWriter_JSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogLevelInfo)

	l.Info("quote_created", "quote_id", "q-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quote_created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "q-1", entry["quote_id"])
	assert.NotEmpty(t, entry["ts"])
	assert.NotContains(t, entry, "time")
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogLevelError)

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel(config.LogLevelDebug))
	assert.Equal(t, slog.LevelWarn, ParseLevel(config.LogLevelWarning))
	assert.Equal(t, slog.LevelError, ParseLevel(config.LogLevelError))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}

func TestNew(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		l, err := New(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(config.LoggerSettings{
			LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile,
			FilePath: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1,
		})
		require.NoError(t, err)
		assert.NotPanics(t, func() { l.Info("written") })
	})

	t.Run("invalid", func(t *testing.T) {
		l, err := New(config.LoggerSettings{LogLevel: "loud", LogType: config.LogTypeConsole})
		assert.Error(t, err)
		assert.Nil(t, l)
	})
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
