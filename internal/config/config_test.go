package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("QUOTE_WINDOW_HOURS", "48")
	t.Setenv("RATE_LIMIT_WINDOW_SEC", "30")
	t.Setenv("APP_ENV", "Production")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 48*time.Hour, cfg.Marketplace.QuoteWindow)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.IsProduction())
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(10<<20), cfg.Marketplace.MaxUploadBytes)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, 10, cfg.RateLimit.AuthMax)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestLoggerSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings LoggerSettings
		wantErr  bool
	}{
		{name: "console", settings: LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole}},
		{name: "bad level", settings: LoggerSettings{LogLevel: "verbose", LogType: LogTypeConsole}, wantErr: true},
		{name: "bad type", settings: LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}, wantErr: true},
		{name: "file without path", settings: LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, MaxSize: 1, MaxBackups: 1, MaxAge: 1}, wantErr: true},
		{name: "file rotation out of range", settings: LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "app.log", MaxSize: 500, MaxBackups: 1, MaxAge: 1}, wantErr: true},
		{name: "file", settings: LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeFile, FilePath: "app.log", MaxSize: 10, MaxBackups: 3, MaxAge: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
