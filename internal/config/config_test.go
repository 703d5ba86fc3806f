package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Given: no config file
	path := filepath.Join(t.TempDir(), "missing.yml")

	// When: loading the config
	conf, err := Load(path)

	// Then: defaults are applied
	require.NoError(t, err)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, "tictactoe.log", conf.LogFile)
	assert.Equal(t, ExporterNone, conf.Telemetry.Exporter)
	assert.Equal(t, "tic-tac-toe", conf.Telemetry.ServiceName)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
log-file: game.log
telemetry:
  exporter: otlp
  endpoint: collector:4317
`)

	conf, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "game.log", conf.LogFile)
	assert.Equal(t, ExporterOTLP, conf.Telemetry.Exporter)
	assert.Equal(t, "collector:4317", conf.Telemetry.Endpoint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log-level: debug\n")
	t.Setenv("LOG_LEVEL", "warn")

	conf, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "warn", conf.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
log-level: loud
telemetry:
  exporter: kafka
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "LogLevel")
	assert.Contains(t, err.Error(), "Exporter")
}

func TestMustLoad_Panics(t *testing.T) {
	path := writeConfig(t, "log-level: loud\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}
