package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strandvm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigEmptyPathIsZeroValue(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigDecodesFields(t *testing.T) {
	path := writeConfig(t, `
max_steps = 1000
trace = true
timeout = "5s"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{MaxSteps: 1000, Trace: true, Timeout: "5s"}, cfg)
}

func TestLoadConfigPartialFieldsLeaveZeroValues(t *testing.T) {
	path := writeConfig(t, `trace = true`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{Trace: true}, cfg)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedTOMLErrors(t *testing.T) {
	path := writeConfig(t, "max_steps = not-a-number")

	_, err := loadConfig(path)
	assert.Error(t, err)
}
