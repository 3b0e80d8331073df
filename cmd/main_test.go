package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestResolveAccount(t *testing.T) {
	dir := t.TempDir()

	_, err := resolveAccount(dir, "")
	assert.ErrorContains(t, err, "no google accounts")

	got, err := resolveAccount(dir, "tash")
	require.NoError(t, err)
	assert.Equal(t, "tash", got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "token-nick.json"), []byte("{}"), 0o600))
	got, err = resolveAccount(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "nick", got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "token-tash.json"), []byte("{}"), 0o600))
	_, err = resolveAccount(dir, "")
	assert.ErrorContains(t, err, "--account")
}
