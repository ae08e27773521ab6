package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbidlgo/obbidl/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, config.FormatBinary, cfg.Format)
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "protocol", cfg.Package)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
