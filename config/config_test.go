package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestLoadConfig_NoPathGivesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	require.Equal(t, "output", cfg.OutputDir)
	require.Equal(t, Viewport{Width: 1920, Height: 1080}, cfg.Viewport)
	require.Equal(t, 2*time.Second, cfg.SettleDelay())
	require.Equal(t, DriverChromedp, cfg.Driver)
	require.True(t, cfg.Headless)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, t.TempDir(), "config.json", `{
		"outputDir": "shots",
		"viewport": {"width": 1280},
		"delay": 500,
		"driver": "ROD",
		"headless": false
	}`)

	// --- Act ---
	cfg, err := LoadConfig(path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "shots", cfg.OutputDir)
	require.Equal(t, Viewport{Width: 1280, Height: 1080}, cfg.Viewport, "missing height should fall back to the default")
	require.Equal(t, 500*time.Millisecond, cfg.SettleDelay())
	require.Equal(t, DriverRod, cfg.Driver)
	require.False(t, cfg.Headless)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown member", content: `{"fileFormat": "jpeg"}`, wantErr: "error parsing config file"},
		{name: "malformed", content: `{"outputDir": `, wantErr: "error parsing config file"},
		{name: "negative delay", content: `{"delay": -1}`, wantErr: "delay must not be negative"},
		{name: "bad driver", content: `{"driver": "selenium"}`, wantErr: "unsupported driver: selenium"},
		{name: "bad viewport", content: `{"viewport": {"width": -5, "height": 10}}`, wantErr: "invalid viewport -5x10"},
		{name: "bad log level", content: `{"logLevel": "verbose"}`, wantErr: "invalid log level: verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "config.json", tc.content)

			_, err := LoadConfig(path)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCheckInputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		err := CheckInputFile(filepath.Join(dir, "invalid.csv"))
		require.ErrorIs(t, err, ErrInputNotFound)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("empty", func(t *testing.T) {
		err := CheckInputFile(writeFile(t, dir, "empty.csv", ""))
		require.ErrorIs(t, err, ErrInputEmpty)
	})

	t.Run("directory", func(t *testing.T) {
		err := CheckInputFile(dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "is a directory")
	})

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, CheckInputFile(writeFile(t, dir, "urls.csv", "url\nhttp://example.com\n")))
	})
}

func TestPrepareOutputDir_CreatesMissingFolder(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.Equal(t, "(will be created)", DirStatus(dir))

	created, err := PrepareOutputDir(dir)

	require.NoError(t, err)
	require.True(t, created)
	require.DirExists(t, dir)
	require.Equal(t, "(exists)", DirStatus(dir))

	created, err = PrepareOutputDir(dir)
	require.NoError(t, err)
	require.False(t, created, "an existing folder is reused")
}

func TestPrepareOutputDir_Failures(t *testing.T) {
	t.Parallel()
	file := writeFile(t, t.TempDir(), "taken", "x")

	t.Run("not a directory", func(t *testing.T) {
		_, err := PrepareOutputDir(file)

		var dirErr *OutputDirError
		require.ErrorAs(t, err, &dirErr)
		require.Equal(t, "is not a directory", dirErr.Reason)
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := filepath.Join(file, "output")

		created, err := PrepareOutputDir(dir)

		var dirErr *OutputDirError
		require.ErrorAs(t, err, &dirErr)
		require.False(t, created)
		require.Equal(t, "could not be created", dirErr.Reason)
		require.NoDirExists(t, dir)
	})
}
