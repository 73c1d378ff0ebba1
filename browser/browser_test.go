package browser

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shotlist/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindChrome_ExplicitPath(t *testing.T) {
	t.Parallel()
	bin := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))

	path, err := FindChrome(bin)

	require.NoError(t, err)
	require.Equal(t, bin, path)
}

func TestFindChrome_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := FindChrome(filepath.Join(t.TempDir(), "nope"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestKnownLocations(t *testing.T) {
	t.Parallel()
	require.Contains(t, knownLocations("linux"), "/usr/bin/chromium")
	require.NotEmpty(t, knownLocations("darwin"))
	require.Empty(t, knownLocations("plan9"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Driver = "selenium"

	s, err := Open(context.Background(), cfg, discardLogger())

	require.Nil(t, s)
	require.EqualError(t, err, "unsupported driver: selenium")
}

func TestOpen_MissingExplicitChromeFailsFast(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{config.DriverChromedp, config.DriverRod} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Default()
			cfg.Driver = driver
			cfg.ChromePath = filepath.Join(t.TempDir(), "missing-chrome")

			s, err := Opener(cfg, discardLogger())(context.Background())

			require.Nil(t, s)
			require.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}
