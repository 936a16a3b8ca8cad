package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(ConfigEnv, "")
	t.Setenv("STYLEKIT_LOG_LEVEL", "")
	t.Setenv("STYLEKIT_FORMAT", "")
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)

	s, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", s.LogLevel)
	require.Equal(t, "html", s.Format)
	require.Equal(t, 300*time.Millisecond, s.Watch.Debounce)
	require.Contains(t, s.CacheDir, filepath.Join(".cache", "stylekit"))
	require.Empty(t, s.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	isolateHome(t)

	path := writeSettings(t, "log_level: debug\nformat: tree\nwatch:\n  debounce: 1s\n")
	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", s.LogLevel)
	require.Equal(t, "tree", s.Format)
	require.Equal(t, time.Second, s.Watch.Debounce)
	require.Equal(t, path, s.File)

	t.Setenv("STYLEKIT_LOG_LEVEL", "WARN")
	s, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", s.LogLevel)
}

func TestLoadConfigEnv(t *testing.T) {
	isolateHome(t)

	path := writeSettings(t, "format: tree\n")
	t.Setenv(ConfigEnv, path)

	s, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "tree", s.Format)
}

func TestLoadErrors(t *testing.T) {
	isolateHome(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var parseErr *stylekiterrors.ParseError
	require.True(t, errors.As(err, &parseErr))

	_, err = Load(writeSettings(t, "format: pdf\n"))
	require.Error(t, err)
	var validationErr *stylekiterrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, "format", validationErr.Field)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	s := Default()
	require.Equal(t, "info", s.LogLevel)
	require.Equal(t, 300*time.Millisecond, s.Watch.Debounce)
}
