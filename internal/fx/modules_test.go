package fx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"osu-tracker/internal/config"
	"osu-tracker/internal/storage/local"
	"osu-tracker/internal/storage/remote"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestProvideBackend(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		backend, err := ProvideBackend(&config.Config{StorageBackend: config.BackendLocal, DataDir: t.TempDir()}, zerolog.Nop())
		require.NoError(t, err)
		require.IsType(t, &local.Store{}, backend)
	})

	t.Run("remote keeps its device id", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.Config{StorageBackend: config.BackendRemote, DataDir: dir, SyncBaseURL: "http://sync"}

		backend, err := ProvideBackend(cfg, zerolog.Nop())
		require.NoError(t, err)
		client, ok := backend.(*remote.Client)
		require.True(t, ok)

		raw, err := os.ReadFile(filepath.Join(dir, "device_id"))
		require.NoError(t, err)
		require.Equal(t, strings.TrimSpace(string(raw)), client.DeviceID())

		again, err := ProvideBackend(cfg, zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, client.DeviceID(), again.(*remote.Client).DeviceID())
	})

	t.Run("unknown", func(t *testing.T) {
		backend, err := ProvideBackend(&config.Config{StorageBackend: "s3"}, zerolog.Nop())
		require.Error(t, err)
		require.Nil(t, backend)
	})
}

func TestCoreProvidesConfigAndLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	var cfg *config.Config
	app := fx.New(core, fx.NopLogger, fx.Populate(&cfg))
	require.NoError(t, app.Err())
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
