package fx

import (
	"fmt"

	"osu-tracker/internal/api"
	"osu-tracker/internal/config"
	"osu-tracker/internal/database"
	"osu-tracker/internal/logger"
	"osu-tracker/internal/repository"
	"osu-tracker/internal/server"
	"osu-tracker/internal/service"
	"osu-tracker/internal/storage"
	"osu-tracker/internal/storage/local"
	"osu-tracker/internal/storage/remote"
	"osu-tracker/internal/syncserver"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideBackend picks the storage variant named by STORAGE_BACKEND.
func ProvideBackend(cfg *config.Config, logger zerolog.Logger) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal:
		store, err := local.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendRemote:
		client, err := remote.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("device_id", client.DeviceID()).Str("sync_base_url", cfg.SyncBaseURL).Msg("using remote storage")
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func ProvideUpstream(client *api.OsuClient) service.Upstream {
	return client
}

var core = fx.Options(
	logger.Module,
	config.Module,
	fx.Invoke(logger.ApplyLevel),
)

var TrackerModule = fx.Options(
	core,
	fx.Invoke(func(cfg *config.Config) error { return cfg.Validate() }),
	// upstream
	fx.Provide(api.NewCredentialCache),
	fx.Provide(api.NewOsuClient),
	fx.Provide(ProvideUpstream),
	// storage
	fx.Provide(ProvideBackend),
	// svc
	fx.Provide(service.NewProfileRegistry),
	fx.Provide(service.NewReportStore),
	// server
	fx.Provide(server.NewTrackerServer),
)

var SyncModule = fx.Options(
	core,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewReportRepository),
	fx.Provide(repository.NewProfileRepository),
	// handlers
	fx.Provide(syncserver.NewHandler),
)
