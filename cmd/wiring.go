package cmd

import (
	"fmt"

	"dtl-import/core/config"
	"dtl-import/core/database"
	"dtl-import/core/netbox"
	"dtl-import/core/repo"
	"dtl-import/core/storage"
	"dtl-import/feature/history"
	"dtl-import/feature/importer"

	"go.uber.org/zap"
)

// components are the collaborators shared by the sync and serve commands.
type components struct {
	service *importer.Service
	history *history.Repository
}

// wire builds the import service. The history database and the archive bucket are
// optional: when they cannot be reached the run goes ahead without them.
func wire(cfg *config.Config, logg *zap.Logger) (*components, error) {
	client, err := netbox.NewClient(cfg.NetBox, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create netbox client: %w", err)
	}

	svc := importer.NewService(client, repo.New(cfg.Repo, logg), cfg.Catalog.Filter(), logg)
	out := &components{service: svc}

	if cfg.Database.Enabled {
		if hist, err := openHistory(cfg.Database, logg); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			out.history = hist
			svc.WithRecorder(hist)
		}
	}

	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else {
			svc.WithArchive(importer.NewArchive(store, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Storage.Region))
		}
	}

	return out, nil
}

func openHistory(cfg database.Config, logg *zap.Logger) (*history.Repository, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	hist := history.NewRepository(db, logg)
	if err := hist.Migrate(); err != nil {
		return nil, err
	}
	logg.Info("Connected to history database", zap.String("driver", cfg.Driver))
	return hist, nil
}
