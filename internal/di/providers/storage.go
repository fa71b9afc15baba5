package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/nabdhapp/nabdh-server/internal/config"
	"github.com/nabdhapp/nabdh-server/internal/logger"
	"github.com/nabdhapp/nabdh-server/internal/store"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
	"github.com/nabdhapp/nabdh-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistence layer selected by configuration.
// The memory driver seeds from the catalog file and can watch it for
// changes; the sqlite driver seeds only when the tools table is empty.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Database.Driver {
	case "memory":
		s := memory.New(log.Logger)
		if cfg.Catalog.SeedPath != "" {
			if err := s.LoadCatalog(cfg.Catalog.SeedPath); err != nil {
				return nil, err
			}
			if cfg.Catalog.WatchSeed {
				if err := s.WatchCatalog(cfg.Catalog.SeedPath); err != nil {
					return nil, err
				}
				log.Info("Watching catalog seed file", "path", cfg.Catalog.SeedPath)
			}
		}
		return &StoreHandle{Store: s}, nil

	case "sqlite":
		s, err := sqlite.Open(cfg.Database.Path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "path", cfg.Database.Path)

		if cfg.Catalog.SeedPath != "" {
			if err := seedSQLite(s, cfg.Catalog.SeedPath); err != nil {
				s.Close()
				return nil, err
			}
		}
		return &StoreHandle{Store: s}, nil

	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

// seedSQLite loads the catalog file into an empty database. A database
// that already has tools is left alone so counters survive restarts.
func seedSQLite(s *sqlite.Store, seedPath string) error {
	ctx := context.Background()

	n, err := s.CountTools(ctx)
	if err != nil {
		return fmt.Errorf("count tools: %w", err)
	}
	if n > 0 {
		return nil
	}

	tools, err := memory.LoadCatalogFile(seedPath)
	if err != nil {
		return err
	}
	for _, tool := range tools {
		if err := s.CreateTool(ctx, tool); err != nil {
			return fmt.Errorf("seed tool %q: %w", tool.Slug, err)
		}
	}
	return nil
}
