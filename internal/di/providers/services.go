package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/nabdhapp/nabdh-server/internal/logger"
	"github.com/nabdhapp/nabdh-server/internal/service"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
	"github.com/nabdhapp/nabdh-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideToolService provides the catalog service with a freshly built
// suggest index.
func ProvideToolService(i do.Injector) (*service.ToolService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SuggestIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewToolService(storeHandle.Store, indexHandle.Index, log.Logger)

	if err := svc.RebuildSuggestIndex(context.Background()); err != nil {
		return nil, err
	}

	// Keep suggestions in step with catalog reloads from the seed watcher.
	if ms, ok := storeHandle.Store.(*memory.Store); ok {
		ms.OnReload(func() {
			if err := svc.RebuildSuggestIndex(context.Background()); err != nil {
				log.Error("Failed to rebuild suggest index after catalog reload", "error", err)
			}
		})
	}
	return svc, nil
}

// ProvideSavedService provides the bookmarks service.
func ProvideSavedService(i do.Injector) (*service.SavedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSavedService(storeHandle.Store, log.Logger), nil
}
