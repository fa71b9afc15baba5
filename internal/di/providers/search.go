package providers

import (
	"github.com/samber/do/v2"

	"github.com/nabdhapp/nabdh-server/internal/logger"
	"github.com/nabdhapp/nabdh-server/internal/search"
)

// SuggestIndexHandle wraps the suggest index with shutdown capability.
type SuggestIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SuggestIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSuggestIndex provides the in-memory typeahead index.
func ProvideSuggestIndex(i do.Injector) (*SuggestIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	idx, err := search.NewIndex(log.Logger)
	if err != nil {
		return nil, err
	}
	return &SuggestIndexHandle{Index: idx}, nil
}
