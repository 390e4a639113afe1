package provider

import (
	"fmt"
	"sort"
	"sync"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/config"
)

// Creator builds a Transcriber from the transcription settings
type Creator func(cfg config.TranscriptionConfig) (Transcriber, error)

var (
	creatorsMu sync.RWMutex
	creators   = make(map[string]Creator)
)

// Register makes a vendor available under name. Vendor packages call it
// from init.
func Register(name string, creator Creator) {
	creatorsMu.Lock()
	defer creatorsMu.Unlock()
	creators[name] = creator
}

// Registered returns the registered vendor names in sorted order
func Registered() []string {
	creatorsMu.RLock()
	defer creatorsMu.RUnlock()

	names := make([]string, 0, len(creators))
	for name := range creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the Transcriber selected by cfg.Provider
func New(cfg config.TranscriptionConfig) (Transcriber, error) {
	creatorsMu.RLock()
	creator, ok := creators[cfg.Provider]
	creatorsMu.RUnlock()

	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound, "%q (registered: %v)", cfg.Provider, Registered())
	}

	t, err := creator(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s transcriber: %w", cfg.Provider, err)
	}
	return t, nil
}
