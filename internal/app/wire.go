//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"speech2text/internal/config"
)

// InitializeApplication builds the HTTP service. The returned cleanup closes
// the store and flushes the logger.
func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, func(), error) {
	wire.Build(ProviderSet)
	return &Application{}, nil, nil
}
