package commands

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
)

// Module provides the command registry, the action catalog and the loader.
// Actions are collected from the "command_actions" value group.
var Module = fx.Module("commands",
	fx.Provide(
		NewRegistryFromConfig,
		NewLoaderFromConfig,
		fx.Annotate(
			NewCatalogFromGroup,
			fx.ParamTags(`group:"command_actions"`),
		),
	),
)

// NewRegistryFromConfig creates the Registry with the configured duplicate policy.
func NewRegistryFromConfig(cfg *config.Config, logger *zap.Logger) *Registry {
	return NewRegistry(cfg.Commands.StrictNames, logger)
}

// NewLoaderFromConfig creates a Loader rooted at the configured commands directory.
func NewLoaderFromConfig(cfg *config.Config, catalog *Catalog, logger *zap.Logger) *Loader {
	return NewLoader(os.DirFS(cfg.Commands.Dir), ".", catalog, logger)
}

// NewCatalogFromGroup builds the Catalog from the actions contributed to the
// value group.
func NewCatalogFromGroup(actions []Action) (*Catalog, error) {
	return NewCatalog(actions...)
}
