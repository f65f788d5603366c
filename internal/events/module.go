package events

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
)

// Module provides the event Bus, the action catalog and the loader.
// Actions are collected from the "event_actions" value group.
var Module = fx.Module("events",
	fx.Provide(
		NewBus,
		NewLoaderFromConfig,
		fx.Annotate(
			NewCatalogFromGroup,
			fx.ParamTags(`group:"event_actions"`),
		),
	),
)

// NewCatalogFromGroup builds the Catalog from the actions contributed to the
// value group.
func NewCatalogFromGroup(actions []Action) (*Catalog, error) {
	return NewCatalog(actions...)
}

// NewLoaderFromConfig creates a Loader rooted at the configured events directory.
func NewLoaderFromConfig(cfg *config.Config, catalog *Catalog, logger *zap.Logger) *Loader {
	return NewLoader(os.DirFS(cfg.Events.Dir), ".", catalog, logger)
}
