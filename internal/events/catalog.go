package events

import (
	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
)

// Action names a handler factory that event modules can refer to.
type Action struct {
	Name  string
	Build manifest.Factory[Handler]
}

// Catalog is the static table of event actions.
type Catalog struct {
	*manifest.Catalog[Handler]
}

// NewCatalog registers actions into a new Catalog.
func NewCatalog(actions ...Action) (*Catalog, error) {
	c := &Catalog{Catalog: manifest.NewCatalog[Handler]()}
	for _, a := range actions {
		if err := c.Register(a.Name, a.Build); err != nil {
			return nil, err
		}
	}

	return c, nil
}
