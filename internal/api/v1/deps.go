package v1

import (
	"context"
	"errors"

	"github.com/gamevault/gamevault/internal/importer"
	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/pkg/igdb"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// CatalogSearcher defines the interface for catalog search.
type CatalogSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]igdb.Game, error)
}

// SteamImporter defines the interface for running Steam library imports.
type SteamImporter interface {
	ImportSteam(ctx context.Context) (*importer.Result, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Library *library.Store
	History *importer.HistoryStore

	// Optional dependencies (nil if not configured)
	Searcher CatalogSearcher
	Importer SteamImporter
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Library == nil {
		return errors.New("library store is required")
	}
	if d.History == nil {
		return errors.New("history store is required")
	}
	return nil
}
