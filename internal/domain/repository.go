package domain

import "context"

// CatalogRepository reads board games from the relational catalog.
type CatalogRepository interface {
	// GetByName performs an exact-name lookup. Returns nil, nil when no
	// catalog entry carries that name.
	GetByName(ctx context.Context, name string) (*BoardGame, error)

	// GetByID retrieves a catalog entry by primary key. Returns nil, nil
	// when absent.
	GetByID(ctx context.Context, id int64) (*BoardGame, error)

	// List returns catalog entries ordered by id.
	List(ctx context.Context, limit, offset int) ([]BoardGame, error)
}

// GameVectorRepository searches the embedded game index. The index is
// populated upstream; this service only queries it.
type GameVectorRepository interface {
	// Search returns up to limit metadata snapshots ordered by similarity
	// to the query vector. An empty result is not an error.
	Search(ctx context.Context, queryVector []float32, limit int) ([]GameContext, error)
}
