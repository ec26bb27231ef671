package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"boardgame-recommender/internal/domain"
)

// CatalogReconciler resolves model-proposed game names against the
// authoritative catalog.
type CatalogReconciler interface {
	Resolve(ctx context.Context, names []string) ([]domain.BoardGame, error)
}

type catalogReconciler struct {
	catalog domain.CatalogRepository
	log     *slog.Logger
}

// NewCatalogReconciler creates a reconciler backed by the catalog repository.
func NewCatalogReconciler(catalog domain.CatalogRepository, log *slog.Logger) CatalogReconciler {
	return &catalogReconciler{catalog: catalog, log: log}
}

// Resolve looks up each name in order with an exact match. Unmatched names
// are logged and dropped; duplicates pass through untouched. Zero matches
// is a valid outcome, not an error.
func (r *catalogReconciler) Resolve(ctx context.Context, names []string) ([]domain.BoardGame, error) {
	games := make([]domain.BoardGame, 0, len(names))
	for _, name := range names {
		game, err := r.catalog.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up game %q: %w", name, err)
		}
		if game == nil {
			r.log.Warn("recommended game not found in catalog", slog.String("name", name))
			continue
		}
		games = append(games, *game)
	}
	return games, nil
}
