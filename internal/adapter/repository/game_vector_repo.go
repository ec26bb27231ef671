package repository

import (
	"context"
	"fmt"

	"boardgame-recommender/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

type gameVectorRepository struct {
	db Querier
}

// NewGameVectorRepository creates a repository over the pre-populated
// game_embeddings index.
func NewGameVectorRepository(db Querier) domain.GameVectorRepository {
	return &gameVectorRepository{db: db}
}

// Search runs a cosine-similarity query and returns metadata-only
// snapshots; embeddings themselves never leave the database.
func (r *gameVectorRepository) Search(ctx context.Context, queryVector []float32, limit int) ([]domain.GameContext, error) {
	if limit <= 0 {
		return []domain.GameContext{}, nil
	}

	query := `
		SELECT name, description, min_players, max_players, play_time_min, play_time_max, complexity,
		       1 - (embedding <=> $1) AS score
		FROM game_embeddings
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, pgvector.NewVector(queryVector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search game embeddings: %w", err)
	}
	defer rows.Close()

	contexts := make([]domain.GameContext, 0, limit)
	for rows.Next() {
		var (
			item        domain.GameContext
			name        pgtype.Text
			description pgtype.Text
			minPlayers  pgtype.Int4
			maxPlayers  pgtype.Int4
			playTimeMin pgtype.Int4
			playTimeMax pgtype.Int4
			complexity  pgtype.Float8
		)
		if err := rows.Scan(&name, &description, &minPlayers, &maxPlayers, &playTimeMin, &playTimeMax, &complexity, &item.Score); err != nil {
			return nil, fmt.Errorf("failed to scan game context: %w", err)
		}
		item.Name = textPtr(name)
		item.Description = textPtr(description)
		item.MinPlayers = int4Ptr(minPlayers)
		item.MaxPlayers = int4Ptr(maxPlayers)
		item.PlayTimeMin = int4Ptr(playTimeMin)
		item.PlayTimeMax = int4Ptr(playTimeMax)
		item.Complexity = float8Ptr(complexity)
		contexts = append(contexts, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return contexts, nil
}
