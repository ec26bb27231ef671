package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"boardgame-recommender/internal/domain"
)

// MaxRetrievalLimit caps how many context snippets a single request may
// pull from the vector index, keeping the prompt inside the context window.
const MaxRetrievalLimit = 20

// RetrieveGamesInput defines the input parameters for RetrieveGames.
type RetrieveGamesInput struct {
	Preference string
	Limit      int
}

// RetrieveGamesOutput defines the output for RetrieveGames.
type RetrieveGamesOutput struct {
	Contexts []domain.GameContext
}

// RetrieveGamesUsecase retrieves catalog-adjacent context for a free-text
// preference via vector similarity search.
type RetrieveGamesUsecase interface {
	Execute(ctx context.Context, input RetrieveGamesInput) (*RetrieveGamesOutput, error)
}

type retrieveGamesUsecase struct {
	vectorRepo domain.GameVectorRepository
	encoder    domain.VectorEncoder
	log        *slog.Logger
}

// NewRetrieveGamesUsecase creates a new RetrieveGamesUsecase.
func NewRetrieveGamesUsecase(vectorRepo domain.GameVectorRepository, encoder domain.VectorEncoder, log *slog.Logger) RetrieveGamesUsecase {
	return &retrieveGamesUsecase{
		vectorRepo: vectorRepo,
		encoder:    encoder,
		log:        log,
	}
}

func (u *retrieveGamesUsecase) Execute(ctx context.Context, input RetrieveGamesInput) (*RetrieveGamesOutput, error) {
	if strings.TrimSpace(input.Preference) == "" {
		return nil, fmt.Errorf("preference is empty")
	}

	limit := ClampRetrievalLimit(input.Limit)
	if limit == 0 {
		return &RetrieveGamesOutput{Contexts: []domain.GameContext{}}, nil
	}

	embeddings, err := u.encoder.Encode(ctx, []string{input.Preference})
	if err != nil {
		return nil, fmt.Errorf("failed to encode preference: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("%w: expected 1 embedding, got %d", domain.ErrRetrievalUnavailable, len(embeddings))
	}

	contexts, err := u.vectorRepo.Search(ctx, embeddings[0], limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}

	if len(contexts) == 0 {
		u.log.Info("no relevant games found in vector index",
			slog.Int("retrieval_limit", limit))
	}

	return &RetrieveGamesOutput{Contexts: contexts}, nil
}

// ClampRetrievalLimit bounds a requested retrieval limit to [0, MaxRetrievalLimit].
func ClampRetrievalLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxRetrievalLimit {
		return MaxRetrievalLimit
	}
	return limit
}
