package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"boardgame-recommender/internal/domain"
)

// ResponseParser decodes and validates the JSON text emitted by the
// completion service. Parsing is fail-fast: a response that cannot be
// decoded or misses a required field aborts the request, never a guess.
type ResponseParser struct{}

// NewResponseParser creates a parser instance (stateless).
func NewResponseParser() ResponseParser {
	return ResponseParser{}
}

// llmRecommendationPayload mirrors the required output contract. Pointer
// fields distinguish an absent key from a present-but-empty value.
type llmRecommendationPayload struct {
	RecommendedGameNames *[]string `json:"recommended_game_names"`
	Explanation          *string   `json:"explanation"`
}

// Parse decodes raw model output into a validated LLMRecommendation.
func (p ResponseParser) Parse(raw string) (*domain.LLMRecommendation, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrMalformedModelOutput)
	}

	var payload llmRecommendationPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q has type %s", domain.ErrInvalidRecommendationShape, typeErr.Field, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	if payload.RecommendedGameNames == nil {
		return nil, fmt.Errorf("%w: missing recommended_game_names", domain.ErrInvalidRecommendationShape)
	}
	if payload.Explanation == nil {
		return nil, fmt.Errorf("%w: missing explanation", domain.ErrInvalidRecommendationShape)
	}

	names := *payload.RecommendedGameNames
	if names == nil {
		names = []string{}
	}

	return &domain.LLMRecommendation{
		RecommendedGameNames: names,
		Explanation:          *payload.Explanation,
	}, nil
}
