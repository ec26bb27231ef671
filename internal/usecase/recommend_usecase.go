package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"boardgame-recommender/internal/domain"

	"github.com/google/uuid"
)

// RecommendInput encapsulates the parameters that drive one recommendation
// request. A zero ResultLimit falls back to the configured default; a nil
// RetrievalLimit does the same, while an explicit 0 skips retrieval and
// lets the model answer from general knowledge.
type RecommendInput struct {
	Preference     string
	ResultLimit    int
	RetrievalLimit *int
}

// RecommendOutput is the assembled response returned to API clients.
// Recommendations keep the model's ordering, filtered to catalog matches.
type RecommendOutput struct {
	Recommendations []domain.BoardGame
	Explanation     string
}

// RecommendUsecase defines the contract for generating grounded
// board-game recommendations.
type RecommendUsecase interface {
	Execute(ctx context.Context, input RecommendInput) (*RecommendOutput, error)
}

type recommendUsecase struct {
	retrieve   RetrieveGamesUsecase
	builder    PromptBuilder
	llmClient  domain.LLMClient
	parser     ResponseParser
	reconciler CatalogReconciler

	defaultResultLimit    int
	defaultRetrievalLimit int
	log                   *slog.Logger
}

// NewRecommendUsecase wires together the stages of the recommendation
// pipeline. All collaborators are injected; nothing is constructed per call.
func NewRecommendUsecase(
	retrieve RetrieveGamesUsecase,
	builder PromptBuilder,
	llmClient domain.LLMClient,
	parser ResponseParser,
	reconciler CatalogReconciler,
	defaultResultLimit, defaultRetrievalLimit int,
	log *slog.Logger,
) RecommendUsecase {
	return &recommendUsecase{
		retrieve:              retrieve,
		builder:               builder,
		llmClient:             llmClient,
		parser:                parser,
		reconciler:            reconciler,
		defaultResultLimit:    defaultResultLimit,
		defaultRetrievalLimit: defaultRetrievalLimit,
		log:                   log,
	}
}

// Execute runs the single-pass pipeline:
// retrieve -> build prompt -> call model -> parse -> reconcile.
// Any stage failure short-circuits with that stage's sentinel error.
func (u *recommendUsecase) Execute(ctx context.Context, input RecommendInput) (*RecommendOutput, error) {
	if strings.TrimSpace(input.Preference) == "" {
		return nil, fmt.Errorf("preference is required")
	}

	resultLimit := input.ResultLimit
	if resultLimit <= 0 {
		resultLimit = u.defaultResultLimit
	}
	retrievalLimit := u.defaultRetrievalLimit
	if input.RetrievalLimit != nil {
		retrievalLimit = *input.RetrievalLimit
	}

	requestID := uuid.NewString()
	log := u.log.With(slog.String("request_id", requestID))
	log.Info("recommendation request received",
		slog.String("preference", input.Preference),
		slog.Int("result_limit", resultLimit),
		slog.Int("retrieval_limit", retrievalLimit))

	retrieved, err := u.retrieve.Execute(ctx, RetrieveGamesInput{
		Preference: input.Preference,
		Limit:      retrievalLimit,
	})
	if err != nil {
		return nil, err
	}
	log.Info("retrieval completed", slog.Int("context_count", len(retrieved.Contexts)))

	messages, err := u.builder.Build(PromptInput{
		Preference:  input.Preference,
		ResultLimit: resultLimit,
		Contexts:    retrieved.Contexts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := u.llmClient.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	recommendation, err := u.parser.Parse(raw)
	if err != nil {
		// Raw output goes to the logs for diagnosis, never to the caller.
		log.Error("failed to parse model output",
			slog.String("error", err.Error()),
			slog.String("raw_response", raw))
		return nil, err
	}
	log.Info("model recommendation parsed",
		slog.Int("name_count", len(recommendation.RecommendedGameNames)))

	games, err := u.reconciler.Resolve(ctx, recommendation.RecommendedGameNames)
	if err != nil {
		return nil, err
	}

	return &RecommendOutput{
		Recommendations: games,
		Explanation:     recommendation.Explanation,
	}, nil
}
