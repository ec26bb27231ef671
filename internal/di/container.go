package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"boardgame-recommender/internal/adapter/openai"
	"boardgame-recommender/internal/adapter/repository"
	"boardgame-recommender/internal/domain"
	"boardgame-recommender/internal/infra/config"
	"boardgame-recommender/internal/infra/httpclient"
	"boardgame-recommender/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Repositories
	CatalogRepo domain.CatalogRepository
	VectorRepo  domain.GameVectorRepository

	// External clients
	Encoder   domain.VectorEncoder
	LLMClient domain.LLMClient

	// Usecases
	RetrieveUsecase  usecase.RetrieveGamesUsecase
	RecommendUsecase usecase.RecommendUsecase
}

// NewApplicationComponents wires all dependencies from config and database pool.
// Clients are constructed once here and shared; nothing in the pipeline
// builds collaborators per request.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *ApplicationComponents {
	// Repositories
	catalogRepo := repository.NewCatalogRepository(pool)
	vectorRepo := repository.NewGameVectorRepository(pool)

	// Shared HTTP client with connection pooling for the completion API
	apiHTTP := httpclient.NewPooledClient(time.Duration(cfg.OpenAITimeout) * time.Second)

	// External clients
	encoder := openai.NewEmbeddingClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, apiHTTP, log)
	llmClient := openai.NewChatClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, apiHTTP, log)

	// Pipeline stages
	retrieveUsecase := usecase.NewRetrieveGamesUsecase(vectorRepo, encoder, log)
	promptBuilder := usecase.NewRecommendationPromptBuilder()
	parser := usecase.NewResponseParser()
	reconciler := usecase.NewCatalogReconciler(catalogRepo, log)

	recommendUsecase := usecase.NewRecommendUsecase(
		retrieveUsecase, promptBuilder, llmClient, parser, reconciler,
		cfg.DefaultResultLimit, cfg.DefaultRetrievalLimit, log,
	)

	return &ApplicationComponents{
		CatalogRepo:      catalogRepo,
		VectorRepo:       vectorRepo,
		Encoder:          encoder,
		LLMClient:        llmClient,
		RetrieveUsecase:  retrieveUsecase,
		RecommendUsecase: recommendUsecase,
	}
}
