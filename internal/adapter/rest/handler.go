package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"boardgame-recommender/internal/domain"
	"boardgame-recommender/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RecommendRequest is the inbound body of POST /v1/recommendations.
type RecommendRequest struct {
	Preference     string `json:"preference" validate:"required"`
	Limit          *int   `json:"limit" validate:"omitempty,min=1,max=50"`
	RetrievalLimit *int   `json:"retrieval_limit" validate:"omitempty,min=0"`
}

// RecommendResponse is the success body of POST /v1/recommendations.
type RecommendResponse struct {
	Recommendations []BoardGameResponse `json:"recommendations"`
	Explanation     string              `json:"explanation"`
}

// BoardGameResponse is the JSON projection of a catalog entry.
type BoardGameResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	MinPlayers  *int     `json:"min_players"`
	MaxPlayers  *int     `json:"max_players"`
	PlayTimeMin *int     `json:"play_time_min"`
	PlayTimeMax *int     `json:"play_time_max"`
	Complexity  *float64 `json:"complexity"`
	ImageURL    *string  `json:"image_url"`
	Accessories *string  `json:"accessories"`
	Tutorials   *string  `json:"tutorials"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Status      string   `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	recommendUsecase usecase.RecommendUsecase
	catalogRepo      domain.CatalogRepository
	validate         *validator.Validate
	log              *slog.Logger
}

func NewHandler(recommendUsecase usecase.RecommendUsecase, catalogRepo domain.CatalogRepository, log *slog.Logger) *Handler {
	return &Handler{
		recommendUsecase: recommendUsecase,
		catalogRepo:      catalogRepo,
		validate:         validator.New(),
		log:              log,
	}
}

// Recommend generates board-game recommendations grounded in the vector
// index and reconciled against the catalog.
// (POST /v1/recommendations)
func (h *Handler) Recommend(ctx echo.Context) error {
	var req RecommendRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
	}
	if strings.TrimSpace(req.Preference) == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "preference must not be empty"})
	}

	input := usecase.RecommendInput{Preference: req.Preference}
	if req.Limit != nil {
		input.ResultLimit = *req.Limit
	}
	input.RetrievalLimit = req.RetrievalLimit

	output, err := h.recommendUsecase.Execute(ctx.Request().Context(), input)
	if err != nil {
		return h.recommendError(ctx, err)
	}

	recommendations := make([]BoardGameResponse, 0, len(output.Recommendations))
	for _, game := range output.Recommendations {
		recommendations = append(recommendations, toBoardGameResponse(game))
	}

	return ctx.JSON(http.StatusOK, RecommendResponse{
		Recommendations: recommendations,
		Explanation:     output.Explanation,
	})
}

// recommendError maps pipeline sentinel errors to response categories.
// Detail strings stay generic; diagnostics live in the logs.
func (h *Handler) recommendError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		h.log.Error("recommendation rejected: service not configured")
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "server is not configured for recommendations"})
	case errors.Is(err, domain.ErrRetrievalUnavailable):
		h.log.Error("recommendation failed: vector store unavailable", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "error connecting to vector database"})
	case errors.Is(err, domain.ErrModelUnavailable):
		h.log.Error("recommendation failed: completion service unavailable", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusServiceUnavailable, errorResponse{Error: "recommendation service unavailable"})
	case errors.Is(err, domain.ErrMalformedModelOutput), errors.Is(err, domain.ErrInvalidRecommendationShape):
		// Raw model text was already logged by the orchestrator.
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "error processing recommendations from model"})
	default:
		h.log.Error("recommendation failed", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error during recommendation"})
	}
}

// GetGame returns a single catalog entry.
// (GET /v1/games/:id)
func (h *Handler) GetGame(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid game id"})
	}

	game, err := h.catalogRepo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		h.log.Error("failed to load game", slog.Int64("id", id), slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	if game == nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "game not found"})
	}

	return ctx.JSON(http.StatusOK, toBoardGameResponse(*game))
}

// ListGames returns a page of the catalog ordered by id.
// (GET /v1/games)
func (h *Handler) ListGames(ctx echo.Context) error {
	limit := defaultListLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := 0
	if raw := ctx.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid offset"})
		}
		offset = parsed
	}

	games, err := h.catalogRepo.List(ctx.Request().Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list games", slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	responses := make([]BoardGameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, toBoardGameResponse(game))
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{"games": responses})
}

func toBoardGameResponse(game domain.BoardGame) BoardGameResponse {
	return BoardGameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		MinPlayers:  game.MinPlayers,
		MaxPlayers:  game.MaxPlayers,
		PlayTimeMin: game.PlayTimeMin,
		PlayTimeMax: game.PlayTimeMax,
		Complexity:  game.Complexity,
		ImageURL:    game.ImageURL,
		Accessories: game.Accessories,
		Tutorials:   game.Tutorials,
		CreatedAt:   game.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   game.UpdatedAt.Format(time.RFC3339),
		Status:      game.Status,
	}
}
