package rest_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardgame-recommender/internal/adapter/rest"
	"boardgame-recommender/internal/domain"
	"boardgame-recommender/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockRecommendUsecase struct {
	mock.Mock
}

func (m *mockRecommendUsecase) Execute(ctx context.Context, input usecase.RecommendInput) (*usecase.RecommendOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RecommendOutput), args.Error(1)
}

type mockCatalogRepository struct {
	mock.Mock
}

func (m *mockCatalogRepository) GetByName(ctx context.Context, name string) (*domain.BoardGame, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardGame), args.Error(1)
}

func (m *mockCatalogRepository) GetByID(ctx context.Context, id int64) (*domain.BoardGame, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardGame), args.Error(1)
}

func (m *mockCatalogRepository) List(ctx context.Context, limit, offset int) ([]domain.BoardGame, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardGame), args.Error(1)
}

func postRecommend(t *testing.T, handler *rest.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.Recommend(e.NewContext(req, rec)))
	return rec
}

func TestHandler_RecommendSuccess(t *testing.T) {
	uc := new(mockRecommendUsecase)
	desc := "经典的资源交易游戏"
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	retrievalLimit := 8
	uc.On("Execute", mock.Anything, usecase.RecommendInput{
		Preference:     "喜欢交易和谈判",
		ResultLimit:    3,
		RetrievalLimit: &retrievalLimit,
	}).Return(&usecase.RecommendOutput{
		Recommendations: []domain.BoardGame{{
			ID:          1,
			Name:        "卡坦岛",
			Description: &desc,
			CreatedAt:   now,
			UpdatedAt:   now,
			Status:      domain.BoardGameStatusApproved,
		}},
		Explanation: "适合双人对抗",
	}, nil)

	handler := rest.NewHandler(uc, new(mockCatalogRepository), discardLogger())
	rec := postRecommend(t, handler, `{"preference": "喜欢交易和谈判", "limit": 3, "retrieval_limit": 8}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"name":"卡坦岛"`)
	assert.Contains(t, body, `"explanation":"适合双人对抗"`)
	assert.Contains(t, body, `"created_at":"2026-08-01T12:00:00Z"`)
	uc.AssertExpectations(t)
}

func TestHandler_RecommendValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"preference": `},
		{"missing preference", `{"limit": 3}`},
		{"blank preference", `{"preference": "   "}`},
		{"zero limit", `{"preference": "x", "limit": 0}`},
		{"limit above cap", `{"preference": "x", "limit": 51}`},
		{"negative retrieval limit", `{"preference": "x", "retrieval_limit": -1}`},
		{"wrong preference type", `{"preference": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockRecommendUsecase)
			handler := rest.NewHandler(uc, new(mockCatalogRepository), discardLogger())

			rec := postRecommend(t, handler, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_RecommendErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not configured",
			err:        domain.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "server is not configured for recommendations",
		},
		{
			name:       "vector store unavailable",
			err:        fmt.Errorf("%w: connection refused", domain.ErrRetrievalUnavailable),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "error connecting to vector database",
		},
		{
			name:       "model unavailable",
			err:        fmt.Errorf("%w: upstream timeout", domain.ErrModelUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "recommendation service unavailable",
		},
		{
			name:       "malformed model output",
			err:        fmt.Errorf("%w: not json", domain.ErrMalformedModelOutput),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "error processing recommendations from model",
		},
		{
			name:       "invalid recommendation shape",
			err:        fmt.Errorf("%w: missing explanation", domain.ErrInvalidRecommendationShape),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "error processing recommendations from model",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error during recommendation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockRecommendUsecase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			handler := rest.NewHandler(uc, new(mockCatalogRepository), discardLogger())

			rec := postRecommend(t, handler, `{"preference": "anything"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			// Upstream detail must never leak into the response body.
			assert.NotContains(t, rec.Body.String(), "upstream timeout")
		})
	}
}

func TestHandler_RecommendEmptyResult(t *testing.T) {
	uc := new(mockRecommendUsecase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&usecase.RecommendOutput{
		Recommendations: []domain.BoardGame{},
		Explanation:     "没有合适的推荐",
	}, nil)

	handler := rest.NewHandler(uc, new(mockCatalogRepository), discardLogger())
	rec := postRecommend(t, handler, `{"preference": "anything"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recommendations":[]`)
}

func TestHandler_GetGame(t *testing.T) {
	repo := new(mockCatalogRepository)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo.On("GetByID", mock.Anything, int64(42)).Return(&domain.BoardGame{
		ID: 42, Name: "七大奇迹", CreatedAt: now, UpdatedAt: now, Status: domain.BoardGameStatusApproved,
	}, nil)

	handler := rest.NewHandler(new(mockRecommendUsecase), repo, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/games/42", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/v1/games/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("42")

	require.NoError(t, handler.GetGame(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"七大奇迹"`)
}

func TestHandler_GetGameNotFound(t *testing.T) {
	repo := new(mockCatalogRepository)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	handler := rest.NewHandler(new(mockRecommendUsecase), repo, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/games/99", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/v1/games/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("99")

	require.NoError(t, handler.GetGame(ctx))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetGameInvalidID(t *testing.T) {
	handler := rest.NewHandler(new(mockRecommendUsecase), new(mockCatalogRepository), discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/games/abc", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/v1/games/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	require.NoError(t, handler.GetGame(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListGames(t *testing.T) {
	repo := new(mockCatalogRepository)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo.On("List", mock.Anything, 2, 4).Return([]domain.BoardGame{
		{ID: 5, Name: "卡坦岛", CreatedAt: now, UpdatedAt: now, Status: domain.BoardGameStatusApproved},
		{ID: 6, Name: "七大奇迹", CreatedAt: now, UpdatedAt: now, Status: domain.BoardGameStatusApproved},
	}, nil)

	handler := rest.NewHandler(new(mockRecommendUsecase), repo, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/games?limit=2&offset=4", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.ListGames(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"games":[`)
	repo.AssertExpectations(t)
}

func TestHandler_ListGamesCapsLimit(t *testing.T) {
	repo := new(mockCatalogRepository)
	repo.On("List", mock.Anything, 100, 0).Return([]domain.BoardGame{}, nil)

	handler := rest.NewHandler(new(mockRecommendUsecase), repo, discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/games?limit=5000", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.ListGames(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestHandler_ListGamesInvalidPagination(t *testing.T) {
	handler := rest.NewHandler(new(mockRecommendUsecase), new(mockCatalogRepository), discardLogger())

	for _, target := range []string{"/v1/games?limit=0", "/v1/games?limit=abc", "/v1/games?offset=-1"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ListGames(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
