package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"boardgame-recommender/internal/domain"
	"boardgame-recommender/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockVectorEncoder struct {
	mock.Mock
}

func (m *mockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *mockVectorEncoder) Version() string {
	return "mock-encoder"
}

type mockGameVectorRepository struct {
	mock.Mock
}

func (m *mockGameVectorRepository) Search(ctx context.Context, queryVector []float32, limit int) ([]domain.GameContext, error) {
	args := m.Called(ctx, queryVector, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameContext), args.Error(1)
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

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *mockLLMClient) Version() string {
	return "mock-llm"
}

type mockRetrieveGamesUsecase struct {
	mock.Mock
}

func (m *mockRetrieveGamesUsecase) Execute(ctx context.Context, input usecase.RetrieveGamesInput) (*usecase.RetrieveGamesOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RetrieveGamesOutput), args.Error(1)
}

type mockCatalogReconciler struct {
	mock.Mock
}

func (m *mockCatalogReconciler) Resolve(ctx context.Context, names []string) ([]domain.BoardGame, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardGame), args.Error(1)
}
