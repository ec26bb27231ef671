package repository_test

import (
	"context"
	"errors"
	"testing"

	"boardgame-recommender/internal/adapter/repository"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameContextRowColumns = []string{
	"name", "description", "min_players", "max_players",
	"play_time_min", "play_time_max", "complexity", "score",
}

func TestGameVectorRepository_Search(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	rows := pgxmock.NewRows(gameContextRowColumns).
		AddRow("卡坦岛", "经典的资源交易游戏", int64(3), int64(4), int64(60), int64(120), 2.3, float32(0.92)).
		AddRow("七大奇迹", nil, nil, nil, nil, nil, nil, float32(0.81))

	mockPool.ExpectQuery(`SELECT name, .+ FROM game_embeddings\s+ORDER BY embedding <=> \$1\s+LIMIT \$2`).
		WithArgs(pgxmock.AnyArg(), 5).
		WillReturnRows(rows)

	repo := repository.NewGameVectorRepository(mockPool)
	contexts, err := repo.Search(context.Background(), []float32{0.1, 0.2}, 5)

	require.NoError(t, err)
	require.Len(t, contexts, 2)

	require.NotNil(t, contexts[0].Name)
	assert.Equal(t, "卡坦岛", *contexts[0].Name)
	require.NotNil(t, contexts[0].MinPlayers)
	assert.Equal(t, 3, *contexts[0].MinPlayers)
	assert.InDelta(t, 0.92, float64(contexts[0].Score), 1e-6)

	require.NotNil(t, contexts[1].Name)
	assert.Equal(t, "七大奇迹", *contexts[1].Name)
	assert.Nil(t, contexts[1].Description)
	assert.Nil(t, contexts[1].Complexity)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGameVectorRepository_SearchEmptyIndex(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery(`FROM game_embeddings`).
		WithArgs(pgxmock.AnyArg(), 10).
		WillReturnRows(pgxmock.NewRows(gameContextRowColumns))

	repo := repository.NewGameVectorRepository(mockPool)
	contexts, err := repo.Search(context.Background(), []float32{0.1}, 10)

	require.NoError(t, err)
	assert.Empty(t, contexts)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGameVectorRepository_SearchZeroLimitSkipsQuery(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := repository.NewGameVectorRepository(mockPool)
	contexts, err := repo.Search(context.Background(), []float32{0.1}, 0)

	require.NoError(t, err)
	assert.Empty(t, contexts)
	// No query expectation was registered, so reaching the database would
	// have failed this test.
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGameVectorRepository_SearchQueryFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery(`FROM game_embeddings`).
		WithArgs(pgxmock.AnyArg(), 5).
		WillReturnError(errors.New("relation does not exist"))

	repo := repository.NewGameVectorRepository(mockPool)
	_, err = repo.Search(context.Background(), []float32{0.1}, 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to search game embeddings")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
