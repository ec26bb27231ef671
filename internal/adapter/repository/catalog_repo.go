package repository

import (
	"context"
	"errors"
	"fmt"

	"boardgame-recommender/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the subset of pgxpool.Pool the repositories need. It is also
// satisfied by pgxmock pools in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const boardGameColumns = `id, name, description, min_players, max_players, play_time_min, play_time_max, complexity, image_url, accessories, tutorials, created_by, created_at, updated_at, status`

type catalogRepository struct {
	db Querier
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db Querier) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByName(ctx context.Context, name string) (*domain.BoardGame, error) {
	query := `
		SELECT ` + boardGameColumns + `
		FROM board_games
		WHERE name = $1
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query, name)
	return scanBoardGame(row)
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*domain.BoardGame, error) {
	query := `
		SELECT ` + boardGameColumns + `
		FROM board_games
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	return scanBoardGame(row)
}

func (r *catalogRepository) List(ctx context.Context, limit, offset int) ([]domain.BoardGame, error) {
	query := `
		SELECT ` + boardGameColumns + `
		FROM board_games
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query board games: %w", err)
	}
	defer rows.Close()

	games := make([]domain.BoardGame, 0, limit)
	for rows.Next() {
		game, err := scanBoardGameValues(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return games, nil
}

func scanBoardGame(row pgx.Row) (*domain.BoardGame, error) {
	game, err := scanBoardGameValues(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

// scanBoardGameValues scans one board_games row, converting nullable
// columns into pointers.
func scanBoardGameValues(row pgx.Row) (*domain.BoardGame, error) {
	var (
		game        domain.BoardGame
		description pgtype.Text
		minPlayers  pgtype.Int4
		maxPlayers  pgtype.Int4
		playTimeMin pgtype.Int4
		playTimeMax pgtype.Int4
		complexity  pgtype.Float8
		imageURL    pgtype.Text
		accessories pgtype.Text
		tutorials   pgtype.Text
		createdBy   pgtype.Int8
	)

	err := row.Scan(
		&game.ID, &game.Name, &description,
		&minPlayers, &maxPlayers, &playTimeMin, &playTimeMax, &complexity,
		&imageURL, &accessories, &tutorials, &createdBy,
		&game.CreatedAt, &game.UpdatedAt, &game.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan board game: %w", err)
	}

	game.Description = textPtr(description)
	game.MinPlayers = int4Ptr(minPlayers)
	game.MaxPlayers = int4Ptr(maxPlayers)
	game.PlayTimeMin = int4Ptr(playTimeMin)
	game.PlayTimeMax = int4Ptr(playTimeMax)
	game.Complexity = float8Ptr(complexity)
	game.ImageURL = textPtr(imageURL)
	game.Accessories = textPtr(accessories)
	game.Tutorials = textPtr(tutorials)
	game.CreatedBy = int8Ptr(createdBy)

	return &game, nil
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func int4Ptr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int32)
	return &value
}

func int8Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
