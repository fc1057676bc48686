package store

import (
	"context"
	"errors"
	"time"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const pgGameColumns = `id, title, genre, platform, developer, release_date::text, price,
	description, image_url, rating, created_at, updated_at`

// GameStore keeps games in PostgreSQL.
type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return wrapErr("ensure schema", err)
		}
	}
	return nil
}

func (s *GameStore) SeedIfEmpty(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return 0, wrapErr("count games", err)
	}
	if count > 0 {
		log.Infof("games table already holds %d rows, skipping seed", count)
		return 0, nil
	}

	now := time.Now().UTC()
	for i, g := range sampleGames {
		if _, err := s.CreateGame(ctx, g, now); err != nil {
			return i, wrapErr("seed games", err)
		}
	}
	return len(sampleGames), nil
}

func (s *GameStore) ListGames(ctx context.Context, filter models.GameFilter) ([]*models.Game, error) {
	query, args := buildListQuery(pgGameColumns, filter, dollarPlaceholder)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list games", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game, err := scanPgGame(rows)
		if err != nil {
			return nil, wrapErr("scan game", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list games", err)
	}

	return games, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + pgGameColumns + ` FROM games WHERE id = $1`

	game, err := scanPgGame(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapErr("get game by id", err)
	}

	return game, nil
}

func (s *GameStore) CreateGame(ctx context.Context, in models.GameInput, now time.Time) (int64, error) {
	query := `
		INSERT INTO games
			(title, genre, platform, developer, release_date, price, description, image_url, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6::numeric, $7, $8, $9::numeric, $10, $10)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query,
		in.Title,
		in.Genre,
		in.Platform,
		in.Developer,
		in.ReleaseDate,
		decimalArg(in.Price),
		in.Description,
		in.ImageURL,
		decimalArg(in.Rating),
		now,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("create game", err)
	}

	return id, nil
}

func (s *GameStore) UpdateGame(ctx context.Context, id int64, in models.GameInput, now time.Time) error {
	query := `
		UPDATE games SET
			title = $1, genre = $2, platform = $3, developer = $4,
			release_date = $5::date, price = $6::numeric, description = $7, image_url = $8,
			rating = $9::numeric, updated_at = $10
		WHERE id = $11
	`

	tag, err := s.db.Exec(ctx, query,
		in.Title,
		in.Genre,
		in.Platform,
		in.Developer,
		in.ReleaseDate,
		decimalArg(in.Price),
		in.Description,
		in.ImageURL,
		decimalArg(in.Rating),
		now,
		id,
	)
	if err != nil {
		return wrapErr("update game", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GameStore) DeleteGame(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete game", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GameStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *GameStore) Close() error {
	s.db.Close()
	return nil
}

func scanPgGame(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID,
		&game.Title,
		&game.Genre,
		&game.Platform,
		&game.Developer,
		&game.ReleaseDate,
		&game.Price,
		&game.Description,
		&game.ImageURL,
		&game.Rating,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	game.CreatedAt = game.CreatedAt.UTC()
	game.UpdatedAt = game.UpdatedAt.UTC()
	return game, nil
}
