package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	log "github.com/sirupsen/logrus"
)

const sqliteGameColumns = `id, title, genre, platform, developer, release_date, price,
	description, image_url, rating, created_at, updated_at`

// SQLiteGameStore keeps games in a SQLite file.
type SQLiteGameStore struct {
	db *sql.DB
}

func NewSQLiteGameStore(db *sql.DB) *SQLiteGameStore {
	return &SQLiteGameStore{db: db}
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func (s *SQLiteGameStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrapErr("ensure schema", err)
		}
	}
	return nil
}

func (s *SQLiteGameStore) SeedIfEmpty(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
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

func (s *SQLiteGameStore) ListGames(ctx context.Context, filter models.GameFilter) ([]*models.Game, error) {
	query, args := buildListQuery(sqliteGameColumns, filter, questionPlaceholder)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list games", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game, err := scanSQLiteGame(rows)
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

func (s *SQLiteGameStore) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteGameColumns+` FROM games WHERE id = ?`, id)

	game, err := scanSQLiteGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapErr("get game by id", err)
	}
	return game, nil
}

func (s *SQLiteGameStore) CreateGame(ctx context.Context, in models.GameInput, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games
			(title, genre, platform, developer, release_date, price, description, image_url, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title,
		in.Genre,
		in.Platform,
		in.Developer,
		in.ReleaseDate,
		decimalArg(in.Price),
		in.Description,
		in.ImageURL,
		decimalArg(in.Rating),
		toMicros(now),
		toMicros(now),
	)
	if err != nil {
		return 0, wrapErr("create game", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapErr("create game", err)
	}
	return id, nil
}

func (s *SQLiteGameStore) UpdateGame(ctx context.Context, id int64, in models.GameInput, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE games SET
			title = ?, genre = ?, platform = ?, developer = ?,
			release_date = ?, price = ?, description = ?, image_url = ?,
			rating = ?, updated_at = ?
		WHERE id = ?`,
		in.Title,
		in.Genre,
		in.Platform,
		in.Developer,
		in.ReleaseDate,
		decimalArg(in.Price),
		in.Description,
		in.ImageURL,
		decimalArg(in.Rating),
		toMicros(now),
		id,
	)
	if err != nil {
		return wrapErr("update game", err)
	}
	return checkAffected(res)
}

func (s *SQLiteGameStore) DeleteGame(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete game", err)
	}
	return checkAffected(res)
}

func (s *SQLiteGameStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteGameStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("rows affected", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteGame(row sqlScanner) (*models.Game, error) {
	game := &models.Game{}
	var createdAt, updatedAt int64
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
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	game.CreatedAt = fromMicros(createdAt)
	game.UpdatedAt = fromMicros(updatedAt)
	return game, nil
}
