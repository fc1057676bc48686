package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/gamehub-services/internal/gamehub/db"
	"github.com/avvvet/gamehub-services/internal/gamehub/models"
)

// ErrNotFound is returned when no game row matches the requested id.
var ErrNotFound = errors.New("game not found")

// Store is the persistent backing of the games table.
type Store interface {
	// EnsureSchema creates the games table when it is missing.
	EnsureSchema(ctx context.Context) error
	// SeedIfEmpty inserts the sample catalog only into an empty table and
	// reports how many rows it inserted.
	SeedIfEmpty(ctx context.Context) (int, error)

	ListGames(ctx context.Context, filter models.GameFilter) ([]*models.Game, error)
	GetGameByID(ctx context.Context, id int64) (*models.Game, error)
	CreateGame(ctx context.Context, in models.GameInput, now time.Time) (int64, error)
	UpdateGame(ctx context.Context, id int64, in models.GameInput, now time.Time) error
	DeleteGame(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the store at location. postgres:// and postgresql:// URLs
// use a pgx pool, anything else is treated as a SQLite file path.
func Open(ctx context.Context, location string) (Store, error) {
	location = strings.TrimSpace(location)
	if isPostgresURL(location) {
		pool, err := db.ConnectPostgres(ctx, location)
		if err != nil {
			return nil, err
		}
		return NewGameStore(pool), nil
	}

	path := strings.TrimPrefix(location, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	sqlDB, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteGameStore(sqlDB), nil
}

// Backend names the engine behind location, for logs.
func Backend(location string) string {
	if isPostgresURL(strings.TrimSpace(location)) {
		return "postgres"
	}
	return "sqlite"
}

func isPostgresURL(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
