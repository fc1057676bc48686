package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *SQLiteGameStore {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	require.NoError(t, s.EnsureSchema(context.Background()))

	sqliteStore, ok := s.(*SQLiteGameStore)
	require.True(t, ok, "expected *SQLiteGameStore, got %T", s)
	return sqliteStore
}

func gameInput(title, genre, platform string) models.GameInput {
	return models.GameInput{
		Title:    strPtr(title),
		Genre:    strPtr(genre),
		Platform: strPtr(platform),
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	s := openTempStore(t)

	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestSeedIfEmpty(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	n, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sampleGames), n)

	n, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second seed must not insert")

	games, err := s.ListGames(ctx, models.GameFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, games, len(sampleGames))
}

func TestSeedIfEmptySkipsPopulatedTable(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	_, err := s.CreateGame(ctx, gameInput("Mine", "Puzzle", "PC"), time.Now())
	require.NoError(t, err)

	n, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	games, err := s.ListGames(ctx, models.GameFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Mine", games[0].Title)
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 30, 0, 123456000, time.UTC)

	in := gameInput("Hollow Knight", "Metroidvania", "PC")
	in.Developer = strPtr("Team Cherry")
	in.ReleaseDate = strPtr("2017-02-24")
	in.Price = nullDecimal("14.99")
	in.Rating = nullDecimal("9.1")

	id, err := s.CreateGame(ctx, in, now)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetGameByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Hollow Knight", got.Title)
	assert.Equal(t, "Metroidvania", got.Genre)
	assert.Equal(t, "PC", got.Platform)
	require.NotNil(t, got.Developer)
	assert.Equal(t, "Team Cherry", *got.Developer)
	require.NotNil(t, got.ReleaseDate)
	assert.Equal(t, "2017-02-24", *got.ReleaseDate)
	require.True(t, got.Price.Valid)
	assert.True(t, got.Price.Decimal.Equal(decimal.RequireFromString("14.99")), "price = %s", got.Price.Decimal)
	require.True(t, got.Rating.Valid)
	assert.True(t, got.Rating.Decimal.Equal(decimal.RequireFromString("9.1")), "rating = %s", got.Rating.Decimal)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.ImageURL)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestGetGameByIDNotFound(t *testing.T) {
	s := openTempStore(t)

	_, err := s.GetGameByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGameReplacesAllFields(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)

	in := gameInput("Celeste", "Platformer", "PC")
	in.Developer = strPtr("Maddy Makes Games")
	in.Price = nullDecimal("19.99")
	id, err := s.CreateGame(ctx, in, created)
	require.NoError(t, err)

	err = s.UpdateGame(ctx, id, gameInput("Celeste DX", "Platformer", "Switch"), updated)
	require.NoError(t, err)

	got, err := s.GetGameByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Celeste DX", got.Title)
	assert.Equal(t, "Switch", got.Platform)
	assert.Nil(t, got.Developer, "absent optional field must become null")
	assert.False(t, got.Price.Valid)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(updated))
}

func TestUpdateGameNotFound(t *testing.T) {
	s := openTempStore(t)

	err := s.UpdateGame(context.Background(), 99, gameInput("x", "y", "z"), time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGameMissingRequiredFieldIsStoreError(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	id, err := s.CreateGame(ctx, gameInput("Tetris", "Puzzle", "Game Boy"), time.Now())
	require.NoError(t, err)

	err = s.UpdateGame(ctx, id, models.GameInput{Genre: strPtr("Puzzle"), Platform: strPtr("NES")}, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteGame(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	id, err := s.CreateGame(ctx, gameInput("Doom", "Shooter", "PC"), time.Now())
	require.NoError(t, err)

	require.NoError(t, s.DeleteGame(ctx, id))

	_, err = s.GetGameByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteGame(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound, "second delete")
}

func TestListGamesFiltersAndOrder(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	fixtures := []models.GameInput{
		gameInput("Baldur's Gate 3", "RPG", "PC"),
		gameInput("Tactics Ogre", "Tactical RPG", "PlayStation 4"),
		gameInput("Persona 5", "JRPG", "PlayStation 4"),
		gameInput("Stardew Valley", "Simulation", "PC"),
		gameInput("Undertale", "rpg", "PC"),
		gameInput("100% Orange Juice", "Board", "PC"),
	}
	for i, in := range fixtures {
		_, err := s.CreateGame(ctx, in, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	t.Run("genre substring is case sensitive", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Genre: "RPG", Limit: 10})
		require.NoError(t, err)
		require.Len(t, games, 3)
		for _, g := range games {
			assert.Contains(t, g.Genre, "RPG")
		}
	})

	t.Run("newest first", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, games, len(fixtures))
		for i := 1; i < len(games); i++ {
			assert.False(t, games[i].CreatedAt.After(games[i-1].CreatedAt),
				"game %d created after game %d", i, i-1)
		}
		assert.Equal(t, "100% Orange Juice", games[0].Title)
	})

	t.Run("genre and platform combine", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Genre: "RPG", Platform: "PlayStation", Limit: 10})
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "Persona 5", games[0].Title)
		assert.Equal(t, "Tactics Ogre", games[1].Title)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Genre: "%", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("limit and offset", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "Undertale", games[0].Title)
		assert.Equal(t, "Stardew Valley", games[1].Title)
	})

	t.Run("offset past the end", func(t *testing.T) {
		games, err := s.ListGames(ctx, models.GameFilter{Limit: 10, Offset: 50})
		require.NoError(t, err)
		assert.NotNil(t, games)
		assert.Empty(t, games)
	})
}

func TestBackend(t *testing.T) {
	assert.Equal(t, "postgres", Backend("postgres://u:p@localhost:5432/games"))
	assert.Equal(t, "postgres", Backend("postgresql://localhost/games"))
	assert.Equal(t, "sqlite", Backend("games.db"))
	assert.Equal(t, "sqlite", Backend("sqlite:///tmp/games.db"))
}
