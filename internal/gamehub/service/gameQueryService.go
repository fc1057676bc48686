package service

import (
	"context"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
)

const (
	DefaultListLimit  = 10
	DefaultListOffset = 0
)

// GameReader is the read side of the game store.
type GameReader interface {
	ListGames(ctx context.Context, filter models.GameFilter) ([]*models.Game, error)
	GetGameByID(ctx context.Context, id int64) (*models.Game, error)
}

type GameQueryService struct {
	gameStore GameReader
}

func NewGameQueryService(gameStore GameReader) *GameQueryService {
	return &GameQueryService{gameStore: gameStore}
}

// List returns one page of the catalog, newest first. Total is the number of
// games in the returned page, not the number of matching rows.
func (s *GameQueryService) List(ctx context.Context, filter models.GameFilter) (*models.GamePage, error) {
	if filter.Limit < 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = DefaultListOffset
	}

	games, err := s.gameStore.ListGames(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.GamePage{
		Games:  games,
		Total:  len(games),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Get returns the game with id or ErrNotFound.
func (s *GameQueryService) Get(ctx context.Context, id int64) (*models.Game, error) {
	return s.gameStore.GetGameByID(ctx, id)
}
