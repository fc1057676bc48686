package service

import (
	"context"
	"time"

	"github.com/avvvet/gamehub-services/internal/comm"
	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	log "github.com/sirupsen/logrus"
)

// GameWriter is the write side of the game store.
type GameWriter interface {
	CreateGame(ctx context.Context, in models.GameInput, now time.Time) (int64, error)
	UpdateGame(ctx context.Context, id int64, in models.GameInput, now time.Time) error
	DeleteGame(ctx context.Context, id int64) error
}

// EventPublisher receives an event after every committed mutation.
type EventPublisher interface {
	PublishGameEvent(ctx context.Context, event comm.GameEvent) error
}

type CommandOption func(*GameCommandService)

// WithClock replaces the wall clock used for created_at and updated_at.
func WithClock(now func() time.Time) CommandOption {
	return func(s *GameCommandService) {
		s.now = now
	}
}

func WithPublisher(p EventPublisher) CommandOption {
	return func(s *GameCommandService) {
		s.publisher = p
	}
}

type GameCommandService struct {
	gameStore GameWriter
	publisher EventPublisher
	now       func() time.Time
}

func NewGameCommandService(gameStore GameWriter, opts ...CommandOption) *GameCommandService {
	s := &GameCommandService{
		gameStore: gameStore,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the required fields and stores a new game.
func (s *GameCommandService) Create(ctx context.Context, in models.GameInput) (int64, error) {
	if err := validateRequired(in); err != nil {
		return 0, err
	}

	now := s.timestamp()
	id, err := s.gameStore.CreateGame(ctx, in, now)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, comm.NewGameEvent(comm.GameCreated, id, now))
	return id, nil
}

// Update replaces every mutable field of game id with in. Absent optional
// fields are cleared.
func (s *GameCommandService) Update(ctx context.Context, id int64, in models.GameInput) error {
	now := s.timestamp()
	if err := s.gameStore.UpdateGame(ctx, id, in, now); err != nil {
		return err
	}

	s.publish(ctx, comm.NewGameEvent(comm.GameUpdated, id, now))
	return nil
}

func (s *GameCommandService) Delete(ctx context.Context, id int64) error {
	if err := s.gameStore.DeleteGame(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, comm.NewGameEvent(comm.GameDeleted, id, s.timestamp()))
	return nil
}

// timestamp is the current time at the precision the stores keep.
func (s *GameCommandService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *GameCommandService) publish(ctx context.Context, event comm.GameEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishGameEvent(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"event":   event.Type,
			"game_id": event.GameID,
		}).Errorf("failed to publish game event: %v", err)
	}
}

func validateRequired(in models.GameInput) error {
	values := []*string{in.Title, in.Genre, in.Platform}

	var missing []string
	for i, v := range values {
		if v == nil || *v == "" {
			missing = append(missing, RequiredFields[i])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
