package comm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Catalog event types.
const (
	GameCreated = "game.created"
	GameUpdated = "game.updated"
	GameDeleted = "game.deleted"
)

// WSMessage is the envelope pushed to websocket clients.
type WSMessage struct {
	Type string          `json:"type"` // e.g. "game.created", "hello"
	Data json.RawMessage `json:"data"`
}

// GameEvent announces a committed change to one catalog entry.
type GameEvent struct {
	ID     string    `json:"id"` // event id
	Type   string    `json:"type"`
	GameID int64     `json:"game_id"`
	At     time.Time `json:"at"`
}

func NewGameEvent(eventType string, gameID int64, at time.Time) GameEvent {
	return GameEvent{
		ID:     uuid.New().String(),
		Type:   eventType,
		GameID: gameID,
		At:     at,
	}
}

// Envelope wraps the event for the websocket feed.
func (e GameEvent) Envelope() (WSMessage, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return WSMessage{}, err
	}
	return WSMessage{Type: e.Type, Data: data}, nil
}

// Hello is the first message a websocket client receives.
type Hello struct {
	SocketId   string `json:"socketid"`
	InstanceId string `json:"instanceid"`
}
