package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avvvet/gamehub-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// GameEventsSubject carries catalog events between gamehub instances.
const GameEventsSubject = "gamehub.games.events"

// Broker relays catalog events over NATS. Every instance publishes its own
// mutations and hands whatever it receives to Deliver.
type Broker struct {
	Conn    *nats.Conn
	Deliver func(comm.GameEvent)
}

func NewBroker(nc *nats.Conn, deliver func(comm.GameEvent)) *Broker {
	return &Broker{
		Conn:    nc,
		Deliver: deliver,
	}
}

func (b *Broker) PublishGameEvent(_ context.Context, event comm.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal game event: %w", err)
	}
	if err := b.Conn.Publish(GameEventsSubject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", GameEventsSubject, err)
	}
	return nil
}

// SubscribeGameEvents starts delivering events published by any instance.
func (b *Broker) SubscribeGameEvents() (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(GameEventsSubject, b.handleMessage)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// handles game events coming from nats
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	event := comm.GameEvent{}
	if err := json.Unmarshal(msgNat.Data, &event); err != nil {
		log.Errorf("Error decoding nats message on %s: %s", msgNat.Subject, err)
		return
	}

	switch event.Type {
	case comm.GameCreated, comm.GameUpdated, comm.GameDeleted:
		b.Deliver(event)
	default:
		log.Warnf("unknown game event received: %s", event.Type)
	}
}
