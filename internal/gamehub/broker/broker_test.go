package broker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/avvvet/gamehub-services/internal/comm"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageDeliversKnownEvents(t *testing.T) {
	var got []comm.GameEvent
	b := NewBroker(nil, func(e comm.GameEvent) { got = append(got, e) })

	for _, typ := range []string{comm.GameCreated, comm.GameUpdated, comm.GameDeleted} {
		event := comm.NewGameEvent(typ, 3, time.Now().UTC())
		data, err := json.Marshal(event)
		require.NoError(t, err)

		b.handleMessage(&nats.Msg{Subject: GameEventsSubject, Data: data})
	}

	require.Len(t, got, 3)
	assert.Equal(t, comm.GameCreated, got[0].Type)
	assert.Equal(t, comm.GameDeleted, got[2].Type)
	assert.Equal(t, int64(3), got[1].GameID)
}

func TestHandleMessageDropsUnknownAndMalformed(t *testing.T) {
	delivered := 0
	b := NewBroker(nil, func(comm.GameEvent) { delivered++ })

	b.handleMessage(&nats.Msg{Subject: GameEventsSubject, Data: []byte("{not json")})
	b.handleMessage(&nats.Msg{Subject: GameEventsSubject, Data: []byte(`{"type":"game.renamed","game_id":1}`)})

	assert.Zero(t, delivered)
}
