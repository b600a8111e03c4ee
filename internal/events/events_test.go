package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assay-backend/internal/logging"
	"assay-backend/internal/models"
)

func sampleEvent() Event {
	entry := models.CreditHistory{
		ID:              "e1",
		CustomerID:      "c1",
		Type:            models.EntryCredit,
		Amount:          decimal.NewFromInt(50),
		PreviousBalance: decimal.NewFromInt(100),
		ModeOfPayment:   models.PaymentCash,
	}
	return EntryApplied(entry, decimal.NewFromInt(150), time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestHub_BroadcastsToClients(t *testing.T) {
	hub := NewHub(logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.Run(ctx) }()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, sampleEvent()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got map[string]any
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeEntryApplied, got["type"])
	assert.Equal(t, "c1", got["customer_id"])
	assert.Equal(t, 150.0, got["new_balance"])
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(logging.Discard())
	var err error
	for i := 0; i < cap(hub.broadcast)+1; i++ {
		err = hub.Publish(context.Background(), sampleEvent())
	}
	assert.ErrorIs(t, err, ErrHubFull)
}

type recordingPublisher struct {
	got []Event
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}

	err := Multi{failing, ok, Noop{}}.Publish(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.got, 1)
	assert.Len(t, failing.got, 1)
}

func TestEncodeMessage_KeyedByCustomer(t *testing.T) {
	e := sampleEvent()
	msg, err := encodeMessage(e)
	require.NoError(t, err)

	assert.Equal(t, "c1", string(msg.Key))
	assert.Equal(t, e.OccurredAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, TypeEntryApplied, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "e1", decoded.Entry.ID)
	assert.True(t, decoded.Entry.PreviousBalance.Equal(decimal.NewFromInt(100)))
}
