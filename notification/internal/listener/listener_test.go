package listener

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/money"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/order/pkg/event"
)

func TestOrderListener(t *testing.T) {
	server, client := testutil.StartRedis(t)
	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan event.OrderCreated, 1)
	listener := NewOrderListener(client, func(c context.Context, e event.OrderCreated) error {
		received <- e
		return LogOrderCreated(c, e)
	})

	done := make(chan error, 1)
	go func() { done <- listener.Listen(c) }()

	require.Eventually(t, func() bool {
		return server.PubSubNumSub(constants.ChannelOrderCreated)[constants.ChannelOrderCreated] == 1
	}, 5*time.Second, 10*time.Millisecond)

	server.Publish(constants.ChannelOrderCreated, "not json")

	published := event.OrderCreated{
		OrderID:     uuid.New(),
		UserID:      uuid.New(),
		TotalAmount: money.NewAmount(decimal.RequireFromString("24.98")),
		Currency:    "USD",
		ItemsCount:  2,
		CreatedAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(published)
	require.NoError(t, err)
	server.Publish(constants.ChannelOrderCreated, string(payload))

	select {
	case got := <-received:
		assert.Equal(t, published.OrderID, got.OrderID)
		assert.Equal(t, "24.98", got.TotalAmount.String())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}
