package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/money"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/order/pkg/event"
)

func TestPublishOrderCreated(t *testing.T) {
	tests := []struct {
		name      string
		container bool
		client    func(t *testing.T) *redis.Client
	}{
		{
			name: "given in-process redis should deliver event to subscriber",
			client: func(t *testing.T) *redis.Client {
				_, client := testutil.StartRedis(t)
				return client
			},
		},
		{
			name:      "given redis container should deliver event to subscriber",
			container: true,
			client:    testutil.StartRedisContainer,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.container && testing.Short() {
				t.Skip("skipping container test in short mode")
			}
			c := context.Background()
			client := test.client(t)

			sub := client.Subscribe(c, constants.ChannelOrderCreated)
			t.Cleanup(func() { _ = sub.Close() })
			_, err := sub.Receive(c)
			require.NoError(t, err)

			published := event.OrderCreated{
				OrderID:     uuid.New(),
				UserID:      uuid.New(),
				TotalAmount: money.NewAmount(decimal.RequireFromString("24.98")),
				Currency:    "USD",
				ItemsCount:  2,
				CreatedAt:   time.Now().UTC().Truncate(time.Second),
			}
			require.NoError(t, NewRedisPublisher(client).PublishOrderCreated(c, published))

			select {
			case msg := <-sub.Channel():
				got := event.OrderCreated{}
				require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
				assert.Equal(t, published.OrderID, got.OrderID)
				assert.Equal(t, published.UserID, got.UserID)
				assert.Equal(t, "24.98", got.TotalAmount.String())
				assert.Equal(t, 2, got.ItemsCount)
				assert.True(t, published.CreatedAt.Equal(got.CreatedAt))
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for order.created")
			}
		})
	}
}
