package listener

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/order/pkg/event"
)

type HandlerFunc func(c context.Context, e event.OrderCreated) error

type OrderListener struct {
	client  *redis.Client
	handler HandlerFunc
}

func NewOrderListener(client *redis.Client, handler HandlerFunc) *OrderListener {
	return &OrderListener{client: client, handler: handler}
}

// LogOrderCreated is the default handler, it only writes the event to the log.
func LogOrderCreated(c context.Context, e event.OrderCreated) error {
	zerolog.Ctx(c).Info().
		Str(log.KeyTag, "LogOrderCreated").
		Str(log.KeyOrderID, e.OrderID.String()).
		Str(log.KeyUserID, e.UserID.String()).
		Str(log.KeyTotalAmount, e.TotalAmount.String()).
		Str(log.KeyCurrency, e.Currency).
		Int(log.KeyOrderItemsCount, e.ItemsCount).
		Msg("order created")
	return nil
}

// Listen consumes order.created until c is done. Malformed payloads and handler
// errors are logged and skipped.
func (l *OrderListener) Listen(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderListener Listen").
		Str(log.KeyChannel, constants.ChannelOrderCreated).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "subscribing").Logger()
	logger.Info().Msg("subscribing")
	sub := l.client.Subscribe(c, constants.ChannelOrderCreated)
	defer sub.Close()
	if _, err := sub.Receive(c); err != nil {
		err = fmt.Errorf("failed subscribing with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("subscribed")

	logger = logger.With().Str(log.KeyProcess, "listening").Logger()
	messages := sub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped listening")
			return nil
		case msg, ok := <-messages:
			if !ok {
				logger.Info().Msg("subscription closed")
				return nil
			}
			l.handle(logger.WithContext(c), msg)
		}
	}
}

func (l *OrderListener) handle(c context.Context, msg *redis.Message) {
	c, span := otel.Tracer.Start(c, "OrderListener handle")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "handling event").Logger()

	e := event.OrderCreated{}
	if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
		err = fmt.Errorf("failed decoding event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Str(log.KeyEvent, msg.Payload).Msg(err.Error())
		return
	}
	if err := l.handler(logger.WithContext(c), e); err != nil {
		err = fmt.Errorf("failed handling event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
}
