package publisher

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

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) PublishOrderCreated(c context.Context, e event.OrderCreated) error {
	c, span := otel.Tracer.Start(c, "RedisPublisher PublishOrderCreated")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisPublisher PublishOrderCreated").
		Str(log.KeyChannel, constants.ChannelOrderCreated).
		Str(log.KeyOrderID, e.OrderID.String()).
		Logger()

	data, err := json.Marshal(e)
	if err != nil {
		err = fmt.Errorf("failed marshaling event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "publishing event").Logger()
	logger.Trace().Msg("publishing event")
	receivers, err := p.client.Publish(c, constants.ChannelOrderCreated, data).Result()
	if err != nil {
		err = fmt.Errorf("failed publishing event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int64("receivers", receivers).Msg("published event")

	return nil
}
