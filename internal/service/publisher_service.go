package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

// publishChange notifies subscribers that an entity changed. A notification
// that cannot be delivered is logged and dropped; the mutation that caused
// it has already committed.
func publishChange(ctx context.Context, log zerolog.Logger, publisher IPublisherService, entityName, action, id string) {
	payload, err := json.Marshal(dto.ChangeNotification{
		Entity:     entityName,
		Action:     action,
		Id:         id,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal change notification")
		return
	}

	if err := publisher.Publish(ctx, payload); err != nil {
		log.Error().
			Str("entity", entityName).
			Str("action", action).
			Err(err).
			Msg("publish change notification")
	}
}
