package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
)

// IChangeFeedService lets the presentation layer react to data changes.
// Every committed mutation produces one notification on the feed.
type IChangeFeedService interface {
	Subscribe(ctx context.Context) (<-chan dto.ChangeNotification, error)
}

type changeFeedService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	log       zerolog.Logger
}

func NewChangeFeedService(pubSub *gochannel.GoChannel, topicName string, log zerolog.Logger) IChangeFeedService {
	return &changeFeedService{
		pubSub:    pubSub,
		topicName: topicName,
		log:       log,
	}
}

// Subscribe starts delivering change notifications. The returned channel is
// closed when ctx is cancelled.
func (cs *changeFeedService) Subscribe(ctx context.Context) (<-chan dto.ChangeNotification, error) {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return nil, err
	}

	out := make(chan dto.ChangeNotification, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			cs.forward(ctx, msg, out)
		}
	}()

	return out, nil
}

func (cs *changeFeedService) forward(ctx context.Context, msg *message.Message, out chan<- dto.ChangeNotification) {
	var notification dto.ChangeNotification
	if err := json.Unmarshal(msg.Payload, &notification); err != nil {
		cs.log.Error().
			Err(err).
			Str("payload", string(msg.Payload)).
			Msg("drop malformed change notification")
		msg.Ack()
		return
	}

	select {
	case out <- notification:
		msg.Ack()
	case <-ctx.Done():
		msg.Nack()
	}
}
