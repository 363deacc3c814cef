// Package eventbus connects the module routers to NATS JetStream through
// watermill. The gateway process publishes interaction request events here;
// this backend consumes them and publishes outcome events back.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus is the publisher/subscriber pair handed to module routers. It
// implements watermill's Publisher and Subscriber so it can be passed
// directly to router.AddHandler.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	JetStream() jetstream.JetStream
	Close() error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger
}

// NewEventBus connects to NATS JetStream and builds the watermill
// publisher/subscriber pair over it.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to initialize JetStream", slog.Any("error", err))
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &wnats.NATSMarshaler{}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to create watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		publisher.Close()
		logger.ErrorContext(ctx, "Failed to create watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		js:         js,
		natsConn:   natsConn,
		logger:     logger,
	}, nil
}

// Publish sends messages to topic. When topic is empty (the router's
// transformation handlers publish this way) the destination is read from
// each message's "subject" metadata.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}

		dest := topic
		if dest == "" {
			dest = msg.Metadata.Get("subject")
		}
		if dest == "" {
			return fmt.Errorf("message %s has no destination topic", msg.UUID)
		}

		eb.logger.Debug("Publishing message",
			slog.String("subject", dest),
			slog.String("uuid", msg.UUID),
		)
		if err := eb.publisher.Publish(dest, msg); err != nil {
			eb.logger.Error("Failed to publish message",
				slog.String("subject", dest),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to publish to %q: %w", dest, err)
		}
	}
	return nil
}

// Subscribe returns the message channel for topic.
func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing to subject", slog.String("subject", topic))
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %s: %w", topic, err)
	}
	return messages, nil
}

// JetStream exposes the stream-management handle for startup bootstrap.
func (eb *eventBus) JetStream() jetstream.JetStream {
	return eb.js
}

// Close shuts down the subscriber, publisher, and connection in that order.
func (eb *eventBus) Close() error {
	var firstErr error
	if err := eb.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := eb.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	eb.natsConn.Close()
	return firstErr
}
