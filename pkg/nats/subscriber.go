package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/grayfactory/superbowmvp-v4/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// RecommendationHandler processes one recommendation snapshot pulled off the bus.
type RecommendationHandler func(ctx context.Context, event events.RecommendationCreated) error

// Subscriber consumes recommendation events from the NATS "EVENTS" stream.
// Used by downstream workers, not by the API process itself.
type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(url string) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Subscriber{nc: nc, js: js}, nil
}

// SubscribeRecommendations registers a durable consumer for recommendation
// events. Failed handlers Nak so the message is redelivered.
func (s *Subscriber) SubscribeRecommendations(durableName string, handler RecommendationHandler) error {
	ctx := context.Background()
	subject := fmt.Sprintf("events.%s", events.EventTypeRecommendationCreated)

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, "EVENTS", jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		var event events.RecommendationCreated
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			// A snapshot that never parses will never parse. Ack it away.
			log.Printf("Error unmarshalling recommendation event: %v", err)
			msg.Ack()
			return
		}

		if err := handler(context.Background(), event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			msg.Nak()
			return
		}

		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	log.Printf("Subscribed to %s with durable %s", subject, durableName)
	return nil
}

// Close closes the connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
