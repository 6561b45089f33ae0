// Standalone worker that tails recommendation events off the NATS bus and
// prints them. A template for downstream consumers (BI export, alerting)
// that should not live inside the API process.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/grayfactory/superbowmvp-v4/internal/config"
	"github.com/grayfactory/superbowmvp-v4/pkg/events"
	"github.com/grayfactory/superbowmvp-v4/pkg/nats"
)

func main() {
	cfg := config.Load()

	sub, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeRecommendations("recommendation-audit", func(ctx context.Context, event events.RecommendationCreated) error {
		log.Printf("recommendation: occasion=%v items=%d relaxed_tier=%q at=%s",
			event.Context.Occasion, len(event.Items), event.RelaxedTier, event.OccurredAt.Format("15:04:05"))
		return nil
	})
	if err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Worker shutting down")
}
