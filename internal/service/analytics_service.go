package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/pkg/events"
	pkgNats "github.com/grayfactory/superbowmvp-v4/pkg/nats"
)

// IAnalyticsService drains recommendation snapshots off the in-process bus,
// persists them and forwards them to NATS. Everything here is best-effort:
// a failure is logged and the snapshot dropped, never retried into the
// user's request path.
type IAnalyticsService interface {
	Consume(ctx context.Context) error
}

type analyticsService struct {
	pubSub    *gochannel.GoChannel
	logRepo   contract.RecommendationLogRepository
	publisher *pkgNats.Publisher
	log       logger.ILogger
}

func NewAnalyticsService(
	pubSub *gochannel.GoChannel,
	logRepo contract.RecommendationLogRepository,
	publisher *pkgNats.Publisher,
	log logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		pubSub:    pubSub,
		logRepo:   logRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *analyticsService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, events.TopicRecommendationCreated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *analyticsService) processMessage(ctx context.Context, msg *message.Message) {
	var snapshot events.RecommendationCreated
	if err := json.Unmarshal(msg.Payload, &snapshot); err != nil {
		s.log.Error("analytics", "unparseable recommendation snapshot", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if err := s.logRepo.Create(ctx, toLogEntity(snapshot)); err != nil {
		s.log.Warn("analytics", "failed to persist recommendation log", map[string]interface{}{"error": err.Error()})
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, snapshot.AsEvent()); err != nil {
			s.log.Warn("analytics", "failed to forward event to NATS", map[string]interface{}{"error": err.Error()})
		}
	}

	// Best-effort by contract: never Nack a snapshot back into the loop.
	msg.Ack()
}

func toLogEntity(snapshot events.RecommendationCreated) *entity.RecommendationLog {
	log := &entity.RecommendationLog{
		LogID:           uuid.New(),
		CreatedAt:       snapshot.OccurredAt,
		ProfileSnapshot: snapshot.Profile,
		ContextSnapshot: snapshot.Context,
		FiltersSnapshot: snapshot.Filters,
		ContextID:       snapshot.Context.ContextID,
		AgeFit:          snapshot.Profile.AgeFit,
		JawHardnessFit:  snapshot.Profile.JawHardnessFit,
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	for _, item := range snapshot.Items {
		log.RecommendedProducts = append(log.RecommendedProducts, entity.RecommendedProduct{
			ProductID: item.ProductID,
			Score:     item.Score,
			Reasoning: item.Reasoning,
		})
	}
	if len(snapshot.Items) > 0 {
		log.TopProductID = snapshot.Items[0].ProductID
		log.TopProductScore = snapshot.Items[0].Score
	}
	return log
}
