package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/grayfactory/superbowmvp-v4/internal/config"
	"github.com/grayfactory/superbowmvp-v4/internal/controller"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/cache"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/implementation"
	"github.com/grayfactory/superbowmvp-v4/internal/service"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm/factory"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/occasion"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/ranking"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/retrieval"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/turn"

	pktNats "github.com/grayfactory/superbowmvp-v4/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	AnalyzerController controller.IAnalyzerController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	AnalyticsService service.IAnalyticsService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Repositories
	productRepo := implementation.NewProductRepository(db)
	contextRepo := cache.NewCachedContextRepository(
		implementation.NewContextRepository(db),
		rdb,
		time.Duration(cfg.Catalog.CacheTTLMinutes)*time.Minute,
		sysLogger,
	)
	logRepo := implementation.NewRecommendationLogRepository(db)

	// 4. Recommendation Pipeline
	orchestrator := turn.NewOrchestrator(
		llmProvider,
		contextRepo,
		occasion.NewResolver(contextRepo),
		retrieval.NewRetriever(productRepo, cfg.Catalog.QueryLimit, sysLogger),
		ranking.NewAssembler(llmProvider, sysLogger),
		turn.SentinelDetector{},
		pubSub,
		sysLogger,
	)

	// 5. Services
	chatService := service.NewChatService(orchestrator)
	analyzerService := service.NewAnalyzerService()
	adminService := service.NewAdminService(logRepo, sysLogger)
	analyticsService := service.NewAnalyticsService(pubSub, logRepo, natsPub, sysLogger)

	// 6. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		AnalyzerController: controller.NewAnalyzerController(analyzerService),
		AdminController:    controller.NewAdminController(adminService),

		AnalyticsService: analyticsService,
	}
}
