package bootstrap

import (
	"log"

	"resumegpt-be/internal/config"
	"resumegpt-be/internal/controller"
	"resumegpt-be/internal/pkg/logger"
	memoryrepo "resumegpt-be/internal/repository/memory"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/internal/service"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ResumeController     controller.IResumeController
	ChatController       controller.IChatController
	GenerationController controller.IGenerationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.DeepSeek,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory session storage
	sessionRepo := memoryrepo.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedResumeTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedResumeTopic, uowFactory, embeddingProvider, sysLogger)
	chatService := service.NewChatService(uowFactory, sessionRepo, embeddingProvider, llmProvider, cfg.Ai, sysLogger)
	resumeService := service.NewResumeService(uowFactory, publisherService, chatService, sysLogger)
	generationService := service.NewGenerationService(uowFactory, embeddingProvider, llmProvider, cfg.Ai)

	// 5. Controllers
	return &Container{
		ResumeController:     controller.NewResumeController(resumeService),
		ChatController:       controller.NewChatController(chatService),
		GenerationController: controller.NewGenerationController(generationService),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
