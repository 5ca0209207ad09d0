package service

import (
	"context"
	"time"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/internal/config"
	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/pkg/logger"
	memoryrepo "resumegpt-be/internal/repository/memory"
	"resumegpt-be/internal/repository/specification"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/pkg/conversation"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/rag/search"
	"resumegpt-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, resumeId uuid.UUID) (*dto.CreateSessionResponse, error)
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	ClearMemory(ctx context.Context, sessionId string) error
	SwitchMemory(ctx context.Context, req *dto.SwitchMemoryRequest) error
	MemorySummary(ctx context.Context, sessionId string) (*dto.MemorySummaryResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	sessionRepo       *memoryrepo.SessionRepository
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	aiConfig          config.AIConfig
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memoryrepo.SessionRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	aiConfig config.AIConfig,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		sessionRepo:       sessionRepo,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		aiConfig:          aiConfig,
		logger:            logger,
	}
}

func (s *chatService) CreateSession(ctx context.Context, resumeId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: resumeId})
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, &apperror.NotFoundError{Resource: "resume"}
	}

	retriever := search.NewRetriever(s.embeddingProvider, s.uowFactory, resumeId)
	chat, err := conversation.NewSession(
		retriever,
		s.llmProvider,
		s.aiConfig.MemoryVariant,
		conversation.WithTopK(s.aiConfig.RetrievalTopK),
		conversation.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	session := &store.Session{
		ID:        uuid.NewString(),
		ResumeID:  resumeId.String(),
		Chat:      chat,
		CreatedAt: time.Now(),
	}
	s.sessionRepo.Save(session)

	return &dto.CreateSessionResponse{Id: session.ID}, nil
}

func (s *chatService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, &apperror.NotFoundError{Resource: "session"}
	}

	// An explicit memory_type that differs from the active one switches
	// the policy first. The switch discards prior history.
	if req.MemoryType != "" && req.MemoryType != session.Chat.Variant() {
		if err := session.Chat.SwitchMemoryPolicy(req.MemoryType); err != nil {
			return nil, err
		}
		s.logger.Info("chat", "memory policy switched", map[string]interface{}{
			"session_id":  req.SessionId,
			"memory_type": req.MemoryType,
		})
	}

	result, err := session.Chat.Ask(ctx, req.Question)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SourceDTO, len(result.FragmentsUsed))
	for i, f := range result.FragmentsUsed {
		sources[i] = dto.SourceDTO{
			SourceId: f.SourceID,
			Text:     f.Text,
		}
	}

	return &dto.AskResponse{
		SessionId: req.SessionId,
		Question:  req.Question,
		Answer:    result.Answer,
		Sources:   sources,
		TurnCount: result.TurnCount,
	}, nil
}

func (s *chatService) ClearMemory(ctx context.Context, sessionId string) error {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return &apperror.NotFoundError{Resource: "session"}
	}
	session.Chat.ClearMemory()
	return nil
}

func (s *chatService) SwitchMemory(ctx context.Context, req *dto.SwitchMemoryRequest) error {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return &apperror.NotFoundError{Resource: "session"}
	}
	return session.Chat.SwitchMemoryPolicy(req.MemoryType)
}

func (s *chatService) MemorySummary(ctx context.Context, sessionId string) (*dto.MemorySummaryResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, &apperror.NotFoundError{Resource: "session"}
	}

	summary := session.Chat.Summary()
	recent := make([]dto.TurnDTO, len(summary.RecentTurns))
	for i, t := range summary.RecentTurns {
		recent[i] = dto.TurnDTO{
			Question: t.Question,
			Answer:   t.Answer,
			Ordinal:  t.Ordinal,
		}
	}

	return &dto.MemorySummaryResponse{
		SessionId:       sessionId,
		TurnCount:       summary.TurnCount,
		MemoryType:      summary.Variant,
		RecentTurns:     recent,
		EstimatedTokens: summary.ApproxSizeEstimate,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionId string) error {
	if _, found := s.sessionRepo.Get(sessionId); !found {
		return &apperror.NotFoundError{Resource: "session"}
	}
	s.sessionRepo.Delete(sessionId)
	return nil
}
