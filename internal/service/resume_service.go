package service

import (
	"context"
	"encoding/json"
	"time"

	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/pkg/logger"
	"resumegpt-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IResumeService interface {
	Upload(ctx context.Context, filename string, content string) (*dto.UploadResumeResponse, error)
}

type resumeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	chatService      IChatService
	logger           logger.ILogger
}

func NewResumeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	chatService IChatService,
	logger logger.ILogger,
) IResumeService {
	return &resumeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		chatService:      chatService,
		logger:           logger,
	}
}

// Upload stores the resume, queues its content for embedding, and opens a
// conversation session bound to it. Embedding runs asynchronously; the
// response reports the document as processing.
func (s *resumeService) Upload(ctx context.Context, filename string, content string) (*dto.UploadResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume := entity.Resume{
		Id:        uuid.New(),
		Filename:  filename,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uow.ResumeRepository().Create(ctx, &resume); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedResumeMessage{
		ResumeId: resume.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	session, err := s.chatService.CreateSession(ctx, resume.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resume", "resume uploaded", map[string]interface{}{
		"resume_id":  resume.Id,
		"session_id": session.Id,
		"filename":   filename,
		"size":       len(content),
	})

	return &dto.UploadResumeResponse{
		ResumeId:  resume.Id.String(),
		SessionId: session.Id,
		Filename:  filename,
		FileSize:  len(content),
		Status:    "processing",
	}, nil
}
