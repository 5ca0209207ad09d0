package service

import (
	"context"
	"encoding/json"
	"time"

	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/pkg/logger"
	"resumegpt-be/internal/repository/specification"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking parameters for resume content. 1000 chars with 200 overlap
// keeps each fragment self-contained while staying well inside embedding
// context limits.
const (
	chunkSize    = 1000
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedResumeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "processing resume embedding", map[string]interface{}{
		"resume_id": payload.ResumeId,
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: payload.ResumeId})
	if err != nil {
		cs.logger.Error("consumer", "failed to load resume", map[string]interface{}{
			"resume_id": payload.ResumeId,
			"error":     err.Error(),
		})
		msg.Nack() // retriable
		return
	}
	if resume == nil {
		cs.logger.Warn("consumer", "resume not found, dropping message", map[string]interface{}{
			"resume_id": payload.ResumeId,
		})
		msg.Ack() // Resume deleted? Ack.
		return
	}

	chunks := utils.SplitText(resume.Content, chunkSize, chunkOverlap)
	cs.logger.Info("consumer", "resume content split", map[string]interface{}{
		"resume_id": payload.ResumeId,
		"chunks":    len(chunks),
	})

	var fragments []*entity.ResumeFragment
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("consumer", "failed to embed chunk", map[string]interface{}{
				"resume_id": payload.ResumeId,
				"chunk":     i,
				"error":     err.Error(),
			})
			msg.Nack()
			return
		}

		fragments = append(fragments, &entity.ResumeFragment{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			ResumeId:       resume.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("consumer", "failed to begin transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-uploads replace the old fragments wholesale
	if err := uow.ResumeFragmentRepository().DeleteByResumeId(ctx, resume.Id); err != nil {
		cs.logger.Error("consumer", "failed to delete old fragments", map[string]interface{}{
			"resume_id": payload.ResumeId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	if len(fragments) > 0 {
		if err := uow.ResumeFragmentRepository().CreateBulk(ctx, fragments); err != nil {
			cs.logger.Error("consumer", "failed to create fragments", map[string]interface{}{
				"resume_id": payload.ResumeId,
				"error":     err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("consumer", "failed to commit transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "resume processed", map[string]interface{}{
		"resume_id": payload.ResumeId,
		"fragments": len(fragments),
	})
	msg.Ack()
}
