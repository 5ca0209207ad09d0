package service

import (
	"context"
	"fmt"
	"strings"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/internal/config"
	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/repository/specification"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/rag/search"

	"github.com/google/uuid"
)

const coverLetterPromptTemplate = `You are a professional career coach. Write a compelling cover letter based on the candidate's resume and the job description.

Candidate background:
%s

Job description:
%s

Instructions:
- Highlight the candidate's most relevant experience
- Match the candidate's skills to the job requirements
- Keep a professional tone
- Write 3-4 paragraphs

Cover letter:`

const interviewPromptTemplate = `You are an experienced interviewer preparing a candidate for a %s position. Use the candidate's resume below.

Candidate background:
%s

Instructions:
- List 5 interview questions the candidate is likely to face for this role
- For each question, suggest an answer grounded in the candidate's actual experience
- Finish with 2-3 thoughtful questions the candidate should ask the interviewer

Output:`

type IGenerationService interface {
	CoverLetter(ctx context.Context, req *dto.CoverLetterRequest) (*dto.CoverLetterResponse, error)
	InterviewQuestions(ctx context.Context, req *dto.InterviewRequest) (*dto.InterviewResponse, error)
}

type generationService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	aiConfig          config.AIConfig
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	aiConfig config.AIConfig,
) IGenerationService {
	return &generationService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		aiConfig:          aiConfig,
	}
}

// resumeContext pulls the fragments most relevant to the query so the
// generation prompt stays focused instead of carrying the whole document.
func (s *generationService) resumeContext(ctx context.Context, resumeId uuid.UUID, query string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: resumeId})
	if err != nil {
		return "", err
	}
	if resume == nil {
		return "", &apperror.NotFoundError{Resource: "resume"}
	}

	retriever := search.NewRetriever(s.embeddingProvider, s.uowFactory, resumeId)
	fragments, err := retriever.Retrieve(ctx, query, s.aiConfig.RetrievalTopK)
	if err != nil {
		return "", err
	}
	if len(fragments) == 0 {
		// Embeddings may still be in flight right after upload; fall back
		// to the raw content.
		return resume.Content, nil
	}

	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

func (s *generationService) CoverLetter(ctx context.Context, req *dto.CoverLetterRequest) (*dto.CoverLetterResponse, error) {
	resumeId, err := uuid.Parse(req.ResumeId)
	if err != nil {
		return nil, &apperror.NotFoundError{Resource: "resume"}
	}

	background, err := s.resumeContext(ctx, resumeId, req.JobDescription)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(coverLetterPromptTemplate, background, req.JobDescription)
	letter, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return nil, &apperror.GenerationFailedError{Err: err}
	}

	return &dto.CoverLetterResponse{CoverLetter: letter}, nil
}

func (s *generationService) InterviewQuestions(ctx context.Context, req *dto.InterviewRequest) (*dto.InterviewResponse, error) {
	resumeId, err := uuid.Parse(req.ResumeId)
	if err != nil {
		return nil, &apperror.NotFoundError{Resource: "resume"}
	}

	background, err := s.resumeContext(ctx, resumeId, req.Role)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(interviewPromptTemplate, req.Role, background)
	questions, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return nil, &apperror.GenerationFailedError{Err: err}
	}

	return &dto.InterviewResponse{Questions: questions}, nil
}
