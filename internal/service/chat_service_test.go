package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/internal/config"
	"resumegpt-be/internal/dto"
	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/repository/contract"
	memoryrepo "resumegpt-be/internal/repository/memory"
	"resumegpt-be/internal/repository/specification"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory doubles for the persistence layer. They cover only what the
// chat flow touches.

type fakeResumeRepo struct {
	resumes map[uuid.UUID]*entity.Resume
}

func (r *fakeResumeRepo) Create(ctx context.Context, resume *entity.Resume) error {
	r.resumes[resume.Id] = resume
	return nil
}

func (r *fakeResumeRepo) Update(ctx context.Context, resume *entity.Resume) error {
	r.resumes[resume.Id] = resume
	return nil
}

func (r *fakeResumeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.resumes, id)
	return nil
}

func (r *fakeResumeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.resumes[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeResumeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error) {
	var out []*entity.Resume
	for _, e := range r.resumes {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeResumeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.resumes)), nil
}

type fakeFragmentRepo struct {
	fragments []*entity.ResumeFragment
	searchErr error
}

func (r *fakeFragmentRepo) Create(ctx context.Context, fragment *entity.ResumeFragment) error {
	r.fragments = append(r.fragments, fragment)
	return nil
}

func (r *fakeFragmentRepo) CreateBulk(ctx context.Context, fragments []*entity.ResumeFragment) error {
	r.fragments = append(r.fragments, fragments...)
	return nil
}

func (r *fakeFragmentRepo) DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error {
	var kept []*entity.ResumeFragment
	for _, f := range r.fragments {
		if f.ResumeId != resumeId {
			kept = append(kept, f)
		}
	}
	r.fragments = kept
	return nil
}

func (r *fakeFragmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeFragment, error) {
	if len(r.fragments) == 0 {
		return nil, nil
	}
	return r.fragments[0], nil
}

func (r *fakeFragmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeFragment, error) {
	return r.fragments, nil
}

func (r *fakeFragmentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.fragments)), nil
}

func (r *fakeFragmentRepo) SearchSimilar(ctx context.Context, emb []float32, limit int, resumeId uuid.UUID) ([]*entity.ResumeFragment, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	var out []*entity.ResumeFragment
	for _, f := range r.fragments {
		if f.ResumeId == resumeId {
			out = append(out, f)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUnitOfWork struct {
	resumeRepo   *fakeResumeRepo
	fragmentRepo *fakeFragmentRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) ResumeRepository() contract.ResumeRepository {
	return u.resumeRepo
}

func (u *fakeUnitOfWork) ResumeFragmentRepository() contract.ResumeFragmentRepository {
	return u.fragmentRepo
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeEmbedding struct{}

func (f *fakeEmbedding) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type scriptedLLM struct {
	answer string
	err    error
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.answer, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.answer, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newChatFixture(t *testing.T) (IChatService, uuid.UUID) {
	t.Helper()

	resumeId := uuid.New()
	resumeRepo := &fakeResumeRepo{resumes: map[uuid.UUID]*entity.Resume{
		resumeId: {Id: resumeId, Filename: "resume.txt", Content: "ten years of Go experience"},
	}}
	fragmentRepo := &fakeFragmentRepo{fragments: []*entity.ResumeFragment{
		{Id: uuid.New(), Document: "ten years of Go experience", ResumeId: resumeId, ChunkIndex: 0},
	}}

	uowFactory := &fakeUowFactory{uow: &fakeUnitOfWork{
		resumeRepo:   resumeRepo,
		fragmentRepo: fragmentRepo,
	}}

	aiConfig := config.AIConfig{
		MemoryVariant: memory.VariantBuffer,
		RetrievalTopK: 4,
	}

	svc := NewChatService(
		uowFactory,
		memoryrepo.NewSessionRepository(),
		&fakeEmbedding{},
		&scriptedLLM{answer: "they have ten years of Go experience"},
		aiConfig,
		nopLogger{},
	)
	return svc, resumeId
}

func TestChatServiceAskFlow(t *testing.T) {
	svc, resumeId := newChatFixture(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, resumeId)
	require.NoError(t, err)

	res, err := svc.Ask(ctx, &dto.AskRequest{
		SessionId: session.Id,
		Question:  "how much Go experience?",
	})
	require.NoError(t, err)
	assert.Equal(t, "they have ten years of Go experience", res.Answer)
	assert.Equal(t, 1, res.TurnCount)
	require.NotEmpty(t, res.Sources)
	assert.Equal(t, fmt.Sprintf("%s#0", resumeId), res.Sources[0].SourceId)
}

func TestChatServiceUnknownSession(t *testing.T) {
	svc, _ := newChatFixture(t)
	ctx := context.Background()

	var notFound *apperror.NotFoundError

	_, err := svc.Ask(ctx, &dto.AskRequest{SessionId: "nope", Question: "hi"})
	assert.True(t, errors.As(err, &notFound))

	err = svc.ClearMemory(ctx, "nope")
	assert.True(t, errors.As(err, &notFound))

	_, err = svc.MemorySummary(ctx, "nope")
	assert.True(t, errors.As(err, &notFound))
}

func TestChatServiceCreateSessionUnknownResume(t *testing.T) {
	svc, _ := newChatFixture(t)

	_, err := svc.CreateSession(context.Background(), uuid.New())
	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestChatServiceAskSwitchesMemoryType(t *testing.T) {
	svc, resumeId := newChatFixture(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, resumeId)
	require.NoError(t, err)

	_, err = svc.Ask(ctx, &dto.AskRequest{SessionId: session.Id, Question: "first"})
	require.NoError(t, err)

	// Asking with a different memory_type discards earlier history
	res, err := svc.Ask(ctx, &dto.AskRequest{
		SessionId:  session.Id,
		Question:   "second",
		MemoryType: memory.VariantWindow,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TurnCount)

	summary, err := svc.MemorySummary(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, memory.VariantWindow, summary.MemoryType)
}

func TestChatServiceSwitchMemoryUnknownVariant(t *testing.T) {
	svc, resumeId := newChatFixture(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, resumeId)
	require.NoError(t, err)

	err = svc.SwitchMemory(ctx, &dto.SwitchMemoryRequest{
		SessionId:  session.Id,
		MemoryType: "holographic",
	})
	var invalidConfig *apperror.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalidConfig))
}

func TestChatServiceMemorySummary(t *testing.T) {
	svc, resumeId := newChatFixture(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, resumeId)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Ask(ctx, &dto.AskRequest{SessionId: session.Id, Question: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
	}

	summary, err := svc.MemorySummary(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TurnCount)
	assert.Equal(t, memory.VariantBuffer, summary.MemoryType)
	assert.Len(t, summary.RecentTurns, 2)
	assert.Equal(t, 2, summary.RecentTurns[0].Ordinal)
	assert.Equal(t, 3, summary.RecentTurns[1].Ordinal)
	assert.Greater(t, summary.EstimatedTokens, 0)
}

func TestChatServiceDeleteSession(t *testing.T) {
	svc, resumeId := newChatFixture(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, resumeId)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.Id))

	var notFound *apperror.NotFoundError
	err = svc.DeleteSession(ctx, session.Id)
	assert.True(t, errors.As(err, &notFound))
}
