package contract

import (
	"context"

	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResumeFragmentRepository interface {
	Create(ctx context.Context, fragment *entity.ResumeFragment) error
	CreateBulk(ctx context.Context, fragments []*entity.ResumeFragment) error
	DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeFragment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeFragment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar ranks fragments of one resume by cosine distance to the
	// query embedding, nearest first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, resumeId uuid.UUID) ([]*entity.ResumeFragment, error)
}
