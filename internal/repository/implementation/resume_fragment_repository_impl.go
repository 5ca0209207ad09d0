package implementation

import (
	"context"
	"errors"

	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/mapper"
	"resumegpt-be/internal/model"
	"resumegpt-be/internal/repository/contract"
	"resumegpt-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ResumeFragmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeFragmentMapper
}

func NewResumeFragmentRepository(db *gorm.DB) contract.ResumeFragmentRepository {
	return &ResumeFragmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeFragmentMapper(),
	}
}

func (r *ResumeFragmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResumeFragmentRepositoryImpl) Create(ctx context.Context, fragment *entity.ResumeFragment) error {
	m := r.mapper.ToModel(fragment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*fragment = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResumeFragmentRepositoryImpl) CreateBulk(ctx context.Context, fragments []*entity.ResumeFragment) error {
	if len(fragments) == 0 {
		return nil
	}
	models := r.mapper.ToModels(fragments)

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*fragments[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ResumeFragmentRepositoryImpl) DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("resume_id = ?", resumeId).Delete(&model.ResumeFragment{}).Error
}

func (r *ResumeFragmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeFragment, error) {
	var m model.ResumeFragment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResumeFragmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeFragment, error) {
	var models []*model.ResumeFragment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResumeFragmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ResumeFragment{}).Count(&count).Error
	return count, err
}

func (r *ResumeFragmentRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, resumeId uuid.UUID) ([]*entity.ResumeFragment, error) {
	if limit <= 0 {
		limit = 4
	}
	var models []*model.ResumeFragment

	// pgvector cosine distance: embedding_value <=> vector.
	// Soft-deleted fragments must never surface in answers.
	err := r.db.WithContext(ctx).
		Where("resume_id = ?", resumeId).
		Where("deleted_at IS NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}
