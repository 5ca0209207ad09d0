package mapper

import (
	"time"

	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ResumeFragmentMapper struct{}

func NewResumeFragmentMapper() *ResumeFragmentMapper {
	return &ResumeFragmentMapper{}
}

func (m *ResumeFragmentMapper) ToEntity(e *model.ResumeFragment) *entity.ResumeFragment {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ResumeFragment{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ResumeId:       e.ResumeId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *ResumeFragmentMapper) ToModel(e *entity.ResumeFragment) *model.ResumeFragment {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ResumeFragment{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ResumeId:       e.ResumeId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ResumeFragmentMapper) ToEntities(fragments []*model.ResumeFragment) []*entity.ResumeFragment {
	entities := make([]*entity.ResumeFragment, len(fragments))
	for i, e := range fragments {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *ResumeFragmentMapper) ToModels(fragments []*entity.ResumeFragment) []*model.ResumeFragment {
	models := make([]*model.ResumeFragment, len(fragments))
	for i, e := range fragments {
		models[i] = m.ToModel(e)
	}
	return models
}
