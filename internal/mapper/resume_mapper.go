package mapper

import (
	"time"

	"resumegpt-be/internal/entity"
	"resumegpt-be/internal/model"

	"gorm.io/gorm"
)

type ResumeMapper struct{}

func NewResumeMapper() *ResumeMapper {
	return &ResumeMapper{}
}

func (m *ResumeMapper) ToEntity(e *model.Resume) *entity.Resume {
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

	return &entity.Resume{
		Id:        e.Id,
		Filename:  e.Filename,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *ResumeMapper) ToModel(e *entity.Resume) *model.Resume {
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

	return &model.Resume{
		Id:        e.Id,
		Filename:  e.Filename,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ResumeMapper) ToEntities(resumes []*model.Resume) []*entity.Resume {
	entities := make([]*entity.Resume, len(resumes))
	for i, e := range resumes {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
