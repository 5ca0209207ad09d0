package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResumeFragment struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ResumeId       uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
