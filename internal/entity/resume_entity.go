package entity

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	Id        uuid.UUID
	Filename  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
