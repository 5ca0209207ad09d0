package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByResumeID filters fragments by owning resume
type ByResumeID struct {
	ResumeID uuid.UUID
}

func (s ByResumeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resume_id = ?", s.ResumeID)
}
