package unitofwork

import (
	"context"

	"resumegpt-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ResumeRepository() contract.ResumeRepository
	ResumeFragmentRepository() contract.ResumeFragmentRepository
}
