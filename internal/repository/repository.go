// Package repository defines the persistence contracts the core consumes.
// The core never depends on a concrete storage technology; implementations
// assign identities on save.
package repository

import (
	"context"
	"errors"

	"github.com/mkravets/cv-match/internal/domain"
)

// ErrNotFound is returned when no entity exists for the given ID.
var ErrNotFound = errors.New("entity not found")

type CVRepository interface {
	Save(ctx context.Context, cv *domain.CV) (*domain.CV, error)
	FindByID(ctx context.Context, id string) (*domain.CV, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.CV, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type JobRepository interface {
	Save(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MatchRepository interface {
	Save(ctx context.Context, match *domain.Match) (*domain.Match, error)
	FindByID(ctx context.Context, id string) (*domain.Match, error)
	FindByCVAndJob(ctx context.Context, cvID, jobID string) ([]*domain.Match, error)
	FindByCVID(ctx context.Context, cvID string) ([]*domain.Match, error)
	FindByJobID(ctx context.Context, jobID string) ([]*domain.Match, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Match, error)
	Delete(ctx context.Context, id string) (bool, error)
}
