// Package memory implements the repository contracts with in-process maps.
// Good enough for the CLI pipeline and for exercising the core in tests;
// a real storage engine would live in a sibling package.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/cv-match/internal/domain"
	"github.com/mkravets/cv-match/internal/repository"
)

type CVStore struct {
	mu    sync.RWMutex
	items map[string]*domain.CV
	order []string
}

func NewCVStore() *CVStore {
	return &CVStore{items: make(map[string]*domain.CV)}
}

func (s *CVStore) Save(_ context.Context, cv *domain.CV) (*domain.CV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if cv.ID == "" {
		cv.ID = uuid.NewString()
		s.order = append(s.order, cv.ID)
		if cv.CreatedAt == nil {
			cv.CreatedAt = &now
		}
	}
	cv.UpdatedAt = &now

	s.items[cv.ID] = cv
	return cv, nil
}

func (s *CVStore) FindByID(_ context.Context, id string) (*domain.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cv, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cv, nil
}

func (s *CVStore) FindAll(_ context.Context, limit, offset int) ([]*domain.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CV, 0)
	for _, id := range page(s.order, limit, offset) {
		result = append(result, s.items[id])
	}
	return result, nil
}

func (s *CVStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	s.order = remove(s.order, id)
	return true, nil
}

type JobStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Job
	order []string
}

func NewJobStore() *JobStore {
	return &JobStore{items: make(map[string]*domain.Job)}
}

func (s *JobStore) Save(_ context.Context, job *domain.Job) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if job.ID == "" {
		job.ID = uuid.NewString()
		s.order = append(s.order, job.ID)
		if job.CreatedAt == nil {
			job.CreatedAt = &now
		}
	}
	job.UpdatedAt = &now

	s.items[job.ID] = job
	return job, nil
}

func (s *JobStore) FindByID(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return job, nil
}

func (s *JobStore) FindAll(_ context.Context, limit, offset int) ([]*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Job, 0)
	for _, id := range page(s.order, limit, offset) {
		result = append(result, s.items[id])
	}
	return result, nil
}

func (s *JobStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	s.order = remove(s.order, id)
	return true, nil
}

type MatchStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Match
	order []string
}

func NewMatchStore() *MatchStore {
	return &MatchStore{items: make(map[string]*domain.Match)}
}

func (s *MatchStore) Save(_ context.Context, match *domain.Match) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if match.ID == "" {
		match.ID = uuid.NewString()
		s.order = append(s.order, match.ID)
		if match.CreatedAt == nil {
			match.CreatedAt = &now
		}
	}

	s.items[match.ID] = match
	return match, nil
}

func (s *MatchStore) FindByID(_ context.Context, id string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return match, nil
}

func (s *MatchStore) FindByCVAndJob(_ context.Context, cvID, jobID string) ([]*domain.Match, error) {
	return s.filter(func(m *domain.Match) bool {
		return m.CVID == cvID && m.JobID == jobID
	}), nil
}

func (s *MatchStore) FindByCVID(_ context.Context, cvID string) ([]*domain.Match, error) {
	return s.filter(func(m *domain.Match) bool { return m.CVID == cvID }), nil
}

func (s *MatchStore) FindByJobID(_ context.Context, jobID string) ([]*domain.Match, error) {
	return s.filter(func(m *domain.Match) bool { return m.JobID == jobID }), nil
}

func (s *MatchStore) FindAll(_ context.Context, limit, offset int) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Match, 0)
	for _, id := range page(s.order, limit, offset) {
		result = append(result, s.items[id])
	}
	return result, nil
}

func (s *MatchStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	s.order = remove(s.order, id)
	return true, nil
}

func (s *MatchStore) filter(keep func(*domain.Match) bool) []*domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Match, 0)
	for _, id := range s.order {
		if match := s.items[id]; keep(match) {
			result = append(result, match)
		}
	}
	return result
}

// page applies limit/offset over the insertion order.
func page(order []string, limit, offset int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(order) {
		return nil
	}

	end := len(order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return order[offset:end]
}

func remove(order []string, id string) []string {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
