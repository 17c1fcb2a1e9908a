package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/google/uuid"
)

type memoryEntry struct {
	job *models.Job
	seq uint64
}

type MemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]memoryEntry
	seq  uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jobs: make(map[string]memoryEntry)}
}

func cloneJob(j *models.Job) *models.Job {
	out := *j
	if j.Requirements != nil {
		out.Requirements = append([]string(nil), j.Requirements...)
	}
	out.PostedDate = cloneTime(j.PostedDate)
	out.ApplicationDeadline = cloneTime(j.ApplicationDeadline)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Job, error) {
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.jobs))
	for _, e := range r.jobs {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	out := make([]*models.Job, 0, len(entries))
	for _, e := range entries {
		out = append(out, cloneJob(e.job))
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidJobID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return cloneJob(e.job), nil
}

func (r *MemoryRepository) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	stored := cloneJob(job)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	r.mu.Lock()
	r.seq++
	r.jobs[stored.ID] = memoryEntry{job: stored, seq: r.seq}
	r.mu.Unlock()

	return cloneJob(stored), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(job *models.Job) error) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidJobID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}

	job := cloneJob(e.job)
	if err := fn(job); err != nil {
		return nil, err
	}
	job.ID = id
	job.CreatedAt = e.job.CreatedAt
	job.UpdatedAt = time.Now().UTC()

	r.jobs[id] = memoryEntry{job: job, seq: e.seq}
	return cloneJob(job), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidJobID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}
