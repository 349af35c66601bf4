package resumes

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	res = clone(res.normalize())
	res.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = res
	return clone(res), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return clone(res), nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Resume{}
	for _, res := range r.byID {
		if res.Owner == ownerID {
			out = append(out, clone(res))
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, res Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	if _, err := uuid.Parse(res.ID); err != nil {
		return Resume{}, ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[res.ID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	res.Owner = stored.Owner
	res.CreatedAt = stored.CreatedAt
	res = clone(res.normalize())
	r.byID[res.ID] = res
	return clone(res), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func clone(res Resume) Resume {
	res.Education = slices.Clone(res.Education)
	res.Experience = slices.Clone(res.Experience)
	res.Skills = slices.Clone(res.Skills)
	res.Certifications = slices.Clone(res.Certifications)
	res.Languages = slices.Clone(res.Languages)
	return res
}

var _ Repo = (*MemoryRepo)(nil)
