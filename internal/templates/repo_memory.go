package templates

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo stores templates in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Template
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Template)}
}

func (r *MemoryRepo) Create(ctx context.Context, t Template) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTakenLocked(t.Name, "") {
		return Template{}, ErrDuplicate
	}
	t.ID = uuid.NewString()
	r.byID[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return Template{}, ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return Template{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) GetByIDs(ctx context.Context, ids []string) (map[string]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Template, len(ids))
	for _, id := range ids {
		if t, ok := r.byID[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (r *MemoryRepo) FindByName(ctx context.Context, name string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.byID {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Template, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, t Template) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return Template{}, ErrNotFound
	}
	if r.nameTakenLocked(t.Name, t.ID) {
		return Template{}, ErrDuplicate
	}
	r.byID[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepo) Replace(ctx context.Context, catalog []Template) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]Template, len(catalog))
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		if r.nameTakenLocked(t.Name, "") {
			return nil, ErrDuplicate
		}
		t.ID = uuid.NewString()
		r.byID[t.ID] = t
		out = append(out, t)
	}
	return out, nil
}

func (r *MemoryRepo) nameTakenLocked(name, exceptID string) bool {
	for id, t := range r.byID {
		if id != exceptID && t.Name == name {
			return true
		}
	}
	return false
}

var _ Repo = (*MemoryRepo)(nil)
