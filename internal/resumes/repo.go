package resumes

import "context"

// Repo defines persistence operations for resumes. Implementations assign IDs,
// report ErrInvalidID for malformed ids and ErrNotFound for absent ones.
type Repo interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByID(ctx context.Context, id string) (Resume, error)
	// ListByOwner returns the owner's resumes, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]Resume, error)
	// Update replaces every mutable field and updatedAt of the stored record.
	Update(ctx context.Context, r Resume) (Resume, error)
	Delete(ctx context.Context, id string) error
}
