package templates

import "context"

// Repo defines persistence operations for templates.
type Repo interface {
	// Create assigns an ID and stores t.
	Create(ctx context.Context, t Template) (Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	// GetByIDs returns the templates found for ids, keyed by ID. Unknown or
	// malformed ids are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]Template, error)
	FindByName(ctx context.Context, name string) (Template, error)
	// List returns all templates sorted by name ascending.
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, t Template) (Template, error)
	Delete(ctx context.Context, id string) error
	// Replace removes every template and inserts the given catalog.
	Replace(ctx context.Context, catalog []Template) ([]Template, error)
}
