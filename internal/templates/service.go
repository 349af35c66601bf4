package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/validation"
)

var createRules = validation.RuleSet{
	Name:     "template.create",
	Messages: map[string]string{"name": "Name is required"},
}

// CreateInput is the payload of a template creation.
type CreateInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	PreviewImage string `json:"previewImage"`
	IsPremium    bool   `json:"isPremium"`
}

// Service orchestrates the template catalog. Reads are public; mutations
// require the admin role.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// List returns all templates sorted by name.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.Repo.List(ctx)
}

// Get returns a template by id. Malformed ids are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Template{}, notFound(err)
	}
	return t, nil
}

// GetMany returns the templates found for ids, keyed by ID.
func (s *Service) GetMany(ctx context.Context, ids []string) (map[string]Template, error) {
	return s.Repo.GetByIDs(ctx, ids)
}

// Create stores a new template if no template already uses its name.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (Template, error) {
	if !caller.IsAdmin() {
		return Template{}, ErrForbidden
	}
	if err := validation.Validate(createRules, in); err != nil {
		return Template{}, err
	}

	if _, err := s.Repo.FindByName(ctx, in.Name); err == nil {
		return Template{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return Template{}, fmt.Errorf("find template by name: %w", err)
	}

	t, err := s.Repo.Create(ctx, Template{
		Name:         in.Name,
		Description:  in.Description,
		PreviewImage: in.PreviewImage,
		IsPremium:    in.IsPremium,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Template{}, ErrConflict
		}
		return Template{}, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update merges the present fields of patch into the stored template.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id string, patch Patch) (Template, error) {
	if !caller.IsAdmin() {
		return Template{}, ErrForbidden
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	updated, err := s.Repo.Update(ctx, patch.Apply(current))
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			return Template{}, ErrConflict
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
			return Template{}, ErrNotFound
		}
		return Template{}, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

// Delete removes a template. Resumes referencing it are left untouched.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Seed replaces the whole catalog.
func (s *Service) Seed(ctx context.Context, catalog []CreateInput) ([]Template, error) {
	now := s.now()
	items := make([]Template, 0, len(catalog))
	for _, in := range catalog {
		if err := validation.Validate(createRules, in); err != nil {
			return nil, err
		}
		items = append(items, Template{
			Name:         in.Name,
			Description:  in.Description,
			PreviewImage: in.PreviewImage,
			IsPremium:    in.IsPremium,
			CreatedAt:    now,
		})
	}
	out, err := s.Repo.Replace(ctx, items)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("replace templates: %w", err)
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func notFound(err error) error {
	if errors.Is(err, ErrInvalidID) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return err
}
