package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
	"resume-builder/internal/templates"
)

// TemplateReader resolves template references.
type TemplateReader interface {
	Get(ctx context.Context, id string) (templates.Template, error)
	GetMany(ctx context.Context, ids []string) (map[string]templates.Template, error)
}

// Service orchestrates resume operations. Every operation on an existing
// resume goes through loadOwned.
type Service struct {
	Repo      Repo
	Templates TemplateReader
	Now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, catalog TemplateReader) *Service {
	return &Service{Repo: repo, Templates: catalog, Now: time.Now}
}

// List returns the caller's resumes with template display fields attached,
// most recently updated first.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]Listed, error) {
	items, err := s.Repo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, res := range items {
		ids = append(ids, res.Template)
	}
	found, err := s.Templates.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	out := make([]Listed, 0, len(items))
	for _, res := range items {
		item := Listed{Resume: res}
		if t, ok := found[res.Template]; ok {
			summary := t.Summary()
			item.Template = &summary
		}
		out = append(out, item)
	}
	return out, nil
}

// Get returns one of the caller's resumes with its full template attached.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id string) (Detailed, error) {
	res, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return Detailed{}, err
	}
	out := Detailed{Resume: res}
	t, err := s.Templates.Get(ctx, res.Template)
	switch {
	case err == nil:
		out.Template = &t
	case errors.Is(err, templates.ErrNotFound):
	default:
		return Detailed{}, fmt.Errorf("load template: %w", err)
	}
	return out, nil
}

// Create validates in, checks the template exists and stores a new resume
// owned by the caller. The existence check and the insert are not atomic; a
// template deleted in between leaves a dangling reference.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (Resume, error) {
	if err := validation.Validate(createRules, in); err != nil {
		return Resume{}, err
	}
	if _, err := s.Templates.Get(ctx, in.Template); err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			return Resume{}, ErrTemplateNotFound
		}
		return Resume{}, fmt.Errorf("check template: %w", err)
	}

	now := s.now()
	res, err := s.Repo.Create(ctx, Resume{
		Owner:          caller.UserID,
		Template:       in.Template,
		Name:           in.Name,
		PersonalInfo:   in.PersonalInfo,
		Summary:        in.Summary,
		Education:      in.Education,
		Experience:     in.Experience,
		Skills:         in.Skills,
		Certifications: in.Certifications,
		Languages:      in.Languages,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	telemetry.Info("resume.created", map[string]any{
		"resume_id":   res.ID,
		"user_id":     res.Owner,
		"template_id": res.Template,
	})
	return res, nil
}

// Update merges in into one of the caller's resumes. updatedAt always
// advances, even when no field changed.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id string, in UpdateInput) (Resume, error) {
	if err := validation.Validate(updateRules, in); err != nil {
		return Resume{}, err
	}
	current, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return Resume{}, err
	}

	next := in.Apply(current)
	next.UpdatedAt = s.advance(current.UpdatedAt)
	updated, err := s.Repo.Update(ctx, next)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("update resume: %w", err)
	}
	return updated, nil
}

// Delete removes one of the caller's resumes.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id string) error {
	res, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, res.ID); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("delete resume: %w", err)
	}
	telemetry.Info("resume.deleted", map[string]any{
		"resume_id": res.ID,
		"user_id":   res.Owner,
	})
	return nil
}

// loadOwned fetches id and applies the ownership guard. Malformed and absent
// ids both yield ErrNotFound; existence is settled before ownership.
func (s *Service) loadOwned(ctx context.Context, caller auth.Identity, id string) (Resume, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("load resume: %w", err)
	}
	if CheckOwner(res, caller.UserID) != Allow {
		return Resume{}, ErrForbidden
	}
	return res, nil
}

// now is truncated to milliseconds, the coarsest precision of any store.
func (s *Service) now() time.Time {
	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Millisecond)
}

func (s *Service) advance(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}
