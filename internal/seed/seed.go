// Package seed loads the template catalog and writes it to the store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
)

//go:embed templates.yaml
var defaultCatalog []byte

// Catalog is the on-disk shape of a seed file.
type Catalog struct {
	Templates []Entry `yaml:"templates"`
}

// Entry is one seeded template.
type Entry struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	PreviewImage string `yaml:"previewImage,omitempty"`
	IsPremium    bool   `yaml:"isPremium"`
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog. Unknown keys are rejected and every entry needs a
// unique name.
func Parse(data []byte) (Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Templates))
	for i, e := range c.Templates {
		if e.Name == "" {
			return Catalog{}, fmt.Errorf("seed entry %d: name is required", i)
		}
		if _, dup := seen[e.Name]; dup {
			return Catalog{}, fmt.Errorf("seed entry %d: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return c, nil
}

func (c Catalog) inputs() []templates.CreateInput {
	out := make([]templates.CreateInput, 0, len(c.Templates))
	for _, e := range c.Templates {
		out = append(out, templates.CreateInput{
			Name:         e.Name,
			Description:  e.Description,
			PreviewImage: e.PreviewImage,
			IsPremium:    e.IsPremium,
		})
	}
	return out
}

// seeder is the admin identity seeding runs as.
var seeder = auth.Identity{UserID: "seed", Role: auth.RoleAdmin}

// Apply writes c to the store. By default the existing catalog is replaced;
// with keep set, existing templates stay and entries whose name is taken are
// skipped. It returns the number of templates written.
func Apply(ctx context.Context, svc *templates.Service, c Catalog, keep bool) (int, error) {
	if !keep {
		out, err := svc.Seed(ctx, c.inputs())
		if err != nil {
			return 0, err
		}
		telemetry.Info("seed.replaced", map[string]any{"count": len(out)})
		return len(out), nil
	}

	written := 0
	for _, in := range c.inputs() {
		t, err := svc.Create(ctx, seeder, in)
		if errors.Is(err, templates.ErrConflict) {
			telemetry.Info("seed.skipped", map[string]any{"name": in.Name})
			continue
		}
		if err != nil {
			return written, fmt.Errorf("seed %q: %w", in.Name, err)
		}
		telemetry.Info("seed.created", map[string]any{"name": t.Name, "template_id": t.ID})
		written++
	}
	return written, nil
}
