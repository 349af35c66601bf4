package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/templates"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Len(t, c.Templates, 3)
	assert.Equal(t, "ModernTemplate", c.Templates[0].Name)
	assert.Equal(t, "/images/templates/minimalist.jpg", c.Templates[2].PreviewImage)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "templates:\n  - name: A\n    colour: red\n",
		"missing name":   "templates:\n  - description: nameless\n",
		"duplicate name": "templates:\n  - name: A\n  - name: A\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - name: Custom\n    isPremium: true\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Templates, 1)
	assert.True(t, c.Templates[0].IsPremium)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	svc := templates.NewService(templates.NewMemoryRepo())
	_, err := svc.Create(ctx, auth.Identity{UserID: "a", Role: auth.RoleAdmin}, templates.CreateInput{Name: "Legacy"})
	require.NoError(t, err)

	c, err := Default()
	require.NoError(t, err)
	n, err := Apply(ctx, svc, c, false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "ClassicTemplate", items[0].Name)
}

func TestApplyKeepSkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	svc := templates.NewService(templates.NewMemoryRepo())
	_, err := svc.Create(ctx, auth.Identity{UserID: "a", Role: auth.RoleAdmin}, templates.CreateInput{Name: "ModernTemplate"})
	require.NoError(t, err)

	c, err := Default()
	require.NoError(t, err)
	n, err := Apply(ctx, svc, c, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
