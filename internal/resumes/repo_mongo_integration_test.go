//go:build integration

package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/storage/mongodb"
	"resume-builder/internal/templates"
)

func TestMongoStoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	ctr, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	client, database, err := mongodb.Connect(ctx, uri, "resume_builder", mongodb.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	tplRepo := templates.NewMongoRepo(database)
	require.NoError(t, tplRepo.EnsureIndexes(ctx))
	repo := NewMongoRepo(database)
	require.NoError(t, repo.EnsureIndexes(ctx))

	tplSvc := templates.NewService(tplRepo)
	seeded, err := tplSvc.Seed(ctx, []templates.CreateInput{{Name: "ModernTemplate"}, {Name: "ClassicTemplate"}})
	require.NoError(t, err)

	svc := NewService(repo, tplSvc)
	caller := auth.Identity{UserID: "user-1", Role: auth.RoleUser}
	started := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Create(ctx, caller, CreateInput{
		Name:         "First",
		Template:     seeded[0].ID,
		PersonalInfo: PersonalInfo{FullName: "Jane Doe", Email: "jane@x.com"},
		Education:    []Education{{Institution: "MIT", StartDate: NewDate(started)}},
	})
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))
	second, err := svc.Create(ctx, caller, CreateInput{
		Name:         "Second",
		Template:     seeded[1].ID,
		PersonalInfo: PersonalInfo{FullName: "Jane Doe", Email: "jane@x.com"},
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(ctx, caller, first.ID, UpdateInput{Skills: []string{"go"}})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
	require.Len(t, updated.Education, 1)
	assert.True(t, updated.Education[0].StartDate.Equal(started))

	items, err := svc.List(ctx, caller)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	require.NotNil(t, items[1].Template)
	assert.Equal(t, "ClassicTemplate", items[1].Template.Name)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	assert.Equal(t, time.UTC, got.UpdatedAt.Location())

	_, err = svc.Get(ctx, auth.Identity{UserID: "user-2"}, first.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(ctx, caller, "not-an-object-id")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, caller, first.ID))
	_, err = svc.Get(ctx, caller, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
}
