package docsystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	docsysSvc "inkwell/internal/domain/services/docsystem"
)

func TestToSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Engineering", "engineering"},
		{"  Product & Design  ", "product-design"},
		{"Q3 -- Roadmap!!", "q3-roadmap"},
		{"***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSlug(tt.in))
		})
	}
}

func TestWorkspaceService_DedupesDerivedSlugs(t *testing.T) {
	f := newFixture(t) // already holds "engineering"
	ctx := context.Background()

	second, err := f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "engineering-1", second.Slug)

	third, err := f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "engineering!"})
	require.NoError(t, err)
	assert.Equal(t, "engineering-2", third.Slug)

	all, err := f.workspaces.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWorkspaceService_ExplicitSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ws, err := f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Docs", Slug: "team-docs"})
	require.NoError(t, err)
	assert.Equal(t, "team-docs", ws.Slug)

	_, err = f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Docs 2", Slug: "team-docs"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Bad", Slug: "Not A Slug"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "!!!"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
