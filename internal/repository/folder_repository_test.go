package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

func TestFolderRepositoryGetById(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	created := mustCreateFolder(t, repo, "Projects", nil)

	got, err := repo.GetById(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Id, got.Id)
	assert.Equal(t, "Projects", got.Name)
	assert.Equal(t, "/Projects", got.Path)
	assert.Nil(t, got.ParentId)
	assert.Nil(t, got.UpdatedAt)

	_, err = repo.GetById(ctx, entity.NewFolderId())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFolderRepositoryGetDefault(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewFolderRepository(db)

	_, err := repo.GetDefault(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, Seed(ctx, db))

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.True(t, def.IsDefault)
	assert.Equal(t, "Geral", def.Name)
}

func TestFolderRepositoryGetChildren(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	work := mustCreateFolder(t, repo, "Work", nil)
	mustCreateFolder(t, repo, "Archive", nil)
	reports := mustCreateFolder(t, repo, "Reports", work)
	mustCreateFolder(t, repo, "Drafts", work)

	roots, err := repo.GetChildren(ctx, nil)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Archive", roots[0].Name)
	assert.Equal(t, "Work", roots[1].Name)

	children, err := repo.GetChildren(ctx, &work.Id)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Drafts", children[0].Name)
	assert.Equal(t, "Reports", children[1].Name)

	leaves, err := repo.GetChildren(ctx, &reports.Id)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestFolderRepositoryGetSubtree(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	a := mustCreateFolder(t, repo, "A", nil)
	b := mustCreateFolder(t, repo, "B", a)
	mustCreateFolder(t, repo, "C", b)
	// A sibling whose path shares the prefix characters but not the tree.
	mustCreateFolder(t, repo, "AB", nil)

	subtree, err := repo.GetSubtree(ctx, a.Path)
	require.NoError(t, err)
	require.Len(t, subtree, 3)
	assert.Equal(t, "/A", subtree[0].Path)
	assert.Equal(t, "/A/B", subtree[1].Path)
	assert.Equal(t, "/A/B/C", subtree[2].Path)
}

func TestFolderRepositoryCountSiblingsNamed(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	work := mustCreateFolder(t, repo, "Work", nil)
	mustCreateFolder(t, repo, "Notes", work)
	rootNotes := mustCreateFolder(t, repo, "Notes", nil)

	count, err := repo.CountSiblingsNamed(ctx, &work.Id, "Notes", entity.FolderId{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountSiblingsNamed(ctx, nil, "Notes", entity.FolderId{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// A folder keeping its own name is not its own conflict.
	count, err = repo.CountSiblingsNamed(ctx, nil, "Notes", rootNotes.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = repo.CountSiblingsNamed(ctx, &work.Id, "Missing", entity.FolderId{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestFolderRepositoryRewritePaths(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	a := mustCreateFolder(t, repo, "A", nil)
	b := mustCreateFolder(t, repo, "B", a)
	c := mustCreateFolder(t, repo, "C", b)
	outside := mustCreateFolder(t, repo, "AB", nil)

	require.NoError(t, repo.RewritePaths(ctx, "/A", "/Alpha"))

	for id, want := range map[entity.FolderId]string{
		a.Id:       "/Alpha",
		b.Id:       "/Alpha/B",
		c.Id:       "/Alpha/B/C",
		outside.Id: "/AB",
	} {
		got, err := repo.GetById(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Path)
	}
}

func TestFolderRepositoryRewritePathsMultibyte(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	region := mustCreateFolder(t, repo, "Região", nil)
	child := mustCreateFolder(t, repo, "Sul", region)

	require.NoError(t, repo.RewritePaths(ctx, "/Região", "/Regiões"))

	got, err := repo.GetById(ctx, child.Id)
	require.NoError(t, err)
	assert.Equal(t, "/Regiões/Sul", got.Path)
}

func TestFolderRepositoryDeleteByIds(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	a := mustCreateFolder(t, repo, "A", nil)
	b := mustCreateFolder(t, repo, "B", a)
	keep := mustCreateFolder(t, repo, "Keep", nil)

	require.NoError(t, repo.DeleteByIds(ctx, nil))

	require.NoError(t, repo.DeleteByIds(ctx, []entity.FolderId{a.Id, b.Id}))

	_, err := repo.GetById(ctx, a.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetById(ctx, b.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	got, err := repo.GetById(ctx, keep.Id)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Name)
}

func TestFolderRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewFolderRepository(newTestDB(t))

	folder := mustCreateFolder(t, repo, "Old", nil)

	now := time.Now()
	folder.Name = "New"
	folder.Path = "/New"
	folder.UpdatedAt = &now
	require.NoError(t, repo.Update(ctx, folder))

	got, err := repo.GetById(ctx, folder.Id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "/New", got.Path)
	require.NotNil(t, got.UpdatedAt)
}
