package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SkyVault/internal/errs"
	"SkyVault/model"
)

func TestValidateFolderName(t *testing.T) {
	name, err := ValidateFolderName("  Docs  ")
	require.NoError(t, err)
	assert.Equal(t, "Docs", name)

	_, err = ValidateFolderName("   ")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = ValidateFolderName("")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestComputePath(t *testing.T) {
	assert.Equal(t, "/Docs", ComputePath("Docs", nil))

	parent := &model.Folder{Path: "/Docs"}
	assert.Equal(t, "/Docs/2024", ComputePath("2024", parent))

	deep := &model.Folder{Path: "/Docs/2024"}
	assert.Equal(t, "/Docs/2024/Q1", ComputePath("Q1", deep))
}

func TestCreateFolder_MaterializesPath(t *testing.T) {
	useFakes(t)
	ctx := context.Background()

	docs, err := CreateFolder(ctx, "owner-1", "Docs", nil)
	require.NoError(t, err)
	assert.Equal(t, "/Docs", docs.Path)
	assert.Nil(t, docs.ParentID)

	year, err := CreateFolder(ctx, "owner-1", "2024", &docs.ID)
	require.NoError(t, err)
	assert.Equal(t, "/Docs/2024", year.Path)
	require.NotNil(t, year.ParentID)
	assert.Equal(t, docs.ID, *year.ParentID)
}

func TestCreateFolder_ParentChecks(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()

	missing := "no-such-folder"
	_, err := CreateFolder(ctx, "owner-1", "Docs", &missing)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// a parent belonging to someone else looks exactly like a missing one
	other := &model.Folder{OwnerID: "owner-2", Name: "Private", Path: "/Private"}
	require.NoError(t, catalog.InsertFolder(ctx, other))
	_, err = CreateFolder(ctx, "owner-1", "Docs", &other.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = CreateFolder(ctx, "", "Docs", nil)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestDeleteFolder_DoesNotCascade(t *testing.T) {
	catalog, store := useFakes(t)
	ctx := context.Background()

	docs, err := CreateFolder(ctx, "owner-1", "Docs", nil)
	require.NoError(t, err)
	year, err := CreateFolder(ctx, "owner-1", "2024", &docs.ID)
	require.NoError(t, err)

	file, err := Upload(ctx, UploadRequest{
		OwnerID:  "owner-1",
		Name:     "report.txt",
		MimeType: "text/plain",
		Data:     []byte("quarterly numbers"),
		FolderID: &docs.ID,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteFolder(ctx, "owner-1", docs.ID))

	// the file keeps its now-dangling folder id: not deleted, not reassigned
	kept, err := catalog.FileByID(ctx, file.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.FolderID)
	assert.Equal(t, docs.ID, *kept.FolderID)
	_, exists := store.object("test-bucket", kept.StoragePath)
	assert.True(t, exists)

	// the child folder keeps its materialized path
	child, err := catalog.FolderByID(ctx, year.ID)
	require.NoError(t, err)
	assert.Equal(t, "/Docs/2024", child.Path)
}

func TestDeleteFolder_NotFound(t *testing.T) {
	useFakes(t)
	ctx := context.Background()

	err := DeleteFolder(ctx, "owner-1", "no-such-folder")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
