package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SkyVault/internal/errs"
)

func TestGetFile_OwnerScoping(t *testing.T) {
	useFakes(t)
	ctx := context.Background()

	file, err := Upload(ctx, UploadRequest{
		OwnerID:  "owner-1",
		Name:     "mine.txt",
		MimeType: "text/plain",
		Data:     []byte("mine"),
	})
	require.NoError(t, err)

	got, err := GetFile(ctx, "owner-1", file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	// someone else's file is indistinguishable from a missing one
	_, err = GetFile(ctx, "owner-2", file.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = GetFile(ctx, "owner-1", "no-such-file")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = GetFile(ctx, "", file.ID)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestListFilesInFolder_RootVersusFolder(t *testing.T) {
	useFakes(t)
	ctx := context.Background()

	docs, err := CreateFolder(ctx, "owner-1", "Docs", nil)
	require.NoError(t, err)

	_, err = Upload(ctx, UploadRequest{
		OwnerID: "owner-1", Name: "root.txt", MimeType: "text/plain", Data: []byte("r"),
	})
	require.NoError(t, err)
	inDocs, err := Upload(ctx, UploadRequest{
		OwnerID: "owner-1", Name: "inside.txt", MimeType: "text/plain", Data: []byte("i"), FolderID: &docs.ID,
	})
	require.NoError(t, err)

	root, err := ListFilesInFolder(ctx, "owner-1", nil)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, "root.txt", root[0].Name)

	scoped, err := ListFilesInFolder(ctx, "owner-1", &docs.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, inDocs.ID, scoped[0].ID)

	all, err := ListFiles(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteFile_RemovesRecordAndObject(t *testing.T) {
	catalog, store := useFakes(t)
	ctx := context.Background()

	file, err := Upload(ctx, UploadRequest{
		OwnerID:  "owner-1",
		Name:     "gone.txt",
		MimeType: "text/plain",
		Data:     []byte("bye"),
	})
	require.NoError(t, err)

	require.NoError(t, DeleteFile(ctx, "owner-1", file.ID))

	_, err = catalog.FileByID(ctx, file.ID)
	assert.Error(t, err)
	_, exists := store.object("test-bucket", file.StoragePath)
	assert.False(t, exists)

	err = DeleteFile(ctx, "owner-1", file.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteFile_ObjectFailureStillSucceeds(t *testing.T) {
	catalog, store := useFakes(t)
	ctx := context.Background()

	file, err := Upload(ctx, UploadRequest{
		OwnerID:  "owner-1",
		Name:     "sticky.txt",
		MimeType: "text/plain",
		Data:     []byte("wont go"),
	})
	require.NoError(t, err)

	// the catalog row is the system of record; losing the object delete
	// does not fail the operation
	store.failRemove = errors.New("store down")
	require.NoError(t, DeleteFile(ctx, "owner-1", file.ID))

	_, err = catalog.FileByID(ctx, file.ID)
	assert.Error(t, err)
	assert.Contains(t, store.removed, file.StoragePath)
}

func TestDeleteFile_OwnerScoping(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()

	file, err := Upload(ctx, UploadRequest{
		OwnerID:  "owner-1",
		Name:     "mine.txt",
		MimeType: "text/plain",
		Data:     []byte("mine"),
	})
	require.NoError(t, err)

	err = DeleteFile(ctx, "owner-2", file.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	kept, err := catalog.FileByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, kept.ID)
}
