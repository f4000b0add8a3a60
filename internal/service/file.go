package service

import (
	"context"
	"fmt"
	"log"

	"SkyVault/internal/errs"
	"SkyVault/internal/notify"
	"SkyVault/internal/repo"
	"SkyVault/internal/storage"
	"SkyVault/internal/task"
	"SkyVault/model"
)

// GetFile loads an owner's file. A file belonging to someone else is
// indistinguishable from a missing one.
func GetFile(ctx context.Context, ownerID, fileID string) (*model.File, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	file, err := repo.Default.FileByID(ctx, fileID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	if file.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return file, nil
}

// ListFiles returns all of an owner's files, most recent first.
func ListFiles(ctx context.Context, ownerID string) ([]model.File, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	files, err := repo.Default.FilesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return files, nil
}

// ListFilesInFolder returns an owner's files in one folder, most recent
// first. A nil folderID lists root files.
func ListFilesInFolder(ctx context.Context, ownerID string, folderID *string) ([]model.File, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	files, err := repo.Default.FilesByFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return files, nil
}

// DeleteFile removes a file record and its object. The catalog is the
// system of record, so the record goes first; if the object delete then
// fails, the orphan is handed to the cleanup worker rather than leaving a
// record that points at nothing.
func DeleteFile(ctx context.Context, ownerID, fileID string) error {
	file, err := GetFile(ctx, ownerID, fileID)
	if err != nil {
		return err
	}
	if err := repo.Default.DeleteFileByID(ctx, fileID); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	if storage.Default != nil {
		if err := storage.Default.RemoveObject(ctx, storage.Bucket, file.StoragePath); err != nil {
			log.Printf("[DeleteFile] object delete failed for %s: %v", file.StoragePath, err)
			if _, taskErr := task.CreateCleanupTask(ctx, storage.Bucket, file.StoragePath, err); taskErr != nil {
				log.Printf("[DeleteFile] cleanup enqueue failed for %s: %v", file.StoragePath, taskErr)
			}
		}
	}
	notify.Publish(ctx, notify.TableFiles, notify.EventDelete, ownerID, fileID)
	return nil
}
