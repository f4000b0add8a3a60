package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"SkyVault/internal/errs"
	"SkyVault/internal/notify"
	"SkyVault/internal/repo"
	"SkyVault/model"
)

// ValidateFolderName trims and checks a folder name.
func ValidateFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty folder name", errs.ErrValidation)
	}
	return name, nil
}

// ComputePath materializes a folder path from its parent chain. The result
// is cached on the record at creation time and never recomputed.
func ComputePath(name string, parent *model.Folder) string {
	if parent == nil {
		return "/" + name
	}
	return parent.Path + "/" + name
}

// CreateFolder creates a folder under an optional parent. Folders are
// immutable once created except for deletion.
func CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*model.Folder, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	name, err := ValidateFolderName(name)
	if err != nil {
		return nil, err
	}

	var parent *model.Folder
	if parentID != nil {
		parent, err = repo.Default.FolderByID(ctx, *parentID)
		if err != nil {
			if repo.IsNotFound(err) {
				return nil, fmt.Errorf("%w: parent folder", errs.ErrNotFound)
			}
			return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
		}
		if parent.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: parent folder", errs.ErrNotFound)
		}
	}

	folder := &model.Folder{
		OwnerID:  ownerID,
		Name:     name,
		ParentID: parentID,
		Path:     ComputePath(name, parent),
	}
	if err := repo.Default.InsertFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	notify.Publish(ctx, notify.TableFolders, notify.EventInsert, ownerID, folder.ID)
	return folder, nil
}

// ListFolders returns an owner's folders under one parent, most recent
// first. A nil parentID lists root folders.
func ListFolders(ctx context.Context, ownerID string, parentID *string) ([]model.Folder, error) {
	if ownerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	folders, err := repo.Default.FoldersByParent(ctx, ownerID, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	return folders, nil
}

// DeleteFolder removes a folder record. The delete does not cascade: files
// whose folder_id referenced the folder keep that id and become rootless,
// and child folders stay in place.
func DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	if ownerID == "" {
		return errs.ErrUnauthenticated
	}
	folder, err := repo.Default.FolderByID(ctx, folderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	if folder.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	if err := repo.Default.DeleteFolderByID(ctx, folderID); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	log.Printf("[DeleteFolder] removed %s (%s)", folder.Path, folderID)
	notify.Publish(ctx, notify.TableFolders, notify.EventDelete, ownerID, folderID)
	return nil
}
