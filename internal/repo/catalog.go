package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"SkyVault/model"
)

// ErrRecordNotFound is returned by catalog queries that match nothing.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// Catalog is the narrow interface over the durable record store for File,
// Folder and ShareLink entities. It is the system of record; the object
// store holds only the payload bytes.
type Catalog interface {
	InsertFile(ctx context.Context, file *model.File) error
	FileByID(ctx context.Context, id string) (*model.File, error)
	FilesByOwner(ctx context.Context, ownerID string) ([]model.File, error)
	FilesByFolder(ctx context.Context, ownerID string, folderID *string) ([]model.File, error)
	DeleteFileByID(ctx context.Context, id string) error

	InsertFolder(ctx context.Context, folder *model.Folder) error
	FolderByID(ctx context.Context, id string) (*model.Folder, error)
	FoldersByParent(ctx context.Context, ownerID string, parentID *string) ([]model.Folder, error)
	DeleteFolderByID(ctx context.Context, id string) error

	InsertShare(ctx context.Context, share *model.ShareLink) error
	ShareByToken(ctx context.Context, token string) (*model.ShareLink, error)
	SharesByOwner(ctx context.Context, ownerID string) ([]model.ShareLink, error)
	DeleteShareByToken(ctx context.Context, token string) error
}

// Default is the main catalog instance, set during InitMysql.
var Default Catalog

// GormCatalog implements Catalog on a gorm connection.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog builds a Catalog from a gorm connection.
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// InsertFile inserts a file record.
func (c *GormCatalog) InsertFile(ctx context.Context, file *model.File) error {
	return c.db.WithContext(ctx).Create(file).Error
}

// FileByID finds a file record by ID.
func (c *GormCatalog) FileByID(ctx context.Context, id string) (*model.File, error) {
	var file model.File
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// FilesByOwner lists an owner's files, most recent first.
func (c *GormCatalog) FilesByOwner(ctx context.Context, ownerID string) ([]model.File, error) {
	var files []model.File
	err := c.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// FilesByFolder lists an owner's files in one folder, most recent first.
// A nil folderID selects root files.
func (c *GormCatalog) FilesByFolder(ctx context.Context, ownerID string, folderID *string) ([]model.File, error) {
	var files []model.File
	query := c.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	err := query.Order("created_at DESC").Find(&files).Error
	return files, err
}

// DeleteFileByID removes a file record.
func (c *GormCatalog) DeleteFileByID(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&model.File{}).Error
}

// InsertFolder inserts a folder record.
func (c *GormCatalog) InsertFolder(ctx context.Context, folder *model.Folder) error {
	return c.db.WithContext(ctx).Create(folder).Error
}

// FolderByID finds a folder record by ID.
func (c *GormCatalog) FolderByID(ctx context.Context, id string) (*model.Folder, error) {
	var folder model.Folder
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// FoldersByParent lists an owner's folders under one parent, most recent
// first. A nil parentID selects root folders. The catalog's own insertion
// order is authoritative for listing order.
func (c *GormCatalog) FoldersByParent(ctx context.Context, ownerID string, parentID *string) ([]model.Folder, error) {
	var folders []model.Folder
	query := c.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("created_at DESC").Find(&folders).Error
	return folders, err
}

// DeleteFolderByID removes a folder record. Files referencing the folder are
// left untouched with their now-dangling folder_id.
func (c *GormCatalog) DeleteFolderByID(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Folder{}).Error
}

// InsertShare inserts a share link record.
func (c *GormCatalog) InsertShare(ctx context.Context, share *model.ShareLink) error {
	return c.db.WithContext(ctx).Create(share).Error
}

// ShareByToken finds a share link by token.
func (c *GormCatalog) ShareByToken(ctx context.Context, token string) (*model.ShareLink, error) {
	var share model.ShareLink
	if err := c.db.WithContext(ctx).Where("token = ?", token).First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// SharesByOwner lists an owner's share links, most recent first.
func (c *GormCatalog) SharesByOwner(ctx context.Context, ownerID string) ([]model.ShareLink, error) {
	var shares []model.ShareLink
	err := c.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

// DeleteShareByToken removes a share link record.
func (c *GormCatalog) DeleteShareByToken(ctx context.Context, token string) error {
	return c.db.WithContext(ctx).Where("token = ?", token).Delete(&model.ShareLink{}).Error
}

// IsNotFound reports whether an error is a missing-record catalog error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
