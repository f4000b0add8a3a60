package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"SkyVault/internal/cipher"
	"SkyVault/internal/errs"
	"SkyVault/internal/notify"
	"SkyVault/internal/repo"
	"SkyVault/internal/storage"
	"SkyVault/internal/task"
	"SkyVault/model"
)

const encryptedContentType = "application/octet-stream"

// UploadRequest carries one file plus the caller's intent. Progress, when
// set, receives a coarse stage percentage (0..100, monotone); it is not a
// byte-level transfer meter.
type UploadRequest struct {
	OwnerID    string
	Name       string
	MimeType   string
	Data       []byte
	FolderID   *string
	Encrypt    bool
	Passphrase string
	Progress   func(int)
}

func (r *UploadRequest) report(pct int) {
	if r.Progress != nil {
		r.Progress(pct)
	}
}

// Upload turns a raw file into a durable, catalogued object: encrypt when
// asked, write the object, then write the metadata record. The two writes
// are not transactional; a metadata failure after a successful object write
// triggers a best-effort compensating delete, and the metadata error is
// reported either way.
func Upload(ctx context.Context, req UploadRequest) (*model.File, error) {
	if req.OwnerID == "" {
		return nil, errs.ErrUnauthenticated
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: empty file name", errs.ErrValidation)
	}
	if req.Encrypt && req.Passphrase == "" {
		return nil, fmt.Errorf("%w: encryption requires a passphrase", errs.ErrValidation)
	}
	if req.FolderID != nil {
		folder, err := repo.Default.FolderByID(ctx, *req.FolderID)
		if err != nil {
			if repo.IsNotFound(err) {
				return nil, fmt.Errorf("%w: folder", errs.ErrNotFound)
			}
			return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
		}
		if folder.OwnerID != req.OwnerID {
			return nil, fmt.Errorf("%w: folder", errs.ErrNotFound)
		}
	}
	req.report(0)

	payload := req.Data
	storedType := req.MimeType
	if storedType == "" {
		storedType = encryptedContentType
	}
	if req.Encrypt {
		blob, err := cipher.Encrypt(req.Data, req.Passphrase)
		if err != nil {
			return nil, err
		}
		payload = blob
		// the stored payload is opaque; the record keeps the original type
		storedType = encryptedContentType
		req.report(25)
	}

	storagePath := BuildStoragePath(req.OwnerID, req.Name)

	if storage.Default == nil {
		return nil, fmt.Errorf("%w: storage not initialized", errs.ErrStorage)
	}
	err := storage.Default.PutObject(ctx, storage.Bucket, storagePath, bytes.NewReader(payload), int64(len(payload)), storage.PutOptions{
		ContentType: storedType,
	})
	if err != nil {
		// nothing durable exists yet, no partial state to clean
		return nil, fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
	if req.Encrypt {
		req.report(75)
	} else {
		req.report(50)
	}

	file := &model.File{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		StoragePath: storagePath,
		Size:        int64(len(payload)),
		MimeType:    req.MimeType,
		IsEncrypted: req.Encrypt,
		FolderID:    req.FolderID,
	}
	if err := repo.Default.InsertFile(ctx, file); err != nil {
		compensateOrphan(ctx, storagePath, err)
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadata, err)
	}
	req.report(100)

	notify.Publish(ctx, notify.TableFiles, notify.EventInsert, req.OwnerID, file.ID)
	return file, nil
}

// compensateOrphan removes the object left behind by a failed metadata
// write. The compensation never changes the reported error: the metadata
// failure wins. A failed compensation is handed to the cleanup worker.
func compensateOrphan(ctx context.Context, storagePath string, insertErr error) {
	if err := storage.Default.RemoveObject(ctx, storage.Bucket, storagePath); err != nil {
		log.Printf("[Upload] compensating delete failed for %s: %v (after %v)", storagePath, err, insertErr)
		if _, taskErr := task.CreateCleanupTask(ctx, storage.Bucket, storagePath, err); taskErr != nil {
			log.Printf("[Upload] cleanup enqueue failed for %s: %v", storagePath, taskErr)
		}
	}
}
