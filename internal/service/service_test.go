package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SkyVault/internal/repo"
	"SkyVault/internal/storage"
	"SkyVault/model"
)

// fakeCatalog is an in-memory Catalog for pipeline tests.
type fakeCatalog struct {
	mu      sync.Mutex
	files   map[string]model.File
	folders map[string]model.Folder
	shares  map[string]model.ShareLink

	failInsertFile error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		files:   make(map[string]model.File),
		folders: make(map[string]model.Folder),
		shares:  make(map[string]model.ShareLink),
	}
}

func (f *fakeCatalog) InsertFile(ctx context.Context, file *model.File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertFile != nil {
		return f.failInsertFile
	}
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	file.CreatedAt = time.Now()
	f.files[file.ID] = *file
	return nil
}

func (f *fakeCatalog) FileByID(ctx context.Context, id string) (*model.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &file, nil
}

func (f *fakeCatalog) FilesByOwner(ctx context.Context, ownerID string) ([]model.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.File
	for _, file := range f.files {
		if file.OwnerID == ownerID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCatalog) FilesByFolder(ctx context.Context, ownerID string, folderID *string) ([]model.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.File
	for _, file := range f.files {
		if file.OwnerID != ownerID {
			continue
		}
		switch {
		case folderID == nil && file.FolderID == nil:
			out = append(out, file)
		case folderID != nil && file.FolderID != nil && *file.FolderID == *folderID:
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCatalog) DeleteFileByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, id)
	return nil
}

func (f *fakeCatalog) InsertFolder(ctx context.Context, folder *model.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	folder.CreatedAt = time.Now()
	f.folders[folder.ID] = *folder
	return nil
}

func (f *fakeCatalog) FolderByID(ctx context.Context, id string) (*model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder, ok := f.folders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &folder, nil
}

func (f *fakeCatalog) FoldersByParent(ctx context.Context, ownerID string, parentID *string) ([]model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Folder
	for _, folder := range f.folders {
		if folder.OwnerID != ownerID {
			continue
		}
		switch {
		case parentID == nil && folder.ParentID == nil:
			out = append(out, folder)
		case parentID != nil && folder.ParentID != nil && *folder.ParentID == *parentID:
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCatalog) DeleteFolderByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.folders, id)
	return nil
}

func (f *fakeCatalog) InsertShare(ctx context.Context, share *model.ShareLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	share.CreatedAt = time.Now()
	f.shares[share.Token] = *share
	return nil
}

func (f *fakeCatalog) ShareByToken(ctx context.Context, token string) (*model.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	share, ok := f.shares[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &share, nil
}

func (f *fakeCatalog) SharesByOwner(ctx context.Context, ownerID string) ([]model.ShareLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ShareLink
	for _, share := range f.shares {
		if share.OwnerID == ownerID {
			out = append(out, share)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCatalog) DeleteShareByToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.shares, token)
	return nil
}

// fakeStore is an in-memory Store for pipeline tests.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string

	failPut    error
	failRemove error

	// presignBase, when set, makes signed URLs point at a test server
	presignBase string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) key(bucket, object string) string {
	return bucket + "/" + object
}

func (s *fakeStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts storage.PutOptions) error {
	if s.failPut != nil {
		return s.failPut
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[s.key(bucket, object)]; exists {
		return fmt.Errorf("object %s already exists", object)
	}
	s.objects[s.key(bucket, object)] = data
	return nil
}

func (s *fakeStore) GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[s.key(bucket, object)]
	if !ok {
		return nil, storage.ObjectInfo{}, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), storage.ObjectInfo{ObjectName: object, Size: int64(len(data))}, nil
}

func (s *fakeStore) RemoveObject(ctx context.Context, bucket, object string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, object)
	if s.failRemove != nil {
		return s.failRemove
	}
	delete(s.objects, s.key(bucket, object))
	return nil
}

func (s *fakeStore) PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	base := s.presignBase
	if base == "" {
		base = "https://store.test"
	}
	return base + "/" + s.key(bucket, object) + "?sig=" + uuid.NewString(), nil
}

func (s *fakeStore) object(bucket, object string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[s.key(bucket, object)]
	return data, ok
}

// useFakes swaps the package singletons for a test and restores them after.
func useFakes(t *testing.T) (*fakeCatalog, *fakeStore) {
	t.Helper()
	catalog := newFakeCatalog()
	store := newFakeStore()

	prevCatalog := repo.Default
	prevStore := storage.Default
	prevBucket := storage.Bucket
	repo.Default = catalog
	storage.Default = store
	storage.Bucket = "test-bucket"
	t.Cleanup(func() {
		repo.Default = prevCatalog
		storage.Default = prevStore
		storage.Bucket = prevBucket
	})
	return catalog, store
}
